package device

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/vovakirdan/cge/internal/core"
)

// tcellKeys maps tcell special keys to key codes.
var tcellKeys = map[tcell.Key]core.KeyCode{
	tcell.KeyUp:         core.KeyUp,
	tcell.KeyDown:       core.KeyDown,
	tcell.KeyLeft:       core.KeyLeft,
	tcell.KeyRight:      core.KeyRight,
	tcell.KeyEnter:      core.KeyEnter,
	tcell.KeyEscape:     core.KeyEscape,
	tcell.KeyTab:        core.KeyTab,
	tcell.KeyBackspace:  core.KeyBackspace,
	tcell.KeyBackspace2: core.KeyBackspace,
	tcell.KeyInsert:     core.KeyInsert,
	tcell.KeyDelete:     core.KeyDelete,
	tcell.KeyHome:       core.KeyHome,
	tcell.KeyEnd:        core.KeyEnd,
	tcell.KeyPgUp:       core.KeyPageUp,
	tcell.KeyPgDn:       core.KeyPageDown,
	tcell.KeyPause:      core.KeyPause,
	tcell.KeyF1:         core.KeyF1,
	tcell.KeyF2:         core.KeyF1 + 1,
	tcell.KeyF3:         core.KeyF1 + 2,
	tcell.KeyF4:         core.KeyF1 + 3,
	tcell.KeyF5:         core.KeyF1 + 4,
	tcell.KeyF6:         core.KeyF1 + 5,
	tcell.KeyF7:         core.KeyF1 + 6,
	tcell.KeyF8:         core.KeyF1 + 7,
	tcell.KeyF9:         core.KeyF1 + 8,
	tcell.KeyF10:        core.KeyF1 + 9,
	tcell.KeyF11:        core.KeyF1 + 10,
	tcell.KeyF12:        core.KeyF1 + 11,
}

// Tcell draws through a tcell screen.
type Tcell struct {
	screen    tcell.Screen
	newScreen func() (tcell.Screen, error)
	events    chan tcell.Event
	done      chan struct{} // Closed by Close to stop the event pump
	holds     *holdTracker
	styles    map[core.Attr]tcell.Style
	now       func() time.Time
}

// NewTcell creates a tcell device. The screen is created on Open.
func NewTcell(holdWindow time.Duration) *Tcell {
	return &Tcell{
		newScreen: tcell.NewScreen,
		events:    make(chan tcell.Event, 256),
		holds:     newHoldTracker(holdWindow),
		styles:    make(map[core.Attr]tcell.Style),
		now:       time.Now,
	}
}

// Open initializes the tcell screen and starts pumping its events.
func (t *Tcell) Open(cfg Config) error {
	screen, err := t.newScreen()
	if err != nil {
		return fmt.Errorf("device: cannot create tcell screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("device: cannot init tcell screen: %w", err)
	}
	screen.HideCursor()
	screen.SetTitle(cfg.Title)
	screen.Clear()
	t.screen = screen
	t.done = make(chan struct{})

	// tcell only delivers input through the blocking PollEvent.
	go t.pump(screen.PollEvent, t.done)
	return nil
}

// pump forwards events from poll until poll returns nil or done is closed.
// A full queue blocks only until done.
func (t *Tcell) pump(poll func() tcell.Event, done <-chan struct{}) {
	for {
		ev := poll()
		if ev == nil {
			return
		}
		select {
		case t.events <- ev:
		case <-done:
			return
		}
	}
}

// MaxSize reports the screen size.
func (t *Tcell) MaxSize() (int, int) {
	if t.screen == nil {
		return 0, 0
	}
	return t.screen.Size()
}

// SetTitle sets the terminal window title.
func (t *Tcell) SetTitle(title string) {
	if t.screen != nil {
		t.screen.SetTitle(title)
	}
}

// Write stages every cell and shows them in one update.
func (t *Tcell) Write(cells []core.Cell, width, height int) error {
	if t.screen == nil {
		return fmt.Errorf("device: write before open")
	}
	for i, c := range cells {
		t.screen.SetContent(i%width, i/width, c.Glyph, nil, t.style(c.Attr))
	}
	t.screen.Show()
	return nil
}

func (t *Tcell) style(attr core.Attr) tcell.Style {
	if s, ok := t.styles[attr]; ok {
		return s
	}
	fg, bg := attr.ANSI()
	s := tcell.StyleDefault.
		Foreground(tcell.PaletteColor(fg)).
		Background(tcell.PaletteColor(bg))
	t.styles[attr] = s
	return s
}

// SampleKeys drains queued events and reports key levels.
func (t *Tcell) SampleKeys(dst *[core.KeyCount]uint16) {
	now := t.now()
drain:
	for {
		select {
		case ev := <-t.events:
			if key, ok := ev.(*tcell.EventKey); ok {
				tcellKeyCodes(key, func(k core.KeyCode) { t.holds.hit(k, now) })
			}
		default:
			break drain
		}
	}
	t.holds.sample(dst, now)
}

// Close stops the event pump and finalizes the screen.
func (t *Tcell) Close() error {
	if t.done != nil {
		close(t.done)
		t.done = nil
	}
	if t.screen != nil {
		t.screen.Fini()
		t.screen = nil
	}
	return nil
}

// tcellKeyCodes reports the key codes down in a tcell key event.
func tcellKeyCodes(ev *tcell.EventKey, emit func(core.KeyCode)) {
	mods := ev.Modifiers()
	if mods&tcell.ModShift != 0 {
		emit(core.KeyShift)
	}
	if mods&tcell.ModAlt != 0 {
		emit(core.KeyAlt)
	}
	if mods&tcell.ModCtrl != 0 {
		emit(core.KeyControl)
	}

	key := ev.Key()
	if key == tcell.KeyRune {
		emitRune(ev.Rune(), emit)
		return
	}
	if k, ok := tcellKeys[key]; ok {
		emit(k)
		return
	}
	if key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ {
		emit(core.KeyControl)
		emit(core.KeyA + core.KeyCode(key-tcell.KeyCtrlA))
	}
}
