package device

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/vovakirdan/cge/internal/core"
)

// ANSI drives an xterm-compatible terminal directly: raw mode input, the
// alternate screen and one styled write per frame.
type ANSI struct {
	in  *os.File
	out *os.File

	opts     Options
	output   *termenv.Output
	frame    *frameRenderer
	holds    *holdTracker
	rawState *term.State

	pending []byte // Undecoded input carried to the next sample
	escIdle bool   // A lone ESC was pending with no new input last sample

	// Window size before Open asked for a resize; restored by Close.
	resized      bool
	origW, origH int

	size  func() (int, int, error)
	sleep func(time.Duration)
	now   func() time.Time
}

// Resize requests are applied by the terminal asynchronously. Open polls the
// size this often, for at most resizeWait.
const (
	resizeWait = 200 * time.Millisecond
	resizePoll = 10 * time.Millisecond
)

// NewANSI creates an ANSI device on stdin/stdout.
func NewANSI(opts Options) *ANSI {
	if opts.HoldWindow <= 0 {
		opts.HoldWindow = DefaultHoldWindow
	}
	a := &ANSI{
		in:    os.Stdin,
		out:   os.Stdout,
		opts:  opts,
		holds: newHoldTracker(opts.HoldWindow),
		sleep: time.Sleep,
		now:   time.Now,
	}
	a.size = func() (int, int, error) { return term.GetSize(int(a.out.Fd())) }
	return a
}

// Open enters raw mode and the alternate screen, hides the cursor and asks
// the terminal for the requested window size and font face.
func (a *ANSI) Open(cfg Config) error {
	if !term.IsTerminal(int(a.in.Fd())) || !term.IsTerminal(int(a.out.Fd())) {
		return ErrNotTerminal
	}

	state, err := makeRaw(int(a.in.Fd()))
	if err != nil {
		return fmt.Errorf("device: cannot enter raw mode: %w", err)
	}
	a.rawState = state

	a.output = termenv.NewOutput(a.out)
	a.frame = newFrameRenderer(a.out)

	a.output.AltScreen()
	a.output.HideCursor()
	a.output.ClearScreen()
	a.output.SetWindowTitle(cfg.Title)

	g := cfg.Geometry
	if a.opts.ResizeWindow {
		a.resizeTo(g.Width, g.Height)
	}
	if a.opts.SetFont {
		// xterm OSC 50: set the font.
		fmt.Fprintf(a.out, "\x1b]50;%s:pixelsize=%d\x07", g.FaceName(), g.FontHeight)
	}
	return nil
}

// resizeTo asks the terminal for a w x h text area and waits for it to
// apply. The previous size is kept for Close.
func (a *ANSI) resizeTo(w, h int) {
	cw, ch, err := a.size()
	if err != nil || (cw == w && ch == h) {
		return
	}
	a.requestSize(w, h)
	a.resized, a.origW, a.origH = true, cw, ch
	a.awaitSize(w, h)
}

// requestSize asks an xterm-compatible terminal to resize its text area.
func (a *ANSI) requestSize(w, h int) {
	fmt.Fprintf(a.out, "\x1b[8;%d;%dt", h, w)
}

// awaitSize polls until the terminal is at least w x h or resizeWait
// passes. A terminal that ignores the request fails the geometry check later.
func (a *ANSI) awaitSize(w, h int) bool {
	deadline := a.now().Add(resizeWait)
	for {
		cw, ch, err := a.size()
		if err == nil && cw >= w && ch >= h {
			return true
		}
		if !a.now().Before(deadline) {
			return false
		}
		a.sleep(resizePoll)
	}
}

// MaxSize reports the current terminal size. Zero when stdout is not a tty.
func (a *ANSI) MaxSize() (int, int) {
	w, h, err := a.size()
	if err != nil {
		return 0, 0
	}
	return w, h
}

// SetTitle sets the terminal window title.
func (a *ANSI) SetTitle(title string) {
	if a.output == nil {
		return
	}
	a.output.SetWindowTitle(title)
}

// Write renders the frame into one string and writes it with a single call.
func (a *ANSI) Write(cells []core.Cell, width, height int) error {
	if a.frame == nil {
		return fmt.Errorf("device: write before open")
	}
	_, err := io.WriteString(a.out, a.frame.render(cells, width, height))
	return err
}

// SampleKeys drains pending input without blocking and reports key levels.
func (a *ANSI) SampleKeys(dst *[core.KeyCount]uint16) {
	now := a.now()
	data, err := readAvailable(int(a.in.Fd()))
	if err == nil && len(data) > 0 {
		a.pending = append(a.pending, data...)
		a.escIdle = false
	}

	n := decodeKeys(a.pending, func(k core.KeyCode) { a.holds.hit(k, now) })
	a.pending = a.pending[:copy(a.pending, a.pending[n:])]

	// A lone ESC that saw no follow-up for a whole frame is the Escape key.
	if len(a.pending) == 1 && a.pending[0] == 0x1b {
		if a.escIdle {
			a.holds.hit(core.KeyEscape, now)
			a.pending = a.pending[:0]
			a.escIdle = false
		} else {
			a.escIdle = true
		}
	}

	a.holds.sample(dst, now)
}

// Close leaves the alternate screen, shows the cursor, gives the window back
// its size and restores the tty.
func (a *ANSI) Close() error {
	if a.resized {
		a.requestSize(a.origW, a.origH)
		a.resized = false
	}
	if a.output != nil {
		a.output.Reset()
		a.output.ShowCursor()
		a.output.ExitAltScreen()
	}
	if a.rawState != nil {
		if err := term.Restore(int(a.in.Fd()), a.rawState); err != nil {
			return fmt.Errorf("device: cannot restore terminal: %w", err)
		}
		a.rawState = nil
	}
	return nil
}

// frameRenderer converts a cell array into a styled string.
// Adjacent cells with the same attribute share one styled run.
type frameRenderer struct {
	renderer *lipgloss.Renderer
	styles   map[core.Attr]lipgloss.Style
	widths   *runewidth.Condition
	sb       strings.Builder
	run      strings.Builder
}

func newFrameRenderer(w io.Writer) *frameRenderer {
	widths := runewidth.NewCondition()
	widths.EastAsianWidth = false
	return &frameRenderer{
		renderer: lipgloss.NewRenderer(w),
		styles:   make(map[core.Attr]lipgloss.Style),
		widths:   widths,
	}
}

// style returns the cached lipgloss style for attr.
func (f *frameRenderer) style(attr core.Attr) lipgloss.Style {
	if s, ok := f.styles[attr]; ok {
		return s
	}
	fg, bg := attr.ANSI()
	s := f.renderer.NewStyle().
		Foreground(lipgloss.Color(strconv.Itoa(fg))).
		Background(lipgloss.Color(strconv.Itoa(bg)))
	f.styles[attr] = s
	return s
}

// glyph keeps the grid aligned: anything not exactly one column wide
// is drawn as a space.
func (f *frameRenderer) glyph(r rune) rune {
	if r < 0x20 || f.widths.RuneWidth(r) != 1 {
		return ' '
	}
	return r
}

func (f *frameRenderer) render(cells []core.Cell, width, height int) string {
	f.sb.Reset()
	f.sb.Grow(width*height*2 + height*2)
	f.sb.WriteString("\x1b[H")

	for y := range height {
		if y > 0 {
			f.sb.WriteString("\r\n")
		}
		row := cells[y*width : (y+1)*width]

		x := 0
		for x < width {
			attr := row[x].Attr
			f.run.Reset()
			for x < width && row[x].Attr == attr {
				f.run.WriteRune(f.glyph(row[x].Glyph))
				x++
			}
			f.sb.WriteString(f.style(attr).Render(f.run.String()))
		}
	}
	return f.sb.String()
}
