package tui

import (
	"errors"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/cge/internal/core"
	"github.com/vovakirdan/cge/internal/device"
	"github.com/vovakirdan/cge/internal/engine"
	"github.com/vovakirdan/cge/internal/registry"
)

// Preview limits
const (
	previewFPS    = 15
	previewWidth  = 40
	previewHeight = 15
)

// TickMsg is sent to advance the menu preview by one frame.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(fps int) tea.Cmd {
	interval := time.Second / time.Duration(fps)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// preview runs a game headless on a memory device, with no keys pressed,
// so the menu can show a scaled-down live picture of it.
type preview struct {
	gameID string
	dev    *device.Memory
	engine *engine.Engine
	geom   core.Geometry
	cells  *cellRenderer
	err    error // Why the game stopped, if it failed
}

// newPreview creates and initializes the game registered under id.
func newPreview(id string) (*preview, error) {
	g, err := registry.Create(id)
	if err != nil {
		return nil, err
	}
	geom := g.Geometry()
	dev := device.NewMemory(geom.Width, geom.Height)
	e, err := engine.New(dev, engine.Options{Title: g.Title(), Geometry: geom}, g)
	if err != nil {
		return nil, err
	}
	p := &preview{gameID: id, dev: dev, engine: e, geom: geom, cells: newCellRenderer()}
	p.step(0)
	return p, nil
}

// step advances the game by dt seconds. A game that ends is left on its
// last frame and a failure is kept for the view.
func (p *preview) step(dt float64) {
	if p.engine.State() == engine.StateTerminated {
		return
	}
	if err := p.engine.Step(dt); err != nil && !errors.Is(err, engine.ErrQuit) {
		p.err = err
	}
}

// Err returns the error that stopped the game, or nil.
func (p *preview) Err() error {
	return p.err
}

// view renders the last frame, sampled down to fit maxW x maxH cells.
// A failed game gets its error under the frame.
func (p *preview) view(maxW, maxH int) string {
	frame := p.cells.render(p.dev.Frame(), p.geom.Width, p.geom.Height, maxW, maxH)
	if p.err == nil {
		return frame
	}
	return frame + "\n" + truncate("stopped: "+p.err.Error(), maxW)
}

// cellRenderer caches one lipgloss style per cell attribute.
type cellRenderer struct {
	styles map[core.Attr]lipgloss.Style
}

func newCellRenderer() *cellRenderer {
	return &cellRenderer{styles: make(map[core.Attr]lipgloss.Style)}
}

func (r *cellRenderer) style(attr core.Attr) lipgloss.Style {
	if s, ok := r.styles[attr]; ok {
		return s
	}
	fg, bg := attr.ANSI()
	s := lipgloss.NewStyle().
		Foreground(lipgloss.Color(strconv.Itoa(fg))).
		Background(lipgloss.Color(strconv.Itoa(bg)))
	r.styles[attr] = s
	return s
}

// render converts a cell buffer to a styled string, keeping every
// n-th cell on each axis so that the result fits maxW x maxH.
// Groups adjacent cells with the same attribute to minimize ANSI escape sequences.
func (r *cellRenderer) render(cells []core.Cell, w, h, maxW, maxH int) string {
	if len(cells) < w*h || w <= 0 || h <= 0 {
		return ""
	}
	stepX := max(1, (w+maxW-1)/maxW)
	stepY := max(1, (h+maxH-1)/maxH)

	var sb strings.Builder
	var run strings.Builder
	for y := 0; y < h; y += stepY {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < w {
			attr := cells[y*w+x].Attr
			run.Reset()
			for x < w && cells[y*w+x].Attr == attr {
				run.WriteRune(previewGlyph(cells[y*w+x].Glyph))
				x += stepX
			}
			sb.WriteString(r.style(attr).Render(run.String()))
		}
	}
	return sb.String()
}

// previewGlyph keeps block and ASCII glyphs and blanks everything else,
// including the zero rune of a never-drawn cell.
func previewGlyph(r rune) rune {
	if r == core.BlockGlyph || (r >= 0x20 && r < 0x7f) {
		return r
	}
	return ' '
}
