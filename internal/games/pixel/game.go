// Package pixel is the smallest engine client: a single pixel that crawls
// along the buffer while Space is held.
package pixel

import (
	"github.com/vovakirdan/cge/internal/core"
	"github.com/vovakirdan/cge/internal/engine"
	"github.com/vovakirdan/cge/internal/registry"
)

const (
	// Speed is how many cells per second the pixel advances.
	Speed = 20.0

	Caption = "Example game. Hold SPACEBAR to move the pixel"

	captionX    = 20
	captionAttr = core.Attr(0x4F)
	pixelAttr   = core.Attr(0x0E)
)

// Game implements the pixel demo.
type Game struct {
	pos float64
}

// New creates a new pixel game instance.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "pixel"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Pixel"
}

// Geometry returns the surface this game is drawn for.
func (g *Game) Geometry() core.Geometry {
	return core.Geometry{Width: 64, Height: 32, FontWidth: 10, FontHeight: 10}
}

// Position returns the linear cell index of the pixel.
func (g *Game) Position() float64 {
	return g.pos
}

// OnCreate resets the pixel to the first cell.
func (g *Game) OnCreate(ctx *engine.Context) error {
	g.pos = 0
	return nil
}

// OnUpdate moves and draws the pixel.
func (g *Game) OnUpdate(ctx *engine.Context, dt float64) error {
	if ctx.IsPressed(core.KeyEscape) {
		return engine.ErrQuit
	}

	ctx.Clear()
	ctx.DrawText(captionX, 0, captionAttr, Caption)

	if ctx.IsHeld(core.KeySpace) {
		g.pos += dt * Speed
		if float64(ctx.Width()*ctx.Height()) < g.pos {
			g.pos = 0
		}
	}

	// x runs past the row end on purpose: the canvas wraps it onto the
	// following rows.
	ctx.SetPixel(int(g.pos), 0, pixelAttr)
	return nil
}

func init() {
	registry.Register("pixel", func() registry.Game {
		return New()
	})
}
