package pixel

import (
	"errors"
	"testing"

	"github.com/vovakirdan/cge/internal/core"
	"github.com/vovakirdan/cge/internal/device"
	"github.com/vovakirdan/cge/internal/engine"
)

func newTestEngine(t *testing.T) (*Game, *engine.Engine, *device.Memory) {
	t.Helper()
	g := New()
	dev := device.NewMemory(64, 32)
	e, err := engine.New(dev, engine.Options{Title: g.Title(), Geometry: g.Geometry()}, g)
	if err != nil {
		t.Fatalf("engine.New() error = %v", err)
	}
	return g, e, dev
}

func TestPixelMovesWhileHeld(t *testing.T) {
	g, e, dev := newTestEngine(t)

	dev.Press(core.KeySpace)
	e.Step(0.5) // pressed, not yet held
	if g.Position() != 0 {
		t.Fatalf("Position() = %v after first press, expected 0", g.Position())
	}

	e.Step(0.5)
	if g.Position() != 10 {
		t.Fatalf("Position() = %v, expected 10", g.Position())
	}
	if got := dev.Frame()[10]; got.Glyph != core.BlockGlyph || got.Attr != pixelAttr {
		t.Errorf("cell 10 = %+v, expected the pixel", got)
	}

	dev.Release(core.KeySpace)
	e.Step(0.5)
	if g.Position() != 10 {
		t.Errorf("Position() = %v after release, expected 10", g.Position())
	}
}

func TestPixelWrapsOntoNextRows(t *testing.T) {
	g, e, dev := newTestEngine(t)

	dev.Press(core.KeySpace)
	e.Step(0.1)
	e.Step(4.5) // 90 cells: row 1, column 26

	if g.Position() != 90 {
		t.Fatalf("Position() = %v, expected 90", g.Position())
	}
	if got := dev.Frame()[90]; got.Attr != pixelAttr {
		t.Errorf("cell (26, 1) attr = %#x, expected %#x", got.Attr, pixelAttr)
	}
}

func TestPixelResetsPastBuffer(t *testing.T) {
	g, e, dev := newTestEngine(t)

	dev.Press(core.KeySpace)
	e.Step(0.1)
	e.Step(200) // 4000 cells, past 64*32

	if g.Position() != 0 {
		t.Errorf("Position() = %v, expected reset to 0", g.Position())
	}
}

func TestCaption(t *testing.T) {
	_, e, dev := newTestEngine(t)
	e.Step(0.1)

	frame := dev.Frame()
	for i, r := range Caption[:44] {
		cell := frame[captionX+i]
		if cell.Glyph != r || cell.Attr != captionAttr {
			t.Fatalf("caption cell %d = %+v, expected %q", i, cell, r)
		}
	}
	// The caption is cut at the right edge rather than wrapped.
	if frame[64].Glyph != core.BlockGlyph {
		t.Errorf("row 1 starts with %q, expected a cleared cell", frame[64].Glyph)
	}
}

func TestEscapeQuits(t *testing.T) {
	_, e, dev := newTestEngine(t)

	dev.Press(core.KeyEscape)
	if err := e.Step(0.1); !errors.Is(err, engine.ErrQuit) {
		t.Errorf("Step() error = %v, expected ErrQuit", err)
	}
}
