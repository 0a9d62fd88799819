package engine

import (
	"testing"

	"github.com/vovakirdan/cge/internal/core"
	"github.com/vovakirdan/cge/internal/device"
)

func newTestCanvas(t *testing.T, w, h int) (*Canvas, *Surface) {
	t.Helper()
	s := NewSurface(device.NewMemory(200, 200))
	if err := s.Initialize(core.Geometry{Width: w, Height: h, FontWidth: 8, FontHeight: 8}, "test"); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	return NewCanvas(s), s
}

func TestSetPixel(t *testing.T) {
	c, _ := newTestCanvas(t, 10, 5)
	attr := core.NewAttr(core.Red, core.Black)

	c.SetPixel(3, 2, attr)

	got := c.Cell(3, 2)
	if got.Glyph != core.BlockGlyph || got.Attr != attr {
		t.Errorf("Cell(3, 2) = %+v, expected block in %#x", got, attr)
	}
}

func TestSetPixelOutOfRange(t *testing.T) {
	c, s := newTestCanvas(t, 10, 5)
	before := append([]core.Cell(nil), s.cells...)

	for _, p := range [][2]int{{0, 5}, {0, -1}, {-1, 0}, {9, 4 + 1}, {100, 100}} {
		c.SetPixel(p[0], p[1], core.White)
	}

	for i := range before {
		if s.cells[i] != before[i] {
			t.Fatalf("cell %d changed by out-of-range SetPixel", i)
		}
	}
}

func TestSetPixelWrapsLinearIndex(t *testing.T) {
	c, _ := newTestCanvas(t, 10, 5)

	// x past the right edge lands on the next row.
	c.SetPixel(12, 0, core.White)

	if got := c.Cell(2, 1).Glyph; got != core.BlockGlyph {
		t.Errorf("Cell(2, 1).Glyph = %q, expected block", got)
	}
}

func TestDrawText(t *testing.T) {
	tests := []struct {
		name     string
		x        int
		text     string
		expected string
	}{
		{"fits", 2, "HI", "\x00\x00HI\x00\x00\x00\x00\x00\x00"},
		{"clipped at right edge", 8, "ABCD", "\x00\x00\x00\x00\x00\x00\x00\x00AB"},
		{"empty", 0, "", "\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00"},
		{"blank", 0, " ", "\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00"},
		{"whitespace", 0, "\t \n", "\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := newTestCanvas(t, 10, 2)
			c.DrawText(tc.x, 0, core.White, tc.text)

			if got := c.Row(0); got != tc.expected {
				t.Errorf("Row(0) = %q, expected %q", got, tc.expected)
			}
			if got := c.Row(1); got != "\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00" {
				t.Errorf("DrawText spilled into row 1: %q", got)
			}
		})
	}
}

func TestDrawTextAttr(t *testing.T) {
	c, _ := newTestCanvas(t, 10, 1)
	attr := core.NewAttr(core.Yellow, core.Blue)

	c.DrawText(0, 0, attr, "ok")

	for x := range 2 {
		if got := c.Cell(x, 0).Attr; got != attr {
			t.Errorf("Cell(%d, 0).Attr = %#x, expected %#x", x, got, attr)
		}
	}
	if got := c.Cell(2, 0).Attr; got != 0 {
		t.Errorf("Cell(2, 0).Attr = %#x, expected untouched", got)
	}
}

func TestClear(t *testing.T) {
	c, s := newTestCanvas(t, 4, 3)
	c.DrawText(0, 0, core.White, "abcd")
	c.SetDefaultColor(core.NewAttr(core.Green, core.Green))

	c.Clear()

	expected := core.Cell{Glyph: core.BlockGlyph, Attr: core.NewAttr(core.Green, core.Green)}
	for i, cell := range s.cells {
		if cell != expected {
			t.Fatalf("cell %d = %+v, expected %+v", i, cell, expected)
		}
	}
}

func TestFillRect(t *testing.T) {
	c, _ := newTestCanvas(t, 6, 4)

	c.FillRect(core.NewRect(1, 1, 2, 2), core.White)

	expected := []string{
		"\x00\x00\x00\x00\x00\x00",
		"\x00██\x00\x00\x00",
		"\x00██\x00\x00\x00",
		"\x00\x00\x00\x00\x00\x00",
	}
	for y, row := range expected {
		if got := c.Row(y); got != row {
			t.Errorf("Row(%d) = %q, expected %q", y, got, row)
		}
	}
}

func TestCanvasDimensions(t *testing.T) {
	c, _ := newTestCanvas(t, 12, 7)

	if c.Width() != 12 || c.Height() != 7 || c.FontWidth() != 8 || c.FontHeight() != 8 {
		t.Errorf("dimensions = %dx%d font %dx%d", c.Width(), c.Height(), c.FontWidth(), c.FontHeight())
	}
}
