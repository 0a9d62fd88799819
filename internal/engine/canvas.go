package engine

import (
	"strings"
	"unicode"

	"github.com/vovakirdan/cge/internal/core"
)

// Canvas is the drawing API over a surface buffer. Clients draw through it
// and never touch the buffer or the display directly.
type Canvas struct {
	surface      *Surface
	defaultColor core.Attr
}

// NewCanvas creates a canvas drawing into surface.
func NewCanvas(surface *Surface) *Canvas {
	return &Canvas{surface: surface}
}

// Width returns the surface width in cells.
func (c *Canvas) Width() int {
	return c.surface.geom.Width
}

// Height returns the surface height in cells.
func (c *Canvas) Height() int {
	return c.surface.geom.Height
}

// FontWidth returns the cell width in pixels.
func (c *Canvas) FontWidth() int {
	return c.surface.geom.FontWidth
}

// FontHeight returns the cell height in pixels.
func (c *Canvas) FontHeight() int {
	return c.surface.geom.FontHeight
}

// DefaultColor returns the attribute Clear fills with.
func (c *Canvas) DefaultColor() core.Attr {
	return c.defaultColor
}

// SetDefaultColor sets the attribute Clear fills with.
func (c *Canvas) SetDefaultColor(attr core.Attr) {
	c.defaultColor = attr
}

// SetPixel draws a block glyph at (x, y).
func (c *Canvas) SetPixel(x, y int, attr core.Attr) {
	c.SetGlyph(x, y, attr, core.BlockGlyph)
}

// SetGlyph draws glyph at (x, y).
// The position is checked as a linear index, so an x past the right edge
// lands on the following row; an index outside the buffer is ignored.
func (c *Canvas) SetGlyph(x, y int, attr core.Attr, glyph rune) {
	i := y*c.surface.geom.Width + x
	if i < 0 || i >= len(c.surface.cells) {
		return
	}
	c.surface.cells[i] = core.Cell{Glyph: glyph, Attr: attr}
}

// DrawText writes text from (x, y) to the right, one rune per cell.
// Text is cut at the right edge, never wrapped. Blank text draws nothing.
func (c *Canvas) DrawText(x, y int, attr core.Attr, text string) {
	if strings.TrimFunc(text, unicode.IsSpace) == "" {
		return
	}
	i := 0
	for _, r := range text {
		if x+i >= c.surface.geom.Width {
			return
		}
		c.SetGlyph(x+i, y, attr, r)
		i++
	}
}

// FillRect draws a block of pixels.
func (c *Canvas) FillRect(r core.Rect, attr core.Attr) {
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			c.SetPixel(x, y, attr)
		}
	}
}

// Clear fills every cell with a block glyph in the default color.
func (c *Canvas) Clear() {
	blank := core.Cell{Glyph: core.BlockGlyph, Attr: c.defaultColor}
	for i := range c.surface.cells {
		c.surface.cells[i] = blank
	}
}

// Cell returns the cell at (x, y), or the zero cell outside the surface.
func (c *Canvas) Cell(x, y int) core.Cell {
	if x < 0 || x >= c.Width() || y < 0 || y >= c.Height() {
		return core.Cell{}
	}
	return c.surface.cells[y*c.Width()+x]
}

// Row returns the glyphs of row y as a string.
func (c *Canvas) Row(y int) string {
	if y < 0 || y >= c.Height() {
		return ""
	}
	var sb strings.Builder
	for _, cell := range c.surface.cells[y*c.Width() : (y+1)*c.Width()] {
		sb.WriteRune(cell.Glyph)
	}
	return sb.String()
}
