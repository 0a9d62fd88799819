package core

// BlockGlyph is the glyph written by pixel operations and by Clear.
const BlockGlyph = '█'

// Cell is one addressable unit of the display grid.
type Cell struct {
	Glyph rune
	Attr  Attr
}
