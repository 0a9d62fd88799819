package core

// Attr is a 16-bit console cell attribute.
// Bits 0-3 select the foreground console color, bits 4-7 the background.
// Console colors use the bit order blue=1, green=2, red=4, intensity=8.
type Attr uint16

// Console colors, usable as foreground directly or shifted with OnBackground.
const (
	Black Attr = iota
	DarkBlue
	DarkGreen
	DarkCyan
	DarkRed
	DarkMagenta
	DarkYellow
	Gray
	DarkGray
	Blue
	Green
	Cyan
	Red
	Magenta
	Yellow
	White
)

// NewAttr combines a foreground and a background console color.
func NewAttr(fg, bg Attr) Attr {
	return fg&0x0F | (bg&0x0F)<<4
}

// OnBackground returns the color moved into the background nibble.
func (a Attr) OnBackground() Attr {
	return (a & 0x0F) << 4
}

// Foreground returns the foreground console color (0-15).
func (a Attr) Foreground() int {
	return int(a & 0x0F)
}

// Background returns the background console color (0-15).
func (a Attr) Background() int {
	return int(a>>4) & 0x0F
}

// consoleToANSI maps console color order (BGR) to ANSI order (RGB).
var consoleToANSI = [16]int{0, 4, 2, 6, 1, 5, 3, 7, 8, 12, 10, 14, 9, 13, 11, 15}

// ANSI returns the foreground and background as ANSI 16-color palette indices.
func (a Attr) ANSI() (fg, bg int) {
	return consoleToANSI[a.Foreground()], consoleToANSI[a.Background()]
}
