package core

// KeyCode identifies a key in the engine's stable 0-255 code space.
// Numbering follows the Windows virtual-key table so that letters and
// digits match their uppercase ASCII value.
type KeyCode int

// KeyCount is the size of the key-code space.
const KeyCount = 256

// KeyDownBit is the bit of a raw key signal that marks the key as down.
const KeyDownBit uint16 = 0x8000

// Key codes.
const (
	KeyBackspace KeyCode = 0x08
	KeyTab       KeyCode = 0x09
	KeyEnter     KeyCode = 0x0D
	KeyShift     KeyCode = 0x10
	KeyControl   KeyCode = 0x11
	KeyAlt       KeyCode = 0x12
	KeyPause     KeyCode = 0x13
	KeyEscape    KeyCode = 0x1B
	KeySpace     KeyCode = 0x20
	KeyPageUp    KeyCode = 0x21
	KeyPageDown  KeyCode = 0x22
	KeyEnd       KeyCode = 0x23
	KeyHome      KeyCode = 0x24
	KeyLeft      KeyCode = 0x25
	KeyUp        KeyCode = 0x26
	KeyRight     KeyCode = 0x27
	KeyDown      KeyCode = 0x28
	KeyInsert    KeyCode = 0x2D
	KeyDelete    KeyCode = 0x2E
	Key0         KeyCode = 0x30
	KeyA         KeyCode = 0x41
	KeyF1        KeyCode = 0x70
)

// Valid reports whether k lies inside the key-code space.
func (k KeyCode) Valid() bool {
	return k >= 0 && k < KeyCount
}

// KeyForRune maps a printable ASCII rune to its key code.
// Letters map case-insensitively. ok is false for runes without a key.
func KeyForRune(r rune) (k KeyCode, ok bool) {
	switch {
	case r >= 'a' && r <= 'z':
		return KeyA + KeyCode(r-'a'), true
	case r >= 'A' && r <= 'Z':
		return KeyA + KeyCode(r-'A'), true
	case r >= '0' && r <= '9':
		return Key0 + KeyCode(r-'0'), true
	case r == ' ':
		return KeySpace, true
	}
	if k, ok := punctuation[r]; ok {
		return k, true
	}
	return 0, false
}

// punctuation maps US-layout punctuation to the OEM key codes.
var punctuation = map[rune]KeyCode{
	';': 0xBA, ':': 0xBA,
	'=': 0xBB, '+': 0xBB,
	',': 0xBC, '<': 0xBC,
	'-': 0xBD, '_': 0xBD,
	'.': 0xBE, '>': 0xBE,
	'/': 0xBF, '?': 0xBF,
	'`': 0xC0, '~': 0xC0,
	'[': 0xDB, '{': 0xDB,
	'\\': 0xDC, '|': 0xDC,
	']': 0xDD, '}': 0xDD,
	'\'': 0xDE, '"': 0xDE,
}
