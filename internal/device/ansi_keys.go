package device

import (
	"unicode/utf8"

	"github.com/vovakirdan/cge/internal/core"
)

// csiKeys maps the final byte of a CSI or SS3 sequence to a key.
var csiKeys = map[byte]core.KeyCode{
	'A': core.KeyUp,
	'B': core.KeyDown,
	'C': core.KeyRight,
	'D': core.KeyLeft,
	'H': core.KeyHome,
	'F': core.KeyEnd,
	'P': core.KeyF1,
	'Q': core.KeyF1 + 1,
	'R': core.KeyF1 + 2,
	'S': core.KeyF1 + 3,
}

// tildeKeys maps the numeric parameter of a "CSI n ~" sequence to a key.
var tildeKeys = map[int]core.KeyCode{
	1: core.KeyHome, 7: core.KeyHome,
	2: core.KeyInsert,
	3: core.KeyDelete,
	4: core.KeyEnd, 8: core.KeyEnd,
	5:  core.KeyPageUp,
	6:  core.KeyPageDown,
	11: core.KeyF1, 12: core.KeyF1 + 1, 13: core.KeyF1 + 2, 14: core.KeyF1 + 3,
	15: core.KeyF1 + 4, 17: core.KeyF1 + 5, 18: core.KeyF1 + 6, 19: core.KeyF1 + 7,
	20: core.KeyF1 + 8, 21: core.KeyF1 + 9, 23: core.KeyF1 + 10, 24: core.KeyF1 + 11,
}

// decodeKeys parses raw terminal input and calls emit for every key that is
// down in it, modifiers included. It returns the number of bytes consumed;
// an incomplete escape or UTF-8 sequence at the end is left unconsumed.
func decodeKeys(data []byte, emit func(core.KeyCode)) int {
	i := 0
	for i < len(data) {
		b := data[i]

		switch {
		case b >= 0x20 && b < 0x7f:
			emitRune(rune(b), emit)
			i++

		case b == 0x1b:
			n := decodeEscape(data[i:], emit)
			if n == 0 {
				return i
			}
			i += n

		case b < 0x20:
			emitControl(b, emit)
			i++

		case b == 0x7f:
			emit(core.KeyBackspace)
			i++

		default:
			if !utf8.FullRune(data[i:]) {
				return i
			}
			r, size := utf8.DecodeRune(data[i:])
			emitRune(r, emit)
			i += size
		}
	}
	return i
}

func emitRune(r rune, emit func(core.KeyCode)) {
	k, ok := core.KeyForRune(r)
	if !ok {
		return
	}
	if r >= 'A' && r <= 'Z' {
		emit(core.KeyShift)
	}
	emit(k)
}

func emitControl(b byte, emit func(core.KeyCode)) {
	switch b {
	case 0x08:
		emit(core.KeyBackspace)
	case 0x09:
		emit(core.KeyTab)
	case 0x0a, 0x0d:
		emit(core.KeyEnter)
	case 0x00:
		emit(core.KeyControl)
		emit(core.KeySpace)
	default:
		// Ctrl+A .. Ctrl+Z and the few control bytes above them.
		emit(core.KeyControl)
		if b <= 0x1a {
			emit(core.KeyA + core.KeyCode(b-1))
		}
	}
}

// decodeEscape handles a sequence starting with ESC and returns its length,
// or 0 when more bytes are needed. A lone ESC also returns 0; the caller
// resolves it to the Escape key once no more input arrives.
func decodeEscape(data []byte, emit func(core.KeyCode)) int {
	if len(data) < 2 {
		return 0
	}

	switch next := data[1]; {
	case next == 0x1b:
		emit(core.KeyAlt)
		emit(core.KeyEscape)
		return 2
	case next == '[':
		return decodeCSI(data, emit)
	case next == 'O':
		if len(data) < 3 {
			return 0
		}
		if k, ok := csiKeys[data[2]]; ok {
			emit(k)
		}
		return 3
	case next < 0x20:
		emit(core.KeyAlt)
		emitControl(next, emit)
		return 2
	case next < 0x7f:
		emit(core.KeyAlt)
		emitRune(rune(next), emit)
		return 2
	}

	// ESC followed by something unexpected: report the Escape key alone.
	emit(core.KeyEscape)
	return 1
}

// decodeCSI parses "ESC [ params final".
func decodeCSI(data []byte, emit func(core.KeyCode)) int {
	end := 2
	for ; end < len(data); end++ {
		b := data[end]
		if b >= 0x40 && b <= 0x7e {
			break
		}
		if b < 0x20 || b > 0x7e {
			// Malformed: drop the introducer.
			return 2
		}
	}
	if end >= len(data) {
		return 0
	}

	params := parseParams(data[2:end])
	final := data[end]

	var key core.KeyCode
	var ok bool
	if final == '~' {
		if len(params) > 0 {
			key, ok = tildeKeys[params[0]]
		}
	} else {
		key, ok = csiKeys[final]
	}

	if ok {
		if len(params) > 1 {
			emitModifiers(params[1], emit)
		}
		emit(key)
	}
	return end + 1
}

// emitModifiers decodes the xterm modifier parameter (1 + bitmask).
// An empty or 1 parameter means no modifiers.
func emitModifiers(p int, emit func(core.KeyCode)) {
	if p <= 1 {
		return
	}
	mask := p - 1
	if mask&1 != 0 {
		emit(core.KeyShift)
	}
	if mask&2 != 0 {
		emit(core.KeyAlt)
	}
	if mask&4 != 0 {
		emit(core.KeyControl)
	}
}

// parseParams splits "1;5" into [1 5]. Non-digit bytes other than ';' are ignored.
func parseParams(raw []byte) []int {
	var params []int
	cur, seen := 0, false
	for _, b := range raw {
		switch {
		case b >= '0' && b <= '9':
			cur = cur*10 + int(b-'0')
			seen = true
		case b == ';':
			params = append(params, cur)
			cur, seen = 0, false
		}
	}
	if seen || len(params) > 0 {
		params = append(params, cur)
	}
	return params
}
