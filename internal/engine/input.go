package engine

import (
	"github.com/vovakirdan/cge/internal/core"
	"github.com/vovakirdan/cge/internal/device"
)

// InputTracker classifies key transitions between two consecutive polls.
type InputTracker struct {
	keyboard device.Keyboard
	previous [core.KeyCount]uint16
	current  [core.KeyCount]uint16
}

// NewInputTracker creates a tracker sampling keyboard.
func NewInputTracker(keyboard device.Keyboard) *InputTracker {
	return &InputTracker{keyboard: keyboard}
}

// Poll shifts the current sample into previous and takes a new one.
// It must run exactly once per frame, before any predicate is read.
func (t *InputTracker) Poll() {
	t.previous = t.current
	t.current = [core.KeyCount]uint16{}
	t.keyboard.SampleKeys(&t.current)
}

func (t *InputTracker) down(k core.KeyCode) (now, before bool) {
	if !k.Valid() {
		return false, false
	}
	return t.current[k]&core.KeyDownBit != 0, t.previous[k]&core.KeyDownBit != 0
}

// IsPressed reports whether k went down this frame.
func (t *InputTracker) IsPressed(k core.KeyCode) bool {
	now, before := t.down(k)
	return now && !before
}

// IsHeld reports whether k was down in both this and the previous frame.
func (t *InputTracker) IsHeld(k core.KeyCode) bool {
	now, before := t.down(k)
	return now && before
}

// IsReleased reports whether k went up this frame.
func (t *InputTracker) IsReleased(k core.KeyCode) bool {
	now, before := t.down(k)
	return !now && before
}
