package device

import (
	"time"

	"github.com/vovakirdan/cge/internal/core"
)

// holdTracker turns a stream of terminal key events into key levels.
// Terminals report presses (and auto-repeats) but never releases, so a key
// counts as down until window passes without another event for it.
type holdTracker struct {
	window time.Duration
	last   [core.KeyCount]time.Time
}

func newHoldTracker(window time.Duration) *holdTracker {
	return &holdTracker{window: window}
}

// hit records an event for key k at time at.
func (h *holdTracker) hit(k core.KeyCode, at time.Time) {
	if !k.Valid() {
		return
	}
	h.last[k] = at
}

// sample rewrites every entry of dst with the level of its key at now.
func (h *holdTracker) sample(dst *[core.KeyCount]uint16, now time.Time) {
	for i := range dst {
		last := h.last[i]
		if !last.IsZero() && now.Sub(last) < h.window {
			dst[i] = core.KeyDownBit
		} else {
			dst[i] = 0
		}
	}
}
