// Package device provides the platform display and keyboard the engine draws
// to and samples from. Backends: a headless in-memory device, a raw ANSI
// terminal device and a tcell screen device.
package device

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/cge/internal/core"
)

// Backend names accepted by New.
const (
	BackendANSI   = "ansi"
	BackendTcell  = "tcell"
	BackendMemory = "memory"
)

// DefaultHoldWindow is how long a terminal key stays down after its last event.
const DefaultHoldWindow = 120 * time.Millisecond

var (
	// ErrGeometry is returned when the requested surface exceeds the device.
	ErrGeometry = errors.New("device: requested size exceeds device maximum")
	// ErrNotTerminal is returned when a terminal backend runs without a tty.
	ErrNotTerminal = errors.New("device: not a terminal")
	// ErrUnsupported is returned for backends unavailable on this platform.
	ErrUnsupported = errors.New("device: backend not supported on this platform")
	// ErrUnknownBackend is returned by New for an unknown backend name.
	ErrUnknownBackend = errors.New("device: unknown backend")
)

// Config is what a display is configured to when opened.
type Config struct {
	Title    string
	Geometry core.Geometry
}

// Display is the output half of a device.
type Display interface {
	// Open configures the display to exactly the requested geometry,
	// applies the font face policy and hides the cursor.
	Open(cfg Config) error

	// MaxSize reports the largest surface the display can show, in cells.
	MaxSize() (width, height int)

	// SetTitle sets the window title.
	SetTitle(title string)

	// Write pushes the whole row-major cell array to the display in one call.
	Write(cells []core.Cell, width, height int) error

	// Close restores the display to the state it had before Open.
	Close() error
}

// Keyboard is the input half of a device.
type Keyboard interface {
	// SampleKeys writes the raw signal of every key code into dst.
	// core.KeyDownBit set means the key is currently down.
	SampleKeys(dst *[core.KeyCount]uint16)
}

// Device is a display plus the keyboard attached to it.
type Device interface {
	Display
	Keyboard
}

// Options selects and tunes a backend.
type Options struct {
	Backend      string
	HoldWindow   time.Duration // Terminal backends: key level synthesis window
	SetFont      bool          // ANSI: request the policy font face from the terminal
	ResizeWindow bool          // ANSI: ask the terminal to resize to the surface
	MaxWidth     int           // Memory: reported maximum width
	MaxHeight    int           // Memory: reported maximum height
	QuitAfter    int           // Memory: hold Escape after this many writes (0 = never)
}

// New creates the device for opts.Backend.
func New(opts Options) (Device, error) {
	if opts.HoldWindow <= 0 {
		opts.HoldWindow = DefaultHoldWindow
	}

	switch opts.Backend {
	case BackendANSI, "":
		return NewANSI(opts), nil
	case BackendTcell:
		return NewTcell(opts.HoldWindow), nil
	case BackendMemory:
		m := NewMemory(opts.MaxWidth, opts.MaxHeight)
		m.QuitAfter(opts.QuitAfter)
		return m, nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownBackend, opts.Backend)
	}
}

// Backends lists the accepted backend names.
func Backends() []string {
	return []string{BackendANSI, BackendTcell, BackendMemory}
}
