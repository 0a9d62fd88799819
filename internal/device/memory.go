package device

import (
	"github.com/vovakirdan/cge/internal/core"
)

// Memory is a headless device. It keeps the last flushed frame and lets the
// caller drive the keyboard directly. Used by tests and by the memory backend.
type Memory struct {
	maxW, maxH int

	cfg     Config
	opened  bool
	closed  bool
	title   string
	frame   []core.Cell
	writes  int
	openErr error
	failErr error

	keys      [core.KeyCount]uint16
	quitAfter int
}

// NewMemory creates a headless device reporting the given maximum size.
func NewMemory(maxW, maxH int) *Memory {
	return &Memory{maxW: maxW, maxH: maxH}
}

// Open records the configuration. It fails only when FailOpen was set.
func (m *Memory) Open(cfg Config) error {
	if m.openErr != nil {
		return m.openErr
	}
	m.cfg = cfg
	m.title = cfg.Title
	m.opened = true
	return nil
}

// MaxSize reports the configured maximum.
func (m *Memory) MaxSize() (int, int) {
	return m.maxW, m.maxH
}

// SetTitle stores the title.
func (m *Memory) SetTitle(title string) {
	m.title = title
}

// Write copies the frame. When FailWrites was set the frame is dropped and
// the error returned, but the write still counts.
func (m *Memory) Write(cells []core.Cell, width, height int) error {
	m.writes++
	if m.failErr != nil {
		return m.failErr
	}
	if len(m.frame) != len(cells) {
		m.frame = make([]core.Cell, len(cells))
	}
	copy(m.frame, cells)
	return nil
}

// SampleKeys copies the driven key levels.
func (m *Memory) SampleKeys(dst *[core.KeyCount]uint16) {
	*dst = m.keys
	if m.quitAfter > 0 && m.writes >= m.quitAfter {
		dst[core.KeyEscape] = core.KeyDownBit
	}
}

// Close marks the device closed.
func (m *Memory) Close() error {
	m.closed = true
	return nil
}

// Press holds key k down until Release.
func (m *Memory) Press(k core.KeyCode) {
	if k.Valid() {
		m.keys[k] = core.KeyDownBit
	}
}

// Release lets key k up.
func (m *Memory) Release(k core.KeyCode) {
	if k.Valid() {
		m.keys[k] = 0
	}
}

// QuitAfter holds Escape once n frames have been written; 0 disables it.
func (m *Memory) QuitAfter(n int) {
	m.quitAfter = n
}

// FailOpen makes Open return err.
func (m *Memory) FailOpen(err error) {
	m.openErr = err
}

// FailWrites makes every following Write return err; nil restores writes.
func (m *Memory) FailWrites(err error) {
	m.failErr = err
}

// Frame returns the last successfully written frame.
func (m *Memory) Frame() []core.Cell {
	return m.frame
}

// Writes returns the number of Write calls.
func (m *Memory) Writes() int {
	return m.writes
}

// Title returns the current title.
func (m *Memory) Title() string {
	return m.title
}

// Config returns the configuration passed to Open.
func (m *Memory) Config() Config {
	return m.cfg
}

// Opened reports whether Open succeeded.
func (m *Memory) Opened() bool {
	return m.opened
}

// Closed reports whether Close was called.
func (m *Memory) Closed() bool {
	return m.closed
}
