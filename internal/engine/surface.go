package engine

import (
	"fmt"

	"github.com/vovakirdan/cge/internal/core"
	"github.com/vovakirdan/cge/internal/device"
)

// Surface owns the off-screen cell buffer and the display it is flushed to.
type Surface struct {
	display device.Display
	geom    core.Geometry
	cells   []core.Cell
}

// NewSurface creates an uninitialized surface on display.
func NewSurface(display device.Display) *Surface {
	return &Surface{display: display}
}

// Initialize configures the display to the geometry and allocates the buffer.
// Every failure is an *InitializationError; on failure the display is closed.
func (s *Surface) Initialize(g core.Geometry, title string) error {
	if err := g.Validate(); err != nil {
		return &InitializationError{Op: "geometry", Err: err}
	}

	if err := s.display.Open(device.Config{Title: title, Geometry: g}); err != nil {
		return &InitializationError{Op: "open", Err: err}
	}

	maxW, maxH := s.display.MaxSize()
	if !g.Fits(maxW, maxH) {
		s.display.Close()
		return &InitializationError{
			Op:  "geometry",
			Err: fmt.Errorf("%w: %dx%d > %dx%d", device.ErrGeometry, g.Width, g.Height, maxW, maxH),
		}
	}

	s.geom = g
	s.cells = make([]core.Cell, g.Cells())
	return nil
}

// Geometry returns the surface geometry.
func (s *Surface) Geometry() core.Geometry {
	return s.geom
}

// Flush writes the whole buffer to the display in one call.
func (s *Surface) Flush() error {
	return s.display.Write(s.cells, s.geom.Width, s.geom.Height)
}

// Close releases the display.
func (s *Surface) Close() error {
	return s.display.Close()
}
