// Package core holds the plain data types shared by the engine, the devices
// and the games: cells, color attributes, surface geometry and key codes.
// It has no dependencies so that everything above it can be tested headless.
package core

// Rect is an integer cell rectangle.
type Rect struct {
	X, Y int // Top-left cell
	W, H int
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate one past the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate one past the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the cell (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Body is a rectangle with a sub-cell position, moved by velocity*dt.
type Body struct {
	X, Y float64
	W, H int
}

// Right returns the truncated x-coordinate one past the right edge.
func (b Body) Right() int {
	return int(b.X) + b.W
}

// Bottom returns the truncated y-coordinate one past the bottom edge.
func (b Body) Bottom() int {
	return int(b.Y) + b.H
}

// Move shifts the body by (dx, dy).
func (b *Body) Move(dx, dy float64) {
	b.X += dx
	b.Y += dy
}

// Cells returns the cell rectangle covered by the body.
func (b Body) Cells() Rect {
	return Rect{X: int(b.X), Y: int(b.Y), W: b.W, H: b.H}
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
