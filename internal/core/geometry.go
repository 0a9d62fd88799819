package core

import "fmt"

// Font faces picked by the face policy.
const (
	FaceSmall   = "Consolas"
	FaceRegular = "Terminal"
)

// smallFontThreshold is the cell pixel size below which the regular face
// rasterizes illegibly.
const smallFontThreshold = 4

// Geometry is the fixed size of a surface: cells and pixels per cell.
type Geometry struct {
	Width      int `yaml:"width"`       // Surface width in cells
	Height     int `yaml:"height"`      // Surface height in cells
	FontWidth  int `yaml:"font_width"`  // Cell width in pixels
	FontHeight int `yaml:"font_height"` // Cell height in pixels
}

// Cells returns the number of cells in the surface.
func (g Geometry) Cells() int {
	return g.Width * g.Height
}

// FaceName returns the font face for the requested cell size.
func (g Geometry) FaceName() string {
	if g.FontWidth < smallFontThreshold || g.FontHeight < smallFontThreshold {
		return FaceSmall
	}
	return FaceRegular
}

// Validate checks that the surface has a usable size.
func (g Geometry) Validate() error {
	if g.Width <= 0 || g.Height <= 0 {
		return fmt.Errorf("geometry: size %dx%d must be positive", g.Width, g.Height)
	}
	if g.FontWidth <= 0 || g.FontHeight <= 0 {
		return fmt.Errorf("geometry: font size %dx%d must be positive", g.FontWidth, g.FontHeight)
	}
	return nil
}

// Fits reports whether the surface fits in a device of the given maximum size.
func (g Geometry) Fits(maxW, maxH int) bool {
	return g.Width <= maxW && g.Height <= maxH
}

// Merge returns g with every positive field of o applied on top.
func (g Geometry) Merge(o Geometry) Geometry {
	if o.Width > 0 {
		g.Width = o.Width
	}
	if o.Height > 0 {
		g.Height = o.Height
	}
	if o.FontWidth > 0 {
		g.FontWidth = o.FontWidth
	}
	if o.FontHeight > 0 {
		g.FontHeight = o.FontHeight
	}
	return g
}

func (g Geometry) String() string {
	return fmt.Sprintf("%dx%d@%dx%dpx", g.Width, g.Height, g.FontWidth, g.FontHeight)
}
