package retrocar

// section is a stretch of track with a constant curvature.
type section struct {
	curvature float64 // Negative bends left, positive right
	distance  float64
}

// track is the lap layout. The first, short section is the start line.
var track = []section{
	{0, 10},
	{0, 200},
	{1, 200},
	{0, 400},
	{-1, 100},
	{0, 200},
	{-1, 200},
	{1, 200},
	{0, 200},
	{0.2, 500},
	{0, 200},
}

// trackLength returns the lap distance.
func trackLength(sections []section) float64 {
	total := 0.0
	for _, s := range sections {
		total += s.distance
	}
	return total
}

// sectionAt returns the index of the section containing distance d.
// A distance exactly on a boundary belongs to the following section.
func sectionAt(sections []section, d float64) int {
	offset := 0.0
	i := 0
	for i < len(sections) && offset <= d {
		offset += sections[i].distance
		i++
	}
	return i - 1
}

// Car sprite, carWidth bits per row with bit 0 as the leftmost pixel.
// Three poses of carHeight rows each: straight, steering left, steering right.
const (
	carWidth  = 15
	carHeight = 7

	poseStraight = 0
	poseLeft     = carHeight
	poseRight    = 2 * carHeight
)

var carSprite = [3 * carHeight]uint16{
	0b000011111111000,
	0b000000011000000,
	0b000000111100000,
	0b000000111100000,
	0b011100111100111,
	0b011111111111111,
	0b011100111100111,

	0b000000011111111,
	0b000000000011000,
	0b000000001111000,
	0b000000011110000,
	0b011100111101110,
	0b011111111111110,
	0b011101111001110,

	0b111111110000000,
	0b000110000000000,
	0b000111100000000,
	0b000011110000000,
	0b111001111001110,
	0b111111111111110,
	0b111001111001110,
}
