package pointer

import "math"

// Default gains applied to the distance from screen center.
const (
	DefaultHorizontalGain = 6.0
	DefaultVerticalGain   = 8.0
)

// Remapper stretches small head movements to the full screen.
type Remapper struct {
	Center         Point
	HorizontalGain float64 // used when |dx| > |dy|
	VerticalGain   float64 // used otherwise
	width, height  int
}

// NewRemapper creates a Remapper centered on a screen of the given size.
// Non-positive gains fall back to the defaults.
func NewRemapper(width, height int, horizontalGain, verticalGain float64) *Remapper {
	if horizontalGain <= 0 {
		horizontalGain = DefaultHorizontalGain
	}
	if verticalGain <= 0 {
		verticalGain = DefaultVerticalGain
	}
	return &Remapper{
		Center:         Point{X: float64(width) / 2, Y: float64(height) / 2},
		HorizontalGain: horizontalGain,
		VerticalGain:   verticalGain,
		width:          width,
		height:         height,
	}
}

// Apply scales the radial distance of p from the center by the gain of
// its dominant axis, keeping the direction.
func (r *Remapper) Apply(p Point) Point {
	dx := p.X - r.Center.X
	dy := p.Y - r.Center.Y
	distance := math.Hypot(dx, dy)

	if distance < 1e-10 {
		return r.Center
	}

	gain := r.VerticalGain
	if math.Abs(dx) > math.Abs(dy) {
		gain = r.HorizontalGain
	}

	scale := (distance * gain) / distance
	return Point{
		X: r.Center.X + dx*scale,
		Y: r.Center.Y + dy*scale,
	}
}

// Clamp rounds p to whole pixels inside the screen.
func (r *Remapper) Clamp(p Point) (int, int) {
	return Clamp(p, r.width, r.height)
}

// Clamp rounds p to whole pixels inside a width x height screen.
func Clamp(p Point, width, height int) (int, int) {
	x := int(math.Round(p.X))
	y := int(math.Round(p.Y))

	if x < 0 {
		x = 0
	} else if width > 0 && x > width-1 {
		x = width - 1
	}
	if y < 0 {
		y = 0
	} else if height > 0 && y > height-1 {
		y = height - 1
	}
	return x, y
}
