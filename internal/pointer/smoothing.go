// Package pointer turns raw face positions into cursor targets: exponential
// smoothing followed by a radial sensitivity boost around the screen center.
package pointer

// DefaultAlpha is the weight given to each new sample.
const DefaultAlpha = 0.2

// Point is a screen-space position in pixels.
type Point struct {
	X float64
	Y float64
}

// Smoother is an exponential moving average over screen points.
// The zero value is not usable; create one with NewSmoother.
type Smoother struct {
	alpha float64
	prev  Point
	set   bool
}

// NewSmoother creates a Smoother with the given alpha.
// Values outside (0,1] fall back to DefaultAlpha.
func NewSmoother(alpha float64) *Smoother {
	if alpha <= 0 || alpha > 1 {
		alpha = DefaultAlpha
	}
	return &Smoother{alpha: alpha}
}

// Apply feeds a raw sample and returns the smoothed one.
// The first sample after creation or Reset is returned unchanged.
func (s *Smoother) Apply(raw Point) Point {
	if !s.set {
		s.prev = raw
		s.set = true
		return raw
	}

	s.prev = Point{
		X: s.prev.X + s.alpha*(raw.X-s.prev.X),
		Y: s.prev.Y + s.alpha*(raw.Y-s.prev.Y),
	}
	return s.prev
}

// Last returns the previous smoothed sample and whether one exists.
func (s *Smoother) Last() (Point, bool) {
	return s.prev, s.set
}

// Reset forgets the previous sample.
func (s *Smoother) Reset() {
	s.prev = Point{}
	s.set = false
}

// Alpha returns the smoothing factor in use.
func (s *Smoother) Alpha() float64 {
	return s.alpha
}
