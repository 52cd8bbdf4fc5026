// Package landmark provides face landmark types and the detection sources that produce them.
package landmark

// Face mesh landmark indices following the MediaPipe refined face mesh convention.
// See: https://developers.google.com/mediapipe/solutions/vision/face_landmarker
const (
	NoseTip      = 2
	UpperLip     = 13
	LowerLip     = 14
	InnerMouthL  = 78
	InnerMouthU  = 81
	InnerMouthB  = 178
	LeftEyeLower = 145
	LeftEyeUpper = 159
	LeftIrisR    = 474
	LeftIrisT    = 475
	LeftIrisL    = 476
	LeftIrisB    = 477
	NumLandmarks = 478
)

// TeethIndices are the mouth-region points averaged by the teeth classifier.
var TeethIndices = []int{10, 11, 12, 13, 14, 15, 16}

// InnerMouthIndices are the points whose vertical spread hints at a protruding tongue.
var InnerMouthIndices = []int{InnerMouthL, InnerMouthU, InnerMouthB, UpperLip, LowerLip}

// IrisIndices is the left iris ring, drawn in eye-control mode.
var IrisIndices = []int{LeftIrisR, LeftIrisT, LeftIrisL, LeftIrisB}

// Point is a normalized 2D landmark position. X and Y are in [0,1] relative
// to the frame width and height.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Set is the ordered landmark collection for one detected face.
// It is produced fresh for every frame and treated as read-only.
type Set struct {
	Points [NumLandmarks]Point `json:"points"`
}

// At returns the landmark at index i, or the zero Point when i is out of range.
func (s *Set) At(i int) Point {
	if s == nil || i < 0 || i >= NumLandmarks {
		return Point{}
	}
	return s.Points[i]
}

// ScaledY returns the y coordinate of landmark i scaled to the given height.
func (s *Set) ScaledY(i int, height float64) float64 {
	return s.At(i).Y * height
}

// ToScreen maps landmark i onto a screen of the given size.
func (s *Set) ToScreen(i int, width, height float64) (float64, float64) {
	p := s.At(i)
	return p.X * width, p.Y * height
}
