package landmark

import (
	"sync"

	"gocv.io/x/gocv"
)

// MockSource is a test implementation of the Source interface.
// It plays back a scripted sequence of results, then returns the fallback set.
type MockSource struct {
	mu       sync.Mutex
	sequence []*Set
	fallback *Set
	err      error
	calls    int
	closed   bool
}

// NewMockSource creates a new MockSource that detects no face.
func NewMockSource() *MockSource {
	return &MockSource{}
}

// SetFace sets the landmarks returned by every Detect call once the sequence is exhausted.
// A nil set means no face.
func (m *MockSource) SetFace(set *Set) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fallback = set
}

// SetSequence queues per-call results. Nil entries are frames without a face.
func (m *MockSource) SetSequence(sets []*Set) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sequence = append([]*Set(nil), sets...)
}

// SetError sets the error that will be returned by Detect.
func (m *MockSource) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Calls reports how many times Detect has been invoked.
func (m *MockSource) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Closed reports whether Close was called.
func (m *MockSource) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// Detect returns the next scripted result, the fallback set, or the configured error.
func (m *MockSource) Detect(frame *gocv.Mat) (*Set, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	if len(m.sequence) > 0 {
		next := m.sequence[0]
		m.sequence = m.sequence[1:]
		return next, nil
	}
	return m.fallback, nil
}

// Close marks the mock closed.
func (m *MockSource) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// NeutralFace returns a centered face with closed lips and open eyes.
// None of the gesture classifiers fire for it.
func NeutralFace() *Set {
	set := &Set{}
	for i := range set.Points {
		set.Points[i] = Point{X: 0.5, Y: 0.5}
	}

	set.Points[NoseTip] = Point{X: 0.5, Y: 0.5}
	set.Points[UpperLip] = Point{X: 0.5, Y: 0.6}
	set.Points[LowerLip] = Point{X: 0.5, Y: 0.6}

	set.Points[LeftEyeUpper] = Point{X: 0.42, Y: 0.40}
	set.Points[LeftEyeLower] = Point{X: 0.42, Y: 0.42}

	set.Points[LeftIrisR] = Point{X: 0.43, Y: 0.41}
	set.Points[LeftIrisT] = Point{X: 0.42, Y: 0.40}
	set.Points[LeftIrisL] = Point{X: 0.41, Y: 0.41}
	set.Points[LeftIrisB] = Point{X: 0.42, Y: 0.42}

	return set
}

// WithNose returns a copy of s with the nose tip moved to (x, y).
func (s *Set) WithNose(x, y float64) *Set {
	c := *s
	c.Points[NoseTip] = Point{X: x, Y: y}
	return &c
}

// WithLipGap returns a copy of s whose lower lip sits gap (normalized) below the upper lip.
func (s *Set) WithLipGap(gap float64) *Set {
	c := *s
	c.Points[LowerLip].Y = c.Points[UpperLip].Y + gap
	return &c
}

// WithEyeGap returns a copy of s whose lower eyelid sits gap below the upper eyelid.
func (s *Set) WithEyeGap(gap float64) *Set {
	c := *s
	c.Points[LeftEyeLower].Y = c.Points[LeftEyeUpper].Y + gap
	return &c
}

// WithTeethY returns a copy of s with every teeth-region landmark at height y.
func (s *Set) WithTeethY(y float64) *Set {
	c := *s
	for _, i := range TeethIndices {
		c.Points[i].Y = y
	}
	return &c
}
