package overlay

import (
	"sync"

	"gocv.io/x/gocv"
)

// MockDisplay records rendered annotations and returns scripted keys.
type MockDisplay struct {
	mu       sync.Mutex
	rendered []Annotation
	keys     []int
	closed   bool
}

// NewMockDisplay creates a MockDisplay that reports no key presses.
func NewMockDisplay() *MockDisplay {
	return &MockDisplay{}
}

// PressAfter makes PollKey return key after n polls that report nothing.
func (d *MockDisplay) PressAfter(n int, key int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.keys = make([]int, n+1)
	for i := range d.keys {
		d.keys[i] = -1
	}
	d.keys[n] = key
}

func (d *MockDisplay) Render(frame *gocv.Mat, a Annotation) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.rendered = append(d.rendered, a)
}

func (d *MockDisplay) PollKey() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.keys) == 0 {
		return -1
	}
	k := d.keys[0]
	d.keys = d.keys[1:]
	return k
}

func (d *MockDisplay) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	return nil
}

// Rendered returns a copy of every annotation shown so far.
func (d *MockDisplay) Rendered() []Annotation {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]Annotation(nil), d.rendered...)
}

// Closed reports whether Close was called.
func (d *MockDisplay) Closed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.closed
}
