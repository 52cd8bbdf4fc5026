// Package capture reads webcam frames using GoCV (OpenCV).
package capture

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"gocv.io/x/gocv"
)

// Capture geometry requested from the device. Drivers may ignore it.
const (
	DefaultFPS    = 30
	DefaultWidth  = 640
	DefaultHeight = 480
)

var (
	// ErrCameraNotOpen is returned when reading from a camera that is not open.
	ErrCameraNotOpen = errors.New("camera is not open")
	// ErrEmptyFrame is returned when the device delivers no image.
	ErrEmptyFrame = errors.New("camera delivered an empty frame")
)

// Camera is a frame source for a control session.
type Camera interface {
	Open() error
	Close() error
	// ReadFrame returns the next frame. The caller closes it.
	ReadFrame() (*gocv.Mat, error)
	SetFPS(fps int)
	FPS() int
	IsOpen() bool
}

// FrameInterval is the tick period for fps. Non-positive values fall back
// to DefaultFPS.
func FrameInterval(fps int) time.Duration {
	if fps <= 0 {
		fps = DefaultFPS
	}
	return time.Second / time.Duration(fps)
}

// device is the part of gocv.VideoCapture a Webcam drives.
type device interface {
	Read(m *gocv.Mat) bool
	Set(prop gocv.VideoCaptureProperties, param float64)
	Close() error
}

func openDevice(id int) (device, error) {
	return gocv.OpenVideoCapture(id)
}

// Webcam reads frames from a local video device and optionally mirrors them.
type Webcam struct {
	deviceID int
	mirror   bool
	open     func(id int) (device, error)

	mu  sync.Mutex
	dev device
	fps int
}

// NewCamera creates a Webcam for the given device. When mirror is set every
// frame is flipped horizontally, so turning the head to the user's left
// moves the cursor left.
func NewCamera(deviceID int, mirror bool) *Webcam {
	return &Webcam{
		deviceID: deviceID,
		mirror:   mirror,
		open:     openDevice,
		fps:      DefaultFPS,
	}
}

// Mirrored reports whether frames are flipped horizontally.
func (w *Webcam) Mirrored() bool {
	return w.mirror
}

// Open starts capturing. Opening an open camera does nothing.
func (w *Webcam) Open() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.dev != nil {
		return nil
	}

	dev, err := w.open(w.deviceID)
	if err != nil {
		return fmt.Errorf("open video device %d: %w", w.deviceID, err)
	}
	dev.Set(gocv.VideoCaptureFrameWidth, DefaultWidth)
	dev.Set(gocv.VideoCaptureFrameHeight, DefaultHeight)
	dev.Set(gocv.VideoCaptureFPS, float64(w.fps))

	w.dev = dev
	return nil
}

// Close releases the device. Closing a closed camera does nothing.
func (w *Webcam) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.dev == nil {
		return nil
	}
	err := w.dev.Close()
	w.dev = nil
	return err
}

// ReadFrame grabs one frame, mirrored if configured.
func (w *Webcam) ReadFrame() (*gocv.Mat, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.dev == nil {
		return nil, ErrCameraNotOpen
	}

	mat := gocv.NewMat()
	if !w.dev.Read(&mat) || mat.Empty() {
		mat.Close()
		return nil, ErrEmptyFrame
	}
	if w.mirror {
		gocv.Flip(mat, &mat, 1)
	}
	return &mat, nil
}

// SetFPS changes the requested frame rate. Non-positive values are ignored.
func (w *Webcam) SetFPS(fps int) {
	if fps <= 0 {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	w.fps = fps
	if w.dev != nil {
		w.dev.Set(gocv.VideoCaptureFPS, float64(fps))
	}
}

// FPS returns the requested frame rate.
func (w *Webcam) FPS() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.fps
}

// IsOpen reports whether the device is open.
func (w *Webcam) IsOpen() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.dev != nil
}
