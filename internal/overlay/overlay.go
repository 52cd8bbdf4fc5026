// Package overlay draws landmark markers on camera frames and shows them in
// a debug window.
package overlay

import (
	"image"
	"image/color"

	"github.com/ayusman/facepilot/internal/landmark"
	"gocv.io/x/gocv"
)

// QuitKey closes the debug window and stops the session.
const QuitKey = 'q'

// Window titles per control mode.
const (
	FaceTitle = "Face Mesh"
	EyeTitle  = "Eye Controlled Mouse"
)

var (
	blue   = color.RGBA{0, 0, 255, 0}
	green  = color.RGBA{0, 255, 0, 0}
	red    = color.RGBA{255, 0, 0, 0}
	yellow = color.RGBA{255, 255, 0, 0}
)

// Annotation is what gets drawn on top of one frame.
type Annotation struct {
	Set           *landmark.Set // nil when no face was found
	Eye           bool          // eye-control markers instead of nose and lips
	TongueVisible bool
	EyeClosed     bool
}

// Display shows annotated frames and reports key presses.
type Display interface {
	// Render draws a on frame and shows it.
	Render(frame *gocv.Mat, a Annotation)
	// PollKey returns the last key pressed, or -1.
	PollKey() int
	Close() error
}

// Title returns the debug window title for the mode.
func Title(eye bool) string {
	if eye {
		return EyeTitle
	}
	return FaceTitle
}

// StatusText is the tongue status line printed on the frame.
func StatusText(tongue bool) string {
	if tongue {
		return "Tongue: Detected"
	}
	return "Tongue: Not Detected"
}

// Status returns the status line for a, if one is shown. Only face mode
// with a detected face prints the tongue status.
func Status(a Annotation) (string, bool) {
	if a.Eye || a.Set == nil {
		return "", false
	}
	return StatusText(a.TongueVisible), true
}

// pixel converts a normalized landmark to frame coordinates.
func pixel(p landmark.Point, width, height int) image.Point {
	return image.Pt(int(p.X*float64(width)), int(p.Y*float64(height)))
}

// Draw paints the annotation onto frame in place.
func Draw(frame *gocv.Mat, a Annotation) {
	if frame == nil || frame.Empty() {
		return
	}
	w, h := frame.Cols(), frame.Rows()

	if a.Set != nil {
		if a.Eye {
			for _, i := range landmark.IrisIndices {
				gocv.Circle(frame, pixel(a.Set.At(i), w, h), 3, green, -1)
			}
			lid := yellow
			if a.EyeClosed {
				lid = red
			}
			gocv.Circle(frame, pixel(a.Set.At(landmark.LeftEyeLower), w, h), 3, lid, -1)
			gocv.Circle(frame, pixel(a.Set.At(landmark.LeftEyeUpper), w, h), 3, lid, -1)
		} else {
			gocv.Circle(frame, pixel(a.Set.At(landmark.NoseTip), w, h), 5, blue, -1)

			upper := pixel(a.Set.At(landmark.UpperLip), w, h)
			lower := pixel(a.Set.At(landmark.LowerLip), w, h)
			gocv.Circle(frame, upper, 3, green, -1)
			gocv.Circle(frame, lower, 3, green, -1)
			gocv.Circle(frame, image.Pt((upper.X+lower.X)/2, (upper.Y+lower.Y)/2), 3, red, -1)
		}
	}

	if text, ok := Status(a); ok {
		gocv.PutText(frame, text, image.Pt(10, 30), gocv.FontHersheySimplex, 0.7, red, 2)
	}
}

// Window is a Display backed by an OpenCV highgui window.
type Window struct {
	win *gocv.Window
}

// NewWindow opens a debug window with the given title.
func NewWindow(title string) *Window {
	return &Window{win: gocv.NewWindow(title)}
}

// Render draws a on frame and shows it in the window.
func (w *Window) Render(frame *gocv.Mat, a Annotation) {
	Draw(frame, a)
	w.win.IMShow(*frame)
}

// PollKey waits one millisecond for a key press.
func (w *Window) PollKey() int {
	return w.win.WaitKey(1)
}

// Close destroys the window.
func (w *Window) Close() error {
	return w.win.Close()
}
