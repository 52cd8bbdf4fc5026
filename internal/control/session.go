// Package control runs face-controlled mouse sessions: each frame's
// landmarks become a cursor target and gesture actions.
package control

import (
	"time"

	"github.com/ayusman/facepilot/internal/gesture"
	"github.com/ayusman/facepilot/internal/input"
	"github.com/ayusman/facepilot/internal/landmark"
	"github.com/ayusman/facepilot/internal/pointer"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// Mode selects which facial features drive the cursor.
type Mode int

const (
	ModeFace Mode = iota // nose steers, mouth gestures click
	ModeEye              // iris steers, eye closing clicks
)

func (m Mode) String() string {
	if m == ModeEye {
		return "eye"
	}
	return "face"
}

// Defaults for session tuning.
const (
	DefaultMaxAbsent     = 100
	DefaultClickCooldown = time.Second
)

// Tuning holds the per-session parameters that come from configuration.
type Tuning struct {
	Alpha          float64
	HorizontalGain float64
	VerticalGain   float64
	Thresholds     gesture.Thresholds
	MaxAbsent      int
	ClickCooldown  time.Duration
}

// DefaultTuning returns the stock tuning.
func DefaultTuning() Tuning {
	return Tuning{
		Alpha:          pointer.DefaultAlpha,
		HorizontalGain: pointer.DefaultHorizontalGain,
		VerticalGain:   pointer.DefaultVerticalGain,
		Thresholds:     gesture.DefaultThresholds(),
		MaxAbsent:      DefaultMaxAbsent,
		ClickCooldown:  DefaultClickCooldown,
	}
}

// StepResult describes what one frame did.
type StepResult struct {
	Face     bool
	X, Y     int // cursor target, valid when Face is set
	Gestures gesture.State
	Fired    []gesture.Kind // gestures that produced an action this frame
	Absent   int
	Stop     bool // absence limit reached
}

// Session holds the state that carries across frames while control is
// running: the smoothed cursor, the gesture latches and the absence count.
// A Session is used from a single goroutine.
type Session struct {
	ID   string
	Mode Mode

	width, height int
	smoother      *pointer.Smoother
	remapper      *pointer.Remapper
	classifier    *gesture.Classifier
	teeth         gesture.Latch
	tongue        gesture.Latch
	rightPending  bool
	absent        int
	maxAbsent     int
	clicks        *rate.Limiter
	now           func() time.Time

	injector input.Injector
	log      *logrus.Entry
}

// NewSession creates a session for a screen of the injector's size.
func NewSession(mode Mode, tuning Tuning, injector input.Injector, log *logrus.Logger) *Session {
	if tuning.MaxAbsent <= 0 {
		tuning.MaxAbsent = DefaultMaxAbsent
	}
	if tuning.ClickCooldown <= 0 {
		tuning.ClickCooldown = DefaultClickCooldown
	}

	width, height := injector.ScreenSize()
	id := uuid.NewString()

	return &Session{
		ID:         id,
		Mode:       mode,
		width:      width,
		height:     height,
		smoother:   pointer.NewSmoother(tuning.Alpha),
		remapper:   pointer.NewRemapper(width, height, tuning.HorizontalGain, tuning.VerticalGain),
		classifier: gesture.NewClassifier(tuning.Thresholds, height),
		maxAbsent:  tuning.MaxAbsent,
		clicks:     rate.NewLimiter(rate.Every(tuning.ClickCooldown), 1),
		now:        time.Now,
		injector:   injector,
		log: log.WithFields(logrus.Fields{
			"session_id": id,
			"mode":       mode.String(),
		}),
	}
}

// Absent returns the number of consecutive frames without a face.
func (s *Session) Absent() int {
	return s.absent
}

// Step processes the landmarks of one frame. A nil set means no face was
// found, whether the detector saw nothing or the frame could not be read.
func (s *Session) Step(set *landmark.Set) StepResult {
	if set == nil {
		s.absent++
		res := StepResult{Absent: s.absent}
		if s.absent >= s.maxAbsent {
			s.log.WithField("frames", s.absent).Info("no face detected, stopping")
			res.Stop = true
		}
		return res
	}
	s.absent = 0

	res := StepResult{Face: true}
	res.X, res.Y = s.target(set)
	s.injector.MoveTo(res.X, res.Y)

	res.Gestures = s.classifier.Evaluate(set)
	if s.Mode == ModeEye {
		res.Fired = s.eyeActions(res.Gestures)
	} else {
		res.Fired = s.faceActions(res.Gestures)
	}
	return res
}

// target computes the clamped cursor position for set.
func (s *Session) target(set *landmark.Set) (int, int) {
	w, h := float64(s.width), float64(s.height)

	if s.Mode == ModeEye {
		x, y := set.ToScreen(landmark.LeftIrisT, w, h)
		return pointer.Clamp(pointer.Point{X: x, Y: y}, s.width, s.height)
	}

	x, y := set.ToScreen(landmark.NoseTip, w, h)
	smoothed := s.smoother.Apply(pointer.Point{X: x, Y: y})
	return s.remapper.Clamp(s.remapper.Apply(smoothed))
}

func (s *Session) faceActions(g gesture.State) []gesture.Kind {
	var fired []gesture.Kind

	// An open mouth clicks on every frame it is held.
	if g.MouthOpen {
		s.injector.Click(input.ButtonLeft)
		fired = append(fired, gesture.KindMouthOpen)
	}

	switch s.teeth.Update(g.TeethVisible) {
	case gesture.EdgeRise:
		s.injector.ButtonDown(input.ButtonLeft)
		s.log.Debug("teeth visible, left button down")
		fired = append(fired, gesture.KindTeeth)
	case gesture.EdgeFall:
		s.injector.ButtonUp(input.ButtonLeft)
		s.log.Debug("teeth hidden, left button up")
	}

	if s.tongue.Update(g.TongueVisible) == gesture.EdgeRise {
		s.injector.Click(input.ButtonRight)
		s.log.Debug("tongue visible, right click")
		fired = append(fired, gesture.KindTongue)
	}

	return fired
}

func (s *Session) eyeActions(g gesture.State) []gesture.Kind {
	var fired []gesture.Kind

	// A tongue rise stays pending until the shared cooldown allows it and
	// takes the next token ahead of a held blink.
	if s.tongue.Update(g.TongueVisible) == gesture.EdgeRise {
		s.rightPending = true
	}
	if s.rightPending && s.clicks.AllowN(s.now(), 1) {
		s.rightPending = false
		s.injector.Click(input.ButtonRight)
		s.log.Debug("tongue visible, right click")
		fired = append(fired, gesture.KindTongue)
	}

	if g.EyeClosed && s.clicks.AllowN(s.now(), 1) {
		s.injector.Click(input.ButtonLeft)
		s.log.Debug("eye closed, left click")
		fired = append(fired, gesture.KindEyeClosed)
	}

	return fired
}

// Close releases a left button still held by the teeth gesture.
func (s *Session) Close() {
	if s.teeth.Active() {
		s.injector.ButtonUp(input.ButtonLeft)
	}
	s.teeth.Reset()
	s.tongue.Reset()
	s.rightPending = false
}
