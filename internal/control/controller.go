package control

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ayusman/facepilot/internal/capture"
	"github.com/ayusman/facepilot/internal/gesture"
	"github.com/ayusman/facepilot/internal/input"
	"github.com/ayusman/facepilot/internal/landmark"
	"github.com/ayusman/facepilot/internal/overlay"
	"github.com/sirupsen/logrus"
)

// ErrAlreadyRunning is returned by Start while a session is active.
var ErrAlreadyRunning = errors.New("control session already running")

// State is the controller lifecycle state.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	default:
		return "idle"
	}
}

// Reasons reported through OnStateChange when a session ends.
const (
	ReasonStarted = "started"
	ReasonUser    = "stopped by user"
	ReasonAbsent  = "face lost"
	ReasonQuitKey = "quit key"
)

// Config holds the collaborators and tuning of a Controller.
type Config struct {
	Camera   capture.Camera
	Source   landmark.Source
	Injector input.Injector
	// NewDisplay opens the debug window for a session. It is called on the
	// session goroutine, which also draws and closes the window. Nil
	// disables it.
	NewDisplay func(mode Mode) overlay.Display
	FPS        int
	Tuning     Tuning
	Logger     *logrus.Logger
}

// Controller owns the camera and runs at most one Session at a time on
// its own goroutine.
type Controller struct {
	config Config
	log    *logrus.Entry

	mu            sync.Mutex
	state         State
	mode          Mode
	stopCh        chan struct{}
	done          chan struct{}
	onGesture     func(mode Mode, kind gesture.Kind)
	onStateChange func(state State, mode Mode, reason string)
}

// New creates a Controller in the idle state.
func New(config Config) *Controller {
	if config.FPS <= 0 {
		config.FPS = capture.DefaultFPS
	}
	if config.Logger == nil {
		config.Logger = logrus.StandardLogger()
	}
	return &Controller{
		config: config,
		log:    config.Logger.WithField("component", "control"),
		state:  StateIdle,
	}
}

// OnGesture registers a callback for every gesture that triggered an
// action. It runs on the session goroutine and must not call Stop.
func (c *Controller) OnGesture(fn func(mode Mode, kind gesture.Kind)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onGesture = fn
}

// OnStateChange registers a callback for session start and end. It runs on
// the goroutine causing the change and must not call Start or Stop.
func (c *Controller) OnStateChange(fn func(state State, mode Mode, reason string)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onStateChange = fn
}

// State returns the current lifecycle state and the mode of the last session.
func (c *Controller) State() (State, Mode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state, c.mode
}

// Done returns a channel closed when the current session ends. It is nil
// when no session has been started.
func (c *Controller) Done() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.done
}

// Start opens the camera and begins a session in the given mode.
func (c *Controller) Start(mode Mode) error {
	c.mu.Lock()
	if c.state == StateRunning {
		c.mu.Unlock()
		return ErrAlreadyRunning
	}

	if err := c.config.Camera.Open(); err != nil {
		c.mu.Unlock()
		return fmt.Errorf("failed to open camera: %w", err)
	}
	c.config.Camera.SetFPS(c.config.FPS)

	sess := NewSession(mode, c.config.Tuning, c.config.Injector, c.config.Logger)
	c.state = StateRunning
	c.mode = mode
	c.stopCh = make(chan struct{})
	c.done = make(chan struct{})
	stopCh, done := c.stopCh, c.done
	notify := c.onStateChange
	c.mu.Unlock()

	sess.log.Info("control session started")
	if notify != nil {
		notify(StateRunning, mode, ReasonStarted)
	}

	go c.run(sess, stopCh, done)
	return nil
}

// Stop ends the running session and waits for its goroutine to release
// the camera. It is a no-op when nothing is running.
func (c *Controller) Stop() {
	c.stop()
}

// stop reports whether this call ended a session and in which mode it ran.
// A session that already ended on its own reports false.
func (c *Controller) stop() (Mode, bool) {
	c.mu.Lock()
	if c.state != StateRunning || c.stopCh == nil {
		c.mu.Unlock()
		return 0, false
	}
	close(c.stopCh)
	c.stopCh = nil
	done, mode := c.done, c.mode
	c.mu.Unlock()

	<-done
	return mode, true
}

// Toggle stops a session running in mode, or starts one in mode. A session
// running in the other mode is stopped first.
func (c *Controller) Toggle(mode Mode) error {
	if stopped, ok := c.stop(); ok && stopped == mode {
		return nil
	}
	return c.Start(mode)
}

// Close stops any session and shuts the landmark source down.
func (c *Controller) Close() error {
	c.Stop()
	if c.config.Source != nil {
		return c.config.Source.Close()
	}
	return nil
}

// run is the per-session loop. The stop channel is checked once per tick,
// so stopping lags by at most one frame. The debug window is created,
// drawn and destroyed on this goroutine only.
func (c *Controller) run(sess *Session, stopCh, done chan struct{}) {
	defer close(done)

	var display overlay.Display
	if c.config.NewDisplay != nil {
		display = c.config.NewDisplay(sess.Mode)
	}

	ticker := time.NewTicker(capture.FrameInterval(c.config.FPS))
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			c.finish(sess, display, ReasonUser)
			return
		case <-ticker.C:
			if reason := c.iterate(sess, display); reason != "" {
				c.finish(sess, display, reason)
				return
			}
		}
	}
}

// iterate handles one frame and returns a non-empty reason when the session
// has to end.
func (c *Controller) iterate(sess *Session, display overlay.Display) string {
	frame, err := c.config.Camera.ReadFrame()
	if err != nil {
		sess.log.WithError(err).Debug("frame read failed")
		frame = nil
	}
	if frame != nil {
		defer frame.Close()
	}

	var set *landmark.Set
	if frame != nil && c.config.Source != nil {
		set, err = c.config.Source.Detect(frame)
		if err != nil {
			sess.log.WithError(err).Debug("landmark detection failed")
			set = nil
		}
	}

	res := sess.Step(set)

	if len(res.Fired) > 0 {
		c.mu.Lock()
		notify := c.onGesture
		c.mu.Unlock()
		if notify != nil {
			for _, k := range res.Fired {
				notify(sess.Mode, k)
			}
		}
	}

	if res.Stop {
		return ReasonAbsent
	}

	if display != nil && frame != nil {
		display.Render(frame, overlay.Annotation{
			Set:           set,
			Eye:           sess.Mode == ModeEye,
			TongueVisible: res.Gestures.TongueVisible,
			EyeClosed:     res.Gestures.EyeClosed,
		})
	}
	if display != nil && display.PollKey() == overlay.QuitKey {
		return ReasonQuitKey
	}

	return ""
}

// finish releases everything the session held and records the stop.
func (c *Controller) finish(sess *Session, display overlay.Display, reason string) {
	sess.Close()

	if err := c.config.Camera.Close(); err != nil {
		sess.log.WithError(err).Warn("error closing camera")
	}
	if display != nil {
		if err := display.Close(); err != nil {
			sess.log.WithError(err).Warn("error closing debug window")
		}
	}

	c.mu.Lock()
	c.state = StateStopped
	c.stopCh = nil
	notify := c.onStateChange
	c.mu.Unlock()

	sess.log.WithField("reason", reason).Info("control session stopped")
	if notify != nil {
		notify(StateStopped, sess.Mode, reason)
	}
}
