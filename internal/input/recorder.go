package input

import (
	"errors"
	"sync"
)

// EventKind names a recorded input action.
type EventKind string

const (
	EventMove       EventKind = "move"
	EventClick      EventKind = "click"
	EventButtonDown EventKind = "down"
	EventButtonUp   EventKind = "up"
	EventKey        EventKind = "key"
	EventModifier   EventKind = "modifier"
	EventType       EventKind = "type"
	EventActivate   EventKind = "activate"
)

// Event is one recorded input action.
type Event struct {
	Kind   EventKind
	X, Y   int
	Button Button
	Key    string
	Text   string
	PID    int
}

// ErrNoWindow is returned by Recorder.ForegroundPID when no pid was set.
var ErrNoWindow = errors.New("no foreground window")

// Recorder is an Injector and Focus that records every call instead of
// touching the operating system.
type Recorder struct {
	mu            sync.Mutex
	events        []Event
	width, height int
	foreground    int
	activateErr   error
}

// NewRecorder creates a Recorder reporting a width x height screen.
func NewRecorder(width, height int) *Recorder {
	return &Recorder{width: width, height: height}
}

func (r *Recorder) record(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *Recorder) MoveTo(x, y int)         { r.record(Event{Kind: EventMove, X: x, Y: y}) }
func (r *Recorder) Click(b Button)          { r.record(Event{Kind: EventClick, Button: b}) }
func (r *Recorder) ButtonDown(b Button)     { r.record(Event{Kind: EventButtonDown, Button: b}) }
func (r *Recorder) ButtonUp(b Button)       { r.record(Event{Kind: EventButtonUp, Button: b}) }
func (r *Recorder) PressKey(name string)    { r.record(Event{Kind: EventKey, Key: name}) }
func (r *Recorder) TapModifier(name string) { r.record(Event{Kind: EventModifier, Key: name}) }
func (r *Recorder) TypeText(text string)    { r.record(Event{Kind: EventType, Text: text}) }

// ScreenSize returns the configured screen size.
func (r *Recorder) ScreenSize() (int, int) {
	return r.width, r.height
}

// SetForeground sets the pid reported by ForegroundPID. Zero means none.
func (r *Recorder) SetForeground(pid int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.foreground = pid
}

// SetActivateError makes Activate fail with err.
func (r *Recorder) SetActivateError(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.activateErr = err
}

// ForegroundPID returns the pid set with SetForeground.
func (r *Recorder) ForegroundPID() (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.foreground == 0 {
		return 0, ErrNoWindow
	}
	return r.foreground, nil
}

// Activate records the activation and makes pid the foreground.
func (r *Recorder) Activate(pid int) error {
	r.mu.Lock()
	err := r.activateErr
	r.mu.Unlock()
	if err != nil {
		return err
	}

	r.record(Event{Kind: EventActivate, PID: pid})
	r.SetForeground(pid)
	return nil
}

// Events returns a copy of everything recorded so far.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// Count returns how many events of the given kind and button were recorded.
// An empty button matches any button.
func (r *Recorder) Count(kind EventKind, b Button) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for _, e := range r.events {
		if e.Kind == kind && (b == "" || e.Button == b) {
			n++
		}
	}
	return n
}

// Reset clears recorded events.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}
