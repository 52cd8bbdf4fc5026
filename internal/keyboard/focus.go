package keyboard

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/ayusman/facepilot/internal/input"
	"github.com/sirupsen/logrus"
)

// DefaultPollInterval is how often the foreground window is sampled.
const DefaultPollInterval = 100 * time.Millisecond

// ErrNoTarget is returned by Restore before any foreign window was seen.
var ErrNoTarget = errors.New("no window to restore")

// FocusTracker remembers the last foreground window that did not belong to
// the keyboard itself, so key presses can be sent back to it.
type FocusTracker struct {
	focus    input.Focus
	self     int
	interval time.Duration
	log      *logrus.Entry

	mu     sync.Mutex
	target int
}

// NewFocusTracker creates a tracker ignoring windows owned by selfPID.
func NewFocusTracker(focus input.Focus, selfPID int, interval time.Duration, log *logrus.Logger) *FocusTracker {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &FocusTracker{
		focus:    focus,
		self:     selfPID,
		interval: interval,
		log:      log.WithField("component", "focus"),
	}
}

// Poll samples the foreground window once.
func (t *FocusTracker) Poll() error {
	pid, err := t.focus.ForegroundPID()
	if err != nil {
		return err
	}
	if pid <= 0 || pid == t.self {
		return nil
	}

	t.mu.Lock()
	t.target = pid
	t.mu.Unlock()
	return nil
}

// Target returns the pid of the window keys are sent to, or 0.
func (t *FocusTracker) Target() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.target
}

// Restore activates the tracked window.
func (t *FocusTracker) Restore() error {
	target := t.Target()
	if target == 0 {
		return ErrNoTarget
	}
	return t.focus.Activate(target)
}

// Run polls until ctx is cancelled. Poll errors are logged and polling
// continues.
func (t *FocusTracker) Run(ctx context.Context) {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := t.Poll(); err != nil {
				t.log.WithError(err).Warn("error tracking focus")
			}
		}
	}
}
