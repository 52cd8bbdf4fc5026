package input

import (
	"github.com/go-vgo/robotgo"
	"github.com/sirupsen/logrus"
)

// robotKeys maps the key names used across the project to robotgo key names.
// Names missing from the table are passed through unchanged.
var robotKeys = map[string]string{
	"escape":       "esc",
	"print_screen": "printscreen",
	"scroll_lock":  "scrolllock",
	"page_up":      "pageup",
	"page_down":    "pagedown",
	"win":          "cmd",
	"apps":         "menu",
}

// RobotKey returns the robotgo name for a project key name.
func RobotKey(name string) string {
	if k, ok := robotKeys[name]; ok {
		return k
	}
	return name
}

// Robot implements Injector and Focus with robotgo.
type Robot struct {
	log *logrus.Entry
}

// NewRobot creates a Robot that reports injection failures to log.
func NewRobot(log *logrus.Logger) *Robot {
	return &Robot{log: log.WithField("component", "input")}
}

// MoveTo moves the cursor to an absolute screen position.
func (r *Robot) MoveTo(x, y int) {
	robotgo.Move(x, y)
}

// Click presses and releases a mouse button.
func (r *Robot) Click(b Button) {
	robotgo.Click(string(b), false)
}

// ButtonDown presses and holds a mouse button.
func (r *Robot) ButtonDown(b Button) {
	if err := robotgo.Toggle(string(b)); err != nil {
		r.log.WithError(err).WithField("button", b).Warn("button down failed")
	}
}

// ButtonUp releases a held mouse button.
func (r *Robot) ButtonUp(b Button) {
	if err := robotgo.Toggle(string(b), "up"); err != nil {
		r.log.WithError(err).WithField("button", b).Warn("button up failed")
	}
}

// PressKey taps a named key.
func (r *Robot) PressKey(name string) {
	if err := robotgo.KeyTap(RobotKey(name)); err != nil {
		r.log.WithError(err).WithField("key", name).Warn("key tap failed")
	}
}

// TapModifier presses and releases a modifier key.
func (r *Robot) TapModifier(name string) {
	key := RobotKey(name)
	if err := robotgo.KeyToggle(key); err != nil {
		r.log.WithError(err).WithField("key", name).Warn("modifier down failed")
		return
	}
	if err := robotgo.KeyToggle(key, "up"); err != nil {
		r.log.WithError(err).WithField("key", name).Warn("modifier up failed")
	}
}

// TypeText types text at the current caret.
func (r *Robot) TypeText(text string) {
	robotgo.TypeStr(text)
}

// ScreenSize returns the main display size in pixels.
func (r *Robot) ScreenSize() (int, int) {
	return robotgo.GetScreenSize()
}

// ForegroundPID returns the process id owning the active window.
func (r *Robot) ForegroundPID() (int, error) {
	return robotgo.GetPid(), nil
}

// Activate brings the windows of the given process to the foreground.
func (r *Robot) Activate(pid int) error {
	return robotgo.ActivePid(pid)
}
