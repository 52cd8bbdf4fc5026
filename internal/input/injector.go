// Package input injects synthetic mouse and keyboard events and tracks which
// window has focus.
package input

// Button identifies a mouse button.
type Button string

const (
	ButtonLeft  Button = "left"
	ButtonRight Button = "right"
)

// Injector sends synthetic input to the operating system. Calls are
// fire-and-forget; implementations log failures instead of returning them.
type Injector interface {
	MoveTo(x, y int)
	Click(b Button)
	ButtonDown(b Button)
	ButtonUp(b Button)
	// PressKey taps a named key such as "enter", "f5" or "page_up".
	PressKey(name string)
	// TapModifier presses and releases a modifier such as "ctrl" or "win".
	TapModifier(name string)
	TypeText(text string)
	ScreenSize() (width, height int)
}

// Focus queries and restores the foreground window by owning process.
type Focus interface {
	ForegroundPID() (int, error)
	Activate(pid int) error
}
