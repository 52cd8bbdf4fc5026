// Package tray provides the system tray menu that starts and stops face control.
package tray

import (
	"sync"

	"github.com/getlantern/systray"

	"github.com/ayusman/facepilot/internal/control"
)

// Menu captions.
const (
	FaceItem = "Control with Face"
	EyeItem  = "Control with Eye"
)

// Tray represents the system tray application.
type Tray struct {
	onToggle func(mode control.Mode)
	onQuit   func()
	running  bool
	mode     control.Mode
	mu       sync.RWMutex

	// Menu items stored for later updates
	menuFace        *systray.MenuItem
	menuEye         *systray.MenuItem
	menuLastGesture *systray.MenuItem
}

// New creates a new Tray with no session running.
func New() *Tray {
	return &Tray{}
}

// OnToggle sets the callback called when a mode item is clicked.
func (t *Tray) OnToggle(fn func(mode control.Mode)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onToggle = fn
}

// OnQuit sets the callback function to be called when the quit menu item is clicked.
func (t *Tray) OnQuit(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onQuit = fn
}

// Run starts the system tray application.
// This function blocks until systray.Quit() is called.
func (t *Tray) Run() {
	systray.Run(t.onReady, t.onExit)
}

// Quit closes the tray and makes Run return.
func (t *Tray) Quit() {
	systray.Quit()
}

func (t *Tray) onReady() {
	systray.SetTitle("FacePilot")
	systray.SetTooltip("FacePilot hands-free mouse")

	t.mu.Lock()
	t.menuFace = systray.AddMenuItem(itemTitle(FaceItem, false), "Move the cursor with your nose")
	t.menuEye = systray.AddMenuItem(itemTitle(EyeItem, false), "Move the cursor with your eye")
	systray.AddSeparator()

	t.menuLastGesture = systray.AddMenuItem(lastTitle(""), "Last detected gesture")
	t.menuLastGesture.Disable()
	systray.AddSeparator()
	t.mu.Unlock()

	menuQuit := systray.AddMenuItem("Quit", "Quit FacePilot")

	go func() {
		for {
			select {
			case <-t.menuFace.ClickedCh:
				t.handleToggle(control.ModeFace)
			case <-t.menuEye.ClickedCh:
				t.handleToggle(control.ModeEye)
			case <-menuQuit.ClickedCh:
				t.handleQuit()
				return
			}
		}
	}()
}

func (t *Tray) onExit() {}

func (t *Tray) handleToggle(mode control.Mode) {
	t.mu.RLock()
	callback := t.onToggle
	t.mu.RUnlock()

	// Call the callback outside the lock; it reports back through SetState.
	if callback != nil {
		callback(mode)
	}
}

func (t *Tray) handleQuit() {
	t.mu.RLock()
	callback := t.onQuit
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}

	systray.Quit()
}

// SetState marks which mode, if any, is currently running.
func (t *Tray) SetState(running bool, mode control.Mode) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.running = running
	t.mode = mode

	if t.menuFace != nil {
		t.menuFace.SetTitle(itemTitle(FaceItem, running && mode == control.ModeFace))
	}
	if t.menuEye != nil {
		t.menuEye.SetTitle(itemTitle(EyeItem, running && mode == control.ModeEye))
	}
}

// SetLastGesture updates the last gesture display in the menu.
func (t *Tray) SetLastGesture(name string) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.menuLastGesture != nil {
		t.menuLastGesture.SetTitle(lastTitle(name))
	}
}

// Running returns whether a session is running and its mode.
func (t *Tray) Running() (bool, control.Mode) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.running, t.mode
}

func itemTitle(caption string, active bool) string {
	if active {
		return "● " + caption
	}
	return "○ " + caption
}

func lastTitle(name string) string {
	if name == "" {
		return "Last: none"
	}
	return "Last: " + name
}
