package tray

import (
	"testing"

	"github.com/ayusman/facepilot/internal/control"
)

func TestItemTitle(t *testing.T) {
	if got := itemTitle(FaceItem, true); got != "● Control with Face" {
		t.Errorf("active title = %q", got)
	}
	if got := itemTitle(EyeItem, false); got != "○ Control with Eye" {
		t.Errorf("inactive title = %q", got)
	}
}

func TestLastTitle(t *testing.T) {
	tests := map[string]string{
		"":      "Last: none",
		"teeth": "Last: teeth",
	}
	for in, want := range tests {
		if got := lastTitle(in); got != want {
			t.Errorf("lastTitle(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTray_StateWithoutMenu(t *testing.T) {
	tr := New()

	// Updates before the menu exists must not panic.
	tr.SetState(true, control.ModeEye)
	tr.SetLastGesture("tongue")

	running, mode := tr.Running()
	if !running || mode != control.ModeEye {
		t.Errorf("Running() = %v, %s; want true, eye", running, mode)
	}
}

func TestTray_Toggle(t *testing.T) {
	tr := New()

	var got []control.Mode
	tr.OnToggle(func(m control.Mode) { got = append(got, m) })

	tr.handleToggle(control.ModeFace)
	tr.handleToggle(control.ModeEye)

	if len(got) != 2 || got[0] != control.ModeFace || got[1] != control.ModeEye {
		t.Errorf("toggles = %v", got)
	}
}
