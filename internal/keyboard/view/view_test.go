package view

import (
	"io"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"

	"github.com/ayusman/facepilot/internal/input"
	"github.com/ayusman/facepilot/internal/keyboard"
)

func TestImportance(t *testing.T) {
	tests := []struct {
		name string
		want widget.Importance
	}{
		{"enter", widget.SuccessImportance},
		{"backspace", widget.DangerImportance},
		{"f1", widget.LowImportance},
		{"a", widget.MediumImportance},
		{"ctrl", widget.HighImportance},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k, ok := keyboard.Find(tt.name)
			if !ok {
				t.Fatalf("key %q missing", tt.name)
			}
			if got := Importance(k); got != tt.want {
				t.Errorf("Importance(%s) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestBuild_TapTypes(t *testing.T) {
	test.NewTempApp(t)

	log := logrus.New()
	log.SetOutput(io.Discard)
	rec := input.NewRecorder(1920, 1080)
	kb := keyboard.New(rec, nil, log)

	content, display := Build(kb)
	kb.OnDisplay(display.SetText)

	w := test.NewTempWindow(t, content)
	w.Resize(fyne.NewSize(Width, Height))

	btn := findButton(content, "Q")
	if btn == nil {
		t.Fatal("no Q button")
	}
	test.Tap(btn)

	if ev := rec.Events(); len(ev) != 1 || ev[0].Text != "q" {
		t.Errorf("events = %+v, want typed q", ev)
	}
	if display.Text != "q" {
		t.Errorf("display = %q, want q", display.Text)
	}
}

func findButton(o fyne.CanvasObject, label string) *widget.Button {
	switch v := o.(type) {
	case *widget.Button:
		if v.Text == label {
			return v
		}
	case *fyne.Container:
		for _, c := range v.Objects {
			if b := findButton(c, label); b != nil {
				return b
			}
		}
	}
	return nil
}
