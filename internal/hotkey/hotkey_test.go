package hotkey

import (
	"errors"
	"io"
	"reflect"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"Ctrl+Alt+Q", []string{"ctrl", "alt", "q"}},
		{"ctrl + shift + o", []string{"ctrl", "shift", "o"}},
		{"Alt+F4", []string{"alt", "f4"}},
		{"Win+Shift+S", []string{"cmd", "shift", "s"}},
		{"Super+Alt+T", []string{"cmd", "alt", "t"}},
		{"Control+Option+Escape", []string{"ctrl", "alt", "esc"}},
		{"Q", []string{"q"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.input, err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Parse(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	if _, err := Parse("  "); !errors.Is(err, ErrEmptyHotkey) {
		t.Errorf("Parse(blank) error = %v, want ErrEmptyHotkey", err)
	}
	for _, in := range []string{"Ctrl++Q", "Ctrl+", "+Q"} {
		if _, err := Parse(in); err == nil {
			t.Errorf("Parse(%q) should fail", in)
		}
	}
}

func TestNew(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)

	l, err := New("Ctrl+Alt+Q", log)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if got := l.Keys(); !reflect.DeepEqual(got, []string{"ctrl", "alt", "q"}) {
		t.Errorf("Keys() = %v", got)
	}

	// Stop before Start is a no-op.
	l.Stop()

	if _, err := New("", log); err == nil {
		t.Error("New with an empty combination should fail")
	}
}
