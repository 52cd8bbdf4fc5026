package keyboard

import (
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/ayusman/facepilot/internal/input"
	"github.com/sirupsen/logrus"
)

// Title is the keyboard window title.
const Title = "Professional Laptop Keyboard"

// Restorer brings the previously focused window back to the front.
type Restorer interface {
	Restore() error
}

// Keyboard turns key presses into injected input and keeps the text shown
// in the keyboard's display line.
type Keyboard struct {
	injector input.Injector
	restorer Restorer
	log      *logrus.Entry

	mu        sync.Mutex
	display   string
	caps      bool
	shift     bool
	onDisplay func(string)
}

// New creates a Keyboard. restorer may be nil.
func New(injector input.Injector, restorer Restorer, log *logrus.Logger) *Keyboard {
	return &Keyboard{
		injector: injector,
		restorer: restorer,
		log:      log.WithField("component", "keyboard"),
	}
}

// OnDisplay registers a callback for display line changes.
func (k *Keyboard) OnDisplay(fn func(string)) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.onDisplay = fn
}

// Display returns the current display line.
func (k *Keyboard) Display() string {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.display
}

// Caps reports whether caps lock is on.
func (k *Keyboard) Caps() bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.caps
}

// Shift reports whether a one-shot shift is pending.
func (k *Keyboard) Shift() bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.shift
}

// Press handles one key press.
func (k *Keyboard) Press(key Key) {
	if key.Kind == KindShift {
		k.update(func() {
			k.shift = !k.shift
			k.display = "Shift: " + onOff(k.shift)
		})
		return
	}

	if k.restorer != nil {
		if err := k.restorer.Restore(); err != nil {
			k.log.WithError(err).Warn("failed to restore focus")
		}
	}

	switch key.Kind {
	case KindBackspace:
		k.update(func() {
			_, size := utf8.DecodeLastRuneInString(k.display)
			k.display = k.display[:len(k.display)-size]
		})
		k.injector.PressKey("backspace")

	case KindEnter:
		k.injector.PressKey("enter")
		k.update(func() { k.display = "" })

	case KindCaps:
		k.update(func() {
			k.caps = !k.caps
			k.display = "Caps Lock: " + onOff(k.caps)
		})

	case KindSpace:
		k.update(func() { k.display += " " })
		k.injector.PressKey("space")

	case KindTab:
		k.injector.PressKey("tab")
		k.update(func() { k.display += "    " })

	case KindNamed:
		k.injector.PressKey(key.Name)
		k.update(func() { k.display = "Pressed: " + key.Name })

	case KindFunction:
		k.injector.PressKey(key.Name)
		k.update(func() { k.display = "Pressed: " + strings.ToUpper(key.Name) })

	case KindModifier:
		k.update(func() { k.display = "Pressed: " + key.Name })
		if key.Name != "fn" {
			k.injector.TapModifier(key.Name)
		}

	case KindArrow:
		k.injector.PressKey(key.Name)
		k.update(func() { k.display = "Pressed: " + titleCase(key.Name) + " Arrow" })

	case KindChar:
		k.typeChar(key)
	}
}

func (k *Keyboard) typeChar(key Key) {
	k.mu.Lock()
	c := resolve(key, k.caps, k.shift)
	k.mu.Unlock()

	k.update(func() { k.display += c })
	k.injector.TypeText(c)

	k.update(func() {
		if k.shift {
			k.shift = false
			k.display = "Shift: OFF"
		}
	})
}

// resolve picks the character a key types for the given modifier state.
func resolve(key Key, caps, shift bool) string {
	if key.IsLetter() {
		if caps || shift {
			return strings.ToUpper(key.Name)
		}
		return strings.ToLower(key.Name)
	}
	if shift && key.Shifted != "" {
		return key.Shifted
	}
	return key.Name
}

// update applies fn under the lock and reports the new display line.
func (k *Keyboard) update(fn func()) {
	k.mu.Lock()
	fn()
	text := k.display
	notify := k.onDisplay
	k.mu.Unlock()

	if notify != nil {
		notify(text)
	}
}

func onOff(b bool) string {
	if b {
		return "ON"
	}
	return "OFF"
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
