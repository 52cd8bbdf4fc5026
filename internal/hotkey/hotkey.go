// Package hotkey listens for a global key combination.
package hotkey

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	gohook "github.com/robotn/gohook"
	"github.com/sirupsen/logrus"
)

// ErrEmptyHotkey is returned when a combination names no keys.
var ErrEmptyHotkey = errors.New("empty hotkey")

var aliases = map[string]string{
	"control": "ctrl",
	"option":  "alt",
	"win":     "cmd",
	"super":   "cmd",
	"command": "cmd",
	"escape":  "esc",
	"return":  "enter",
}

// Parse converts a combination such as "Ctrl+Alt+Q" into gohook key names.
func Parse(combo string) ([]string, error) {
	if strings.TrimSpace(combo) == "" {
		return nil, ErrEmptyHotkey
	}

	var keys []string
	for _, part := range strings.Split(strings.ToLower(combo), "+") {
		part = strings.TrimSpace(part)
		if part == "" {
			return nil, fmt.Errorf("malformed hotkey %q", combo)
		}
		if a, ok := aliases[part]; ok {
			part = a
		}
		keys = append(keys, part)
	}
	return keys, nil
}

// Listener runs the gohook event loop for one registered combination.
type Listener struct {
	keys []string
	log  *logrus.Entry

	mu      sync.Mutex
	running bool
	done    chan struct{}
}

// New parses combo and prepares a Listener for it.
func New(combo string, log *logrus.Logger) (*Listener, error) {
	keys, err := Parse(combo)
	if err != nil {
		return nil, err
	}
	return &Listener{
		keys: keys,
		log:  log.WithField("component", "hotkey"),
	}, nil
}

// Keys returns the parsed key names.
func (l *Listener) Keys() []string {
	return append([]string(nil), l.keys...)
}

// Start registers the combination and processes events in the background.
// callback runs on the hook goroutine each time the combination is pressed.
func (l *Listener) Start(callback func()) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.running {
		return
	}
	l.running = true
	l.done = make(chan struct{})

	gohook.Register(gohook.KeyDown, l.keys, func(e gohook.Event) {
		l.log.WithField("keys", strings.Join(l.keys, "+")).Info("hotkey pressed")
		if callback != nil {
			callback()
		}
	})

	evChan := gohook.Start()
	go func(done chan struct{}) {
		defer close(done)
		defer func() {
			if r := recover(); r != nil {
				l.log.WithField("panic", r).Error("hotkey listener crashed")
			}
		}()
		<-gohook.Process(evChan)
		l.log.Debug("hotkey event loop ended")
	}(l.done)

	l.log.WithField("keys", strings.Join(l.keys, "+")).Info("hotkey listener started")
}

// Stop ends the event loop and waits for it to exit.
func (l *Listener) Stop() {
	l.mu.Lock()
	if !l.running {
		l.mu.Unlock()
		return
	}
	l.running = false
	done := l.done
	l.mu.Unlock()

	gohook.End()
	<-done
}
