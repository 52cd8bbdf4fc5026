// Package keyboard implements an on-screen keyboard that types into the
// window that last had focus.
package keyboard

import (
	"strconv"
	"strings"
)

// Kind tells Press how to handle a key.
type Kind int

const (
	KindChar      Kind = iota // types a character
	KindNamed                 // taps a named key such as insert or page_up
	KindFunction              // F1 to F12
	KindModifier              // ctrl, alt, win, apps and fn
	KindArrow                 // up, down, left, right
	KindBackspace
	KindEnter
	KindCaps
	KindShift
	KindSpace
	KindTab
)

// Key is one button of the layout.
type Key struct {
	Label   string // button caption
	Name    string // key name, or the unshifted character for KindChar
	Shifted string // character typed with shift, empty for letters
	Kind    Kind
}

// IsLetter reports whether the key types a case-sensitive letter.
func (k Key) IsLetter() bool {
	if k.Kind != KindChar || len(k.Name) != 1 {
		return false
	}
	c := k.Name[0]
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func char(normal, shifted string) Key {
	return Key{Label: normal + " " + shifted, Name: normal, Shifted: shifted, Kind: KindChar}
}

func letters(s string) []Key {
	keys := make([]Key, 0, len(s))
	for _, r := range s {
		l := string(r)
		keys = append(keys, Key{Label: strings.ToUpper(l), Name: l, Kind: KindChar})
	}
	return keys
}

func named(label, name string) Key {
	return Key{Label: label, Name: name, Kind: KindNamed}
}

func modifier(label, name string) Key {
	return Key{Label: label, Name: name, Kind: KindModifier}
}

func arrow(label, name string) Key {
	return Key{Label: label, Name: name, Kind: KindArrow}
}

func row(parts ...any) []Key {
	var keys []Key
	for _, p := range parts {
		switch v := p.(type) {
		case Key:
			keys = append(keys, v)
		case []Key:
			keys = append(keys, v...)
		}
	}
	return keys
}

func functionRow() []Key {
	keys := []Key{named("Esc", "escape")}
	for i := 1; i <= 12; i++ {
		n := "f" + strconv.Itoa(i)
		keys = append(keys, Key{Label: strings.ToUpper(n), Name: n, Kind: KindFunction})
	}
	return append(keys,
		named("PrtSc", "print_screen"),
		named("ScrLk", "scroll_lock"),
		named("Pause", "pause"),
	)
}

// Layout returns the laptop-style key rows from top to bottom.
func Layout() [][]Key {
	return [][]Key{
		functionRow(),
		row(
			char("`", "~"),
			char("1", "!"), char("2", "@"), char("3", "#"), char("4", "$"), char("5", "%"),
			char("6", "^"), char("7", "&"), char("8", "*"), char("9", "("), char("0", ")"),
			char("-", "_"), char("=", "+"),
			Key{Label: "Backspace", Name: "backspace", Kind: KindBackspace},
			named("Insert", "insert"), named("Home", "home"), named("PgUp", "page_up"),
		),
		row(
			Key{Label: "Tab", Name: "tab", Kind: KindTab},
			letters("qwertyuiop"),
			char("[", "{"), char("]", "}"), char("\\", "|"),
			named("Delete", "delete"), named("End", "end"), named("PgDn", "page_down"),
		),
		row(
			Key{Label: "Caps Lock", Name: "caps", Kind: KindCaps},
			letters("asdfghjkl"),
			char(";", ":"), char("'", "\""),
			Key{Label: "Enter", Name: "enter", Kind: KindEnter},
		),
		row(
			Key{Label: "Shift", Name: "shift", Kind: KindShift},
			letters("zxcvbnm"),
			char(",", "<"), char(".", ">"), char("/", "?"),
			Key{Label: "Shift", Name: "shift", Kind: KindShift},
			arrow("↑", "up"),
		),
		row(
			modifier("Ctrl", "ctrl"), modifier("Win", "win"), modifier("Alt", "alt"),
			Key{Label: "Space", Name: "space", Kind: KindSpace},
			modifier("Alt", "alt"), modifier("Fn", "fn"), modifier("Menu", "apps"), modifier("Ctrl", "ctrl"),
			arrow("←", "left"), arrow("↓", "down"), arrow("→", "right"),
		),
	}
}

// Find returns the first key in the layout with the given name.
func Find(name string) (Key, bool) {
	for _, r := range Layout() {
		for _, k := range r {
			if k.Name == name {
				return k, true
			}
		}
	}
	return Key{}, false
}
