// Package view renders the on-screen keyboard with fyne.
package view

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/ayusman/facepilot/internal/keyboard"
)

// AppID identifies the keyboard application to fyne.
const AppID = "com.ayusman.facepilot.osk"

// Window size of the keyboard.
const (
	Width  = 1200
	Height = 450
)

// Importance picks the button style for a key.
func Importance(k keyboard.Key) widget.Importance {
	switch k.Kind {
	case keyboard.KindEnter:
		return widget.SuccessImportance
	case keyboard.KindBackspace:
		return widget.DangerImportance
	case keyboard.KindFunction:
		return widget.LowImportance
	case keyboard.KindChar, keyboard.KindSpace:
		return widget.MediumImportance
	default:
		return widget.HighImportance
	}
}

// Build creates the keyboard content: the display line above the key rows.
func Build(kb *keyboard.Keyboard) (fyne.CanvasObject, *widget.Label) {
	display := widget.NewLabel(kb.Display())
	display.Alignment = fyne.TextAlignCenter
	display.TextStyle = fyne.TextStyle{Monospace: true, Bold: true}

	layout := keyboard.Layout()
	rows := make([]fyne.CanvasObject, 0, len(layout))
	for _, r := range layout {
		buttons := make([]fyne.CanvasObject, 0, len(r))
		for _, k := range r {
			key := k
			btn := widget.NewButton(key.Label, func() { kb.Press(key) })
			btn.Importance = Importance(key)
			buttons = append(buttons, btn)
		}
		rows = append(rows, container.NewGridWithColumns(len(buttons), buttons...))
	}

	content := container.NewBorder(display, nil, nil, nil, container.NewGridWithRows(len(rows), rows...))
	return content, display
}

// Run shows the keyboard window and blocks until it is closed.
func Run(kb *keyboard.Keyboard) {
	a := app.NewWithID(AppID)
	w := a.NewWindow(keyboard.Title)

	content, display := Build(kb)
	kb.OnDisplay(func(text string) {
		fyne.Do(func() { display.SetText(text) })
	})

	w.SetContent(content)
	w.Resize(fyne.NewSize(Width, Height))
	w.SetFixedSize(true)
	w.ShowAndRun()
}
