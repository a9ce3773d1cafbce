package fyne

import "fyne.io/fyne/v2"

// MenuOption is used to customize the behaviour and properties of a [fyne.MenuItem]
type MenuOption func(*fyne.MenuItem)

// Checked allows toggling the state of a [fyne.MenuItem], calling onChange with the
// value whenever the [fyne.MenuItem] is clicked/tapped.
func Checked(b bool, onChange func()) MenuOption {
	return func(item *fyne.MenuItem) {
		tempFn := item.Action
		item.Action = func() {
			tempFn()
			item.Checked = !item.Checked
			onChange()
		}
		item.Checked = b
	}
}

// Shortcut attaches a keyboard shortcut to the [fyne.MenuItem], and registers it
// with the canvas so that it works while the menu is closed.
func Shortcut(c fyne.Canvas, s fyne.Shortcut) MenuOption {
	return func(item *fyne.MenuItem) {
		item.Shortcut = s
		fn := item.Action
		c.AddShortcut(s, func(fyne.Shortcut) { fn() })
	}
}

// NewCustomizedMenuItem creates a [fyne.MenuItem] with the provided label and fn, and applies
// all of the MenuOption(s) to it.
func NewCustomizedMenuItem(label string, fn func(), opts ...MenuOption) *fyne.MenuItem {
	m := fyne.NewMenuItem(label, fn)
	for _, o := range opts {
		o(m)
	}
	return m
}
