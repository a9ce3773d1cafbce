package views

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/thelolagemann/onebit/pkg/display/fyne/themes"
)

// bold is a small utility function for creating a bold label.
func bold(s string) *widget.Label { return widget.NewLabelWithStyle(s, 0, fyne.TextStyle{Bold: true}) }

// mono is a small utility function for creating a monospaced text element.
func mono(s string, c color.Color) *canvas.Text {
	t := canvas.NewText(s, c)
	t.TextStyle.Monospace = true

	return t
}

// newBadge wraps content in a stack with a background.
func newBadge(backgroundColor color.Color, content fyne.CanvasObject) fyne.CanvasObject {
	bgRect := canvas.NewRectangle(backgroundColor)
	bgRect.Resize(content.MinSize())

	return container.NewMax(bgRect, content)
}

func newCard(title string, content fyne.CanvasObject) fyne.CanvasObject {
	return newBadge(themeColor(themes.ColorNameBackgroundOnBackground), container.NewVBox(
		newBadge(themeColor(theme.ColorNameInputBackground), container.NewPadded(mono(title, themeColor(theme.ColorNameForeground)))),
		content))
}

// led is a front panel light.
type led struct {
	*canvas.Circle
	on bool
}

func newLED() *led {
	c := canvas.NewCircle(themeColor(themes.ColorNameLEDOff))
	c.StrokeColor = themeColor(theme.ColorNameShadow)
	c.StrokeWidth = 1
	return &led{Circle: c}
}

// set switches the light, refreshing it only on a change.
func (l *led) set(on bool) {
	if on == l.on {
		return
	}
	l.on = on
	if on {
		l.FillColor = themeColor(themes.ColorNameLEDOn)
	} else {
		l.FillColor = themeColor(themes.ColorNameLEDOff)
	}
	l.Refresh()
}

// labelled lays a light out above its name.
func (l *led) labelled(name string) fyne.CanvasObject {
	return container.NewVBox(
		container.NewCenter(container.NewGridWrap(fyne.NewSize(18, 18), l.Circle)),
		widget.NewLabelWithStyle(name, fyne.TextAlignCenter, fyne.TextStyle{Monospace: true}),
	)
}

func themeColor(name fyne.ThemeColorName) color.Color {
	settings := fyne.CurrentApp().Settings()
	return settings.Theme().Color(name, settings.ThemeVariant())
}

func findWindow(name string) fyne.Window {
	for _, w := range fyne.CurrentApp().Driver().AllWindows() {
		if w.Title() == name {
			return w
		}
	}

	return nil
}
