// Package themes holds the look of the front panel.
package themes

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

type Default struct{}

var _ fyne.Theme = Default{}

var (
	primaryA20 = color.NRGBA{0xff, 0x88, 0x2e, 0xff}
	primaryA60 = color.NRGBA{0xff, 0xa6, 0x65, 0xff}

	surfaceA0  = color.NRGBA{0x24, 0x1f, 0x31, 0xff}
	surfaceA20 = color.NRGBA{0x39, 0x34, 0x45, 0xff}
	surfaceA40 = color.NRGBA{0x4f, 0x4a, 0x5a, 0xff}
	surfaceA60 = color.NRGBA{0x66, 0x61, 0x66, 0xff}

	disabledText = color.NRGBA{156, 156, 156, 255}
	disabled     = color.NRGBA{35, 35, 35, 255}

	ledOn  = color.NRGBA{0xff, 0x30, 0x20, 0xff}
	ledOff = color.NRGBA{0x40, 0x12, 0x10, 0xff}
)

const (
	ColorNameSecondary              fyne.ThemeColorName = "secondary"
	ColorNameDisabledText           fyne.ThemeColorName = "disabled-text"
	ColorNameBackgroundOnBackground fyne.ThemeColorName = "background-on-background"
	ColorNameLEDOn                  fyne.ThemeColorName = "led-on"
	ColorNameLEDOff                 fyne.ThemeColorName = "led-off"
)

var colorMap = map[fyne.ThemeColorName]color.Color{
	ColorNameBackgroundOnBackground: surfaceA20,
	ColorNameSecondary:              primaryA60,
	ColorNameDisabledText:           disabledText,
	ColorNameLEDOn:                  ledOn,
	ColorNameLEDOff:                 ledOff,
	theme.ColorNamePrimary:          primaryA20,
	theme.ColorNameBackground:       surfaceA0,
	theme.ColorNameMenuBackground:   surfaceA40,
	theme.ColorNameDisabled:         disabled,
	theme.ColorNameButton:           surfaceA40,
	theme.ColorNameInputBackground:  surfaceA40,
	theme.ColorNameFocus:            surfaceA20,
	theme.ColorNameHover:            surfaceA60,
}

func (d Default) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	if c, ok := colorMap[name]; ok {
		return c
	}
	return theme.DefaultTheme().Color(name, variant)
}

func (d Default) Font(style fyne.TextStyle) fyne.Resource    { return theme.DefaultTheme().Font(style) }
func (d Default) Icon(name fyne.ThemeIconName) fyne.Resource { return theme.DefaultTheme().Icon(name) }
func (d Default) Size(name fyne.ThemeSizeName) float32       { return theme.DefaultTheme().Size(name) }
