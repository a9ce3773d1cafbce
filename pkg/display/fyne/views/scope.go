//go:build !test

package views

import (
	"image"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/thelolagemann/onebit/pkg/display/event"
	"github.com/thelolagemann/onebit/pkg/display/scope"
	"github.com/thelolagemann/onebit/pkg/utils"
)

const (
	scopeWidth  = 640
	scopeHeight = 320
)

// Scope plots the most recently rendered samples.
type Scope struct {
	WindowedView

	img    *image.RGBA
	raster *canvas.Raster
	frozen bool
}

func (s *Scope) Title() string {
	return "Scope"
}

func (s *Scope) Run(window fyne.Window, events <-chan event.Event) error {
	s.Window = window
	s.img = image.NewRGBA(image.Rect(0, 0, scopeWidth, scopeHeight))
	if err := scope.Samples("Output", nil).Draw(s.img); err != nil {
		return err
	}

	s.raster = canvas.NewRasterFromImage(s.img)
	s.raster.ScaleMode = canvas.ImageScalePixels
	s.raster.SetMinSize(fyne.NewSize(scopeWidth, scopeHeight))

	freeze := widget.NewCheck("Freeze", func(b bool) { s.frozen = b })
	buttons := container.NewHBox(
		freeze,
		widget.NewButton("Copy", func() {
			s.error(utils.CopyImage(s.img))
		}),
		widget.NewButton("Save", func() {
			s.saveImage(s.img, "scope-"+time.Now().Format("20060102-150405")+".png")
		}),
	)
	window.SetContent(container.NewBorder(nil, buttons, nil, nil, s.raster))

	go runUntilQuit(events, func(e event.Event) {
		if e.Type != event.Scope || s.frozen {
			return
		}
		img := image.NewRGBA(s.img.Rect)
		if err := scope.Samples("Output", e.Data.([]int16)).Draw(img); err != nil {
			return
		}
		copy(s.img.Pix, img.Pix)
		s.raster.Refresh()
	})

	return nil
}
