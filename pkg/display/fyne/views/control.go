package views

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"github.com/thelolagemann/onebit/internal/synth"
	"github.com/thelolagemann/onebit/pkg/display/event"
	"github.com/thelolagemann/onebit/pkg/display/scope"
)

// historyLength is the number of readouts kept per plot.
const historyLength = 256

// Control plots the control signals over the last readouts: the LFO
// output and the audio timer period it produces.
type Control struct {
	lfo, period *scope.History
}

func (c *Control) Title() string {
	return "Control"
}

func (c *Control) Run(window fyne.Window, events <-chan event.Event) error {
	c.lfo = scope.NewHistory(historyLength)
	c.period = scope.NewHistory(historyLength)

	lfoImage := image.NewRGBA(image.Rect(0, 0, 640, 240))
	periodImage := image.NewRGBA(image.Rect(0, 0, 640, 240))
	lfoCanvas := canvas.NewRasterFromImage(lfoImage)
	lfoCanvas.SetMinSize(fyne.NewSize(640, 240))
	periodCanvas := canvas.NewRasterFromImage(periodImage)
	periodCanvas.SetMinSize(fyne.NewSize(640, 240))

	window.SetContent(container.NewVBox(lfoCanvas, periodCanvas))

	redraw := func(h *scope.History, title, label string, img *image.RGBA, r *canvas.Raster) {
		next := image.NewRGBA(img.Rect)
		t := scope.Trace{Title: title, XLabel: "Readout", YLabel: label, Values: h.Values()}
		if err := t.Draw(next); err != nil {
			return
		}
		copy(img.Pix, next.Pix)
		r.Refresh()
	}
	redraw(c.lfo, "LFO", "Value", lfoImage, lfoCanvas)
	redraw(c.period, "Timer period", "Cycles", periodImage, periodCanvas)

	go runUntilQuit(events, func(e event.Event) {
		if e.Type != event.Indicators {
			return
		}
		r := e.Data.(synth.Readout)
		c.lfo.Add(float64(r.LFO))
		c.period.Add(float64(r.Period))

		redraw(c.lfo, "LFO", "Value", lfoImage, lfoCanvas)
		redraw(c.period, "Timer period", "Cycles", periodImage, periodCanvas)
	})

	return nil
}
