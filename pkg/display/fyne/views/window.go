package views

import (
	"image"
	"image/png"
	"io"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"github.com/thelolagemann/onebit/pkg/display/event"
)

// WindowedView is a helper struct to allow widgets to be embedded
// with a Window.
type WindowedView struct {
	Window fyne.Window
}

// error displays err with a dialog on the embedded Window. If err
// is nil, nothing happens.
func (w *WindowedView) error(err error) {
	if err != nil {
		d := dialog.NewError(err, w.Window)
		d.Show()
	}
}

func (w *WindowedView) saveImage(img image.Image, name string) {
	d := dialog.NewFileSave(func(closer fyne.URIWriteCloser, err error) {
		if closer == nil {
			return // user cancelled
		}
		defer closer.Close()
		if err := png.Encode(closer, img); err != nil {
			w.error(err)
			return
		}
	}, w.Window)
	d.SetFileName(name)
	d.Show()
}

// SaveFile asks for a destination and writes b to it.
func (w *WindowedView) SaveFile(b []byte, name string) {
	d := dialog.NewFileSave(func(closer fyne.URIWriteCloser, err error) {
		if closer == nil {
			return // user cancelled
		}
		defer closer.Close()
		if _, err := closer.Write(b); err != nil {
			w.error(err)
			return
		}
	}, w.Window)
	d.SetFileName(name)
	d.Show()
}

// OpenFile asks for a file and hands its contents to fn.
func (w *WindowedView) OpenFile(fn func([]byte) error) {
	d := dialog.NewFileOpen(func(closer fyne.URIReadCloser, err error) {
		if closer == nil {
			return // user cancelled
		}
		defer closer.Close()
		b, err := io.ReadAll(closer)
		if err != nil {
			w.error(err)
			return
		}
		w.error(fn(b))
	}, w.Window)
	d.Show()
}

// runUntilQuit calls fn for every event until an event.Quit arrives
// or events is closed.
func runUntilQuit(events <-chan event.Event, fn func(e event.Event)) {
	for e := range events {
		if e.Type == event.Quit {
			return
		}
		fn(e)
	}
}
