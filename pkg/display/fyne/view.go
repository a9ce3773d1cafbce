package fyne

import (
	"fyne.io/fyne/v2"
	"github.com/thelolagemann/onebit/pkg/display/event"
)

// View defines the interface contract for a view.
type View interface {
	// Run sets the view up in window. The view keeps consuming
	// events in the background until an event.Quit arrives or the
	// channel is closed with the window.
	Run(window fyne.Window, events <-chan event.Event) error
	// Title returns a unique title for the view.
	Title() string
}
