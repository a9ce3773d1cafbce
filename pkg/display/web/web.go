// Package web implements a display.Driver that serves the front panel
// to websocket clients. The first client to connect controls the
// knobs; the others watch.
package web

import (
	"github.com/thelolagemann/onebit/internal/midi"
	"github.com/thelolagemann/onebit/internal/synth"
	"github.com/thelolagemann/onebit/pkg/display"
	"github.com/thelolagemann/onebit/pkg/display/event"
	"github.com/thelolagemann/onebit/pkg/log"
)

var addr string

func init() {
	display.Install("web", &Driver{}, []display.DriverOption{
		{
			Name:        "addr",
			Default:     ":8090",
			Value:       &addr,
			Description: "address to serve the websocket panel on",
			Type:        "string",
		},
	})
}

// Driver is the web display driver.
type Driver struct {
	Log log.Logger

	synth display.Synth
	hub   *hub
	scope *cache
}

// Logger returns the logger the driver reports client errors to.
func (d *Driver) Logger() log.Logger {
	if d.Log == nil {
		d.Log = log.NewNullLogger()
	}
	return d.Log
}

// Initialize attaches the driver to s.
func (d *Driver) Initialize(s display.Synth) {
	d.synth = s
	d.Logger()
	d.hub = newHub(s, d.Log)
	d.scope = newCache(8)
}

// Start serves clients and forwards events to them until an
// event.Quit arrives or events is closed.
func (d *Driver) Start(events <-chan event.Event) error {
	d.hub.listen(addr)
	errs := make(chan error, 1)
	go func() {
		errs <- d.hub.serve()
	}()
	go d.hub.run()
	defer d.hub.close()

	for {
		select {
		case err := <-errs:
			return err
		case e, ok := <-events:
			if !ok || e.Type == event.Quit {
				return nil
			}
			if msg := d.encode(e); msg != nil {
				d.hub.send(msg)
			}
		}
	}
}

// encode converts an event into a client message, or nil if clients
// have no use for it.
func (d *Driver) encode(e event.Event) []byte {
	switch e.Type {
	case event.Indicators:
		return encodeReadout(e.Data.(synth.Readout))
	case event.Scope:
		msg := encodeSamples(e.Data.([]int16))
		if d.scope.seen(msg) {
			return nil
		}
		return msg
	case event.Note:
		return encodeNote(e.Data.(midi.Event))
	case event.Title:
		return append([]byte{Title}, e.Data.(string)...)
	}
	return nil
}

// Stop closes every client and the server.
func (d *Driver) Stop() error {
	if d.hub != nil && d.hub.server != nil {
		return d.hub.server.Close()
	}
	return nil
}
