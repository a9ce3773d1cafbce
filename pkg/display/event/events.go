// Package event defines the various event types that can
// be sent to a display.Driver. This package is separate from
// the display package to avoid circular dependencies.
package event

// Type defines the various event types
// that can be sent to a display.Driver. The event type
// indicates to the display.Driver what action should be
// taken.
type Type int

const (
	// Quit is sent when the user requests that the
	// application be closed.
	Quit Type = iota
	// Indicators is sent whenever a front panel light changes,
	// and after every parameter update. Data holds a synth.Readout.
	Indicators
	// Scope is periodically sent to the display.Driver with the
	// most recently rendered samples ([]int16).
	Scope
	// Title is sent to the display.Driver to change the
	// title of the window.
	Title
	// Note is sent when the note receiver changes the sounding
	// note. Data holds a midi.Event.
	Note
)

func (t Type) String() string {
	switch t {
	case Quit:
		return "Quit"
	case Indicators:
		return "Indicators"
	case Scope:
		return "Scope"
	case Title:
		return "Title"
	case Note:
		return "Note"
	default:
		return "Unknown"
	}
}

// Event is the data structure that is sent to the display.Driver
// to indicate an event has occurred. Data may or may not
// contain any data, depending on the event type.
type Event struct {
	// Type is the type of event
	Type Type
	// Data is the data of the event
	Data interface{}
}
