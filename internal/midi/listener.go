package midi

import "fmt"

// EventType is the kind of note event produced by the Receiver.
type EventType uint8

const (
	NoteOn EventType = iota
	NoteOff
	Stop
)

func (e EventType) String() string {
	switch e {
	case NoteOn:
		return "NoteOn"
	case NoteOff:
		return "NoteOff"
	case Stop:
		return "Stop"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(e))
	}
}

// Event is a note event. Note is unset for Stop.
type Event struct {
	Type EventType
	Note uint8
}

func (e Event) String() string {
	if e.Type == Stop {
		return e.Type.String()
	}
	return fmt.Sprintf("%s(%d)", e.Type, e.Note)
}

// Listener is notified of every event that changes the note state.
type Listener interface {
	Event(Event)
}

// ListenerFunc adapts a function to a Listener.
type ListenerFunc func(Event)

func (f ListenerFunc) Event(e Event) { f(e) }

// nullListener discards every event. It is attached to a Receiver
// until a Listener is set.
type nullListener struct{}

func (nullListener) Event(Event) {}
