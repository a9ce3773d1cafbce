package scheduler

// EventType identifies one of the periodic tasks driven by the
// Scheduler. Only one event of each type can be pending at a time.
type EventType uint8

const (
	// AudioSample is the compare-match of the audio timer. It
	// preempts everything else scheduled for the same cycle.
	AudioSample EventType = iota
	// ControlTick is one pass of the control loop: knob sampling,
	// parameter update, LFO, envelope and pitch resolution.
	ControlTick

	eventTypes = iota
)

func (t EventType) String() string {
	switch t {
	case AudioSample:
		return "AudioSample"
	case ControlTick:
		return "ControlTick"
	default:
		return "Unknown"
	}
}

type Event struct {
	cycle     uint64
	eventType EventType
	scheduled bool
	next      *Event
}

func (e *Event) Reset() {
	e.cycle = 0
	e.scheduled = false
	e.next = nil
}
