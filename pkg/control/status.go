package control

// Status represents the run state of the synthesizer. It can be one
// of the following:
//
//   - Running
//   - Paused
//   - Closed
type Status int

const (
	// Running is the status of a synthesizer whose clock is
	// advancing.
	Running Status = iota
	// Paused is the status of a synthesizer whose clock is
	// stopped. It renders silence.
	Paused
	// Closed is the status of a synthesizer that has been
	// shut down.
	Closed
)

func (s Status) String() string {
	switch s {
	case Running:
		return "Running"
	case Paused:
		return "Paused"
	case Closed:
		return "Closed"
	default:
		return "Unknown"
	}
}

func (s Status) IsRunning() bool {
	return s == Running
}

func (s Status) IsPaused() bool {
	return s == Paused
}

func (s Status) IsClosed() bool {
	return s == Closed
}
