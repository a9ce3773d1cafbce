package scheduler

import (
	"fmt"
	"strings"
)

// Scheduler is a simple event scheduler that is used to run the
// synthesizer's periodic tasks at a specific timer cycle.
//
// The scheduler is a linked list of events, sorted by the cycle at which
// they should be executed. When an event is scheduled, it is inserted into
// the list in the correct position, and when the scheduler is ticked, every
// event that falls inside the ticked window is executed in order. Events
// that fall on the same cycle run in EventType order, so an AudioSample
// always preempts a ControlTick.
//
// While a handler runs, Cycle reports the cycle the event was scheduled
// for, not the end of the window being ticked. Handlers can therefore
// timestamp their output precisely and reschedule themselves relative
// to their own deadline, which keeps periodic tasks free of drift.
type Scheduler struct {
	cycles uint64
	root   *Event

	eventHandlers [eventTypes]func()
	events        [eventTypes]*Event // only one event of each type can be scheduled at a time
}

func NewScheduler() *Scheduler {
	s := &Scheduler{}

	// preallocate the events, so that scheduling never
	// allocates on the audio path
	for i := 0; i < eventTypes; i++ {
		s.events[i] = &Event{eventType: EventType(i)}
	}

	return s
}

// Cycle returns the current timer cycle.
func (s *Scheduler) Cycle() uint64 {
	return s.cycles
}

// RegisterEvent registers a function of the EventType to be called when
// the event is due.
func (s *Scheduler) RegisterEvent(eventType EventType, fn func()) {
	s.eventHandlers[eventType] = fn
}

// Tick advances the scheduler by the given number of cycles, executing
// every event that is due up to and including the final cycle.
func (s *Scheduler) Tick(c uint64) {
	target := s.cycles + c

	for s.root != nil && s.root.cycle <= target {
		event := s.root
		s.root = event.next
		event.next = nil
		event.scheduled = false

		s.cycles = event.cycle
		if handler := s.eventHandlers[event.eventType]; handler != nil {
			handler()
		}
	}

	s.cycles = target
}

// NextEvent returns the cycle of the next pending event, and false if
// nothing is scheduled.
func (s *Scheduler) NextEvent() (uint64, bool) {
	if s.root == nil {
		return 0, false
	}
	return s.root.cycle, true
}

// ScheduleEvent schedules an event to be executed the given number of
// cycles after the current cycle. An event of the same type that is
// already pending is replaced.
func (s *Scheduler) ScheduleEvent(eventType EventType, cycle uint64) {
	s.ScheduleEventAt(eventType, s.cycles+cycle)
}

// ScheduleEventAt schedules an event at an absolute cycle.
func (s *Scheduler) ScheduleEventAt(eventType EventType, atCycle uint64) {
	this := s.events[eventType]
	if this.scheduled {
		s.DescheduleEvent(eventType)
	}
	this.cycle = atCycle
	this.scheduled = true
	this.next = nil

	var prev *Event
	event := s.root
	for event != nil && !before(this, event) {
		prev = event
		event = event.next
	}

	this.next = event
	if prev == nil {
		s.root = this
	} else {
		prev.next = this
	}
}

// before reports whether a should run before b.
func before(a, b *Event) bool {
	if a.cycle != b.cycle {
		return a.cycle < b.cycle
	}
	return a.eventType < b.eventType
}

// DescheduleEvent removes a pending event of the given type, if any.
func (s *Scheduler) DescheduleEvent(eventType EventType) {
	var prev *Event
	event := s.root

	for event != nil {
		if event.eventType == eventType {
			if prev == nil {
				s.root = event.next
			} else {
				prev.next = event.next
			}
			event.next = nil
			event.scheduled = false
			return
		}
		prev = event
		event = event.next
	}
}

// Until returns the number of cycles until the given event is due,
// and false if it is not scheduled.
func (s *Scheduler) Until(eventType EventType) (uint64, bool) {
	event := s.events[eventType]
	if !event.scheduled {
		return 0, false
	}
	return event.cycle - s.cycles, true
}

// SetCycle moves the scheduler's clock. It is only used when restoring
// a snapshot, before any event is rescheduled.
func (s *Scheduler) SetCycle(c uint64) {
	s.root = nil
	for _, e := range s.events {
		e.Reset()
	}
	s.cycles = c
}

func (s *Scheduler) String() string {
	var b strings.Builder
	for event := s.root; event != nil; event = event.next {
		fmt.Fprintf(&b, "%s:%d->", event.eventType, event.cycle)
	}
	return b.String()
}
