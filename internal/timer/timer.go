// Package timer provides an implementation of the synthesizer's audio
// timer: a 16-bit counter in clear-timer-on-compare mode. The counter
// runs at types.TimerClock, and every time it reaches the compare
// value it raises a compare-match and restarts from zero. The compare
// match is what drives the audio sample clock.
package timer

import (
	"github.com/thelolagemann/onebit/internal/scheduler"
	"github.com/thelolagemann/onebit/internal/types"
)

// Controller is a compare-match timer controller. A match is raised
// every Period()+1 timer cycles.
type Controller struct {
	period    uint16 // compare value
	lastReset uint64 // cycle at which the counter was last zero

	Enabled bool
	match   func()

	s *scheduler.Scheduler
}

// NewController returns a new timer controller driven by s. The
// controller owns the scheduler.AudioSample event.
func NewController(s *scheduler.Scheduler) *Controller {
	c := &Controller{
		s:     s,
		match: func() {},
	}
	s.RegisterEvent(scheduler.AudioSample, func() {
		// the counter clears on the match itself
		c.lastReset = s.Cycle()
		c.schedule()
		c.match()
	})
	return c
}

// AttachMatch sets the function called on every compare-match.
func (c *Controller) AttachMatch(fn func()) {
	c.match = fn
}

// Start enables the timer, counting from zero.
func (c *Controller) Start() {
	c.Enabled = true
	c.lastReset = c.s.Cycle()
	c.schedule()
}

// Stop disables the timer. Pending matches are discarded.
func (c *Controller) Stop() {
	c.Enabled = false
	c.s.DescheduleEvent(scheduler.AudioSample)
}

// Period returns the current compare value.
func (c *Controller) Period() uint16 {
	return c.period
}

// Counter returns the current value of the counter.
func (c *Controller) Counter() uint16 {
	return uint16(c.s.Cycle() - c.lastReset)
}

// SetPeriod reprograms the compare value. Writing the value the
// timer already holds has no effect at all. When the counter is
// already past the new compare value it is cleared, otherwise it
// would have to run all the way around the 16-bit range before
// the next match.
func (c *Controller) SetPeriod(p uint16) {
	if p == c.period {
		return
	}
	c.period = p
	if c.Counter() > p {
		c.lastReset = c.s.Cycle()
	}
	if c.Enabled {
		c.schedule()
	}
}

func (c *Controller) schedule() {
	c.s.ScheduleEventAt(scheduler.AudioSample, c.lastReset+uint64(c.period)+1)
}

var _ types.Stater = (*Controller)(nil)

// Load loads the state of the controller. The scheduler must already
// be positioned at the snapshot's cycle.
func (c *Controller) Load(s *types.State) {
	c.period = s.Read16()
	counter := s.Read16()
	c.Enabled = s.ReadBool()

	c.lastReset = c.s.Cycle() - uint64(counter)
	if c.Enabled {
		c.schedule()
	}
}

// Save saves the state of the controller.
func (c *Controller) Save(s *types.State) {
	s.Write16(c.period)
	s.Write16(c.Counter())
	s.WriteBool(c.Enabled)
}
