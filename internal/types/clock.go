package types

const (
	// CPUClock is the clock speed of the synthesizer's
	// microcontroller (12 MHz).
	CPUClock = 12_000_000
	// TimerPrescaler divides CPUClock down to the clock that
	// drives the audio timer.
	TimerPrescaler = 8
	// TimerClock is the rate at which the audio timer counts,
	// and the unit of every scheduler cycle (1.5 MHz).
	TimerClock = CPUClock / TimerPrescaler

	// ControlPeriod is the default number of TimerClock cycles
	// between two control-rate ticks. One pass of the control
	// loop converts 9 analog channels (13 ADC clocks each at
	// CPUClock/128) and then waits 100µs, roughly 1.35ms.
	ControlPeriod = 9*13*128/TimerPrescaler + TimerClock/10_000
)
