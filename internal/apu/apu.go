// Package apu converts the synthesizer's one-bit output line into PCM.
// Every level change is recorded as a band-limited step at the timer
// cycle it happened on, so the output is free of the aliasing that
// plain point sampling of a 1.5 MHz square wave would produce.
package apu

import (
	"fmt"

	"github.com/arl/blip"
	"github.com/thelolagemann/onebit/pkg/utils"
)

const (
	// DefaultSampleRate is the rate of the rendered PCM.
	DefaultSampleRate = 44100
	// DefaultVolume is the amplitude of a high output level, relative
	// to full scale.
	DefaultVolume = 0.5

	fullScale = 32767
)

// APU is the renderer. SetLevel is called from the audio tick;
// EndFrame and ReadSamples from whoever consumes the PCM. They must
// not be called concurrently.
type APU struct {
	bl         *blip.Buffer
	sampleRate int
	bufferSize int

	level      uint8
	amp        int32
	volume     int32
	frameStart uint64

	transitions uint64
	scope       *Scope
}

// New returns an APU rendering clockRate cycles per second into
// sampleRate samples per second.
func New(clockRate float64, sampleRate int) (*APU, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("apu: invalid sample rate %d", sampleRate)
	}
	size := sampleRate / 10
	bl := blip.NewBuffer(size)
	bl.SetRates(clockRate, float64(sampleRate))

	a := &APU{
		bl:         bl,
		sampleRate: sampleRate,
		bufferSize: size,
		scope:      NewScope(ScopeSize),
	}
	a.SetVolume(DefaultVolume)
	return a, nil
}

// SampleRate returns the PCM rate.
func (a *APU) SampleRate() int {
	return a.sampleRate
}

// BufferSize returns the largest number of samples a single frame
// may produce.
func (a *APU) BufferSize() int {
	return a.bufferSize
}

// SetVolume sets the amplitude of a high level, from 0 to 1. It takes
// effect on the next level change.
func (a *APU) SetVolume(v float64) {
	a.volume = int32(utils.Clamp(0, v, 1) * fullScale)
}

// Volume returns the amplitude of a high level, from 0 to 1.
func (a *APU) Volume() float64 {
	return float64(a.volume) / fullScale
}

// SetLevel drives the output line to level at the given cycle. Cycles
// must not go backwards within a frame.
func (a *APU) SetLevel(cycle uint64, level uint8) {
	level &= 1
	if level == a.level {
		return
	}
	a.level = level
	a.transitions++

	var target int32
	if level == 1 {
		target = a.volume
	}
	if delta := target - a.amp; delta != 0 {
		a.bl.AddDelta(cycle-a.frameStart, delta)
		a.amp = target
	}
}

// Level returns the current level of the output line.
func (a *APU) Level() uint8 {
	return a.level
}

// Transitions returns the number of level changes seen so far.
func (a *APU) Transitions() uint64 {
	return a.transitions
}

// ClocksNeeded returns the number of cycles that must be run before n
// samples are available.
func (a *APU) ClocksNeeded(n int) int {
	return a.bl.ClocksNeeded(n)
}

// EndFrame makes the samples of the next clocks cycles available. The
// cycle counter of the next frame starts where this one ended.
func (a *APU) EndFrame(clocks int) {
	a.bl.EndFrame(clocks)
	a.frameStart += uint64(clocks)
}

// FrameStart returns the cycle at which the current frame began.
func (a *APU) FrameStart() uint64 {
	return a.frameStart
}

// SetFrameStart moves the frame origin, for when the cycle counter
// is restored from a snapshot.
func (a *APU) SetFrameStart(cycle uint64) {
	a.bl.Clear()
	a.frameStart = cycle
}

// SamplesAvailable returns the number of samples ready to be read.
func (a *APU) SamplesAvailable() int {
	return a.bl.SamplesAvailable()
}

// ReadSamples moves up to len(out) samples into out, and into the
// scope history. It returns the number of samples read.
func (a *APU) ReadSamples(out []int16) int {
	n := a.bl.ReadSamples(out, len(out), blip.Mono)
	a.scope.Write(out[:n])
	return n
}

// Scope returns the history of rendered samples.
func (a *APU) Scope() *Scope {
	return a.scope
}
