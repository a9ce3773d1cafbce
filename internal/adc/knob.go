package adc

import (
	"fmt"
	"strconv"
	"strings"
)

// Knob identifies one analog control channel.
type Knob uint8

const (
	LFOWaveform Knob = iota
	EnvWidth
	LFODepth
	LFOFreq
	Pitch
	ExtA
	EnvFreq
	AudioWaveform
	ExtB

	// NumKnobs is the number of channels sampled on every control tick.
	NumKnobs = 9
)

var knobNames = [NumKnobs]string{
	"lfo-wave", "env-width", "lfo-depth", "lfo-freq", "pitch", "ext-a", "env-freq", "wave", "ext-b",
}

func (k Knob) String() string {
	if int(k) < NumKnobs {
		return knobNames[k]
	}
	return fmt.Sprintf("knob(%d)", k)
}

// ParseKnob accepts either a knob name or its channel number.
func ParseKnob(s string) (Knob, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range knobNames {
		if s == name {
			return Knob(i), nil
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n >= NumKnobs {
		return 0, fmt.Errorf("unknown knob %q", s)
	}
	return Knob(n), nil
}
