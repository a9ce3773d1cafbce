package main

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/thelolagemann/onebit/internal/adc"
	"github.com/thelolagemann/onebit/internal/synth"
	"gitlab.com/gomidi/midi/v2"
)

// Action is what a Step does to the synthesizer.
type Action uint8

const (
	NoteOn Action = iota
	NoteOff
	SetKnob
	Stop
)

// defaultVelocity is used by note-on lines that leave it out.
const defaultVelocity = 100

// Step is one line of a note script.
type Step struct {
	At       time.Duration
	Action   Action
	Note     uint8
	Velocity uint8
	Knob     adc.Knob
	Value    int
}

// ParseScript reads a note script. Every non-blank line that is not a
// comment has the form
//
//	<ms> on <note> [velocity]
//	<ms> off <note>
//	<ms> knob <name|number> <value>
//	<ms> stop
//
// The returned steps are ordered by time; steps at the same time keep
// their order in the script.
func ParseScript(r io.Reader) ([]Step, error) {
	var steps []Step
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text, _, _ := strings.Cut(scanner.Text(), "#")
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}
		step, err := parseStep(fields)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		steps = append(steps, step)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(steps, func(i, j int) bool {
		return steps[i].At < steps[j].At
	})
	return steps, nil
}

func parseStep(fields []string) (Step, error) {
	var s Step
	if len(fields) < 2 {
		return s, fmt.Errorf("expected a time and an action, got %q", strings.Join(fields, " "))
	}
	ms, err := strconv.ParseUint(fields[0], 10, 32)
	if err != nil {
		return s, fmt.Errorf("invalid time %q", fields[0])
	}
	s.At = time.Duration(ms) * time.Millisecond

	args := fields[2:]
	switch fields[1] {
	case "on":
		if len(args) < 1 || len(args) > 2 {
			return s, fmt.Errorf("on: expected a note and an optional velocity")
		}
		s.Action = NoteOn
		s.Velocity = defaultVelocity
		if s.Note, err = parse7(args[0]); err != nil {
			return s, fmt.Errorf("on: note: %w", err)
		}
		if len(args) == 2 {
			if s.Velocity, err = parse7(args[1]); err != nil {
				return s, fmt.Errorf("on: velocity: %w", err)
			}
		}
	case "off":
		if len(args) != 1 {
			return s, fmt.Errorf("off: expected a note")
		}
		s.Action = NoteOff
		if s.Note, err = parse7(args[0]); err != nil {
			return s, fmt.Errorf("off: note: %w", err)
		}
	case "knob":
		if len(args) != 2 {
			return s, fmt.Errorf("knob: expected a knob and a value")
		}
		s.Action = SetKnob
		if s.Knob, err = adc.ParseKnob(args[0]); err != nil {
			return s, err
		}
		if s.Value, err = strconv.Atoi(args[1]); err != nil {
			return s, fmt.Errorf("knob: invalid value %q", args[1])
		}
	case "stop":
		if len(args) != 0 {
			return s, fmt.Errorf("stop: unexpected arguments")
		}
		s.Action = Stop
	default:
		return s, fmt.Errorf("unknown action %q", fields[1])
	}
	return s, nil
}

func parse7(s string) (uint8, error) {
	v, err := strconv.ParseUint(s, 10, 8)
	if err != nil || v > 127 {
		return 0, fmt.Errorf("expected 0-127, got %q", s)
	}
	return uint8(v), nil
}

// Apply performs the step on s. Notes are sent on channel 1.
func (st Step) Apply(s *synth.Synth) {
	switch st.Action {
	case NoteOn:
		s.Write(midi.NoteOn(0, st.Note, st.Velocity).Bytes())
	case NoteOff:
		s.Write(midi.NoteOff(0, st.Note).Bytes())
	case SetKnob:
		s.SetKnob(st.Knob, st.Value)
	case Stop:
		s.Write(midi.Message{0xFC}.Bytes())
	}
}
