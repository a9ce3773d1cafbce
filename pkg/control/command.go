// Package control defines the command protocol through which display
// drivers and other front ends drive a running synthesizer.
package control

import (
	"encoding/binary"
	"fmt"
	"math"
)

// CommandPacket is a command packet that is sent to the
// synthesizer to control it.
type CommandPacket struct {
	Command Command
	Data    []byte
}

// Command is a command that is sent to the synthesizer to
// control it.
type Command int

// ResponsePacket is a response packet that is sent
// from the synthesizer to the client.
type ResponsePacket struct {
	Command Command
	Data    []byte
	Error   error
}

const (
	// CommandPause silences the synthesizer and stops its clock.
	CommandPause Command = iota
	// CommandResume restarts the clock.
	CommandResume
	// CommandClose stops the synthesizer for good.
	CommandClose
	// CommandSetKnob moves a knob. Data is the knob number
	// followed by the 16-bit little endian position.
	CommandSetKnob
	// CommandNote feeds raw bytes to the note receiver.
	CommandNote
	// CommandLoadPreset loads the preset file named by Data.
	CommandLoadPreset
	// CommandSavePreset returns the current knob positions
	// in preset format.
	CommandSavePreset
	// CommandSaveState returns a snapshot of the synthesizer.
	CommandSaveState
	// CommandLoadState restores the snapshot in Data.
	CommandLoadState
	// CommandSetVolume sets the output volume. Data is a
	// little endian float64.
	CommandSetVolume
)

func (c Command) String() string {
	switch c {
	case CommandPause:
		return "Pause"
	case CommandResume:
		return "Resume"
	case CommandClose:
		return "Close"
	case CommandSetKnob:
		return "SetKnob"
	case CommandNote:
		return "Note"
	case CommandLoadPreset:
		return "LoadPreset"
	case CommandSavePreset:
		return "SavePreset"
	case CommandSaveState:
		return "SaveState"
	case CommandLoadState:
		return "LoadState"
	case CommandSetVolume:
		return "SetVolume"
	default:
		return fmt.Sprintf("Command(%d)", int(c))
	}
}

var (
	Pause  = CommandPacket{Command: CommandPause}
	Resume = CommandPacket{Command: CommandResume}
	Close  = CommandPacket{Command: CommandClose}
)

// SetKnob builds a CommandSetKnob packet.
func SetKnob(knob uint8, value uint16) CommandPacket {
	data := []byte{knob, 0, 0}
	binary.LittleEndian.PutUint16(data[1:], value)
	return CommandPacket{Command: CommandSetKnob, Data: data}
}

// ParseSetKnob decodes the payload of a CommandSetKnob packet.
func ParseSetKnob(data []byte) (uint8, uint16, error) {
	if len(data) != 3 {
		return 0, 0, fmt.Errorf("control: set knob: expected 3 bytes, got %d", len(data))
	}
	return data[0], binary.LittleEndian.Uint16(data[1:]), nil
}

// SetVolume builds a CommandSetVolume packet.
func SetVolume(v float64) CommandPacket {
	data := make([]byte, 8)
	binary.LittleEndian.PutUint64(data, math.Float64bits(v))
	return CommandPacket{Command: CommandSetVolume, Data: data}
}

// ParseSetVolume decodes the payload of a CommandSetVolume packet.
func ParseSetVolume(data []byte) (float64, error) {
	if len(data) != 8 {
		return 0, fmt.Errorf("control: set volume: expected 8 bytes, got %d", len(data))
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(data)), nil
}
