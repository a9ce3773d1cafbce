package web

import (
	"encoding/binary"
	"fmt"

	"github.com/thelolagemann/onebit/internal/midi"
	"github.com/thelolagemann/onebit/internal/synth"
	"github.com/thelolagemann/onebit/internal/types"
	"github.com/thelolagemann/onebit/pkg/control"
)

// Type is the first byte of every message sent to a client.
type Type = uint8

const (
	Readout Type = iota
	Scope
	Note
	KnobSync
	ClientInfo
	ClientListSync
	ClientClosing
	ServerInfo
	Role
	Title
)

// Request is the first byte of every message received from a client.
type Request = uint8

const (
	_ Request = iota
	SetKnob
	SendNote
	PausePlay
	RegisterUsername
	KeepAlive Request = 254
	Closing   Request = 255
)

// Roles sent with a Role message.
const (
	Spectator uint8 = iota
	Controller
)

// encodeReadout packs r as:
//
//	0    Readout
//	1    lights (bit 0 LFO, bit 1 envelope, bit 2 power)
//	2    waveform
//	3    LFO waveform
//	4    flags (bit 0 note on, bit 1 external)
//	5-6  LFO value
//	7-8  timer period
//	9-10 pitch
func encodeReadout(r synth.Readout) []byte {
	b := make([]byte, 11)
	b[0] = Readout
	if r.Lights.LFO {
		b[1] |= types.Bit0
	}
	if r.Lights.Envelope {
		b[1] |= types.Bit1
	}
	if r.Lights.Power {
		b[1] |= types.Bit2
	}
	b[2] = uint8(r.Waveform)
	b[3] = uint8(r.LFOWaveform)
	if r.NoteOn {
		b[4] |= types.Bit0
	}
	if r.External {
		b[4] |= types.Bit1
	}
	binary.LittleEndian.PutUint16(b[5:], r.LFO)
	binary.LittleEndian.PutUint16(b[7:], r.Period)
	binary.LittleEndian.PutUint16(b[9:], r.Pitch)
	return b
}

// encodeSamples packs a scope snapshot as little-endian samples.
func encodeSamples(samples []int16) []byte {
	b := make([]byte, 1+2*len(samples))
	b[0] = Scope
	for i, s := range samples {
		binary.LittleEndian.PutUint16(b[1+2*i:], uint16(s))
	}
	return b
}

func encodeNote(e midi.Event) []byte {
	return []byte{Note, uint8(e.Type), e.Note}
}

func encodeKnobs(knobs []uint16) []byte {
	b := make([]byte, 1+2*len(knobs))
	b[0] = KnobSync
	for i, v := range knobs {
		binary.LittleEndian.PutUint16(b[1+2*i:], v)
	}
	return b
}

// decodeRequest turns a control request from a client into a command.
func decodeRequest(msg []byte) (control.CommandPacket, error) {
	if len(msg) == 0 {
		return control.CommandPacket{}, fmt.Errorf("web: empty request")
	}
	switch msg[0] {
	case SetKnob:
		if len(msg) != 4 {
			return control.CommandPacket{}, fmt.Errorf("web: set knob: expected 4 bytes, got %d", len(msg))
		}
		return control.SetKnob(msg[1], binary.LittleEndian.Uint16(msg[2:])), nil
	case SendNote:
		return control.CommandPacket{Command: control.CommandNote, Data: msg[1:]}, nil
	case PausePlay:
		if len(msg) != 2 {
			return control.CommandPacket{}, fmt.Errorf("web: pause: expected 2 bytes, got %d", len(msg))
		}
		if msg[1] == 0 {
			return control.Pause, nil
		}
		return control.Resume, nil
	}
	return control.CommandPacket{}, fmt.Errorf("web: unknown request %d", msg[0])
}
