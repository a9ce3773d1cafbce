package midiin

import "gitlab.com/gomidi/midi/v2"

// Forward hands the raw bytes of msg to sink. The driver delivers
// whole messages, so running status is already expanded.
func Forward(msg midi.Message, sink func(b byte)) {
	for _, b := range msg.Bytes() {
		sink(b)
	}
}
