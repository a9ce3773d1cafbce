package control

// Controller defines the interface contract for a synthesizer to
// implement in order for a display.Driver to be able to control
// it.
type Controller interface {
	// SendCommand sends a command packet to the synthesizer.
	SendCommand(command CommandPacket) ResponsePacket
	// Status returns the run state of the synthesizer.
	Status() Status
}
