package circuit

import "fmt"

// Pulse is the binary value carried on a wire.
type Pulse uint8

const (
	Lo Pulse = iota
	Hi
)

// String implements fmt.Stringer.
func (p Pulse) String() string {
	switch p {
	case Lo:
		return "lo"
	case Hi:
		return "hi"
	default:
		return fmt.Sprintf("pulse(%d)", uint8(p))
	}
}

// ID identifies a module. IDs are assigned at parse time and never reused.
type ID string

const (
	// Button is the synthetic source of the pulse that starts every press.
	Button ID = "button"
	// BroadcasterID is the reserved name of the single broadcaster.
	BroadcasterID ID = "broadcaster"
)

// Signal is a single pulse in flight from Source to Destination.
type Signal struct {
	Source      ID
	Destination ID
	Pulse       Pulse
}

// String renders the signal as "src -hi-> dst".
func (s Signal) String() string {
	return fmt.Sprintf("%s -%s-> %s", s.Source, s.Pulse, s.Destination)
}
