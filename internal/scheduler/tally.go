package scheduler

import "github.com/vk/pulsegrid/internal/circuit"

// Tally counts the pulses delivered during one or more presses.
type Tally struct {
	Lo int
	Hi int
	// Seeded counts the button pulse and the broadcaster's fan-out of it.
	// Seeded pulses are always Lo and are included in Lo.
	Seeded int
}

func (t *Tally) count(p circuit.Pulse, seeded bool) {
	if p == circuit.Hi {
		t.Hi++
	} else {
		t.Lo++
	}
	if seeded {
		t.Seeded++
	}
}

// Add returns the sum of two tallies.
func (t Tally) Add(other Tally) Tally {
	return Tally{
		Lo:     t.Lo + other.Lo,
		Hi:     t.Hi + other.Hi,
		Seeded: t.Seeded + other.Seeded,
	}
}

// Total is the number of pulses of either value.
func (t Tally) Total() int {
	return t.Lo + t.Hi
}

// Product is Lo multiplied by Hi.
func (t Tally) Product() int {
	return t.Lo * t.Hi
}

// Relayed returns the counts of pulses emitted by flip-flops and
// conjunctions, i.e. excluding the seeded pulses.
func (t Tally) Relayed() (lo, hi int) {
	return t.Lo - t.Seeded, t.Hi
}
