package circuit

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Kind names a module variant.
type Kind uint8

const (
	KindSink Kind = iota // an undefined destination; never fires
	KindBroadcaster
	KindFlipFlop
	KindConjunction
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindBroadcaster:
		return "broadcaster"
	case KindFlipFlop:
		return "flip-flop"
	case KindConjunction:
		return "conjunction"
	default:
		return "sink"
	}
}

// Module is implemented by *Broadcaster, *FlipFlop and *Conjunction only.
type Module interface {
	ID() ID
	Kind() Kind
	// Outputs returns the ordered output wires. Callers must not modify it.
	Outputs() []ID
	// State renders the module's mutable state for snapshots.
	State() string

	sealed()
}

type base struct {
	id      ID
	outputs []ID
}

func (b *base) ID() ID        { return b.id }
func (b *base) Outputs() []ID { return b.outputs }
func (b *base) sealed()       {}

// Broadcaster is the stateless fan-out module.
type Broadcaster struct {
	base
}

// NewBroadcaster creates the broadcaster with its ordered outputs.
func NewBroadcaster(outputs []ID) *Broadcaster {
	return &Broadcaster{base{id: BroadcasterID, outputs: slices.Clone(outputs)}}
}

func (b *Broadcaster) Kind() Kind    { return KindBroadcaster }
func (b *Broadcaster) State() string { return "" }

// Receive relays p unchanged.
func (b *Broadcaster) Receive(p Pulse) Pulse {
	return p
}

// FlipFlop toggles on every Lo pulse and ignores Hi.
type FlipFlop struct {
	base
	on bool
}

// NewFlipFlop creates a flip-flop in the off state.
func NewFlipFlop(id ID, outputs []ID) *FlipFlop {
	return &FlipFlop{base: base{id: id, outputs: slices.Clone(outputs)}}
}

func (f *FlipFlop) Kind() Kind { return KindFlipFlop }

// On reports whether the flip-flop is currently on.
func (f *FlipFlop) On() bool { return f.on }

func (f *FlipFlop) State() string {
	if f.on {
		return "1"
	}
	return "0"
}

// Receive returns the emitted pulse and true, or false when p is Hi.
func (f *FlipFlop) Receive(p Pulse) (Pulse, bool) {
	if p == Hi {
		return Lo, false
	}
	f.on = !f.on
	if f.on {
		return Hi, true
	}
	return Lo, true
}

// ErrUnresolvedInput is returned when a conjunction receives a pulse from a
// source that was not declared as one of its inputs at construction time.
var ErrUnresolvedInput = errors.New("unresolved conjunction input")

// UnresolvedInputError identifies the conjunction and the unexpected source.
type UnresolvedInputError struct {
	Conjunction ID
	Source      ID
}

func (e *UnresolvedInputError) Error() string {
	return fmt.Sprintf("conjunction %q received a pulse from undeclared input %q", e.Conjunction, e.Source)
}

func (e *UnresolvedInputError) Unwrap() error { return ErrUnresolvedInput }

// Conjunction remembers the last pulse from each declared input and emits Lo
// only when every one of them is Hi.
type Conjunction struct {
	base
	inputs []ID       // declaration order
	last   []Pulse    // parallel to inputs
	index  map[ID]int // input -> position
	high   int        // number of inputs whose last pulse is Hi
}

// NewConjunction creates a conjunction whose declared inputs all start at Lo.
// Inputs must be complete: sources not listed here are rejected by Receive.
func NewConjunction(id ID, outputs []ID, inputs []ID) *Conjunction {
	c := &Conjunction{
		base:   base{id: id, outputs: slices.Clone(outputs)},
		inputs: make([]ID, 0, len(inputs)),
		index:  make(map[ID]int, len(inputs)),
	}
	for _, in := range inputs {
		if _, dup := c.index[in]; dup {
			continue
		}
		c.index[in] = len(c.inputs)
		c.inputs = append(c.inputs, in)
	}
	c.last = make([]Pulse, len(c.inputs))
	return c
}

func (c *Conjunction) Kind() Kind { return KindConjunction }

// Inputs returns the declared inputs in declaration order.
func (c *Conjunction) Inputs() []ID { return c.inputs }

// Last returns the last pulse recorded from input, and whether input is declared.
func (c *Conjunction) Last(input ID) (Pulse, bool) {
	i, ok := c.index[input]
	if !ok {
		return Lo, false
	}
	return c.last[i], true
}

func (c *Conjunction) State() string {
	var sb strings.Builder
	for i, in := range c.inputs {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(string(in))
		sb.WriteByte('=')
		sb.WriteString(c.last[i].String())
	}
	return sb.String()
}

// Receive records p for src and returns the resulting emission.
func (c *Conjunction) Receive(src ID, p Pulse) (Pulse, error) {
	i, ok := c.index[src]
	if !ok {
		return Lo, &UnresolvedInputError{Conjunction: c.id, Source: src}
	}
	switch {
	case c.last[i] == Lo && p == Hi:
		c.high++
	case c.last[i] == Hi && p == Lo:
		c.high--
	}
	c.last[i] = p
	if c.high == len(c.inputs) {
		return Lo, nil
	}
	return Hi, nil
}
