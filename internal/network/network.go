package network

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/vk/pulsegrid/internal/circuit"
	"github.com/vk/pulsegrid/internal/ctxlog"
	"github.com/vk/pulsegrid/internal/wiring"
)

var (
	// ErrDuplicateModule is returned when two lines define the same name.
	ErrDuplicateModule = errors.New("duplicate module definition")
	// ErrNoBroadcaster is returned when the wiring lacks a broadcaster line.
	ErrNoBroadcaster = errors.New("no broadcaster defined")
	// ErrReservedName is returned when a definition uses a reserved id.
	ErrReservedName = errors.New("reserved module name")
)

// Network owns every module of one circuit together with its wiring.
type Network struct {
	topo        *topology
	modules     map[circuit.ID]circuit.Module
	broadcaster *circuit.Broadcaster
}

// Build constructs a Network from parsed definitions.
func Build(ctx context.Context, defs []wiring.Definition) (*Network, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Network construction started.", "definitions", len(defs))

	topo := newTopology()
	kinds := make(map[circuit.ID]circuit.Kind, len(defs))

	// Pass one: register every definition.
	for _, def := range defs {
		switch {
		case def.Name == circuit.Button:
			return nil, fmt.Errorf("line %d: %w: %q", def.Line, ErrReservedName, def.Name)
		case def.Name == circuit.BroadcasterID && def.Kind != circuit.KindBroadcaster:
			return nil, fmt.Errorf("line %d: %w: %q must be declared without a marker", def.Line, ErrReservedName, def.Name)
		}
		if !topo.addModule(def.Name, slices.Clone(def.Outputs)) {
			return nil, fmt.Errorf("line %d: %w: %q", def.Line, ErrDuplicateModule, def.Name)
		}
		kinds[def.Name] = def.Kind
	}
	if _, ok := kinds[circuit.BroadcasterID]; !ok {
		return nil, ErrNoBroadcaster
	}

	// Pass two: resolve inputs, then instantiate modules with complete state.
	topo.resolve()

	n := &Network{
		topo:    topo,
		modules: make(map[circuit.ID]circuit.Module, len(topo.order)),
	}
	for _, id := range topo.order {
		outputs := topo.outputs[id]
		switch kinds[id] {
		case circuit.KindBroadcaster:
			n.broadcaster = circuit.NewBroadcaster(outputs)
			n.modules[id] = n.broadcaster
		case circuit.KindFlipFlop:
			n.modules[id] = circuit.NewFlipFlop(id, outputs)
		case circuit.KindConjunction:
			n.modules[id] = circuit.NewConjunction(id, outputs, topo.inputs[id])
		default:
			// Unreachable: wiring.Parse only yields the three kinds above.
			panic(fmt.Sprintf("network: unexpected module kind %v for %q", kinds[id], id))
		}
	}

	logger.Debug("Network construction complete.", "modules", len(n.modules), "sinks", len(topo.sinks))
	return n, nil
}

// Broadcaster returns the network's single broadcaster.
func (n *Network) Broadcaster() *circuit.Broadcaster {
	return n.broadcaster
}

// Module returns the module with the given id. Sinks are not modules.
func (n *Network) Module(id circuit.ID) (circuit.Module, bool) {
	m, ok := n.modules[id]
	return m, ok
}

// Kind returns the kind of id, KindSink for any id without a definition.
func (n *Network) Kind(id circuit.ID) circuit.Kind {
	if m, ok := n.modules[id]; ok {
		return m.Kind()
	}
	return circuit.KindSink
}

// IDs returns every defined module in definition order.
func (n *Network) IDs() []circuit.ID {
	return slices.Clone(n.topo.order)
}

// Sinks returns destinations that have no definition.
func (n *Network) Sinks() []circuit.ID {
	return slices.Clone(n.topo.sinks)
}

// Inputs returns the modules that output to id, in definition order.
func (n *Network) Inputs(id circuit.ID) []circuit.ID {
	return slices.Clone(n.topo.inputs[id])
}

// Outputs returns the ordered destinations of id.
func (n *Network) Outputs(id circuit.ID) []circuit.ID {
	return slices.Clone(n.topo.outputs[id])
}

// Deliver hands sig to its destination and returns the pulse that destination
// emits to all of its outputs, if any. Undefined destinations never emit.
func (n *Network) Deliver(sig circuit.Signal) (circuit.Pulse, bool, error) {
	switch m := n.modules[sig.Destination].(type) {
	case nil:
		return circuit.Lo, false, nil
	case *circuit.Broadcaster:
		return m.Receive(sig.Pulse), true, nil
	case *circuit.FlipFlop:
		out, ok := m.Receive(sig.Pulse)
		return out, ok, nil
	case *circuit.Conjunction:
		out, err := m.Receive(sig.Source, sig.Pulse)
		if err != nil {
			return circuit.Lo, false, err
		}
		return out, true, nil
	default:
		panic(fmt.Sprintf("network: unhandled module type %T", m))
	}
}
