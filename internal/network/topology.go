package network

import (
	"slices"

	"github.com/vk/pulsegrid/internal/circuit"
)

// topology is the immutable wire structure of a network.
type topology struct {
	order   []circuit.ID                // definition order
	outputs map[circuit.ID][]circuit.ID // key: module, value: ordered destinations
	inputs  map[circuit.ID][]circuit.ID // key: destination, value: sources in definition order
	sinks   []circuit.ID                // destinations with no definition, first-seen order
}

func newTopology() *topology {
	return &topology{
		outputs: make(map[circuit.ID][]circuit.ID),
		inputs:  make(map[circuit.ID][]circuit.ID),
	}
}

// addModule registers a module and its outputs. It reports false for a duplicate.
func (t *topology) addModule(id circuit.ID, outputs []circuit.ID) bool {
	if _, exists := t.outputs[id]; exists {
		return false
	}
	t.order = append(t.order, id)
	t.outputs[id] = outputs
	return true
}

// resolve computes the input adjacency and the sink list. It must run after
// every module has been added.
func (t *topology) resolve() {
	seenSink := make(map[circuit.ID]struct{})
	for _, src := range t.order {
		for _, dst := range t.outputs[src] {
			if !slices.Contains(t.inputs[dst], src) {
				t.inputs[dst] = append(t.inputs[dst], src)
			}
			if _, defined := t.outputs[dst]; defined {
				continue
			}
			if _, seen := seenSink[dst]; !seen {
				seenSink[dst] = struct{}{}
				t.sinks = append(t.sinks, dst)
			}
		}
	}
}
