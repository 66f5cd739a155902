package network

import (
	"strings"

	"github.com/vk/pulsegrid/internal/circuit"
)

// ModuleState is the recorded state of one stateful module.
type ModuleState struct {
	ID    circuit.ID
	Kind  circuit.Kind
	State string
}

// Snapshot is the state of every stateful module, in definition order.
type Snapshot []ModuleState

// Snapshot captures the current module state. The broadcaster is stateless
// and omitted.
func (n *Network) Snapshot() Snapshot {
	snap := make(Snapshot, 0, len(n.topo.order))
	for _, id := range n.topo.order {
		m := n.modules[id]
		if m.Kind() == circuit.KindBroadcaster {
			continue
		}
		snap = append(snap, ModuleState{ID: id, Kind: m.Kind(), State: m.State()})
	}
	return snap
}

// String renders the snapshot on a single line.
func (s Snapshot) String() string {
	var sb strings.Builder
	for i, ms := range s {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(string(ms.ID))
		sb.WriteByte('[')
		sb.WriteString(ms.State)
		sb.WriteByte(']')
	}
	return sb.String()
}
