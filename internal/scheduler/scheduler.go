package scheduler

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vk/pulsegrid/internal/circuit"
	"github.com/vk/pulsegrid/internal/ctxlog"
	"github.com/vk/pulsegrid/internal/network"
)

// entry is a queued signal. seeded marks the button pulse and the
// broadcaster's direct response to it.
type entry struct {
	sig    circuit.Signal
	seeded bool
}

// queue is a FIFO of entries backed by a slice that is compacted whenever
// the consumed prefix dominates.
type queue struct {
	items []entry
	head  int
}

func (q *queue) push(e entry) {
	q.items = append(q.items, e)
}

func (q *queue) pop() (entry, bool) {
	if q.head == len(q.items) {
		return entry{}, false
	}
	e := q.items[q.head]
	q.head++
	if q.head > 64 && q.head*2 > len(q.items) {
		q.items = append(q.items[:0], q.items[q.head:]...)
		q.head = 0
	}
	return e, true
}

// Press runs one full wave for button press number index (1-based) and
// returns the pulses it delivered. obs may be nil.
func Press(ctx context.Context, net *network.Network, index int, obs Observer) (Tally, error) {
	logger := ctxlog.FromContext(ctx)
	debug := logger.Enabled(ctx, slog.LevelDebug)

	var tally Tally
	q := &queue{}
	q.push(entry{
		sig:    circuit.Signal{Source: circuit.Button, Destination: circuit.BroadcasterID, Pulse: circuit.Lo},
		seeded: true,
	})

	for {
		e, ok := q.pop()
		if !ok {
			break
		}
		tally.count(e.sig.Pulse, e.seeded)
		if obs != nil {
			obs.Observe(index, e.sig)
		}

		out, emitted, err := net.Deliver(e.sig)
		if err != nil {
			return tally, fmt.Errorf("press %d: delivering %s: %w", index, e.sig, err)
		}
		if !emitted {
			continue
		}

		dst := e.sig.Destination
		m, _ := net.Module(dst)
		seeded := e.seeded && e.sig.Source == circuit.Button
		for _, next := range m.Outputs() {
			q.push(entry{
				sig:    circuit.Signal{Source: dst, Destination: next, Pulse: out},
				seeded: seeded,
			})
		}
	}

	if debug {
		logger.Debug("Press drained.", "press", index, "lo", tally.Lo, "hi", tally.Hi)
	}
	return tally, nil
}
