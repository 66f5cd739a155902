// Package driver issues button presses against a network, one fully drained
// wave at a time, and keeps the running press count.
package driver

import (
	"context"
	"errors"
	"fmt"

	"github.com/vk/pulsegrid/internal/circuit"
	"github.com/vk/pulsegrid/internal/ctxlog"
	"github.com/vk/pulsegrid/internal/network"
	"github.com/vk/pulsegrid/internal/scheduler"
)

// ErrBudgetExhausted is returned when PressUntil runs out of presses.
var ErrBudgetExhausted = errors.New("press budget exhausted")

// Driver owns a network for the duration of a simulation. It is not safe for
// concurrent use.
type Driver struct {
	net     *network.Network
	obs     scheduler.Observer
	presses int
}

// New creates a driver for net. Every observer sees every signal of every
// press, in the order given.
func New(net *network.Network, observers ...scheduler.Observer) *Driver {
	d := &Driver{net: net}
	switch len(observers) {
	case 0:
	case 1:
		d.obs = observers[0]
	default:
		d.obs = scheduler.Observers(observers)
	}
	return d
}

// Presses returns how many presses have completed.
func (d *Driver) Presses() int {
	return d.presses
}

// Network returns the driven network.
func (d *Driver) Network() *network.Network {
	return d.net
}

// Press runs the next wave to quiescence.
func (d *Driver) Press(ctx context.Context) (scheduler.Tally, error) {
	tally, err := scheduler.Press(ctx, d.net, d.presses+1, d.obs)
	if err != nil {
		return tally, err
	}
	d.presses++
	return tally, nil
}

// PressN runs n presses and returns their summed tally. The context is
// checked between presses.
func (d *Driver) PressN(ctx context.Context, n int) (scheduler.Tally, error) {
	var total scheduler.Tally
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return total, err
		}
		tally, err := d.Press(ctx)
		if err != nil {
			return total, err
		}
		total = total.Add(tally)
	}
	ctxlog.FromContext(ctx).Debug("Presses complete.", "presses", n, "lo", total.Lo, "hi", total.Hi)
	return total, nil
}

// PressUntil keeps pressing until stop reports true after a press, and
// returns the index of that press. At most budget presses are issued by this
// call.
func (d *Driver) PressUntil(ctx context.Context, budget int, stop func(press int) bool) (int, error) {
	for i := 0; i < budget; i++ {
		if err := ctx.Err(); err != nil {
			return d.presses, err
		}
		if _, err := d.Press(ctx); err != nil {
			return d.presses, err
		}
		if stop(d.presses) {
			return d.presses, nil
		}
	}
	return d.presses, fmt.Errorf("%w after %d presses", ErrBudgetExhausted, budget)
}

// FirstLow presses a fresh network until sink receives a Lo pulse and
// returns that press index.
func FirstLow(ctx context.Context, net *network.Network, sink circuit.ID, budget int) (int, error) {
	hit := 0
	watch := scheduler.ObserverFunc(func(press int, sig circuit.Signal) {
		if hit == 0 && sig.Destination == sink && sig.Pulse == circuit.Lo {
			hit = press
		}
	})
	d := New(net, watch)
	press, err := d.PressUntil(ctx, budget, func(int) bool { return hit != 0 })
	if err != nil {
		return 0, fmt.Errorf("waiting for lo at %q: %w", sink, err)
	}
	ctxlog.FromContext(ctx).Info("Sink received lo.", "sink", string(sink), "press", press)
	return press, nil
}
