package cycles

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/vk/pulsegrid/internal/circuit"
	"github.com/vk/pulsegrid/internal/ctxlog"
	"github.com/vk/pulsegrid/internal/driver"
	"github.com/vk/pulsegrid/internal/network"
	"github.com/vk/pulsegrid/internal/scheduler"
)

var (
	// ErrNoFunnel is returned when the sink is not fed by exactly one conjunction.
	ErrNoFunnel = errors.New("sink is not driven by a single conjunction")
	// ErrSearchExhausted is returned when the press budget runs out before
	// every feeder has shown its period.
	ErrSearchExhausted = errors.New("cycle search exhausted")
	// ErrAperiodic is returned when a feeder's second hit is not at twice its first.
	ErrAperiodic = errors.New("feeder is not periodic")
)

// DefaultBudget bounds the presses Analyze issues when Options.Budget is zero.
const DefaultBudget = 1_000_000

// Options controls Analyze.
type Options struct {
	Sink   circuit.ID
	Budget int
	// Verify requires a second hit at twice the first press for every feeder.
	Verify bool
}

// Feeder is one resolved funnel input.
type Feeder struct {
	ID     circuit.ID
	Kind   circuit.Kind
	Period uint64
	// Hits are the first presses in which the feeder sent Hi to the funnel.
	Hits []int
}

// Result is the outcome of a successful analysis.
type Result struct {
	Sink    circuit.ID
	Funnel  circuit.ID
	Feeders []Feeder
	// Answer is the least common multiple of every feeder period.
	Answer uint64
	// Presses is the number of presses simulated to find the periods.
	Presses int
}

// ExhaustedError lists the feeders still unresolved when the budget ran out.
type ExhaustedError struct {
	Budget     int
	Unresolved []circuit.ID
}

func (e *ExhaustedError) Error() string {
	ids := make([]string, len(e.Unresolved))
	for i, id := range e.Unresolved {
		ids[i] = string(id)
	}
	return fmt.Sprintf("%s after %d presses: unresolved feeders [%s]", ErrSearchExhausted, e.Budget, strings.Join(ids, ", "))
}

func (e *ExhaustedError) Unwrap() error { return ErrSearchExhausted }

// AperiodicError reports a feeder whose hits are not evenly spaced from press 0.
type AperiodicError struct {
	Feeder circuit.ID
	First  int
	Second int
}

func (e *AperiodicError) Error() string {
	return fmt.Sprintf("feeder %q is not periodic: first hi at press %d, second at %d, expected %d",
		e.Feeder, e.First, e.Second, 2*e.First)
}

func (e *AperiodicError) Unwrap() error { return ErrAperiodic }

// DiscoverFeeders finds the funnel conjunction feeding sink and its inputs.
func DiscoverFeeders(net *network.Network, sink circuit.ID) (circuit.ID, []circuit.ID, error) {
	drivers := net.Inputs(sink)
	if len(drivers) != 1 {
		return "", nil, fmt.Errorf("%w: %q has %d inputs", ErrNoFunnel, sink, len(drivers))
	}
	funnel := drivers[0]
	if kind := net.Kind(funnel); kind != circuit.KindConjunction {
		return "", nil, fmt.Errorf("%w: %q is fed by %s %q", ErrNoFunnel, sink, kind, funnel)
	}
	feeders := net.Inputs(funnel)
	if len(feeders) == 0 {
		return "", nil, fmt.Errorf("%w: funnel %q has no inputs", ErrNoFunnel, funnel)
	}
	return funnel, feeders, nil
}

// hitRecorder collects the distinct presses in which each feeder sent Hi to
// the funnel, up to need per feeder.
type hitRecorder struct {
	funnel     circuit.ID
	need       int
	hits       map[circuit.ID][]int
	unresolved int
	onResolved func(id circuit.ID, hits []int)
}

func newHitRecorder(funnel circuit.ID, feeders []circuit.ID, need int) *hitRecorder {
	r := &hitRecorder{
		funnel:     funnel,
		need:       need,
		hits:       make(map[circuit.ID][]int, len(feeders)),
		unresolved: len(feeders),
	}
	for _, id := range feeders {
		r.hits[id] = nil
	}
	return r
}

func (r *hitRecorder) Observe(press int, sig circuit.Signal) {
	if sig.Destination != r.funnel || sig.Pulse != circuit.Hi {
		return
	}
	hits, watched := r.hits[sig.Source]
	if !watched || len(hits) == r.need {
		return
	}
	if n := len(hits); n > 0 && hits[n-1] == press {
		return
	}
	hits = append(hits, press)
	r.hits[sig.Source] = hits
	if len(hits) == r.need {
		r.unresolved--
		if r.onResolved != nil {
			r.onResolved(sig.Source, hits)
		}
	}
}

func (r *hitRecorder) done() bool {
	return r.unresolved == 0
}

// Analyze simulates net from its current state, which should be freshly
// built, until every feeder's period is known, and returns their LCM.
func Analyze(ctx context.Context, net *network.Network, opts Options) (*Result, error) {
	logger := ctxlog.FromContext(ctx)
	if opts.Budget <= 0 {
		opts.Budget = DefaultBudget
	}

	funnel, feeders, err := DiscoverFeeders(net, opts.Sink)
	if err != nil {
		return nil, err
	}
	logger.Info("Feeders discovered.", "sink", string(opts.Sink), "funnel", string(funnel), "feeders", len(feeders))

	need := 1
	if opts.Verify {
		need = 2
	}
	rec := newHitRecorder(funnel, feeders, need)
	rec.onResolved = func(id circuit.ID, hits []int) {
		logger.Info("Feeder resolved.", "feeder", string(id), "hits", hits)
	}

	observers := []scheduler.Observer{rec}
	if logger.Enabled(ctx, slog.LevelDebug) {
		observers = append(observers, scheduler.NewLogObserver(logger))
	}
	d := driver.New(net, observers...)
	presses, err := d.PressUntil(ctx, opts.Budget, func(int) bool { return rec.done() })
	if err != nil {
		if errors.Is(err, driver.ErrBudgetExhausted) {
			var unresolved []circuit.ID
			for _, id := range feeders {
				if len(rec.hits[id]) < need {
					unresolved = append(unresolved, id)
				}
			}
			return nil, &ExhaustedError{Budget: opts.Budget, Unresolved: unresolved}
		}
		return nil, err
	}

	res := &Result{Sink: opts.Sink, Funnel: funnel, Presses: presses}
	periods := make([]uint64, 0, len(feeders))
	for _, id := range feeders {
		hits := rec.hits[id]
		if opts.Verify && hits[1] != 2*hits[0] {
			return nil, &AperiodicError{Feeder: id, First: hits[0], Second: hits[1]}
		}
		period := uint64(hits[0])
		periods = append(periods, period)
		res.Feeders = append(res.Feeders, Feeder{ID: id, Kind: net.Kind(id), Period: period, Hits: hits})
	}

	res.Answer, err = LCM(periods...)
	if err != nil {
		return nil, fmt.Errorf("combining %d feeder periods: %w", len(periods), err)
	}
	logger.Info("Cycle analysis complete.", "answer", res.Answer, "presses", presses)
	return res, nil
}
