package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/vk/pulsegrid/internal/circuit"
	"github.com/vk/pulsegrid/internal/ctxlog"
	"github.com/vk/pulsegrid/internal/cycles"
	"github.com/vk/pulsegrid/internal/driver"
	"github.com/vk/pulsegrid/internal/network"
	"github.com/vk/pulsegrid/internal/scheduler"
	"github.com/vk/pulsegrid/internal/wiring"
)

// Run loads the circuit and answers the configured question.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.", "question", string(a.config.Question))

	net, err := a.loadNetwork(ctx)
	if err != nil {
		return err
	}

	switch a.config.Question {
	case QuestionTally:
		err = a.runTally(ctx, net)
	case QuestionCycles:
		err = a.runCycles(ctx, net)
	case QuestionFirstLow:
		err = a.runFirstLow(ctx, net)
	default:
		err = fmt.Errorf("unknown question %q", a.config.Question)
	}
	if err != nil {
		return err
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

func (a *App) loadNetwork(ctx context.Context) (*network.Network, error) {
	f, err := os.Open(a.config.CircuitPath)
	if err != nil {
		return nil, stageErr(StageParse, fmt.Errorf("failed to open circuit: %w", err))
	}
	defer f.Close()

	defs, err := wiring.Parse(f)
	if err != nil {
		return nil, stageErr(StageParse, fmt.Errorf("%s: %w", a.config.CircuitPath, err))
	}
	a.logger.Debug("Wiring parsed.", "path", a.config.CircuitPath, "definitions", len(defs))

	net, err := network.Build(ctx, defs)
	if err != nil {
		return nil, stageErr(StageConstruct, err)
	}
	a.logger.Info("Network loaded.", "modules", len(net.IDs()), "sinks", len(net.Sinks()))
	return net, nil
}

func (a *App) observers() []scheduler.Observer {
	if !a.logger.Enabled(context.Background(), slog.LevelDebug) {
		return nil
	}
	return []scheduler.Observer{scheduler.NewLogObserver(a.logger)}
}

func (a *App) runTally(ctx context.Context, net *network.Network) error {
	d := driver.New(net, a.observers()...)
	tally, err := d.PressN(ctx, a.config.Presses)
	if err != nil {
		return stageErr(StageSimulate, err)
	}
	a.logger.Info("🏁 Presses finished.", "presses", a.config.Presses, "lo", tally.Lo, "hi", tally.Hi)
	a.printer.Fprintf(a.outW, "lo=%d hi=%d product=%d\n", tally.Lo, tally.Hi, tally.Product())
	return nil
}

func (a *App) runCycles(ctx context.Context, net *network.Network) error {
	res, err := cycles.Analyze(ctx, net, cycles.Options{
		Sink:   circuit.ID(a.config.Sink),
		Budget: a.config.Budget,
		Verify: a.config.Verify,
	})
	if err != nil {
		var unresolved *circuit.UnresolvedInputError
		if errors.As(err, &unresolved) {
			return stageErr(StageSimulate, err)
		}
		return stageErr(StageAnalyze, err)
	}
	a.printer.Fprintf(a.outW, "sink=%s funnel=%s\n", res.Sink, res.Funnel)
	for _, f := range res.Feeders {
		a.printer.Fprintf(a.outW, "feeder %s period=%d\n", f.ID, f.Period)
	}
	a.printer.Fprintf(a.outW, "answer=%d\n", res.Answer)
	return nil
}

func (a *App) runFirstLow(ctx context.Context, net *network.Network) error {
	press, err := driver.FirstLow(ctx, net, circuit.ID(a.config.Sink), a.config.Budget)
	if err != nil {
		if errors.Is(err, driver.ErrBudgetExhausted) {
			return stageErr(StageAnalyze, err)
		}
		return stageErr(StageSimulate, err)
	}
	a.printer.Fprintf(a.outW, "press=%d\n", press)
	return nil
}
