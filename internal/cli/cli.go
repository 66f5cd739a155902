package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/vk/pulsegrid/internal/app"
	"github.com/vk/pulsegrid/internal/config"
	"github.com/vk/pulsegrid/internal/ctxlog"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. Defaults are overlaid first by the
// optional -config run file and then by every flag set explicitly. It returns
// a validated Config, a boolean indicating if the program should exit
// cleanly, or an error: *ExitError for usage problems and *app.StageError
// when the run file cannot be loaded.
func Parse(ctx context.Context, args []string, output io.Writer, loader config.Loader) (*app.Config, bool, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("CLI parser started.")

	defaults := app.DefaultConfig()
	flagSet := flag.NewFlagSet("pulsegrid", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
PulseGrid - A deterministic pulse propagation simulator for module networks.

Usage:
  pulsegrid [options] [CIRCUIT_PATH]

Arguments:
  CIRCUIT_PATH
    Path to the wiring file describing the module network.

Options:
`)
		flagSet.PrintDefaults()
	}

	circuitFlag := flagSet.String("circuit", "", "Path to the wiring file.")
	cFlag := flagSet.String("c", "", "Path to the wiring file (shorthand).")
	configFlag := flagSet.String("config", "", "Path to an HCL run configuration file.")
	questionFlag := flagSet.String("question", string(defaults.Question), "Question to answer. Options: 'tally', 'cycles', 'first-low'.")
	pressesFlag := flagSet.Int("presses", defaults.Presses, "Number of button presses for the tally question.")
	sinkFlag := flagSet.String("sink", defaults.Sink, "Sink module watched by the cycles and first-low questions.")
	budgetFlag := flagSet.Int("budget", defaults.Budget, "Maximum number of presses spent searching.")
	verifyFlag := flagSet.Bool("verify", defaults.Verify, "Require every feeder to trigger again at twice its period.")
	logFormatFlag := flagSet.String("log-format", defaults.LogFormat, "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", defaults.LogLevel, "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	logger.Debug("Arguments parsed successfully.")

	cfg := defaults
	if *configFlag != "" {
		run, err := loader.Load(ctx, *configFlag)
		if err != nil {
			return nil, false, &app.StageError{Stage: app.StageConfig, Err: err}
		}
		cfg.ApplyRun(run)
		logger.Debug("Run configuration applied.", "path", *configFlag)
	}

	set := make(map[string]bool)
	flagSet.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if set["question"] {
		cfg.Question = app.Question(strings.ToLower(*questionFlag))
	}
	if set["presses"] {
		cfg.Presses = *pressesFlag
	}
	if set["sink"] {
		cfg.Sink = *sinkFlag
	}
	if set["budget"] {
		cfg.Budget = *budgetFlag
	}
	if set["verify"] {
		cfg.Verify = *verifyFlag
	}
	if set["log-format"] {
		cfg.LogFormat = strings.ToLower(*logFormatFlag)
	}
	if set["log-level"] {
		cfg.LogLevel = strings.ToLower(*logLevelFlag)
	}

	switch {
	case *circuitFlag != "":
		cfg.CircuitPath = *circuitFlag
	case *cFlag != "":
		cfg.CircuitPath = *cFlag
	case flagSet.NArg() > 0:
		cfg.CircuitPath = flagSet.Arg(0)
	}
	logger.Debug("Circuit path determined.", "path", cfg.CircuitPath)

	if cfg.CircuitPath == "" {
		logger.Debug("No circuit path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	validated, err := app.NewConfig(cfg)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	logger.Debug("CLI parser finished successfully.", "config", *validated)
	return validated, false, nil
}
