package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/vk/pulsegrid/internal/app"
	"github.com/vk/pulsegrid/internal/cli"
	"github.com/vk/pulsegrid/internal/config"
	"github.com/vk/pulsegrid/internal/ctxlog"
)

// main is the entrypoint for the pulsegrid application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	// The real main function handles errors and exit codes.
	if err := run(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(outW, logW io.Writer, args []string) (err error) {
	ctx := ctxlog.WithLogger(context.Background(), slog.Default())

	appConfig, shouldExit, err := cli.Parse(ctx, args, outW, config.NewHCLLoader())
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	// Programmer errors surface as panics; report them as a failed run
	// instead of a stack trace.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("application startup panicked: %v", r)
		}
	}()

	return app.NewApp(outW, logW, appConfig).Run(ctx)
}
