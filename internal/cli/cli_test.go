package cli_test

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/pulsegrid/internal/app"
	"github.com/vk/pulsegrid/internal/cli"
	"github.com/vk/pulsegrid/internal/config"
	"github.com/vk/pulsegrid/internal/testutil"
)

// stubLoader returns a fixed run configuration and records the path asked for.
type stubLoader struct {
	run  *config.Run
	err  error
	path string
}

func (l *stubLoader) Load(_ context.Context, path string) (*config.Run, error) {
	l.path = path
	return l.run, l.err
}

func ptr[T any](v T) *T { return &v }

func TestParse_DisplaysHelp_WhenNoCircuitPathIsProvided(t *testing.T) {
	t.Parallel()
	ctx, _ := testutil.Context(t)

	// --- Arrange ---
	outW := &bytes.Buffer{}

	// --- Act ---
	cfg, shouldExit, err := cli.Parse(ctx, []string{}, outW, &stubLoader{})

	// --- Assert ---
	require.NoError(t, err)
	assert.True(t, shouldExit)
	assert.Nil(t, cfg)
	assert.Contains(t, outW.String(), "Usage:")
}

func TestParse_HelpFlag(t *testing.T) {
	t.Parallel()
	ctx, _ := testutil.Context(t)

	outW := &bytes.Buffer{}
	cfg, shouldExit, err := cli.Parse(ctx, []string{"-h"}, outW, &stubLoader{})

	require.NoError(t, err)
	assert.True(t, shouldExit)
	assert.Nil(t, cfg)
	assert.Contains(t, outW.String(), "-question")
}

func TestParse_Defaults(t *testing.T) {
	t.Parallel()
	ctx, _ := testutil.Context(t)

	// --- Act ---
	cfg, shouldExit, err := cli.Parse(ctx, []string{"input.txt"}, &bytes.Buffer{}, &stubLoader{})

	// --- Assert ---
	require.NoError(t, err)
	require.False(t, shouldExit)
	want := app.DefaultConfig()
	want.CircuitPath = "input.txt"
	assert.Equal(t, want, *cfg)
}

func TestParse_CircuitPathPrecedence(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		args []string
		want string
	}{
		{name: "long flag wins", args: []string{"-circuit", "long.txt", "-c", "short.txt", "pos.txt"}, want: "long.txt"},
		{name: "shorthand over positional", args: []string{"-c", "short.txt", "pos.txt"}, want: "short.txt"},
		{name: "positional", args: []string{"pos.txt"}, want: "pos.txt"},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			ctx, _ := testutil.Context(t)

			cfg, _, err := cli.Parse(ctx, tc.args, &bytes.Buffer{}, &stubLoader{})

			require.NoError(t, err)
			assert.Equal(t, tc.want, cfg.CircuitPath)
		})
	}
}

func TestParse_UsageErrors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		args    []string
		wantMsg string
	}{
		{name: "unknown flag", args: []string{"-nope", "c.txt"}, wantMsg: "flag provided but not defined"},
		{name: "bad int", args: []string{"-presses", "many", "c.txt"}, wantMsg: "invalid value"},
		{name: "bad question", args: []string{"-question", "why", "c.txt"}, wantMsg: "invalid question"},
		{name: "zero presses", args: []string{"-presses", "0", "c.txt"}, wantMsg: "presses must be positive"},
		{name: "negative budget", args: []string{"-budget", "-1", "c.txt"}, wantMsg: "budget must be positive"},
		{name: "empty sink", args: []string{"-sink", "", "c.txt"}, wantMsg: "sink cannot be empty"},
		{name: "bad log format", args: []string{"-log-format", "xml", "c.txt"}, wantMsg: "invalid log-format"},
		{name: "bad log level", args: []string{"-log-level", "loud", "c.txt"}, wantMsg: "invalid log-level"},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			ctx, _ := testutil.Context(t)

			// --- Act ---
			cfg, shouldExit, err := cli.Parse(ctx, tc.args, &bytes.Buffer{}, &stubLoader{})

			// --- Assert ---
			require.Error(t, err)
			assert.False(t, shouldExit)
			assert.Nil(t, cfg)
			var exitErr *cli.ExitError
			require.ErrorAs(t, err, &exitErr)
			assert.Equal(t, 2, exitErr.Code)
			assert.Contains(t, exitErr.Message, tc.wantMsg)
		})
	}
}

func TestParse_MergesConfigFileUnderFlags(t *testing.T) {
	t.Parallel()
	ctx, _ := testutil.Context(t)

	// --- Arrange ---
	loader := &stubLoader{run: &config.Run{
		Circuit:  ptr("from-file.txt"),
		Question: ptr("cycles"),
		Presses:  ptr(50),
		Sink:     ptr("out"),
		Budget:   ptr(500),
		Verify:   ptr(false),
		LogLevel: ptr("debug"),
	}}
	args := []string{"-config", "run.hcl", "-presses", "7", "-verify=true"}

	// --- Act ---
	cfg, _, err := cli.Parse(ctx, args, &bytes.Buffer{}, loader)

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, "run.hcl", loader.path)
	want := app.Config{
		CircuitPath: "from-file.txt",
		Question:    app.QuestionCycles,
		Presses:     7,
		Sink:        "out",
		Budget:      500,
		Verify:      true,
		LogFormat:   "text",
		LogLevel:    "debug",
	}
	assert.Equal(t, want, *cfg)
}

func TestParse_PositionalOverridesConfigCircuit(t *testing.T) {
	t.Parallel()
	ctx, _ := testutil.Context(t)

	loader := &stubLoader{run: &config.Run{Circuit: ptr("from-file.txt")}}
	cfg, _, err := cli.Parse(ctx, []string{"-config", "run.hcl", "cli.txt"}, &bytes.Buffer{}, loader)

	require.NoError(t, err)
	assert.Equal(t, "cli.txt", cfg.CircuitPath)
}

func TestParse_ConfigLoadFailureIsConfigStageError(t *testing.T) {
	t.Parallel()
	ctx, _ := testutil.Context(t)

	// --- Arrange ---
	boom := errors.New("boom")
	loader := &stubLoader{err: boom}

	// --- Act ---
	_, _, err := cli.Parse(ctx, []string{"-config", "run.hcl", "c.txt"}, &bytes.Buffer{}, loader)

	// --- Assert ---
	var stageErr *app.StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, app.StageConfig, stageErr.Stage)
	assert.ErrorIs(t, err, boom)
}

func TestParse_WithHCLLoader(t *testing.T) {
	t.Parallel()
	ctx, _ := testutil.Context(t)

	// --- Arrange ---
	dir := testutil.WriteFiles(t, map[string]string{
		"run.hcl": `
			run {
				circuit  = "input.txt"
				question = "first-low"
				budget   = 100
			}
		`,
	})

	// --- Act ---
	cfg, _, err := cli.Parse(ctx, []string{"-config", filepath.Join(dir, "run.hcl")}, &bytes.Buffer{}, config.NewHCLLoader())

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "input.txt"), cfg.CircuitPath)
	assert.Equal(t, app.QuestionFirstLow, cfg.Question)
	assert.Equal(t, 100, cfg.Budget)
	assert.Equal(t, 1000, cfg.Presses)
}
