package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/pulsegrid/internal/app"
	"github.com/vk/pulsegrid/internal/cli"
	"github.com/vk/pulsegrid/internal/testutil"
)

func TestRun_Tally(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := t.TempDir()
	path := filepath.Join(dir, "input.txt")
	require.NoError(t, os.WriteFile(path, []byte(testutil.TextbookNetwork), 0600))
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(out, &bytes.Buffer{}, []string{path})

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, "lo=8,000 hi=4,000 product=32,000,000\n", out.String())
}

func TestRun_ConfigFile(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := testutil.WriteFiles(t, map[string]string{
		"input.txt": testutil.TwoFeederNetwork,
		"run.hcl": `
			run {
				circuit  = "input.txt"
				question = "cycles"
			}
		`,
	})
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(out, &bytes.Buffer{}, []string{"-config", filepath.Join(dir, "run.hcl")})

	// --- Assert ---
	require.NoError(t, err)
	assert.Contains(t, out.String(), "answer=15\n")
}

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// The "-h" (help) flag should cause cli.Parse to return `shouldExit=true`.
	args := []string{"-h"}
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(out, &bytes.Buffer{}, args)

	// --- Assert ---
	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	// --- Act ---
	err := run(&bytes.Buffer{}, &bytes.Buffer{}, []string{"--this-is-not-a-valid-flag"})

	// --- Assert ---
	var exitErr *cli.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
	assert.Contains(t, err.Error(), "flag provided but not defined: -this-is-not-a-valid-flag")
}

func TestRun_BrokenConfigFile(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := testutil.WriteFiles(t, map[string]string{
		"run.hcl": "run {\n  presses = \n",
	})

	// --- Act ---
	err := run(&bytes.Buffer{}, &bytes.Buffer{}, []string{"-config", filepath.Join(dir, "run.hcl"), "input.txt"})

	// --- Assert ---
	var stageErr *app.StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, app.StageConfig, stageErr.Stage)
	assert.Contains(t, err.Error(), "failed to parse HCL file")
}

func TestRun_MalformedCircuit(t *testing.T) {
	t.Parallel()

	dir := testutil.WriteFiles(t, map[string]string{"input.txt": "broadcaster a\n"})

	err := run(&bytes.Buffer{}, &bytes.Buffer{}, []string{filepath.Join(dir, "input.txt")})

	var stageErr *app.StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, app.StageParse, stageErr.Stage)
	assert.Contains(t, err.Error(), "line 1")
}
