package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/pulsegrid/internal/testutil"
)

func TestHCLLoader_Load(t *testing.T) {
	// --- Arrange ---
	ctx, _ := testutil.Context(t)
	t.Setenv("PULSEGRID_FIXTURES", "/data/circuits")
	dir := testutil.WriteFiles(t, map[string]string{
		"run.hcl": `
run {
  circuit   = "${env.PULSEGRID_FIXTURES}/day.txt"
  question  = "cycles"
  presses   = 250
  sink      = "rx"
  budget    = 5000
  verify    = false
  log_level = "debug"
}
`,
	})

	// --- Act ---
	run, err := NewHCLLoader().Load(ctx, filepath.Join(dir, "run.hcl"))

	// --- Assert ---
	require.NoError(t, err)
	require.NotNil(t, run.Circuit)
	assert.Equal(t, "/data/circuits/day.txt", *run.Circuit)
	assert.Equal(t, "cycles", *run.Question)
	assert.Equal(t, 250, *run.Presses)
	assert.Equal(t, "rx", *run.Sink)
	assert.Equal(t, 5000, *run.Budget)
	assert.False(t, *run.Verify)
	assert.Equal(t, "debug", *run.LogLevel)
	assert.Nil(t, run.LogFormat, "unset attributes stay nil")
}

func TestHCLLoader_RelativeCircuitPath(t *testing.T) {
	ctx, _ := testutil.Context(t)
	dir := testutil.WriteFiles(t, map[string]string{
		"cfg/run.hcl": `run { circuit = "wiring.txt" }`,
	})

	run, err := NewHCLLoader().Load(ctx, filepath.Join(dir, "cfg", "run.hcl"))

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "cfg", "wiring.txt"), *run.Circuit)
}

func TestHCLLoader_EmptyFile(t *testing.T) {
	ctx, _ := testutil.Context(t)
	dir := testutil.WriteFiles(t, map[string]string{"run.hcl": "# nothing here\n"})

	run, err := NewHCLLoader().Load(ctx, filepath.Join(dir, "run.hcl"))

	require.NoError(t, err)
	assert.Equal(t, &Run{}, run)
}

func TestHCLLoader_Errors(t *testing.T) {
	testCases := []struct {
		name      string
		content   string
		expectErr string
	}{
		{name: "syntax error", content: "run {\n  presses = \n", expectErr: "failed to parse HCL file"},
		{name: "duplicate run block", content: "run {}\nrun {}\n", expectErr: `Duplicate "run" block`},
		{name: "unknown attribute", content: "run {\n  speed = 3\n}\n", expectErr: "failed to decode run block"},
		{name: "unknown top-level block", content: "circuit {}\n", expectErr: "failed to decode HCL file"},
		{name: "wrong type", content: "run {\n  presses = \"many\"\n}\n", expectErr: "failed to decode run block"},
		{name: "undefined env var", content: "run {\n  circuit = env.PULSEGRID_SURELY_UNSET_VAR\n}\n", expectErr: "failed to decode run block"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx, _ := testutil.Context(t)
			dir := testutil.WriteFiles(t, map[string]string{"run.hcl": tc.content})

			run, err := NewHCLLoader().Load(ctx, filepath.Join(dir, "run.hcl"))

			require.Error(t, err)
			assert.Nil(t, run)
			assert.ErrorContains(t, err, tc.expectErr)
		})
	}
}

func TestHCLLoader_MissingFile(t *testing.T) {
	ctx, _ := testutil.Context(t)

	_, err := NewHCLLoader().Load(ctx, filepath.Join(t.TempDir(), "absent.hcl"))

	assert.ErrorContains(t, err, "failed to parse HCL file")
}
