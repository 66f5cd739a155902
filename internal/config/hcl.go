package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/pulsegrid/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
)

const runBlock = "run"

var fileSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{{Type: runBlock}},
}

// HCLLoader is the HCL implementation of Loader.
type HCLLoader struct {
	environ func() []string
}

// NewHCLLoader creates a loader that exposes the process environment as `env`.
func NewHCLLoader() *HCLLoader {
	return &HCLLoader{environ: os.Environ}
}

// Load implements Loader. A relative circuit path is resolved against the
// directory of the configuration file.
func (l *HCLLoader) Load(ctx context.Context, path string) (*Run, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL config loader started.", "path", path)

	file, diags := hclparse.NewParser().ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}

	content, diags := file.Body.Content(fileSchema)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", path, diags)
	}

	block, diags := findUniqueBlock(content.Blocks, runBlock)
	if diags.HasErrors() {
		return nil, fmt.Errorf("invalid HCL file %s: %w", path, diags)
	}

	run := &Run{}
	if block == nil {
		logger.Debug("No run block found, using defaults.", "path", path)
		return run, nil
	}

	diags = gohcl.DecodeBody(block.Body, l.evalContext(), run)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode run block in %s: %w", path, diags)
	}

	if run.Circuit != nil && *run.Circuit != "" && !filepath.IsAbs(*run.Circuit) {
		resolved := filepath.Join(filepath.Dir(path), *run.Circuit)
		run.Circuit = &resolved
	}

	logger.Debug("HCL config loaded.", "path", path)
	return run, nil
}

// evalContext exposes environment variables as the `env` object.
func (l *HCLLoader) evalContext() *hcl.EvalContext {
	vars := make(map[string]cty.Value)
	for _, kv := range l.environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || name == "" {
			continue
		}
		vars[name] = cty.StringVal(value)
	}
	env := cty.EmptyObjectVal
	if len(vars) > 0 {
		env = cty.ObjectVal(vars)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{"env": env},
	}
}

// findUniqueBlock returns the single block of the given type, nil if there
// is none, and an error diagnostic for every duplicate.
func findUniqueBlock(blocks hcl.Blocks, name string) (*hcl.Block, hcl.Diagnostics) {
	var found *hcl.Block
	var diags hcl.Diagnostics

	for _, block := range blocks {
		if block.Type != name {
			continue
		}
		if found != nil {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Duplicate \"" + name + "\" block",
				Detail:   "Only one \"" + name + "\" block is allowed.",
				Subject:  &block.DefRange,
			})
			continue
		}
		found = block
	}

	return found, diags
}
