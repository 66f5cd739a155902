package config

import "context"

// Loader is the interface for a format-specific run configuration loader.
type Loader interface {
	// Load reads the file at path and returns the decoded run settings.
	Load(ctx context.Context, path string) (*Run, error)
}
