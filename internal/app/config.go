package app

import (
	"errors"
	"fmt"

	"github.com/vk/pulsegrid/internal/config"
	"github.com/vk/pulsegrid/internal/cycles"
)

// Question selects what a run answers.
type Question string

const (
	// QuestionTally presses the button a fixed number of times and reports
	// the lo and hi pulse counts.
	QuestionTally Question = "tally"
	// QuestionCycles runs the cycle analyzer for the sink.
	QuestionCycles Question = "cycles"
	// QuestionFirstLow brute-forces the first press delivering lo to the sink.
	QuestionFirstLow Question = "first-low"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	CircuitPath string
	Question    Question
	Presses     int
	Sink        string
	Budget      int
	Verify      bool

	LogFormat string
	LogLevel  string
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Question:  QuestionTally,
		Presses:   1000,
		Sink:      "rx",
		Budget:    cycles.DefaultBudget,
		Verify:    true,
		LogFormat: "text",
		LogLevel:  "info",
	}
}

// ApplyRun overlays every attribute set in a run configuration file.
func (c *Config) ApplyRun(run *config.Run) {
	if run == nil {
		return
	}
	if run.Circuit != nil {
		c.CircuitPath = *run.Circuit
	}
	if run.Question != nil {
		c.Question = Question(*run.Question)
	}
	if run.Presses != nil {
		c.Presses = *run.Presses
	}
	if run.Sink != nil {
		c.Sink = *run.Sink
	}
	if run.Budget != nil {
		c.Budget = *run.Budget
	}
	if run.Verify != nil {
		c.Verify = *run.Verify
	}
	if run.LogLevel != nil {
		c.LogLevel = *run.LogLevel
	}
	if run.LogFormat != nil {
		c.LogFormat = *run.LogFormat
	}
}

// NewConfig validates cfg and returns a copy of it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.CircuitPath == "" {
		return nil, errors.New("CircuitPath is a required configuration field and cannot be empty")
	}
	switch cfg.Question {
	case QuestionTally, QuestionCycles, QuestionFirstLow:
	default:
		return nil, fmt.Errorf("invalid question %q: must be 'tally', 'cycles' or 'first-low'", cfg.Question)
	}
	if cfg.Presses <= 0 {
		return nil, fmt.Errorf("presses must be positive, got %d", cfg.Presses)
	}
	if cfg.Budget <= 0 {
		return nil, fmt.Errorf("budget must be positive, got %d", cfg.Budget)
	}
	if cfg.Sink == "" {
		return nil, errors.New("sink cannot be empty")
	}
	switch cfg.LogFormat {
	case "text", "json":
	default:
		return nil, errors.New("invalid log-format: must be 'text' or 'json'")
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, errors.New("invalid log-level: must be 'debug', 'info', 'warn', or 'error'")
	}
	return &cfg, nil
}
