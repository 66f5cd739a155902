package app

import "fmt"

// Stage names the part of a run that failed.
type Stage string

const (
	StageConfig    Stage = "config"
	StageParse     Stage = "parse"
	StageConstruct Stage = "construct"
	StageSimulate  Stage = "simulate"
	StageAnalyze   Stage = "analyze"
)

// StageError wraps a run failure with the stage it happened in.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

func stageErr(stage Stage, err error) error {
	return &StageError{Stage: stage, Err: err}
}
