package wiring

import (
	"errors"
	"fmt"

	"github.com/vk/pulsegrid/internal/circuit"
)

// Definition is one parsed wiring line.
type Definition struct {
	Line    int // 1-based line number in the source text
	Name    circuit.ID
	Kind    circuit.Kind
	Outputs []circuit.ID
}

// ErrMalformedLine is wrapped by every LineError.
var ErrMalformedLine = errors.New("malformed wiring line")

// LineError reports a line that does not parse into marker, name and outputs.
type LineError struct {
	Line   int
	Text   string
	Reason string
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %s: %q", e.Line, e.Reason, e.Text)
}

func (e *LineError) Unwrap() error { return ErrMalformedLine }
