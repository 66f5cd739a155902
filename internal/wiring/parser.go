package wiring

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/vk/pulsegrid/internal/circuit"
)

// nameRegex matches a single module identifier.
var nameRegex = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

const arrow = "->"

// Parse reads every definition from r in source order. The first malformed
// line aborts parsing.
func Parse(r io.Reader) ([]Definition, error) {
	var defs []Definition
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		def, err := ParseLine(lineNo, text)
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read wiring: %w", err)
	}
	return defs, nil
}

// ParseString is a convenience wrapper around Parse.
func ParseString(s string) ([]Definition, error) {
	return Parse(strings.NewReader(s))
}

// ParseLine parses a single, already trimmed, wiring line.
func ParseLine(lineNo int, text string) (Definition, error) {
	fail := func(reason string) (Definition, error) {
		return Definition{}, &LineError{Line: lineNo, Text: text, Reason: reason}
	}

	lhs, rhs, found := strings.Cut(text, arrow)
	if !found {
		return fail("missing '->'")
	}
	lhs = strings.TrimSpace(lhs)
	rhs = strings.TrimSpace(rhs)
	if lhs == "" {
		return fail("missing module name")
	}

	def := Definition{Line: lineNo}
	name := lhs
	switch lhs[0] {
	case '%':
		def.Kind = circuit.KindFlipFlop
		name = lhs[1:]
	case '&':
		def.Kind = circuit.KindConjunction
		name = lhs[1:]
	default:
		if !nameRegex.MatchString(lhs) {
			return fail(fmt.Sprintf("unknown module marker %q", lhs[:1]))
		}
		if circuit.ID(lhs) != circuit.BroadcasterID {
			return fail("unmarked module must be named 'broadcaster'")
		}
		def.Kind = circuit.KindBroadcaster
	}
	if name == "" {
		return fail("missing module name")
	}
	if !nameRegex.MatchString(name) {
		return fail(fmt.Sprintf("invalid module name %q", name))
	}
	def.Name = circuit.ID(name)

	if rhs == "" {
		return fail("missing destinations")
	}
	for _, dst := range strings.Split(rhs, ",") {
		dst = strings.TrimSpace(dst)
		if dst == "" {
			return fail("empty destination")
		}
		if !nameRegex.MatchString(dst) {
			return fail(fmt.Sprintf("invalid destination %q", dst))
		}
		def.Outputs = append(def.Outputs, circuit.ID(dst))
	}
	return def, nil
}
