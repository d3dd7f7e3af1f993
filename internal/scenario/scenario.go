// Package scenario runs operation logs described in YAML against the
// nodekit structures.
//
// A scenario file looks like:
//
//	scenarios:
//	  - name: stack
//	    structure: stack
//	    steps:
//	      - {op: push, value: First}
//	      - {op: pop}
//	      - {op: print}
//
// Payloads are strings. Numbers are accepted and kept in their textual form.
package scenario

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"sigs.k8s.io/yaml"
)

var (
	ErrUnknownStructure = errors.New("unknown structure")
	ErrUnknownOperation = errors.New("unknown operation")
	ErrMissingValue     = errors.New("operation requires a value")
	ErrNoScenarios      = errors.New("no scenarios defined")
)

const (
	Stack = "stack"
	Queue = "queue"
	Ring  = "ring"
	Deque = "deque"
	Tree  = "tree"
)

// Structures lists every structure name a scenario may target.
var Structures = []string{Stack, Queue, Ring, Deque, Tree}

// Payload is a step value. It decodes from either a YAML string or a YAML
// number.
type Payload string

func (p *Payload) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*p = Payload(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("payload must be a string or a number: %s", data)
	}
	*p = Payload(n.String())
	return nil
}

// Step is a single operation. Value is required by the operations that add
// to a structure. Count only applies to printing a ring, where it bounds
// the number of steps taken.
type Step struct {
	Op    string   `json:"op"`
	Value *Payload `json:"value,omitempty"`
	Count int      `json:"count,omitempty"`
}

type Scenario struct {
	Name      string `json:"name,omitempty"`
	Structure string `json:"structure"`
	Steps     []Step `json:"steps"`
}

type file struct {
	Scenarios []Scenario `json:"scenarios"`
}

// Parse decodes a scenario document. Unknown fields are rejected.
func Parse(data []byte) ([]Scenario, error) {
	var f file
	if err := yaml.UnmarshalStrict(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse scenarios: %w", err)
	}
	if len(f.Scenarios) == 0 {
		return nil, ErrNoScenarios
	}

	for i := range f.Scenarios {
		if err := f.Scenarios[i].validate(); err != nil {
			return nil, fmt.Errorf("scenario %d (%s): %w", i, f.Scenarios[i].Name, err)
		}
	}
	return f.Scenarios, nil
}

// Load reads and parses the scenario document at path.
func Load(path string) ([]Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenarios: %w", err)
	}
	return Parse(data)
}

func (s *Scenario) validate() error {
	ops, ok := operations[s.Structure]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownStructure, s.Structure)
	}

	for i, step := range s.Steps {
		needsValue, ok := ops[step.Op]
		if !ok {
			return fmt.Errorf("step %d: %w: %q on %s", i, ErrUnknownOperation, step.Op, s.Structure)
		}
		if needsValue && step.Value == nil {
			return fmt.Errorf("step %d: %w: %s", i, ErrMissingValue, step.Op)
		}
	}
	return nil
}

// Marshal encodes scenarios back into a YAML document.
func Marshal(scenarios []Scenario) ([]byte, error) {
	data, err := yaml.Marshal(file{Scenarios: scenarios})
	if err != nil {
		return nil, fmt.Errorf("failed to encode scenarios: %w", err)
	}
	return bytes.TrimSpace(data), nil
}
