// Package study loads declarative study files: which benchmark model to run,
// the design variables to sweep, and the solver settings.
package study

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/sweepfront/internal/design"
	"github.com/cwbudde/sweepfront/internal/solver"
)

// SolverSpec is the solver section of a study file.
type SolverSpec struct {
	Kind       solver.Kind `yaml:"kind"`
	PopSize    int         `yaml:"pop,omitempty"`
	Iterations int         `yaml:"iters,omitempty"`
	Seed       int64       `yaml:"seed,omitempty"`
	NSplit     int         `yaml:"nsplit,omitempty"`
}

// Study is one declarative optimization run.
type Study struct {
	// Model names a built-in benchmark model; the variables default to the
	// benchmark's own when the list is empty.
	Model     string                `yaml:"model"`
	Variables []design.VariableSpec `yaml:"variables,omitempty"`
	Solver    SolverSpec            `yaml:"solver"`
	// NMax bounds the size of the expanded initial-point grid.
	NMax int `yaml:"nmax,omitempty"`
}

// DefaultNMax bounds grid expansion when the study does not say otherwise.
const DefaultNMax = 100000

// Load reads and validates a study file.
func Load(path string) (*Study, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read study file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a study document. Unknown fields are rejected so typos fail
// loudly.
func Parse(data []byte) (*Study, error) {
	var s Study
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("parse study file: %w", err)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Study) validate() error {
	if s.Model == "" {
		return &design.ValidationError{Reason: "study needs a model name"}
	}
	if s.Solver.Kind == "" {
		return &design.ValidationError{Reason: "study needs a solver kind"}
	}
	if s.NMax == 0 {
		s.NMax = DefaultNMax
	}
	if s.NMax < 0 {
		return &design.ValidationError{Reason: "nmax cannot be negative"}
	}
	for i := range s.Variables {
		if err := s.Variables[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Config converts the solver section into a solver.Config.
func (s *Study) Config() solver.Config {
	return solver.Config{
		MaxIterations: s.Solver.Iterations,
		PopSize:       s.Solver.PopSize,
		Seed:          s.Solver.Seed,
		NSplit:        s.Solver.NSplit,
	}
}
