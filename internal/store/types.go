package store

import (
	"time"

	"github.com/google/uuid"

	"github.com/cwbudde/sweepfront/internal/solver"
)

// RunConfig echoes how a run was configured, so a persisted record is
// self-describing without the original study file.
type RunConfig struct {
	Model   string      `json:"model"`
	Kind    solver.Kind `json:"kind"`
	PopSize int         `json:"popSize,omitempty"`
	Iters   int         `json:"iters,omitempty"`
	Seed    int64       `json:"seed,omitempty"`
	NSplit  int         `json:"nsplit,omitempty"`
	NSweep  int         `json:"nSweep,omitempty"`
}

// RunRecord is one completed optimization run: the configuration echo plus the
// normalized solution set. Engine-internal state (populations, meshes) is
// deliberately not persisted; a record describes an outcome, not a resumable
// process.
type RunRecord struct {
	RunID     string             `json:"runId"`
	Timestamp time.Time          `json:"timestamp"`
	Config    RunConfig          `json:"config"`
	Result    solver.SolutionSet `json:"result"`
}

// RunInfo is the listing view of a record: enough to pick a run without
// loading the full solution set.
type RunInfo struct {
	RunID     string      `json:"runId"`
	Timestamp time.Time   `json:"timestamp"`
	Model     string      `json:"model"`
	Kind      solver.Kind `json:"kind"`
	NSol      int         `json:"nSol"`
	NSim      int         `json:"nSim"`
	Converged bool        `json:"converged"`
}

// NewRunRecord stamps a fresh record with a unique ID and the current time.
func NewRunRecord(config RunConfig, result solver.SolutionSet) *RunRecord {
	return &RunRecord{
		RunID:     uuid.New().String(),
		Timestamp: time.Now(),
		Config:    config,
		Result:    result,
	}
}

// ToInfo converts a full RunRecord to RunInfo (metadata only).
func (r *RunRecord) ToInfo() RunInfo {
	return RunInfo{
		RunID:     r.RunID,
		Timestamp: r.Timestamp,
		Model:     r.Config.Model,
		Kind:      r.Config.Kind,
		NSol:      r.Result.NSol,
		NSim:      r.Result.NSim,
		Converged: r.Result.Converged,
	}
}

// Validate checks if the record has valid data.
// Returns an error if any required field is missing or invalid.
func (r *RunRecord) Validate() error {
	if r.RunID == "" {
		return &ValidationError{Field: "RunID", Reason: "cannot be empty"}
	}
	if _, err := uuid.Parse(r.RunID); err != nil {
		return &ValidationError{Field: "RunID", Reason: "must be a UUID"}
	}
	if r.Timestamp.IsZero() {
		return &ValidationError{Field: "Timestamp", Reason: "cannot be zero"}
	}
	if r.Config.Model == "" {
		return &ValidationError{Field: "Config.Model", Reason: "cannot be empty"}
	}
	if r.Config.Kind == "" {
		return &ValidationError{Field: "Config.Kind", Reason: "cannot be empty"}
	}
	if r.Result.NSol != len(r.Result.Solutions) {
		return &ValidationError{Field: "Result.NSol", Reason: "does not match solution count"}
	}
	if r.Result.NSim < 0 {
		return &ValidationError{Field: "Result.NSim", Reason: "cannot be negative"}
	}
	return nil
}

// ValidationError represents a run record validation error.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation error: " + e.Field + " " + e.Reason
}
