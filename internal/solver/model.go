package solver

import "github.com/cwbudde/sweepfront/internal/design"

// Fields holds per-row computed outputs of an evaluation: one column per
// field name, every column the length of the evaluated batch.
type Fields map[string][]float64

// Row extracts row i of every field.
func (f Fields) Row(i int) map[string]float64 {
	row := make(map[string]float64, len(f))
	for name, col := range f {
		row[name] = col[i]
	}
	return row
}

// concat appends src's columns to dst's, preserving row order. Chunked
// evaluation relies on this being a plain column-wise append.
func (f Fields) concat(src Fields) Fields {
	if f == nil {
		f = make(Fields, len(src))
	}
	for name, col := range src {
		f[name] = append(f[name], col...)
	}
	return f
}

// EvaluateFunc is the expensive problem model being optimized. It must
// tolerate batches of any size from 1 up to the full candidate count and be
// safely callable in chunks with concatenable results.
type EvaluateFunc func(inputs design.Batch, n int) (Fields, error)

// ObjectiveFunc reduces evaluated fields to the per-row quantity(ies) being
// minimized: one objective vector per row, all vectors the same length.
type ObjectiveFunc func(evaluated Fields, n int) ([][]float64, error)

// SelectBestFunc picks the rows the brute-force path reports, typically a
// non-dominance or threshold filter. Which dominance and tie-break policy to
// apply is the caller's business, not this package's.
type SelectBestFunc func(evaluated Fields, n int) ([]bool, error)

// Model bundles the problem-specific collaborators for one run.
type Model struct {
	Evaluate   EvaluateFunc   // required
	Objective  ObjectiveFunc  // required for every kind except bruteforce
	SelectBest SelectBestFunc // bruteforce only; nil keeps every row
}
