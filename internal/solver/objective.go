package solver

import (
	"fmt"
	"sync/atomic"

	"github.com/cwbudde/sweepfront/internal/design"
)

// BatchObjective maps a batch of scaled candidate rows to one objective
// vector per row. Engines see only this; unscaling, constant merging,
// chunking and the Evaluate/Objective collaborators all live behind it.
type BatchObjective func(points [][]float64) ([][]float64, error)

// evalCounter tracks cumulative model evaluations across a run. Engines may
// evaluate from their own goroutines, so the count is atomic.
type evalCounter struct {
	n atomic.Int64
}

func (c *evalCounter) add(n int) { c.n.Add(int64(n)) }
func (c *evalCounter) total() int {
	return int(c.n.Load())
}

// evaluateChunked runs the unscale -> Evaluate pipeline over points, split
// into pieces of at most nsplit rows to bound peak memory per call. Chunks
// are processed strictly in sequence and results concatenated in row order;
// nsplit <= 0 evaluates everything in one call. onChunk, if non-nil, is told
// the cumulative row count after each chunk.
func evaluateChunked(p *design.Problem, eval EvaluateFunc, points [][]float64, nsplit int, onChunk func(done int)) (Fields, error) {
	n := len(points)
	if nsplit <= 0 || nsplit > n {
		nsplit = n
	}

	var out Fields
	for lo := 0; lo < n; lo += nsplit {
		hi := lo + nsplit
		if hi > n {
			hi = n
		}
		batch := p.UnscaleRows(points[lo:hi])
		fields, err := eval(batch, hi-lo)
		if err != nil {
			return nil, fmt.Errorf("evaluate rows %d..%d: %w", lo, hi-1, err)
		}
		for name, col := range fields {
			if len(col) != hi-lo {
				return nil, fmt.Errorf("evaluate returned %d rows for field %q, want %d", len(col), name, hi-lo)
			}
		}
		out = out.concat(fields)
		if onChunk != nil {
			onChunk(hi)
		}
	}
	if out == nil {
		out = Fields{}
	}
	return out, nil
}

// newBatchObjective builds the objective adapter shared by every
// non-bruteforce kind: unscale and evaluate (chunked by cfg.NSplit), then
// reduce with the Objective collaborator.
func newBatchObjective(p *design.Problem, m Model, cfg Config, counter *evalCounter) BatchObjective {
	return func(points [][]float64) ([][]float64, error) {
		fields, err := evaluateChunked(p, m.Evaluate, points, cfg.NSplit, nil)
		if err != nil {
			return nil, err
		}
		counter.add(len(points))

		objs, err := m.Objective(fields, len(points))
		if err != nil {
			return nil, fmt.Errorf("objective: %w", err)
		}
		if len(objs) != len(points) {
			return nil, fmt.Errorf("objective returned %d rows, want %d", len(objs), len(points))
		}
		return objs, nil
	}
}
