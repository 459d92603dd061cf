package solver

import (
	"math"
	"math/rand"

	"github.com/cwbudde/sweepfront/internal/design"
)

// Helpers for engines whose libraries only take scalar box bounds
// (eaopt's SPSO and mayfly): those engines search the unit box and the
// adapter maps coordinates per dimension.

// fromUnit maps a unit-box coordinate vector onto the problem's scaled
// bounds, snapping integer columns to whole ranks.
func fromUnit(p *design.Problem, u []float64) []float64 {
	x := make([]float64, len(u))
	for j := range u {
		x[j] = p.LB[j] + u[j]*(p.UB[j]-p.LB[j])
	}
	snapIntCols(p, x)
	return x
}

// randomPoint draws a uniform point inside the scaled bounds.
func randomPoint(rng *rand.Rand, p *design.Problem) []float64 {
	x := make([]float64, len(p.LB))
	for j := range x {
		x[j] = p.LB[j] + rng.Float64()*(p.UB[j]-p.LB[j])
	}
	snapIntCols(p, x)
	return x
}

// snapIntCols rounds integer columns to whole ranks and clamps every column
// into bounds.
func snapIntCols(p *design.Problem, x []float64) {
	for _, c := range p.IntCols {
		x[c] = math.Round(x[c])
	}
	for j := range x {
		if x[j] < p.LB[j] {
			x[j] = p.LB[j]
		}
		if x[j] > p.UB[j] {
			x[j] = p.UB[j]
		}
	}
}

// singleRowObjective wraps a BatchObjective for libraries that evaluate one
// point at a time.
func singleRowObjective(obj BatchObjective) func([]float64) (float64, error) {
	return func(x []float64) (float64, error) {
		rows, err := obj([][]float64{x})
		if err != nil {
			return 0, err
		}
		if len(rows) != 1 || len(rows[0]) != 1 {
			return 0, errSingleObjective
		}
		return rows[0][0], nil
	}
}

// latchedObjective is singleRowObjective for libraries whose objective
// signature cannot carry an error: the first failure is latched into *errOut
// and surfaced as +Inf so the library keeps moving until the adapter checks
// the latch.
func latchedObjective(obj BatchObjective, errOut *error) func([]float64) float64 {
	inner := singleRowObjective(obj)
	return func(x []float64) float64 {
		v, err := inner(x)
		if err != nil {
			if *errOut == nil {
				*errOut = err
			}
			return math.Inf(1)
		}
		return v
	}
}

var errSingleObjective = &design.ValidationError{Reason: "engine requires a single scalar objective per row"}
