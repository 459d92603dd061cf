package nsga2

import (
	"math"
	"testing"

	"github.com/cwbudde/sweepfront/internal/moo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// zdt1 is the classic two-objective benchmark with a convex Pareto front
// f2 = 1 - sqrt(f1) on [0,1]^d.
func zdt1(points [][]float64) ([][]float64, error) {
	out := make([][]float64, len(points))
	for i, x := range points {
		f1 := x[0]
		g := 1.0
		for j := 1; j < len(x); j++ {
			g += 9 * x[j] / float64(len(x)-1)
		}
		f2 := g * (1 - math.Sqrt(f1/g))
		out[i] = []float64{f1, f2}
	}
	return out, nil
}

func box(dim int) ([]float64, []float64) {
	lb := make([]float64, dim)
	ub := make([]float64, dim)
	for i := range ub {
		ub[i] = 1
	}
	return lb, ub
}

func TestRunOnZDT1(t *testing.T) {
	lb, ub := box(6)
	cfg := Config{PopSize: 40, MaxGenerations: 60, Seed: 42}
	prob := Problem{LB: lb, UB: ub, Evaluate: zdt1}

	gens := 0
	res, err := Run(cfg, prob, func(gen, evals int) { gens = gen })
	require.NoError(t, err)

	assert.Equal(t, 60, gens)
	assert.Equal(t, 60, res.Generations)
	// One initial batch plus one offspring batch per generation.
	assert.Equal(t, 40*61, res.Evals)
	require.NotEmpty(t, res.Points)
	require.Equal(t, len(res.Points), len(res.Objectives))

	for _, x := range res.Points {
		require.Len(t, x, 6)
		for j, v := range x {
			assert.GreaterOrEqual(t, v, lb[j])
			assert.LessOrEqual(t, v, ub[j])
		}
	}

	// The returned front must be mutually non-dominated.
	for i := range res.Objectives {
		for j := range res.Objectives {
			if i != j {
				assert.False(t, moo.Dominates(res.Objectives[i], res.Objectives[j]))
			}
		}
	}
}

func TestRunInjectsInitialPoints(t *testing.T) {
	lb, ub := box(3)
	// Plant the known optimum corner; with zero generations it must survive
	// into the reported front.
	seedPt := []float64{0, 0, 0}
	cfg := Config{PopSize: 10, MaxGenerations: 1, Seed: 1}
	prob := Problem{LB: lb, UB: ub, Initial: [][]float64{seedPt}, Evaluate: zdt1}

	res, err := Run(cfg, prob, nil)
	require.NoError(t, err)
	require.NotEmpty(t, res.Points)

	// x = origin gives f1 = 0, the left edge of the front; something at least
	// as good in f1 must be present.
	bestF1 := math.Inf(1)
	for _, o := range res.Objectives {
		bestF1 = math.Min(bestF1, o[0])
	}
	assert.Less(t, bestF1, 0.2)
}

func TestRunDeterministicWithSeed(t *testing.T) {
	lb, ub := box(4)
	cfg := Config{PopSize: 20, MaxGenerations: 10, Seed: 7}
	prob := Problem{LB: lb, UB: ub, Evaluate: zdt1}

	r1, err := Run(cfg, prob, nil)
	require.NoError(t, err)
	r2, err := Run(cfg, prob, nil)
	require.NoError(t, err)

	require.Equal(t, len(r1.Points), len(r2.Points))
	for i := range r1.Points {
		assert.Equal(t, r1.Points[i], r2.Points[i])
	}
}

func TestRunPropagatesEvaluateError(t *testing.T) {
	lb, ub := box(2)
	cfg := Config{PopSize: 8, MaxGenerations: 5, Seed: 3}
	prob := Problem{LB: lb, UB: ub, Evaluate: func(points [][]float64) ([][]float64, error) {
		return nil, assert.AnError
	}}
	_, err := Run(cfg, prob, nil)
	assert.ErrorIs(t, err, assert.AnError)
}
