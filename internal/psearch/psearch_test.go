package psearch

import (
	"math"
	"testing"

	"github.com/cwbudde/sweepfront/internal/moo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Two-objective convex trade-off: f1 = |x|^2, f2 = |x - (1,1,...)|^2.
func biSphere(points [][]float64) ([][]float64, error) {
	out := make([][]float64, len(points))
	for i, x := range points {
		var f1, f2 float64
		for _, v := range x {
			f1 += v * v
			f2 += (v - 1) * (v - 1)
		}
		out[i] = []float64{f1, f2}
	}
	return out, nil
}

func sphereOnly(points [][]float64) ([][]float64, error) {
	out := make([][]float64, len(points))
	for i, x := range points {
		var f float64
		for _, v := range x {
			f += v * v
		}
		out[i] = []float64{f}
	}
	return out, nil
}

func TestRunBiObjective(t *testing.T) {
	lb := []float64{-2, -2}
	ub := []float64{2, 2}
	cfg := Config{MaxIterations: 80}
	prob := Problem{LB: lb, UB: ub, Initial: [][]float64{{-1.5, 1.5}, {2, -2}}, Evaluate: biSphere}

	iters := 0
	res, err := Run(cfg, prob, func(iter, evals int) { iters = iter })
	require.NoError(t, err)
	require.NotEmpty(t, res.Points)
	assert.Equal(t, iters, res.Iterations)
	assert.Greater(t, res.Evals, 0)

	// Archive must be mutually non-dominated and inside the box.
	for i, o := range res.Objectives {
		for j, p := range res.Objectives {
			if i != j {
				assert.False(t, moo.Dominates(o, p))
			}
		}
		for k, v := range res.Points[i] {
			assert.GreaterOrEqual(t, v, lb[k])
			assert.LessOrEqual(t, v, ub[k])
		}
	}

	// Both extremes of the trade-off should be approached: some point near
	// the f1 optimum (origin) and some near the f2 optimum (1,1).
	bestF1, bestF2 := math.Inf(1), math.Inf(1)
	for _, o := range res.Objectives {
		bestF1 = math.Min(bestF1, o[0])
		bestF2 = math.Min(bestF2, o[1])
	}
	assert.Less(t, bestF1, 0.5)
	assert.Less(t, bestF2, 0.5)
}

func TestRunSingleObjectiveConverges(t *testing.T) {
	lb := []float64{-4, -4, -4}
	ub := []float64{4, 4, 4}
	cfg := Config{MaxIterations: 200, Stall: StallConfig{Enabled: false}}
	prob := Problem{LB: lb, UB: ub, Initial: [][]float64{{3, -3, 2}}, Evaluate: sphereOnly}

	res, err := Run(cfg, prob, nil)
	require.NoError(t, err)
	assert.True(t, res.Converged)
	require.Len(t, res.Points, 1) // single objective: one non-dominated point
	assert.Less(t, res.Objectives[0][0], 1e-3)
}

func TestRunEmptyInitialUsesBoxCenter(t *testing.T) {
	cfg := Config{MaxIterations: 5, Stall: StallConfig{Enabled: false}}
	prob := Problem{LB: []float64{0, 0}, UB: []float64{2, 2}, Evaluate: sphereOnly}

	res, err := Run(cfg, prob, nil)
	require.NoError(t, err)
	require.NotEmpty(t, res.Points)
	// First evaluation is the box center plus the polls.
	assert.Greater(t, res.Evals, 1)
}

func TestRunPropagatesEvaluateError(t *testing.T) {
	prob := Problem{LB: []float64{0}, UB: []float64{1}, Evaluate: func([][]float64) ([][]float64, error) {
		return nil, assert.AnError
	}}
	_, err := Run(Config{MaxIterations: 3}, prob, nil)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestStallTracker(t *testing.T) {
	tr := newStallTracker(StallConfig{Enabled: true, Patience: 3, Threshold: 0.01})
	assert.False(t, tr.Update(100)) // initializes
	assert.False(t, tr.Update(50))  // big improvement
	assert.False(t, tr.Update(49.9))
	assert.False(t, tr.Update(49.9))
	assert.True(t, tr.Update(49.9)) // patience exhausted

	off := newStallTracker(StallConfig{Enabled: false})
	for i := 0; i < 100; i++ {
		assert.False(t, off.Update(1))
	}
}
