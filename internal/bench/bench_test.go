package bench

import (
	"testing"

	"github.com/cwbudde/sweepfront/internal/design"
	"github.com/cwbudde/sweepfront/internal/solver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	for _, name := range Names() {
		b, ok := Lookup(name)
		require.True(t, ok)
		assert.Equal(t, name, b.Name)
		assert.NotNil(t, b.Model.Evaluate)
		assert.NotNil(t, b.Model.Objective)
		assert.NotEmpty(t, b.Variables)
	}

	_, ok := Lookup("rosenbrock")
	assert.False(t, ok)
}

func TestSphereBruteForce(t *testing.T) {
	b, _ := Lookup("sphere")
	p, err := design.Preprocess(b.Variables, 1000, nil)
	require.NoError(t, err)

	set, err := solver.Solve(solver.KindBruteForce, solver.Config{}, p, b.Model)
	require.NoError(t, err)

	// 3x3 grid; the single non-dominated point is the origin.
	assert.Equal(t, 9, set.NSim)
	require.Equal(t, 1, set.NSol)
	assert.Equal(t, 0.0, set.Solutions[0].Fields["fsum"])
}

func TestZDT1BruteForceFrontIsNonDominated(t *testing.T) {
	b, _ := Lookup("zdt1")
	p, err := design.Preprocess(b.Variables, 1000, nil)
	require.NoError(t, err)

	set, err := solver.Solve(solver.KindBruteForce, solver.Config{NSplit: 4}, p, b.Model)
	require.NoError(t, err)

	assert.Equal(t, 16, set.NSim)
	assert.Greater(t, set.NSol, 0)
	assert.Less(t, set.NSol, 16)
	for _, s := range set.Solutions {
		assert.GreaterOrEqual(t, s.Fields["f1"], 0.0)
		assert.GreaterOrEqual(t, s.Fields["f2"], 0.0)
	}
}
