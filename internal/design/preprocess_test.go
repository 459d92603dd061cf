package design

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoFloats() []VariableSpec {
	return []VariableSpec{
		{Name: "width", Type: TypeFloat, Scale: ScaleLog, LB: 1e-6, UB: 1e-3, Value: F(1e-5), Seeds: []float64{1e-6, 1e-5, 1e-4}},
		{Name: "length", Type: TypeFloat, Scale: ScaleLin, LB: 0, UB: 10, Value: F(5), Seeds: []float64{2, 8}},
	}
}

func TestPreprocessGridCount(t *testing.T) {
	p, err := Preprocess(twoFloats(), 100, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, p.NVar)
	assert.Equal(t, 6, p.NSweep) // 3 x 2
	require.Len(t, p.InitialPoints, 6)
	for _, row := range p.InitialPoints {
		require.Len(t, row, 2)
		for c := range row {
			assert.GreaterOrEqual(t, row[c], p.LB[c])
			assert.LessOrEqual(t, row[c], p.UB[c])
		}
	}
}

func TestPreprocessScaledBounds(t *testing.T) {
	p, err := Preprocess(twoFloats(), 100, nil)
	require.NoError(t, err)

	// Log variable bounds live in log space.
	assert.InDelta(t, -6, p.LB[0], 1e-12)
	assert.InDelta(t, -3, p.UB[0], 1e-12)
	assert.Equal(t, 0.0, p.LB[1])
	assert.Equal(t, 10.0, p.UB[1])
	assert.Empty(t, p.IntCols)
}

func TestPreprocessScalarBecomesConstant(t *testing.T) {
	specs := append(twoFloats(), VariableSpec{Name: "temp", Type: TypeScalar, Value: F(300)})
	p, err := Preprocess(specs, 100, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, p.NVar)
	assert.Equal(t, 300.0, p.Constants["temp"])

	inputs := p.UnscaleRows(p.InitialPoints)
	require.Equal(t, 6, inputs.N)
	for _, v := range inputs.Values["temp"] {
		assert.Equal(t, 300.0, v)
	}
}

func TestPreprocessIntegerColumn(t *testing.T) {
	specs := []VariableSpec{
		{Name: "fingers", Type: TypeInteger, Set: []float64{2, 4, 8, 16}, Value: F(4), Seeds: []float64{2, 8}},
		{Name: "length", Type: TypeFloat, Scale: ScaleLin, LB: 0, UB: 1, Value: F(0.5), Seeds: []float64{0.25, 0.75}},
	}
	p, err := Preprocess(specs, 100, nil)
	require.NoError(t, err)

	assert.Equal(t, []int{0}, p.IntCols)
	assert.Equal(t, 1.0, p.LB[0])
	assert.Equal(t, 4.0, p.UB[0])

	// Seeds enter the grid as ranks.
	assert.Equal(t, 4, p.NSweep)
	ranks := map[float64]bool{}
	for _, row := range p.InitialPoints {
		ranks[row[0]] = true
	}
	assert.Equal(t, map[float64]bool{1: true, 3: true}, ranks)
}

func TestPreprocessSelectionPredicate(t *testing.T) {
	first := true
	keep := func(inputs Batch, n int) ([]bool, error) {
		require.Equal(t, 6, n)
		require.Len(t, inputs.Values["width"], n)
		mask := make([]bool, n)
		if first {
			mask[0] = true
			first = false
		}
		return mask, nil
	}
	p, err := Preprocess(twoFloats(), 100, keep)
	require.NoError(t, err)
	assert.Equal(t, 1, p.NSweep)
	assert.False(t, first, "predicate must be called exactly once")
}

func TestPreprocessPredicateError(t *testing.T) {
	boom := errors.New("boom")
	_, err := Preprocess(twoFloats(), 100, func(Batch, int) ([]bool, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)
}

func TestPreprocessCapacity(t *testing.T) {
	_, err := Preprocess(twoFloats(), 5, nil)
	var capErr *CapacityError
	require.ErrorAs(t, err, &capErr)
	assert.Equal(t, 6, capErr.NSweep)
	assert.Equal(t, 5, capErr.NMax)

	_, err = Preprocess(twoFloats(), 6, nil)
	assert.NoError(t, err)
}

func TestPreprocessAllRowsFilteredOut(t *testing.T) {
	none := func(inputs Batch, n int) ([]bool, error) { return make([]bool, n), nil }
	_, err := Preprocess(twoFloats(), 100, none)
	assert.ErrorIs(t, err, ErrCapacity)
}

func TestPreprocessNoVariables(t *testing.T) {
	specs := []VariableSpec{{Name: "temp", Type: TypeScalar, Value: F(300)}}
	_, err := Preprocess(specs, 100, nil)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestValidateFailures(t *testing.T) {
	cases := []struct {
		name string
		spec VariableSpec
	}{
		{"inverted bounds", VariableSpec{Name: "x", Type: TypeFloat, Scale: ScaleLin, LB: 2, UB: 1, Value: F(1.5)}},
		{"default outside bounds", VariableSpec{Name: "x", Type: TypeFloat, Scale: ScaleLin, LB: 0, UB: 1, Value: F(3)}},
		{"seed outside bounds", VariableSpec{Name: "x", Type: TypeFloat, Scale: ScaleLin, LB: 0, UB: 1, Value: F(0.5), Seeds: []float64{2}}},
		{"missing default", VariableSpec{Name: "x", Type: TypeFloat, Scale: ScaleLin, LB: 0, UB: 1}},
		{"log with zero bound", VariableSpec{Name: "x", Type: TypeFloat, Scale: ScaleLog, LB: 0, UB: 1, Value: F(0.5)}},
		{"tiny integer set", VariableSpec{Name: "n", Type: TypeInteger, Set: []float64{7, 7}, Value: F(7)}},
		{"default outside set", VariableSpec{Name: "n", Type: TypeInteger, Set: []float64{1, 2}, Value: F(3)}},
		{"seed outside set", VariableSpec{Name: "n", Type: TypeInteger, Set: []float64{1, 2}, Value: F(1), Seeds: []float64{5}}},
		{"unknown type", VariableSpec{Name: "x", Type: "matrix", Value: F(0)}},
		{"unknown scale", VariableSpec{Name: "x", Type: TypeFloat, Scale: "sqrt", LB: 0, UB: 1, Value: F(0.5)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Preprocess([]VariableSpec{tc.spec}, 100, nil)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestUnscaleRowsRoundTrip(t *testing.T) {
	p, err := Preprocess(twoFloats(), 100, nil)
	require.NoError(t, err)

	inputs := p.UnscaleRows(p.InitialPoints)
	widths := map[bool]int{}
	for _, w := range inputs.Values["width"] {
		widths[w >= 1e-6 && w <= 1e-3]++
	}
	assert.Equal(t, 6, widths[true])

	row := p.UnscalePoint(p.InitialPoints[0])
	assert.InDelta(t, inputs.Values["width"][0], row["width"], 1e-15)
	assert.InDelta(t, inputs.Values["length"][0], row["length"], 1e-15)
}
