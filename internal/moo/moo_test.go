package moo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDominates(t *testing.T) {
	assert.True(t, Dominates([]float64{1, 1}, []float64{2, 2}))
	assert.True(t, Dominates([]float64{1, 2}, []float64{1, 3}))
	assert.False(t, Dominates([]float64{1, 3}, []float64{2, 2}))
	assert.False(t, Dominates([]float64{1, 1}, []float64{1, 1}))
}

func TestNonDominatedSortFronts(t *testing.T) {
	objs := [][]float64{
		{1, 4}, // front 0
		{4, 1}, // front 0
		{2, 5}, // dominated by {1,4}
		{5, 5}, // dominated by everything above
	}
	fronts := NonDominatedSort(objs)
	require.Len(t, fronts, 3)
	assert.ElementsMatch(t, []int{0, 1}, fronts[0])
	assert.ElementsMatch(t, []int{2}, fronts[1])
	assert.ElementsMatch(t, []int{3}, fronts[2])
}

func TestFirstFrontIsNonDominated(t *testing.T) {
	objs := [][]float64{
		{0.1, 0.9}, {0.5, 0.5}, {0.9, 0.1}, {0.6, 0.6}, {0.2, 1.2},
	}
	fronts := NonDominatedSort(objs)
	first := fronts[0]
	for _, i := range first {
		for _, j := range first {
			if i != j {
				assert.False(t, Dominates(objs[i], objs[j]), "front 0 contains dominated point %d", j)
			}
		}
	}
}

func TestCrowdingDistanceBoundariesInfinite(t *testing.T) {
	objs := [][]float64{{0, 3}, {1, 2}, {2, 1}, {3, 0}}
	front := []int{0, 1, 2, 3}
	dist := CrowdingDistance(objs, front)
	assert.True(t, math.IsInf(dist[0], 1))
	assert.True(t, math.IsInf(dist[3], 1))
	assert.Greater(t, dist[1], 0.0)
	assert.False(t, math.IsInf(dist[1], 1))
}

func TestFilterNonDominated(t *testing.T) {
	objs := [][]float64{{1, 4}, {4, 1}, {2, 5}, {3, 3}}
	mask := FilterNonDominated(objs)
	assert.Equal(t, []bool{true, true, false, true}, mask)
}
