// Package moo holds the multi-objective bookkeeping shared by the in-repo
// engines: Pareto dominance, fast non-dominated sorting, and crowding
// distance. All objectives are minimized.
package moo

import (
	"math"
	"sort"
)

// Dominates reports whether objective vector a Pareto-dominates b: a is no
// worse in every objective and strictly better in at least one.
func Dominates(a, b []float64) bool {
	better := false
	for i := range a {
		if a[i] > b[i] {
			return false
		}
		if a[i] < b[i] {
			better = true
		}
	}
	return better
}

// NonDominatedSort partitions the indices 0..n-1 of objs into fronts: front 0
// is the non-dominated set, front 1 is non-dominated once front 0 is removed,
// and so on.
func NonDominatedSort(objs [][]float64) [][]int {
	n := len(objs)
	dominated := make([][]int, n) // indices each point dominates
	domCount := make([]int, n)    // how many points dominate it

	var fronts [][]int
	var first []int
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			if Dominates(objs[i], objs[j]) {
				dominated[i] = append(dominated[i], j)
			} else if Dominates(objs[j], objs[i]) {
				domCount[i]++
			}
		}
		if domCount[i] == 0 {
			first = append(first, i)
		}
	}
	fronts = append(fronts, first)

	for len(fronts[len(fronts)-1]) > 0 {
		var next []int
		for _, i := range fronts[len(fronts)-1] {
			for _, j := range dominated[i] {
				domCount[j]--
				if domCount[j] == 0 {
					next = append(next, j)
				}
			}
		}
		if len(next) == 0 {
			break
		}
		fronts = append(fronts, next)
	}
	return fronts
}

// CrowdingDistance computes the crowding distance of each member of a front
// (given as indices into objs). Boundary points get +Inf so they always
// survive truncation.
func CrowdingDistance(objs [][]float64, front []int) map[int]float64 {
	dist := make(map[int]float64, len(front))
	for _, i := range front {
		dist[i] = 0
	}
	if len(front) == 0 {
		return dist
	}
	m := len(objs[front[0]])

	order := make([]int, len(front))
	for k := 0; k < m; k++ {
		copy(order, front)
		sort.Slice(order, func(a, b int) bool {
			return objs[order[a]][k] < objs[order[b]][k]
		})
		lo, hi := order[0], order[len(order)-1]
		dist[lo] = math.Inf(1)
		dist[hi] = math.Inf(1)
		span := objs[hi][k] - objs[lo][k]
		if span == 0 {
			continue
		}
		for idx := 1; idx < len(order)-1; idx++ {
			i := order[idx]
			if math.IsInf(dist[i], 1) {
				continue
			}
			dist[i] += (objs[order[idx+1]][k] - objs[order[idx-1]][k]) / span
		}
	}
	return dist
}

// FilterNonDominated returns a keep mask selecting the rows of objs that no
// other row dominates.
func FilterNonDominated(objs [][]float64) []bool {
	mask := make([]bool, len(objs))
	for i := range objs {
		mask[i] = true
		for j := range objs {
			if i != j && Dominates(objs[j], objs[i]) {
				mask[i] = false
				break
			}
		}
	}
	return mask
}
