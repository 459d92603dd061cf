// Package psearch implements a derivative-free multi-objective pattern
// search: each iteration polls a mesh of axis-aligned steps around the
// current non-dominated archive, evaluates the whole poll set in one batch,
// and merges the survivors back into the archive. The mesh contracts when a
// poll produces nothing new and expands (up to its starting size) when it
// does. Works for any number of objectives, including one.
package psearch

import (
	"math"
	"sort"

	"github.com/cwbudde/sweepfront/internal/moo"
	"gonum.org/v1/gonum/floats"
)

// Config tunes the search. Zero values fall back to DefaultConfig.
type Config struct {
	MaxIterations int
	// MeshSize is the initial poll step as a fraction of each dimension's
	// span.
	MeshSize float64
	// MeshTol stops the search once the mesh fraction contracts below it.
	MeshTol float64
	// ArchiveCap bounds the archive; excess points are dropped by crowding
	// distance.
	ArchiveCap int
	Stall      StallConfig
}

// DefaultConfig returns the usual settings.
func DefaultConfig() Config {
	return Config{
		MaxIterations: 100,
		MeshSize:      0.25,
		MeshTol:       1e-6,
		ArchiveCap:    100,
		Stall:         DefaultStallConfig(),
	}
}

// Problem describes the search box, the injected starting points, and the
// batch objective (one objective vector per row, in row order).
type Problem struct {
	LB, UB   []float64
	Initial  [][]float64
	Evaluate func(points [][]float64) ([][]float64, error)
}

// Result carries the final non-dominated archive.
type Result struct {
	Points     [][]float64
	Objectives [][]float64
	Iterations int
	Evals      int
	// Converged is true when the search stopped by its own criterion: the
	// mesh contracted below MeshTol or progress stalled out.
	Converged bool
}

// Run executes the search. report, if non-nil, is called once per iteration
// with the iteration index and cumulative evaluation count; it cannot stop
// the run.
func Run(cfg Config, prob Problem, report func(iter, evals int)) (*Result, error) {
	def := DefaultConfig()
	if cfg.MaxIterations <= 0 {
		cfg.MaxIterations = def.MaxIterations
	}
	if cfg.MeshSize <= 0 {
		cfg.MeshSize = def.MeshSize
	}
	if cfg.MeshTol <= 0 {
		cfg.MeshTol = def.MeshTol
	}
	if cfg.ArchiveCap <= 0 {
		cfg.ArchiveCap = def.ArchiveCap
	}

	dim := len(prob.LB)
	span := make([]float64, dim)
	floats.SubTo(span, prob.UB, prob.LB)

	// Starting archive: the non-dominated subset of the injected points.
	start := prob.Initial
	if len(start) == 0 {
		mid := make([]float64, dim)
		floats.AddScaledTo(mid, prob.LB, 0.5, span)
		start = [][]float64{mid}
	}
	objs, err := prob.Evaluate(start)
	if err != nil {
		return nil, err
	}
	evals := len(start)
	archPts, archObjs := pruneArchive(start, objs, cfg.ArchiveCap)

	mesh := cfg.MeshSize
	stall := newStallTracker(cfg.Stall)
	res := &Result{}

	for iter := 1; iter <= cfg.MaxIterations; iter++ {
		// Build the poll set: +/- mesh*span along every axis around every
		// archive point, clipped to the box.
		polls := make([][]float64, 0, 2*dim*len(archPts))
		for _, x := range archPts {
			for j := 0; j < dim; j++ {
				for _, dir := range []float64{1, -1} {
					p := append([]float64(nil), x...)
					p[j] = clamp(p[j]+dir*mesh*span[j], prob.LB[j], prob.UB[j])
					polls = append(polls, p)
				}
			}
		}

		pollObjs, err := prob.Evaluate(polls)
		if err != nil {
			return nil, err
		}
		evals += len(polls)

		var merged bool
		archPts, archObjs, merged = mergeArchive(archPts, archObjs, polls, pollObjs, cfg.ArchiveCap)

		if merged {
			mesh = math.Min(mesh*2, cfg.MeshSize)
		} else {
			mesh /= 2
		}

		res.Iterations = iter
		if report != nil {
			report(iter, evals)
		}

		if mesh < cfg.MeshTol {
			res.Converged = true
			break
		}
		if stall.Update(bestAggregate(archObjs)) {
			res.Converged = true
			break
		}
	}

	res.Points = archPts
	res.Objectives = archObjs
	res.Evals = evals
	return res, nil
}

// mergeArchive folds candidate points into the archive, keeping only
// non-dominated entries, and reports whether any candidate survived.
func mergeArchive(pts, objs, candPts, candObjs [][]float64, limit int) ([][]float64, [][]float64, bool) {
	allPts := append(append([][]float64{}, pts...), candPts...)
	allObjs := append(append([][]float64{}, objs...), candObjs...)
	keptPts, keptObjs := pruneArchive(allPts, allObjs, limit)

	merged := false
	for i := range keptObjs {
		if !containsVec(objs, keptObjs[i]) {
			merged = true
			break
		}
	}
	return keptPts, keptObjs, merged
}

// pruneArchive keeps the non-dominated subset, dropping points whose
// objective vector is already represented, and truncates to limit by crowding
// distance. The objective dedup keeps ties from counting as poll successes,
// which would otherwise freeze the mesh on flat regions.
func pruneArchive(pts, objs [][]float64, limit int) ([][]float64, [][]float64) {
	mask := moo.FilterNonDominated(objs)
	var keptPts, keptObjs [][]float64
	for i, ok := range mask {
		if !ok || containsVec(keptObjs, objs[i]) {
			continue
		}
		keptPts = append(keptPts, pts[i])
		keptObjs = append(keptObjs, objs[i])
	}
	if len(keptPts) <= limit {
		return keptPts, keptObjs
	}

	idx := make([]int, len(keptPts))
	for i := range idx {
		idx[i] = i
	}
	dist := moo.CrowdingDistance(keptObjs, idx)
	sort.Slice(idx, func(a, b int) bool { return dist[idx[a]] > dist[idx[b]] })

	outPts := make([][]float64, limit)
	outObjs := make([][]float64, limit)
	for i := 0; i < limit; i++ {
		outPts[i] = keptPts[idx[i]]
		outObjs[i] = keptObjs[idx[i]]
	}
	return outPts, outObjs
}

// bestAggregate is the stall indicator: the smallest objective sum across the
// archive.
func bestAggregate(objs [][]float64) float64 {
	best := math.Inf(1)
	for _, o := range objs {
		best = math.Min(best, floats.Sum(o))
	}
	return best
}

func containsVec(vs [][]float64, x []float64) bool {
	for _, p := range vs {
		if floats.Equal(p, x) {
			return true
		}
	}
	return false
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
