// Package nsga2 implements the NSGA-II multi-objective genetic algorithm:
// fast non-dominated sorting, crowding-distance truncation, binary tournament
// selection, simulated binary crossover and polynomial mutation. Objective
// evaluation is vectorized: each generation is scored with a single batch
// call, so the caller's pipeline decides how to split the work.
package nsga2

import (
	"math"
	"math/rand"

	"github.com/cwbudde/sweepfront/internal/moo"
)

// Config tunes the algorithm. Zero values fall back to the defaults from
// DefaultConfig.
type Config struct {
	PopSize        int
	MaxGenerations int
	CrossoverProb  float64
	MutationProb   float64 // default 1/dim
	EtaCrossover   float64 // SBX distribution index
	EtaMutation    float64 // polynomial mutation distribution index
	Seed           int64
}

// DefaultConfig returns the usual NSGA-II settings.
func DefaultConfig() Config {
	return Config{
		PopSize:        60,
		MaxGenerations: 100,
		CrossoverProb:  0.9,
		EtaCrossover:   15,
		EtaMutation:    20,
	}
}

// Problem describes the search: box bounds, optional injected starting
// points, and a batch objective. Evaluate receives whole populations and must
// return one objective vector per input row, in row order.
type Problem struct {
	LB, UB   []float64
	Initial  [][]float64
	Evaluate func(points [][]float64) ([][]float64, error)
}

// Result carries the final first front.
type Result struct {
	Points      [][]float64
	Objectives  [][]float64
	Generations int
	Evals       int
}

// Run executes the algorithm. report, if non-nil, is called once per
// generation with the generation index and cumulative evaluation count; it is
// observational only and cannot stop the run.
func Run(cfg Config, prob Problem, report func(gen, evals int)) (*Result, error) {
	def := DefaultConfig()
	if cfg.PopSize <= 0 {
		cfg.PopSize = def.PopSize
	}
	if cfg.MaxGenerations <= 0 {
		cfg.MaxGenerations = def.MaxGenerations
	}
	if cfg.CrossoverProb <= 0 {
		cfg.CrossoverProb = def.CrossoverProb
	}
	if cfg.EtaCrossover <= 0 {
		cfg.EtaCrossover = def.EtaCrossover
	}
	if cfg.EtaMutation <= 0 {
		cfg.EtaMutation = def.EtaMutation
	}
	dim := len(prob.LB)
	if cfg.MutationProb <= 0 {
		cfg.MutationProb = 1 / math.Max(1, float64(dim))
	}
	rng := rand.New(rand.NewSource(cfg.Seed))

	pop := seedPopulation(cfg.PopSize, prob, rng)
	objs, err := prob.Evaluate(pop)
	if err != nil {
		return nil, err
	}
	evals := len(pop)

	rank, crowd := rankAndCrowd(objs)

	for gen := 1; gen <= cfg.MaxGenerations; gen++ {
		offspring := make([][]float64, 0, cfg.PopSize)
		for len(offspring) < cfg.PopSize {
			a := tournament(rng, rank, crowd)
			b := tournament(rng, rank, crowd)
			c1, c2 := sbxCrossover(cfg, rng, pop[a], pop[b], prob.LB, prob.UB)
			polyMutate(cfg, rng, c1, prob.LB, prob.UB)
			polyMutate(cfg, rng, c2, prob.LB, prob.UB)
			offspring = append(offspring, c1)
			if len(offspring) < cfg.PopSize {
				offspring = append(offspring, c2)
			}
		}

		offObjs, err := prob.Evaluate(offspring)
		if err != nil {
			return nil, err
		}
		evals += len(offspring)

		pop, objs = environmentalSelect(cfg.PopSize, append(pop, offspring...), append(objs, offObjs...))
		rank, crowd = rankAndCrowd(objs)

		if report != nil {
			report(gen, evals)
		}
	}

	// Final first front.
	fronts := moo.NonDominatedSort(objs)
	res := &Result{Generations: cfg.MaxGenerations, Evals: evals}
	for _, i := range fronts[0] {
		res.Points = append(res.Points, pop[i])
		res.Objectives = append(res.Objectives, objs[i])
	}
	return res, nil
}

// seedPopulation takes the injected points first (clipped into bounds) and
// tops up with uniform random points inside the box.
func seedPopulation(n int, prob Problem, rng *rand.Rand) [][]float64 {
	pop := make([][]float64, 0, n)
	for _, p := range prob.Initial {
		if len(pop) == n {
			break
		}
		pop = append(pop, clip(append([]float64(nil), p...), prob.LB, prob.UB))
	}
	for len(pop) < n {
		x := make([]float64, len(prob.LB))
		for j := range x {
			x[j] = prob.LB[j] + rng.Float64()*(prob.UB[j]-prob.LB[j])
		}
		pop = append(pop, x)
	}
	return pop
}

func rankAndCrowd(objs [][]float64) (rank []int, crowd []float64) {
	rank = make([]int, len(objs))
	crowd = make([]float64, len(objs))
	for fi, front := range moo.NonDominatedSort(objs) {
		dist := moo.CrowdingDistance(objs, front)
		for _, i := range front {
			rank[i] = fi
			crowd[i] = dist[i]
		}
	}
	return rank, crowd
}

// tournament runs a binary crowded tournament: lower rank wins, ties broken
// by larger crowding distance.
func tournament(rng *rand.Rand, rank []int, crowd []float64) int {
	a := rng.Intn(len(rank))
	b := rng.Intn(len(rank))
	if rank[a] < rank[b] {
		return a
	}
	if rank[b] < rank[a] {
		return b
	}
	if crowd[a] >= crowd[b] {
		return a
	}
	return b
}

// environmentalSelect keeps the best n of the combined parent+offspring pool,
// filling whole fronts and truncating the last one by crowding distance.
func environmentalSelect(n int, pool [][]float64, objs [][]float64) ([][]float64, [][]float64) {
	keptPts := make([][]float64, 0, n)
	keptObjs := make([][]float64, 0, n)
	for _, front := range moo.NonDominatedSort(objs) {
		if len(keptPts)+len(front) <= n {
			for _, i := range front {
				keptPts = append(keptPts, pool[i])
				keptObjs = append(keptObjs, objs[i])
			}
			continue
		}
		dist := moo.CrowdingDistance(objs, front)
		remaining := append([]int(nil), front...)
		for len(keptPts) < n {
			best := 0
			for k := 1; k < len(remaining); k++ {
				if dist[remaining[k]] > dist[remaining[best]] {
					best = k
				}
			}
			i := remaining[best]
			keptPts = append(keptPts, pool[i])
			keptObjs = append(keptObjs, objs[i])
			remaining = append(remaining[:best], remaining[best+1:]...)
		}
		break
	}
	return keptPts, keptObjs
}

func sbxCrossover(cfg Config, rng *rand.Rand, p1, p2, lb, ub []float64) ([]float64, []float64) {
	c1 := append([]float64(nil), p1...)
	c2 := append([]float64(nil), p2...)
	if rng.Float64() > cfg.CrossoverProb {
		return c1, c2
	}
	for j := range c1 {
		if rng.Float64() > 0.5 || math.Abs(p1[j]-p2[j]) < 1e-14 {
			continue
		}
		u := rng.Float64()
		var beta float64
		if u <= 0.5 {
			beta = math.Pow(2*u, 1/(cfg.EtaCrossover+1))
		} else {
			beta = math.Pow(1/(2*(1-u)), 1/(cfg.EtaCrossover+1))
		}
		c1[j] = 0.5 * ((1+beta)*p1[j] + (1-beta)*p2[j])
		c2[j] = 0.5 * ((1-beta)*p1[j] + (1+beta)*p2[j])
	}
	clip(c1, lb, ub)
	clip(c2, lb, ub)
	return c1, c2
}

func polyMutate(cfg Config, rng *rand.Rand, x, lb, ub []float64) {
	for j := range x {
		if rng.Float64() > cfg.MutationProb {
			continue
		}
		span := ub[j] - lb[j]
		if span == 0 {
			continue
		}
		u := rng.Float64()
		var delta float64
		if u < 0.5 {
			delta = math.Pow(2*u, 1/(cfg.EtaMutation+1)) - 1
		} else {
			delta = 1 - math.Pow(2*(1-u), 1/(cfg.EtaMutation+1))
		}
		x[j] += delta * span
	}
	clip(x, lb, ub)
}

func clip(x, lb, ub []float64) []float64 {
	for j := range x {
		if x[j] < lb[j] {
			x[j] = lb[j]
		}
		if x[j] > ub[j] {
			x[j] = ub[j]
		}
	}
	return x
}
