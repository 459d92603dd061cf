package solver

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/MaxHalford/eaopt"
	"github.com/cwbudde/sweepfront/internal/design"
)

// gaEngine adapts the eaopt genetic algorithm. It is the only population
// engine here that honors integer-constrained columns: the genome snaps them
// to whole ranks after every mutation and crossover.
type gaEngine struct{}

func (gaEngine) Kind() Kind             { return KindGA }
func (gaEngine) SupportsIntegers() bool { return true }

func (gaEngine) Optimize(obj BatchObjective, p *design.Problem, cfg Config, report func(iter int)) (*RawResult, error) {
	conf := eaopt.NewDefaultGAConfig()
	if cfg.PopSize > 0 {
		conf.PopSize = uint(cfg.PopSize)
	}
	if cfg.MaxIterations > 0 {
		conf.NGenerations = uint(cfg.MaxIterations)
	}
	conf.HofSize = 1
	conf.RNG = rand.New(rand.NewSource(cfg.Seed))
	conf.Callback = func(ga *eaopt.GA) {
		report(int(ga.Generations))
	}

	ga, err := conf.NewGA()
	if err != nil {
		return nil, fmt.Errorf("configure ga: %w", err)
	}

	eval := singleRowObjective(obj)

	// Seed the initial population from the preprocessed grid, then top up
	// with random points inside the bounds.
	var mu sync.Mutex
	next := 0
	factory := func(rng *rand.Rand) eaopt.Genome {
		mu.Lock()
		var x []float64
		if next < len(p.InitialPoints) {
			x = append([]float64(nil), p.InitialPoints[next]...)
			next++
		}
		mu.Unlock()
		if x == nil {
			x = randomPoint(rng, p)
		}
		return &vectorGenome{x: x, p: p, eval: eval}
	}

	if err := ga.Minimize(factory); err != nil {
		return nil, err
	}
	if len(ga.HallOfFame) == 0 {
		return &RawResult{Success: false, Message: "ga returned no solutions"}, nil
	}

	best := ga.HallOfFame[0]
	x := append([]float64(nil), best.Genome.(*vectorGenome).x...)
	return &RawResult{
		Points:      [][]float64{x},
		Objectives:  [][]float64{{best.Fitness}},
		Success:     true,
		Generations: int(ga.Generations),
		Message:     fmt.Sprintf("ga finished after %d generations", ga.Generations),
	}, nil
}

// vectorGenome is a bounded float vector genome over the problem's scaled
// coordinates.
type vectorGenome struct {
	x    []float64
	p    *design.Problem
	eval func([]float64) (float64, error)
}

func (g *vectorGenome) Evaluate() (float64, error) {
	return g.eval(g.x)
}

// Mutate perturbs each coordinate with probability 1/dim by a gaussian step
// of a tenth of its span, then snaps back into the box.
func (g *vectorGenome) Mutate(rng *rand.Rand) {
	dim := len(g.x)
	for j := range g.x {
		if rng.Float64() > 1/float64(dim) && dim > 1 {
			continue
		}
		span := g.p.UB[j] - g.p.LB[j]
		g.x[j] += rng.NormFloat64() * span / 10
	}
	snapIntCols(g.p, g.x)
}

// Crossover swaps coordinates uniformly with the partner.
func (g *vectorGenome) Crossover(mate eaopt.Genome, rng *rand.Rand) {
	other := mate.(*vectorGenome)
	for j := range g.x {
		if rng.Float64() < 0.5 {
			g.x[j], other.x[j] = other.x[j], g.x[j]
		}
	}
	snapIntCols(g.p, g.x)
	snapIntCols(other.p, other.x)
}

func (g *vectorGenome) Clone() eaopt.Genome {
	return &vectorGenome{x: append([]float64(nil), g.x...), p: g.p, eval: g.eval}
}
