package solver

import (
	"fmt"
	"math/rand"

	"github.com/cwbudde/mayfly"
	"github.com/cwbudde/sweepfront/internal/design"
)

// mayflyEngine adapts the external mayfly optimizer, a swarm/evolutionary
// hybrid. Like SPSO it only takes scalar bounds, so it runs in the unit box,
// and its config offers no way to seed the swarm from InitialPoints either.
type mayflyEngine struct{}

func (mayflyEngine) Kind() Kind             { return KindMayfly }
func (mayflyEngine) SupportsIntegers() bool { return false }

func (mayflyEngine) Optimize(obj BatchObjective, p *design.Problem, cfg Config, report func(iter int)) (*RawResult, error) {
	popSize := cfg.PopSize
	if popSize < 20 {
		// mayfly v0.1.0 misbehaves below 20.
		popSize = 20
	}
	iters := cfg.MaxIterations
	if iters <= 0 {
		iters = 100
	}

	var evalErr error
	evals := 0
	inner := latchedObjective(obj, &evalErr)

	config := mayfly.NewDefaultConfig()
	config.ObjectiveFunc = func(u []float64) float64 {
		v := inner(fromUnit(p, u))
		evals++
		if evals%popSize == 0 {
			report(evals / popSize)
		}
		return v
	}
	config.ProblemSize = len(p.LB)
	config.MaxIterations = iters
	config.NPop = popSize
	config.LowerBound = 0
	config.UpperBound = 1
	config.Rand = rand.New(rand.NewSource(cfg.Seed))

	result, err := mayfly.Optimize(config)
	if evalErr != nil {
		return nil, evalErr
	}
	if err != nil {
		return &RawResult{Success: false, Iterations: iters, Message: "mayfly failed: " + err.Error()}, nil
	}

	return &RawResult{
		Points:     [][]float64{fromUnit(p, result.GlobalBest.Position)},
		Objectives: [][]float64{{result.GlobalBest.Cost}},
		Success:    true,
		Iterations: iters,
		Message:    fmt.Sprintf("mayfly finished after %d iterations", iters),
	}, nil
}
