package solver

import (
	"fmt"
	"math/rand"

	"github.com/MaxHalford/eaopt"
	"github.com/cwbudde/sweepfront/internal/design"
)

// particleSwarmEngine adapts eaopt's SPSO. The library takes one scalar bound
// pair for all dimensions, so the swarm flies in the unit box and the adapter
// maps coordinates onto the problem's per-dimension bounds. SPSO offers no
// population injection and no callback hook; progress is derived from the
// evaluation stream instead.
type particleSwarmEngine struct{}

func (particleSwarmEngine) Kind() Kind             { return KindParticleSwarm }
func (particleSwarmEngine) SupportsIntegers() bool { return false }

func (particleSwarmEngine) Optimize(obj BatchObjective, p *design.Problem, cfg Config, report func(iter int)) (*RawResult, error) {
	popSize := cfg.PopSize
	if popSize <= 0 {
		popSize = 40
	}
	iters := cfg.MaxIterations
	if iters <= 0 {
		iters = 100
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	spso, err := eaopt.NewSPSO(uint(popSize), uint(iters), 0, 1, 0.8, false, rng)
	if err != nil {
		return nil, fmt.Errorf("configure particleswarm: %w", err)
	}

	var evalErr error
	evals := 0
	inner := latchedObjective(obj, &evalErr)
	f := func(u []float64) float64 {
		v := inner(fromUnit(p, u))
		evals++
		if evals%popSize == 0 {
			report(evals / popSize)
		}
		return v
	}

	u, y, err := spso.Minimize(f, uint(len(p.LB)))
	if evalErr != nil {
		return nil, evalErr
	}
	if err != nil {
		return &RawResult{Success: false, Iterations: iters, Message: "particleswarm failed: " + err.Error()}, nil
	}

	return &RawResult{
		Points:     [][]float64{fromUnit(p, u)},
		Objectives: [][]float64{{y}},
		Success:    true,
		Iterations: iters,
		Message:    fmt.Sprintf("particleswarm finished after %d iterations", iters),
	}, nil
}
