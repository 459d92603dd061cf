package solver

import (
	"fmt"

	"github.com/cwbudde/sweepfront/internal/design"
	"github.com/cwbudde/sweepfront/internal/psearch"
)

// paretoSearchEngine adapts the multi-objective pattern search. Poll sets are
// evaluated in one batch per iteration. A run that exhausts its iteration
// budget before the mesh converges comes back with Success == false and the
// archive as the best effort.
type paretoSearchEngine struct{}

func (paretoSearchEngine) Kind() Kind             { return KindParetoSearch }
func (paretoSearchEngine) SupportsIntegers() bool { return false }

func (paretoSearchEngine) Optimize(obj BatchObjective, p *design.Problem, cfg Config, report func(iter int)) (*RawResult, error) {
	pc := psearch.DefaultConfig()
	if cfg.MaxIterations > 0 {
		pc.MaxIterations = cfg.MaxIterations
	}
	prob := psearch.Problem{
		LB:       p.LB,
		UB:       p.UB,
		Initial:  p.InitialPoints,
		Evaluate: obj,
	}

	res, err := psearch.Run(pc, prob, func(iter, evals int) { report(iter) })
	if err != nil {
		return nil, err
	}

	msg := fmt.Sprintf("paretosearch finished after %d iterations with %d archive points", res.Iterations, len(res.Points))
	if !res.Converged {
		msg = fmt.Sprintf("paretosearch exhausted %d iterations before mesh convergence", res.Iterations)
	}
	return &RawResult{
		Points:     res.Points,
		Objectives: res.Objectives,
		Success:    res.Converged && len(res.Points) > 0,
		Iterations: res.Iterations,
		Message:    msg,
	}, nil
}
