package solver

import (
	"fmt"

	"github.com/cwbudde/sweepfront/internal/design"
	"github.com/cwbudde/sweepfront/internal/nsga2"
)

// gaMultiObjEngine adapts the NSGA-II engine. Evaluation is vectorized: each
// generation is scored with one batch objective call.
type gaMultiObjEngine struct{}

func (gaMultiObjEngine) Kind() Kind             { return KindGAMultiObj }
func (gaMultiObjEngine) SupportsIntegers() bool { return false }

func (gaMultiObjEngine) Optimize(obj BatchObjective, p *design.Problem, cfg Config, report func(iter int)) (*RawResult, error) {
	nc := nsga2.Config{
		PopSize:        cfg.PopSize,
		MaxGenerations: cfg.MaxIterations,
		Seed:           cfg.Seed,
	}
	prob := nsga2.Problem{
		LB:       p.LB,
		UB:       p.UB,
		Initial:  p.InitialPoints,
		Evaluate: obj,
	}

	res, err := nsga2.Run(nc, prob, func(gen, evals int) { report(gen) })
	if err != nil {
		return nil, err
	}

	return &RawResult{
		Points:      res.Points,
		Objectives:  res.Objectives,
		Success:     len(res.Points) > 0,
		Generations: res.Generations,
		Message:     fmt.Sprintf("gamultiobj finished after %d generations with %d front points", res.Generations, len(res.Points)),
	}, nil
}
