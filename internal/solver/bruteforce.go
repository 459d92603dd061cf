package solver

import (
	"fmt"
	"log/slog"

	"github.com/cwbudde/sweepfront/internal/design"
)

// solveBruteForce evaluates every initial point exactly once (chunked by
// NSplit) and keeps the rows the SelectBest collaborator flags. No
// optimization algorithm runs, so the result always counts as converged.
func solveBruteForce(cfg Config, p *design.Problem, m Model, obs Observer) (*SolutionSet, error) {
	n := len(p.InitialPoints)
	slog.Info("Brute-force sweep", "points", n, "nsplit", cfg.NSplit)

	chunk := 0
	fields, err := evaluateChunked(p, m.Evaluate, p.InitialPoints, cfg.NSplit, func(done int) {
		chunk++
		obs.Progress(Event{Phase: string(KindBruteForce), Iteration: chunk, Evals: done})
	})
	if err != nil {
		return nil, err
	}

	mask := make([]bool, n)
	for i := range mask {
		mask[i] = true
	}
	if m.SelectBest != nil {
		mask, err = m.SelectBest(fields, n)
		if err != nil {
			return nil, fmt.Errorf("select best: %w", err)
		}
		if len(mask) != n {
			return nil, fmt.Errorf("select best returned %d flags, want %d", len(mask), n)
		}
	}

	set := &SolutionSet{NSim: n, Converged: true}
	for i, keep := range mask {
		if !keep {
			continue
		}
		set.Solutions = append(set.Solutions, Solution{
			Inputs: p.UnscalePoint(p.InitialPoints[i]),
			Fields: fields.Row(i),
		})
	}
	set.NSol = len(set.Solutions)
	return set, nil
}
