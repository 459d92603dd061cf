// Package solver normalizes several optimization engines behind one calling
// convention: it prepares a preprocessed design.Problem for whichever engine
// kind is selected, adapts the problem model into the engine's objective
// shape, and folds each engine's result back into a common SolutionSet.
package solver

import (
	"math"
	"sort"

	"github.com/cwbudde/sweepfront/internal/design"
)

// Kind identifies an engine.
type Kind string

const (
	KindBruteForce    Kind = "bruteforce"
	KindGA            Kind = "ga"
	KindGAMultiObj    Kind = "gamultiobj"
	KindParetoSearch  Kind = "paretosearch"
	KindParticleSwarm Kind = "particleswarm"
	KindMayfly        Kind = "mayfly"
)

// Config carries the engine-independent knobs of one run.
type Config struct {
	// MaxIterations is the generation/iteration budget. Engines fall back to
	// their own defaults when it is zero.
	MaxIterations int
	// PopSize is the population or swarm size.
	PopSize int
	// Seed makes runs reproducible.
	Seed int64
	// NSplit bounds the rows handed to Evaluate per call; 0 disables
	// chunking.
	NSplit int
	// Observer receives progress events; nil installs LogObserver.
	Observer Observer
}

// Engine is one external optimization capability. Implementations normalize
// their library's calling convention into this one and declare what they can
// handle rather than failing mid-run.
type Engine interface {
	Kind() Kind
	// SupportsIntegers reports whether the engine honors integer-constrained
	// columns. Kinds that do not are rejected before any engine work when
	// the problem carries integer columns.
	SupportsIntegers() bool
	// Optimize runs the engine to completion. report emits one progress
	// event per engine iteration and never stops the run. A degenerate run
	// (engine gave up, did not converge) is reported through
	// RawResult.Success, not through the error.
	Optimize(obj BatchObjective, p *design.Problem, cfg Config, report func(iter int)) (*RawResult, error)
}

var engines = map[Kind]Engine{
	KindGA:            gaEngine{},
	KindGAMultiObj:    gaMultiObjEngine{},
	KindParetoSearch:  paretoSearchEngine{},
	KindParticleSwarm: particleSwarmEngine{},
	KindMayfly:        mayflyEngine{},
}

// Kinds lists every available engine kind, bruteforce included, sorted.
func Kinds() []Kind {
	out := []Kind{KindBruteForce}
	for k := range engines {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Solve dispatches to the selected engine kind and normalizes its result.
// Malformed configuration fails fast with ValidationError before any engine
// work; engine non-convergence comes back as Converged == false with the
// best-effort solution set.
func Solve(kind Kind, cfg Config, p *design.Problem, m Model) (*SolutionSet, error) {
	if p == nil || p.NVar == 0 {
		return nil, &design.ValidationError{Reason: "no preprocessed problem"}
	}
	if m.Evaluate == nil {
		return nil, &design.ValidationError{Reason: "missing evaluate collaborator"}
	}

	obs := cfg.Observer
	if obs == nil {
		obs = LogObserver{}
	}

	if kind == KindBruteForce {
		return solveBruteForce(cfg, p, m, obs)
	}

	eng, ok := engines[kind]
	if !ok {
		return nil, &design.ValidationError{Reason: "unknown solver kind " + string(kind)}
	}
	if len(p.IntCols) > 0 && !eng.SupportsIntegers() {
		return nil, &design.ValidationError{Reason: string(kind) + " cannot handle integer-constrained variables"}
	}
	if m.Objective == nil {
		return nil, &design.ValidationError{Reason: "missing objective collaborator"}
	}

	counter := &evalCounter{}
	obj := newBatchObjective(p, m, cfg, counter)
	report := func(iter int) {
		obs.Progress(Event{Phase: string(kind), Iteration: iter, Evals: counter.total()})
	}

	raw, err := eng.Optimize(obj, p, cfg, report)
	if err != nil {
		return nil, err
	}

	set := &SolutionSet{
		NSol:      len(raw.Points),
		NSim:      counter.total(),
		Converged: raw.Success && allFinite(raw.Points) && allFinite(raw.Objectives),
		Info: Info{
			Message:     raw.Message,
			Generations: raw.Generations,
			Iterations:  raw.Iterations,
		},
	}

	// The final solution set comes from re-running the evaluate pipeline
	// (not the objective) on the returned points.
	if len(raw.Points) > 0 {
		fields, err := evaluateChunked(p, m.Evaluate, raw.Points, cfg.NSplit, nil)
		if err != nil {
			return nil, err
		}
		set.Solutions = make([]Solution, len(raw.Points))
		for i, pt := range raw.Points {
			set.Solutions[i] = Solution{
				Inputs: p.UnscalePoint(pt),
				Fields: fields.Row(i),
			}
		}
	}
	return set, nil
}

func allFinite(rows [][]float64) bool {
	for _, row := range rows {
		for _, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return false
			}
		}
	}
	return true
}
