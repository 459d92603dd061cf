// Package bench carries small built-in problem models so the CLI can run end
// to end without user code: classic benchmark surfaces wired to the solver's
// collaborator contracts.
package bench

import (
	"math"
	"sort"

	"github.com/cwbudde/sweepfront/internal/design"
	"github.com/cwbudde/sweepfront/internal/moo"
	"github.com/cwbudde/sweepfront/internal/solver"
)

// Benchmark bundles a model with the variable specs it expects.
type Benchmark struct {
	Name      string
	Variables []design.VariableSpec
	Model     solver.Model
}

// Lookup returns the named benchmark, or false for an unknown name.
func Lookup(name string) (Benchmark, bool) {
	switch name {
	case "sphere":
		return sphereBenchmark(), true
	case "zdt1":
		return zdt1Benchmark(), true
	default:
		return Benchmark{}, false
	}
}

// Names lists the available benchmark names, sorted.
func Names() []string {
	names := []string{"sphere", "zdt1"}
	sort.Strings(names)
	return names
}

// sphereBenchmark is the single-objective bowl: fsum = x^2 + y^2.
func sphereBenchmark() Benchmark {
	return Benchmark{
		Name: "sphere",
		Variables: []design.VariableSpec{
			{Name: "x", Type: design.TypeFloat, Scale: design.ScaleLin, LB: -5, UB: 5, Value: design.F(0), Seeds: []float64{-4, 0, 4}},
			{Name: "y", Type: design.TypeFloat, Scale: design.ScaleLin, LB: -5, UB: 5, Value: design.F(0), Seeds: []float64{-4, 0, 4}},
		},
		Model: solver.Model{
			Evaluate: func(inputs design.Batch, n int) (solver.Fields, error) {
				col := make([]float64, n)
				for i := 0; i < n; i++ {
					x, y := inputs.Values["x"][i], inputs.Values["y"][i]
					col[i] = x*x + y*y
				}
				return solver.Fields{"fsum": col}, nil
			},
			Objective: func(evaluated solver.Fields, n int) ([][]float64, error) {
				out := make([][]float64, n)
				for i := range out {
					out[i] = []float64{evaluated["fsum"][i]}
				}
				return out, nil
			},
			SelectBest: keepNonDominated("fsum"),
		},
	}
}

// zdt1Benchmark is the two-objective ZDT1 surface over four variables, with a
// convex Pareto front f2 = 1 - sqrt(f1).
func zdt1Benchmark() Benchmark {
	names := []string{"x1", "x2", "x3", "x4"}
	vars := make([]design.VariableSpec, len(names))
	for i, n := range names {
		vars[i] = design.VariableSpec{
			Name: n, Type: design.TypeFloat, Scale: design.ScaleLin,
			LB: 0, UB: 1, Value: design.F(0.5), Seeds: []float64{0.1, 0.9},
		}
	}
	return Benchmark{
		Name:      "zdt1",
		Variables: vars,
		Model: solver.Model{
			Evaluate: func(inputs design.Batch, n int) (solver.Fields, error) {
				f1 := make([]float64, n)
				f2 := make([]float64, n)
				for i := 0; i < n; i++ {
					x1 := inputs.Values["x1"][i]
					g := 1.0
					for _, name := range names[1:] {
						g += 9 * inputs.Values[name][i] / float64(len(names)-1)
					}
					f1[i] = x1
					f2[i] = g * (1 - math.Sqrt(x1/g))
				}
				return solver.Fields{"f1": f1, "f2": f2}, nil
			},
			Objective: func(evaluated solver.Fields, n int) ([][]float64, error) {
				out := make([][]float64, n)
				for i := range out {
					out[i] = []float64{evaluated["f1"][i], evaluated["f2"][i]}
				}
				return out, nil
			},
			SelectBest: keepNonDominated("f1", "f2"),
		},
	}
}

// keepNonDominated builds a brute-force selection that keeps the rows no
// other row Pareto-dominates over the named fields.
func keepNonDominated(fields ...string) solver.SelectBestFunc {
	return func(evaluated solver.Fields, n int) ([]bool, error) {
		objs := make([][]float64, n)
		for i := 0; i < n; i++ {
			row := make([]float64, len(fields))
			for j, f := range fields {
				row[j] = evaluated[f][i]
			}
			objs[i] = row
		}
		return moo.FilterNonDominated(objs), nil
	}
}
