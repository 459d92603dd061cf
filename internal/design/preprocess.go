package design

import (
	"log/slog"
)

// Problem is the parsed, solver-ready representation of a variable list.
// It is derived once per run and consumed read-only by the solver layer.
type Problem struct {
	// Names holds the non-scalar variable names in declaration order; LB, UB
	// and Transforms are aligned with it, one entry per column.
	Names      []string
	LB, UB     []float64
	Transforms []Transform

	// IntCols lists the column indices (0-based) that are integer-scaled.
	IntCols []int

	// Constants maps scalar-variable names to their fixed values.
	Constants map[string]float64

	// InitialPoints holds the scaled candidate rows that survived grid
	// expansion and predicate filtering; every row has len(LB) columns.
	InitialPoints [][]float64

	// NVar is the number of non-scalar variables, NSweep the number of
	// surviving candidate rows.
	NVar   int
	NSweep int
}

// UnscaleRows converts scaled candidate rows back to physical inputs, merged
// with the constant inputs (broadcast to the row count).
func (p *Problem) UnscaleRows(points [][]float64) Batch {
	n := len(points)
	b := NewBatch(n)
	for c, name := range p.Names {
		col := make([]float64, n)
		for r, row := range points {
			col[r] = p.Transforms[c].Unscale(row[c])
		}
		b.Values[name] = col
	}
	for name, v := range p.Constants {
		col := make([]float64, n)
		for r := range col {
			col[r] = v
		}
		b.Values[name] = col
	}
	return b
}

// UnscalePoint converts a single scaled row to physical inputs plus constants.
func (p *Problem) UnscalePoint(point []float64) map[string]float64 {
	out := make(map[string]float64, len(p.Names)+len(p.Constants))
	for c, name := range p.Names {
		out[name] = p.Transforms[c].Unscale(point[c])
	}
	for name, v := range p.Constants {
		out[name] = v
	}
	return out
}

// Preprocess parses variable specs in declaration order into a solver-ready
// Problem: scaled bounds, integer columns, constant inputs, per-column
// unscale transforms, and the filtered cartesian grid of initial points.
//
// keep is invoked exactly once over the full candidate batch; a nil keep
// accepts every row. nMax bounds the surviving row count (CapacityError
// otherwise).
func Preprocess(specs []VariableSpec, nMax int, keep SelectionFunc) (*Problem, error) {
	p := &Problem{Constants: make(map[string]float64)}

	// Scaled seed vectors per column, for grid expansion.
	var seeds [][]float64

	for i := range specs {
		s := &specs[i]
		if err := s.Validate(); err != nil {
			return nil, err
		}

		if s.Type == TypeScalar {
			p.Constants[s.Name] = *s.Value
			continue
		}

		t := s.transform()
		p.Names = append(p.Names, s.Name)
		p.Transforms = append(p.Transforms, t)

		switch s.Type {
		case TypeInteger:
			p.IntCols = append(p.IntCols, len(p.Names)-1)
			p.LB = append(p.LB, 1)
			p.UB = append(p.UB, float64(t.SetSize()))
		case TypeFloat:
			p.LB = append(p.LB, t.Scale(s.LB))
			p.UB = append(p.UB, t.Scale(s.UB))
		}

		col := s.Seeds
		if len(col) == 0 {
			col = []float64{*s.Value}
		}
		scaled := make([]float64, len(col))
		for j, v := range col {
			scaled[j] = t.Scale(v)
		}
		seeds = append(seeds, scaled)
	}

	p.NVar = len(p.Names)

	grid := expandGrid(seeds)
	slog.Debug("Expanded initial point grid", "variables", p.NVar, "candidates", len(grid))

	if keep != nil && p.NVar > 0 {
		inputs := p.UnscaleRows(grid)
		mask, err := keep(inputs, len(grid))
		if err != nil {
			return nil, err
		}
		if len(mask) != len(grid) {
			return nil, &ValidationError{Reason: "selection predicate returned a mask of the wrong length"}
		}
		kept := grid[:0]
		for r, ok := range mask {
			if ok {
				kept = append(kept, grid[r])
			}
		}
		grid = kept
	}

	p.InitialPoints = grid
	p.NSweep = len(grid)

	if p.NSweep <= 0 || p.NSweep > nMax {
		return nil, &CapacityError{NSweep: p.NSweep, NMax: nMax}
	}
	if p.NVar == 0 {
		return nil, &ValidationError{Reason: "no optimization variables declared"}
	}

	slog.Info("Preprocessed variables",
		"variables", p.NVar,
		"constants", len(p.Constants),
		"integer_columns", len(p.IntCols),
		"initial_points", p.NSweep,
	)
	return p, nil
}

// expandGrid forms the full cartesian product of the seed vectors: every
// combination of one seed value per variable, in declaration order. Zero
// variables yield a single empty row.
func expandGrid(seeds [][]float64) [][]float64 {
	total := 1
	for _, s := range seeds {
		total *= len(s)
	}
	grid := make([][]float64, 0, total)

	row := make([]float64, len(seeds))
	var walk func(col int)
	walk = func(col int) {
		if col == len(seeds) {
			grid = append(grid, append([]float64(nil), row...))
			return
		}
		for _, v := range seeds[col] {
			row[col] = v
			walk(col + 1)
		}
	}
	walk(0)
	return grid
}
