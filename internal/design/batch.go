package design

// Batch is a vectorized block of physical input values: one column per input
// name, every column of length N. Scalar constants are broadcast so
// collaborators see a uniform shape regardless of which inputs are swept.
type Batch struct {
	N      int
	Values map[string][]float64
}

// NewBatch allocates an empty batch for n rows.
func NewBatch(n int) Batch {
	return Batch{N: n, Values: make(map[string][]float64)}
}

// Slice returns the rows [lo, hi) of the batch. Columns share backing arrays
// with the parent; callers must not mutate them.
func (b Batch) Slice(lo, hi int) Batch {
	out := Batch{N: hi - lo, Values: make(map[string][]float64, len(b.Values))}
	for name, col := range b.Values {
		out.Values[name] = col[lo:hi]
	}
	return out
}

// Row extracts row i as a name-to-value map.
func (b Batch) Row(i int) map[string]float64 {
	row := make(map[string]float64, len(b.Values))
	for name, col := range b.Values {
		row[name] = col[i]
	}
	return row
}

// SelectionFunc filters candidate input rows. It is called exactly once over
// the full batch and must return one keep/drop flag per row.
type SelectionFunc func(inputs Batch, n int) ([]bool, error)
