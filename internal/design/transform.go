package design

import "math"

// ScaleKind selects the coordinate transform between physical values and the
// space the optimizer searches in.
type ScaleKind string

const (
	// ScaleLin leaves values untouched.
	ScaleLin ScaleKind = "lin"
	// ScaleLog makes the optimizer work in base-10 log space.
	ScaleLog ScaleKind = "log"
	// ScaleExp is the inverse of ScaleLog: the optimizer works in 10^x space.
	ScaleExp ScaleKind = "exp"
	// scaleRank maps a value to its 1-based rank within an allowed set.
	// It is used internally for integer variables and never appears in specs.
	scaleRank ScaleKind = "rank"
)

// Transform is a pure, stateless pair of inverse mappings between physical
// values and scaled optimizer coordinates. Unscale(Scale(x)) == x for every x
// in the variable's legal domain (exact for lin/rank, floating-point
// tolerance for log/exp).
type Transform struct {
	kind ScaleKind
	set  []float64 // allowed values, rank kind only
}

// LinTransform returns the identity transform.
func LinTransform() Transform { return Transform{kind: ScaleLin} }

// LogTransform returns the base-10 log transform (optimizer in log space).
func LogTransform() Transform { return Transform{kind: ScaleLog} }

// ExpTransform returns the base-10 exponential transform.
func ExpTransform() Transform { return Transform{kind: ScaleExp} }

// RankTransform returns the transform for an enumerated set: Scale maps a
// member to its 1-based rank, Unscale maps a (possibly fractional) rank back
// to the nearest member. Duplicates in set are dropped, keeping the first
// occurrence so ranks stay stable.
func RankTransform(set []float64) Transform {
	deduped := make([]float64, 0, len(set))
	for _, v := range set {
		seen := false
		for _, d := range deduped {
			if d == v {
				seen = true
				break
			}
		}
		if !seen {
			deduped = append(deduped, v)
		}
	}
	return Transform{kind: scaleRank, set: deduped}
}

// Kind returns the transform's scale kind.
func (t Transform) Kind() ScaleKind { return t.kind }

// SetSize returns the number of allowed values for a rank transform, 0 for
// any other kind.
func (t Transform) SetSize() int { return len(t.set) }

// Scale maps a physical value into optimizer coordinates. For rank
// transforms a value outside the allowed set yields NaN; Preprocess validates
// membership before any Scale call.
func (t Transform) Scale(x float64) float64 {
	switch t.kind {
	case ScaleLog:
		return math.Log10(x)
	case ScaleExp:
		return math.Pow(10, x)
	case scaleRank:
		for i, v := range t.set {
			if v == x {
				return float64(i + 1)
			}
		}
		return math.NaN()
	default:
		return x
	}
}

// Unscale maps an optimizer coordinate back to a physical value. Rank
// coordinates are rounded and clamped into the set, so engines that propose
// fractional ranks still decode to a legal member.
func (t Transform) Unscale(x float64) float64 {
	switch t.kind {
	case ScaleLog:
		return math.Pow(10, x)
	case ScaleExp:
		return math.Log10(x)
	case scaleRank:
		i := int(math.Round(x)) - 1
		if i < 0 {
			i = 0
		}
		if i >= len(t.set) {
			i = len(t.set) - 1
		}
		return t.set[i]
	default:
		return x
	}
}
