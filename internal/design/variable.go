package design

// VarType tags the variant of a variable spec.
type VarType string

const (
	// TypeScalar is a fixed, non-optimized value. It contributes to the
	// constant-input set only.
	TypeScalar VarType = "scalar"
	// TypeInteger is an enumerated discrete set of allowed values.
	TypeInteger VarType = "integer"
	// TypeFloat is a continuous variable with lin/log/exp scaling.
	TypeFloat VarType = "float"
)

// VariableSpec declares one design variable. Which fields apply depends on
// Type:
//
//	scalar:  Value
//	integer: Set (>= 2 distinct members), Value (member), Seeds (members)
//	float:   LB <= UB, Scale, Value (in bounds), Seeds (in bounds)
//
// Specs are caller-supplied and treated as immutable for one run.
type VariableSpec struct {
	Name  string    `yaml:"name"`
	Type  VarType   `yaml:"type"`
	Scale ScaleKind `yaml:"scale,omitempty"`
	Value *float64  `yaml:"value"`
	Set   []float64 `yaml:"set,omitempty"`
	Seeds []float64 `yaml:"seeds,omitempty"`
	LB    float64   `yaml:"lb,omitempty"`
	UB    float64   `yaml:"ub,omitempty"`
}

// Validate checks the spec at construction time so malformed inputs fail
// before any heavy computation. Out-of-domain defaults or seeds are a
// validation failure, never silently clamped.
func (s *VariableSpec) Validate() error {
	if s.Name == "" {
		return &ValidationError{Reason: "variable name cannot be empty"}
	}
	if s.Value == nil {
		return &ValidationError{Var: s.Name, Reason: "exactly one default value is required"}
	}

	switch s.Type {
	case TypeScalar:
		if len(s.Set) > 0 || len(s.Seeds) > 0 {
			return &ValidationError{Var: s.Name, Reason: "scalar takes a single value, not a set or seeds"}
		}
		return nil

	case TypeInteger:
		t := RankTransform(s.Set)
		if t.SetSize() < 2 {
			return &ValidationError{Var: s.Name, Reason: "allowed set needs at least 2 distinct members"}
		}
		if !memberOf(*s.Value, s.Set) {
			return &ValidationError{Var: s.Name, Reason: "default value is not a member of the allowed set"}
		}
		for _, v := range s.Seeds {
			if !memberOf(v, s.Set) {
				return &ValidationError{Var: s.Name, Reason: "seed value is not a member of the allowed set"}
			}
		}
		return nil

	case TypeFloat:
		switch s.Scale {
		case ScaleLin, ScaleExp:
		case ScaleLog:
			if s.LB <= 0 {
				return &ValidationError{Var: s.Name, Reason: "log scale requires a positive lower bound"}
			}
		case "":
			return &ValidationError{Var: s.Name, Reason: "float variable needs a scale (lin, log, exp)"}
		default:
			return &ValidationError{Var: s.Name, Reason: "unknown scale kind " + string(s.Scale)}
		}
		if s.UB < s.LB {
			return &ValidationError{Var: s.Name, Reason: "upper bound is below lower bound"}
		}
		if *s.Value < s.LB || *s.Value > s.UB {
			return &ValidationError{Var: s.Name, Reason: "default value is outside bounds"}
		}
		for _, v := range s.Seeds {
			if v < s.LB || v > s.UB {
				return &ValidationError{Var: s.Name, Reason: "seed value is outside bounds"}
			}
		}
		return nil

	default:
		return &ValidationError{Var: s.Name, Reason: "unknown variable type " + string(s.Type)}
	}
}

// transform builds the scale transform for a validated non-scalar spec.
func (s *VariableSpec) transform() Transform {
	if s.Type == TypeInteger {
		return RankTransform(s.Set)
	}
	switch s.Scale {
	case ScaleLog:
		return LogTransform()
	case ScaleExp:
		return ExpTransform()
	default:
		return LinTransform()
	}
}

func memberOf(x float64, set []float64) bool {
	for _, v := range set {
		if v == x {
			return true
		}
	}
	return false
}

// F is shorthand for taking the address of a literal default value.
func F(v float64) *float64 { return &v }
