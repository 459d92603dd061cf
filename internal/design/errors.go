package design

import "fmt"

// ValidationError reports a structurally invalid variable spec or solver
// configuration. It is always raised before any engine work starts; the
// caller must fix the input.
type ValidationError struct {
	Var    string // variable name, empty when the error is not tied to one
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Var != "" {
		return fmt.Sprintf("invalid data: variable %q: %s", e.Var, e.Reason)
	}
	return "invalid data: " + e.Reason
}

func (e *ValidationError) Is(target error) bool {
	_, ok := target.(*ValidationError)
	return ok
}

// ErrValidation can be used with errors.Is to match any ValidationError.
var ErrValidation = &ValidationError{}

// CapacityError reports that the cartesian expansion of initial points
// produced zero candidates or more than the configured maximum. It is raised
// before any evaluation occurs.
type CapacityError struct {
	NSweep int
	NMax   int
}

func (e *CapacityError) Error() string {
	if e.NSweep <= 0 {
		return "initial point expansion produced no candidates"
	}
	return fmt.Sprintf("initial point expansion produced %d candidates, limit is %d", e.NSweep, e.NMax)
}

func (e *CapacityError) Is(target error) bool {
	_, ok := target.(*CapacityError)
	return ok
}

// ErrCapacity can be used with errors.Is to match any CapacityError.
var ErrCapacity = &CapacityError{}
