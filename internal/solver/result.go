package solver

// Solution is one reported candidate: the physical (unscaled) variable values
// merged with the constant inputs, plus whatever fields the evaluation
// collaborator computed for it.
type Solution struct {
	Inputs map[string]float64 `json:"inputs"`
	Fields map[string]float64 `json:"fields,omitempty"`
}

// Info is the free-form engine report attached to a solution set. Exactly one
// of Generations/Iterations is set, matching the engine's own unit.
type Info struct {
	Message     string `json:"message,omitempty"`
	Generations int    `json:"generations,omitempty"`
	Iterations  int    `json:"iterations,omitempty"`
}

// SolutionSet is the normalized result of one Solve call, the run's terminal
// artifact. Non-convergence is a reportable outcome, not an error: Converged
// is false and Solutions still carries the engine's best effort.
type SolutionSet struct {
	Solutions []Solution `json:"solutions"`
	NSol      int        `json:"nSol"`
	NSim      int        `json:"nSim"`
	Converged bool       `json:"converged"`
	Info      Info       `json:"info"`
}

// RawResult is what an engine hands back before normalization: best scaled
// points, their objective values, and the engine's own status report.
type RawResult struct {
	Points     [][]float64
	Objectives [][]float64
	// Success is the engine's own status; the adapter combines it with a
	// numeric check on Points/Objectives to decide convergence.
	Success     bool
	Generations int
	Iterations  int
	Message     string
}
