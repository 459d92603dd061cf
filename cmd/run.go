package main

import (
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/cwbudde/sweepfront/internal/bench"
	"github.com/cwbudde/sweepfront/internal/design"
	"github.com/cwbudde/sweepfront/internal/solver"
	"github.com/cwbudde/sweepfront/internal/store"
	"github.com/cwbudde/sweepfront/internal/study"
)

var (
	studyPath string
	dataDir   string
	noPersist bool
	kindFlag  string
	seedFlag  int64
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one optimization study",
	Long: `Loads a study file, expands the variable specs into a scaled problem,
drives the configured engine over the model and prints the resulting
solution set. Unless --no-persist is set, the run record and a progress
trace are written under the data directory.`,
	RunE: runStudy,
}

func init() {
	runCmd.Flags().StringVar(&studyPath, "study", "", "Study file path (required)")
	runCmd.Flags().StringVar(&dataDir, "data-dir", "./data", "Base directory for run storage")
	runCmd.Flags().BoolVar(&noPersist, "no-persist", false, "Skip writing the run record and trace")
	runCmd.Flags().StringVar(&kindFlag, "solver", "", "Override the study's solver kind")
	runCmd.Flags().Int64Var(&seedFlag, "seed", 0, "Override the study's random seed")

	runCmd.MarkFlagRequired("study")
	rootCmd.AddCommand(runCmd)
}

func runStudy(cmd *cobra.Command, args []string) error {
	s, err := study.Load(studyPath)
	if err != nil {
		return err
	}
	if kindFlag != "" {
		s.Solver.Kind = solver.Kind(kindFlag)
	}
	if seedFlag != 0 {
		s.Solver.Seed = seedFlag
	}

	b, ok := bench.Lookup(s.Model)
	if !ok {
		return fmt.Errorf("unknown model %q (available: %s)", s.Model, strings.Join(bench.Names(), ", "))
	}

	// Study variables replace the benchmark defaults when given.
	specs := b.Variables
	if len(s.Variables) > 0 {
		specs = s.Variables
	}

	slog.Info("Starting study", "model", s.Model, "kind", s.Solver.Kind, "variables", len(specs))

	problem, err := design.Preprocess(specs, s.NMax, nil)
	if err != nil {
		return err
	}

	cfg := s.Config()
	runID := uuid.New().String()

	var tw *store.TraceWriter
	if !noPersist {
		tw, err = store.NewTraceWriter(dataDir, runID, false)
		if err != nil {
			return err
		}
		defer tw.Close()
		cfg.Observer = solver.MultiObserver{solver.LogObserver{}, tw.Observer()}
	}

	start := time.Now()
	result, err := solver.Solve(s.Solver.Kind, cfg, problem, b.Model)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	slog.Info("Study complete",
		"elapsed", elapsed,
		"nSol", result.NSol,
		"nSim", result.NSim,
		"converged", result.Converged,
	)

	printSolutions(result)

	if noPersist {
		return nil
	}

	if err := tw.Flush(); err != nil {
		return err
	}

	st, err := store.NewFSStore(dataDir)
	if err != nil {
		return err
	}
	record := &store.RunRecord{
		RunID:     runID,
		Timestamp: time.Now(),
		Config: store.RunConfig{
			Model:   s.Model,
			Kind:    s.Solver.Kind,
			PopSize: cfg.PopSize,
			Iters:   cfg.MaxIterations,
			Seed:    cfg.Seed,
			NSplit:  cfg.NSplit,
			NSweep:  problem.NSweep,
		},
		Result: *result,
	}
	if err := st.SaveRun(record); err != nil {
		return err
	}

	fmt.Printf("\nRun %s saved under %s\n", runID, dataDir)
	return nil
}

// printSolutions writes the solution set as a table, inputs first, then the
// computed fields, both in stable name order.
func printSolutions(result *solver.SolutionSet) {
	if result.NSol == 0 {
		fmt.Println("No solutions.")
		return
	}

	inputNames := sortedKeys(result.Solutions[0].Inputs)
	fieldNames := sortedKeys(result.Solutions[0].Fields)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	header := append(append([]string{}, inputNames...), fieldNames...)
	fmt.Fprintln(w, strings.ToUpper(strings.Join(header, "\t")))

	for _, sol := range result.Solutions {
		cells := make([]string, 0, len(header))
		for _, name := range inputNames {
			cells = append(cells, fmt.Sprintf("%.6g", sol.Inputs[name]))
		}
		for _, name := range fieldNames {
			cells = append(cells, fmt.Sprintf("%.6g", sol.Fields[name]))
		}
		fmt.Fprintln(w, strings.Join(cells, "\t"))
	}
	w.Flush()

	status := "converged"
	if !result.Converged {
		status = "not converged"
	}
	fmt.Printf("\n%d solution(s), %d simulation(s), %s", result.NSol, result.NSim, status)
	if result.Info.Message != "" {
		fmt.Printf(" (%s)", result.Info.Message)
	}
	fmt.Println()
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
