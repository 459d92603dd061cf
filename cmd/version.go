package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cwbudde/sweepfront/internal/bench"
	"github.com/cwbudde/sweepfront/internal/solver"
)

var version = "0.1.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("sweepfront version %s\n", version)

		kinds := make([]string, 0, len(solver.Kinds()))
		for _, k := range solver.Kinds() {
			kinds = append(kinds, string(k))
		}
		fmt.Printf("solvers: %s\n", strings.Join(kinds, ", "))
		fmt.Printf("models: %s\n", strings.Join(bench.Names(), ", "))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
