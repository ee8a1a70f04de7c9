// cmd/lifecycle-cli/main.go

// Package main provides lifecycle-cli, an offline evaluator for candidate records.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "lifecycle-cli",
		Short:         "Candidate lifecycle evaluator",
		Long:          "lifecycle-cli computes hiring-pipeline snapshots and insights for a candidate record, from a JSON file or the candidate store.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(newEvaluateCmd(), newStagesCmd(), newActivitiesCmd(), newCacheCmd())
	return rootCmd
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
