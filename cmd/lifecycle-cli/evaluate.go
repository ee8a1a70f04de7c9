// cmd/lifecycle-cli/evaluate.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"candidate-lifecycle/internal/candidates"
	"candidate-lifecycle/internal/common/config"
	"candidate-lifecycle/internal/common/database"
	"candidate-lifecycle/internal/common/logger"
	"candidate-lifecycle/internal/lifecycle"

	"github.com/spf13/cast"
	"github.com/spf13/cobra"
)

type evaluation struct {
	Snapshot *lifecycle.LifecycleSnapshot `json:"snapshot"`
	Insights []lifecycle.Insight          `json:"insights"`
}

type evaluateOptions struct {
	candidateFile string
	candidateID   string
	configFile    string
	now           string
	outputFile    string
}

func newEvaluateCmd() *cobra.Command {
	opts := &evaluateOptions{}

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Compute the lifecycle snapshot and insights for one candidate",
		Long:  "Evaluate reads a candidate record from a JSON file (--candidate) or from the candidate store (--id) and prints its lifecycle snapshot and insights as JSON.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runEvaluate(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.candidateFile, "candidate", "c", "", "Path to a candidate record JSON file")
	cmd.Flags().StringVar(&opts.candidateID, "id", "", "Candidate id to load from Postgres/Redis")
	cmd.Flags().StringVar(&opts.configFile, "config", "", "Config file used with --id (default: configs/config.yaml lookup)")
	cmd.Flags().StringVar(&opts.now, "now", "", "Evaluation time (RFC3339 or YYYY-MM-DD, default: current UTC time)")
	cmd.Flags().StringVarP(&opts.outputFile, "out", "o", "", "Write JSON to this file instead of stdout")
	cmd.MarkFlagsMutuallyExclusive("candidate", "id")
	cmd.MarkFlagsOneRequired("candidate", "id")

	return cmd
}

func runEvaluate(cmd *cobra.Command, opts *evaluateOptions) error {
	now, err := parseNow(opts.now)
	if err != nil {
		return err
	}

	candidate, err := loadCandidate(cmd.Context(), opts)
	if err != nil {
		return err
	}
	if !candidate.Present() {
		return fmt.Errorf("candidate record has no id")
	}

	snapshot, insights := lifecycle.Evaluate(candidate, now)

	data, err := json.MarshalIndent(evaluation{Snapshot: snapshot, Insights: insights}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if opts.outputFile != "" {
		if err := os.WriteFile(opts.outputFile, data, 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Output: %s\n", opts.outputFile)
		return nil
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}

func parseNow(value string) (time.Time, error) {
	if value == "" {
		return time.Now().UTC(), nil
	}
	now, err := cast.ToTimeInDefaultLocationE(value, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --now %q: %w", value, err)
	}
	return now.UTC(), nil
}

func loadCandidate(ctx context.Context, opts *evaluateOptions) (*lifecycle.Candidate, error) {
	if opts.candidateFile != "" {
		data, err := os.ReadFile(opts.candidateFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read candidate file: %w", err)
		}
		c, err := lifecycle.ParseCandidateJSON(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse candidate file: %w", err)
		}
		return c, nil
	}
	return fetchCandidate(ctx, opts)
}

func fetchCandidate(ctx context.Context, opts *evaluateOptions) (*lifecycle.Candidate, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig(opts.configFile)
	if err != nil {
		return nil, err
	}

	log := logger.NewStructured("warn", "console")

	pg, err := database.NewPostgres(cfg.Database.Postgres)
	if err != nil {
		return nil, err
	}
	defer pg.Close()

	rdb, err := database.NewRedis(cfg.Database.Redis)
	if err != nil {
		return nil, err
	}
	defer rdb.Close()

	repo := candidates.NewRepository(pg.GetDB(), rdb.GetClient(), cfg.Lifecycle.CacheTTLDuration(), log)
	return candidates.NewResolver(repo, log).Resolve(ctx, opts.candidateID, nil)
}

// loadConfig reads path when given, else the standard config search path.
func loadConfig(path string) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if path != "" {
		cfg, err = config.LoadFromFile(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}
