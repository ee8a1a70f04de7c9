// cmd/lifecycle-cli/cache.go
package main

import (
	"fmt"

	"candidate-lifecycle/internal/candidates"
	"candidate-lifecycle/internal/common/database"
	"candidate-lifecycle/internal/common/logger"

	"github.com/spf13/cobra"
)

func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the candidate record cache",
	}
	cmd.AddCommand(newCachePurgeCmd())
	return cmd
}

func newCachePurgeCmd() *cobra.Command {
	var (
		configFile  string
		candidateID string
	)

	cmd := &cobra.Command{
		Use:   "purge",
		Short: "Drop cached candidate records so the next lookup reads Postgres",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(configFile)
			if err != nil {
				return err
			}

			rdb, err := database.NewRedis(cfg.Database.Redis)
			if err != nil {
				return err
			}
			defer rdb.Close()

			ctx := cmd.Context()
			if candidateID != "" {
				repo := candidates.NewRepository(nil, rdb.GetClient(), cfg.Lifecycle.CacheTTLDuration(), logger.NewNoOpLogger())
				if err := repo.Invalidate(ctx, candidateID); err != nil {
					return err
				}
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "Purged cached record for %s\n", candidateID)
				return err
			}

			removed, err := rdb.DeleteByPrefix(ctx, candidates.CacheKeyPrefix)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Purged %d cached records\n", removed)
			return err
		},
	}

	cmd.Flags().StringVar(&configFile, "config", "", "Config file (defaults to configs/config.yaml)")
	cmd.Flags().StringVar(&candidateID, "id", "", "Purge a single candidate")
	return cmd
}
