// cmd/lifecycle-cli/activities.go
package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"candidate-lifecycle/pkg/registry"

	"github.com/spf13/cobra"
)

func newActivitiesCmd() *cobra.Command {
	var (
		path     string
		asJSON   bool
		validate bool
	)

	cmd := &cobra.Command{
		Use:   "activities",
		Short: "List or validate the registered job types",
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg, err := loadActivities(path)
			if err != nil {
				return err
			}

			if validate {
				if err := reg.Validate(); err != nil {
					return fmt.Errorf("registry validation failed: %w", err)
				}
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "Registry validation passed. Found %d activities.\n", len(reg.Activities))
				return err
			}

			if asJSON {
				data, err := json.MarshalIndent(reg, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal JSON: %w", err)
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "TASK TYPE\tVERSION\tTIMEOUT\tRETRIES\tERROR CODES")
			for _, a := range reg.Activities {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", a.TaskType, a.Version, a.Timeout, a.Retries, strings.Join(a.ErrorCodes, ","))
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "Registry file (defaults to the built-in registry)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the registry as JSON")
	cmd.Flags().BoolVar(&validate, "validate", false, "Validate the registry and exit")
	return cmd
}

func loadActivities(path string) (*registry.ActivityRegistry, error) {
	if path == "" {
		return registry.Default()
	}
	reg, err := registry.LoadRegistry(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load registry: %w", err)
	}
	return reg, nil
}
