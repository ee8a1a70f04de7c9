// cmd/lifecycle-cli/stages.go
package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"candidate-lifecycle/internal/lifecycle"

	"github.com/spf13/cobra"
)

func newStagesCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "stages",
		Short: "List the pipeline stages in order",
		RunE: func(cmd *cobra.Command, _ []string) error {
			stages := append(lifecycle.Stages(), lifecycle.RejectedStage())

			if asJSON {
				data, err := json.MarshalIndent(stages, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal JSON: %w", err)
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "#\tID\tNAME\tDATE FIELD\tESTIMATE")
			for _, s := range stages {
				position := fmt.Sprint(s.Position + 1)
				if s.Position < 0 {
					position = "-"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", position, s.ID, s.Name, s.DateField, s.EstimatedDuration)
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the stage registry as JSON")
	return cmd
}
