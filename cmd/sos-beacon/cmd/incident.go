package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/oshokin/sos-beacon/internal/app"
)

var (
	// incidentLimit caps the number of history entries printed.
	incidentLimit int

	// incidentCmd groups incident history access.
	incidentCmd = &cobra.Command{
		Use:   "incident",
		Short: "Inspect the alert history.",
	}

	// incidentListCmd prints recent alert attempts, newest first.
	incidentListCmd = &cobra.Command{
		Use:   "list",
		Short: "List recent alert attempts, newest first.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWithApp(func(ctx context.Context, application *app.App) error {
				recent, err := application.Incidents.Recent(ctx, incidentLimit)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()

				if len(recent) == 0 {
					fmt.Fprintln(out, "No incidents yet.")

					return nil
				}

				for _, incident := range recent {
					position := "no position"
					if incident.Coordinate != nil {
						position = incident.Coordinate.String()
					}

					fmt.Fprintf(out, "%s  %-9s  %s", incident.Timestamp.Format(time.RFC3339), incident.Outcome, position)

					if incident.Note != "" {
						fmt.Fprintf(out, "  note: %s", incident.Note)
					}

					fmt.Fprintln(out)
				}

				return nil
			})
		},
	}
)

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	incidentListCmd.Flags().IntVar(&incidentLimit, "limit", 20, "maximum number of entries to print")

	incidentCmd.AddCommand(incidentListCmd)
	rootCmd.AddCommand(incidentCmd)
}
