package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oshokin/sos-beacon/internal/app"
	"github.com/oshokin/sos-beacon/internal/domain/beacon"
)

var (
	// copyAlert places the alert text on the clipboard as well.
	copyAlert bool

	// sosCmd composes and dispatches an emergency alert.
	sosCmd = &cobra.Command{
		Use:   "sos [note]",
		Short: "Compose and send an emergency alert.",
		Long: `Composes an alert from your name, last known position and the optional
note, and dispatches it through the best available channel. The attempt
is recorded in the incident history either way.

A missing position does not block the alert: the text then carries an
explicit "location unavailable" line instead.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithApp(func(ctx context.Context, application *app.App) error {
				note := strings.TrimSpace(strings.Join(args, " "))

				result := application.Engine.PressSOS(ctx, note)

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Alert %s via %s\n", result.Outcome, result.Channel)

				if result.Link != "" {
					fmt.Fprintln(out, result.Link)
				}

				if copyAlert {
					if application.Engine.CopyAlert(ctx, note) {
						fmt.Fprintln(out, "Alert text copied to clipboard.")
					}
				}

				if result.Outcome == beacon.OutcomeFailed {
					return result.Err
				}

				return nil
			})
		},
	}
)

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	sosCmd.Flags().BoolVar(&copyAlert, "copy", false, "also copy the alert text to the clipboard")

	rootCmd.AddCommand(sosCmd)
}
