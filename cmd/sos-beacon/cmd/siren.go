package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oshokin/sos-beacon/internal/app"
)

// sirenCmd sounds the siren until interrupted.
var sirenCmd = &cobra.Command{
	Use:   "siren",
	Short: "Sound a loud swept-tone siren until interrupted.",
	Long: `Sounds a continuous swept-tone siren through the host audio output to
attract attention. Stop with Ctrl+C.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runWithApp(func(ctx context.Context, application *app.App) error {
			on, err := application.Engine.ToggleSiren(ctx)
			if err != nil {
				return err
			}

			if !on {
				// Cannot happen on a fresh engine, but keep the contract honest.
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Siren on, press Ctrl+C to stop.")

			<-ctx.Done()

			// Close stops the siren synchronously.
			return nil
		})
	},
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.AddCommand(sirenCmd)
}
