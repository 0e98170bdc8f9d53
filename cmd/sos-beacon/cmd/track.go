package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oshokin/sos-beacon/internal/app"
	"github.com/oshokin/sos-beacon/internal/service/engine"
)

// trackCmd runs a continuous tracking session until interrupted.
var trackCmd = &cobra.Command{
	Use:   "track",
	Short: "Track your position continuously until interrupted.",
	Long: `Starts a continuous tracking session and prints accepted position
updates as they arrive. Movement below the jitter threshold is kept in
the cache silently; update failures are reported but never end the
session. Stop with Ctrl+C.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runWithApp(func(ctx context.Context, application *app.App) error {
			if err := application.Engine.SetTracking(ctx, true); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Tracking, press Ctrl+C to stop.")

			for {
				select {
				case notice := <-application.Engine.Notices():
					if notice.Kind == engine.NoticeFix || notice.Kind == engine.NoticeFailure {
						fmt.Fprintln(out, notice.Message)
					}
				case <-ctx.Done():
					return application.Engine.SetTracking(context.Background(), false)
				}
			}
		})
	},
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.AddCommand(trackCmd)
}
