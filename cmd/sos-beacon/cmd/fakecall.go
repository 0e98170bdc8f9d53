package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/oshokin/sos-beacon/internal/app"
	"github.com/oshokin/sos-beacon/internal/service/engine"
)

var (
	// fakeCallDelay is the requested countdown in seconds; zero keeps the default.
	fakeCallDelay int

	// fakeCallCmd schedules a fake incoming call.
	fakeCallCmd = &cobra.Command{
		Use:   "fakecall",
		Short: "Schedule a fake incoming call.",
		Long: `Arms a countdown after which the device rings like an incoming call,
giving you a believable excuse to leave. The delay is clamped to a
plausible range. Ctrl+C before the ring cancels without a trace.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWithApp(func(ctx context.Context, application *app.App) error {
				seconds := application.Engine.ArmFakeCall(ctx, fakeCallDelay)

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Call in %d seconds, press Ctrl+C to cancel.\n", seconds)

				for {
					select {
					case notice := <-application.Engine.Notices():
						if notice.Kind == engine.NoticeRing {
							fmt.Fprintln(out, notice.Message)

							// Let the ring tone finish before tearing down.
							select {
							case <-time.After(2 * time.Second):
							case <-ctx.Done():
							}

							return nil
						}
					case <-ctx.Done():
						application.Engine.CancelFakeCall(context.Background())
						fmt.Fprintln(out, "Cancelled.")

						return nil
					}
				}
			})
		},
	}
)

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	fakeCallCmd.Flags().IntVar(&fakeCallDelay, "in", 0, "seconds until the call; 0 uses the configured default")

	rootCmd.AddCommand(fakeCallCmd)
}
