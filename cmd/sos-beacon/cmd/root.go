package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/sos-beacon/internal/app"
	"github.com/oshokin/sos-beacon/internal/config"
	"github.com/oshokin/sos-beacon/internal/logger"
	"github.com/oshokin/sos-beacon/internal/version"
)

var (
	// configPath stores the configuration file path.
	configPath string
	// logLevel overrides the configured log level.
	logLevel string

	// rootCmd represents the base command for the personal safety toolkit.
	rootCmd = &cobra.Command{
		Use:   "sos-beacon",
		Short: "Personal safety toolkit: SOS alerts, location sharing, siren and fake calls.",
		Long: `A personal safety toolkit for emergencies.

One press composes an alert with your name, last known position and an
optional note, and hands it to the best available channel: the native
share surface when the host has one, otherwise a chat deep link with the
text pre-filled. Every attempt is recorded in the incident history.

Companion tools: continuous location tracking, a loud swept-tone siren,
and a fake incoming call for getting out of uncomfortable situations.`,
	}
)

// Execute runs the sos-beacon CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	rootCmd.PersistentFlags().StringVarP(&logLevel, "log-level", "l", "", "log level override (debug, info, warn, error)")
}

// runWithApp assembles the application under a signal-aware context and
// hands it to the command body, closing everything on the way out.
func runWithApp(fn func(ctx context.Context, application *app.App) error) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	ctx = logger.WithName(ctx, "sos-beacon")

	application, err := app.New(ctx, app.Options{
		ConfigPath: configPath,
		LogLevel:   logLevel,
	})
	if err != nil {
		return err
	}

	defer application.Close(ctx)

	return fn(ctx, application)
}
