package app

import (
	"context"
	"fmt"

	"github.com/oshokin/sos-beacon/internal/audio"
	"github.com/oshokin/sos-beacon/internal/clock"
	"github.com/oshokin/sos-beacon/internal/config"
	"github.com/oshokin/sos-beacon/internal/domain/beacon"
	"github.com/oshokin/sos-beacon/internal/logger"
	"github.com/oshokin/sos-beacon/internal/repository/store"
	"github.com/oshokin/sos-beacon/internal/service/contacts"
	"github.com/oshokin/sos-beacon/internal/service/dispatch"
	"github.com/oshokin/sos-beacon/internal/service/engine"
	"github.com/oshokin/sos-beacon/internal/service/fakecall"
	"github.com/oshokin/sos-beacon/internal/service/incidents"
	"github.com/oshokin/sos-beacon/internal/service/location"
	"github.com/oshokin/sos-beacon/internal/service/siren"
)

// Options configures application assembly.
type Options struct {
	// ConfigPath is the settings YAML path; empty selects the default.
	ConfigPath string
	// LogLevel overrides the configured log level when non-empty.
	LogLevel string
}

// App is the assembled application: configuration, storage and the engine,
// ready for a command to drive.
type App struct {
	// Config is the validated effective configuration.
	Config *config.Config
	// Engine is the emergency signal core.
	Engine *engine.Engine
	// Contacts manages alert recipients.
	Contacts *contacts.Service
	// Incidents reads the alert history.
	Incidents *incidents.Service

	store store.Store
}

// New loads configuration and wires the full collaborator graph. The caller
// owns the returned App and must Close it.
func New(ctx context.Context, opts Options) (*App, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	applyLogLevel(ctx, cfg.LogLevel, opts.LogLevel)

	st, err := store.Open(cfg.DatabaseFile)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	provider, err := buildProvider(cfg)
	if err != nil {
		_ = st.Close()

		return nil, err
	}

	tracker := location.NewTracker(provider, location.Options{
		FixTimeout:   cfg.FixTimeout,
		MaxFixAge:    cfg.MaxFixAge,
		JitterMeters: cfg.JitterMeters,
	})

	dispatcher := dispatch.NewDispatcher(
		cfg.ChatHost,
		nil, // No native share surface on a plain terminal host.
		dispatch.NewSystemClipboard(),
		dispatch.NewExecOpener(),
	)

	// Audio output is created lazily on first acquire and shared between
	// the siren and the fake call. A host without a player gets a silent
	// output; the tone state machines still work.
	shared := audio.NewShared(func() (audio.Output, error) {
		out, err := audio.NewPlayerOutput(ctx)
		if err != nil {
			logger.WarnKV(ctx, "Audio player unavailable, tones will be silent", "error", err)

			return audio.NewNullOutput(), nil
		}

		return out, nil
	})

	contactSvc := contacts.NewService(st)
	incidentSvc := incidents.NewService(st, clock.System())

	eng := engine.New(engine.Dependencies{
		Tracker:    tracker,
		Dispatcher: dispatcher,
		Siren: siren.NewPlayer(shared, siren.Options{
			BaseFrequency: cfg.SirenBaseFrequency,
			SweepRange:    cfg.SirenSweepRange,
			Gain:          cfg.SirenGain,
		}),
		FakeCall: fakecall.NewSimulator(shared, fakecall.Options{
			DefaultDelay: cfg.FakeCallDelay,
		}),
		Contacts:        contactSvc,
		Incidents:       incidentSvc,
		Store:           st,
		MapHost:         cfg.MapHost,
		DefaultUserName: cfg.UserName,
	})

	return &App{
		Config:    cfg,
		Engine:    eng,
		Contacts:  contactSvc,
		Incidents: incidentSvc,
		store:     st,
	}, nil
}

// Close stops the engine and releases storage.
func (a *App) Close(ctx context.Context) {
	a.Engine.Close(ctx)

	if err := a.store.Close(); err != nil {
		logger.WarnKV(ctx, "Store close failed", "error", err)
	}
}

// buildProvider selects the position source named by the configuration.
func buildProvider(cfg *config.Config) (location.Provider, error) {
	switch cfg.LocationProvider {
	case config.ProviderStatic:
		if cfg.StaticCoordinate == nil {
			// No position configured: requests surface a capability error
			// instead of a made-up coordinate.
			return location.NewUnavailable(), nil
		}

		coordinate := beacon.Coordinate{
			Lat: cfg.StaticCoordinate.Lat,
			Lng: cfg.StaticCoordinate.Lng,
		}

		return location.NewStatic(coordinate, 0, clock.System()), nil
	case config.ProviderReplay:
		replay, err := location.NewReplay(cfg.ReplayTrackFile, clock.System())
		if err != nil {
			return nil, fmt.Errorf("load replay track: %w", err)
		}

		return replay, nil
	default:
		return nil, fmt.Errorf("location provider %q is not supported", cfg.LocationProvider)
	}
}

// applyLogLevel sets the global level from the flag, falling back to the
// configured value.
func applyLogLevel(ctx context.Context, configured, override string) {
	value := configured
	if override != "" {
		value = override
	}

	if value == "" {
		return
	}

	level, ok := logger.ParseLogLevel(value)
	if !ok {
		logger.WarnKV(ctx, "Unknown log level, keeping current", "value", value)

		return
	}

	logger.SetLevel(level)
}
