package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Coordinate holds a fixed position for the static location provider.
type Coordinate struct {
	// Lat is the latitude in decimal degrees.
	Lat float64 `yaml:"lat"`
	// Lng is the longitude in decimal degrees.
	Lng float64 `yaml:"lng"`
}

// Config holds settings shared by the sos-beacon commands.
type Config struct {
	// UserName is the identity line prepended to alert messages. Optional.
	UserName string `yaml:"user_name"`
	// ChatHost is the chat-service host used for messaging deep links.
	ChatHost string `yaml:"chat_host"`
	// MapHost is the map-service host used for location deep links.
	MapHost string `yaml:"map_host"`
	// DatabaseFile is the path to the SQLite file storing contacts,
	// incidents and settings. Empty selects the default filename.
	DatabaseFile string `yaml:"database_file"`
	// LocationProvider selects the position source: "static" or "replay".
	LocationProvider string `yaml:"location_provider"`
	// StaticCoordinate is the position reported by the static provider.
	StaticCoordinate *Coordinate `yaml:"static_coordinate,omitempty"`
	// ReplayTrackFile is the YAML track consumed by the replay provider.
	ReplayTrackFile string `yaml:"replay_track_file,omitempty"`
	// FixTimeout bounds a single position request.
	FixTimeout time.Duration `yaml:"fix_timeout"`
	// MaxFixAge is the acceptable staleness of a continuous update.
	MaxFixAge time.Duration `yaml:"max_fix_age"`
	// JitterMeters is the minimum movement between consecutive fixes
	// before subscribers are re-notified.
	JitterMeters float64 `yaml:"jitter_meters"`
	// FakeCallDelay is the default countdown before the simulated call.
	FakeCallDelay time.Duration `yaml:"fake_call_delay"`
	// SirenBaseFrequency is the siren sweep base in hertz.
	SirenBaseFrequency float64 `yaml:"siren_base_frequency"`
	// SirenSweepRange is the sweep amplitude added on top of the base.
	SirenSweepRange float64 `yaml:"siren_sweep_range"`
	// SirenGain is the fixed output gain, kept low on purpose.
	SirenGain float64 `yaml:"siren_gain"`
	// LogLevel is the minimum level for console logging.
	LogLevel string `yaml:"log_level"`
}

const (
	// DefaultConfigFilename is the default filename for beacon settings.
	DefaultConfigFilename = "sos-beacon-settings.yaml"

	// DefaultDatabaseFilename is the default SQLite filename.
	DefaultDatabaseFilename = "sos-beacon.db"

	// DefaultChatHost is the chat service used for messaging deep links.
	DefaultChatHost = "wa.me"

	// DefaultMapHost is the map service used for location deep links.
	DefaultMapHost = "maps.google.com"

	// DefaultFixTimeout bounds a one-shot position request.
	DefaultFixTimeout = 5 * time.Second

	// DefaultMaxFixAge is the acceptable staleness of a continuous update.
	DefaultMaxFixAge = 2 * time.Second

	// DefaultJitterMeters filters sub-threshold movement between fixes.
	DefaultJitterMeters = 3.0

	// DefaultFakeCallDelay is the countdown before the simulated call.
	DefaultFakeCallDelay = 10 * time.Second

	// DefaultSirenBaseFrequency is the siren sweep base in hertz.
	DefaultSirenBaseFrequency = 600.0

	// DefaultSirenSweepRange is the sweep amplitude in hertz.
	DefaultSirenSweepRange = 400.0

	// DefaultSirenGain keeps the siren audible but not painful.
	DefaultSirenGain = 0.05

	// DefaultFilePermissions is the default file permission for config files.
	DefaultFilePermissions = 0o600
)

// Location provider names accepted in LocationProvider.
const (
	ProviderStatic = "static"
	ProviderReplay = "replay"
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errUnknownProvider is returned for an unrecognized location provider.
	errUnknownProvider = errors.New("unknown location provider")
	// errReplayTrackRequired is returned when the replay provider has no track file.
	errReplayTrackRequired = errors.New("replay provider requires a track file")
	// errHostMustBeBare is returned when a deep-link host includes a scheme or path.
	errHostMustBeBare = errors.New("host must not contain a scheme or path")
)

// Load reads configuration from the provided path and validates essential fields.
// A missing file yields a configuration of pure defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	var cfg Config

	contents, err := os.ReadFile(filepath.Clean(path))
	switch {
	case err == nil:
		if err = yaml.Unmarshal(contents, &cfg); err != nil {
			return nil, fmt.Errorf("unmarshal settings: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
		// First run, start from defaults.
	default:
		return nil, fmt.Errorf("read settings: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes settings to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	// Restrict permissions.
	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate fills in defaults and checks the provided settings for consistency.
//
//nolint:cyclop // Field-by-field defaulting is flat and readable.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if cfg.ChatHost == "" {
		cfg.ChatHost = DefaultChatHost
	}

	if cfg.MapHost == "" {
		cfg.MapHost = DefaultMapHost
	}

	for _, host := range []string{cfg.ChatHost, cfg.MapHost} {
		if strings.ContainsAny(host, "/:?") {
			return fmt.Errorf("%q: %w", host, errHostMustBeBare)
		}
	}

	if cfg.DatabaseFile == "" {
		cfg.DatabaseFile = DefaultDatabaseFilename
	}

	if cfg.FixTimeout <= 0 {
		cfg.FixTimeout = DefaultFixTimeout
	}

	if cfg.MaxFixAge <= 0 {
		cfg.MaxFixAge = DefaultMaxFixAge
	}

	if cfg.JitterMeters <= 0 {
		cfg.JitterMeters = DefaultJitterMeters
	}

	if cfg.FakeCallDelay <= 0 {
		cfg.FakeCallDelay = DefaultFakeCallDelay
	}

	if cfg.SirenBaseFrequency <= 0 {
		cfg.SirenBaseFrequency = DefaultSirenBaseFrequency
	}

	if cfg.SirenSweepRange <= 0 {
		cfg.SirenSweepRange = DefaultSirenSweepRange
	}

	if cfg.SirenGain <= 0 {
		cfg.SirenGain = DefaultSirenGain
	}

	switch cfg.LocationProvider {
	case "":
		cfg.LocationProvider = ProviderStatic
	case ProviderStatic:
		// A missing static coordinate is not an error: requests then
		// surface a location failure, which the engine reports instead
		// of crashing, matching a denied sensor on a real device.
	case ProviderReplay:
		if cfg.ReplayTrackFile == "" {
			return errReplayTrackRequired
		}
	default:
		return fmt.Errorf("%q: %w", cfg.LocationProvider, errUnknownProvider)
	}

	return nil
}
