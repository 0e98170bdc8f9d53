package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestValidate checks defaulting and format validations for settings.
func TestValidate(t *testing.T) {
	t.Parallel()

	// Nil configuration.
	require.Error(t, Validate(nil))

	// Empty configuration gets defaults.
	cfg := new(Config)
	require.NoError(t, Validate(cfg))
	require.Equal(t, DefaultChatHost, cfg.ChatHost)
	require.Equal(t, DefaultMapHost, cfg.MapHost)
	require.Equal(t, DefaultDatabaseFilename, cfg.DatabaseFile)
	require.Equal(t, DefaultFixTimeout, cfg.FixTimeout)
	require.Equal(t, DefaultFakeCallDelay, cfg.FakeCallDelay)
	require.Equal(t, ProviderStatic, cfg.LocationProvider)

	// Host with a scheme is rejected.
	cfg = &Config{ChatHost: "https://wa.me"}
	require.Error(t, Validate(cfg))

	// Replay provider needs a track file.
	cfg = &Config{LocationProvider: ProviderReplay}
	require.Error(t, Validate(cfg))

	// Unknown provider is rejected.
	cfg = &Config{LocationProvider: "carrier-pigeon"}
	require.Error(t, Validate(cfg))
}

// TestSaveLoadRoundtrip ensures settings are persisted and loaded back correctly.
func TestSaveLoadRoundtrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")

	cfg := &Config{
		UserName:         "Asha",
		ChatHost:         "wa.me",
		LocationProvider: ProviderStatic,
		StaticCoordinate: &Coordinate{Lat: 12.34, Lng: -1.23},
		FakeCallDelay:    15 * time.Second,
	}

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, cfg.UserName, loaded.UserName)
	require.Equal(t, cfg.FakeCallDelay, loaded.FakeCallDelay)
	require.NotNil(t, loaded.StaticCoordinate)
	require.InDelta(t, 12.34, loaded.StaticCoordinate.Lat, 1e-9)

	// File exists.
	_, err = os.Stat(path)
	require.NoError(t, err)
}

// TestLoadMissingFile verifies first-run behavior: defaults, no error.
func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	require.Equal(t, DefaultChatHost, cfg.ChatHost)
	require.Equal(t, DefaultSirenBaseFrequency, cfg.SirenBaseFrequency)
}
