package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeSettings(t *testing.T, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

	return path
}

func TestNewWiresStaticProvider(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dir := t.TempDir()
	path := writeSettings(t, `
user_name: Alex
database_file: `+filepath.Join(dir, "beacon.db")+`
location_provider: static
static_coordinate:
  lat: 52.52
  lng: 13.405
`)

	application, err := New(ctx, Options{ConfigPath: path})
	require.NoError(t, err)

	t.Cleanup(func() {
		application.Close(ctx)
	})

	require.Equal(t, "Alex", application.Config.UserName)
	require.Equal(t, "wa.me", application.Config.ChatHost)

	// The coordinate cache fills on demand, not at assembly.
	require.Nil(t, application.Engine.Snapshot().Coordinate)

	text := application.Engine.ComposeAlert(ctx, "")
	require.Contains(t, text, "Alex")
	require.Contains(t, text, "unavailable")
}

func TestNewWithoutStaticCoordinate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dir := t.TempDir()
	path := writeSettings(t, `
database_file: `+filepath.Join(dir, "beacon.db")+`
location_provider: static
`)

	application, err := New(ctx, Options{ConfigPath: path})
	require.NoError(t, err)

	t.Cleanup(func() {
		application.Close(ctx)
	})

	// Tracking cannot start without a position capability.
	require.Error(t, application.Engine.SetTracking(ctx, true))
	require.False(t, application.Engine.Snapshot().Tracking)
}

func TestNewRejectsBrokenSettings(t *testing.T) {
	t.Parallel()

	path := writeSettings(t, `
location_provider: gps
`)

	_, err := New(context.Background(), Options{ConfigPath: path})
	require.Error(t, err)
}

func TestNewMissingReplayTrack(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeSettings(t, `
database_file: `+filepath.Join(dir, "beacon.db")+`
location_provider: replay
replay_track_file: `+filepath.Join(dir, "absent-track.yaml")+`
`)

	_, err := New(context.Background(), Options{ConfigPath: path})
	require.Error(t, err)
}
