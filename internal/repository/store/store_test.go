package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/sos-beacon/internal/domain/beacon"
)

// newTestStore opens a store on a per-test database file.
func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	s, err := Open(filepath.Join(t.TempDir(), "beacon.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	return s
}

// TestContacts verifies the contact list round trip, ordering and removal.
func TestContacts(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newTestStore(t)

	contacts, err := s.Contacts(ctx)
	require.NoError(t, err)
	require.Empty(t, contacts)

	mom := beacon.Contact{DisplayName: "Mom", PhoneDigits: "15551234567"}
	dad := beacon.Contact{DisplayName: "Dad", PhoneDigits: "15557654321"}
	require.NoError(t, s.AddContact(ctx, mom))
	require.NoError(t, s.AddContact(ctx, dad))

	contacts, err = s.Contacts(ctx)
	require.NoError(t, err)
	require.Equal(t, []beacon.Contact{mom, dad}, contacts)

	require.NoError(t, s.RemoveContact(ctx, mom.PhoneDigits))
	require.ErrorIs(t, s.RemoveContact(ctx, mom.PhoneDigits), ErrNotFound)

	contacts, err = s.Contacts(ctx)
	require.NoError(t, err)
	require.Equal(t, []beacon.Contact{dad}, contacts)
}

// TestIncidents verifies incident persistence and newest-first listing.
func TestIncidents(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newTestStore(t)

	base := time.Now().UTC().Truncate(time.Second)
	older := &beacon.Incident{
		ID:        "incident-1",
		Timestamp: base.Add(-time.Hour),
		Note:      "left the bar",
		Outcome:   beacon.OutcomeSent,
	}
	newer := &beacon.Incident{
		ID:         "incident-2",
		Timestamp:  base,
		Coordinate: &beacon.Coordinate{Lat: 12.34567, Lng: -1.23456},
		Outcome:    beacon.OutcomeFailed,
	}

	require.NoError(t, s.AppendIncident(ctx, older))
	require.NoError(t, s.AppendIncident(ctx, newer))

	incidents, err := s.Incidents(ctx, 10)
	require.NoError(t, err)
	require.Len(t, incidents, 2)
	require.Equal(t, "incident-2", incidents[0].ID)
	require.NotNil(t, incidents[0].Coordinate)
	require.InDelta(t, 12.34567, incidents[0].Coordinate.Lat, 1e-9)
	require.Nil(t, incidents[1].Coordinate)

	// Limit applies after ordering.
	incidents, err = s.Incidents(ctx, 1)
	require.NoError(t, err)
	require.Len(t, incidents, 1)
	require.Equal(t, "incident-2", incidents[0].ID)
}

// TestSettings verifies the key-value surface and its default fallback.
func TestSettings(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newTestStore(t)

	require.Equal(t, "fallback", s.Setting(ctx, "user_name", "fallback"))

	require.NoError(t, s.SetSetting(ctx, "user_name", "Asha"))
	require.Equal(t, "Asha", s.Setting(ctx, "user_name", "fallback"))

	// Overwrites replace, not append.
	require.NoError(t, s.SetSetting(ctx, "user_name", "Priya"))
	require.Equal(t, "Priya", s.Setting(ctx, "user_name", "fallback"))
}
