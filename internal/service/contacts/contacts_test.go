package contacts

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/sos-beacon/internal/domain/beacon"
	"github.com/oshokin/sos-beacon/internal/repository/store"
)

// newTestService builds a contact service over a temporary database.
func newTestService(t *testing.T) *Service {
	t.Helper()

	s, err := store.Open(filepath.Join(t.TempDir(), "beacon.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	return NewService(s)
}

// TestAddNormalizesAndRejects verifies validation at the service boundary.
func TestAddNormalizesAndRejects(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newTestService(t)

	contact, err := svc.Add(ctx, "Mom", "+1 (555) 010-2000")
	require.NoError(t, err)
	require.Equal(t, "15550102000", contact.PhoneDigits)

	// A digitless phone never reaches the store.
	_, err = svc.Add(ctx, "Nobody", "abc")
	require.ErrorIs(t, err, beacon.ErrInvalidInput)

	contacts, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, contacts, 1)
}

// TestRemove verifies normalized removal and missing-contact reporting.
func TestRemove(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newTestService(t)

	_, err := svc.Add(ctx, "Mom", "15550102000")
	require.NoError(t, err)

	// Formatted input removes the normalized record.
	require.NoError(t, svc.Remove(ctx, "+1 (555) 010-2000"))
	require.ErrorIs(t, svc.Remove(ctx, "15550102000"), store.ErrNotFound)

	// Digitless input is invalid, not a lookup miss.
	require.ErrorIs(t, svc.Remove(ctx, "???"), beacon.ErrInvalidInput)
}
