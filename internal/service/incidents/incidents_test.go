package incidents

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/sos-beacon/internal/clock"
	"github.com/oshokin/sos-beacon/internal/domain/beacon"
	"github.com/oshokin/sos-beacon/internal/repository/store"
)

// TestRecordAndRecent verifies ID generation, timestamps and ordering.
func TestRecordAndRecent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	s, err := store.Open(filepath.Join(t.TempDir(), "beacon.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	manual := clock.NewManual(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	svc := NewService(s, manual)

	first, err := svc.Record(ctx, "left the bar", nil, beacon.OutcomeSent)
	require.NoError(t, err)
	require.NotEmpty(t, first.ID)
	require.Equal(t, manual.Now(), first.Timestamp)

	manual.Advance(time.Minute)

	second, err := svc.Record(ctx, "", &beacon.Coordinate{Lat: 1, Lng: 2}, beacon.OutcomeFailed)
	require.NoError(t, err)
	require.NotEqual(t, first.ID, second.ID)

	recent, err := svc.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	require.Equal(t, second.ID, recent[0].ID)
	require.NotNil(t, recent[0].Coordinate)
	require.Equal(t, beacon.OutcomeFailed, recent[0].Outcome)
}
