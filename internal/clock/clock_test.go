package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestSystemTicker verifies the wall-clock ticker fires and stops.
func TestSystemTicker(t *testing.T) {
	t.Parallel()

	c := System()
	require.WithinDuration(t, time.Now(), c.Now(), time.Second)

	ticker := c.NewTicker(time.Millisecond)
	defer ticker.Stop()

	select {
	case <-ticker.C():
	case <-time.After(time.Second):
		t.Fatal("system ticker did not fire")
	}
}

// TestManualTicker verifies pushed ticks, stop semantics and time advancement.
func TestManualTicker(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewManual(start)
	require.Equal(t, start, m.Now())

	m.Advance(time.Minute)
	require.Equal(t, start.Add(time.Minute), m.Now())

	ticker := m.NewTicker(time.Second)
	mt, ok := ticker.(*ManualTicker)
	require.True(t, ok)
	require.Len(t, m.Tickers(), 1)

	mt.Tick(m.Now())
	select {
	case at := <-ticker.C():
		require.Equal(t, m.Now(), at)
	default:
		t.Fatal("tick was not delivered")
	}

	// Ticks after Stop are dropped.
	ticker.Stop()
	require.True(t, mt.Stopped())
	mt.Tick(m.Now())

	select {
	case <-ticker.C():
		t.Fatal("tick delivered after stop")
	default:
	}
}
