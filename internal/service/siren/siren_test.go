package siren

import (
	"context"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/sos-beacon/internal/audio"
	"github.com/oshokin/sos-beacon/internal/clock"
)

// recordingOutput captures oscillator allocations for assertions.
type recordingOutput struct {
	mu     sync.Mutex
	oscs   []*recordingOscillator
	closed int
}

func (o *recordingOutput) NewOscillator(p audio.Params) (audio.Oscillator, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	osc := &recordingOscillator{params: p, frequency: p.Frequency}
	o.oscs = append(o.oscs, osc)

	return osc, nil
}

func (o *recordingOutput) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.closed++

	return nil
}

// recordingOscillator captures frequency changes and stops.
type recordingOscillator struct {
	mu        sync.Mutex
	params    audio.Params
	frequency float64
	stops     int
}

func (o *recordingOscillator) SetFrequency(hz float64) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.frequency = hz
}

func (o *recordingOscillator) Stop() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.stops++
}

// newTestPlayer builds a player over a recording output and a manual clock.
func newTestPlayer(t *testing.T) (*Player, *recordingOutput, *clock.Manual) {
	t.Helper()

	out := &recordingOutput{}
	shared := audio.NewShared(func() (audio.Output, error) { return out, nil })
	manual := clock.NewManual(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	player := NewPlayer(shared, Options{
		BaseFrequency: 600,
		SweepRange:    400,
		Gain:          0.05,
		Clock:         manual,
	})

	return player, out, manual
}

// TestStartIsIdempotent verifies a second start never allocates a second
// oscillator.
func TestStartIsIdempotent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	player, out, _ := newTestPlayer(t)
	defer player.Stop(ctx)

	require.NoError(t, player.Start(ctx))
	require.NoError(t, player.Start(ctx))

	out.mu.Lock()
	require.Len(t, out.oscs, 1)
	require.Equal(t, audio.WaveformSawtooth, out.oscs[0].params.Waveform)
	require.InDelta(t, 600, out.oscs[0].params.Frequency, 1e-9)
	require.InDelta(t, 0.05, out.oscs[0].params.Gain, 1e-9)
	out.mu.Unlock()

	require.True(t, player.Snapshot().On)
}

// TestSweepAdvancesFrequency verifies the sweep formula and that the phase
// only advances while sounding.
func TestSweepAdvancesFrequency(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	player, out, _ := newTestPlayer(t)

	require.NoError(t, player.Start(ctx))
	require.InDelta(t, 0, player.Snapshot().Phase, 1e-9)

	player.sweep()
	player.sweep()

	snapshot := player.Snapshot()
	require.InDelta(t, 0.5, snapshot.Phase, 1e-9)

	expected := 600 + 400*math.Abs(math.Sin(0.5))
	out.mu.Lock()
	require.InDelta(t, expected, out.oscs[0].frequency, 1e-9)
	out.mu.Unlock()

	// A tick that raced with Stop observes Idle and does nothing.
	player.Stop(ctx)
	player.sweep()
	require.InDelta(t, 0.5, player.Snapshot().Phase, 1e-9)
}

// TestStopReleasesResources verifies the synchronous teardown and the
// idempotent stop.
func TestStopReleasesResources(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	player, out, manual := newTestPlayer(t)

	require.NoError(t, player.Start(ctx))
	player.Stop(ctx)

	require.False(t, player.Snapshot().On)

	out.mu.Lock()
	require.Equal(t, 1, out.oscs[0].stops)
	require.Equal(t, 1, out.closed)
	out.mu.Unlock()

	require.True(t, manual.Tickers()[0].Stopped())

	// Stop on an idle siren is a no-op.
	player.Stop(ctx)
	out.mu.Lock()
	require.Equal(t, 1, out.oscs[0].stops)
	out.mu.Unlock()

	// Repeated start/stop cycles do not leak: one fresh allocation each.
	require.NoError(t, player.Start(ctx))
	player.Stop(ctx)

	out.mu.Lock()
	require.Len(t, out.oscs, 2)
	require.Equal(t, 2, out.closed)
	out.mu.Unlock()
}

// TestTickerDrivesSweep verifies the scheduling loop reacts to ticks.
func TestTickerDrivesSweep(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	player, _, manual := newTestPlayer(t)
	defer player.Stop(ctx)

	require.NoError(t, player.Start(ctx))

	manual.Tickers()[0].Tick(manual.Now())

	require.Eventually(t, func() bool {
		return player.Snapshot().Phase > 0
	}, time.Second, time.Millisecond)
}
