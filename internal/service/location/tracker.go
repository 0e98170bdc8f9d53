package location

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/oshokin/sos-beacon/internal/clock"
	"github.com/oshokin/sos-beacon/internal/domain/beacon"
	"github.com/oshokin/sos-beacon/internal/logger"
)

// Options configures tracker timing and filtering.
type Options struct {
	// FixTimeout bounds a one-shot position request.
	FixTimeout time.Duration
	// MaxFixAge is the acceptable staleness of a continuous update; older
	// fixes are dropped.
	MaxFixAge time.Duration
	// JitterMeters is the minimum movement between consecutive fixes
	// before subscribers are re-notified.
	JitterMeters float64
	// Clock supplies time; nil selects the system clock.
	Clock clock.Clock
}

// Tracker owns position acquisition: one-shot fixes, the single continuous
// session and the last-known-good coordinate cache. Updates overwrite the
// cache in a single assignment, so readers never observe a partial position.
type Tracker struct {
	// provider is the host position capability.
	provider Provider
	// opts holds timing and filter settings.
	opts Options
	// clk supplies time for staleness checks.
	clk clock.Clock

	// mu protects the fields below.
	mu sync.Mutex
	// lastFix is the last accepted reading, nil until the first success.
	lastFix *beacon.Fix
	// session is the live subscription, nil when not tracking.
	session Subscription
	// subscribers receive every accepted fix.
	subscribers []func(beacon.Fix)
	// errHandlers receive update failures from the continuous session.
	errHandlers []func(error)
}

// NewTracker creates a tracker over the provided position capability.
func NewTracker(provider Provider, opts Options) *Tracker {
	clk := opts.Clock
	if clk == nil {
		clk = clock.System()
	}

	return &Tracker{
		provider: provider,
		opts:     opts,
		clk:      clk,
	}
}

// Subscribe registers a callback for every accepted fix.
// Must be called before tracking starts.
func (t *Tracker) Subscribe(fn func(beacon.Fix)) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.subscribers = append(t.subscribers, fn)
}

// OnError registers a callback for continuous-session update failures.
func (t *Tracker) OnError(fn func(error)) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.errHandlers = append(t.errHandlers, fn)
}

// RequestOnce resolves a single fix bounded by the configured timeout.
// On failure the previously cached coordinate stays intact.
func (t *Tracker) RequestOnce(ctx context.Context) (beacon.Coordinate, error) {
	if t.opts.FixTimeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, t.opts.FixTimeout)
		defer cancel()
	}

	fix, err := t.provider.RequestOnce(ctx)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			err = fmt.Errorf("position fix: %w", beacon.ErrTimeout)
		}

		return beacon.Coordinate{}, fmt.Errorf("location unavailable: %w", err)
	}

	t.accept(ctx, fix, false)

	return fix.Coordinate, nil
}

// StartContinuous begins recurring position updates. At most one session is
// active at a time; starting while tracking is a no-op.
func (t *Tracker) StartContinuous(ctx context.Context) error {
	t.mu.Lock()
	if t.session != nil {
		t.mu.Unlock()
		logger.Debug(ctx, "Tracking already active, ignoring start")

		return nil
	}
	t.mu.Unlock()

	session, err := t.provider.Watch(
		func(fix *beacon.Fix) {
			t.accept(ctx, fix, true)
		},
		func(err error) {
			// A failed update never kills the session; report and keep
			// listening for the next one.
			logger.WarnKV(ctx, "Position update failed", "error", err)
			t.mu.Lock()
			handlers := append(([]func(error))(nil), t.errHandlers...)
			t.mu.Unlock()

			for _, fn := range handlers {
				fn(err)
			}
		},
	)
	if err != nil {
		return fmt.Errorf("start tracking: %w", err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.session != nil {
		// Lost the race against a concurrent start; keep the first session.
		session.Cancel()

		return nil
	}

	t.session = session
	logger.Info(ctx, "Live tracking started")

	return nil
}

// StopContinuous cancels the session synchronously. Stopping when no
// session is active is a no-op.
func (t *Tracker) StopContinuous() {
	t.mu.Lock()
	session := t.session
	t.session = nil
	t.mu.Unlock()

	if session != nil {
		session.Cancel()
	}
}

// Tracking reports whether a continuous session is active.
func (t *Tracker) Tracking() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.session != nil
}

// Last returns the last known coordinate, nil before the first fix.
func (t *Tracker) Last() *beacon.Coordinate {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.lastFix == nil {
		return nil
	}

	coord := t.lastFix.Coordinate

	return &coord
}

// LastFix returns a copy of the last accepted reading, nil before the first.
func (t *Tracker) LastFix() *beacon.Fix {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.lastFix.Clone()
}

// accept stores a fix and fans it out to subscribers. Continuous updates
// are dropped when stale and silenced when movement since the previous fix
// is below the jitter threshold (the cache still advances).
func (t *Tracker) accept(ctx context.Context, fix *beacon.Fix, continuous bool) {
	if fix == nil {
		return
	}

	if continuous && t.opts.MaxFixAge > 0 && !fix.Timestamp.IsZero() {
		if age := t.clk.Now().Sub(fix.Timestamp); age > t.opts.MaxFixAge {
			logger.DebugKV(ctx, "Dropping stale fix", "age", age.String())

			return
		}
	}

	t.mu.Lock()

	notify := true
	if continuous && t.lastFix != nil && t.opts.JitterMeters > 0 {
		if t.lastFix.Coordinate.DistanceMeters(fix.Coordinate) < t.opts.JitterMeters {
			notify = false
		}
	}

	// Single assignment: readers see either the old fix or the new one.
	t.lastFix = fix.Clone()
	subscribers := append(([]func(beacon.Fix))(nil), t.subscribers...)
	t.mu.Unlock()

	if !notify {
		return
	}

	accepted := *fix
	for _, fn := range subscribers {
		fn(accepted)
	}
}
