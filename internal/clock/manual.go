package clock

import (
	"sync"
	"time"
)

// Manual is a test clock. Its tickers only fire when the test pushes a tick,
// so timer-driven code runs deterministically.
type Manual struct {
	// mu protects the fields below.
	mu sync.Mutex
	// now is the frozen current time, advanced explicitly.
	now time.Time
	// tickers are all tickers handed out so far.
	tickers []*ManualTicker
}

// NewManual creates a manual clock frozen at the provided time.
func NewManual(now time.Time) *Manual {
	return &Manual{now: now}
}

// Now returns the frozen time.
func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.now
}

// Advance moves the frozen time forward without firing any ticker.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.now = m.now.Add(d)
}

// NewTicker returns a ticker that fires only via Tick.
func (m *Manual) NewTicker(_ time.Duration) Ticker {
	m.mu.Lock()
	defer m.mu.Unlock()

	t := &ManualTicker{ch: make(chan time.Time, 1)}
	m.tickers = append(m.tickers, t)

	return t
}

// Tickers returns every ticker created so far, in creation order.
func (m *Manual) Tickers() []*ManualTicker {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := make([]*ManualTicker, len(m.tickers))
	copy(result, m.tickers)

	return result
}

// ManualTicker is a ticker driven by the test.
type ManualTicker struct {
	// mu protects stopped.
	mu sync.Mutex
	// ch carries pushed ticks.
	ch chan time.Time
	// stopped records whether Stop has been called.
	stopped bool
}

// C returns the tick channel.
func (t *ManualTicker) C() <-chan time.Time {
	return t.ch
}

// Stop marks the ticker stopped; subsequent Tick calls are dropped.
func (t *ManualTicker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stopped = true
}

// Stopped reports whether Stop has been called.
func (t *ManualTicker) Stopped() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.stopped
}

// Tick delivers one tick unless the ticker is stopped or the previous tick
// has not been consumed yet.
func (t *ManualTicker) Tick(at time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stopped {
		return
	}

	select {
	case t.ch <- at:
	default:
	}
}
