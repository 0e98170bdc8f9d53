package clock

import "time"

// Ticker delivers periodic ticks until stopped.
type Ticker interface {
	// C returns the tick channel.
	C() <-chan time.Time
	// Stop cancels the ticker. No tick is delivered after Stop returns.
	Stop()
}

// Clock abstracts time so timer-driven state machines can be stepped
// synchronously in tests instead of waiting on the wall clock.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
	// NewTicker returns a ticker firing every interval.
	NewTicker(interval time.Duration) Ticker
}

// System returns the wall-clock implementation.
func System() Clock {
	return systemClock{}
}

// systemClock delegates to the time package.
type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

func (systemClock) NewTicker(interval time.Duration) Ticker {
	return &systemTicker{ticker: time.NewTicker(interval)}
}

// systemTicker wraps time.Ticker to satisfy the Ticker interface.
type systemTicker struct {
	ticker *time.Ticker
}

func (t *systemTicker) C() <-chan time.Time {
	return t.ticker.C
}

func (t *systemTicker) Stop() {
	t.ticker.Stop()
}
