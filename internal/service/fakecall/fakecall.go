package fakecall

import (
	"context"
	"sync"
	"time"

	"github.com/oshokin/sos-beacon/internal/audio"
	"github.com/oshokin/sos-beacon/internal/clock"
	"github.com/oshokin/sos-beacon/internal/logger"
)

const (
	// MinDelaySeconds is the shortest accepted countdown.
	MinDelaySeconds = 3
	// MaxDelaySeconds is the longest accepted countdown.
	MaxDelaySeconds = 60

	// beepFrequency is the ring tone pitch in hertz.
	beepFrequency = 880
	// beepGain keeps the ring tone quiet.
	beepGain = 0.1
	// beepDuration is the fixed ring tone length.
	beepDuration = 1200 * time.Millisecond
)

// Options configures the simulator.
type Options struct {
	// DefaultDelay is the countdown used when Arm gets no explicit delay.
	DefaultDelay time.Duration
	// Clock supplies the countdown ticker; nil selects the system clock.
	Clock clock.Clock
}

// State is a read-only snapshot of the simulator.
type State struct {
	// Armed reports whether a countdown is running.
	Armed bool
	// SecondsRemaining is only meaningful while Armed.
	SecondsRemaining int
	// DefaultDelaySeconds is the delay the next plain Arm will use.
	DefaultDelaySeconds int
}

// Simulator is the fake-call state machine: Disarmed or Armed(s). When the
// countdown expires it plays a short ring beep, emits a ringing notice and
// disarms, restoring the configured default delay for the next arm.
type Simulator struct {
	// shared is the process-wide audio handle.
	shared *audio.Shared
	// clk supplies the one-second countdown ticker.
	clk clock.Clock
	// configuredDelay is the delay restored after completion or cancel.
	configuredDelay int
	// onRing is invoked once per completed countdown.
	onRing func()

	// mu protects the fields below.
	mu sync.Mutex
	// armed reports the Armed state.
	armed bool
	// remaining is the countdown in seconds.
	remaining int
	// delay is the current default delay in seconds.
	delay int
	// ticker drives the countdown, nil while disarmed.
	ticker clock.Ticker
	// done ends the countdown loop.
	done chan struct{}
}

// NewSimulator creates a disarmed simulator over the shared audio output.
func NewSimulator(shared *audio.Shared, opts Options) *Simulator {
	clk := opts.Clock
	if clk == nil {
		clk = clock.System()
	}

	delay := clampDelay(int(opts.DefaultDelay / time.Second))

	return &Simulator{
		shared:          shared,
		clk:             clk,
		configuredDelay: delay,
		delay:           delay,
	}
}

// OnRing registers the callback invoked when the simulated call rings.
// Must be set before the first Arm.
func (s *Simulator) OnRing(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.onRing = fn
}

// Arm starts (or restarts) the countdown. Seconds outside [3, 60] are
// clamped, not rejected; zero or negative selects the current default.
// The clamped delay is returned.
func (s *Simulator) Arm(ctx context.Context, seconds int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seconds <= 0 {
		seconds = s.delay
	}

	seconds = clampDelay(seconds)

	// Re-arming replaces the running countdown; the old timer is released
	// here, not abandoned.
	s.stopTimerLocked()

	s.armed = true
	s.remaining = seconds
	s.delay = seconds
	s.ticker = s.clk.NewTicker(time.Second)
	s.done = make(chan struct{})

	go s.run(ctx, s.ticker, s.done)

	logger.InfoKV(ctx, "Fake call armed", "seconds", seconds)

	return seconds
}

// Cancel disarms without any side effect. The countdown timer is released
// before Cancel returns; cancelling a disarmed simulator is a no-op.
func (s *Simulator) Cancel(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.armed {
		return
	}

	s.stopTimerLocked()
	s.armed = false
	s.remaining = 0
	s.delay = s.configuredDelay

	logger.Info(ctx, "Fake call cancelled")
}

// Snapshot returns the current state.
func (s *Simulator) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return State{
		Armed:               s.armed,
		SecondsRemaining:    s.remaining,
		DefaultDelaySeconds: s.delay,
	}
}

// run counts down until the done channel closes.
func (s *Simulator) run(ctx context.Context, ticker clock.Ticker, done chan struct{}) {
	for {
		select {
		case <-done:
			return
		case <-ticker.C():
			s.tick(ctx)
		}
	}
}

// tick advances the countdown by one second and completes it at zero.
func (s *Simulator) tick(ctx context.Context) {
	s.mu.Lock()

	if !s.armed {
		s.mu.Unlock()

		return
	}

	s.remaining--
	if s.remaining > 0 {
		s.mu.Unlock()

		return
	}

	// Countdown expired: disarm, restore the configured default and
	// release the timer before any side effect runs.
	s.stopTimerLocked()
	s.armed = false
	s.remaining = 0
	s.delay = s.configuredDelay
	onRing := s.onRing
	s.mu.Unlock()

	logger.Info(ctx, "Simulated incoming call ringing")
	s.ring(ctx)

	if onRing != nil {
		onRing()
	}
}

// ring plays the short fixed ring tone on the shared audio output.
// Audio failures are reported, never propagated: the state transition
// already happened.
func (s *Simulator) ring(ctx context.Context) {
	out, err := s.shared.Acquire()
	if err != nil {
		logger.WarnKV(ctx, "Ring tone unavailable", "error", err)

		return
	}

	osc, err := out.NewOscillator(audio.Params{
		Waveform:  audio.WaveformSquare,
		Frequency: beepFrequency,
		Gain:      beepGain,
	})
	if err != nil {
		s.shared.Release()
		logger.WarnKV(ctx, "Ring tone failed", "error", err)

		return
	}

	time.AfterFunc(beepDuration, func() {
		osc.Stop()
		s.shared.Release()
	})
}

// stopTimerLocked releases the countdown ticker. Caller holds mu.
func (s *Simulator) stopTimerLocked() {
	if s.ticker != nil {
		s.ticker.Stop()
		s.ticker = nil
	}

	if s.done != nil {
		close(s.done)
		s.done = nil
	}
}

// clampDelay forces a delay into [MinDelaySeconds, MaxDelaySeconds].
func clampDelay(seconds int) int {
	if seconds < MinDelaySeconds {
		return MinDelaySeconds
	}

	if seconds > MaxDelaySeconds {
		return MaxDelaySeconds
	}

	return seconds
}
