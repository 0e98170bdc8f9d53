package siren

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/oshokin/sos-beacon/internal/audio"
	"github.com/oshokin/sos-beacon/internal/clock"
	"github.com/oshokin/sos-beacon/internal/logger"
)

const (
	// defaultTickInterval is the sweep scheduling period.
	defaultTickInterval = 80 * time.Millisecond
	// defaultPhaseIncrement advances the sweep phase per tick.
	defaultPhaseIncrement = 0.25
)

// Options configures the siren tone and scheduling.
type Options struct {
	// BaseFrequency is the sweep floor in hertz.
	BaseFrequency float64
	// SweepRange is the amplitude added on top of the base.
	SweepRange float64
	// Gain is the fixed output level, audible but not painful.
	Gain float64
	// TickInterval is the sweep scheduling period; zero selects the default.
	TickInterval time.Duration
	// Clock supplies tickers; nil selects the system clock.
	Clock clock.Clock
}

// State is a read-only snapshot of the siren.
type State struct {
	// On reports whether the siren is sounding.
	On bool
	// Phase is the sweep phase accumulator; it only advances while On.
	Phase float64
}

// Player is the siren state machine: Idle or Sounding. Start allocates one
// oscillator on the shared audio output and sweeps its frequency each tick;
// Stop halts the sweep and the oscillator synchronously.
type Player struct {
	// shared is the process-wide audio handle.
	shared *audio.Shared
	// opts holds the tone parameters.
	opts Options
	// clk supplies the sweep ticker.
	clk clock.Clock

	// mu protects the fields below.
	mu sync.Mutex
	// sounding reports the Sounding state.
	sounding bool
	// phase is the sweep accumulator.
	phase float64
	// osc is the live oscillator, nil while idle.
	osc audio.Oscillator
	// ticker drives the sweep, nil while idle.
	ticker clock.Ticker
	// done ends the sweep loop.
	done chan struct{}
}

// NewPlayer creates an idle siren over the shared audio output.
func NewPlayer(shared *audio.Shared, opts Options) *Player {
	if opts.TickInterval <= 0 {
		opts.TickInterval = defaultTickInterval
	}

	clk := opts.Clock
	if clk == nil {
		clk = clock.System()
	}

	return &Player{
		shared: shared,
		opts:   opts,
		clk:    clk,
	}
}

// Start moves the siren to Sounding. Starting while already sounding is a
// no-op and never allocates a second oscillator.
func (p *Player) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.sounding {
		logger.Debug(ctx, "Siren already sounding, ignoring start")

		return nil
	}

	out, err := p.shared.Acquire()
	if err != nil {
		return fmt.Errorf("siren audio: %w", err)
	}

	osc, err := out.NewOscillator(audio.Params{
		Waveform:  audio.WaveformSawtooth,
		Frequency: p.opts.BaseFrequency,
		Gain:      p.opts.Gain,
	})
	if err != nil {
		p.shared.Release()

		return fmt.Errorf("siren oscillator: %w", err)
	}

	p.sounding = true
	p.phase = 0
	p.osc = osc
	p.ticker = p.clk.NewTicker(p.opts.TickInterval)
	p.done = make(chan struct{})

	go p.run(p.ticker, p.done)

	logger.Info(ctx, "Siren started")

	return nil
}

// Stop moves the siren back to Idle, halting the oscillator and cancelling
// the sweep before returning. Stopping an idle siren is a no-op.
func (p *Player) Stop(ctx context.Context) {
	p.mu.Lock()

	if !p.sounding {
		p.mu.Unlock()

		return
	}

	p.sounding = false
	p.ticker.Stop()
	close(p.done)
	p.osc.Stop()

	p.osc = nil
	p.ticker = nil
	p.done = nil
	p.mu.Unlock()

	p.shared.Release()

	logger.Info(ctx, "Siren stopped")
}

// Snapshot returns the current state.
func (p *Player) Snapshot() State {
	p.mu.Lock()
	defer p.mu.Unlock()

	return State{On: p.sounding, Phase: p.phase}
}

// run advances the sweep until the done channel closes.
func (p *Player) run(ticker clock.Ticker, done chan struct{}) {
	for {
		select {
		case <-done:
			return
		case <-ticker.C():
			p.sweep()
		}
	}
}

// sweep advances the phase and retunes the oscillator. A tick that raced
// with Stop observes Idle and does nothing; the sweep never outlives Stop.
func (p *Player) sweep() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.sounding {
		return
	}

	p.phase += defaultPhaseIncrement
	frequency := p.opts.BaseFrequency + p.opts.SweepRange*math.Abs(math.Sin(p.phase))
	p.osc.SetFrequency(frequency)
}
