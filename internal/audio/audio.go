package audio

import (
	"fmt"
	"sync"
	"time"
)

// Waveform selects the oscillator wave shape.
type Waveform int

const (
	// WaveformSawtooth is the siren sweep shape.
	WaveformSawtooth Waveform = iota
	// WaveformSquare is the fake-call beep shape.
	WaveformSquare
	// WaveformSine is a plain tone.
	WaveformSine
)

// Params configures a new oscillator.
type Params struct {
	// Waveform is the wave shape.
	Waveform Waveform
	// Frequency is the initial pitch in hertz.
	Frequency float64
	// Gain is the output level in [0, 1]. Callers keep this low.
	Gain float64
}

// Oscillator is a live tone generator.
type Oscillator interface {
	// SetFrequency changes the pitch of the running tone.
	SetFrequency(hz float64)
	// Stop silences the oscillator. Idempotent.
	Stop()
}

// Output is the host audio capability: it creates oscillators and owns the
// underlying device or process.
type Output interface {
	// NewOscillator allocates and starts a tone generator.
	NewOscillator(p Params) (Oscillator, error)
	// Close releases the output. Oscillators stop implicitly.
	Close() error
}

// Shared is the process-wide audio handle. The output is created lazily on
// the first Acquire and torn down on the last Release, so the siren and the
// fake call can share it sequentially or concurrently without either owning
// its lifecycle.
type Shared struct {
	// mu protects the fields below.
	mu sync.Mutex
	// factory builds the output on first use.
	factory func() (Output, error)
	// output is the live output, nil while unused.
	output Output
	// refs counts current holders.
	refs int
}

// NewShared creates a shared handle around the provided output factory.
func NewShared(factory func() (Output, error)) *Shared {
	return &Shared{factory: factory}
}

// Acquire returns the shared output, creating it if this is the first holder.
func (s *Shared) Acquire() (Output, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.output == nil {
		out, err := s.factory()
		if err != nil {
			return nil, fmt.Errorf("create audio output: %w", err)
		}

		s.output = out
	}

	s.refs++

	return s.output, nil
}

// Release drops one reference and closes the output when none remain.
// Calling Release more times than Acquire is a no-op.
func (s *Shared) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.refs == 0 {
		return
	}

	s.refs--
	if s.refs > 0 || s.output == nil {
		return
	}

	_ = s.output.Close()
	s.output = nil
}

// PlayTone starts a fixed tone on the output and stops it after the given
// duration. The stop is scheduled in the background; the call returns as
// soon as the tone is sounding.
func PlayTone(out Output, p Params, duration time.Duration) error {
	osc, err := out.NewOscillator(p)
	if err != nil {
		return err
	}

	time.AfterFunc(duration, osc.Stop)

	return nil
}
