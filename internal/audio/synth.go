package audio

import (
	"encoding/binary"
	"io"
	"math"
	"sync"
	"time"
)

const (
	// sampleRate is the PCM sample rate in hertz.
	sampleRate = 44_100
	// frameDuration is how much audio one rendered buffer covers.
	frameDuration = 20 * time.Millisecond
	// samplesPerFrame is the buffer length in samples.
	samplesPerFrame = sampleRate / 50
)

// Synth is a software Output. It mixes all active oscillators into signed
// 16-bit little-endian mono PCM at 44.1 kHz and writes frames to a sink.
// Concurrent oscillators are summed and clamped, so contention on the one
// output degrades to mixing instead of erroring.
type Synth struct {
	// mu protects oscs and closed.
	mu sync.Mutex
	// sink receives rendered PCM frames.
	sink io.WriteCloser
	// oscs is the set of active oscillators.
	oscs map[*synthOscillator]struct{}
	// done stops the render loop.
	done chan struct{}
	// closed records whether Close has run.
	closed bool
}

// NewSynth creates a synth writing to the provided sink and starts its
// render loop.
func NewSynth(sink io.WriteCloser) *Synth {
	s := &Synth{
		sink: sink,
		oscs: make(map[*synthOscillator]struct{}),
		done: make(chan struct{}),
	}

	go s.render()

	return s
}

// NewOscillator starts a tone that sounds until stopped.
func (s *Synth) NewOscillator(p Params) (Oscillator, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, io.ErrClosedPipe
	}

	osc := &synthOscillator{synth: s, params: p}
	s.oscs[osc] = struct{}{}

	return osc, nil
}

// Close stops the render loop, silences all oscillators and closes the sink.
func (s *Synth) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}

	s.closed = true
	s.oscs = make(map[*synthOscillator]struct{})
	s.mu.Unlock()

	close(s.done)

	return s.sink.Close()
}

// render writes one PCM frame per frame interval while any oscillator is
// active. Sink write errors end the loop; tone state machines stay valid,
// they just go silent.
func (s *Synth) render() {
	ticker := time.NewTicker(frameDuration)
	defer ticker.Stop()

	buf := make([]byte, samplesPerFrame*2)

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			if !s.renderFrame(buf) {
				continue
			}

			if _, err := s.sink.Write(buf); err != nil {
				return
			}
		}
	}
}

// renderFrame mixes all active oscillators into buf.
// It reports whether there was anything to play.
func (s *Synth) renderFrame(buf []byte) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.oscs) == 0 {
		return false
	}

	for i := 0; i < samplesPerFrame; i++ {
		var mixed float64
		for osc := range s.oscs {
			mixed += osc.sample()
		}

		// Clamp the mix, concurrent tones must not wrap around.
		mixed = math.Max(-1, math.Min(1, mixed))
		binary.LittleEndian.PutUint16(buf[i*2:], uint16(int16(mixed*math.MaxInt16)))
	}

	return true
}

// synthOscillator generates one waveform. Its phase lives in [0, 1).
type synthOscillator struct {
	// synth owns the oscillator.
	synth *Synth
	// params holds waveform, frequency and gain. Guarded by synth.mu.
	params Params
	// phase is the waveform position. Guarded by synth.mu.
	phase float64
}

// SetFrequency changes the pitch of the running tone.
func (o *synthOscillator) SetFrequency(hz float64) {
	o.synth.mu.Lock()
	defer o.synth.mu.Unlock()

	o.params.Frequency = hz
}

// Stop removes the oscillator from the mix. Idempotent.
func (o *synthOscillator) Stop() {
	o.synth.mu.Lock()
	defer o.synth.mu.Unlock()

	delete(o.synth.oscs, o)
}

// sample produces the next amplitude in [-1, 1]. Caller holds synth.mu.
func (o *synthOscillator) sample() float64 {
	var v float64

	switch o.params.Waveform {
	case WaveformSawtooth:
		v = 2*o.phase - 1
	case WaveformSquare:
		if o.phase < 0.5 {
			v = 1
		} else {
			v = -1
		}
	case WaveformSine:
		v = math.Sin(2 * math.Pi * o.phase)
	}

	o.phase += o.params.Frequency / sampleRate
	o.phase -= math.Floor(o.phase)

	return v * o.params.Gain
}
