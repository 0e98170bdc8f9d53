package audio

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"runtime"
	"strings"

	"github.com/oshokin/sos-beacon/internal/domain/beacon"
)

// playerSink pipes PCM frames into an external player process.
type playerSink struct {
	// cmd is the running player.
	cmd *exec.Cmd
	// stdin receives the PCM stream.
	stdin io.WriteCloser
}

// NewPlayerOutput creates a synth backed by a common, built-in audio player:
//   - Linux: `aplay` (ALSA)
//   - macOS: `play` (sox)
//
// Other systems report the capability as unavailable; callers fall back to
// a silent output instead of failing the tone state machines.
func NewPlayerOutput(ctx context.Context) (Output, error) {
	sink, err := newPlayerSink(ctx)
	if err != nil {
		return nil, err
	}

	return NewSynth(sink), nil
}

// newPlayerSink starts the per-OS player process reading raw PCM on stdin.
func newPlayerSink(ctx context.Context) (io.WriteCloser, error) {
	var cmd *exec.Cmd

	osName := strings.ToLower(runtime.GOOS)

	switch {
	case strings.Contains(osName, "linux"):
		cmd = exec.CommandContext(ctx, "aplay", "-q", "-t", "raw", "-f", "S16_LE", "-r", "44100", "-c", "1", "-")
	case strings.Contains(osName, "darwin"):
		cmd = exec.CommandContext(ctx, "play", "-q", "-t", "raw", "-r", "44100", "-e", "signed", "-b", "16", "-c", "1", "-")
	default:
		return nil, fmt.Errorf("no audio player for %s: %w", runtime.GOOS, beacon.ErrCapabilityUnavailable)
	}

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("player stdin: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start player: %w", beacon.ErrCapabilityUnavailable)
	}

	return &playerSink{cmd: cmd, stdin: stdin}, nil
}

// Write streams one PCM frame to the player.
func (p *playerSink) Write(data []byte) (int, error) {
	return p.stdin.Write(data)
}

// Close ends the stream and reaps the player process.
func (p *playerSink) Close() error {
	err := p.stdin.Close()
	_ = p.cmd.Wait()

	return err
}
