package location

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/oshokin/sos-beacon/internal/clock"
	"github.com/oshokin/sos-beacon/internal/domain/beacon"
)

// TrackPoint is one entry of a replay track file.
type TrackPoint struct {
	// Lat is the latitude in decimal degrees.
	Lat float64 `yaml:"lat"`
	// Lng is the longitude in decimal degrees.
	Lng float64 `yaml:"lng"`
	// AccuracyMeters is the simulated accuracy radius.
	AccuracyMeters float64 `yaml:"accuracy,omitempty"`
	// After is the delay before this point is emitted.
	After time.Duration `yaml:"after,omitempty"`
}

// Track is the replay track file format.
type Track struct {
	// Points are emitted in order.
	Points []TrackPoint `yaml:"points"`
}

// errEmptyTrack is returned when a track file contains no points.
var errEmptyTrack = errors.New("track has no points")

// Replay is a Provider that plays back a recorded track from a YAML file,
// useful offline and for demos.
type Replay struct {
	// track holds the points to emit.
	track Track
	// clk supplies timestamps.
	clk clock.Clock
}

// NewReplay loads a track file into a replay provider.
func NewReplay(path string, clk clock.Clock) (*Replay, error) {
	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read track: %w", err)
	}

	var track Track
	if err := yaml.Unmarshal(contents, &track); err != nil {
		return nil, fmt.Errorf("unmarshal track: %w", err)
	}

	if len(track.Points) == 0 {
		return nil, errEmptyTrack
	}

	if clk == nil {
		clk = clock.System()
	}

	return &Replay{track: track, clk: clk}, nil
}

// RequestOnce returns the first track point stamped with the current time.
func (r *Replay) RequestOnce(_ context.Context) (*beacon.Fix, error) {
	return r.fix(r.track.Points[0]), nil
}

// Watch plays the track back point by point, honoring each point's delay,
// and stops at the end of the track or on cancel.
func (r *Replay) Watch(onUpdate func(*beacon.Fix), _ func(error)) (Subscription, error) {
	var (
		once sync.Once
		done = make(chan struct{})
	)

	go func() {
		for _, point := range r.track.Points {
			if point.After > 0 {
				select {
				case <-done:
					return
				case <-time.After(point.After):
				}
			}

			select {
			case <-done:
				return
			default:
				onUpdate(r.fix(point))
			}
		}
	}()

	return &funcSubscription{cancel: func() {
		once.Do(func() { close(done) })
	}}, nil
}

// fix converts a track point into a position reading.
func (r *Replay) fix(point TrackPoint) *beacon.Fix {
	return &beacon.Fix{
		Coordinate:     beacon.Coordinate{Lat: point.Lat, Lng: point.Lng},
		AccuracyMeters: point.AccuracyMeters,
		Timestamp:      r.clk.Now(),
	}
}
