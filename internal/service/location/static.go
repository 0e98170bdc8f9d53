package location

import (
	"context"
	"sync"
	"time"

	"github.com/oshokin/sos-beacon/internal/clock"
	"github.com/oshokin/sos-beacon/internal/domain/beacon"
)

// defaultStaticInterval is how often the static provider re-emits its
// position during a watch.
const defaultStaticInterval = 2 * time.Second

// Static is a Provider reporting a fixed, configured position. It works
// fully offline and stands in for a real sensor on hosts without one.
type Static struct {
	// coordinate is the fixed position.
	coordinate beacon.Coordinate
	// accuracy is the reported accuracy radius in meters.
	accuracy float64
	// interval is the watch re-emit period.
	interval time.Duration
	// clk supplies time.
	clk clock.Clock
}

// NewStatic creates a provider pinned to the given coordinate.
func NewStatic(coordinate beacon.Coordinate, accuracyMeters float64, clk clock.Clock) *Static {
	if clk == nil {
		clk = clock.System()
	}

	return &Static{
		coordinate: coordinate,
		accuracy:   accuracyMeters,
		interval:   defaultStaticInterval,
		clk:        clk,
	}
}

// RequestOnce returns the fixed position stamped with the current time.
func (s *Static) RequestOnce(_ context.Context) (*beacon.Fix, error) {
	return s.fix(), nil
}

// Watch emits the fixed position immediately and then once per interval
// until cancelled.
func (s *Static) Watch(onUpdate func(*beacon.Fix), _ func(error)) (Subscription, error) {
	var (
		once sync.Once
		done = make(chan struct{})
	)

	ticker := s.clk.NewTicker(s.interval)

	go func() {
		onUpdate(s.fix())

		for {
			select {
			case <-done:
				return
			case <-ticker.C():
				onUpdate(s.fix())
			}
		}
	}()

	return &funcSubscription{cancel: func() {
		once.Do(func() {
			ticker.Stop()
			close(done)
		})
	}}, nil
}

// fix builds a fresh reading of the fixed position.
func (s *Static) fix() *beacon.Fix {
	return &beacon.Fix{
		Coordinate:     s.coordinate,
		AccuracyMeters: s.accuracy,
		Timestamp:      s.clk.Now(),
	}
}
