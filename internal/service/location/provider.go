package location

import (
	"context"
	"fmt"

	"github.com/oshokin/sos-beacon/internal/domain/beacon"
)

// Subscription is a live, cancellable stream of position updates.
type Subscription interface {
	// Cancel stops the stream. Idempotent; no update is delivered after
	// Cancel returns.
	Cancel()
}

// Provider is the host position capability.
type Provider interface {
	// RequestOnce resolves a single best-effort fix. The caller bounds it
	// with a context deadline.
	RequestOnce(ctx context.Context) (*beacon.Fix, error)
	// Watch starts recurring updates. Errors on individual updates go to
	// onError and must not end the stream.
	Watch(onUpdate func(*beacon.Fix), onError func(error)) (Subscription, error)
}

// funcSubscription adapts a cancel function to the Subscription interface.
type funcSubscription struct {
	cancel func()
}

func (s *funcSubscription) Cancel() {
	s.cancel()
}

// Unavailable is a Provider for hosts without any position capability.
// Every operation reports beacon.ErrCapabilityUnavailable.
type Unavailable struct{}

// NewUnavailable returns the no-capability provider.
func NewUnavailable() *Unavailable {
	return &Unavailable{}
}

// RequestOnce always fails with beacon.ErrCapabilityUnavailable.
func (*Unavailable) RequestOnce(_ context.Context) (*beacon.Fix, error) {
	return nil, fmt.Errorf("position: %w", beacon.ErrCapabilityUnavailable)
}

// Watch always fails with beacon.ErrCapabilityUnavailable.
func (*Unavailable) Watch(_ func(*beacon.Fix), _ func(error)) (Subscription, error) {
	return nil, fmt.Errorf("position watch: %w", beacon.ErrCapabilityUnavailable)
}
