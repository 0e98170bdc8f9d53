package incidents

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/oshokin/sos-beacon/internal/clock"
	"github.com/oshokin/sos-beacon/internal/domain/beacon"
	"github.com/oshokin/sos-beacon/internal/logger"
	"github.com/oshokin/sos-beacon/internal/repository/store"
)

// Service records alert attempts for later review.
type Service struct {
	// store is the persistence collaborator.
	store store.Store
	// clk supplies timestamps.
	clk clock.Clock
}

// NewService creates an incident service over the provided store.
func NewService(s store.Store, clk clock.Clock) *Service {
	if clk == nil {
		clk = clock.System()
	}

	return &Service{store: s, clk: clk}
}

// Record stores one incident with a generated ID and the current time.
// Recording failures are logged and returned; they never block an alert.
func (s *Service) Record(ctx context.Context, note string, coordinate *beacon.Coordinate, outcome beacon.DispatchOutcome) (*beacon.Incident, error) {
	incident := &beacon.Incident{
		ID:         uuid.NewString(),
		Timestamp:  s.clk.Now(),
		Note:       note,
		Coordinate: coordinate,
		Outcome:    outcome,
	}

	if err := s.store.AppendIncident(ctx, incident.Clone()); err != nil {
		logger.ErrorKV(ctx, "Incident not recorded", "error", err)

		return nil, fmt.Errorf("record incident: %w", err)
	}

	return incident, nil
}

// Recent lists the latest incidents, newest first.
func (s *Service) Recent(ctx context.Context, limit int) ([]*beacon.Incident, error) {
	incidents, err := s.store.Incidents(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list incidents: %w", err)
	}

	return incidents, nil
}
