package beacon

import "time"

// Incident is one recorded alert attempt with its optional note and the
// position and outcome at dispatch time.
type Incident struct {
	// ID is a generated unique identifier.
	ID string
	// Timestamp is when the incident was recorded.
	Timestamp time.Time
	// Note is the free-form text attached to the alert, may be empty.
	Note string
	// Coordinate is the position at dispatch time, nil when unknown.
	Coordinate *Coordinate
	// Outcome is how the dispatch ended.
	Outcome DispatchOutcome
}

// Clone returns a copy of the incident to avoid leaking internal references.
func (i *Incident) Clone() *Incident {
	if i == nil {
		return nil
	}

	cloned := *i

	if i.Coordinate != nil {
		coord := *i.Coordinate
		cloned.Coordinate = &coord
	}

	return &cloned
}
