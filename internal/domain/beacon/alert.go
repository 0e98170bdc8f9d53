package beacon

// AlertContext is the input of message composition. It is built fresh on
// every request from current engine state plus the contact list; it has no
// lifecycle of its own.
type AlertContext struct {
	// Coordinate is the last known position, nil until a fix succeeds.
	Coordinate *Coordinate
	// UserName is the identity line, empty when not configured.
	UserName string
	// Note is free-form text appended to the alert.
	Note string
	// Recipients are the contacts to notify, in list order, duplicates kept.
	Recipients []Contact
}

// Clone returns a deep copy so callers cannot mutate engine state through
// a snapshot.
func (a *AlertContext) Clone() *AlertContext {
	if a == nil {
		return nil
	}

	cloned := *a

	if a.Coordinate != nil {
		coord := *a.Coordinate
		cloned.Coordinate = &coord
	}

	if a.Recipients != nil {
		cloned.Recipients = make([]Contact, len(a.Recipients))
		copy(cloned.Recipients, a.Recipients)
	}

	return &cloned
}
