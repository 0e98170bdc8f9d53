package beacon

import "errors"

// Failure taxonomy shared by all services. Components report these as
// result values across their boundaries; none of them is ever thrown past
// a running loop.
var (
	// ErrPermissionDenied indicates a location or audio capability was refused.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrCapabilityUnavailable indicates the host lacks the required capability.
	ErrCapabilityUnavailable = errors.New("capability unavailable")
	// ErrTimeout indicates a position fix exceeded its time bound.
	ErrTimeout = errors.New("timed out")
	// ErrCancelled indicates a user-initiated abort of a share or dialog.
	// It is a distinct outcome, not a failure.
	ErrCancelled = errors.New("cancelled")
	// ErrInvalidInput indicates input rejected at the boundary before it
	// could enter the data model.
	ErrInvalidInput = errors.New("invalid input")
)
