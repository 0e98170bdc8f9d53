package engine

// NoticeKind classifies engine events for the UI collaborator.
type NoticeKind uint8

// Notice kinds.
const (
	// NoticeFix reports an accepted position update.
	NoticeFix NoticeKind = iota + 1
	// NoticeDispatch reports the terminal state of an alert attempt.
	NoticeDispatch
	// NoticeRing reports the fake incoming call firing.
	NoticeRing
	// NoticeFailure reports a degraded capability or failed operation.
	NoticeFailure
)

// String implements fmt.Stringer.
func (k NoticeKind) String() string {
	switch k {
	case NoticeFix:
		return "fix"
	case NoticeDispatch:
		return "dispatch"
	case NoticeRing:
		return "ring"
	case NoticeFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// Notice is a single user-visible engine event.
type Notice struct {
	// Kind classifies the event.
	Kind NoticeKind
	// Message is the human-readable description.
	Message string
}
