package beacon

// DispatchOutcome is the result of attempting to send a composed alert
// through a channel.
type DispatchOutcome int

const (
	// OutcomeSent means the channel accepted the alert. For fire-and-forget
	// channels this is a hand-off, not a delivery guarantee.
	OutcomeSent DispatchOutcome = iota
	// OutcomeCancelled means the user aborted the share dialog.
	OutcomeCancelled
	// OutcomeFailed means the channel reported an error.
	OutcomeFailed
)

// String returns the lowercase outcome name for logs and notices.
func (o DispatchOutcome) String() string {
	switch o {
	case OutcomeSent:
		return "sent"
	case OutcomeCancelled:
		return "cancelled"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Channel identifies which dispatch path carried the alert.
type Channel int

const (
	// ChannelNativeShare is the platform share capability.
	ChannelNativeShare Channel = iota
	// ChannelChatLink is the web-messaging deep link fallback.
	ChannelChatLink
)

// String returns the channel name for logs and notices.
func (c Channel) String() string {
	switch c {
	case ChannelNativeShare:
		return "native-share"
	case ChannelChatLink:
		return "chat-link"
	default:
		return "unknown"
	}
}
