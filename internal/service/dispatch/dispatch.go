package dispatch

import (
	"context"
	"errors"

	"github.com/oshokin/sos-beacon/internal/domain/beacon"
	"github.com/oshokin/sos-beacon/internal/logger"
)

// shareTitle is the title passed to the native share capability.
const shareTitle = "SOS Beacon alert"

// Sharer is the optional native share capability of the host.
type Sharer interface {
	// Available reports whether the capability can be invoked at all.
	Available() bool
	// Share presents the text to the user's share surface. A user abort
	// is reported as beacon.ErrCancelled, which is not a failure.
	Share(ctx context.Context, title, text string) error
}

// Clipboard is the host clipboard capability.
type Clipboard interface {
	// Write places text on the clipboard.
	Write(text string) error
}

// Opener hands a URL to the host for opening in another application.
type Opener interface {
	// Open launches the URL. Fire-and-forget: delivery beyond the
	// hand-off cannot be observed.
	Open(ctx context.Context, url string) error
}

// Result describes how a dispatch attempt ended.
type Result struct {
	// Outcome is the terminal state of the attempt.
	Outcome beacon.DispatchOutcome
	// Channel is the path that carried (or tried to carry) the alert.
	Channel beacon.Channel
	// Link is the deep link used on the fallback channel, empty otherwise.
	Link string
	// Err is the failure detail when Outcome is OutcomeFailed.
	Err error
}

// Dispatcher sends composed alert text through the best-available channel.
type Dispatcher struct {
	// chatHost is the chat service for deep links.
	chatHost string
	// sharer is the optional native share capability, may be nil.
	sharer Sharer
	// clipboard is the host clipboard capability, may be nil.
	clipboard Clipboard
	// opener launches fallback deep links.
	opener Opener
}

// NewDispatcher wires the host capabilities into a dispatcher. sharer and
// clipboard may be nil when the host lacks them; opener is required.
func NewDispatcher(chatHost string, sharer Sharer, clipboard Clipboard, opener Opener) *Dispatcher {
	return &Dispatcher{
		chatHost:  chatHost,
		sharer:    sharer,
		clipboard: clipboard,
		opener:    opener,
	}
}

// Dispatch sends the text through the first available channel. One attempt
// per invocation: a failed channel is reported, never retried on another.
func (d *Dispatcher) Dispatch(ctx context.Context, text string) Result {
	if d.sharer != nil && d.sharer.Available() {
		return d.shareNative(ctx, text)
	}

	// Fallback: open a chat deep link with the text pre-filled.
	link := BroadcastChatLink(d.chatHost, text)

	if err := d.opener.Open(ctx, link); err != nil {
		logger.ErrorKV(ctx, "Chat link open failed", "error", err)

		return Result{Outcome: beacon.OutcomeFailed, Channel: beacon.ChannelChatLink, Link: link, Err: err}
	}

	logger.InfoKV(ctx, "Alert handed to chat link", "link", link)

	return Result{Outcome: beacon.OutcomeSent, Channel: beacon.ChannelChatLink, Link: link}
}

// shareNative runs the native share flow and maps a user abort to the
// Cancelled outcome.
func (d *Dispatcher) shareNative(ctx context.Context, text string) Result {
	err := d.sharer.Share(ctx, shareTitle, text)

	switch {
	case err == nil:
		logger.Info(ctx, "Alert shared natively")

		return Result{Outcome: beacon.OutcomeSent, Channel: beacon.ChannelNativeShare}
	case errors.Is(err, beacon.ErrCancelled):
		logger.Info(ctx, "Share cancelled by user")

		return Result{Outcome: beacon.OutcomeCancelled, Channel: beacon.ChannelNativeShare}
	default:
		logger.ErrorKV(ctx, "Native share failed", "error", err)

		return Result{Outcome: beacon.OutcomeFailed, Channel: beacon.ChannelNativeShare, Err: err}
	}
}

// CopyToClipboard writes the text to the clipboard and reports success.
// Failure is logged and returned, never swallowed.
func (d *Dispatcher) CopyToClipboard(ctx context.Context, text string) bool {
	if d.clipboard == nil {
		logger.Warn(ctx, "Clipboard capability is absent")

		return false
	}

	if err := d.clipboard.Write(text); err != nil {
		logger.ErrorKV(ctx, "Clipboard write failed", "error", err)

		return false
	}

	return true
}

// ContactLinks returns the two always-available deep links for a contact,
// both pre-filled with the composed text.
func (d *Dispatcher) ContactLinks(contact beacon.Contact, text string) (smsLink, chatLink string) {
	return SMSLink(contact, text), ChatLink(d.chatHost, contact, text)
}
