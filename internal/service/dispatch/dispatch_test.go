package dispatch

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/sos-beacon/internal/domain/beacon"
)

// fakeSharer scripts the native share capability.
type fakeSharer struct {
	available bool
	err       error
	calls     int
}

func (f *fakeSharer) Available() bool {
	return f.available
}

func (f *fakeSharer) Share(_ context.Context, _, _ string) error {
	f.calls++
	return f.err
}

// fakeOpener records opened URLs.
type fakeOpener struct {
	err   error
	urls  []string
	calls int
}

func (f *fakeOpener) Open(_ context.Context, url string) error {
	f.calls++
	f.urls = append(f.urls, url)

	return f.err
}

// fakeClipboard records writes.
type fakeClipboard struct {
	err  error
	text string
}

func (f *fakeClipboard) Write(text string) error {
	f.text = text
	return f.err
}

// TestDispatchNativeShare verifies the share path and its outcome mapping.
func TestDispatchNativeShare(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	opener := &fakeOpener{}

	// Success.
	sharer := &fakeSharer{available: true}
	d := NewDispatcher("wa.me", sharer, nil, opener)
	result := d.Dispatch(ctx, "help")
	require.Equal(t, beacon.OutcomeSent, result.Outcome)
	require.Equal(t, beacon.ChannelNativeShare, result.Channel)

	// User cancel is a distinct outcome, not a failure, and no fallback runs.
	sharer.err = beacon.ErrCancelled
	result = d.Dispatch(ctx, "help")
	require.Equal(t, beacon.OutcomeCancelled, result.Outcome)
	require.Zero(t, opener.calls)

	// Share failure is reported as-is, still no cross-channel retry.
	sharer.err = errors.New("share sheet crashed")
	result = d.Dispatch(ctx, "help")
	require.Equal(t, beacon.OutcomeFailed, result.Outcome)
	require.Error(t, result.Err)
	require.Zero(t, opener.calls)
}

// TestDispatchChatFallback verifies the deep-link fallback when native
// share is unavailable.
func TestDispatchChatFallback(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	opener := &fakeOpener{}
	d := NewDispatcher("wa.me", &fakeSharer{available: false}, nil, opener)

	result := d.Dispatch(ctx, "help me & hurry")
	require.Equal(t, beacon.OutcomeSent, result.Outcome)
	require.Equal(t, beacon.ChannelChatLink, result.Channel)
	require.Equal(t, "https://wa.me/?text=help+me+%26+hurry", result.Link)
	require.Equal(t, []string{result.Link}, opener.urls)

	// A nil sharer routes the same way.
	d = NewDispatcher("wa.me", nil, nil, opener)
	result = d.Dispatch(ctx, "x")
	require.Equal(t, beacon.ChannelChatLink, result.Channel)

	// Opener failure is a failed outcome, never a panic.
	opener.err = errors.New("no handler")
	result = d.Dispatch(ctx, "x")
	require.Equal(t, beacon.OutcomeFailed, result.Outcome)
	require.Error(t, result.Err)
}

// TestContactLinks verifies the per-contact deep link derivations.
func TestContactLinks(t *testing.T) {
	t.Parallel()

	d := NewDispatcher("wa.me", nil, nil, &fakeOpener{})
	contact := beacon.Contact{DisplayName: "Mom", PhoneDigits: "15551234567"}

	smsLink, chatLink := d.ContactLinks(contact, "I need help")
	require.Equal(t, "sms:15551234567?&body=I+need+help", smsLink)
	require.Equal(t, "https://wa.me/15551234567?text=I+need+help", chatLink)
}

// TestCopyToClipboard verifies the result is always reported to the caller.
func TestCopyToClipboard(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	clip := &fakeClipboard{}
	d := NewDispatcher("wa.me", nil, clip, &fakeOpener{})

	require.True(t, d.CopyToClipboard(ctx, "text"))
	require.Equal(t, "text", clip.text)

	clip.err = errors.New("denied")
	require.False(t, d.CopyToClipboard(ctx, "text"))

	// A missing capability reports failure instead of panicking.
	d = NewDispatcher("wa.me", nil, nil, &fakeOpener{})
	require.False(t, d.CopyToClipboard(ctx, "text"))
}
