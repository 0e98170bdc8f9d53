package engine

import (
	"context"
	"fmt"

	"github.com/oshokin/sos-beacon/internal/domain/beacon"
	"github.com/oshokin/sos-beacon/internal/logger"
	"github.com/oshokin/sos-beacon/internal/repository/store"
	"github.com/oshokin/sos-beacon/internal/service/composer"
	"github.com/oshokin/sos-beacon/internal/service/contacts"
	"github.com/oshokin/sos-beacon/internal/service/dispatch"
	"github.com/oshokin/sos-beacon/internal/service/fakecall"
	"github.com/oshokin/sos-beacon/internal/service/incidents"
	"github.com/oshokin/sos-beacon/internal/service/location"
	"github.com/oshokin/sos-beacon/internal/service/siren"
)

// userNameKey is the settings key holding the persisted user name.
const userNameKey = "user_name"

// noticeBuffer bounds the notice stream; the engine never blocks on a slow
// UI collaborator.
const noticeBuffer = 64

// Snapshot is the read-only engine state the UI renders from.
type Snapshot struct {
	// Coordinate is the last known position, nil before the first fix.
	Coordinate *beacon.Coordinate
	// Tracking reports whether the continuous session is active.
	Tracking bool
	// Siren is the siren state.
	Siren siren.State
	// FakeCall is the fake-call state.
	FakeCall fakecall.State
}

// ContactLinks are the static per-contact dispatch derivations.
type ContactLinks struct {
	// Contact is the recipient.
	Contact beacon.Contact
	// SMS is the pre-filled SMS deep link.
	SMS string
	// Chat is the pre-filled chat deep link.
	Chat string
}

// Dependencies wires the engine's collaborators.
type Dependencies struct {
	// Tracker owns position acquisition.
	Tracker *location.Tracker
	// Dispatcher sends composed alerts.
	Dispatcher *dispatch.Dispatcher
	// Siren is the swept-tone player.
	Siren *siren.Player
	// FakeCall is the call simulator.
	FakeCall *fakecall.Simulator
	// Contacts manages recipients.
	Contacts *contacts.Service
	// Incidents records alert attempts.
	Incidents *incidents.Service
	// Store is the settings collaborator.
	Store store.Store
	// MapHost is the map service for location deep links.
	MapHost string
	// DefaultUserName is used when no name is persisted.
	DefaultUserName string
}

// Engine is the emergency signal core: it owns the tracking lifecycle,
// message composition, dispatch and the two distraction machines, and
// exposes read-only snapshots plus a notice stream to the UI collaborator.
type Engine struct {
	deps    Dependencies
	notices chan Notice
}

// New wires the engine and connects the collaborator callbacks.
func New(deps Dependencies) *Engine {
	e := &Engine{
		deps:    deps,
		notices: make(chan Notice, noticeBuffer),
	}

	deps.Tracker.Subscribe(func(fix beacon.Fix) {
		e.notify(Notice{
			Kind:    NoticeFix,
			Message: "Position updated: " + fix.Coordinate.String(),
		})
	})

	deps.Tracker.OnError(func(err error) {
		e.notify(Notice{
			Kind:    NoticeFailure,
			Message: "Position update failed: " + err.Error(),
		})
	})

	deps.FakeCall.OnRing(func() {
		e.notify(Notice{
			Kind:    NoticeRing,
			Message: "Incoming call…",
		})
	})

	return e
}

// Notices returns the engine event stream for the UI collaborator.
func (e *Engine) Notices() <-chan Notice {
	return e.notices
}

// Snapshot returns the current read-only engine state.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Coordinate: e.deps.Tracker.Last(),
		Tracking:   e.deps.Tracker.Tracking(),
		Siren:      e.deps.Siren.Snapshot(),
		FakeCall:   e.deps.FakeCall.Snapshot(),
	}
}

// AlertContext assembles a fresh composition input from current engine
// state and the contact list. Collaborator read failures degrade to empty
// values; building the context never fails.
func (e *Engine) AlertContext(ctx context.Context, note string) beacon.AlertContext {
	recipients, err := e.deps.Contacts.List(ctx)
	if err != nil {
		logger.WarnKV(ctx, "Contact list unavailable", "error", err)

		recipients = nil
	}

	return beacon.AlertContext{
		Coordinate: e.deps.Tracker.Last(),
		UserName:   e.deps.Store.Setting(ctx, userNameKey, e.deps.DefaultUserName),
		Note:       note,
		Recipients: recipients,
	}
}

// ComposeAlert renders the current alert text.
func (e *Engine) ComposeAlert(ctx context.Context, note string) string {
	return composer.Compose(e.AlertContext(ctx, note), e.deps.MapHost)
}

// PressSOS acquires a fresh position when none is cached, composes the
// alert and dispatches it through the best-available channel. The attempt
// is recorded as an incident and always produces a user-visible notice.
func (e *Engine) PressSOS(ctx context.Context, note string) dispatch.Result {
	if e.deps.Tracker.Last() == nil {
		if _, err := e.deps.Tracker.RequestOnce(ctx); err != nil {
			// Keep going: the alert still carries the placeholder text.
			logger.WarnKV(ctx, "SOS without position", "error", err)
			e.notify(Notice{Kind: NoticeFailure, Message: "Location unavailable, sending alert without it"})
		}
	}

	alert := e.AlertContext(ctx, note)
	text := composer.Compose(alert, e.deps.MapHost)

	result := e.deps.Dispatcher.Dispatch(ctx, text)

	// Bookkeeping failures must not mask the dispatch result.
	if _, err := e.deps.Incidents.Record(ctx, note, alert.Coordinate, result.Outcome); err != nil {
		logger.WarnKV(ctx, "Incident bookkeeping failed", "error", err)
	}

	e.notify(Notice{
		Kind:    NoticeDispatch,
		Message: fmt.Sprintf("Alert %s via %s", result.Outcome, result.Channel),
	})

	return result
}

// SetTracking enables or disables the continuous session.
func (e *Engine) SetTracking(ctx context.Context, on bool) error {
	if !on {
		e.deps.Tracker.StopContinuous()

		return nil
	}

	if err := e.deps.Tracker.StartContinuous(ctx); err != nil {
		e.notify(Notice{Kind: NoticeFailure, Message: "Tracking failed: " + err.Error()})

		return err
	}

	return nil
}

// ToggleSiren flips the siren state and reports the resulting state.
func (e *Engine) ToggleSiren(ctx context.Context) (bool, error) {
	if e.deps.Siren.Snapshot().On {
		e.deps.Siren.Stop(ctx)

		return false, nil
	}

	if err := e.deps.Siren.Start(ctx); err != nil {
		e.notify(Notice{Kind: NoticeFailure, Message: "Siren failed: " + err.Error()})

		return false, err
	}

	return true, nil
}

// ArmFakeCall starts the call countdown and returns the clamped delay.
func (e *Engine) ArmFakeCall(ctx context.Context, seconds int) int {
	return e.deps.FakeCall.Arm(ctx, seconds)
}

// CancelFakeCall disarms the countdown without side effects.
func (e *Engine) CancelFakeCall(ctx context.Context) {
	e.deps.FakeCall.Cancel(ctx)
}

// ContactLinks derives the per-contact SMS and chat deep links, all
// pre-filled with the current alert text.
func (e *Engine) ContactLinks(ctx context.Context, note string) ([]ContactLinks, error) {
	recipients, err := e.deps.Contacts.List(ctx)
	if err != nil {
		return nil, err
	}

	text := e.ComposeAlert(ctx, note)

	links := make([]ContactLinks, 0, len(recipients))
	for _, contact := range recipients {
		smsLink, chatLink := e.deps.Dispatcher.ContactLinks(contact, text)
		links = append(links, ContactLinks{Contact: contact, SMS: smsLink, Chat: chatLink})
	}

	return links, nil
}

// CopyAlert places the current alert text on the clipboard and reports
// success.
func (e *Engine) CopyAlert(ctx context.Context, note string) bool {
	ok := e.deps.Dispatcher.CopyToClipboard(ctx, e.ComposeAlert(ctx, note))
	if !ok {
		e.notify(Notice{Kind: NoticeFailure, Message: "Clipboard copy failed"})
	}

	return ok
}

// SetUserName persists the identity used in alert text.
func (e *Engine) SetUserName(ctx context.Context, name string) error {
	return e.deps.Store.SetSetting(ctx, userNameKey, name)
}

// Close tears the engine down: tracking session, siren and fake-call timer
// are released synchronously.
func (e *Engine) Close(ctx context.Context) {
	e.deps.Tracker.StopContinuous()
	e.deps.Siren.Stop(ctx)
	e.deps.FakeCall.Cancel(ctx)
}

// notify publishes a notice without ever blocking the engine.
func (e *Engine) notify(notice Notice) {
	select {
	case e.notices <- notice:
	default:
	}
}
