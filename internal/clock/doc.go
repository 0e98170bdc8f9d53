// Package clock abstracts tickers behind an injectable interface.
//
// Timer-driven state machines (siren sweep, fake-call countdown) take a
// Clock so tests can step ticks synchronously with the Manual implementation
// instead of relying on wall-clock delays.
package clock
