// Package location owns position acquisition.
//
// Tracker exposes one-shot fixes and a single cancellable continuous
// session over a Provider, keeps the last-known-good coordinate across
// failures and fans accepted fixes out to subscribers. Static and Replay
// are offline providers; Unavailable stands in when the host has no
// position capability at all.
package location
