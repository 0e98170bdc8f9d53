// Package dispatch sends composed alert text through the best-available
// channel: the native share capability when present, otherwise a chat deep
// link opened through the host. It also derives the per-contact SMS and
// chat links and wraps the clipboard capability.
package dispatch
