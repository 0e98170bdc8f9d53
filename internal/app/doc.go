// Package app assembles the application from its configuration: storage,
// position provider, dispatch capabilities, audio output and the engine.
// Commands create one App, drive the engine through it, and Close it on
// the way out.
package app
