// Package siren drives the swept-tone distraction signal: a two-state
// machine (Idle, Sounding) over one oscillator on the shared audio output.
package siren
