// Package composer renders a structured alert into the text shared through
// every dispatch channel. Compose is a pure function: no I/O, no clock, no
// hidden state.
package composer
