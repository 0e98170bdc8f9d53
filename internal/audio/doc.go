// Package audio models the host audio capability.
//
// Output creates oscillators with a waveform, frequency and gain; Shared is
// the process-wide handle that lazily creates the output on first Acquire
// and tears it down on the last Release, so the siren and the fake call can
// share one output without owning its lifecycle. Synth renders the mix as
// raw PCM; NewPlayerOutput pipes it into a built-in system player.
package audio
