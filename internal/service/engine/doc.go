// Package engine is the emergency signal core. It composes the tracking,
// dispatch, siren and fake-call collaborators behind one facade: the UI
// layer calls its operations and renders its snapshots, and receives
// asynchronous events through the notice stream.
package engine
