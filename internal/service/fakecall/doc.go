// Package fakecall simulates an incoming phone call: a countdown state
// machine that, on expiry, plays a short ring tone and emits a ringing
// notice, giving the user a plausible reason to step away.
package fakecall
