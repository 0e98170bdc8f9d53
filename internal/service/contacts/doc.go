// Package contacts manages the alert recipient list and enforces the phone
// digits invariant at the boundary.
package contacts
