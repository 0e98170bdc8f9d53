// Package beacon contains core domain types for the safety-alerting logic.
//
// It defines Coordinate and Fix (position readings), Contact (a normalized
// alert recipient), AlertContext (the input of message composition) and the
// dispatch outcome taxonomy, along with the failure sentinels shared by all
// services.
package beacon
