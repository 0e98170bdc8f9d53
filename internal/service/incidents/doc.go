// Package incidents records alert attempts with their position and outcome.
package incidents
