package composer

import (
	"strings"

	"github.com/oshokin/sos-beacon/internal/domain/beacon"
)

// noLocationText is the base text used before the first successful fix.
const noLocationText = "🚨 SOS! I need help. My location is unavailable right now."

// Compose renders an alert context into the text sent through every
// channel. It is deterministic and has no side effects: identical input
// always yields identical text.
//
// Layout, top to bottom: identity line (when a user name is set), base text
// with the position rounded to five decimals and a map deep link built from
// the raw coordinate, a "Note:" line for a non-empty note, and a "Notify:"
// line listing recipients verbatim, in order, duplicates kept.
func Compose(alert beacon.AlertContext, mapHost string) string {
	var b strings.Builder

	if alert.UserName != "" {
		b.WriteString("👤 ")
		b.WriteString(alert.UserName)
		b.WriteString("\n")
	}

	if alert.Coordinate == nil {
		b.WriteString(noLocationText)
	} else {
		b.WriteString("🚨 SOS! I need help. My location: ")
		b.WriteString(alert.Coordinate.String())
		b.WriteString("\n")
		b.WriteString(alert.Coordinate.MapLink(mapHost))
	}

	if alert.Note != "" {
		b.WriteString("\nNote: ")
		b.WriteString(alert.Note)
	}

	if len(alert.Recipients) > 0 {
		labels := make([]string, 0, len(alert.Recipients))
		for _, contact := range alert.Recipients {
			labels = append(labels, contact.Label())
		}

		b.WriteString("\nNotify: ")
		b.WriteString(strings.Join(labels, ", "))
	}

	return strings.TrimSpace(b.String())
}
