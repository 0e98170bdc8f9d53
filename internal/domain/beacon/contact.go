package beacon

import (
	"fmt"
	"strings"
)

// Contact is an alert recipient. PhoneDigits contains only decimal digits
// and is never empty; a contact violating that invariant cannot be built.
type Contact struct {
	// DisplayName is the human-readable name, may be empty.
	DisplayName string
	// PhoneDigits is the phone number reduced to decimal digits.
	PhoneDigits string
}

// NewContact validates and normalizes a raw phone number into a contact.
// Formatting characters are stripped ("+1 (555) 010-2000" becomes
// "15550102000"); input without any digit is rejected with ErrInvalidInput.
func NewContact(displayName, rawPhone string) (Contact, error) {
	digits := NormalizePhone(rawPhone)
	if digits == "" {
		return Contact{}, fmt.Errorf("phone %q has no digits: %w", rawPhone, ErrInvalidInput)
	}

	return Contact{
		DisplayName: strings.TrimSpace(displayName),
		PhoneDigits: digits,
	}, nil
}

// NormalizePhone strips everything but decimal digits from a phone number.
func NormalizePhone(raw string) string {
	var b strings.Builder

	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}

	return b.String()
}

// Label returns the display name, falling back to the phone digits.
func (c Contact) Label() string {
	if c.DisplayName != "" {
		return c.DisplayName
	}

	return c.PhoneDigits
}
