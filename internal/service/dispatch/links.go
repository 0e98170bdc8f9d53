package dispatch

import (
	"fmt"
	"net/url"

	"github.com/oshokin/sos-beacon/internal/domain/beacon"
)

// SMSLink builds a pre-filled SMS deep link for one contact. These links
// are static derivations: producing the correctly encoded string is the
// whole contract, opening it is up to the host.
func SMSLink(contact beacon.Contact, text string) string {
	return fmt.Sprintf("sms:%s?&body=%s", contact.PhoneDigits, url.QueryEscape(text))
}

// ChatLink builds a pre-filled chat deep link for one contact.
func ChatLink(chatHost string, contact beacon.Contact, text string) string {
	return fmt.Sprintf("https://%s/%s?text=%s", chatHost, contact.PhoneDigits, url.QueryEscape(text))
}

// BroadcastChatLink builds a recipient-less chat deep link; the user picks
// the conversation in the chat app.
func BroadcastChatLink(chatHost, text string) string {
	return fmt.Sprintf("https://%s/?text=%s", chatHost, url.QueryEscape(text))
}
