// Package whatsapp provides the WhatsApp handoff channel: the click-to-chat
// deep link handed back to the browser, and an optional push client for a
// self-hosted gateway.
package whatsapp

import (
	"net/url"

	"rentcar-backend/platform/phone"
)

const clickToChatHost = "https://wa.me/"

// BuildClickToChatURL builds a wa.me deep link for the given destination
// number with the message pre-filled. The number is reduced to digits only;
// the message is URL-encoded so line breaks and currency amounts survive.
// Returns "" when no destination number is configured.
func BuildClickToChatURL(destinationNumber, message string) string {
	digits := phone.DigitsOnly(destinationNumber)
	if digits == "" {
		return ""
	}
	return clickToChatHost + digits + "?text=" + url.QueryEscape(message)
}
