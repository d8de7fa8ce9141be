package whatsapp

import (
	"net/url"
	"strings"
	"testing"
)

func TestBuildClickToChatURLSanitizesNumber(t *testing.T) {
	got := BuildClickToChatURL("+41 79 123 45 67", "hello")
	if !strings.HasPrefix(got, "https://wa.me/41791234567?text=") {
		t.Fatalf("unexpected url %q", got)
	}
}

func TestBuildClickToChatURLEncodesMessage(t *testing.T) {
	message := "Pickup: 2025-06-01 09:00\nTotal: CHF 342.00"
	raw := BuildClickToChatURL("41791234567", message)

	parsed, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("url does not parse: %v", err)
	}
	if decoded := parsed.Query().Get("text"); decoded != message {
		t.Fatalf("round-tripped message mismatch:\nwant %q\ngot  %q", message, decoded)
	}
}

func TestBuildClickToChatURLEmptyWithoutNumber(t *testing.T) {
	if got := BuildClickToChatURL("  ", "hello"); got != "" {
		t.Fatalf("expected empty url without digits, got %q", got)
	}
}
