package whatsapp

import (
	"github.com/skip2/go-qrcode"
)

// ChatQRPNG renders the operator click-to-chat link as a QR code PNG, used on
// printed flyers and the contact page. Returns nil when no destination number
// is configured.
func ChatQRPNG(destinationNumber, message string, size int) ([]byte, error) {
	link := BuildClickToChatURL(destinationNumber, message)
	if link == "" {
		return nil, nil
	}
	if size <= 0 {
		size = 256
	}
	return qrcode.Encode(link, qrcode.Medium, size)
}
