// Package tickets renders the scannable QR code and printable PDF of a
// booking.
package tickets

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/skip2/go-qrcode"

	"luxetickets/internal/status"
	"luxetickets/models"
)

const qrSize = 256

type Renderer struct {
	secret []byte
}

func NewRenderer(secret string) *Renderer {
	return &Renderer{secret: []byte(secret)}
}

// Payload is bookingID|qrCode|userID|signature. The signature lets a
// scanner verify the ticket without a database round trip.
func (r *Renderer) Payload(booking models.Booking) string {
	data := fmt.Sprintf("%s|%s|%s", booking.ID, booking.QRCode, booking.UserID)
	return data + "|" + r.sign(data)
}

// Claim is what a signed ticket payload asserts about its booking.
type Claim struct {
	BookingID string
	QRCode    string
	UserID    string
}

// Parse verifies a scanned payload and splits it into its claim.
func (r *Renderer) Parse(payload string) (Claim, error) {
	payload = strings.TrimSpace(payload)
	if !r.Verify(payload) {
		return Claim{}, status.ErrInvalidTicket
	}
	parts := strings.Split(payload, "|")
	if len(parts) != 4 || parts[0] == "" {
		return Claim{}, status.ErrInvalidTicket
	}
	return Claim{BookingID: parts[0], QRCode: parts[1], UserID: parts[2]}, nil
}

// Verify checks a payload produced by Payload.
func (r *Renderer) Verify(payload string) bool {
	i := strings.LastIndex(payload, "|")
	if i < 0 {
		return false
	}
	expected := r.sign(payload[:i])
	return hmac.Equal([]byte(expected), []byte(payload[i+1:]))
}

func (r *Renderer) sign(data string) string {
	h := hmac.New(sha256.New, r.secret)
	h.Write([]byte(data))
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}

// QRCode returns the booking's QR code as a PNG.
func (r *Renderer) QRCode(booking models.Booking) ([]byte, error) {
	png, err := qrcode.Encode(r.Payload(booking), qrcode.Medium, qrSize)
	if err != nil {
		return nil, fmt.Errorf("encode qr code: %w", err)
	}
	return png, nil
}
