package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

const alphanumeric = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func GenerateCode(n int) (string, error) {
	// Make a slice of nBytes random bytes.
	byt := make([]byte, n)

	// Read into the slice.
	if _, err := rand.Read(byt); err != nil {
		return "", err
	}

	// Return the hexadecimal string.
	return strings.ToUpper(hex.EncodeToString(byt)), nil
}

// RandomAlphanumeric returns length characters drawn from A-Z0-9.
func RandomAlphanumeric(length int) (string, error) {
	code := make([]byte, length)
	if _, err := rand.Read(code); err != nil {
		return "", err
	}
	for i := range code {
		code[i] = alphanumeric[int(code[i])%len(alphanumeric)]
	}
	return string(code), nil
}

// GenerateBookingID returns BK<unix millis><5 random alphanumerics>.
func GenerateBookingID(now time.Time) (string, error) {
	suffix, err := RandomAlphanumeric(5)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("BK%d%s", now.UnixMilli(), suffix), nil
}

// GenerateTicketCode returns QR-<8 uppercase hex>, the scan token printed
// on a ticket.
func GenerateTicketCode() (string, error) {
	code, err := GenerateCode(4)
	if err != nil {
		return "", err
	}
	return "QR-" + code, nil
}
