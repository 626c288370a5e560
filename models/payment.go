package models

type PaymentMethod string

const (
	PaymentUPI    PaymentMethod = "upi"
	PaymentCard   PaymentMethod = "card"
	PaymentWallet PaymentMethod = "wallet"
)

// Label is the display name stored on a booking.
func (m PaymentMethod) Label() string {
	switch m {
	case PaymentUPI:
		return "UPI"
	case PaymentCard:
		return "Card"
	case PaymentWallet:
		return "Wallet"
	}
	return ""
}

type PaymentDetails struct {
	Method     PaymentMethod `json:"paymentMethod"`
	UPIID      string        `json:"upiId,omitempty"`
	CardNumber string        `json:"cardNumber,omitempty"`
	CardExpiry string        `json:"cardExpiry,omitempty"`
	CardCVV    string        `json:"cardCvv,omitempty"`
	CardName   string        `json:"cardName,omitempty"`
}
