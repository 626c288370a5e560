package payment

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"luxetickets/models"
)

// ChargeRequest is a payment against one checkout.
type ChargeRequest struct {
	Reference string
	UserID    string
	Amount    decimal.Decimal
	Details   models.PaymentDetails
}

type Receipt struct {
	Reference string               `json:"reference"`
	Method    models.PaymentMethod `json:"method"`
	Amount    decimal.Decimal      `json:"amount"`
	Status    string               `json:"status"`
	PaidAt    time.Time            `json:"paidAt"`
}

// Gateway settles payments for one payment method.
type Gateway interface {
	Method() models.PaymentMethod

	// Validate checks the method specific fields before any money moves.
	Validate(details models.PaymentDetails) error

	Charge(ctx context.Context, req ChargeRequest) (*Receipt, error)
}
