package payment

import (
	"context"
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"luxetickets/internal/status"
	"luxetickets/models"
)

// SimulatedGateway approves every well formed payment after a fixed delay.
type SimulatedGateway struct {
	method models.PaymentMethod
	delay  time.Duration
	now    func() time.Time
}

func NewSimulatedGateway(method models.PaymentMethod, delay time.Duration) *SimulatedGateway {
	return &SimulatedGateway{method: method, delay: delay, now: time.Now}
}

func (g *SimulatedGateway) Method() models.PaymentMethod {
	return g.method
}

func (g *SimulatedGateway) Validate(details models.PaymentDetails) error {
	var err error
	switch g.method {
	case models.PaymentUPI:
		err = validation.ValidateStruct(&details,
			validation.Field(&details.UPIID, validation.By(notBlank("UPI ID"))),
		)
	case models.PaymentCard:
		err = validation.ValidateStruct(&details,
			validation.Field(&details.CardNumber, validation.By(notBlank("card number"))),
			validation.Field(&details.CardExpiry, validation.By(notBlank("expiry"))),
			validation.Field(&details.CardCVV, validation.By(notBlank("CVV"))),
			validation.Field(&details.CardName, validation.By(notBlank("cardholder name"))),
		)
	}
	if err != nil {
		return fmt.Errorf("%w: %w", status.ErrPaymentDetails, err)
	}
	return nil
}

func notBlank(label string) validation.RuleFunc {
	return func(value any) error {
		s, _ := value.(string)
		if strings.TrimSpace(s) == "" {
			return validation.NewError("validation_required", "please enter "+label)
		}
		return nil
	}
}

func (g *SimulatedGateway) Charge(ctx context.Context, req ChargeRequest) (*Receipt, error) {
	if err := g.Validate(req.Details); err != nil {
		return nil, err
	}

	if g.delay > 0 {
		timer := time.NewTimer(g.delay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %w", status.ErrFailedPayment, ctx.Err())
		case <-timer.C:
		}
	}

	return &Receipt{
		Reference: req.Reference,
		Method:    g.method,
		Amount:    req.Amount,
		Status:    "paid",
		PaidAt:    g.now(),
	}, nil
}
