package services

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"luxetickets/internal/status"
	"luxetickets/models"
)

var convenienceFeeRate = decimal.RequireFromString("0.03")

type promoRule func(subtotal decimal.Decimal) decimal.Decimal

// Promo codes are matched case-insensitively.
var promoCodes = map[string]promoRule{
	"LUXE10": func(subtotal decimal.Decimal) decimal.Decimal {
		return subtotal.Mul(decimal.RequireFromString("0.10")).Round(0)
	},
	"FIRST50": func(decimal.Decimal) decimal.Decimal {
		return decimal.NewFromInt(50)
	},
}

// ConvenienceFee is 3% of the subtotal rounded to whole rupees.
func ConvenienceFee(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(convenienceFeeRate).Round(0)
}

// PromoDiscount returns the discount of code on subtotal. An empty code
// is no discount.
func PromoDiscount(code string, subtotal decimal.Decimal) (decimal.Decimal, error) {
	code = NormalizePromo(code)
	if code == "" {
		return decimal.Zero, nil
	}
	rule, ok := promoCodes[code]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %q", status.ErrInvalidPromo, code)
	}
	return rule(subtotal), nil
}

func NormalizePromo(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Quote is the price breakdown shown before payment.
type Quote struct {
	Items          []models.CartItem `json:"items"`
	Subtotal       decimal.Decimal   `json:"subtotal"`
	ConvenienceFee decimal.Decimal   `json:"convenienceFee"`
	PromoCode      string            `json:"promoCode,omitempty"`
	PromoDiscount  decimal.Decimal   `json:"promoDiscount"`
	Total          decimal.Decimal   `json:"total"`
}

func NewQuote(items []models.CartItem, promo string) (Quote, error) {
	subtotal := models.CartTotal(items)
	discount, err := PromoDiscount(promo, subtotal)
	if err != nil {
		return Quote{}, err
	}
	fee := ConvenienceFee(subtotal)

	return Quote{
		Items:          items,
		Subtotal:       subtotal,
		ConvenienceFee: fee,
		PromoCode:      NormalizePromo(promo),
		PromoDiscount:  discount,
		Total:          subtotal.Add(fee).Sub(discount),
	}, nil
}
