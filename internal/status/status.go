package status

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var (
	ErrEmailTaken        = errors.New("auth: an account with this email already exists")
	ErrAccountNotFound   = errors.New("auth: no account found with this email")
	ErrIncorrectPassword = errors.New("auth: incorrect password")
	ErrInvalidSession    = errors.New("auth: session is invalid or expired")
	ErrUserNotFound      = errors.New("user: user not found")

	ErrEventNotFound    = errors.New("event: event not found")
	ErrShowNotAvailable = errors.New("event: date or time not offered for this event")
	ErrInvalidTier      = errors.New("seat: invalid seat tier")
	ErrNoSeatsSelected  = errors.New("seat: select at least one seat")
	ErrInvalidSeat      = errors.New("seat: invalid seat")
	ErrSeatUnavailable  = errors.New("seat: seat already booked")

	ErrCartItemNotFound = errors.New("cart: item not found")
	ErrEmptyCart        = errors.New("cart: no items to checkout")

	ErrInvalidPromo         = errors.New("promo: this promo code is not valid")
	ErrInvalidPaymentMethod = errors.New("payment: unsupported payment method")
	ErrPaymentDetails       = errors.New("payment: payment details required")
	ErrFailedPayment        = errors.New("payment: payment failed")

	ErrBookingNotFound   = errors.New("booking: booking not found")
	ErrBookingIDConflict = errors.New("booking: booking id already exists")
	ErrBookingCancelled  = errors.New("booking: booking has been cancelled")
	ErrInvalidTicket     = errors.New("ticket: ticket signature is invalid")
	ErrConcurrentUpdate  = errors.New("store: concurrent update, retry")

	ErrSubmissionNotFound = errors.New("support: submission not found")
)

// ValidationError is a user-facing form error (missing field, bad value).
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func Invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation reports whether err is a form error, either a single
// ValidationError or a set of field errors from ozzo-validation.
func IsValidation(err error) bool {
	var v *ValidationError
	var fields validation.Errors
	return errors.As(err, &v) || errors.As(err, &fields)
}
