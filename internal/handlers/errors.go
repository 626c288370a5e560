package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pocketbase/pocketbase/apis"

	"luxetickets/internal/status"
)

type errorMapping struct {
	target  error
	status  int
	message string
}

// Order matters: wrapped payment validation errors must hit the payment
// entry before the generic validation check.
var errorMappings = []errorMapping{
	{status.ErrEmailTaken, http.StatusBadRequest, "An account with this email already exists"},
	{status.ErrAccountNotFound, http.StatusUnauthorized, "No account found with this email"},
	{status.ErrIncorrectPassword, http.StatusUnauthorized, "Incorrect password"},
	{status.ErrInvalidSession, http.StatusUnauthorized, "Please sign in to continue"},

	{status.ErrUserNotFound, http.StatusNotFound, "User not found"},
	{status.ErrEventNotFound, http.StatusNotFound, "Event not found"},
	{status.ErrCartItemNotFound, http.StatusNotFound, "Cart item not found"},
	{status.ErrBookingNotFound, http.StatusNotFound, "Booking not found"},
	{status.ErrSubmissionNotFound, http.StatusNotFound, "Submission not found"},

	{status.ErrShowNotAvailable, http.StatusBadRequest, "This show is not available"},
	{status.ErrInvalidTier, http.StatusBadRequest, "Invalid seat tier"},
	{status.ErrNoSeatsSelected, http.StatusBadRequest, "Please select at least one seat"},
	{status.ErrInvalidSeat, http.StatusBadRequest, "Invalid seat selection"},
	{status.ErrEmptyCart, http.StatusBadRequest, "Your cart is empty"},
	{status.ErrInvalidPromo, http.StatusBadRequest, "Invalid promo code"},
	{status.ErrInvalidPaymentMethod, http.StatusBadRequest, "Unsupported payment method"},
	{status.ErrPaymentDetails, http.StatusBadRequest, "Please fill in all payment details"},
	{status.ErrInvalidTicket, http.StatusBadRequest, "Ticket could not be verified"},

	{status.ErrSeatUnavailable, http.StatusConflict, "One or more seats are no longer available"},
	{status.ErrBookingIDConflict, http.StatusConflict, "Could not create booking, please retry"},
	{status.ErrBookingCancelled, http.StatusConflict, "Booking has been cancelled"},
	{status.ErrConcurrentUpdate, http.StatusConflict, "Your request conflicted with another update, please retry"},

	{status.ErrFailedPayment, http.StatusPaymentRequired, "Payment failed"},
}

// apiError converts a service error into the PocketBase API error the
// client sees. Unknown errors are logged and hidden behind a 500.
func apiError(err error) error {
	if err == nil {
		return nil
	}

	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return apis.NewApiError(m.status, m.message, fieldErrors(err))
		}
	}

	if status.IsValidation(err) {
		var single *status.ValidationError
		if errors.As(err, &single) {
			return apis.NewBadRequestError(single.Error(), nil)
		}
		return apis.NewBadRequestError("Please check the highlighted fields", fieldErrors(err))
	}

	slog.Error("Unhandled request error", "error", err)
	return apis.NewApiError(http.StatusInternalServerError, "Something went wrong, please try again", nil)
}

// fieldErrors extracts per-field messages so the client can highlight them.
func fieldErrors(err error) any {
	var fields validation.Errors
	if errors.As(err, &fields) {
		return fields
	}
	return nil
}
