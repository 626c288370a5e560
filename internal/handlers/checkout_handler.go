package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"luxetickets/internal/services"
)

type CheckoutHandler struct {
	checkout *services.CheckoutService
}

func NewCheckoutHandler(checkout *services.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout}
}

// Checkout - pay for the cart and confirm a booking
//
//	POST /api/v1/checkout {"paymentMethod":"upi","upiId":"name@bank","promoCode":"LUXE10"}
func (h *CheckoutHandler) Checkout(e *core.RequestEvent) error {
	user, err := currentUser(e)
	if err != nil {
		return err
	}

	var req services.CheckoutRequest
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	booking, err := h.checkout.Checkout(e.Request.Context(), user.ID, req)
	if err != nil {
		return apiError(err)
	}
	return e.JSON(http.StatusCreated, booking)
}
