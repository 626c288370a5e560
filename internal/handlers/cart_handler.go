package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"luxetickets/internal/services"
)

type CartHandler struct {
	carts    *services.CartService
	checkout *services.CheckoutService
}

func NewCartHandler(carts *services.CartService, checkout *services.CheckoutService) *CartHandler {
	return &CartHandler{carts: carts, checkout: checkout}
}

func (h *CartHandler) GetCart(e *core.RequestEvent) error {
	user, err := currentUser(e)
	if err != nil {
		return err
	}
	ctx := e.Request.Context()

	items, err := h.carts.GetCart(ctx, user.ID)
	if err != nil {
		return apiError(err)
	}
	total, err := h.carts.GetTotal(ctx, user.ID)
	if err != nil {
		return apiError(err)
	}
	count, err := h.carts.ItemCount(ctx, user.ID)
	if err != nil {
		return apiError(err)
	}

	return e.JSON(http.StatusOK, map[string]any{
		"items":     items,
		"total":     total,
		"itemCount": count,
	})
}

// AddItem - put a show and its seats in the cart
func (h *CartHandler) AddItem(e *core.RequestEvent) error {
	user, err := currentUser(e)
	if err != nil {
		return err
	}

	var in services.AddItemInput
	if err := e.BindBody(&in); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	item, err := h.carts.AddItem(e.Request.Context(), user.ID, in)
	if err != nil {
		return apiError(err)
	}
	return e.JSON(http.StatusCreated, item)
}

func (h *CartHandler) RemoveItem(e *core.RequestEvent) error {
	user, err := currentUser(e)
	if err != nil {
		return err
	}

	if err := h.carts.RemoveItem(e.Request.Context(), user.ID, e.Request.PathValue("id")); err != nil {
		return apiError(err)
	}
	return e.NoContent(http.StatusNoContent)
}

func (h *CartHandler) ClearCart(e *core.RequestEvent) error {
	user, err := currentUser(e)
	if err != nil {
		return err
	}

	if err := h.carts.ClearCart(e.Request.Context(), user.ID); err != nil {
		return apiError(err)
	}
	return e.NoContent(http.StatusNoContent)
}

// Quote - price the cart with fee and optional promo before paying
func (h *CartHandler) Quote(e *core.RequestEvent) error {
	user, err := currentUser(e)
	if err != nil {
		return err
	}

	var req struct {
		PromoCode string `json:"promoCode"`
	}
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	quote, err := h.checkout.Quote(e.Request.Context(), user.ID, req.PromoCode)
	if err != nil {
		return apiError(err)
	}
	return e.JSON(http.StatusOK, quote)
}
