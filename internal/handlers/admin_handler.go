package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"luxetickets/internal/services"
	"luxetickets/internal/tickets"
	"luxetickets/models"
)

// AdminHandler serves the support inbox and ticket scanning to PocketBase
// superusers. Routes are guarded with apis.RequireSuperuserAuth at
// registration.
type AdminHandler struct {
	support  *services.SupportService
	bookings *services.BookingService
	tickets  *tickets.Renderer
}

func NewAdminHandler(support *services.SupportService, bookings *services.BookingService, renderer *tickets.Renderer) *AdminHandler {
	return &AdminHandler{support: support, bookings: bookings, tickets: renderer}
}

type verifyTicketRequest struct {
	Payload string `json:"payload"`
}

// VerifyTicket - admit a scanned QR payload at the venue
func (h *AdminHandler) VerifyTicket(e *core.RequestEvent) error {
	var req verifyTicketRequest
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	claim, err := h.tickets.Parse(req.Payload)
	if err != nil {
		return apiError(err)
	}

	booking, err := h.bookings.AdmitTicket(e.Request.Context(), claim.BookingID, claim.QRCode, claim.UserID)
	if err != nil {
		return apiError(err)
	}
	return e.JSON(http.StatusOK, map[string]any{
		"valid":   true,
		"booking": booking,
	})
}

// GetContacts - all contact submissions with a pending count
func (h *AdminHandler) GetContacts(e *core.RequestEvent) error {
	contacts, err := h.support.ListContacts(e.Request.Context())
	if err != nil {
		return apiError(err)
	}

	pending := 0
	for _, c := range contacts {
		if c.Status == models.ContactPending {
			pending++
		}
	}

	return e.JSON(http.StatusOK, map[string]any{
		"contacts": contacts,
		"total":    len(contacts),
		"pending":  pending,
	})
}

func (h *AdminHandler) ResolveContact(e *core.RequestEvent) error {
	contact, err := h.support.ResolveContact(e.Request.Context(), e.Request.PathValue("id"))
	if err != nil {
		return apiError(err)
	}
	return e.JSON(http.StatusOK, contact)
}

// GetFeedback - all feedback with the average rating
func (h *AdminHandler) GetFeedback(e *core.RequestEvent) error {
	feedback, err := h.support.ListFeedback(e.Request.Context())
	if err != nil {
		return apiError(err)
	}

	average := 0.0
	if len(feedback) > 0 {
		sum := 0
		for _, f := range feedback {
			sum += f.Rating
		}
		average = float64(sum) / float64(len(feedback))
	}

	return e.JSON(http.StatusOK, map[string]any{
		"feedback":      feedback,
		"total":         len(feedback),
		"averageRating": average,
	})
}
