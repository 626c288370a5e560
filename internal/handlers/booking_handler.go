package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"luxetickets/internal/services"
	"luxetickets/internal/tickets"
)

type BookingHandler struct {
	bookings *services.BookingService
	tickets  *tickets.Renderer
}

func NewBookingHandler(bookings *services.BookingService, renderer *tickets.Renderer) *BookingHandler {
	return &BookingHandler{bookings: bookings, tickets: renderer}
}

// ListBookings - booking history, oldest first
func (h *BookingHandler) ListBookings(e *core.RequestEvent) error {
	user, err := currentUser(e)
	if err != nil {
		return err
	}

	bookings, err := h.bookings.GetUserBookings(e.Request.Context(), user.ID)
	if err != nil {
		return apiError(err)
	}
	return e.JSON(http.StatusOK, map[string]any{
		"bookings": bookings,
		"total":    len(bookings),
	})
}

func (h *BookingHandler) GetBooking(e *core.RequestEvent) error {
	user, err := currentUser(e)
	if err != nil {
		return err
	}

	booking, err := h.bookings.GetBooking(e.Request.Context(), user.ID, e.Request.PathValue("id"))
	if err != nil {
		return apiError(err)
	}
	return e.JSON(http.StatusOK, booking)
}

func (h *BookingHandler) CancelBooking(e *core.RequestEvent) error {
	user, err := currentUser(e)
	if err != nil {
		return err
	}

	booking, err := h.bookings.CancelBooking(e.Request.Context(), user.ID, e.Request.PathValue("id"))
	if err != nil {
		return apiError(err)
	}
	return e.JSON(http.StatusOK, booking)
}

// GetQRCode - entry QR code as PNG
func (h *BookingHandler) GetQRCode(e *core.RequestEvent) error {
	user, err := currentUser(e)
	if err != nil {
		return err
	}

	booking, err := h.bookings.GetTicket(e.Request.Context(), user.ID, e.Request.PathValue("id"))
	if err != nil {
		return apiError(err)
	}

	png, err := h.tickets.QRCode(booking)
	if err != nil {
		slog.Error("Failed to render QR code", "bookingID", booking.ID, "error", err)
		return apis.NewApiError(http.StatusInternalServerError, "Failed to render QR code", nil)
	}
	return e.Blob(http.StatusOK, "image/png", png)
}

// DownloadTicket - printable PDF ticket
func (h *BookingHandler) DownloadTicket(e *core.RequestEvent) error {
	user, err := currentUser(e)
	if err != nil {
		return err
	}

	booking, err := h.bookings.GetTicket(e.Request.Context(), user.ID, e.Request.PathValue("id"))
	if err != nil {
		return apiError(err)
	}

	pdf, err := h.tickets.PDF(booking, user)
	if err != nil {
		slog.Error("Failed to render ticket", "bookingID", booking.ID, "error", err)
		return apis.NewApiError(http.StatusInternalServerError, "Failed to render ticket", nil)
	}

	e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="ticket-%s.pdf"`, booking.ID))
	return e.Blob(http.StatusOK, "application/pdf", pdf)
}

// Dashboard - booking counts and total spent for the profile page
func (h *BookingHandler) Dashboard(e *core.RequestEvent) error {
	user, err := currentUser(e)
	if err != nil {
		return err
	}

	summary, err := h.bookings.Dashboard(e.Request.Context(), user.ID)
	if err != nil {
		return apiError(err)
	}
	return e.JSON(http.StatusOK, summary)
}
