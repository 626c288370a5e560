package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"luxetickets/internal/services"
)

type SeatHandler struct {
	seatService *services.SeatService
}

func NewSeatHandler(seatService *services.SeatService) *SeatHandler {
	return &SeatHandler{seatService: seatService}
}

// GetSeats - seat map for one show
//
//	GET /api/v1/events/{id}/seats?date=2025-01-28&time=8:30 PM
func (h *SeatHandler) GetSeats(e *core.RequestEvent) error {
	eventID := e.Request.PathValue("id")
	query := e.Request.URL.Query()
	date, showTime := query.Get("date"), query.Get("time")

	if eventID == "" || date == "" || showTime == "" {
		return apis.NewBadRequestError("Event, date and time are required", nil)
	}

	seatMap, err := h.seatService.SeatMap(e.Request.Context(), eventID, date, showTime)
	if err != nil {
		return apiError(err)
	}
	return e.JSON(http.StatusOK, seatMap)
}
