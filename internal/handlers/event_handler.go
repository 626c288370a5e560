package handlers

import (
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase/core"

	"luxetickets/internal/catalog"
	"luxetickets/models"
)

type EventHandler struct {
	catalog *catalog.Catalog
}

func NewEventHandler(catalog *catalog.Catalog) *EventHandler {
	return &EventHandler{catalog: catalog}
}

// ListEvents - browse a category with optional filters and sort
//
//	GET /api/v1/events?category=movies&city=Mumbai&genre=Action,Drama&sort=price-low
func (h *EventHandler) ListEvents(e *core.RequestEvent) error {
	query := e.Request.URL.Query()

	filter := catalog.Filter{
		Category:    models.EventCategory(query.Get("category")),
		Query:       query.Get("q"),
		City:        query.Get("city"),
		Language:    query.Get("language"),
		Genres:      splitList(query["genre"]),
		Subcategory: query.Get("subcategory"),
		Sort:        catalog.SortOrder(query.Get("sort")),
	}

	events := h.catalog.List(e.Request.Context(), filter)
	return e.JSON(http.StatusOK, map[string]any{
		"events": events,
		"total":  len(events),
	})
}

func (h *EventHandler) SearchEvents(e *core.RequestEvent) error {
	q := e.Request.URL.Query().Get("q")
	events := h.catalog.Search(e.Request.Context(), q)
	return e.JSON(http.StatusOK, map[string]any{
		"query":  q,
		"events": events,
		"total":  len(events),
	})
}

func (h *EventHandler) FeaturedEvents(e *core.RequestEvent) error {
	return e.JSON(http.StatusOK, map[string]any{"events": h.catalog.Featured(e.Request.Context())})
}

func (h *EventHandler) UpcomingEvents(e *core.RequestEvent) error {
	return e.JSON(http.StatusOK, map[string]any{"events": h.catalog.Upcoming(e.Request.Context())})
}

func (h *EventHandler) GetEvent(e *core.RequestEvent) error {
	event, err := h.catalog.Get(e.Request.Context(), e.Request.PathValue("id"))
	if err != nil {
		return apiError(err)
	}
	return e.JSON(http.StatusOK, event)
}

// splitList accepts both repeated params and comma separated values.
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
