// Package pbstore reads and writes the PocketBase collections: the event
// catalog and the support inbox.
package pbstore

import (
	"context"
	"fmt"

	"github.com/pocketbase/pocketbase/core"
	"github.com/shopspring/decimal"

	"luxetickets/models"
)

const eventsCollection = "events"

// EventSource loads the catalog from the events collection.
type EventSource struct {
	app core.App
}

func NewEventSource(app core.App) *EventSource {
	return &EventSource{app: app}
}

func (s *EventSource) LoadEvents(ctx context.Context) ([]models.Event, error) {
	records, err := s.app.FindRecordsByFilter(eventsCollection, "slug != ''", "position,created", 0, 0)
	if err != nil {
		return nil, fmt.Errorf("find events: %w", err)
	}

	events := make([]models.Event, 0, len(records))
	for _, record := range records {
		event, err := EventFromRecord(record)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, nil
}

func EventFromRecord(record *core.Record) (models.Event, error) {
	event := models.Event{
		ID:          record.GetString("slug"),
		Title:       record.GetString("title"),
		Category:    models.EventCategory(record.GetString("category")),
		Subcategory: record.GetString("subcategory"),
		Image:       record.GetString("image"),
		Rating:      record.GetFloat("rating"),
		Duration:    record.GetString("duration"),
		Language:    record.GetString("language"),
		Venue:       record.GetString("venue"),
		City:        record.GetString("city"),
		Description: record.GetString("description"),
		Prices: models.TierPrices{
			Silver:   decimal.NewFromFloat(record.GetFloat("price_silver")),
			Gold:     decimal.NewFromFloat(record.GetFloat("price_gold")),
			Platinum: decimal.NewFromFloat(record.GetFloat("price_platinum")),
		},
		IsUpcoming: record.GetBool("is_upcoming"),
	}

	for field, dest := range map[string]*[]string{
		"genre": &event.Genre,
		"cast":  &event.Cast,
		"dates": &event.Dates,
		"times": &event.Times,
	} {
		if record.GetString(field) == "" {
			continue
		}
		if err := record.UnmarshalJSONField(field, dest); err != nil {
			return models.Event{}, fmt.Errorf("event %s: decode %s: %w", event.ID, field, err)
		}
	}
	return event, nil
}
