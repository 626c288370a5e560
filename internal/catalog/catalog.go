// Package catalog serves the event listings: lookup, browse filters,
// search, featured and upcoming rails.
package catalog

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"luxetickets/internal/status"
	"luxetickets/models"
)

// Source loads the full event list in display order.
type Source interface {
	LoadEvents(ctx context.Context) ([]models.Event, error)
}

// StaticSource serves a fixed list of events.
type StaticSource []models.Event

func (s StaticSource) LoadEvents(context.Context) ([]models.Event, error) {
	return slices.Clone(s), nil
}

type SortOrder string

const (
	SortRating    SortOrder = "rating"
	SortPriceLow  SortOrder = "price-low"
	SortPriceHigh SortOrder = "price-high"
	SortName      SortOrder = "name"
)

const (
	allCities      = "All Cities"
	featuredRating = 9.0
	featuredLimit  = 5
)

// Filter narrows a category listing. Zero values match everything.
type Filter struct {
	Category    models.EventCategory
	Query       string
	City        string
	Language    string
	Genres      []string
	Subcategory string
	Sort        SortOrder
}

// Catalog caches the events of a Source in memory.
type Catalog struct {
	source Source

	mu     sync.RWMutex
	events []models.Event
	byID   map[string]int
}

func New(source Source) *Catalog {
	return &Catalog{source: source, byID: make(map[string]int)}
}

// Reload replaces the cached events with a fresh read of the source.
func (c *Catalog) Reload(ctx context.Context) error {
	events, err := c.source.LoadEvents(ctx)
	if err != nil {
		return fmt.Errorf("load events: %w", err)
	}

	byID := make(map[string]int, len(events))
	for i, e := range events {
		byID[e.ID] = i
	}

	c.mu.Lock()
	c.events = events
	c.byID = byID
	c.mu.Unlock()

	slog.Info("Event catalog loaded", "events", len(events))
	return nil
}

func (c *Catalog) snapshot() []models.Event {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.events)
}

func (c *Catalog) Get(_ context.Context, id string) (models.Event, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	i, ok := c.byID[id]
	if !ok {
		return models.Event{}, fmt.Errorf("%w: %s", status.ErrEventNotFound, id)
	}
	return c.events[i], nil
}

func (c *Catalog) All(context.Context) []models.Event {
	return c.snapshot()
}

func (c *Catalog) List(_ context.Context, f Filter) []models.Event {
	query := strings.ToLower(strings.TrimSpace(f.Query))

	out := make([]models.Event, 0)
	for _, e := range c.snapshot() {
		if f.Category != "" && e.Category != f.Category {
			continue
		}
		if query != "" && !containsFold(e.Title, query) && !containsFold(e.Venue, query) && !anyContainsFold(e.Genre, query) {
			continue
		}
		if f.City != "" && e.City != f.City && e.City != allCities {
			continue
		}
		if f.Language != "" && !strings.Contains(e.Language, f.Language) {
			continue
		}
		if len(f.Genres) > 0 && !slices.ContainsFunc(e.Genre, func(g string) bool { return slices.Contains(f.Genres, g) }) {
			continue
		}
		if f.Subcategory != "" && e.Subcategory != f.Subcategory {
			continue
		}
		out = append(out, e)
	}

	sortEvents(out, f.Sort)
	return out
}

func sortEvents(events []models.Event, order SortOrder) {
	switch order {
	case "", SortRating:
		slices.SortStableFunc(events, func(a, b models.Event) int { return cmp.Compare(b.Rating, a.Rating) })
	case SortPriceLow:
		slices.SortStableFunc(events, func(a, b models.Event) int { return a.Prices.Silver.Cmp(b.Prices.Silver) })
	case SortPriceHigh:
		slices.SortStableFunc(events, func(a, b models.Event) int { return b.Prices.Silver.Cmp(a.Prices.Silver) })
	case SortName, "title":
		slices.SortStableFunc(events, func(a, b models.Event) int {
			return cmp.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
		})
	}
}

// Search matches title, genre, venue or city. A blank query matches
// nothing.
func (c *Catalog) Search(_ context.Context, q string) []models.Event {
	query := strings.ToLower(strings.TrimSpace(q))
	out := make([]models.Event, 0)
	if query == "" {
		return out
	}

	for _, e := range c.snapshot() {
		if containsFold(e.Title, query) || anyContainsFold(e.Genre, query) || containsFold(e.Venue, query) || containsFold(e.City, query) {
			out = append(out, e)
		}
	}
	return out
}

// Featured is the first five events rated 9 or better.
func (c *Catalog) Featured(context.Context) []models.Event {
	out := make([]models.Event, 0, featuredLimit)
	for _, e := range c.snapshot() {
		if e.Rating >= featuredRating {
			out = append(out, e)
			if len(out) == featuredLimit {
				break
			}
		}
	}
	return out
}

func (c *Catalog) Upcoming(context.Context) []models.Event {
	out := make([]models.Event, 0)
	for _, e := range c.snapshot() {
		if e.IsUpcoming {
			out = append(out, e)
		}
	}
	return out
}

func containsFold(s, lowerQuery string) bool {
	return strings.Contains(strings.ToLower(s), lowerQuery)
}

func anyContainsFold(values []string, lowerQuery string) bool {
	return slices.ContainsFunc(values, func(v string) bool { return containsFold(v, lowerQuery) })
}
