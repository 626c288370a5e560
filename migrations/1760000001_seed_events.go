package migrations

import (
	_ "embed"
	"encoding/json"

	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
)

//go:embed seed/events.json
var eventsSeed []byte

type seedEvent struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Category    string   `json:"category"`
	Subcategory string   `json:"subcategory"`
	Image       string   `json:"image"`
	Rating      float64  `json:"rating"`
	Duration    string   `json:"duration"`
	Genre       []string `json:"genre"`
	Language    string   `json:"language"`
	Venue       string   `json:"venue"`
	City        string   `json:"city"`
	Description string   `json:"description"`
	Cast        []string `json:"cast"`
	Dates       []string `json:"dates"`
	Times       []string `json:"times"`
	Prices      struct {
		Silver   float64 `json:"silver"`
		Gold     float64 `json:"gold"`
		Platinum float64 `json:"platinum"`
	} `json:"prices"`
	IsUpcoming bool `json:"is_upcoming"`
}

func init() {
	m.Register(func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("events")
		if err != nil {
			return err
		}

		var events []seedEvent
		if err := json.Unmarshal(eventsSeed, &events); err != nil {
			return err
		}

		for i, e := range events {
			record := core.NewRecord(collection)
			record.Set("slug", e.ID)
			record.Set("title", e.Title)
			record.Set("category", e.Category)
			record.Set("subcategory", e.Subcategory)
			record.Set("image", e.Image)
			record.Set("rating", e.Rating)
			record.Set("duration", e.Duration)
			record.Set("genre", e.Genre)
			record.Set("language", e.Language)
			record.Set("venue", e.Venue)
			record.Set("city", e.City)
			record.Set("description", e.Description)
			record.Set("cast", e.Cast)
			record.Set("dates", e.Dates)
			record.Set("times", e.Times)
			record.Set("price_silver", e.Prices.Silver)
			record.Set("price_gold", e.Prices.Gold)
			record.Set("price_platinum", e.Prices.Platinum)
			record.Set("is_upcoming", e.IsUpcoming)
			record.Set("position", i)

			if err := app.Save(record); err != nil {
				return err
			}
		}

		return nil
	}, func(app core.App) error {
		records, err := app.FindAllRecords("events")
		if err != nil {
			return err
		}

		for _, record := range records {
			if err := app.Delete(record); err != nil {
				return err
			}
		}
		return nil
	})
}
