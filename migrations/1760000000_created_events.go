package migrations

import (
	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
)

func init() {
	m.Register(func(app core.App) error {
		collection := core.NewBaseCollection("events")

		collection.Fields.Add(
			&core.TextField{Name: "slug", Required: true, Max: 64},
			&core.TextField{Name: "title", Required: true},
			&core.SelectField{
				Name:      "category",
				Required:  true,
				MaxSelect: 1,
				Values:    []string{"movies", "concerts", "sports", "theatre"},
			},
			&core.TextField{Name: "subcategory"},
			&core.URLField{Name: "image"},
			&core.NumberField{Name: "rating"},
			&core.TextField{Name: "duration"},
			&core.JSONField{Name: "genre"},
			&core.TextField{Name: "language"},
			&core.TextField{Name: "venue"},
			&core.TextField{Name: "city"},
			&core.TextField{Name: "description"},
			&core.JSONField{Name: "cast"},
			&core.JSONField{Name: "dates"},
			&core.JSONField{Name: "times"},
			&core.NumberField{Name: "price_silver"},
			&core.NumberField{Name: "price_gold"},
			&core.NumberField{Name: "price_platinum"},
			&core.BoolField{Name: "is_upcoming"},
			&core.NumberField{Name: "position", OnlyInt: true},
			&core.AutodateField{Name: "created", OnCreate: true},
			&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true},
		)
		collection.AddIndex("idx_events_slug", true, "slug", "")
		collection.AddIndex("idx_events_category", false, "category", "")

		return app.Save(collection)
	}, func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("events")
		if err != nil {
			return err
		}

		return app.Delete(collection)
	})
}
