package migrations

import (
	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
)

func init() {
	m.Register(func(app core.App) error {
		contacts := core.NewBaseCollection("contact_submissions")
		contacts.Fields.Add(
			&core.TextField{Name: "name", Required: true},
			&core.EmailField{Name: "email", Required: true},
			&core.TextField{Name: "phone"},
			&core.TextField{Name: "subject", Required: true},
			&core.TextField{Name: "message", Required: true, Max: 5000},
			&core.TextField{Name: "city"},
			&core.DateField{Name: "submitted_at"},
			&core.SelectField{
				Name:      "status",
				Required:  true,
				MaxSelect: 1,
				Values:    []string{"pending", "resolved"},
			},
			&core.AutodateField{Name: "created", OnCreate: true},
			&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true},
		)
		contacts.AddIndex("idx_contact_status", false, "status", "")
		if err := app.Save(contacts); err != nil {
			return err
		}

		feedback := core.NewBaseCollection("feedback_submissions")
		feedback.Fields.Add(
			&core.TextField{Name: "user_id"},
			&core.TextField{Name: "user_name"},
			&core.EmailField{Name: "user_email", Required: true},
			&core.TextField{Name: "booking_id"},
			&core.NumberField{Name: "rating", Required: true, OnlyInt: true},
			&core.TextField{Name: "comment", Required: true, Max: 5000},
			&core.SelectField{
				Name:      "category",
				Required:  true,
				MaxSelect: 1,
				Values:    []string{"general", "booking", "venue", "payment", "other"},
			},
			&core.DateField{Name: "submitted_at"},
			&core.AutodateField{Name: "created", OnCreate: true},
			&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true},
		)
		return app.Save(feedback)
	}, func(app core.App) error {
		for _, name := range []string{"feedback_submissions", "contact_submissions"} {
			collection, err := app.FindCollectionByNameOrId(name)
			if err != nil {
				return err
			}
			if err := app.Delete(collection); err != nil {
				return err
			}
		}
		return nil
	})
}
