package pbstore

import (
	"testing"
	"time"

	"github.com/pocketbase/pocketbase/core"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"luxetickets/models"
)

func eventsTestCollection() *core.Collection {
	collection := core.NewBaseCollection(eventsCollection)
	collection.Fields.Add(
		&core.TextField{Name: "slug"},
		&core.TextField{Name: "title"},
		&core.TextField{Name: "category"},
		&core.NumberField{Name: "rating"},
		&core.TextField{Name: "venue"},
		&core.JSONField{Name: "genre"},
		&core.JSONField{Name: "cast"},
		&core.JSONField{Name: "dates"},
		&core.JSONField{Name: "times"},
		&core.NumberField{Name: "price_silver"},
		&core.NumberField{Name: "price_gold"},
		&core.NumberField{Name: "price_platinum"},
		&core.BoolField{Name: "is_upcoming"},
	)
	return collection
}

func TestEventFromRecord(t *testing.T) {
	record := core.NewRecord(eventsTestCollection())
	record.Set("slug", "mov-1")
	record.Set("title", "Dune: Part Three")
	record.Set("category", "movies")
	record.Set("rating", 8.9)
	record.Set("venue", "IMAX Cineplex")
	record.Set("genre", []string{"Sci-Fi", "Adventure"})
	record.Set("dates", []string{"2026-01-28"})
	record.Set("times", []string{"10:00 AM", "8:30 PM"})
	record.Set("price_silver", 250)
	record.Set("price_gold", 450)
	record.Set("price_platinum", 750)
	record.Set("is_upcoming", true)

	event, err := EventFromRecord(record)

	require.NoError(t, err)
	assert.Equal(t, "mov-1", event.ID)
	assert.Equal(t, models.CategoryMovies, event.Category)
	assert.Equal(t, 8.9, event.Rating)
	assert.Equal(t, []string{"Sci-Fi", "Adventure"}, event.Genre)
	assert.Empty(t, event.Cast)
	assert.True(t, event.HasShow("2026-01-28", "8:30 PM"))
	assert.True(t, event.Prices.For(models.TierGold).Equal(decimal.NewFromInt(450)))
	assert.True(t, event.IsUpcoming)
}

func TestContactFromRecord(t *testing.T) {
	collection := core.NewBaseCollection(contactsCollection)
	collection.Fields.Add(
		&core.TextField{Name: "name"},
		&core.TextField{Name: "email"},
		&core.TextField{Name: "subject"},
		&core.TextField{Name: "message"},
		&core.DateField{Name: "submitted_at"},
		&core.TextField{Name: "status"},
	)
	submitted := time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC)

	record := core.NewRecord(collection)
	record.Id = "abc123"
	record.Set("name", "Asha")
	record.Set("email", "asha@example.com")
	record.Set("subject", "Refund")
	record.Set("message", "Please help")
	record.Set("submitted_at", submitted)
	record.Set("status", "pending")

	contact := contactFromRecord(record)

	assert.Equal(t, "abc123", contact.ID)
	assert.Equal(t, models.ContactPending, contact.Status)
	assert.True(t, contact.SubmittedAt.Equal(submitted))
}
