package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"luxetickets/models"
)

func TestEventHandler_ListAndFilter(t *testing.T) {
	app := newTestApp(t)

	e, rec := newRequestEvent(t, http.MethodGet, "/api/v1/events?category=concerts&city=Mumbai&genre=Jazz,Classical", nil)
	require.NoError(t, app.events.ListEvents(e))
	got := decode[struct {
		Events []models.Event `json:"events"`
		Total  int            `json:"total"`
	}](t, rec)
	assert.Equal(t, 1, got.Total)

	e, rec = newRequestEvent(t, http.MethodGet, "/api/v1/events?category=movies", nil)
	require.NoError(t, app.events.ListEvents(e))
	assert.Zero(t, decode[struct {
		Total int `json:"total"`
	}](t, rec).Total)
}

func TestEventHandler_Search(t *testing.T) {
	app := newTestApp(t)

	e, rec := newRequestEvent(t, http.MethodGet, "/api/v1/events/search?q=symphony", nil)
	require.NoError(t, app.events.SearchEvents(e))
	assert.Equal(t, 1, decode[struct {
		Total int `json:"total"`
	}](t, rec).Total)
}

func TestEventHandler_GetEvent(t *testing.T) {
	app := newTestApp(t)

	e, rec := newRequestEvent(t, http.MethodGet, "/api/v1/events/con-1", nil)
	e.Request.SetPathValue("id", "con-1")
	require.NoError(t, app.events.GetEvent(e))
	assert.Equal(t, "Jio Garden", decode[models.Event](t, rec).Venue)

	missing, _ := newRequestEvent(t, http.MethodGet, "/api/v1/events/nope", nil)
	missing.Request.SetPathValue("id", "nope")
	requireAPIStatus(t, app.events.GetEvent(missing), http.StatusNotFound)
}

func TestSeatHandler_GetSeats(t *testing.T) {
	app := newTestApp(t)

	e, rec := newRequestEvent(t, http.MethodGet, "/api/v1/events/con-1/seats?date="+showDate+"&time=7:00+PM", nil)
	e.Request.SetPathValue("id", "con-1")
	require.NoError(t, app.seats.GetSeats(e))

	seatMap := decode[models.SeatMap](t, rec)
	assert.Len(t, seatMap.Seats, len(models.SeatRows)*models.SeatsPerRow)
	assert.Equal(t, len(seatMap.Seats), seatMap.AvailableSeats)

	noDate, _ := newRequestEvent(t, http.MethodGet, "/api/v1/events/con-1/seats", nil)
	noDate.Request.SetPathValue("id", "con-1")
	requireAPIStatus(t, app.seats.GetSeats(noDate), http.StatusBadRequest)
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"Action", "Drama", "Sci-Fi"}, splitList([]string{"Action, Drama", "Sci-Fi", " "}))
	assert.Nil(t, splitList(nil))
}

func TestSupportHandler_Contact(t *testing.T) {
	app := newTestApp(t)

	e, rec := newRequestEvent(t, http.MethodPost, "/api/v1/contact", map[string]string{
		"name": "Meera", "email": "meera@example.com", "subject": "Refund", "message": "Show was moved",
	})
	require.NoError(t, app.support.SubmitContact(e))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, models.ContactPending, decode[models.ContactSubmission](t, rec).Status)

	bad, _ := newRequestEvent(t, http.MethodPost, "/api/v1/contact", map[string]string{"name": "Meera"})
	apiErr := requireAPIStatus(t, app.support.SubmitContact(bad), http.StatusBadRequest)
	assert.Contains(t, apiErr.Data, "email")
	assert.Contains(t, apiErr.Data, "message")
}

func TestSupportHandler_FeedbackUsesSignedInUser(t *testing.T) {
	app := newTestApp(t)
	user := app.register(t, "asha@example.com").User

	e, rec := newRequestEvent(t, http.MethodPost, "/api/v1/feedback", map[string]any{
		"rating": 5, "comment": "Loved the venue",
	})
	require.NoError(t, app.support.SubmitFeedback(signedIn(e, user)))

	feedback := decode[models.FeedbackSubmission](t, rec)
	assert.Equal(t, user.ID, feedback.UserID)
	assert.Equal(t, "asha@example.com", feedback.UserEmail)
	assert.Equal(t, models.FeedbackGeneral, feedback.Category)
}

func TestSupportHandler_AnonymousFeedbackNeedsEmail(t *testing.T) {
	app := newTestApp(t)

	e, _ := newRequestEvent(t, http.MethodPost, "/api/v1/feedback", map[string]any{
		"rating": 4, "comment": "Smooth checkout",
	})
	requireAPIStatus(t, app.support.SubmitFeedback(e), http.StatusBadRequest)
}

func TestAdminHandler_Inbox(t *testing.T) {
	app := newTestApp(t)

	e, rec := newRequestEvent(t, http.MethodPost, "/api/v1/contact", map[string]string{
		"name": "Meera", "email": "meera@example.com", "subject": "Refund", "message": "Show was moved",
	})
	require.NoError(t, app.support.SubmitContact(e))
	contact := decode[models.ContactSubmission](t, rec)

	list, rec := newRequestEvent(t, http.MethodGet, "/api/v1/admin/contacts", nil)
	require.NoError(t, app.admin.GetContacts(list))
	inbox := decode[struct {
		Total   int `json:"total"`
		Pending int `json:"pending"`
	}](t, rec)
	assert.Equal(t, 1, inbox.Total)
	assert.Equal(t, 1, inbox.Pending)

	resolve, rec := newRequestEvent(t, http.MethodPost, "/api/v1/admin/contacts/"+contact.ID+"/resolve", nil)
	resolve.Request.SetPathValue("id", contact.ID)
	require.NoError(t, app.admin.ResolveContact(resolve))
	assert.Equal(t, models.ContactResolved, decode[models.ContactSubmission](t, rec).Status)

	missing, _ := newRequestEvent(t, http.MethodPost, "/api/v1/admin/contacts/nope/resolve", nil)
	missing.Request.SetPathValue("id", "nope")
	requireAPIStatus(t, app.admin.ResolveContact(missing), http.StatusNotFound)

	fb, _ := newRequestEvent(t, http.MethodPost, "/api/v1/feedback", map[string]any{
		"email": "guest@example.com", "rating": 3, "comment": "ok",
	})
	require.NoError(t, app.support.SubmitFeedback(fb))
	fb, _ = newRequestEvent(t, http.MethodPost, "/api/v1/feedback", map[string]any{
		"email": "guest@example.com", "rating": 5, "comment": "great",
	})
	require.NoError(t, app.support.SubmitFeedback(fb))

	all, rec := newRequestEvent(t, http.MethodGet, "/api/v1/admin/feedback", nil)
	require.NoError(t, app.admin.GetFeedback(all))
	summary := decode[struct {
		Total         int     `json:"total"`
		AverageRating float64 `json:"averageRating"`
	}](t, rec)
	assert.Equal(t, 2, summary.Total)
	assert.InDelta(t, 4.0, summary.AverageRating, 0.001)
}
