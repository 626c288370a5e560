package pbstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/types"

	"luxetickets/internal/status"
	"luxetickets/models"
)

const (
	contactsCollection = "contact_submissions"
	feedbackCollection = "feedback_submissions"
)

type SubmissionStore struct {
	app core.App
}

func NewSubmissionStore(app core.App) *SubmissionStore {
	return &SubmissionStore{app: app}
}

func (s *SubmissionStore) CreateContact(ctx context.Context, c models.ContactSubmission) (models.ContactSubmission, error) {
	collection, err := s.app.FindCollectionByNameOrId(contactsCollection)
	if err != nil {
		return models.ContactSubmission{}, err
	}

	record := core.NewRecord(collection)
	record.Set("name", c.Name)
	record.Set("email", c.Email)
	record.Set("phone", c.Phone)
	record.Set("subject", c.Subject)
	record.Set("message", c.Message)
	record.Set("city", c.City)
	record.Set("submitted_at", c.SubmittedAt)
	record.Set("status", string(c.Status))

	if err := s.app.SaveWithContext(ctx, record); err != nil {
		return models.ContactSubmission{}, fmt.Errorf("save contact submission: %w", err)
	}
	return contactFromRecord(record), nil
}

func (s *SubmissionStore) ListContacts(context.Context) ([]models.ContactSubmission, error) {
	records, err := s.app.FindRecordsByFilter(contactsCollection, "id != ''", "-submitted_at", 0, 0)
	if err != nil {
		return nil, fmt.Errorf("list contact submissions: %w", err)
	}

	out := make([]models.ContactSubmission, 0, len(records))
	for _, record := range records {
		out = append(out, contactFromRecord(record))
	}
	return out, nil
}

func (s *SubmissionStore) ResolveContact(ctx context.Context, id string) (models.ContactSubmission, error) {
	record, err := s.app.FindFirstRecordByFilter(contactsCollection, "id = {:id}", dbx.Params{"id": id})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.ContactSubmission{}, status.ErrSubmissionNotFound
		}
		return models.ContactSubmission{}, fmt.Errorf("find contact submission: %w", err)
	}

	record.Set("status", string(models.ContactResolved))
	if err := s.app.SaveWithContext(ctx, record); err != nil {
		return models.ContactSubmission{}, fmt.Errorf("resolve contact submission: %w", err)
	}
	return contactFromRecord(record), nil
}

func (s *SubmissionStore) CreateFeedback(ctx context.Context, f models.FeedbackSubmission) (models.FeedbackSubmission, error) {
	collection, err := s.app.FindCollectionByNameOrId(feedbackCollection)
	if err != nil {
		return models.FeedbackSubmission{}, err
	}

	record := core.NewRecord(collection)
	record.Set("user_id", f.UserID)
	record.Set("user_name", f.UserName)
	record.Set("user_email", f.UserEmail)
	record.Set("booking_id", f.BookingID)
	record.Set("rating", f.Rating)
	record.Set("comment", f.Comment)
	record.Set("category", string(f.Category))
	record.Set("submitted_at", f.SubmittedAt)

	if err := s.app.SaveWithContext(ctx, record); err != nil {
		return models.FeedbackSubmission{}, fmt.Errorf("save feedback: %w", err)
	}
	return feedbackFromRecord(record), nil
}

func (s *SubmissionStore) ListFeedback(context.Context) ([]models.FeedbackSubmission, error) {
	records, err := s.app.FindRecordsByFilter(feedbackCollection, "id != ''", "-submitted_at", 0, 0)
	if err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}

	out := make([]models.FeedbackSubmission, 0, len(records))
	for _, record := range records {
		out = append(out, feedbackFromRecord(record))
	}
	return out, nil
}

func submittedAt(record *core.Record) types.DateTime {
	return record.GetDateTime("submitted_at")
}

func contactFromRecord(record *core.Record) models.ContactSubmission {
	return models.ContactSubmission{
		ID:          record.Id,
		Name:        record.GetString("name"),
		Email:       record.GetString("email"),
		Phone:       record.GetString("phone"),
		Subject:     record.GetString("subject"),
		Message:     record.GetString("message"),
		City:        record.GetString("city"),
		SubmittedAt: submittedAt(record).Time(),
		Status:      models.ContactStatus(record.GetString("status")),
	}
}

func feedbackFromRecord(record *core.Record) models.FeedbackSubmission {
	return models.FeedbackSubmission{
		ID:          record.Id,
		UserID:      record.GetString("user_id"),
		UserName:    record.GetString("user_name"),
		UserEmail:   record.GetString("user_email"),
		BookingID:   record.GetString("booking_id"),
		Rating:      record.GetInt("rating"),
		Comment:     record.GetString("comment"),
		Category:    models.FeedbackCategory(record.GetString("category")),
		SubmittedAt: submittedAt(record).Time(),
	}
}
