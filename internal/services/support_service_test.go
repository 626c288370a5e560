package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"luxetickets/internal/services"
	"luxetickets/internal/status"
	"luxetickets/models"
)

func TestSubmitContact(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.support.SubmitContact(ctx, services.ContactInput{Name: "Asha", Email: "asha@example.com", Subject: "Refund"})
	assert.True(t, status.IsValidation(err))

	contact, err := f.support.SubmitContact(ctx, services.ContactInput{
		Name:    "Asha",
		Email:   "Asha@Example.com",
		Subject: "Refund",
		Message: "My show was cancelled",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, contact.ID)
	assert.Equal(t, models.ContactPending, contact.Status)
	assert.Equal(t, "asha@example.com", contact.Email)

	resolved, err := f.support.ResolveContact(ctx, contact.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ContactResolved, resolved.Status)

	_, err = f.support.ResolveContact(ctx, "missing")
	assert.ErrorIs(t, err, status.ErrSubmissionNotFound)

	contacts, err := f.support.ListContacts(ctx)
	require.NoError(t, err)
	assert.Len(t, contacts, 1)
}

func TestSubmitFeedback(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := &models.User{ID: "user-1", Email: "asha@example.com", Name: "Asha"}

	feedback, err := f.support.SubmitFeedback(ctx, user, services.FeedbackInput{Rating: 5, Comment: "Loved it"})
	require.NoError(t, err)
	assert.Equal(t, "user-1", feedback.UserID)
	assert.Equal(t, "asha@example.com", feedback.UserEmail)
	assert.Equal(t, models.FeedbackGeneral, feedback.Category)

	tests := []struct {
		name  string
		input services.FeedbackInput
	}{
		{"missing rating", services.FeedbackInput{Email: "a@example.com", Comment: "ok"}},
		{"rating too high", services.FeedbackInput{Email: "a@example.com", Rating: 6, Comment: "ok"}},
		{"missing email", services.FeedbackInput{Rating: 3, Comment: "ok"}},
		{"unknown category", services.FeedbackInput{Email: "a@example.com", Rating: 3, Comment: "ok", Category: "food"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.support.SubmitFeedback(ctx, nil, tt.input)
			assert.True(t, status.IsValidation(err), "got %v", err)
		})
	}

	all, err := f.support.ListFeedback(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
