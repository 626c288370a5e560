package memstore

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"

	"luxetickets/internal/status"
	"luxetickets/models"
)

type SubmissionStore struct {
	mu       sync.Mutex
	contacts []models.ContactSubmission
	feedback []models.FeedbackSubmission
}

func NewSubmissionStore() *SubmissionStore {
	return &SubmissionStore{}
}

func (s *SubmissionStore) CreateContact(_ context.Context, c models.ContactSubmission) (models.ContactSubmission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c.ID = uuid.NewString()
	s.contacts = append(s.contacts, c)
	return c, nil
}

func (s *SubmissionStore) ListContacts(context.Context) ([]models.ContactSubmission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.contacts), nil
}

func (s *SubmissionStore) ResolveContact(_ context.Context, id string) (models.ContactSubmission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.contacts {
		if s.contacts[i].ID == id {
			s.contacts[i].Status = models.ContactResolved
			return s.contacts[i], nil
		}
	}
	return models.ContactSubmission{}, status.ErrSubmissionNotFound
}

func (s *SubmissionStore) CreateFeedback(_ context.Context, f models.FeedbackSubmission) (models.FeedbackSubmission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f.ID = uuid.NewString()
	s.feedback = append(s.feedback, f)
	return f, nil
}

func (s *SubmissionStore) ListFeedback(context.Context) ([]models.FeedbackSubmission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.feedback), nil
}
