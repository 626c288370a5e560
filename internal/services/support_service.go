package services

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"luxetickets/models"
)

type ContactInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message"`
	City    string `json:"city"`
}

func (in ContactInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.By(requiredText("name"))),
		validation.Field(&in.Email, validation.Required, is.Email),
		validation.Field(&in.Subject, validation.By(requiredText("subject"))),
		validation.Field(&in.Message, validation.By(requiredText("message"))),
	)
}

type FeedbackInput struct {
	Email     string                  `json:"email"`
	Name      string                  `json:"name"`
	BookingID string                  `json:"bookingId"`
	Rating    int                     `json:"rating"`
	Comment   string                  `json:"comment"`
	Category  models.FeedbackCategory `json:"category"`
}

func (in FeedbackInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Email, validation.Required, is.Email),
		validation.Field(&in.Rating, validation.Required.Error("please select a rating"), validation.Min(1), validation.Max(5)),
		validation.Field(&in.Comment, validation.By(requiredText("comment"))),
		validation.Field(&in.Category, validation.By(func(value any) error {
			category, _ := value.(models.FeedbackCategory)
			if category != "" && !slices.Contains(models.FeedbackCategories, category) {
				return validation.NewError("validation_invalid_category", "unknown feedback category")
			}
			return nil
		})),
	)
}

// SupportService is the contact and feedback inbox.
type SupportService struct {
	repo SubmissionRepository
	now  func() time.Time
}

func NewSupportService(repo SubmissionRepository) *SupportService {
	return &SupportService{repo: repo, now: time.Now}
}

func (s *SupportService) SubmitContact(ctx context.Context, in ContactInput) (models.ContactSubmission, error) {
	if err := in.Validate(); err != nil {
		return models.ContactSubmission{}, err
	}

	submission, err := s.repo.CreateContact(ctx, models.ContactSubmission{
		Name:        strings.TrimSpace(in.Name),
		Email:       models.NormalizeEmail(in.Email),
		Phone:       strings.TrimSpace(in.Phone),
		Subject:     strings.TrimSpace(in.Subject),
		Message:     strings.TrimSpace(in.Message),
		City:        strings.TrimSpace(in.City),
		SubmittedAt: s.now().UTC(),
		Status:      models.ContactPending,
	})
	if err != nil {
		return models.ContactSubmission{}, err
	}

	slog.Info("Contact submission received", "submission_id", submission.ID)
	return submission, nil
}

// SubmitFeedback records feedback, attributing it to user when signed in.
func (s *SupportService) SubmitFeedback(ctx context.Context, user *models.User, in FeedbackInput) (models.FeedbackSubmission, error) {
	if user != nil {
		if in.Email == "" {
			in.Email = user.Email
		}
		if in.Name == "" {
			in.Name = user.Name
		}
	}
	if err := in.Validate(); err != nil {
		return models.FeedbackSubmission{}, err
	}

	feedback := models.FeedbackSubmission{
		UserName:    strings.TrimSpace(in.Name),
		UserEmail:   models.NormalizeEmail(in.Email),
		BookingID:   strings.TrimSpace(in.BookingID),
		Rating:      in.Rating,
		Comment:     strings.TrimSpace(in.Comment),
		Category:    in.Category,
		SubmittedAt: s.now().UTC(),
	}
	if feedback.Category == "" {
		feedback.Category = models.FeedbackGeneral
	}
	if user != nil {
		feedback.UserID = user.ID
	}

	return s.repo.CreateFeedback(ctx, feedback)
}

func (s *SupportService) ListContacts(ctx context.Context) ([]models.ContactSubmission, error) {
	return s.repo.ListContacts(ctx)
}

func (s *SupportService) ResolveContact(ctx context.Context, id string) (models.ContactSubmission, error) {
	return s.repo.ResolveContact(ctx, id)
}

func (s *SupportService) ListFeedback(ctx context.Context) ([]models.FeedbackSubmission, error) {
	return s.repo.ListFeedback(ctx)
}
