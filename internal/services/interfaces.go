package services

import (
	"context"
	"time"

	"luxetickets/models"
)

// UserRepository is the user table keyed by lowercased email.
type UserRepository interface {
	// Create fails with status.ErrEmailTaken when the email is in use.
	Create(ctx context.Context, cred models.Credential) error
	FindByEmail(ctx context.Context, email string) (models.Credential, error)
	FindByID(ctx context.Context, id string) (models.Credential, error)
	// UpdateUser replaces the profile part of a credential record.
	UpdateUser(ctx context.Context, user models.User) error
}

type SessionRepository interface {
	Create(ctx context.Context, sessionID, userID string, ttl time.Duration) error
	// Lookup returns the user id of a live session or status.ErrInvalidSession.
	Lookup(ctx context.Context, sessionID string) (string, error)
	Delete(ctx context.Context, sessionID string) error
}

// CartMutation edits a cart. Returning an error aborts the write.
type CartMutation func(items []models.CartItem) ([]models.CartItem, error)

type CartRepository interface {
	Get(ctx context.Context, userID string) ([]models.CartItem, error)
	// Update applies fn atomically with respect to other writers of the
	// same cart and returns the stored result.
	Update(ctx context.Context, userID string, fn CartMutation) ([]models.CartItem, error)
	Clear(ctx context.Context, userID string) error
}

type BookingMutation func(booking models.Booking) (models.Booking, error)

type BookingRepository interface {
	// Insert fails with status.ErrBookingIDConflict if the id exists.
	Insert(ctx context.Context, booking models.Booking) error
	Get(ctx context.Context, id string) (models.Booking, error)
	Update(ctx context.Context, id string, fn BookingMutation) (models.Booking, error)
	// ListByUser returns a user's bookings in creation order.
	ListByUser(ctx context.Context, userID string) ([]models.Booking, error)
}

// SeatInventory records which booking holds each sold seat of a show.
type SeatInventory interface {
	Sold(ctx context.Context, show models.ShowKey) (map[string]string, error)
	// Reserve claims every seat of holds for bookingID or none of them,
	// failing with status.ErrSeatUnavailable.
	Reserve(ctx context.Context, bookingID string, holds []models.SeatHold) error
	// Release frees the seats of holds still owned by bookingID.
	Release(ctx context.Context, bookingID string, holds []models.SeatHold) error
}

type SubmissionRepository interface {
	CreateContact(ctx context.Context, c models.ContactSubmission) (models.ContactSubmission, error)
	ListContacts(ctx context.Context) ([]models.ContactSubmission, error)
	ResolveContact(ctx context.Context, id string) (models.ContactSubmission, error)
	CreateFeedback(ctx context.Context, f models.FeedbackSubmission) (models.FeedbackSubmission, error)
	ListFeedback(ctx context.Context) ([]models.FeedbackSubmission, error)
}

// EventCatalog resolves events for pricing and seat maps.
type EventCatalog interface {
	Get(ctx context.Context, id string) (models.Event, error)
}

type Notifier interface {
	BookingConfirmed(ctx context.Context, booking models.Booking) error
	BookingCancelled(ctx context.Context, booking models.Booking) error
}
