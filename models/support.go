package models

import "time"

type ContactStatus string

const (
	ContactPending  ContactStatus = "pending"
	ContactResolved ContactStatus = "resolved"
)

type ContactSubmission struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Email       string        `json:"email"`
	Phone       string        `json:"phone,omitempty"`
	Subject     string        `json:"subject"`
	Message     string        `json:"message"`
	City        string        `json:"city,omitempty"`
	SubmittedAt time.Time     `json:"submittedAt"`
	Status      ContactStatus `json:"status"`
}

type FeedbackCategory string

const (
	FeedbackGeneral FeedbackCategory = "general"
	FeedbackBooking FeedbackCategory = "booking"
	FeedbackVenue   FeedbackCategory = "venue"
	FeedbackPayment FeedbackCategory = "payment"
	FeedbackOther   FeedbackCategory = "other"
)

var FeedbackCategories = []FeedbackCategory{
	FeedbackGeneral, FeedbackBooking, FeedbackVenue, FeedbackPayment, FeedbackOther,
}

type FeedbackSubmission struct {
	ID          string           `json:"id"`
	UserID      string           `json:"userId,omitempty"`
	UserName    string           `json:"userName,omitempty"`
	UserEmail   string           `json:"userEmail"`
	BookingID   string           `json:"bookingId,omitempty"`
	Rating      int              `json:"rating"`
	Comment     string           `json:"comment"`
	Category    FeedbackCategory `json:"category"`
	SubmittedAt time.Time        `json:"submittedAt"`
}
