package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingPending   BookingStatus = "pending"
)

type Booking struct {
	ID             string          `json:"id"`
	UserID         string          `json:"userId"`
	Items          []CartItem      `json:"items"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	ConvenienceFee decimal.Decimal `json:"convenienceFee"`
	PromoDiscount  decimal.Decimal `json:"promoDiscount"`
	FinalAmount    decimal.Decimal `json:"finalAmount"`
	PaymentMethod  string          `json:"paymentMethod"`
	Status         BookingStatus   `json:"status"`
	BookingDate    time.Time       `json:"bookingDate"`
	QRCode         string          `json:"qrCode"`
}

// NewBooking is the caller-supplied part of a booking; the store stamps
// the id and QR code.
type NewBooking struct {
	UserID         string
	Items          []CartItem
	TotalAmount    decimal.Decimal
	ConvenienceFee decimal.Decimal
	PromoDiscount  decimal.Decimal
	PaymentMethod  string
	Status         BookingStatus
	BookingDate    time.Time
}

func (n NewBooking) FinalAmount() decimal.Decimal {
	return n.TotalAmount.Add(n.ConvenienceFee).Sub(n.PromoDiscount)
}

func (n NewBooking) Stamp(id, qrCode string) Booking {
	status := n.Status
	if status == "" {
		status = BookingConfirmed
	}
	return Booking{
		ID:             id,
		UserID:         n.UserID,
		Items:          append([]CartItem(nil), n.Items...),
		TotalAmount:    n.TotalAmount,
		ConvenienceFee: n.ConvenienceFee,
		PromoDiscount:  n.PromoDiscount,
		FinalAmount:    n.FinalAmount(),
		PaymentMethod:  n.PaymentMethod,
		Status:         status,
		BookingDate:    n.BookingDate,
		QRCode:         qrCode,
	}
}

// SeatCount is the number of tickets across all lines.
func (b Booking) SeatCount() int {
	n := 0
	for _, item := range b.Items {
		n += len(item.Seats)
	}
	return n
}

// LatestShowDate returns the latest event date among the booking's items
// in YYYY-MM-DD form.
func (b Booking) LatestShowDate() string {
	latest := ""
	for _, item := range b.Items {
		if item.EventDate > latest {
			latest = item.EventDate
		}
	}
	return latest
}

type DashboardSummary struct {
	TotalBookings     int             `json:"totalBookings"`
	UpcomingBookings  int             `json:"upcomingBookings"`
	PastBookings      int             `json:"pastBookings"`
	CancelledBookings int             `json:"cancelledBookings"`
	TotalSpent        decimal.Decimal `json:"totalSpent"`
}
