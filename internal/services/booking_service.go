package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"luxetickets/internal/status"
	"luxetickets/models"
	"luxetickets/monitoring"
	"luxetickets/utils"
)

// bookingIDAttempts bounds regeneration when a generated id is taken.
const bookingIDAttempts = 3

type BookingService struct {
	bookings BookingRepository
	seats    SeatInventory
	notifier Notifier
	monitor  *monitoring.Monitor
	now      func() time.Time
}

func NewBookingService(bookings BookingRepository, seats SeatInventory, notifier Notifier, monitor *monitoring.Monitor) *BookingService {
	return &BookingService{
		bookings: bookings,
		seats:    seats,
		notifier: notifier,
		monitor:  monitor,
		now:      time.Now,
	}
}

// AddBooking stamps an id and QR code on data and stores it.
func (s *BookingService) AddBooking(ctx context.Context, data models.NewBooking) (models.Booking, error) {
	return s.createBooking(ctx, data, nil)
}

// createBooking stores a booking, claiming holds under its id first.
func (s *BookingService) createBooking(ctx context.Context, data models.NewBooking, holds []models.SeatHold) (models.Booking, error) {
	if data.BookingDate.IsZero() {
		data.BookingDate = s.now().UTC()
	}

	for attempt := 0; attempt < bookingIDAttempts; attempt++ {
		id, err := utils.GenerateBookingID(s.now())
		if err != nil {
			return models.Booking{}, fmt.Errorf("generate booking id: %w", err)
		}
		qrCode, err := utils.GenerateTicketCode()
		if err != nil {
			return models.Booking{}, fmt.Errorf("generate ticket code: %w", err)
		}
		booking := data.Stamp(id, qrCode)

		if len(holds) > 0 {
			if err := s.seats.Reserve(ctx, booking.ID, holds); err != nil {
				return models.Booking{}, err
			}
		}

		err = s.bookings.Insert(ctx, booking)
		if err == nil {
			s.monitor.TrackBooking(string(booking.Status), booking.FinalAmount)
			s.notify(ctx, booking)
			return booking, nil
		}

		if len(holds) > 0 {
			if releaseErr := s.seats.Release(ctx, booking.ID, holds); releaseErr != nil {
				slog.Error("Failed to release seats after insert failure", "error", releaseErr, "booking_id", booking.ID)
			}
		}
		if !errors.Is(err, status.ErrBookingIDConflict) {
			return models.Booking{}, err
		}
		slog.Warn("Booking id collision, regenerating", "booking_id", booking.ID, "attempt", attempt+1)
	}

	return models.Booking{}, status.ErrBookingIDConflict
}

// CancelBooking moves a confirmed booking to cancelled and frees its
// seats. Cancelling twice returns the booking unchanged.
func (s *BookingService) CancelBooking(ctx context.Context, userID, bookingID string) (models.Booking, error) {
	changed := false
	booking, err := s.bookings.Update(ctx, bookingID, func(b models.Booking) (models.Booking, error) {
		if b.UserID != userID {
			return b, status.ErrBookingNotFound
		}
		changed = false
		if b.Status == models.BookingConfirmed {
			b.Status = models.BookingCancelled
			changed = true
		}
		return b, nil
	})
	if err != nil {
		return models.Booking{}, err
	}
	if !changed {
		return booking, nil
	}

	if err := s.seats.Release(ctx, booking.ID, models.HoldsFor(booking.Items)); err != nil {
		slog.Error("Failed to release seats of cancelled booking", "error", err, "booking_id", booking.ID)
	}
	s.monitor.TrackBooking(string(models.BookingCancelled), booking.FinalAmount)
	s.notify(ctx, booking)

	slog.Info("Booking cancelled", "booking_id", booking.ID, "user_id", userID)
	return booking, nil
}

func (s *BookingService) notify(ctx context.Context, booking models.Booking) {
	if s.notifier == nil {
		return
	}

	var err error
	switch booking.Status {
	case models.BookingConfirmed:
		err = s.notifier.BookingConfirmed(ctx, booking)
	case models.BookingCancelled:
		err = s.notifier.BookingCancelled(ctx, booking)
	}
	if err != nil {
		slog.Warn("Failed to publish booking notification", "error", err, "booking_id", booking.ID)
	}
}

func (s *BookingService) GetUserBookings(ctx context.Context, userID string) ([]models.Booking, error) {
	bookings, err := s.bookings.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}
	return bookings, nil
}

// GetBooking returns one of the user's bookings. Other users' bookings
// are reported as not found.
func (s *BookingService) GetBooking(ctx context.Context, userID, bookingID string) (models.Booking, error) {
	booking, err := s.bookings.Get(ctx, bookingID)
	if err != nil {
		return models.Booking{}, err
	}
	if booking.UserID != userID {
		return models.Booking{}, status.ErrBookingNotFound
	}
	return booking, nil
}

// GetTicket returns one of the user's bookings for ticket rendering. A
// cancelled booking no longer has a valid ticket.
func (s *BookingService) GetTicket(ctx context.Context, userID, bookingID string) (models.Booking, error) {
	booking, err := s.GetBooking(ctx, userID, bookingID)
	if err != nil {
		return models.Booking{}, err
	}
	if booking.Status != models.BookingConfirmed {
		return models.Booking{}, status.ErrBookingCancelled
	}
	return booking, nil
}

// AdmitTicket checks a scanned ticket against the stored booking. The QR
// code and holder must match and the booking must still be confirmed.
func (s *BookingService) AdmitTicket(ctx context.Context, bookingID, qrCode, userID string) (models.Booking, error) {
	booking, err := s.bookings.Get(ctx, bookingID)
	if err != nil {
		return models.Booking{}, err
	}
	if booking.QRCode != qrCode || booking.UserID != userID {
		return models.Booking{}, status.ErrInvalidTicket
	}
	if booking.Status != models.BookingConfirmed {
		return models.Booking{}, status.ErrBookingCancelled
	}
	return booking, nil
}

// Dashboard summarizes a user's bookings. A confirmed booking is upcoming
// while any of its shows is today or later.
func (s *BookingService) Dashboard(ctx context.Context, userID string) (models.DashboardSummary, error) {
	bookings, err := s.bookings.ListByUser(ctx, userID)
	if err != nil {
		return models.DashboardSummary{}, err
	}

	today := s.now().Format("2006-01-02")
	summary := models.DashboardSummary{TotalBookings: len(bookings), TotalSpent: decimal.Zero}
	for _, b := range bookings {
		switch {
		case b.Status == models.BookingCancelled:
			summary.CancelledBookings++
		case b.LatestShowDate() >= today:
			summary.UpcomingBookings++
		default:
			summary.PastBookings++
		}
		if b.Status == models.BookingConfirmed {
			summary.TotalSpent = summary.TotalSpent.Add(b.FinalAmount)
		}
	}
	return summary, nil
}
