package services

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"luxetickets/internal/services/payment"
	"luxetickets/internal/status"
	"luxetickets/models"
	"luxetickets/monitoring"
)

type PaymentProcessor interface {
	Validate(details models.PaymentDetails) error
	Charge(ctx context.Context, req payment.ChargeRequest) (*payment.Receipt, error)
}

type CheckoutRequest struct {
	models.PaymentDetails
	PromoCode string `json:"promoCode,omitempty"`
}

type CheckoutService struct {
	carts    CartRepository
	seats    SeatInventory
	bookings *BookingService
	payments PaymentProcessor
	monitor  *monitoring.Monitor
	now      func() time.Time
}

func NewCheckoutService(carts CartRepository, seats SeatInventory, bookings *BookingService, payments PaymentProcessor, monitor *monitoring.Monitor) *CheckoutService {
	return &CheckoutService{
		carts:    carts,
		seats:    seats,
		bookings: bookings,
		payments: payments,
		monitor:  monitor,
		now:      time.Now,
	}
}

// Quote prices the user's current cart with an optional promo code.
func (s *CheckoutService) Quote(ctx context.Context, userID, promo string) (Quote, error) {
	items, err := s.carts.Get(ctx, userID)
	if err != nil {
		return Quote{}, err
	}
	if items == nil {
		items = []models.CartItem{}
	}
	return NewQuote(items, promo)
}

// Checkout pays for the cart, turns it into one confirmed booking and
// removes the booked lines from the cart.
func (s *CheckoutService) Checkout(ctx context.Context, userID string, req CheckoutRequest) (models.Booking, error) {
	start := s.now()
	booking, err := s.checkout(ctx, userID, req)
	s.monitor.TrackCheckout(string(req.Method), time.Since(start), err)
	return booking, err
}

func (s *CheckoutService) checkout(ctx context.Context, userID string, req CheckoutRequest) (models.Booking, error) {
	items, err := s.carts.Get(ctx, userID)
	if err != nil {
		return models.Booking{}, err
	}
	if len(items) == 0 {
		return models.Booking{}, status.ErrEmptyCart
	}

	quote, err := NewQuote(items, req.PromoCode)
	if err != nil {
		return models.Booking{}, err
	}
	if err := s.payments.Validate(req.PaymentDetails); err != nil {
		return models.Booking{}, err
	}

	holds := models.HoldsFor(items)
	if err := s.ensureAvailable(ctx, holds); err != nil {
		return models.Booking{}, err
	}

	receipt, err := s.payments.Charge(ctx, payment.ChargeRequest{
		Reference: fmt.Sprintf("%s-%d", userID, s.now().UnixMilli()),
		UserID:    userID,
		Amount:    quote.Total,
		Details:   req.PaymentDetails,
	})
	if err != nil {
		return models.Booking{}, err
	}

	booking, err := s.bookings.createBooking(ctx, models.NewBooking{
		UserID:         userID,
		Items:          items,
		TotalAmount:    quote.Subtotal,
		ConvenienceFee: quote.ConvenienceFee,
		PromoDiscount:  quote.PromoDiscount,
		PaymentMethod:  req.Method.Label(),
		Status:         models.BookingConfirmed,
		BookingDate:    s.now().UTC(),
	}, holds)
	if err != nil {
		slog.Warn("Checkout failed after payment, voiding", "error", err, "user_id", userID, "reference", receipt.Reference)
		return models.Booking{}, err
	}

	if err := s.removeBooked(ctx, userID, items); err != nil {
		slog.Error("Failed to clear cart after checkout", "error", err, "user_id", userID, "booking_id", booking.ID)
	}

	slog.Info("Checkout completed",
		"user_id", userID,
		"booking_id", booking.ID,
		"final_amount", booking.FinalAmount.String(),
		"payment_method", booking.PaymentMethod,
	)
	return booking, nil
}

// removeBooked drops only the lines that went into the booking, so items
// added while the payment was in flight stay in the cart.
func (s *CheckoutService) removeBooked(ctx context.Context, userID string, booked []models.CartItem) error {
	ids := make(map[string]struct{}, len(booked))
	for _, item := range booked {
		ids[item.ID] = struct{}{}
	}
	_, err := s.carts.Update(ctx, userID, func(items []models.CartItem) ([]models.CartItem, error) {
		return slices.DeleteFunc(items, func(item models.CartItem) bool {
			_, ok := ids[item.ID]
			return ok
		}), nil
	})
	return err
}

// ensureAvailable fails fast, before payment, when a seat is already sold.
func (s *CheckoutService) ensureAvailable(ctx context.Context, holds []models.SeatHold) error {
	for _, hold := range holds {
		sold, err := s.seats.Sold(ctx, hold.Show)
		if err != nil {
			return err
		}
		for _, seatID := range hold.Seats {
			if _, taken := sold[seatID]; taken {
				return fmt.Errorf("%w: %s for %s", status.ErrSeatUnavailable, seatID, hold.Show)
			}
		}
	}
	return nil
}
