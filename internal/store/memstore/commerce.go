package memstore

import (
	"context"
	"slices"
	"sync"

	"luxetickets/internal/services"
	"luxetickets/internal/status"
	"luxetickets/models"
)

type CartStore struct {
	mu    sync.Mutex
	carts map[string][]models.CartItem
}

func NewCartStore() *CartStore {
	return &CartStore{carts: make(map[string][]models.CartItem)}
}

func (s *CartStore) Get(_ context.Context, userID string) ([]models.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.carts[userID]), nil
}

func (s *CartStore) Update(_ context.Context, userID string, fn services.CartMutation) ([]models.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := fn(slices.Clone(s.carts[userID]))
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		delete(s.carts, userID)
		return []models.CartItem{}, nil
	}
	s.carts[userID] = slices.Clone(items)
	return items, nil
}

func (s *CartStore) Clear(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carts, userID)
	return nil
}

type BookingStore struct {
	mu       sync.Mutex
	bookings map[string]models.Booking
	order    []string
}

func NewBookingStore() *BookingStore {
	return &BookingStore{bookings: make(map[string]models.Booking)}
}

func (s *BookingStore) Insert(_ context.Context, booking models.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.bookings[booking.ID]; exists {
		return status.ErrBookingIDConflict
	}
	s.bookings[booking.ID] = booking
	s.order = append(s.order, booking.ID)
	return nil
}

func (s *BookingStore) Get(_ context.Context, id string) (models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	booking, ok := s.bookings[id]
	if !ok {
		return models.Booking{}, status.ErrBookingNotFound
	}
	return booking, nil
}

func (s *BookingStore) Update(_ context.Context, id string, fn services.BookingMutation) (models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	booking, ok := s.bookings[id]
	if !ok {
		return models.Booking{}, status.ErrBookingNotFound
	}
	updated, err := fn(booking)
	if err != nil {
		return models.Booking{}, err
	}
	s.bookings[id] = updated
	return updated, nil
}

func (s *BookingStore) ListByUser(_ context.Context, userID string) ([]models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Booking
	for _, id := range s.order {
		if b := s.bookings[id]; b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

type SeatStore struct {
	mu   sync.Mutex
	sold map[models.ShowKey]map[string]string
}

func NewSeatStore() *SeatStore {
	return &SeatStore{sold: make(map[models.ShowKey]map[string]string)}
}

func (s *SeatStore) Sold(_ context.Context, show models.ShowKey) (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]string, len(s.sold[show]))
	for seat, bookingID := range s.sold[show] {
		out[seat] = bookingID
	}
	return out, nil
}

func (s *SeatStore) Reserve(_ context.Context, bookingID string, holds []models.SeatHold) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	claimed := make(map[models.ShowKey]map[string]bool)
	for _, hold := range holds {
		if claimed[hold.Show] == nil {
			claimed[hold.Show] = make(map[string]bool)
		}
		for _, seat := range hold.Seats {
			if _, taken := s.sold[hold.Show][seat]; taken || claimed[hold.Show][seat] {
				return status.ErrSeatUnavailable
			}
			claimed[hold.Show][seat] = true
		}
	}

	for show, seats := range claimed {
		if s.sold[show] == nil {
			s.sold[show] = make(map[string]string)
		}
		for seat := range seats {
			s.sold[show][seat] = bookingID
		}
	}
	return nil
}

func (s *SeatStore) Release(_ context.Context, bookingID string, holds []models.SeatHold) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, hold := range holds {
		for _, seat := range hold.Seats {
			if s.sold[hold.Show][seat] == bookingID {
				delete(s.sold[hold.Show], seat)
			}
		}
	}
	return nil
}
