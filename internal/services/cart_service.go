package services

import (
	"context"
	"fmt"
	"slices"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"luxetickets/internal/status"
	"luxetickets/models"
	"luxetickets/monitoring"
)

// AddItemInput is what a client may choose. Titles and prices always come
// from the catalog.
type AddItemInput struct {
	EventID string          `json:"eventId"`
	Date    string          `json:"date"`
	Time    string          `json:"time"`
	Tier    models.SeatTier `json:"seatTier"`
	Seats   []string        `json:"seats"`
}

func (in AddItemInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.EventID, validation.Required),
		validation.Field(&in.Date, validation.Required, validation.Date("2006-01-02")),
		validation.Field(&in.Time, validation.Required),
		validation.Field(&in.Tier, validation.Required),
		validation.Field(&in.Seats, validation.Required.Error("select at least one seat")),
	)
}

type CartService struct {
	carts   CartRepository
	catalog EventCatalog
	seats   SeatInventory
	monitor *monitoring.Monitor
	newID   func() string
}

func NewCartService(carts CartRepository, catalog EventCatalog, seats SeatInventory, monitor *monitoring.Monitor) *CartService {
	return &CartService{
		carts:   carts,
		catalog: catalog,
		seats:   seats,
		monitor: monitor,
		newID:   uuid.NewString,
	}
}

// AddItem prices the selection from the catalog and appends it to the cart.
func (s *CartService) AddItem(ctx context.Context, userID string, in AddItemInput) (models.CartItem, error) {
	item, err := s.addItem(ctx, userID, in)
	s.monitor.TrackCart("add", err)
	return item, err
}

func (s *CartService) addItem(ctx context.Context, userID string, in AddItemInput) (models.CartItem, error) {
	if err := in.Validate(); err != nil {
		return models.CartItem{}, err
	}
	if !in.Tier.Valid() {
		return models.CartItem{}, status.ErrInvalidTier
	}

	event, err := s.catalog.Get(ctx, in.EventID)
	if err != nil {
		return models.CartItem{}, err
	}
	if !event.HasShow(in.Date, in.Time) {
		return models.CartItem{}, status.ErrShowNotAvailable
	}

	seen := make(map[string]bool, len(in.Seats))
	for _, seatID := range in.Seats {
		if _, _, err := models.ParseSeatID(seatID); err != nil {
			return models.CartItem{}, fmt.Errorf("%w: %v", status.ErrInvalidSeat, err)
		}
		if seen[seatID] {
			return models.CartItem{}, fmt.Errorf("%w: %s selected twice", status.ErrInvalidSeat, seatID)
		}
		seen[seatID] = true
	}

	item := models.NewCartItem(s.newID(), event, in.Date, in.Time, in.Tier, in.Seats)

	sold, err := s.seats.Sold(ctx, item.Show())
	if err != nil {
		return models.CartItem{}, err
	}
	for _, seatID := range item.Seats {
		if _, taken := sold[seatID]; taken {
			return models.CartItem{}, fmt.Errorf("%w: %s", status.ErrSeatUnavailable, seatID)
		}
	}

	_, err = s.carts.Update(ctx, userID, func(items []models.CartItem) ([]models.CartItem, error) {
		return append(items, item), nil
	})
	if err != nil {
		return models.CartItem{}, err
	}
	return item, nil
}

func (s *CartService) RemoveItem(ctx context.Context, userID, itemID string) error {
	_, err := s.carts.Update(ctx, userID, func(items []models.CartItem) ([]models.CartItem, error) {
		i := slices.IndexFunc(items, func(item models.CartItem) bool { return item.ID == itemID })
		if i < 0 {
			return nil, status.ErrCartItemNotFound
		}
		return slices.Delete(items, i, i+1), nil
	})
	s.monitor.TrackCart("remove", err)
	return err
}

func (s *CartService) ClearCart(ctx context.Context, userID string) error {
	err := s.carts.Clear(ctx, userID)
	s.monitor.TrackCart("clear", err)
	return err
}

func (s *CartService) GetCart(ctx context.Context, userID string) ([]models.CartItem, error) {
	items, err := s.carts.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.CartItem{}
	}
	return items, nil
}

// GetTotal sums the line totals of the user's cart.
func (s *CartService) GetTotal(ctx context.Context, userID string) (decimal.Decimal, error) {
	items, err := s.carts.Get(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}
	return models.CartTotal(items), nil
}

// ItemCount is the number of cart lines, not seats.
func (s *CartService) ItemCount(ctx context.Context, userID string) (int, error) {
	items, err := s.carts.Get(ctx, userID)
	if err != nil {
		return 0, err
	}
	return len(items), nil
}
