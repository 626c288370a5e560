package services_test

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"luxetickets/internal/catalog"
	"luxetickets/internal/services"
	"luxetickets/internal/services/payment"
	"luxetickets/internal/store/memstore"
	"luxetickets/models"
	"luxetickets/security"
)

const (
	showDate = "2099-01-28"
	showTime = "8:30 PM"
)

type recordingNotifier struct {
	mu        sync.Mutex
	confirmed []string
	cancelled []string
}

func (n *recordingNotifier) BookingConfirmed(_ context.Context, b models.Booking) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.confirmed = append(n.confirmed, b.ID)
	return nil
}

func (n *recordingNotifier) BookingCancelled(_ context.Context, b models.Booking) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.cancelled = append(n.cancelled, b.ID)
	return nil
}

type fixture struct {
	auth     *services.AuthService
	carts    *services.CartService
	bookings *services.BookingService
	checkout *services.CheckoutService
	seats    *services.SeatService
	support  *services.SupportService
	notifier *recordingNotifier
	sold     *memstore.SeatStore
	cartRepo *memstore.CartStore
}

func testEvent() models.Event {
	return models.Event{
		ID:       "mov-1",
		Title:    "Dune: Part Three",
		Category: models.CategoryMovies,
		Venue:    "IMAX Cineplex",
		Rating:   8.9,
		Dates:    []string{showDate, "2099-01-29"},
		Times:    []string{"5:00 PM", showTime},
		Prices: models.TierPrices{
			Silver:   decimal.NewFromInt(250),
			Gold:     decimal.NewFromInt(450),
			Platinum: decimal.NewFromInt(750),
		},
	}
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	events := catalog.New(catalog.StaticSource{testEvent()})
	require.NoError(t, events.Reload(context.Background()))

	carts := memstore.NewCartStore()
	seats := memstore.NewSeatStore()
	notifier := &recordingNotifier{}
	bookings := services.NewBookingService(memstore.NewBookingStore(), seats, notifier, nil)

	return &fixture{
		auth: services.NewAuthService(
			memstore.NewUserStore(),
			memstore.NewSessionStore(),
			security.NewTokenManager("test-secret", 0),
			nil,
		).WithHashCost(bcrypt.MinCost),
		carts:    services.NewCartService(carts, events, seats, nil),
		bookings: bookings,
		checkout: services.NewCheckoutService(carts, seats, bookings, payment.NewSimulatedRegistry(0), nil),
		seats:    services.NewSeatService(seats, events, 20),
		support:  services.NewSupportService(memstore.NewSubmissionStore()),
		notifier: notifier,
		sold:     seats,
		cartRepo: carts,
	}
}

func goldSeats(seats ...string) services.AddItemInput {
	return services.AddItemInput{EventID: "mov-1", Date: showDate, Time: showTime, Tier: models.TierGold, Seats: seats}
}

var wallet = services.CheckoutRequest{PaymentDetails: models.PaymentDetails{Method: models.PaymentWallet}}
