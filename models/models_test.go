package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEvent() Event {
	return Event{
		ID:     "mov-1",
		Title:  "Dune: Part Three",
		Image:  "https://example.com/dune.jpg",
		Venue:  "IMAX Cineplex",
		Dates:  []string{"2026-01-28", "2026-01-29"},
		Times:  []string{"10:00 AM", "8:30 PM"},
		Prices: TierPrices{Silver: decimal.NewFromInt(250), Gold: decimal.NewFromInt(450), Platinum: decimal.NewFromInt(750)},
	}
}

func TestNewCartItem_TotalIsSeatsTimesPrice(t *testing.T) {
	item := NewCartItem("item-1", testEvent(), "2026-01-28", "8:30 PM", TierGold, []string{"A1", "A2", "A3"})

	assert.Equal(t, 3, item.Quantity)
	assert.True(t, item.PricePerSeat.Equal(decimal.NewFromInt(450)))
	assert.True(t, item.TotalPrice.Equal(decimal.NewFromInt(1350)))
	assert.Equal(t, "Dune: Part Three", item.EventTitle)
	assert.Equal(t, "IMAX Cineplex", item.Venue)
	assert.Equal(t, ShowKey{EventID: "mov-1", Date: "2026-01-28", Time: "8:30 PM"}, item.Show())
}

func TestCartTotal(t *testing.T) {
	event := testEvent()
	items := []CartItem{
		NewCartItem("a", event, "2026-01-28", "10:00 AM", TierSilver, []string{"B1", "B2"}),
		NewCartItem("b", event, "2026-01-29", "8:30 PM", TierPlatinum, []string{"C5"}),
	}

	assert.True(t, CartTotal(items).Equal(decimal.NewFromInt(1250)))
	assert.True(t, CartTotal(nil).IsZero())
}

func TestSeatTier_Valid(t *testing.T) {
	assert.True(t, TierSilver.Valid())
	assert.True(t, TierGold.Valid())
	assert.True(t, TierPlatinum.Valid())
	assert.False(t, SeatTier("diamond").Valid())
	assert.False(t, SeatTier("").Valid())
}

func TestEvent_HasShow(t *testing.T) {
	event := testEvent()

	assert.True(t, event.HasShow("2026-01-28", "10:00 AM"))
	assert.False(t, event.HasShow("2026-02-01", "10:00 AM"))
	assert.False(t, event.HasShow("2026-01-28", "11:00 AM"))
}

func TestNewBooking_StampComputesFinalAmount(t *testing.T) {
	n := NewBooking{
		UserID:         "user-1",
		TotalAmount:    decimal.NewFromInt(1000),
		ConvenienceFee: decimal.NewFromInt(30),
		PromoDiscount:  decimal.NewFromInt(100),
		PaymentMethod:  "UPI",
		BookingDate:    time.Now(),
	}

	b := n.Stamp("BK1", "QR-ABCDEF12")

	assert.Equal(t, "BK1", b.ID)
	assert.Equal(t, "QR-ABCDEF12", b.QRCode)
	assert.Equal(t, BookingConfirmed, b.Status)
	assert.True(t, b.FinalAmount.Equal(decimal.NewFromInt(930)))
}

func TestBooking_SeatCountAndLatestShowDate(t *testing.T) {
	event := testEvent()
	b := Booking{Items: []CartItem{
		NewCartItem("a", event, "2026-01-28", "10:00 AM", TierSilver, []string{"B1", "B2"}),
		NewCartItem("b", event, "2026-01-29", "8:30 PM", TierGold, []string{"C5"}),
	}}

	assert.Equal(t, 3, b.SeatCount())
	assert.Equal(t, "2026-01-29", b.LatestShowDate())
}

func TestUser_Apply(t *testing.T) {
	u := User{ID: "u1", Email: "a@b.com", Name: "Old"}
	name := "  New Name "
	phone := "9999"

	updated := u.Apply(ProfileUpdate{Name: &name, Phone: &phone})
	assert.Equal(t, "New Name", updated.Name)
	assert.Equal(t, "9999", updated.Phone)
	assert.Equal(t, "a@b.com", updated.Email)

	unchanged := updated.Apply(ProfileUpdate{})
	assert.Equal(t, updated, unchanged)
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "jane@example.com", NormalizeEmail("  Jane@Example.COM "))
}

func TestParseSeatID(t *testing.T) {
	tests := []struct {
		id      string
		row     string
		number  int
		wantErr bool
	}{
		{"A1", "A", 1, false},
		{"H12", "H", 12, false},
		{"I1", "", 0, true},
		{"A0", "", 0, true},
		{"A13", "", 0, true},
		{"A", "", 0, true},
		{"Ax", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			row, number, err := ParseSeatID(tt.id)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.row, row)
			assert.Equal(t, tt.number, number)
		})
	}
}

func TestSeatSelection_Toggle(t *testing.T) {
	seatMap := SeatMap{Seats: []Seat{
		{ID: "A1", Status: SeatBooked},
		{ID: "A2", Status: SeatAvailable},
		{ID: "A3", Status: SeatAvailable},
	}}
	sel := NewSeatSelection(seatMap)

	assert.False(t, sel.Toggle("A1"), "booked seats cannot be selected")
	assert.True(t, sel.Toggle("A2"))
	assert.True(t, sel.Toggle("A3"))
	assert.Equal(t, []string{"A2", "A3"}, sel.Seats())
	assert.Equal(t, SeatSelected, sel.Status("A2"))
	assert.Equal(t, SeatBooked, sel.Status("A1"))

	assert.True(t, sel.Total(decimal.NewFromInt(450)).Equal(decimal.NewFromInt(900)))

	assert.False(t, sel.Toggle("A2"))
	assert.Equal(t, []string{"A3"}, sel.Seats())
	assert.Equal(t, SeatAvailable, sel.Status("A2"))
}

func TestPaymentMethod_Label(t *testing.T) {
	assert.Equal(t, "UPI", PaymentUPI.Label())
	assert.Equal(t, "Card", PaymentCard.Label())
	assert.Equal(t, "Wallet", PaymentWallet.Label())
	assert.Equal(t, "", PaymentMethod("cash").Label())
}
