package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"luxetickets/internal/services"
	"luxetickets/internal/status"
	"luxetickets/models"
)

func TestAddItem_TotalsFromCatalog(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.carts.AddItem(ctx, "user-1", goldSeats("A1", "A2"))
	require.NoError(t, err)
	assert.Equal(t, "Dune: Part Three", first.EventTitle)
	assert.Equal(t, 2, first.Quantity)
	assert.True(t, first.TotalPrice.Equal(decimal.NewFromInt(900)))

	in := goldSeats("B1")
	in.Tier = models.TierPlatinum
	_, err = f.carts.AddItem(ctx, "user-1", in)
	require.NoError(t, err)

	total, err := f.carts.GetTotal(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.NewFromInt(1650)), "got %s", total)

	count, err := f.carts.ItemCount(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestAddItem_Rejects(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	badTier := goldSeats("A1")
	badTier.Tier = "diamond"
	noShow := goldSeats("A1")
	noShow.Time = "11:00 PM"
	unknown := goldSeats("A1")
	unknown.EventID = "mov-404"

	tests := []struct {
		name    string
		input   services.AddItemInput
		wantErr error
	}{
		{"invalid tier", badTier, status.ErrInvalidTier},
		{"show not offered", noShow, status.ErrShowNotAvailable},
		{"unknown event", unknown, status.ErrEventNotFound},
		{"seat off grid", goldSeats("Z1"), status.ErrInvalidSeat},
		{"seat twice", goldSeats("A1", "A1"), status.ErrInvalidSeat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.carts.AddItem(ctx, "user-1", tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	_, err := f.carts.AddItem(ctx, "user-1", goldSeats())
	assert.True(t, status.IsValidation(err))

	items, err := f.carts.GetCart(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestAddItem_SoldSeat(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	show := models.ShowKey{EventID: "mov-1", Date: showDate, Time: showTime}
	require.NoError(t, f.sold.Reserve(ctx, "BK1", []models.SeatHold{{Show: show, Seats: []string{"C7"}}}))

	_, err := f.carts.AddItem(ctx, "user-1", goldSeats("C6", "C7"))

	assert.ErrorIs(t, err, status.ErrSeatUnavailable)
}

func TestRemoveAndClear(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	item, err := f.carts.AddItem(ctx, "user-1", goldSeats("A1"))
	require.NoError(t, err)
	_, err = f.carts.AddItem(ctx, "user-1", goldSeats("A2"))
	require.NoError(t, err)

	require.NoError(t, f.carts.RemoveItem(ctx, "user-1", item.ID))
	assert.ErrorIs(t, f.carts.RemoveItem(ctx, "user-1", item.ID), status.ErrCartItemNotFound)

	items, err := f.carts.GetCart(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, []string{"A2"}, items[0].Seats)

	require.NoError(t, f.carts.ClearCart(ctx, "user-1"))
	total, err := f.carts.GetTotal(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, total.IsZero())
}

func TestCartsAreIsolatedPerUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.carts.AddItem(ctx, "user-1", goldSeats("A1"))
	require.NoError(t, err)

	items, err := f.carts.GetCart(ctx, "user-2")
	require.NoError(t, err)
	assert.Empty(t, items)
}
