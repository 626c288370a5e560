package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"luxetickets/internal/catalog"
	"luxetickets/internal/services"
	"luxetickets/internal/status"
	"luxetickets/internal/store/memstore"
	"luxetickets/models"
)

func countStatus(seatMap models.SeatMap, want models.SeatStatus) int {
	n := 0
	for _, seat := range seatMap.Seats {
		if seat.Status == want {
			n++
		}
	}
	return n
}

func TestSeatMap_HouseSeats(t *testing.T) {
	f := newFixture(t)

	seatMap, err := f.seats.SeatMap(context.Background(), "mov-1", showDate, showTime)

	require.NoError(t, err)
	assert.Len(t, seatMap.Seats, 96)
	assert.Equal(t, 20, countStatus(seatMap, models.SeatBooked))
	assert.Equal(t, 76, seatMap.AvailableSeats)
	assert.Equal(t, "A1", seatMap.Seats[0].ID)
	assert.Equal(t, "H12", seatMap.Seats[95].ID)
}

func TestSeatMap_SoldSeatsAlwaysBooked(t *testing.T) {
	events := catalog.New(catalog.StaticSource{testEvent()})
	require.NoError(t, events.Reload(context.Background()))
	sold := memstore.NewSeatStore()
	show := models.ShowKey{EventID: "mov-1", Date: showDate, Time: showTime}
	require.NoError(t, sold.Reserve(context.Background(), "BK1", []models.SeatHold{{Show: show, Seats: []string{"C7", "C8"}}}))

	svc := services.NewSeatService(sold, events, 0)
	seatMap, err := svc.SeatMap(context.Background(), "mov-1", showDate, showTime)

	require.NoError(t, err)
	assert.Equal(t, 2, countStatus(seatMap, models.SeatBooked))
	assert.Equal(t, 94, seatMap.AvailableSeats)

	selection := models.NewSeatSelection(seatMap)
	assert.False(t, selection.Toggle("C7"))
	assert.True(t, selection.Toggle("C9"))
}

func TestSeatMap_UnknownShow(t *testing.T) {
	f := newFixture(t)

	_, err := f.seats.SeatMap(context.Background(), "mov-1", showDate, "3:00 AM")
	assert.ErrorIs(t, err, status.ErrShowNotAvailable)

	_, err = f.seats.SeatMap(context.Background(), "nope", showDate, showTime)
	assert.ErrorIs(t, err, status.ErrEventNotFound)
}
