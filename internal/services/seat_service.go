package services

import (
	"context"
	"math/rand/v2"

	"luxetickets/internal/status"
	"luxetickets/models"
)

type SeatService struct {
	seats      SeatInventory
	catalog    EventCatalog
	houseSeats int
	perm       func(n int) []int
}

// NewSeatService builds seat maps where houseSeats random seats per call
// show as booked in addition to the seats actually sold.
func NewSeatService(seats SeatInventory, catalog EventCatalog, houseSeats int) *SeatService {
	return &SeatService{
		seats:      seats,
		catalog:    catalog,
		houseSeats: houseSeats,
		perm:       rand.Perm,
	}
}

func (s *SeatService) SeatMap(ctx context.Context, eventID, date, showTime string) (models.SeatMap, error) {
	event, err := s.catalog.Get(ctx, eventID)
	if err != nil {
		return models.SeatMap{}, err
	}
	if !event.HasShow(date, showTime) {
		return models.SeatMap{}, status.ErrShowNotAvailable
	}

	show := models.ShowKey{EventID: eventID, Date: date, Time: showTime}
	sold, err := s.seats.Sold(ctx, show)
	if err != nil {
		return models.SeatMap{}, err
	}

	total := len(models.SeatRows) * models.SeatsPerRow
	house := make(map[int]bool)
	if s.houseSeats > 0 {
		picks := s.perm(total)
		for _, idx := range picks[:min(s.houseSeats, total)] {
			house[idx] = true
		}
	}

	seatMap := models.SeatMap{
		Show:        show,
		Rows:        append([]string(nil), models.SeatRows...),
		SeatsPerRow: models.SeatsPerRow,
		Seats:       make([]models.Seat, 0, total),
	}
	for r, row := range models.SeatRows {
		for n := 1; n <= models.SeatsPerRow; n++ {
			id := models.SeatID(row, n)
			seatStatus := models.SeatAvailable
			if _, taken := sold[id]; taken || house[r*models.SeatsPerRow+n-1] {
				seatStatus = models.SeatBooked
			} else {
				seatMap.AvailableSeats++
			}
			seatMap.Seats = append(seatMap.Seats, models.Seat{ID: id, Row: row, Number: n, Status: seatStatus})
		}
	}
	return seatMap, nil
}
