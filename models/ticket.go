package models

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/shopspring/decimal"
)

// Seat grid shared by every venue.
var SeatRows = []string{"A", "B", "C", "D", "E", "F", "G", "H"}

const SeatsPerRow = 12

type SeatStatus string

const (
	SeatAvailable SeatStatus = "available"
	SeatBooked    SeatStatus = "booked"
	SeatSelected  SeatStatus = "selected"
)

// ShowKey identifies one performance: an event on a date at a time.
type ShowKey struct {
	EventID string `json:"eventId"`
	Date    string `json:"date"`
	Time    string `json:"time"`
}

func (k ShowKey) String() string {
	return fmt.Sprintf("%s:%s:%s", k.EventID, k.Date, k.Time)
}

type Seat struct {
	ID     string     `json:"id"`
	Row    string     `json:"row"`
	Number int        `json:"number"`
	Status SeatStatus `json:"status"`
}

type SeatMap struct {
	Show           ShowKey  `json:"show"`
	Rows           []string `json:"rows"`
	SeatsPerRow    int      `json:"seatsPerRow"`
	Seats          []Seat   `json:"seats"`
	AvailableSeats int      `json:"availableSeats"`
}

// ParseSeatID validates a seat id such as "C7" against the grid.
func ParseSeatID(id string) (row string, number int, err error) {
	if len(id) < 2 {
		return "", 0, fmt.Errorf("invalid seat %q", id)
	}
	row = id[:1]
	if !slices.Contains(SeatRows, row) {
		return "", 0, fmt.Errorf("invalid seat row in %q", id)
	}
	number, err = strconv.Atoi(id[1:])
	if err != nil || number < 1 || number > SeatsPerRow {
		return "", 0, fmt.Errorf("invalid seat number in %q", id)
	}
	return row, number, nil
}

func SeatID(row string, number int) string {
	return fmt.Sprintf("%s%d", row, number)
}

// SeatSelection is the client-side pick list for a show. Booked seats can
// never be selected.
type SeatSelection struct {
	booked   map[string]bool
	selected []string
}

func NewSeatSelection(seatMap SeatMap) *SeatSelection {
	booked := make(map[string]bool)
	for _, seat := range seatMap.Seats {
		if seat.Status == SeatBooked {
			booked[seat.ID] = true
		}
	}
	return &SeatSelection{booked: booked}
}

// Toggle adds or removes a seat and reports whether the seat is selected
// afterwards.
func (s *SeatSelection) Toggle(seatID string) bool {
	if s.booked[seatID] {
		return false
	}
	if i := slices.Index(s.selected, seatID); i >= 0 {
		s.selected = slices.Delete(s.selected, i, i+1)
		return false
	}
	s.selected = append(s.selected, seatID)
	return true
}

func (s *SeatSelection) Status(seatID string) SeatStatus {
	switch {
	case s.booked[seatID]:
		return SeatBooked
	case slices.Contains(s.selected, seatID):
		return SeatSelected
	}
	return SeatAvailable
}

func (s *SeatSelection) Seats() []string {
	return append([]string(nil), s.selected...)
}

// Total is the price of the current selection at a single tier price.
func (s *SeatSelection) Total(pricePerSeat decimal.Decimal) decimal.Decimal {
	return pricePerSeat.Mul(decimal.NewFromInt(int64(len(s.selected))))
}

// SeatHold is a set of seats for one show that a booking occupies.
type SeatHold struct {
	Show  ShowKey
	Seats []string
}

// HoldsFor groups the seats of items by show, preserving first-seen order.
func HoldsFor(items []CartItem) []SeatHold {
	var holds []SeatHold
	index := make(map[ShowKey]int)
	for _, item := range items {
		key := item.Show()
		i, ok := index[key]
		if !ok {
			i = len(holds)
			index[key] = i
			holds = append(holds, SeatHold{Show: key})
		}
		holds[i].Seats = append(holds[i].Seats, item.Seats...)
	}
	return holds
}
