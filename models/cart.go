package models

import (
	"github.com/shopspring/decimal"
)

type SeatTier string

const (
	TierSilver   SeatTier = "silver"
	TierGold     SeatTier = "gold"
	TierPlatinum SeatTier = "platinum"
)

func (t SeatTier) Valid() bool {
	switch t {
	case TierSilver, TierGold, TierPlatinum:
		return true
	}
	return false
}

type CartItem struct {
	ID           string          `json:"id"`
	EventID      string          `json:"eventId"`
	EventTitle   string          `json:"eventTitle"`
	EventImage   string          `json:"eventImage"`
	EventDate    string          `json:"eventDate"`
	EventTime    string          `json:"eventTime"`
	Venue        string          `json:"venue"`
	Seats        []string        `json:"seats"`
	SeatTier     SeatTier        `json:"seatTier"`
	PricePerSeat decimal.Decimal `json:"pricePerSeat"`
	Quantity     int             `json:"quantity"`
	TotalPrice   decimal.Decimal `json:"totalPrice"`
}

// NewCartItem prices a seat selection for one show of an event.
func NewCartItem(id string, event Event, date, showTime string, tier SeatTier, seats []string) CartItem {
	price := event.Prices.For(tier)
	return CartItem{
		ID:           id,
		EventID:      event.ID,
		EventTitle:   event.Title,
		EventImage:   event.Image,
		EventDate:    date,
		EventTime:    showTime,
		Venue:        event.Venue,
		Seats:        append([]string(nil), seats...),
		SeatTier:     tier,
		PricePerSeat: price,
		Quantity:     len(seats),
		TotalPrice:   price.Mul(decimal.NewFromInt(int64(len(seats)))),
	}
}

func (c CartItem) Show() ShowKey {
	return ShowKey{EventID: c.EventID, Date: c.EventDate, Time: c.EventTime}
}

// CartTotal sums the line totals of items.
func CartTotal(items []CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.TotalPrice)
	}
	return total
}
