package models

import (
	"slices"

	"github.com/shopspring/decimal"
)

type EventCategory string

const (
	CategoryMovies   EventCategory = "movies"
	CategoryConcerts EventCategory = "concerts"
	CategorySports   EventCategory = "sports"
	CategoryTheatre  EventCategory = "theatre"
)

type TierPrices struct {
	Silver   decimal.Decimal `json:"silver"`
	Gold     decimal.Decimal `json:"gold"`
	Platinum decimal.Decimal `json:"platinum"`
}

func (p TierPrices) For(tier SeatTier) decimal.Decimal {
	switch tier {
	case TierSilver:
		return p.Silver
	case TierGold:
		return p.Gold
	case TierPlatinum:
		return p.Platinum
	}
	return decimal.Zero
}

type Event struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Category    EventCategory `json:"category"`
	Subcategory string        `json:"subcategory"`
	Image       string        `json:"image"`
	Rating      float64       `json:"rating"`
	Duration    string        `json:"duration"`
	Genre       []string      `json:"genre"`
	Language    string        `json:"language"`
	Venue       string        `json:"venue"`
	City        string        `json:"city"`
	Description string        `json:"description"`
	Cast        []string      `json:"cast,omitempty"`
	Dates       []string      `json:"dates"`
	Times       []string      `json:"times"`
	Prices      TierPrices    `json:"prices"`
	IsUpcoming  bool          `json:"isUpcoming,omitempty"`
}

func (e Event) HasShow(date, showTime string) bool {
	return slices.Contains(e.Dates, date) && slices.Contains(e.Times, showTime)
}
