package models

import (
	"errors"
	"fmt"
)

var ErrUnknownPriceTier = errors.New("unknown price tier")

// PriceTier is the "$" selector of the view. Each tier maps to a rating range.
type PriceTier string

const (
	PriceAny   PriceTier = ""
	PriceOne   PriceTier = "$"
	PriceTwo   PriceTier = "$$"
	PriceThree PriceTier = "$$$"
	PriceFour  PriceTier = "$$$$"
	PriceFive  PriceTier = "$$$$$"
)

// PriceTiers lists the selectable tiers in display order
var PriceTiers = []PriceTier{PriceOne, PriceTwo, PriceThree, PriceFour, PriceFive}

// RatingRange is a closed interval, both ends inclusive
type RatingRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

func (r RatingRange) Contains(rating float64) bool {
	return rating >= r.Min && rating <= r.Max
}

// $$ and $$$ both include 3.
var tierRanges = map[PriceTier]RatingRange{
	PriceOne:   {Min: 0, Max: 1},
	PriceTwo:   {Min: 2, Max: 3},
	PriceThree: {Min: 3, Max: 4},
	PriceFour:  {Min: 4, Max: 5},
	PriceFive:  {Min: 5, Max: 5},
}

// ParsePriceTier validates a tier coming from a form, query string or JSON body
func ParsePriceTier(s string) (PriceTier, error) {
	t := PriceTier(s)
	if t == PriceAny {
		return PriceAny, nil
	}
	if _, ok := tierRanges[t]; !ok {
		return PriceAny, fmt.Errorf("%w: %q", ErrUnknownPriceTier, s)
	}
	return t, nil
}

// RatingRange returns the interval for the tier; ok is false for PriceAny.
func (t PriceTier) RatingRange() (RatingRange, bool) {
	r, ok := tierRanges[t]
	return r, ok
}

// Next cycles through any -> $ -> ... -> $$$$$ -> any
func (t PriceTier) Next() PriceTier {
	if t == PriceAny {
		return PriceTiers[0]
	}
	for i, tier := range PriceTiers {
		if tier == t && i+1 < len(PriceTiers) {
			return PriceTiers[i+1]
		}
	}
	return PriceAny
}

func (t PriceTier) Label() string {
	if t == PriceAny {
		return "Any Price"
	}
	return string(t)
}

// FilterState is the transient filter selection of a view.
// City is labelled "category" in the UI but matches the restaurant city.
type FilterState struct {
	OpenNow bool      `json:"open_now"`
	Price   PriceTier `json:"price"`
	City    string    `json:"category"`
}

// Active reports whether any filter is set
func (f FilterState) Active() bool {
	return f.OpenNow || f.Price != PriceAny || f.City != ""
}
