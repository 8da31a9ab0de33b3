package models

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Filter holds the search constraints submitted from the search bar.
type Filter struct {
	Location string   `json:"location,omitempty"`
	MinPrice *float64 `json:"minPrice,omitempty"`
	MaxPrice *float64 `json:"maxPrice,omitempty"`
}

// SearchQuery is the raw search bar as it arrives in the query string.
// The browser submits every field, blank or not.
type SearchQuery struct {
	Location string `form:"location"`
	MinPrice string `form:"minPrice"`
	MaxPrice string `form:"maxPrice"`
}

// Filter converts the raw values. Blank prices stay absent.
func (q SearchQuery) Filter() (Filter, error) {
	minPrice, err := parsePrice("minPrice", q.MinPrice)
	if err != nil {
		return Filter{}, err
	}
	maxPrice, err := parsePrice("maxPrice", q.MaxPrice)
	if err != nil {
		return Filter{}, err
	}
	return Filter{Location: q.Location, MinPrice: minPrice, MaxPrice: maxPrice}.Normalized(), nil
}

func parsePrice(field, raw string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, fmt.Errorf("%s must be a number", field)
	}
	if v < 0 {
		return nil, fmt.Errorf("%s must not be negative", field)
	}
	return &v, nil
}

// Normalized trims the location so a blank value counts as absent.
func (f Filter) Normalized() Filter {
	f.Location = strings.TrimSpace(f.Location)
	return f
}

func (f Filter) IsEmpty() bool {
	n := f.Normalized()
	return n.Location == "" && n.MinPrice == nil && n.MaxPrice == nil
}
