// File: villafinder/models/listing.go
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Listing is one rentable villa as returned by the listings endpoint.
// Every field except ID may be missing in the upstream record.
type Listing struct {
	ID          string   `json:"id"`
	Name        *string  `json:"name,omitempty"`
	Location    *string  `json:"location,omitempty"`
	Price       *float64 `json:"price,omitempty"` // per month, currency-agnostic
	Bedrooms    *int     `json:"bedrooms,omitempty"`
	Bathrooms   *int     `json:"bathrooms,omitempty"`
	Description *string  `json:"description,omitempty"`
	Amenities   []string `json:"amenities,omitempty"` // nil when the record has no amenity list
	Image       *string  `json:"image,omitempty"`
	Premium     bool     `json:"premium"`
}

// rawListing mirrors the upstream shape before normalisation.
type rawListing struct {
	ID          json.RawMessage `json:"id"`
	MongoID     json.RawMessage `json:"_id"`
	Name        *string         `json:"name"`
	Location    *string         `json:"location"`
	Price       json.RawMessage `json:"price"`
	Bedrooms    json.RawMessage `json:"bedrooms"`
	Bathrooms   json.RawMessage `json:"bathrooms"`
	Description *string         `json:"description"`
	Amenities   json.RawMessage `json:"amenities"`
	Image       *string         `json:"image"`
	Premium     json.RawMessage `json:"premium"`
}

// UnmarshalJSON accepts numbers or numeric strings for ids and numeric fields.
// Values of the wrong type are treated as absent instead of failing the record.
func (l *Listing) UnmarshalJSON(data []byte) error {
	var raw rawListing
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("listing: %w", err)
	}

	id := decodeID(raw.ID)
	if id == "" {
		id = decodeID(raw.MongoID)
	}

	*l = Listing{
		ID:          id,
		Name:        nonBlank(raw.Name),
		Location:    nonBlank(raw.Location),
		Price:       decodeNumber(raw.Price),
		Bedrooms:    decodeInt(raw.Bedrooms),
		Bathrooms:   decodeInt(raw.Bathrooms),
		Description: nonBlank(raw.Description),
		Amenities:   decodeStrings(raw.Amenities),
		Image:       nonBlank(raw.Image),
		Premium:     decodeBool(raw.Premium),
	}
	return nil
}

// DecodeListings decodes a listings array, skipping null and undecodable entries.
// It returns the number of skipped entries alongside the listings.
func DecodeListings(data []byte) ([]Listing, int, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, 0, fmt.Errorf("listings payload is not an array: %w", err)
	}

	listings := make([]Listing, 0, len(items))
	skipped := 0
	for _, item := range items {
		if isNull(item) {
			skipped++
			continue
		}
		var l Listing
		if err := json.Unmarshal(item, &l); err != nil {
			skipped++
			continue
		}
		listings = append(listings, l)
	}
	return listings, skipped, nil
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

func nonBlank(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}

func decodeID(raw json.RawMessage) string {
	if isNull(raw) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

func decodeNumber(raw json.RawMessage) *float64 {
	if isNull(raw) {
		return nil
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return &f
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return &f
		}
	}
	return nil
}

func decodeInt(raw json.RawMessage) *int {
	f := decodeNumber(raw)
	if f == nil || *f < 0 {
		return nil
	}
	n := int(*f)
	return &n
}

func decodeStrings(raw json.RawMessage) []string {
	if isNull(raw) {
		return nil
	}
	var values []string
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func decodeBool(raw json.RawMessage) bool {
	var b bool
	if err := json.Unmarshal(raw, &b); err != nil {
		return false
	}
	return b
}
