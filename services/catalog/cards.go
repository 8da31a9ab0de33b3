package catalog

import (
	"fmt"
	"math"
	"strings"

	"villafinder/models"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Placeholders for absent listing fields.
const (
	PlaceholderName     = "Unnamed Villa"
	PlaceholderLocation = "Location not specified"
	PlaceholderPrice    = "Price on request"
	PlaceholderImage    = "https://via.placeholder.com/400x300?text=No+Image"

	descriptionLimit = 120
	chipLimit        = 4
)

var printer = message.NewPrinter(language.English)

// Card is the rendered form of one listing in the results grid.
type Card struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Location    string   `json:"location"`
	Price       *float64 `json:"price"`
	PriceLabel  string   `json:"priceLabel"`
	Bedrooms    *int     `json:"bedrooms,omitempty"`
	Bathrooms   *int     `json:"bathrooms,omitempty"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
	Amenities   []string `json:"amenities"`
	MoreChip    string   `json:"moreChip,omitempty"`
	Premium     bool     `json:"premium"`
}

// View is the rendered result area.
type View struct {
	Status  string        `json:"status"`
	Error   string        `json:"error,omitempty"`
	Summary string        `json:"summary,omitempty"`
	Count   int           `json:"count"`
	Filter  models.Filter `json:"filter"`
	Cards   []Card        `json:"cards"`
}

// FormatPrice renders a price with thousands separators, or the placeholder.
func FormatPrice(price *float64) string {
	if price == nil || math.IsNaN(*price) || math.IsInf(*price, 0) {
		return PlaceholderPrice
	}
	if *price == math.Trunc(*price) {
		return printer.Sprintf("%d", int64(*price))
	}
	return printer.Sprintf("%.2f", *price)
}

// NameOf returns the listing name or its placeholder.
func NameOf(l models.Listing) string {
	if l.Name == nil {
		return PlaceholderName
	}
	return *l.Name
}

// LocationOf returns the listing location or its placeholder.
func LocationOf(l models.Listing) string {
	if l.Location == nil {
		return PlaceholderLocation
	}
	return *l.Location
}

// ImageOf returns the listing image or the placeholder image.
func ImageOf(l models.Listing) string {
	if l.Image == nil {
		return PlaceholderImage
	}
	return *l.Image
}

func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit]) + "..."
}

// NewCard projects a listing into its grid card.
func NewCard(l models.Listing) Card {
	card := Card{
		ID:         l.ID,
		Name:       NameOf(l),
		Location:   LocationOf(l),
		Price:      l.Price,
		PriceLabel: FormatPrice(l.Price),
		Bedrooms:   l.Bedrooms,
		Bathrooms:  l.Bathrooms,
		Image:      ImageOf(l),
		Amenities:  []string{},
		Premium:    l.Premium,
	}
	if l.Description != nil {
		card.Description = truncate(*l.Description, descriptionLimit)
	}
	if len(l.Amenities) > 0 {
		n := len(l.Amenities)
		if n > chipLimit {
			n = chipLimit
			card.MoreChip = fmt.Sprintf("+%d more", len(l.Amenities)-chipLimit)
		}
		card.Amenities = append(card.Amenities, l.Amenities[:n]...)
	}
	return card
}

// Render projects the result state into its view.
func Render(s ResultState) View {
	v := View{
		Status: s.Status(),
		Error:  s.Error,
		Count:  len(s.Listings),
		Filter: s.Filter,
		Cards:  make([]Card, 0, len(s.Listings)),
	}
	for _, l := range s.Listings {
		v.Cards = append(v.Cards, NewCard(l))
	}

	switch v.Status {
	case StatusEmpty:
		v.Summary = "No villas match your search criteria"
	case StatusReady, StatusError, StatusRefreshing:
		if s.Loaded {
			v.Summary = summary(len(s.Listings), s.Filter.Location)
		}
	}
	return v
}

func summary(count int, location string) string {
	var b strings.Builder
	b.WriteString(printer.Sprintf("Found %d villas matching your criteria", count))
	if location != "" {
		b.WriteString(" in ")
		b.WriteString(location)
	}
	return b.String()
}
