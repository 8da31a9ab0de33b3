// Package details renders the detail panel of one selected listing.
package details

import (
	"errors"

	"villafinder/models"
	"villafinder/services/catalog"
)

// Tabs of the detail panel.
const (
	TabOverview  = "overview"
	TabAmenities = "amenities"
	TabLocation  = "location"
)

var ErrUnknownTab = errors.New("unknown details tab")

// Panel is the session's detail panel state.
type Panel struct {
	Open bool   `json:"open"`
	Tab  string `json:"tab"`
}

// Opened returns a panel opened on the default tab.
func Opened() Panel {
	return Panel{Open: true, Tab: TabOverview}
}

// Select switches to tab.
func (p *Panel) Select(tab string) error {
	switch tab {
	case TabOverview, TabAmenities, TabLocation:
		p.Tab = tab
		return nil
	}
	return ErrUnknownTab
}

// View is the rendered panel. Only the section of the active tab is filled.
type View struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Tab       string   `json:"tab"`
	Image     string   `json:"image"`
	Premium   bool     `json:"premium"`
	Price     *float64 `json:"price"`
	PriceText string   `json:"priceLabel"`

	Overview  *Overview `json:"overview,omitempty"`
	Amenities []string  `json:"amenities,omitempty"`
	Location  *Location `json:"location,omitempty"`
}

type Overview struct {
	Description string `json:"description"`
	Bedrooms    *int   `json:"bedrooms,omitempty"`
	Bathrooms   *int   `json:"bathrooms,omitempty"`
}

type Location struct {
	Label string `json:"label"`
	Known bool   `json:"known"`
}

// Render projects l under panel p.
func Render(l models.Listing, p Panel) View {
	tab := p.Tab
	if tab == "" {
		tab = TabOverview
	}
	v := View{
		ID:        l.ID,
		Name:      catalog.NameOf(l),
		Tab:       tab,
		Image:     catalog.ImageOf(l),
		Premium:   l.Premium,
		Price:     l.Price,
		PriceText: catalog.FormatPrice(l.Price),
	}

	switch tab {
	case TabAmenities:
		v.Amenities = append([]string{}, l.Amenities...)
	case TabLocation:
		v.Location = &Location{Label: catalog.LocationOf(l), Known: l.Location != nil}
	default:
		o := &Overview{Bedrooms: l.Bedrooms, Bathrooms: l.Bathrooms}
		if l.Description != nil {
			o.Description = *l.Description
		}
		v.Overview = o
	}
	return v
}
