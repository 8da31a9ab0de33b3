package booking

import (
	"fmt"

	"villafinder/models"
	"villafinder/services/catalog"
)

// DurationOption is one entry of the duration selector.
type DurationOption struct {
	Months int    `json:"months"`
	Label  string `json:"label"`
	Total  string `json:"total"`
}

// View is the rendered booking form.
type View struct {
	ListingID    string              `json:"listingId"`
	ListingName  string              `json:"listingName"`
	Location     string              `json:"location"`
	UnitPrice    string              `json:"unitPrice"`
	Step         Step                `json:"step"`
	StepNumber   int                 `json:"stepNumber"`
	Draft        models.BookingDraft `json:"draft"`
	Errors       map[string]string   `json:"errors,omitempty"`
	Total        *float64            `json:"total"`
	TotalLabel   string              `json:"totalLabel"`
	Durations    []DurationOption    `json:"durations"`
	RequiresCard bool                `json:"requiresCard"`
	CardHint     string              `json:"cardHint,omitempty"`
}

func durationLabel(months int) string {
	if months == 1 {
		return "1 month"
	}
	return fmt.Sprintf("%d months", months)
}

// Render projects the workflow. Totals follow the currently selected duration.
// Card number and CVC are never echoed back; the hint stands in for them.
func Render(w *Workflow) View {
	draft := w.Draft
	draft.CardNumber = ""
	draft.CardCVC = ""
	v := View{
		ListingID:    w.Listing.ID,
		ListingName:  catalog.NameOf(w.Listing),
		Location:     catalog.LocationOf(w.Listing),
		UnitPrice:    catalog.FormatPrice(w.Listing.Price),
		Step:         w.Step,
		StepNumber:   1,
		Draft:        draft,
		Errors:       w.Errors,
		TotalLabel:   catalog.PlaceholderPrice,
		RequiresCard: w.Draft.PaymentMethod == models.PaymentCredit,
		CardHint:     w.CardHint,
	}
	if w.Step == StepPayment {
		v.StepNumber = 2
	}
	if total, ok := w.Total(); ok {
		v.Total = &total
		v.TotalLabel = catalog.FormatPrice(&total)
	}
	for _, m := range Durations {
		opt := DurationOption{Months: m, Label: durationLabel(m), Total: catalog.PlaceholderPrice}
		if total, ok := Total(w.Listing.Price, m); ok {
			opt.Total = catalog.FormatPrice(&total)
		}
		v.Durations = append(v.Durations, opt)
	}
	return v
}
