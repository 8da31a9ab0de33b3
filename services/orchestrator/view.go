package orchestrator

import (
	"context"
	"time"

	"villafinder/models"
	"villafinder/services/booking"
	"villafinder/services/catalog"
	"villafinder/services/details"
	"villafinder/services/session"
)

// Banner is the short-lived confirmation shown after a booking.
type Banner struct {
	BookingID   string    `json:"bookingId"`
	ListingName string    `json:"villaName"`
	Location    string    `json:"location"`
	Months      int       `json:"months"`
	TotalPrice  float64   `json:"totalPrice"`
	TotalLabel  string    `json:"totalLabel"`
	BookingDate time.Time `json:"bookingDate"`
}

func newBanner(c *models.BookingConfirmation) Banner {
	total := c.TotalPrice
	return Banner{
		BookingID:   c.BookingID,
		ListingName: catalog.NameOf(c.Listing),
		Location:    catalog.LocationOf(c.Listing),
		Months:      c.Draft.Duration,
		TotalPrice:  total,
		TotalLabel:  catalog.FormatPrice(&total),
		BookingDate: c.BookingDate,
	}
}

// Toast asks the browser to show a confirmation after DelayMs.
type Toast struct {
	BookingID string `json:"bookingId"`
	DelayMs   int64  `json:"delayMs"`
}

// View is everything the browser renders for one session.
type View struct {
	Identity       *models.Identity `json:"identity"`
	Theme          string           `json:"theme"`
	PendingBooking bool             `json:"pendingBooking"`
	SignIn         SignInPanel      `json:"signIn"`
	Catalog        catalog.View     `json:"catalog"`
	Details        *details.View    `json:"details,omitempty"`
	Booking        *booking.View    `json:"booking,omitempty"`
	Banner         *Banner          `json:"banner,omitempty"`
	Toast          *Toast           `json:"toast,omitempty"`
}

// View renders the session's current state without changing it.
func (o *Orchestrator) View(ctx context.Context, sessionID string) (View, error) {
	unlock := o.locks.lock(sessionID)
	defer unlock()

	store := o.Sessions.Scope(sessionID)
	st, err := o.load(ctx, store)
	if err != nil {
		return View{}, err
	}
	theme, err := readTheme(ctx, store)
	if err != nil {
		return View{}, err
	}

	v := View{
		Identity:       st.Identity,
		Theme:          theme,
		PendingBooking: st.PendingBooking,
		SignIn:         st.SignIn,
		Catalog:        catalog.Render(st.Catalog),
	}
	if st.Details.Open && st.Selected != nil {
		d := details.Render(*st.Selected, st.Details)
		v.Details = &d
	}
	if st.Booking != nil {
		b := booking.Render(st.Booking)
		v.Booking = &b
	}

	var banner Banner
	ok, err := session.GetJSON(ctx, store, session.KeyBanner, &banner)
	if err != nil {
		return View{}, err
	}
	if ok {
		v.Banner = &banner
	}
	return v, nil
}
