package orchestrator

import (
	"time"

	"villafinder/models"
	"villafinder/services/booking"
	"villafinder/services/catalog"
	"villafinder/services/details"
)

// signInStaleAfter bounds how long an unfinished sign-in blocks new attempts.
const signInStaleAfter = time.Minute

// SignInPanel is the state of the sign-in dialog.
type SignInPanel struct {
	Open       bool      `json:"open"`
	ForBooking bool      `json:"forBooking"`
	Error      string    `json:"error,omitempty"`
	InFlightAt time.Time `json:"inFlightAt,omitempty"`
}

func (p SignInPanel) inFlight(now time.Time) bool {
	return !p.InFlightAt.IsZero() && now.Sub(p.InFlightAt) < signInStaleAfter
}

// AppState is everything one browser session owns. It is only changed
// through Dispatch.
type AppState struct {
	Identity       *models.Identity    `json:"identity,omitempty"`
	PendingBooking bool                `json:"pendingBooking"`
	SignIn         SignInPanel         `json:"signIn"`
	Selected       *models.Listing     `json:"selected,omitempty"`
	Details        details.Panel       `json:"details"`
	Booking        *booking.Workflow   `json:"booking,omitempty"`
	Catalog        catalog.ResultState `json:"catalog"`
}

// findListing looks in the current results, then at the selected listing.
func (s *AppState) findListing(id string) (models.Listing, bool) {
	if l, ok := s.Catalog.Find(id); ok {
		return l, true
	}
	if s.Selected != nil && s.Selected.ID == id {
		return *s.Selected, true
	}
	return models.Listing{}, false
}
