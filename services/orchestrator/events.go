package orchestrator

// EventType names something the browser should react to.
type EventType string

const (
	EventSignInRequired   EventType = "sign_in_required"
	EventSignedIn         EventType = "signed_in"
	EventSignedOut        EventType = "signed_out"
	EventBookingOpened    EventType = "booking_opened"
	EventBookingResumed   EventType = "booking_resumed"
	EventBookingConfirmed EventType = "booking_confirmed"
	EventBookingClosed    EventType = "booking_closed"
	EventSearchCompleted  EventType = "search_completed"
	EventSearchFailed     EventType = "search_failed"
	EventSearchSuperseded EventType = "search_superseded"
	EventThemeChanged     EventType = "theme_changed"
)

// Event is emitted by Dispatch.
type Event struct {
	Type      EventType `json:"type"`
	ListingID string    `json:"listingId,omitempty"`
	BookingID string    `json:"bookingId,omitempty"`
	Value     string    `json:"value,omitempty"`
}
