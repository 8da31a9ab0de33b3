package orchestrator

import (
	"villafinder/models"
	"villafinder/services/auth"
)

// Command is an action dispatched from the browser.
type Command interface {
	commandName() string
}

// RequestSignIn opens the sign-in dialog. ForBooking marks a booking as pending.
type RequestSignIn struct{ ForBooking bool }

// CloseSignIn closes the dialog; a pending booking stays pending.
type CloseSignIn struct{}

// SignIn submits credentials to the identity endpoint.
type SignIn struct {
	Mode        auth.Mode
	Credentials auth.Credentials
}

// StartSocialSignIn begins third-party sign-in and yields a redirect.
type StartSocialSignIn struct{}

// CompleteSocialSignIn finishes third-party sign-in.
type CompleteSocialSignIn struct {
	Code  string
	State string
}

type SignOut struct{}

type ToggleTheme struct{}

// Search runs a catalog query with the submitted filter.
type Search struct{ Filter models.Filter }

type ViewDetails struct{ ListingID string }

type SelectTab struct{ Tab string }

type CloseDetails struct{}

// BookNow opens the booking form, or defers it behind sign-in.
type BookNow struct{ ListingID string }

type UpdateDraft struct{ Update models.DraftUpdate }

type NextStep struct{}

type PreviousStep struct{}

// SubmitBooking carries the card fields, which are never stored with the
// session, plus any last edits to the draft.
type SubmitBooking struct{ Update models.DraftUpdate }

type CloseBooking struct{}

type DismissBanner struct{}

func (RequestSignIn) commandName() string        { return "request_sign_in" }
func (CloseSignIn) commandName() string          { return "close_sign_in" }
func (SignIn) commandName() string               { return "sign_in" }
func (StartSocialSignIn) commandName() string    { return "start_social_sign_in" }
func (CompleteSocialSignIn) commandName() string { return "complete_social_sign_in" }
func (SignOut) commandName() string              { return "sign_out" }
func (ToggleTheme) commandName() string          { return "toggle_theme" }
func (Search) commandName() string               { return "search" }
func (ViewDetails) commandName() string          { return "view_details" }
func (SelectTab) commandName() string            { return "select_tab" }
func (CloseDetails) commandName() string         { return "close_details" }
func (BookNow) commandName() string              { return "book_now" }
func (UpdateDraft) commandName() string          { return "update_draft" }
func (NextStep) commandName() string             { return "next_step" }
func (PreviousStep) commandName() string         { return "previous_step" }
func (SubmitBooking) commandName() string        { return "submit_booking" }
func (CloseBooking) commandName() string         { return "close_booking" }
func (DismissBanner) commandName() string        { return "dismiss_banner" }
