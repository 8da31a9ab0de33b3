package orchestrator

import "errors"

var (
	ErrListingNotFound   = errors.New("listing not found in current results")
	ErrNoBooking         = errors.New("no booking form is open")
	ErrDetailsClosed     = errors.New("details panel is not open")
	ErrSignInInFlight    = errors.New("a sign-in request is already in progress")
	ErrSocialUnavailable = errors.New("third-party sign-in is not configured")
	ErrOAuthState        = errors.New("sign-in state mismatch")
	ErrUnknownCommand    = errors.New("unknown command")
)
