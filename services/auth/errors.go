package auth

import "fmt"

// Kind classifies an authentication failure.
type Kind string

const (
	KindNetwork      Kind = "network"
	KindUnavailable  Kind = "unavailable"
	KindValidation   Kind = "validation"
	KindUnauthorized Kind = "unauthorized"
	KindMalformed    Kind = "malformed"
)

// User-facing messages.
const (
	MsgNetwork        = "Failed to connect to the server. Please try again."
	MsgNotFound       = "Backend service not found. Please try again later."
	MsgStartingUp     = "Service is starting up. Please try again in a moment."
	MsgValidation     = "Please check the details you entered and try again."
	MsgAccountExists  = "An account with this email already exists."
	MsgUnauthorized   = "Invalid email or password."
	MsgMalformed      = "Invalid response from server"
	MsgSocialFailed   = "Google Sign-In failed. Please try again."
	MsgSocialDisabled = "Google Sign-In is not configured."
)

// Error is returned by every auth operation. Message is safe to show to the user.
type Error struct {
	Kind    Kind
	Message string
	Status  int // upstream status, 0 when no response was received
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind Kind, msg string, status int, err error) *Error {
	return &Error{Kind: kind, Message: msg, Status: status, Err: err}
}
