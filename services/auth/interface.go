package auth

import (
	"context"

	"villafinder/models"
	"villafinder/services/session"
)

// Mode selects the identity endpoint.
type Mode string

const (
	ModeLogin    Mode = "login"
	ModeRegister Mode = "register"
)

func (m Mode) Valid() bool {
	return m == ModeLogin || m == ModeRegister
}

// Credentials are submitted to the identity endpoint.
type Credentials struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Service is the Session/Auth Client.
type Service interface {
	// Authenticate signs in or registers, storing the token in store on success.
	Authenticate(ctx context.Context, store session.Store, mode Mode, creds Credentials) (*models.Identity, error)
	// Probe reports whether the remote API is reachable.
	Probe(ctx context.Context) error
}

// Profile is what a third-party identity provider yields.
type Profile struct {
	Email string
	Name  string
}

// IdentityProvider is an external sign-in capability such as Google.
type IdentityProvider interface {
	// Initiate returns the URL the browser must visit to start sign-in.
	Initiate(ctx context.Context, state string) (string, error)
	// Profile completes sign-in with the provider's authorization code.
	Profile(ctx context.Context, code string) (*Profile, error)
}
