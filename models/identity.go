package models

// Identity providers.
const (
	ProviderPassword = "password"
	ProviderGoogle   = "google"
)

// Identity is the signed-in user held for the life of the browser session.
type Identity struct {
	Email    string `json:"email"`
	Name     string `json:"name,omitempty"`
	Token    string `json:"-"` // persisted separately under the userToken key
	Provider string `json:"provider"`
}

// Theme preference values.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)
