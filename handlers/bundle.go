// File: villafinder/handlers/bundle.go
package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all browser-facing endpoint handlers into one struct.
type HandlerBundle struct {
	// Session endpoints
	GetStateHandler      gin.HandlerFunc
	ToggleThemeHandler   gin.HandlerFunc
	DismissBannerHandler gin.HandlerFunc
	HealthHandler        gin.HandlerFunc

	// Auth endpoints
	SignInRequestHandler  gin.HandlerFunc
	CloseSignInHandler    gin.HandlerFunc
	LoginHandler          gin.HandlerFunc
	RegisterHandler       gin.HandlerFunc
	GoogleStartHandler    gin.HandlerFunc
	GoogleCallbackHandler gin.HandlerFunc
	SignOutHandler        gin.HandlerFunc
	AvailabilityHandler   gin.HandlerFunc

	// Listing endpoints
	SearchVillasHandler gin.HandlerFunc
	OpenDetailsHandler  gin.HandlerFunc
	SelectTabHandler    gin.HandlerFunc
	CloseDetailsHandler gin.HandlerFunc

	// Booking endpoints
	BookNowHandler      gin.HandlerFunc
	UpdateDraftHandler  gin.HandlerFunc
	NextStepHandler     gin.HandlerFunc
	PreviousStepHandler gin.HandlerFunc
	SubmitHandler       gin.HandlerFunc
	CloseBookingHandler gin.HandlerFunc
}
