package routes

import (
	"net/http"
	"time"

	"villafinder/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterSessionRoutes registers the session view, theme and banner endpoints.
func RegisterSessionRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	api.GET("/state", hb.GetStateHandler)
	api.POST("/theme/toggle", hb.ToggleThemeHandler)
	api.DELETE("/banner", hb.DismissBannerHandler)
}

// RegisterAuthRoutes registers sign-in endpoints.
func RegisterAuthRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/signin-request", hb.SignInRequestHandler)
		authGroup.DELETE("/signin-request", hb.CloseSignInHandler)
		authGroup.POST("/login", hb.LoginHandler)
		authGroup.POST("/register", hb.RegisterHandler)
		authGroup.GET("/google", hb.GoogleStartHandler)
		authGroup.GET("/google/callback", hb.GoogleCallbackHandler)
		authGroup.POST("/signout", hb.SignOutHandler)
		authGroup.GET("/availability", hb.AvailabilityHandler)
	}
}

// RegisterListingRoutes registers search and detail panel endpoints.
func RegisterListingRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	api.GET("/villas", hb.SearchVillasHandler)
	api.POST("/villas/:id/details", hb.OpenDetailsHandler)
	api.POST("/villas/:id/book", hb.BookNowHandler)
	api.PUT("/details/tab", hb.SelectTabHandler)
	api.DELETE("/details", hb.CloseDetailsHandler)
}

// RegisterBookingRoutes sets up the endpoints of the booking form.
func RegisterBookingRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	bookingGroup := api.Group("/booking")
	{
		bookingGroup.PATCH("/draft", hb.UpdateDraftHandler)
		bookingGroup.POST("/next", hb.NextStepHandler)
		bookingGroup.POST("/back", hb.PreviousStepHandler)
		bookingGroup.POST("/submit", hb.SubmitHandler)
		bookingGroup.DELETE("", hb.CloseBookingHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	if hb.HealthHandler != nil {
		r.GET("/health", hb.HealthHandler)
		return
	}
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Villa Finder"})
	})
}

// corsConfig allows credentials only for an explicit origin list. A wildcard
// or empty list answers with a literal "*" and no credentials.
func corsConfig(allowOrigins []string) cors.Config {
	cfg := cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowOrigins) == 0 || (len(allowOrigins) == 1 && allowOrigins[0] == "*") {
		cfg.AllowOrigins = nil
		cfg.AllowAllOrigins = true
		cfg.AllowCredentials = false
	}
	return cfg
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
// session is applied to every /api route.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, allowOrigins []string, session gin.HandlerFunc) {
	r.Use(cors.New(corsConfig(allowOrigins)))

	RegisterHealthRoute(r, hb)

	api := r.Group("/api")
	if session != nil {
		api.Use(session)
	}
	RegisterSessionRoutes(api, hb)
	RegisterAuthRoutes(api, hb)
	RegisterListingRoutes(api, hb)
	RegisterBookingRoutes(api, hb)
}
