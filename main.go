// File: villafinder/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"villafinder/config"
	"villafinder/handlers"
	"villafinder/middleware"
	"villafinder/routes"
	"villafinder/services/api"
	"villafinder/services/auth"
	"villafinder/services/catalog"
	"villafinder/services/orchestrator"
	"villafinder/services/session"
	"villafinder/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	cfg := config.AppConfig

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	utils.InitSessionCache()
	redisClient := utils.GetSessionClient()

	secret := cfg.SessionSecret
	if secret == "" {
		if config.IsProduction() {
			logger.Fatal("main: SESSION_SECRET is required in production")
		}
		secret = uuid.NewString()
		logger.Warn("main: SESSION_SECRET not set, sessions will not survive a restart")
	}
	signer, err := utils.NewSessionSigner(secret)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to create session signer: %v", err)
	}

	// services.
	apiClient := api.NewClient(cfg.APIBaseURL, cfg.APITimeout, logger.Named("api"))
	authService := &auth.DefaultAuthService{
		API:          apiClient,
		HealthPath:   cfg.APIHealthPath,
		ProbeEnabled: cfg.AuthProbeEnabled,
		Logger:       logger.Named("auth"),
	}
	catalogService := &catalog.DefaultCatalogService{
		API:    apiClient,
		Logger: logger.Named("catalog"),
	}

	app := &orchestrator.Orchestrator{
		Sessions:   session.NewRedisStore(redisClient, cfg.SessionTTL),
		Auth:       authService,
		Catalog:    catalogService,
		Logger:     logger.Named("orchestrator"),
		BannerTTL:  cfg.BannerTTL,
		ToastDelay: cfg.ToastDelay,
	}
	if cfg.GoogleClientID != "" {
		app.Social = auth.NewGoogleProvider(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL)
	} else {
		logger.Info("main: Google sign-in disabled, GOOGLE_CLIENT_ID not set")
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	health := utils.NewHealthMonitor(redisClient, authService, 60*time.Second)
	health.Start(ctx)

	// handlers.
	authHandler := handlers.NewAuthHandler(app, authService, cfg.PostLoginRedirect)
	listingsHandler := handlers.NewListingsHandler(app)
	bookingHandler := handlers.NewBookingHandler(app)
	sessionHandler := handlers.NewSessionHandler(app, health)

	handlerBundle := &handlers.HandlerBundle{
		// Session endpoints.
		GetStateHandler:      sessionHandler.GetStateHandler,
		ToggleThemeHandler:   sessionHandler.ToggleThemeHandler,
		DismissBannerHandler: sessionHandler.DismissBannerHandler,
		HealthHandler:        sessionHandler.HealthHandler,

		// Auth endpoints.
		SignInRequestHandler:  authHandler.SignInRequestHandler,
		CloseSignInHandler:    authHandler.CloseSignInHandler,
		LoginHandler:          authHandler.LoginHandler,
		RegisterHandler:       authHandler.RegisterHandler,
		GoogleStartHandler:    authHandler.GoogleStartHandler,
		GoogleCallbackHandler: authHandler.GoogleCallbackHandler,
		SignOutHandler:        authHandler.SignOutHandler,
		AvailabilityHandler:   authHandler.AvailabilityHandler,

		// Listing endpoints.
		SearchVillasHandler: listingsHandler.SearchVillasHandler,
		OpenDetailsHandler:  listingsHandler.OpenDetailsHandler,
		SelectTabHandler:    listingsHandler.SelectTabHandler,
		CloseDetailsHandler: listingsHandler.CloseDetailsHandler,

		// Booking endpoints.
		BookNowHandler:      bookingHandler.BookNowHandler,
		UpdateDraftHandler:  bookingHandler.UpdateDraftHandler,
		NextStepHandler:     bookingHandler.NextStepHandler,
		PreviousStepHandler: bookingHandler.PreviousStepHandler,
		SubmitHandler:       bookingHandler.SubmitHandler,
		CloseBookingHandler: bookingHandler.CloseBookingHandler,
	}

	// Create the Gin router.
	router := gin.New()
	if err := router.SetTrustedProxies(cfg.TrustedProxies()); err != nil {
		logger.Fatal("Invalid TRUSTED_PROXIES", zap.Error(err))
	}
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.RateLimitMiddleware(cfg.MaxRequestsPerMin))

	routes.RegisterRoutes(router, handlerBundle, cfg.AllowedOrigins(),
		middleware.SessionMiddleware(signer, cfg.SessionTTL, config.IsProduction()))

	// Start the HTTP server.
	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}
	if err := redisClient.Close(); err != nil {
		logger.Warn("main: failed to close redis", zap.Error(err))
	}
	_ = logger.Sync()

	logger.Sugar().Info("main: server stopped gracefully")
}
