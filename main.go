// File: transway/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"transway/config"
	"transway/handlers"
	"transway/middleware"
	"transway/routes"
	"transway/services/auth"
	"transway/services/bookingflow"
	"transway/services/location"
	"transway/services/plans"
	"transway/services/trips"
	"transway/session"
	"transway/upstream"
	"transway/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	utils.InitDraftCache()
	utils.InitAuthCache()
	utils.StartHealthMonitor(
		[]*redis.Client{utils.GetDraftCacheClient(), utils.GetAuthCacheClient()},
		config.AppConfig.UpstreamBaseURL,
	)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// Upstream marketplace client and stores.
	upstreamClient := upstream.NewClient(config.AppConfig.UpstreamBaseURL, config.UpstreamTimeout(), logger)
	draftStore := bookingflow.NewRedisDraftStore(utils.GetDraftCacheClient(), config.DraftTTL())
	tokenStore := session.NewRedisTokenStore(utils.GetAuthCacheClient(), config.SessionTTL())
	geolocator := location.NewIPGeolocator(config.GeoTimeout(), logger)

	// services.
	authService := &auth.DefaultAuthService{
		Upstream:   upstreamClient,
		Sessions:   tokenStore,
		Logger:     logger,
		SessionTTL: config.SessionTTL(),
	}
	flowService := &bookingflow.DefaultBookingFlowService{
		Upstream: upstreamClient,
		Drafts:   draftStore,
		Sessions: tokenStore,
		Geo:      geolocator,
		Logger:   logger,
	}
	planService := &plans.DefaultPlanService{
		Upstream: upstreamClient,
		Sessions: tokenStore,
		Logger:   logger,
	}
	tripService := &trips.DefaultTripService{
		Upstream: upstreamClient,
		Sessions: tokenStore,
		Logger:   logger,
	}

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Auth:        &handlers.AuthHandler{Auth: authService},
		BookingFlow: &handlers.BookingFlowHandler{Flow: flowService},
		Plans:       &handlers.PlanHandler{Plans: planService},
		Trips:       &handlers.TripHandler{Trips: tripService},
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle, tokenStore)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
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

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
