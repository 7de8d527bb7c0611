// cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gestio-app/backend-go/internal/api"
	"github.com/gestio-app/backend-go/internal/cache"
	"github.com/gestio-app/backend-go/internal/config"
	"github.com/gestio-app/backend-go/internal/recommend"
	"github.com/gestio-app/backend-go/internal/repository/postgres"
	"github.com/gestio-app/backend-go/internal/service"
	"github.com/gestio-app/backend-go/pkg/logger"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	logger.SetLevel(cfg.Server.Mode)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize database
	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Repositories
	catalogRepo := postgres.NewCatalogRepository(db)
	movementRepo := postgres.NewMovementRepository(db)
	forecastRepo := postgres.NewForecastRepository(db)
	ledgerRepo := postgres.NewLedgerRepository(db)

	// Completion collaborator: without an API key every recommendation uses
	// the deterministic fallback template.
	var summarizer recommend.Summarizer
	if cfg.Completion.APIKey != "" {
		client, err := recommend.NewCompletionClient(cfg.Completion)
		if err != nil {
			logger.Log.Warn().Err(err).Msg("completion client disabled")
		} else {
			summarizer = client
		}
	} else {
		logger.Log.Info().Msg("completion api key not set, using fallback recommendations")
	}
	composer := recommend.NewComposer(summarizer)

	quadrantCache, err := cache.NewQuadrantCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("quadrant cache disabled")
		quadrantCache = cache.NewNoopQuadrantCache()
	}

	// Services
	forecastService := service.NewForecastService(catalogRepo, movementRepo, forecastRepo, composer, cfg.Forecast)
	classificationService := service.NewClassificationService(ledgerRepo, quadrantCache)

	// Initialize HTTP server
	router := api.NewRouter(&api.Services{
		Forecast:       forecastService,
		Classification: classificationService,
	}, cfg.Server.AllowedOrigins)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}
