// cmd/forecast/main.go
package main

import (
	"fmt"
	"os"

	"github.com/gestio-app/backend-go/internal/config"
	"github.com/gestio-app/backend-go/internal/recommend"
	"github.com/gestio-app/backend-go/internal/repository/postgres"
	"github.com/gestio-app/backend-go/internal/service"
	"github.com/gestio-app/backend-go/pkg/logger"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

// Scheduled-trigger entry point: runs the same recompute pass as the HTTP
// trigger, suitable for cron. The caller is responsible for not overlapping
// runs for the same tenant.
func main() {
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "forecast",
		Usage: "Recompute inventory depletion forecasts for a tenant",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "db-url",
				Usage:    "Database connection string",
				Required: true,
				EnvVars:  []string{"DATABASE_URL"},
			},
			&cli.Int64Flag{
				Name:     "tenant-id",
				Usage:    "Tenant to recompute forecasts for",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level (debug, info, warn, error)",
				Value: "info",
			},
		},
		Action: runRecompute,
	}

	if err := app.Run(os.Args); err != nil {
		logger.Log.Fatal().Err(err).Msg("forecast run failed")
	}
}

func runRecompute(c *cli.Context) error {
	logger.SetLevel(c.String("log-level"))

	cfg := config.Load()

	db, err := sqlx.Connect("pgx", c.String("db-url"))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	wrapped := postgres.NewDBFromSqlx(db)
	catalogRepo := postgres.NewCatalogRepository(wrapped)
	movementRepo := postgres.NewMovementRepository(wrapped)
	forecastRepo := postgres.NewForecastRepository(wrapped)

	var summarizer recommend.Summarizer
	if cfg.Completion.APIKey != "" {
		client, err := recommend.NewCompletionClient(cfg.Completion)
		if err != nil {
			logger.Log.Warn().Err(err).Msg("completion client disabled")
		} else {
			summarizer = client
		}
	}
	composer := recommend.NewComposer(summarizer)

	svc := service.NewForecastService(catalogRepo, movementRepo, forecastRepo, composer, cfg.Forecast)

	tenantID := c.Int64("tenant-id")
	result, err := svc.Recompute(c.Context, tenantID)
	if err != nil {
		return err
	}

	logger.Log.Info().
		Int64("tenant_id", result.TenantID).
		Int("processed", result.Processed).
		Msg("forecasts recomputed")

	for _, record := range result.Preview {
		event := logger.Log.Info().
			Str("item", record.ItemName).
			Float64("velocity", record.DailyVelocity)
		if record.DaysRemaining != nil {
			event = event.Float64("days_remaining", *record.DaysRemaining)
		}
		event.Str("exposure", record.Exposure.StringFixed(2)).Msg("forecast preview")
	}

	return nil
}
