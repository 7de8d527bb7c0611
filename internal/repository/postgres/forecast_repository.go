// internal/repository/postgres/forecast_repository.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/gestio-app/backend-go/internal/domain"
	"github.com/rs/zerolog/log"
)

type forecastRepository struct {
	db *DB
}

func NewForecastRepository(db *DB) *forecastRepository {
	return &forecastRepository{db: db}
}

// ReplaceForTenant is an unconditional delete of the tenant's prior records
// followed by a bulk insert of the new set, both inside one transaction.
// Running it twice in a row leaves exactly one record per processed item.
func (r *forecastRepository) ReplaceForTenant(ctx context.Context, tenantID int64, records []domain.ForecastRecord) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		// 1. Invalidate the previous run
		if _, err := tx.ExecContext(ctx, `DELETE FROM forecasts WHERE tenant_id = $1`, tenantID); err != nil {
			return fmt.Errorf("failed to delete prior forecasts: %w", err)
		}

		// 2. Insert the new set
		query := `
			INSERT INTO forecasts (
				tenant_id, item_id, item_name, quantity_snapshot, daily_velocity,
				days_remaining, stockout_date, exposure, recommendation, computed_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`

		stmt, err := tx.PrepareContext(ctx, query)
		if err != nil {
			return fmt.Errorf("failed to prepare statement: %w", err)
		}
		defer stmt.Close()

		for _, record := range records {
			_, err := stmt.ExecContext(
				ctx,
				tenantID,
				record.ItemID,
				record.ItemName,
				record.QuantitySnapshot,
				record.DailyVelocity,
				record.DaysRemaining,
				record.StockoutDate,
				record.Exposure,
				record.Recommendation,
				record.ComputedAt,
			)
			if err != nil {
				return fmt.Errorf("failed to insert forecast for item %d: %w", record.ItemID, err)
			}
		}

		log.Info().
			Int64("tenant_id", tenantID).
			Int("records", len(records)).
			Msg("forecast records replaced")

		return nil
	})
}

func (r *forecastRepository) CurrentForTenant(ctx context.Context, tenantID int64) ([]domain.ForecastRecord, error) {
	query := `
		SELECT id, tenant_id, item_id, item_name, quantity_snapshot,
		       daily_velocity, days_remaining, stockout_date, exposure,
		       recommendation, computed_at
		FROM forecasts
		WHERE tenant_id = $1
		ORDER BY days_remaining ASC NULLS LAST, item_name
	`

	var records []domain.ForecastRecord
	if err := r.db.SelectContext(ctx, &records, query, tenantID); err != nil {
		return nil, fmt.Errorf("error getting current forecasts: %w", err)
	}

	return records, nil
}
