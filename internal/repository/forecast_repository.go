// internal/repository/forecast_repository.go
package repository

import (
	"context"

	"github.com/gestio-app/backend-go/internal/domain"
)

type ForecastRepository interface {
	// ReplaceForTenant deletes every prior forecast record of the tenant and
	// inserts the new set inside one transaction, keeping at most one current
	// record per item per tenant.
	ReplaceForTenant(ctx context.Context, tenantID int64, records []domain.ForecastRecord) error
	// CurrentForTenant returns the records of the latest completed run.
	CurrentForTenant(ctx context.Context, tenantID int64) ([]domain.ForecastRecord, error)
}
