// internal/repository/ledger_repository.go
package repository

import (
	"context"

	"github.com/gestio-app/backend-go/internal/domain"
)

type LedgerRepository interface {
	// EntriesForPeriod returns the tenant's ledger entries inside the period,
	// ascending by occurrence. The classifier treats them as read-only input.
	EntriesForPeriod(ctx context.Context, filter domain.PeriodFilter) ([]domain.ProfitLedgerEntry, error)
}
