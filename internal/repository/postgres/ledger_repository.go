// internal/repository/postgres/ledger_repository.go
package postgres

import (
	"context"
	"fmt"

	"github.com/gestio-app/backend-go/internal/domain"
	"github.com/rs/zerolog/log"
)

type ledgerRepository struct {
	db *DB
}

func NewLedgerRepository(db *DB) *ledgerRepository {
	return &ledgerRepository{db: db}
}

func (r *ledgerRepository) EntriesForPeriod(ctx context.Context, filter domain.PeriodFilter) ([]domain.ProfitLedgerEntry, error) {
	query := `
		SELECT l.id, l.tenant_id, l.item_id,
		       COALESCE(p.name, '') AS item_name,
		       l.kind, l.revenue, l.cost, l.profit, l.quantity, l.occurred_at
		FROM ledger_entries l
		LEFT JOIN products p ON p.id = l.item_id
		WHERE l.tenant_id = $1
		  AND l.occurred_at >= $2
		  AND l.occurred_at < $3
		ORDER BY l.occurred_at, l.id
	`

	var entries []domain.ProfitLedgerEntry
	if err := r.db.SelectContext(ctx, &entries, query, filter.TenantID, filter.From, filter.To); err != nil {
		return nil, fmt.Errorf("error getting ledger entries: %w", err)
	}

	log.Debug().
		Int64("tenant_id", filter.TenantID).
		Time("from", filter.From).
		Time("to", filter.To).
		Int("entries", len(entries)).
		Msg("ledger entries fetched")

	return entries, nil
}
