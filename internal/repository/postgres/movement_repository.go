// internal/repository/postgres/movement_repository.go
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/gestio-app/backend-go/internal/domain"
	"github.com/rs/zerolog/log"
)

type movementRepository struct {
	db *DB
}

func NewMovementRepository(db *DB) *movementRepository {
	return &movementRepository{db: db}
}

type outboundRow struct {
	ItemID     int64     `db:"item_id"`
	Quantity   float64   `db:"quantity"`
	MovedAt    time.Time `db:"moved_at"`
	Origin     string    `db:"origin"`
	KitID      int64     `db:"kit_id"`
	Multiplier float64   `db:"multiplier"`
}

// OutboundHistory unions the item's own outbound movements with outbound
// movements of every kit listing it as a component. The kit branch carries
// the per-kit multiplier so expansion stays a pure computation downstream; a
// kit without registered components simply produces no rows.
func (r *movementRepository) OutboundHistory(ctx context.Context, tenantID, itemID int64) ([]domain.OutboundMovement, error) {
	query := `
		SELECT item_id, quantity, moved_at, origin, kit_id, multiplier
		FROM (
			SELECT m.product_id AS item_id,
			       m.quantity,
			       m.moved_at,
			       'direct' AS origin,
			       0::bigint AS kit_id,
			       1::float8 AS multiplier
			FROM stock_movements m
			WHERE m.tenant_id = $1
			  AND m.product_id = $2
			  AND m.direction = 'outbound'
			UNION ALL
			SELECT kc.component_id AS item_id,
			       m.quantity,
			       m.moved_at,
			       'kit' AS origin,
			       m.product_id AS kit_id,
			       kc.quantity_per_kit AS multiplier
			FROM stock_movements m
			JOIN kit_components kc
			  ON kc.kit_id = m.product_id AND kc.component_id = $2
			WHERE m.tenant_id = $1
			  AND m.direction = 'outbound'
		) history
		ORDER BY moved_at, item_id
	`

	var rows []outboundRow
	if err := r.db.SelectContext(ctx, &rows, query, tenantID, itemID); err != nil {
		return nil, fmt.Errorf("error getting outbound history: %w", err)
	}

	log.Debug().
		Int64("tenant_id", tenantID).
		Int64("item_id", itemID).
		Int("movements", len(rows)).
		Msg("outbound history fetched")

	movements := make([]domain.OutboundMovement, len(rows))
	for i, row := range rows {
		movements[i] = domain.OutboundMovement{
			ItemID:   row.ItemID,
			Quantity: row.Quantity,
			MovedAt:  row.MovedAt,
			Source: domain.MovementSource{
				Origin:     domain.MovementOrigin(row.Origin),
				KitID:      row.KitID,
				Multiplier: row.Multiplier,
			},
		}
	}

	return movements, nil
}
