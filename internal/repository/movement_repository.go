// internal/repository/movement_repository.go
package repository

import (
	"context"

	"github.com/gestio-app/backend-go/internal/domain"
)

type MovementRepository interface {
	// OutboundHistory returns every outbound movement attributable to the
	// item, directly or through a kit that contains it, ascending by
	// timestamp. An item with no sales yields an empty slice, not an error.
	OutboundHistory(ctx context.Context, tenantID, itemID int64) ([]domain.OutboundMovement, error)
}
