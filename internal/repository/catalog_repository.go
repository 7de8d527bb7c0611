// internal/repository/catalog_repository.go
package repository

import (
	"context"

	"github.com/gestio-app/backend-go/internal/domain"
)

type CatalogRepository interface {
	// ActiveItems returns the active catalog items of a tenant, the cohort a
	// forecast run iterates over.
	ActiveItems(ctx context.Context, tenantID int64) ([]domain.CatalogItem, error)
	// KitComponents returns the bill of materials of a composite item. Empty
	// for kits with no registered components.
	KitComponents(ctx context.Context, kitID int64) ([]domain.KitComponent, error)
}
