// internal/repository/postgres/catalog_repository.go
package postgres

import (
	"context"
	"fmt"

	"github.com/gestio-app/backend-go/internal/domain"
)

type catalogRepository struct {
	db *DB
}

func NewCatalogRepository(db *DB) *catalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) ActiveItems(ctx context.Context, tenantID int64) ([]domain.CatalogItem, error) {
	query := `
		SELECT id, tenant_id, name, quantity, unit_cost, unit_price,
		       min_quantity, is_kit, active, created_at, updated_at
		FROM products
		WHERE tenant_id = $1 AND active
		ORDER BY name, id
	`

	var items []domain.CatalogItem
	if err := r.db.SelectContext(ctx, &items, query, tenantID); err != nil {
		return nil, fmt.Errorf("error getting active items: %w", err)
	}

	return items, nil
}

func (r *catalogRepository) KitComponents(ctx context.Context, kitID int64) ([]domain.KitComponent, error) {
	query := `
		SELECT kit_id, component_id, quantity_per_kit
		FROM kit_components
		WHERE kit_id = $1
		ORDER BY component_id
	`

	var components []domain.KitComponent
	if err := r.db.SelectContext(ctx, &components, query, kitID); err != nil {
		return nil, fmt.Errorf("error getting kit components: %w", err)
	}

	return components, nil
}
