// internal/domain/models.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementDirection is the recorded direction of a stock movement.
type MovementDirection string

const (
	DirectionInbound  MovementDirection = "inbound"
	DirectionOutbound MovementDirection = "outbound"
	DirectionTransfer MovementDirection = "transfer"
)

// MovementOrigin tags how an outbound movement is attributed to an item:
// either the item was sold standalone, or it left stock as a component of a
// composite kit. The tag comes from the data model, never from parsing
// free-text descriptions.
type MovementOrigin string

const (
	OriginDirect MovementOrigin = "direct"
	OriginKit    MovementOrigin = "kit"
)

// MovementSource is the discriminated origin of an outbound movement.
// Multiplier is the component quantity per kit unit and is 1 for direct
// movements.
type MovementSource struct {
	Origin     MovementOrigin `json:"origin" db:"origin"`
	KitID      int64          `json:"kit_id,omitempty" db:"kit_id"`
	Multiplier float64        `json:"multiplier" db:"multiplier"`
}

// OutboundMovement is one historical stock-decreasing event attributable to
// an item, ordered by MovedAt. Quantity is the raw movement quantity before
// kit expansion.
type OutboundMovement struct {
	ItemID   int64          `json:"item_id" db:"item_id"`
	Quantity float64        `json:"quantity" db:"quantity"`
	MovedAt  time.Time      `json:"moved_at" db:"moved_at"`
	Source   MovementSource `json:"source"`
}

// CatalogItem is a sellable entity, either a simple item or a composite kit.
// Read-only to the forecasting engine.
type CatalogItem struct {
	ID          int64           `json:"id" db:"id"`
	TenantID    int64           `json:"tenant_id" db:"tenant_id"`
	Name        string          `json:"name" db:"name"`
	Quantity    float64         `json:"quantity" db:"quantity"`
	UnitCost    decimal.Decimal `json:"unit_cost" db:"unit_cost"`
	UnitPrice   decimal.Decimal `json:"unit_price" db:"unit_price"`
	MinQuantity float64         `json:"min_quantity" db:"min_quantity"`
	IsKit       bool            `json:"is_kit" db:"is_kit"`
	Active      bool            `json:"active" db:"active"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at" db:"updated_at"`
}

// KitComponent maps a composite item to one of its component items.
type KitComponent struct {
	KitID          int64   `json:"kit_id" db:"kit_id"`
	ComponentID    int64   `json:"component_id" db:"component_id"`
	QuantityPerKit float64 `json:"quantity_per_kit" db:"quantity_per_kit"`
}

// KitExtraCost is a fixed additional cost attached to a composite item.
type KitExtraCost struct {
	KitID       int64           `json:"kit_id" db:"kit_id"`
	Description string          `json:"description" db:"description"`
	Amount      decimal.Decimal `json:"amount" db:"amount"`
}

// ForecastRecord is the persisted result of one item's depletion projection.
// At most one current record exists per item per tenant; a recompute run
// replaces the whole tenant set.
type ForecastRecord struct {
	ID               int64           `json:"id" db:"id"`
	TenantID         int64           `json:"tenant_id" db:"tenant_id"`
	ItemID           int64           `json:"item_id" db:"item_id"`
	ItemName         string          `json:"item_name" db:"item_name"`
	QuantitySnapshot float64         `json:"quantity_snapshot" db:"quantity_snapshot"`
	DailyVelocity    float64         `json:"daily_velocity" db:"daily_velocity"`
	DaysRemaining    *float64        `json:"days_remaining" db:"days_remaining"`
	StockoutDate     *time.Time      `json:"stockout_date" db:"stockout_date"`
	Exposure         decimal.Decimal `json:"exposure" db:"exposure"`
	Recommendation   string          `json:"recommendation" db:"recommendation"`
	ComputedAt       time.Time       `json:"computed_at" db:"computed_at"`
}

// LedgerEntryKind distinguishes sale from purchase ledger entries.
type LedgerEntryKind string

const (
	LedgerSale     LedgerEntryKind = "sale"
	LedgerPurchase LedgerEntryKind = "purchase"
)

// ProfitLedgerEntry is an external financial-transaction record carrying the
// realized figures of one movement. Read-only input to the classifier.
type ProfitLedgerEntry struct {
	ID         int64           `json:"id" db:"id"`
	TenantID   int64           `json:"tenant_id" db:"tenant_id"`
	ItemID     int64           `json:"item_id" db:"item_id"`
	ItemName   string          `json:"item_name" db:"item_name"`
	Kind       LedgerEntryKind `json:"kind" db:"kind"`
	Revenue    decimal.Decimal `json:"revenue" db:"revenue"`
	Cost       decimal.Decimal `json:"cost" db:"cost"`
	Profit     decimal.Decimal `json:"profit" db:"profit"`
	Quantity   float64         `json:"quantity" db:"quantity"`
	OccurredAt time.Time       `json:"occurred_at" db:"occurred_at"`
}

// PeriodFilter selects ledger entries for classification.
type PeriodFilter struct {
	TenantID int64     `json:"tenant_id"`
	From     time.Time `json:"from"`
	To       time.Time `json:"to"`
}

// RecomputeResult is the caller-facing summary of a forecast run.
type RecomputeResult struct {
	TenantID  int64            `json:"tenant_id"`
	Processed int              `json:"processed"`
	Preview   []ForecastRecord `json:"preview"`
}
