// internal/domain/quadrant.go
package domain

import "github.com/shopspring/decimal"

// Quadrant is the four-way relative-performance label assigned by the
// profitability classifier. Labels keep the product's Portuguese naming used
// by the presentation layer.
type Quadrant string

const (
	QuadrantEstrela      Quadrant = "estrela"
	QuadrantEstavel      Quadrant = "estavel"
	QuadrantSombra       Quadrant = "sombra"
	QuadrantProblematico Quadrant = "problematico"
)

// Color returns the fixed display color for the quadrant. Presentation only,
// never used in classification logic.
func (q Quadrant) Color() string {
	switch q {
	case QuadrantEstrela:
		return "#22c55e"
	case QuadrantSombra:
		return "#f59e0b"
	case QuadrantProblematico:
		return "#ef4444"
	default:
		return "#3b82f6"
	}
}

// Label returns the display name for the quadrant.
func (q Quadrant) Label() string {
	switch q {
	case QuadrantEstrela:
		return "Estrela"
	case QuadrantSombra:
		return "Sombra"
	case QuadrantProblematico:
		return "Problemático"
	default:
		return "Estável"
	}
}

// ItemPerformance is the per-item aggregate produced by the classifier.
// Computed on demand from ledger entries and never persisted.
type ItemPerformance struct {
	ItemID      int64           `json:"item_id"`
	Name        string          `json:"name"`
	Faturamento decimal.Decimal `json:"faturamento"`
	Lucro       decimal.Decimal `json:"lucro"`
	Quantidade  float64         `json:"quantidade"`
	Margem      float64         `json:"margem"`
	TicketMedio float64         `json:"ticket_medio"`
	Quadrant    Quadrant        `json:"quadrante"`
	Color       string          `json:"cor"`
}
