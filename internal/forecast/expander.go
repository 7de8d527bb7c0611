// internal/forecast/expander.go
package forecast

import "github.com/gestio-app/backend-go/internal/domain"

// Expand resolves raw outbound movements into component-equivalent sale
// points. A movement sold through a kit contributes its quantity multiplied
// by the component's per-kit quantity; direct movements pass through
// unchanged. Same-day points are not merged here, the velocity calculation
// sums them.
func Expand(movements []domain.OutboundMovement) []SalePoint {
	points := make([]SalePoint, 0, len(movements))
	for _, m := range movements {
		multiplier := m.Source.Multiplier
		if m.Source.Origin == domain.OriginDirect && multiplier == 0 {
			multiplier = 1
		}

		qty := m.Quantity * multiplier
		if qty <= 0 {
			continue
		}
		points = append(points, SalePoint{Quantity: qty, At: m.MovedAt})
	}
	return points
}
