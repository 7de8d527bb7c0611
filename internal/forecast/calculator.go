// internal/forecast/calculator.go
package forecast

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// SalePoint is one component-equivalent outbound quantity at a point in time.
type SalePoint struct {
	Quantity float64
	At       time.Time
}

// VelocityStats holds the mean-rate sales figures for one item.
type VelocityStats struct {
	TotalUnits float64
	WindowDays float64
	PerDay     float64
}

// Projection is the depletion outlook for one item. DaysRemaining is nil when
// there is no sales history: insufficient data, not an infinite runway.
type Projection struct {
	DaysRemaining *float64
	StockoutDate  *time.Time
}

// Calculator computes depletion metrics for catalog items.
type Calculator struct {
	exposureThresholdDays float64
}

// NewCalculator creates a calculator. thresholdDays is the near-term-risk
// window below which financial exposure is estimated.
func NewCalculator(thresholdDays float64) *Calculator {
	if thresholdDays <= 0 {
		thresholdDays = 10
	}
	return &Calculator{exposureThresholdDays: thresholdDays}
}

// Velocity reduces a time-ordered sequence of sale points into a mean
// units-per-day rate over the observed selling window. Every historical event
// contributes equally: no windowing or recency decay.
func (c *Calculator) Velocity(points []SalePoint) VelocityStats {
	stats := VelocityStats{WindowDays: 1}
	if len(points) == 0 {
		return stats
	}

	// 1. Total units across all outbound events
	earliest, latest := points[0].At, points[0].At
	for _, p := range points {
		stats.TotalUnits += p.Quantity
		if p.At.Before(earliest) {
			earliest = p.At
		}
		if p.At.After(latest) {
			latest = p.At
		}
	}

	// 2. Selling window in days, never below 1 so a single day of sales
	// cannot divide by zero
	window := math.Ceil(latest.Sub(earliest).Hours() / 24)
	stats.WindowDays = math.Max(1, window)

	// 3. Mean daily rate
	if stats.TotalUnits > 0 {
		stats.PerDay = stats.TotalUnits / stats.WindowDays
	}

	return stats
}

// Project combines the current on-hand quantity with the daily velocity to
// produce days remaining until stockout. The days figure is unrounded; the
// stockout date floors it for calendar arithmetic.
func (c *Calculator) Project(onHand float64, stats VelocityStats, today time.Time) Projection {
	if stats.PerDay == 0 {
		return Projection{}
	}

	days := onHand / stats.PerDay
	stockout := today.AddDate(0, 0, int(math.Floor(days)))
	return Projection{DaysRemaining: &days, StockoutDate: &stockout}
}

// Exposure estimates the revenue that becomes unrealizable if the item runs
// out before continued average demand could be served. Only computed inside
// the near-term-risk window; comfortably-stocked or data-less items carry
// zero exposure.
func (c *Calculator) Exposure(proj Projection, stats VelocityStats, unitPrice decimal.Decimal) decimal.Decimal {
	if proj.DaysRemaining == nil || *proj.DaysRemaining >= c.exposureThresholdDays {
		return decimal.Zero
	}
	return unitPrice.Mul(decimal.NewFromFloat(stats.PerDay * *proj.DaysRemaining))
}
