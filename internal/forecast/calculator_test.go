package forecast

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestVelocityNoHistory(t *testing.T) {
	calc := NewCalculator(10)

	stats := calc.Velocity(nil)

	assert.Zero(t, stats.TotalUnits)
	assert.Zero(t, stats.PerDay)
}

func TestVelocitySingleDayWindowIsOne(t *testing.T) {
	calc := NewCalculator(10)

	stats := calc.Velocity([]SalePoint{
		{Quantity: 5, At: day("2026-03-01")},
		{Quantity: 7, At: day("2026-03-01")},
	})

	assert.Equal(t, float64(1), stats.WindowDays)
	assert.Equal(t, float64(12), stats.TotalUnits)
	assert.Equal(t, float64(12), stats.PerDay)
}

func TestVelocityMeanRateOverWindow(t *testing.T) {
	calc := NewCalculator(10)

	stats := calc.Velocity([]SalePoint{
		{Quantity: 10, At: day("2026-03-01")},
		{Quantity: 10, At: day("2026-03-06")},
	})

	assert.Equal(t, float64(20), stats.TotalUnits)
	assert.Equal(t, float64(5), stats.WindowDays)
	assert.Equal(t, float64(4), stats.PerDay)
}

func TestProjectWithoutVelocityIsUndefined(t *testing.T) {
	calc := NewCalculator(10)

	proj := calc.Project(100, VelocityStats{}, day("2026-03-10"))

	assert.Nil(t, proj.DaysRemaining)
	assert.Nil(t, proj.StockoutDate)
}

func TestProjectDaysRemaining(t *testing.T) {
	calc := NewCalculator(10)

	proj := calc.Project(100, VelocityStats{PerDay: 4}, day("2026-03-10"))

	require.NotNil(t, proj.DaysRemaining)
	assert.Equal(t, float64(25), *proj.DaysRemaining)
	require.NotNil(t, proj.StockoutDate)
	assert.Equal(t, day("2026-04-04"), *proj.StockoutDate)
}

func TestProjectFractionalDaysFloorForDate(t *testing.T) {
	calc := NewCalculator(10)

	proj := calc.Project(6, VelocityStats{PerDay: 12}, day("2026-03-10"))

	require.NotNil(t, proj.DaysRemaining)
	assert.Equal(t, 0.5, *proj.DaysRemaining)
	require.NotNil(t, proj.StockoutDate)
	assert.Equal(t, day("2026-03-10"), *proj.StockoutDate)
}

func TestProjectNeverNegative(t *testing.T) {
	calc := NewCalculator(10)

	proj := calc.Project(0, VelocityStats{PerDay: 3}, day("2026-03-10"))

	require.NotNil(t, proj.DaysRemaining)
	assert.GreaterOrEqual(t, *proj.DaysRemaining, float64(0))
}

func TestExposureOnlyInsideRiskWindow(t *testing.T) {
	calc := NewCalculator(10)
	price := decimal.NewFromFloat(25)

	comfortable := 25.0
	assert.True(t, calc.Exposure(Projection{DaysRemaining: &comfortable}, VelocityStats{PerDay: 4}, price).IsZero())

	boundary := 10.0
	assert.True(t, calc.Exposure(Projection{DaysRemaining: &boundary}, VelocityStats{PerDay: 4}, price).IsZero())

	assert.True(t, calc.Exposure(Projection{}, VelocityStats{}, price).IsZero())
}

func TestExposureFormula(t *testing.T) {
	calc := NewCalculator(10)
	price := decimal.NewFromFloat(25)

	days := 0.5
	exposure := calc.Exposure(Projection{DaysRemaining: &days}, VelocityStats{PerDay: 12}, price)

	// 25 × 12 × 0.5
	assert.True(t, exposure.Equal(decimal.NewFromFloat(150)), "got %s", exposure)
}
