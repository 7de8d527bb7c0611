package service

import (
	"context"
	"errors"
	"testing"

	"github.com/gestio-app/backend-go/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLedgerRepo struct {
	entries []domain.ProfitLedgerEntry
	err     error
	calls   int
}

func (r *stubLedgerRepo) EntriesForPeriod(_ context.Context, _ domain.PeriodFilter) ([]domain.ProfitLedgerEntry, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	return r.entries, nil
}

type recordingCache struct {
	items    []domain.ItemPerformance
	hit      bool
	getErr   error
	setErr   error
	setCalls int
	stored   []domain.ItemPerformance
}

func (c *recordingCache) Get(_ context.Context, _ domain.PeriodFilter) ([]domain.ItemPerformance, bool, error) {
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	return c.items, c.hit, nil
}

func (c *recordingCache) Set(_ context.Context, _ domain.PeriodFilter, items []domain.ItemPerformance) error {
	if c.setErr != nil {
		return c.setErr
	}
	c.setCalls++
	c.stored = items
	return nil
}

func (c *recordingCache) InvalidateAll(_ context.Context) error { return nil }

func ledgerSale(itemID int64, name string, revenue, cost, qty float64) domain.ProfitLedgerEntry {
	return domain.ProfitLedgerEntry{
		ItemID:     itemID,
		ItemName:   name,
		Kind:       domain.LedgerSale,
		Revenue:    decimal.NewFromFloat(revenue),
		Cost:       decimal.NewFromFloat(cost),
		Profit:     decimal.NewFromFloat(revenue - cost),
		Quantity:   qty,
		OccurredAt: fixedDay("2026-02-15"),
	}
}

func periodFilter() domain.PeriodFilter {
	return domain.PeriodFilter{
		TenantID: tenantID,
		From:     fixedDay("2026-02-01"),
		To:       fixedDay("2026-03-01"),
	}
}

func TestQuadrantsClassifiesLedger(t *testing.T) {
	ledger := &stubLedgerRepo{entries: []domain.ProfitLedgerEntry{
		ledgerSale(1, "Creme", 2000, 800, 40),
		ledgerSale(2, "Sabonete", 300, 250, 30),
		ledgerSale(3, "Perfume", 900, 880, 5),
		ledgerSale(4, "Escova", 250, 170, 12),
	}}

	svc := NewClassificationService(ledger, nil)
	items, err := svc.Quadrants(context.Background(), periodFilter())
	require.NoError(t, err)

	require.Len(t, items, 4)
	assert.Equal(t, domain.QuadrantEstrela, items[0].Quadrant)
	for _, it := range items {
		assert.NotEmpty(t, it.Quadrant)
		assert.Equal(t, it.Quadrant.Color(), it.Color)
	}
}

func TestQuadrantsDeterministicAcrossCalls(t *testing.T) {
	ledger := &stubLedgerRepo{entries: []domain.ProfitLedgerEntry{
		ledgerSale(1, "Creme", 2000, 800, 40),
		ledgerSale(2, "Sabonete", 300, 250, 30),
	}}

	svc := NewClassificationService(ledger, nil)
	first, err := svc.Quadrants(context.Background(), periodFilter())
	require.NoError(t, err)
	second, err := svc.Quadrants(context.Background(), periodFilter())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	// noop cache never short-circuits the ledger read
	assert.Equal(t, 2, ledger.calls)
}

func TestQuadrantsCacheHitSkipsLedger(t *testing.T) {
	cached := []domain.ItemPerformance{{ItemID: 1, Name: "Creme", Quadrant: domain.QuadrantEstrela}}
	ledger := &stubLedgerRepo{}
	cacheStub := &recordingCache{items: cached, hit: true}

	svc := NewClassificationService(ledger, cacheStub)
	items, err := svc.Quadrants(context.Background(), periodFilter())
	require.NoError(t, err)

	assert.Equal(t, cached, items)
	assert.Zero(t, ledger.calls)
}

func TestQuadrantsCacheMissPopulatesCache(t *testing.T) {
	ledger := &stubLedgerRepo{entries: []domain.ProfitLedgerEntry{
		ledgerSale(1, "Creme", 2000, 800, 40),
	}}
	cacheStub := &recordingCache{}

	svc := NewClassificationService(ledger, cacheStub)
	items, err := svc.Quadrants(context.Background(), periodFilter())
	require.NoError(t, err)

	assert.Equal(t, 1, cacheStub.setCalls)
	assert.Equal(t, items, cacheStub.stored)
}

func TestQuadrantsCacheErrorsAreNonFatal(t *testing.T) {
	ledger := &stubLedgerRepo{entries: []domain.ProfitLedgerEntry{
		ledgerSale(1, "Creme", 2000, 800, 40),
	}}
	cacheStub := &recordingCache{getErr: errors.New("redis down"), setErr: errors.New("redis down")}

	svc := NewClassificationService(ledger, cacheStub)
	items, err := svc.Quadrants(context.Background(), periodFilter())

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 1, ledger.calls)
}

func TestQuadrantsLedgerErrorSurfaces(t *testing.T) {
	ledger := &stubLedgerRepo{err: errors.New("relation does not exist")}

	svc := NewClassificationService(ledger, nil)
	_, err := svc.Quadrants(context.Background(), periodFilter())

	require.Error(t, err)
}

func TestQuadrantsEmptyPeriod(t *testing.T) {
	ledger := &stubLedgerRepo{}

	svc := NewClassificationService(ledger, nil)
	items, err := svc.Quadrants(context.Background(), periodFilter())

	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}
