// internal/service/classification_service.go
package service

import (
	"context"

	"github.com/gestio-app/backend-go/internal/cache"
	"github.com/gestio-app/backend-go/internal/classifier"
	"github.com/gestio-app/backend-go/internal/domain"
	"github.com/gestio-app/backend-go/internal/repository"
	"github.com/rs/zerolog/log"
)

// ClassificationService computes the profitability quadrants for a tenant and
// period. Stateless apart from the read-through cache, so it is safe to call
// concurrently from multiple readers.
type ClassificationService struct {
	ledger repository.LedgerRepository
	cache  cache.QuadrantCache
}

func NewClassificationService(ledger repository.LedgerRepository, cacheImpl cache.QuadrantCache) *ClassificationService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopQuadrantCache()
	}
	return &ClassificationService{ledger: ledger, cache: cacheImpl}
}

// Quadrants aggregates the tenant's ledger entries for the period and assigns
// each item its relative-performance quadrant. Recomputed fully on every
// cache miss, never partially updated.
func (s *ClassificationService) Quadrants(ctx context.Context, filter domain.PeriodFilter) ([]domain.ItemPerformance, error) {
	if items, ok, err := s.cache.Get(ctx, filter); err == nil && ok {
		return items, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("quadrants: cache get failed")
	}

	entries, err := s.ledger.EntriesForPeriod(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := classifier.Classify(classifier.Aggregate(entries))
	if items == nil {
		items = make([]domain.ItemPerformance, 0)
	}

	if err := s.cache.Set(ctx, filter, items); err != nil {
		log.Warn().Err(err).Msg("quadrants: cache set failed")
	}

	return items, nil
}
