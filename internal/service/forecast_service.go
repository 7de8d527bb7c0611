// internal/service/forecast_service.go
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/gestio-app/backend-go/internal/config"
	"github.com/gestio-app/backend-go/internal/domain"
	"github.com/gestio-app/backend-go/internal/forecast"
	"github.com/gestio-app/backend-go/internal/recommend"
	"github.com/gestio-app/backend-go/internal/repository"
	"github.com/rs/zerolog/log"
)

// ForecastService runs the depletion forecasting pipeline for a tenant:
// movement history → kit expansion → velocity → projection → exposure →
// recommendation → replace-all persistence.
type ForecastService struct {
	catalog   repository.CatalogRepository
	movements repository.MovementRepository
	forecasts repository.ForecastRepository
	composer  *recommend.Composer
	calc      *forecast.Calculator
	cfg       config.ForecastConfig
	now       func() time.Time
}

func NewForecastService(
	catalog repository.CatalogRepository,
	movements repository.MovementRepository,
	forecasts repository.ForecastRepository,
	composer *recommend.Composer,
	cfg config.ForecastConfig,
) *ForecastService {
	if composer == nil {
		composer = recommend.NewComposer(nil)
	}
	return &ForecastService{
		catalog:   catalog,
		movements: movements,
		forecasts: forecasts,
		composer:  composer,
		calc:      forecast.NewCalculator(cfg.ExposureThresholdDays),
		cfg:       cfg,
		now:       time.Now,
	}
}

// Recompute forecasts every active item of the tenant and replaces the
// tenant's forecast records with the result. Items are processed strictly
// sequentially: each item's computation is a pure function of its own history
// and quantity, and the recommendation call is bounded per item so one slow
// collaborator response cannot stall the run. Repository errors abort the
// run; composer failures are recovered inside the composer.
func (s *ForecastService) Recompute(ctx context.Context, tenantID int64) (*domain.RecomputeResult, error) {
	if s.cfg.RunTimeoutSeconds > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(s.cfg.RunTimeoutSeconds)*time.Second)
		defer cancel()
	}

	items, err := s.catalog.ActiveItems(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to load active items: %w", err)
	}

	start := s.now()
	records := make([]domain.ForecastRecord, 0, len(items))
	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("forecast run interrupted: %w", err)
		}

		record, err := s.forecastItem(ctx, item)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}

	if err := s.forecasts.ReplaceForTenant(ctx, tenantID, records); err != nil {
		return nil, fmt.Errorf("failed to persist forecasts: %w", err)
	}

	log.Info().
		Int64("tenant_id", tenantID).
		Int("processed", len(records)).
		Dur("elapsed", s.now().Sub(start)).
		Msg("forecast run completed")

	previewSize := s.cfg.PreviewSize
	if previewSize <= 0 {
		previewSize = 5
	}
	if previewSize > len(records) {
		previewSize = len(records)
	}

	return &domain.RecomputeResult{
		TenantID:  tenantID,
		Processed: len(records),
		Preview:   records[:previewSize],
	}, nil
}

func (s *ForecastService) forecastItem(ctx context.Context, item domain.CatalogItem) (*domain.ForecastRecord, error) {
	history, err := s.movements.OutboundHistory(ctx, item.TenantID, item.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load movements for item %d: %w", item.ID, err)
	}

	points := forecast.Expand(history)
	stats := s.calc.Velocity(points)
	proj := s.calc.Project(item.Quantity, stats, s.now())
	exposure := s.calc.Exposure(proj, stats, item.UnitPrice)

	facts := recommend.Facts{
		ItemName:      item.Name,
		OnHand:        item.Quantity,
		DailyVelocity: stats.PerDay,
		DaysRemaining: proj.DaysRemaining,
		StockoutDate:  proj.StockoutDate,
		Exposure:      exposure,
	}

	itemTimeout := time.Duration(s.cfg.ItemTimeoutSeconds) * time.Second
	if itemTimeout <= 0 {
		itemTimeout = 30 * time.Second
	}
	itemCtx, cancel := context.WithTimeout(ctx, itemTimeout)
	recommendation := s.composer.Compose(itemCtx, facts)
	cancel()

	return &domain.ForecastRecord{
		TenantID:         item.TenantID,
		ItemID:           item.ID,
		ItemName:         item.Name,
		QuantitySnapshot: item.Quantity,
		DailyVelocity:    stats.PerDay,
		DaysRemaining:    proj.DaysRemaining,
		StockoutDate:     proj.StockoutDate,
		Exposure:         exposure,
		Recommendation:   recommendation,
		ComputedAt:       s.now(),
	}, nil
}

// Current returns the records of the latest completed run for the tenant.
func (s *ForecastService) Current(ctx context.Context, tenantID int64) ([]domain.ForecastRecord, error) {
	return s.forecasts.CurrentForTenant(ctx, tenantID)
}

// Items lists the tenant's active catalog items.
func (s *ForecastService) Items(ctx context.Context, tenantID int64) ([]domain.CatalogItem, error) {
	return s.catalog.ActiveItems(ctx, tenantID)
}

// KitComponents returns the bill of materials of a composite item.
func (s *ForecastService) KitComponents(ctx context.Context, kitID int64) ([]domain.KitComponent, error) {
	return s.catalog.KitComponents(ctx, kitID)
}
