package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"lanerate/internal/domain/provider"
	"lanerate/internal/domain/quote"
	"lanerate/internal/infra/cache"
	"lanerate/internal/infra/staticdata"
	"lanerate/internal/usecase"

	"go.uber.org/fx"
	"golang.org/x/sync/singleflight"
)

// defaultDieselPrice covers states absent from the reference table. Should
// never fire for a route resolved through the engine, which only produces
// known state codes.
const defaultDieselPrice = 3.85

// FuelServiceParams holds dependencies for the fuel price service, injected by Fx.
type FuelServiceParams struct {
	fx.In

	Logger *slog.Logger
	API    provider.FuelPriceAPI `optional:"true"`
	Cache  *cache.FuelPriceCache
	Static *staticdata.Data
}

type fuelService struct {
	api    provider.FuelPriceAPI
	cache  *cache.FuelPriceCache
	static *staticdata.Data
	logger *slog.Logger
	group  singleflight.Group
}

// NewFuelService creates the fuel price service.
func NewFuelService(params FuelServiceParams) usecase.FuelUsecase {
	return &fuelService{
		api:    params.API,
		cache:  params.Cache,
		static: params.Static,
		logger: params.Logger,
	}
}

// StatePrice resolves one state through the chain fresh cache → provider →
// stale cache → static table. Concurrent misses for the same state share a
// single provider call.
func (s *fuelService) StatePrice(ctx context.Context, state string) *quote.FuelPriceResult {
	state = strings.ToUpper(strings.TrimSpace(state))

	if cached, ok := s.cache.Get(state); ok {
		cached.Source = quote.SourceCache

		return &cached
	}

	v, _, _ := s.group.Do(state, func() (any, error) {
		return s.fetchPrice(ctx, state), nil
	})
	result := v.(quote.FuelPriceResult)

	return &result
}

// fetchPrice runs the non-cached part of the lookup chain.
func (s *fuelService) fetchPrice(ctx context.Context, state string) quote.FuelPriceResult {
	if s.api != nil {
		sp, err := s.api.StatePrice(ctx, state)
		if err == nil {
			result := quote.FuelPriceResult{
				PricePerGallon: sp.PricePerGallon,
				State:          state,
				LastUpdated:    sp.AsOf,
				Source:         quote.SourceAPI,
			}
			s.cache.Put(state, result)

			return result
		}

		s.logger.Warn("fuel provider lookup failed",
			slog.String("state", state),
			slog.Any("error", err),
		)

		// An expired entry beats the static table. Keep its original
		// timestamp so the staleness is visible downstream.
		if stale, ok := s.cache.GetStale(state); ok {
			stale.Source = quote.SourceCache

			return stale
		}
	}

	price, ok := s.static.FallbackFuelPrice(state)
	if !ok {
		price = defaultDieselPrice
	}

	return quote.FuelPriceResult{
		PricePerGallon: price,
		State:          state,
		Source:         quote.SourceFallback,
	}
}

// RoutePrice averages the per-state prices weighted by miles driven in each
// state, or equally when no mile split is known. The aggregate source reports
// the weakest constituent and LastUpdated the oldest one.
func (s *fuelService) RoutePrice(ctx context.Context, states []string, stateMiles map[string]float64) *quote.FuelPriceResult {
	if len(states) == 0 {
		return &quote.FuelPriceResult{
			PricePerGallon: defaultDieselPrice,
			Source:         quote.SourceFallback,
		}
	}

	var (
		weightedSum float64
		totalWeight float64
		source      = quote.SourceAPI
		oldest      time.Time
		hasFallback bool
		first       = true
	)

	for _, state := range states {
		r := s.StatePrice(ctx, state)

		weight := 1.0
		if stateMiles != nil {
			if miles, ok := stateMiles[state]; ok && miles > 0 {
				weight = miles
			}
		}

		weightedSum += r.PricePerGallon * weight
		totalWeight += weight

		if r.Source.Weaker(source) {
			source = r.Source
		}
		if r.Source == quote.SourceFallback {
			hasFallback = true
		}
		if first || r.LastUpdated.Before(oldest) {
			oldest = r.LastUpdated
			first = false
		}
	}

	if hasFallback {
		oldest = time.Time{}
	}

	return &quote.FuelPriceResult{
		PricePerGallon: weightedSum / totalWeight,
		State:          strings.Join(states, ","),
		LastUpdated:    oldest,
		Source:         source,
	}
}

// RefreshAll re-fetches every state from the provider and repopulates the
// cache. Per-state failures are counted and skipped, never fatal.
func (s *fuelService) RefreshAll(ctx context.Context) usecase.FuelRefreshResult {
	var result usecase.FuelRefreshResult

	states := s.static.States()
	if s.api == nil {
		result.Failed = len(states)

		return result
	}

	for _, state := range states {
		sp, err := s.api.StatePrice(ctx, state)
		if err != nil {
			result.Failed++
			s.logger.Warn("fuel refresh failed for state",
				slog.String("state", state),
				slog.Any("error", err),
			)

			continue
		}

		s.cache.Put(state, quote.FuelPriceResult{
			PricePerGallon: sp.PricePerGallon,
			State:          state,
			LastUpdated:    sp.AsOf,
			Source:         quote.SourceAPI,
		})
		result.Updated++
	}

	s.logger.Info("fuel price refresh complete",
		slog.Int("updated", result.Updated),
		slog.Int("failed", result.Failed),
	)

	return result
}
