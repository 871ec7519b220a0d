package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"lanerate/config"
	"lanerate/internal/domain/quote"
	"lanerate/internal/domain/region"
	"lanerate/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
	"golang.org/x/sync/errgroup"
)

// marketCeilings caps the rate the lane will bear per market temperature,
// as a multiple of total cost.
var marketCeilings = map[quote.MarketTemperature]float64{
	quote.MarketHot:      1.45,
	quote.MarketWarm:     1.35,
	quote.MarketBalanced: 1.25,
	quote.MarketCool:     1.18,
	quote.MarketCold:     1.12,
}

// marketAdjustments shift the recommended margin per market temperature.
var marketAdjustments = map[quote.MarketTemperature]float64{
	quote.MarketHot:      0.10,
	quote.MarketWarm:     0.05,
	quote.MarketBalanced: 0,
	quote.MarketCool:     -0.03,
	quote.MarketCold:     -0.06,
}

// costPlusCeiling caps the rate when no market signal exists, as a multiple
// of total cost.
const costPlusCeiling = 1.25

// RateServiceParams holds dependencies for the rate recommender, injected by Fx.
type RateServiceParams struct {
	fx.In

	Config  *config.Config
	Logger  *slog.Logger
	Route   usecase.RouteUsecase
	Fuel    usecase.FuelUsecase
	Toll    usecase.TollUsecase
	Weather usecase.WeatherUsecase
	Cost    usecase.CostUsecase
}

type rateService struct {
	engine  *config.EngineConfig
	logger  *slog.Logger
	route   usecase.RouteUsecase
	fuel    usecase.FuelUsecase
	toll    usecase.TollUsecase
	weather usecase.WeatherUsecase
	cost    usecase.CostUsecase
}

// NewRateService creates the quote orchestrator.
func NewRateService(params RateServiceParams) usecase.RateUsecase {
	return &rateService{
		engine:  params.Config.Engine,
		logger:  params.Logger,
		route:   params.Route,
		fuel:    params.Fuel,
		toll:    params.Toll,
		weather: params.Weather,
		cost:    params.Cost,
	}
}

// CalculateRate runs the full pipeline: route first, then fuel, tolls and
// weather concurrently, then the cost model and the rate recommendation.
func (s *rateService) CalculateRate(ctx context.Context, req *quote.RateRequest) (*quote.Quote, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	pickup := req.PickupDate
	if pickup.IsZero() {
		pickup = time.Now()
	}

	route, err := s.route.Resolve(ctx, req.Origin, req.Destination, &req.Vehicle)
	if err != nil {
		return nil, err
	}

	// Market analysis is synchronous and pure; unknown state codes simply
	// yield no market signal.
	market := region.CalculateFlow(
		region.ForState(route.OriginState()),
		region.ForState(route.DestState()),
	)

	var (
		fuel    *quote.FuelPriceResult
		tolls   *quote.TollBreakdown
		weather *quote.WeatherData
	)

	// The three market-data fetches are independent once the route is known.
	// None of them can fail the quote, so the only join error is cancellation.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		fuel = s.fuel.RoutePrice(gctx, route.StatesCrossed, route.StateMiles)

		return gctx.Err()
	})
	g.Go(func() error {
		tolls = s.resolveTolls(gctx, route, req.Vehicle.Type)

		return gctx.Err()
	})
	g.Go(func() error {
		weather = s.weather.RouteWeather(gctx, route.OriginPoint, route.DestPoint, pickup)

		return gctx.Err()
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	costs, err := s.cost.Build(route, fuel, tolls, req.Vehicle, req.Costs)
	if err != nil {
		return nil, err
	}

	rec, minRate, maxRate := s.recommend(costs.TotalCost, market)

	q := &quote.Quote{
		ID:        uuid.New(),
		CreatedAt: time.Now(),

		Route:   *route,
		Fuel:    *fuel,
		Tolls:   *tolls,
		Weather: weather,
		Market:  market,
		Costs:   *costs,

		RecommendedRate: rec,
		MinRate:         minRate,
		MaxRate:         maxRate,

		Confidence: confidence(route, fuel, tolls, market),
	}

	if route.DistanceMiles > 0 {
		q.RatePerMile = rec / route.DistanceMiles
		q.ProfitPerMile = (rec - costs.TotalCost) / route.DistanceMiles
	}
	q.EstimatedProfit = rec - costs.TotalCost
	if rec > 0 {
		q.ProfitMargin = q.EstimatedProfit / rec
	}

	s.logger.Info("quote calculated",
		slog.String("quote_id", q.ID.String()),
		slog.String("origin", route.Origin),
		slog.String("destination", route.Destination),
		slog.Float64("distance_miles", route.DistanceMiles),
		slog.Float64("recommended_rate", rec),
		slog.String("confidence", string(q.Confidence)),
	)

	return q, nil
}

// CalculateTolls resolves the route without vehicle restrictions and prices
// its tolls, heuristically when the provider has nothing.
func (s *rateService) CalculateTolls(ctx context.Context, origin, destination string, vehicleType quote.VehicleType) (*quote.TollBreakdown, error) {
	route, err := s.route.Resolve(ctx, origin, destination, nil)
	if err != nil {
		return nil, err
	}

	return s.resolveTolls(ctx, route, vehicleType), nil
}

// CalculateDistance resolves the route without vehicle restrictions.
func (s *rateService) CalculateDistance(ctx context.Context, origin, destination string) (*quote.RouteResult, error) {
	return s.route.Resolve(ctx, origin, destination, nil)
}

// resolveTolls tries the provider and falls back to the per-state heuristic.
// The provider needs endpoint coordinates, which every routing tier supplies.
func (s *rateService) resolveTolls(ctx context.Context, route *quote.RouteResult, vehicleType quote.VehicleType) *quote.TollBreakdown {
	if route.OriginPoint != nil && route.DestPoint != nil {
		if tolls := s.toll.Calculate(ctx, *route.OriginPoint, *route.DestPoint, vehicleType); tolls != nil {
			return tolls
		}
	}

	return s.toll.EstimateFallback(route.DistanceMiles, route.StatesCrossed, route.StateMiles)
}

// recommend turns total cost and the market signal into a rate band. The
// recommendation is the cost-plus margin shifted by market temperature,
// clamped to the floor margin and the lane's market ceiling.
func (s *rateService) recommend(totalCost float64, market *quote.FlowAnalysis) (rec, minRate, maxRate float64) {
	minRate = totalCost * (1 + s.engine.MinimumMargin)

	if market == nil {
		rec = totalCost * (1 + s.engine.CostPlusMargin)
		maxRate = totalCost * costPlusCeiling
	} else {
		rec = totalCost * (1 + s.engine.CostPlusMargin + marketAdjustments[market.Temperature])
		maxRate = totalCost * marketCeilings[market.Temperature]
	}

	if maxRate < minRate {
		maxRate = minRate
	}
	if rec < minRate {
		rec = minRate
	}
	if rec > maxRate {
		rec = maxRate
	}

	return rec, minRate, maxRate
}

// confidence grades the quote by the weakest data behind it: no market
// signal reads low, any fallback-sourced input reads medium, all-live reads
// high.
func confidence(route *quote.RouteResult, fuel *quote.FuelPriceResult, tolls *quote.TollBreakdown, market *quote.FlowAnalysis) quote.Confidence {
	if market == nil {
		return quote.ConfidenceLow
	}

	if route.Provider == quote.RoutingFallback ||
		fuel.Source == quote.SourceFallback ||
		tolls.Source == quote.SourceFallback {
		return quote.ConfidenceMedium
	}

	return quote.ConfidenceHigh
}

func validateRequest(req *quote.RateRequest) error {
	if req == nil {
		return &quote.ValidationError{Field: "request", Reason: "must not be nil"}
	}
	if strings.TrimSpace(req.Origin) == "" {
		return &quote.ValidationError{Field: "origin", Reason: "must be non-empty"}
	}
	if strings.TrimSpace(req.Destination) == "" {
		return &quote.ValidationError{Field: "destination", Reason: "must be non-empty"}
	}
	if req.Vehicle.MPG <= 0 {
		return &quote.ValidationError{Field: "vehicle.mpg", Reason: "must be positive"}
	}
	if req.Costs.ServiceFeePct < 0 || req.Costs.ServiceFeePct >= 1 {
		return &quote.ValidationError{Field: "costs.service_fee_pct", Reason: "must be in [0, 1)"}
	}
	if req.Costs.FactoringFeePct < 0 || req.Costs.FactoringFeePct >= 1 {
		return &quote.ValidationError{Field: "costs.factoring_fee_pct", Reason: "must be in [0, 1)"}
	}
	if req.Costs.FixedMonthlyCosts < 0 || req.Costs.DCFees < 0 {
		return &quote.ValidationError{Field: "costs", Reason: "fees must be non-negative"}
	}

	return nil
}
