package impl

import (
	"context"
	"log/slog"

	"lanerate/internal/domain/provider"
	"lanerate/internal/domain/quote"
	"lanerate/internal/infra/staticdata"
	"lanerate/internal/usecase"

	"go.uber.org/fx"
)

// transponderDiscount is the assumed transponder tariff relative to cash in
// the heuristic estimate.
const transponderDiscount = 0.92

// vehicleClasses maps the engine's vehicle types onto the toll provider's
// class vocabulary.
var vehicleClasses = map[quote.VehicleType]string{
	quote.VehicleSemi:     "5AxlesTruck",
	quote.VehicleBoxTruck: "3AxlesTruck",
	quote.VehicleHotshot:  "2AxlesTruck",
	quote.VehicleCargoVan: "2AxlesVehicle",
}

// TollServiceParams holds dependencies for the toll estimator, injected by Fx.
type TollServiceParams struct {
	fx.In

	Logger *slog.Logger
	API    provider.TollAPI `optional:"true"`
	Static *staticdata.Data
}

type tollService struct {
	api    provider.TollAPI
	static *staticdata.Data
	logger *slog.Logger
}

// NewTollService creates the toll estimator.
func NewTollService(params TollServiceParams) usecase.TollUsecase {
	return &tollService{
		api:    params.API,
		static: params.Static,
		logger: params.Logger,
	}
}

// Calculate queries the tolling provider. Returns nil when the provider is
// unconfigured, unreachable, or has no toll data for the route; the caller
// falls through to EstimateFallback in every nil case.
func (s *tollService) Calculate(ctx context.Context, origin, dest quote.LatLng, vehicleType quote.VehicleType) *quote.TollBreakdown {
	if s.api == nil {
		return nil
	}

	class, ok := vehicleClasses[vehicleType]
	if !ok {
		class = vehicleClasses[quote.VehicleSemi]
	}

	tolls, err := s.api.Calculate(ctx, origin, dest, class)
	if err != nil {
		s.logger.Warn("toll provider failed", slog.Any("error", err))

		return nil
	}

	return tolls
}

// EstimateFallback is the deterministic heuristic: per-state average toll
// rate times miles driven in that state, quoted at the transponder tariff.
// States are weighted equally when no mile split is known.
func (s *tollService) EstimateFallback(distanceMiles float64, states []string, stateMiles map[string]float64) *quote.TollBreakdown {
	breakdown := &quote.TollBreakdown{
		TollsByState: make(map[string]float64),
		Source:       quote.SourceFallback,
	}

	for _, state := range states {
		rate := s.static.TollRatePerMile(state)
		if rate <= 0 {
			continue
		}

		miles := 0.0
		if stateMiles != nil {
			miles = stateMiles[state]
		}
		if miles <= 0 && len(states) > 0 {
			miles = distanceMiles / float64(len(states))
		}

		cash := rate * miles
		if cash <= 0 {
			continue
		}

		transponder := cash * transponderDiscount
		breakdown.TollsByState[state] += transponder
		breakdown.CashTolls += cash
		breakdown.TransponderTolls += transponder
		breakdown.TollCount++
	}

	// Quote totals at the transponder tariff, matching the provider path.
	breakdown.TotalTolls = breakdown.TransponderTolls

	return breakdown
}
