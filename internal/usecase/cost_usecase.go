package usecase

import (
	"lanerate/internal/domain/quote"
)

// CostUsecase builds the layered cost breakdown. Every upstream input must
// already be substituted by its fallback; the cost model never coerces
// missing values at summation time.
type CostUsecase interface {
	Build(
		route *quote.RouteResult,
		fuel *quote.FuelPriceResult,
		tolls *quote.TollBreakdown,
		vehicle quote.VehicleSpecs,
		costs quote.OperatingCosts,
	) (*quote.CostBreakdown, error)
}
