package impl

import (
	"math"

	"lanerate/config"
	"lanerate/internal/domain/quote"
	"lanerate/internal/errors"
	"lanerate/internal/usecase"

	"go.uber.org/fx"
)

// hotelShiftHours is the driving time that fits into one day of service;
// trips longer than this accrue overnight stays.
const hotelShiftHours = 11.0

// CostServiceParams holds dependencies for the cost model, injected by Fx.
type CostServiceParams struct {
	fx.In

	Config *config.Config
}

type costService struct {
	engine *config.EngineConfig
}

// NewCostService creates the cost model.
func NewCostService(params CostServiceParams) usecase.CostUsecase {
	return &costService{engine: params.Config.Engine}
}

// Build assembles the trip cost breakdown. Inputs must already carry their
// fallback substitutions; Build reports an error only on invalid vehicle data
// or a component that fails the breakdown's own validation.
func (s *costService) Build(
	route *quote.RouteResult,
	fuel *quote.FuelPriceResult,
	tolls *quote.TollBreakdown,
	vehicle quote.VehicleSpecs,
	costs quote.OperatingCosts,
) (*quote.CostBreakdown, error) {
	if route == nil || fuel == nil || tolls == nil {
		return nil, errors.New("cost model requires route, fuel and toll inputs")
	}
	if vehicle.MPG <= 0 {
		return nil, &quote.ValidationError{Field: "vehicle.mpg", Reason: "must be positive"}
	}

	miles := route.DistanceMiles

	fuelCost := miles / vehicle.MPG * fuel.PricePerGallon
	defCost := fuelCost * s.engine.DefFraction
	maintenance := miles * s.engine.MaintenanceRate
	tires := miles * s.engine.TireRate
	fixedAllocation := costs.FixedMonthlyCosts / s.engine.MilesPerMonth * miles
	hotel := s.hotelCost(route.DurationHours)

	subtotal := fuelCost + defCost + maintenance + tires + tolls.TotalTolls +
		fixedAllocation + costs.DCFees + hotel

	serviceFees := subtotal * costs.ServiceFeePct
	factoringFee := subtotal * costs.FactoringFeePct

	return quote.NewCostBreakdown(
		fuelCost,
		defCost,
		maintenance,
		tires,
		tolls.TotalTolls,
		fixedAllocation,
		costs.DCFees,
		hotel,
		serviceFees,
		factoringFee,
	)
}

// hotelCost charges one night for every service day beyond the first.
func (s *costService) hotelCost(durationHours float64) float64 {
	if durationHours <= hotelShiftHours {
		return 0
	}

	nights := math.Ceil(durationHours/hotelShiftHours) - 1

	return nights * s.engine.HotelNightlyRate
}
