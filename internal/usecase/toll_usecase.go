package usecase

import (
	"context"

	"lanerate/internal/domain/quote"
)

// TollUsecase estimates route tolls.
type TollUsecase interface {
	// Calculate queries the tolling API. A nil result means the provider was
	// unreachable or had no toll data; both cases fall through to
	// EstimateFallback on the caller side.
	Calculate(ctx context.Context, origin, dest quote.LatLng, vehicleType quote.VehicleType) *quote.TollBreakdown

	// EstimateFallback is the deterministic per-state heuristic. It always
	// succeeds; total tolls equal the sum of the per-state values.
	EstimateFallback(distanceMiles float64, states []string, stateMiles map[string]float64) *quote.TollBreakdown
}
