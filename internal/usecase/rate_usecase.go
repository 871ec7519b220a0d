// Package usecase defines the engine's use case interfaces. Implementations
// live in impl; delivery layers and tests depend only on these contracts.
package usecase

import (
	"context"

	"lanerate/internal/domain/quote"
)

// RateUsecase is the engine's public surface: one full quote calculation and
// the standalone toll/distance helpers collaborators can call directly.
type RateUsecase interface {
	// CalculateRate turns a raw shipment request into a fully costed,
	// market-aware quote. Fatal errors (validation, geocoding, no route)
	// propagate; provider failures degrade source and confidence tags only.
	CalculateRate(ctx context.Context, req *quote.RateRequest) (*quote.Quote, error)

	// CalculateTolls resolves the route and returns its toll breakdown,
	// falling back to the per-state heuristic when the API has nothing.
	CalculateTolls(ctx context.Context, origin, destination string, vehicleType quote.VehicleType) (*quote.TollBreakdown, error)

	// CalculateDistance resolves the route between two addresses.
	CalculateDistance(ctx context.Context, origin, destination string) (*quote.RouteResult, error)
}
