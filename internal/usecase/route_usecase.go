package usecase

import (
	"context"

	"lanerate/internal/domain/provider"
	"lanerate/internal/domain/quote"
)

// RouteUsecase resolves origin→destination legs through an ordered provider
// chain: truck-legal router, generic mapping router, straight-line estimate.
// The first tier to succeed wins; provider failures advance the chain.
type RouteUsecase interface {
	// Resolve returns a route whose states-crossed sequence is populated in
	// every tier, including the straight-line fallback. Specs may be nil,
	// which skips the truck-legal tier.
	Resolve(ctx context.Context, origin, destination string, specs *quote.VehicleSpecs) (*quote.RouteResult, error)

	// Geocode resolves a single address. Fails with GeocodeError when the
	// address is unresolvable; the error propagates to the caller.
	Geocode(ctx context.Context, address string) (*provider.Geocoded, error)
}
