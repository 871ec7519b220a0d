// Package provider defines the interfaces the engine consumes from external
// data providers. Infra clients implement them; tests substitute fakes.
package provider

import (
	"context"
	"time"

	"lanerate/internal/domain/quote"
)

// Geocoded is a resolved address.
type Geocoded struct {
	Point     quote.LatLng
	Formatted string
	State     string
}

// RoutePath is a generic-mapping route: distance, duration and the polyline
// the engine samples to derive states crossed.
type RoutePath struct {
	DistanceMiles float64
	DurationHours float64
	Geometry      []quote.LatLng
}

// StatePrice is one per-state diesel price observation.
type StatePrice struct {
	State          string
	PricePerGallon float64
	AsOf           time.Time
}

// TruckRouter is the truck-legal routing provider (primary tier). It respects
// height/weight/hazmat restrictions and reports a per-state mile split.
type TruckRouter interface {
	Route(ctx context.Context, origin, destination string, specs quote.VehicleSpecs) (*quote.RouteResult, error)
}

// MappingRouter is the generic geocoding/routing provider (secondary tier).
type MappingRouter interface {
	Geocode(ctx context.Context, address string) (*Geocoded, error)
	Route(ctx context.Context, from, to quote.LatLng) (*RoutePath, error)
}

// FuelPriceAPI looks up the current diesel price for one state.
type FuelPriceAPI interface {
	StatePrice(ctx context.Context, state string) (*StatePrice, error)
}

// TollAPI calculates route tolls for a provider vehicle class. A nil result
// with nil error means the provider had no toll data for the route, which is
// distinct from provider failure but handled by the same caller-side fallback.
type TollAPI interface {
	Calculate(ctx context.Context, origin, dest quote.LatLng, vehicleClass string) (*quote.TollBreakdown, error)
}

// WeatherAPI fetches a point forecast. A nil result with nil error means the
// date is outside the provider's forecast horizon.
type WeatherAPI interface {
	Forecast(ctx context.Context, at quote.LatLng, date time.Time) (*quote.Forecast, error)
}
