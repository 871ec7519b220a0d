package impl

import (
	"context"
	"testing"

	"lanerate/internal/domain/provider"
	"lanerate/internal/domain/quote"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouteService(t *testing.T, truck provider.TruckRouter, mapping provider.MappingRouter) *routeService {
	t.Helper()

	svc := NewRouteService(RouteServiceParams{
		Logger:  testLogger(),
		Truck:   truck,
		Mapping: mapping,
		Static:  testStatic(t),
	})

	return svc.(*routeService)
}

func TestRouteService_StraightLineFallback(t *testing.T) {
	svc := newTestRouteService(t, nil, nil)

	route, err := svc.Resolve(context.Background(), "Chicago, IL", "Los Angeles, CA", nil)
	require.NoError(t, err)

	assert.Equal(t, quote.RoutingFallback, route.Provider)
	assert.Greater(t, route.DistanceMiles, 0.0)
	assert.Greater(t, route.DurationHours, 0.0)
	assert.NotEmpty(t, route.StatesCrossed)
	assert.Equal(t, "IL", route.OriginState())
	assert.Equal(t, "CA", route.DestState())

	// Distance must be the great-circle distance scaled by the road factor.
	straight := geo.Distance(
		orb.Point{route.OriginPoint.Lng, route.OriginPoint.Lat},
		orb.Point{route.DestPoint.Lng, route.DestPoint.Lat},
	) / metersPerMile
	assert.InDelta(t, straight*roadFactor, route.DistanceMiles, 0.01)
}

func TestRouteService_SameStateFallback(t *testing.T) {
	svc := newTestRouteService(t, nil, nil)

	// Offline geocoding puts both endpoints on the IL centroid; the lane must
	// still resolve as a short in-state leg.
	route, err := svc.Resolve(context.Background(), "Chicago, IL", "Springfield, IL", nil)
	require.NoError(t, err)

	assert.Equal(t, quote.RoutingFallback, route.Provider)
	assert.Equal(t, []string{"IL"}, route.StatesCrossed)
	assert.Greater(t, route.DistanceMiles, 0.0)
	assert.Greater(t, route.DurationHours, 0.0)
	assert.InDelta(t, route.DistanceMiles, route.StateMiles["IL"], 1e-9)
}

func TestRouteService_FallbackIsDeterministic(t *testing.T) {
	svc := newTestRouteService(t, nil, nil)

	first, err := svc.Resolve(context.Background(), "Dallas, TX", "Atlanta, GA", nil)
	require.NoError(t, err)
	second, err := svc.Resolve(context.Background(), "Dallas, TX", "Atlanta, GA", nil)
	require.NoError(t, err)

	assert.Equal(t, first.DistanceMiles, second.DistanceMiles)
	assert.Equal(t, first.StatesCrossed, second.StatesCrossed)
}

func TestRouteService_ProviderFailuresAdvanceChain(t *testing.T) {
	truck := &fakeTruckRouter{err: quote.NewProviderTimeout("truck-routing", 0)}
	mapping := &fakeMappingRouter{
		geocodes: map[string]*provider.Geocoded{
			"Chicago, IL":     {Point: quote.LatLng{Lat: 41.88, Lng: -87.63}, Formatted: "Chicago, IL", State: "IL"},
			"Los Angeles, CA": {Point: quote.LatLng{Lat: 34.05, Lng: -118.24}, Formatted: "Los Angeles, CA", State: "CA"},
		},
		routeErr: quote.NewProviderUnavailable("mapping", nil),
	}
	svc := newTestRouteService(t, truck, mapping)

	specs := &quote.VehicleSpecs{Type: quote.VehicleSemi, MPG: 6.5}
	route, err := svc.Resolve(context.Background(), "Chicago, IL", "Los Angeles, CA", specs)
	require.NoError(t, err)

	// Both provider tiers failed, so the straight-line estimate wins, built
	// on the coordinates the mapping tier already geocoded.
	assert.Equal(t, quote.RoutingFallback, route.Provider)
	assert.InDelta(t, 41.88, route.OriginPoint.Lat, 0.001)
	assert.Greater(t, route.DistanceMiles, 1500.0)
}

func TestRouteService_TruckTierWins(t *testing.T) {
	want := &quote.RouteResult{
		DistanceMiles: 2015,
		DurationHours: 30,
		StatesCrossed: []string{"IL", "MO", "OK", "TX", "NM", "AZ", "CA"},
		Provider:      quote.RoutingPrimary,
	}
	svc := newTestRouteService(t, &fakeTruckRouter{route: want}, nil)

	specs := &quote.VehicleSpecs{Type: quote.VehicleSemi, MPG: 6.5}
	route, err := svc.Resolve(context.Background(), "Chicago, IL", "Los Angeles, CA", specs)
	require.NoError(t, err)
	assert.Equal(t, want, route)
}

func TestRouteService_NilSpecsSkipTruckTier(t *testing.T) {
	truck := &fakeTruckRouter{route: &quote.RouteResult{Provider: quote.RoutingPrimary}}
	svc := newTestRouteService(t, truck, nil)

	route, err := svc.Resolve(context.Background(), "Chicago, IL", "Los Angeles, CA", nil)
	require.NoError(t, err)
	assert.Equal(t, quote.RoutingFallback, route.Provider)
}

func TestRouteService_UnresolvableAddress(t *testing.T) {
	svc := newTestRouteService(t, nil, nil)

	_, err := svc.Resolve(context.Background(), "Somewhere", "Los Angeles, CA", nil)
	require.Error(t, err)

	var geocodeErr *quote.GeocodeError
	assert.ErrorAs(t, err, &geocodeErr)
}

func TestRouteService_EmptyInput(t *testing.T) {
	svc := newTestRouteService(t, nil, nil)

	_, err := svc.Resolve(context.Background(), "", "Los Angeles, CA", nil)
	var validationErr *quote.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "origin", validationErr.Field)
}

func TestRouteService_StateMilesCoverDistance(t *testing.T) {
	svc := newTestRouteService(t, nil, nil)

	route, err := svc.Resolve(context.Background(), "Miami, FL", "Seattle, WA", nil)
	require.NoError(t, err)

	var total float64
	for _, miles := range route.StateMiles {
		total += miles
	}
	assert.InDelta(t, route.DistanceMiles, total, route.DistanceMiles*0.01)
}

func TestExtractStateCode(t *testing.T) {
	static := testStatic(t)

	tests := []struct {
		address string
		want    string
	}{
		{"Chicago, IL", "IL"},
		{"Chicago, IL 60601", "IL"},
		{"austin, tx", "TX"},
		{"Nowhere", ""},
		{"ZZ", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, extractStateCode(tt.address, static), tt.address)
	}
}
