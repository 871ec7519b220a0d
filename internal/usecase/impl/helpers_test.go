package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"lanerate/config"
	"lanerate/internal/domain/provider"
	"lanerate/internal/domain/quote"
	"lanerate/internal/infra/staticdata"

	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testStatic(t *testing.T) *staticdata.Data {
	t.Helper()

	data, err := staticdata.New()
	require.NoError(t, err)

	return data
}

func testEngineConfig() *config.Config {
	cfg := &config.Config{
		Engine: &config.EngineConfig{
			DefFraction:      0.03,
			MaintenanceRate:  0.18,
			TireRate:         0.04,
			MilesPerMonth:    10000,
			HotelNightlyRate: 125,
			MinimumMargin:    0.10,
			CostPlusMargin:   0.15,
		},
	}

	return cfg
}

type fakeTruckRouter struct {
	route *quote.RouteResult
	err   error
}

func (f *fakeTruckRouter) Route(_ context.Context, _, _ string, _ quote.VehicleSpecs) (*quote.RouteResult, error) {
	return f.route, f.err
}

type fakeMappingRouter struct {
	geocodes map[string]*provider.Geocoded
	geoErr   error
	path     *provider.RoutePath
	routeErr error
}

func (f *fakeMappingRouter) Geocode(_ context.Context, address string) (*provider.Geocoded, error) {
	if f.geoErr != nil {
		return nil, f.geoErr
	}
	if g, ok := f.geocodes[address]; ok {
		return g, nil
	}

	return nil, &quote.GeocodeError{Address: address}
}

func (f *fakeMappingRouter) Route(_ context.Context, _, _ quote.LatLng) (*provider.RoutePath, error) {
	return f.path, f.routeErr
}

type fakeFuelAPI struct {
	prices map[string]float64
	err    error
	calls  int
}

func (f *fakeFuelAPI) StatePrice(_ context.Context, state string) (*provider.StatePrice, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	price, ok := f.prices[state]
	if !ok {
		return nil, quote.NewProviderUnavailable("fuel", nil)
	}

	return &provider.StatePrice{State: state, PricePerGallon: price, AsOf: time.Now()}, nil
}

type fakeTollAPI struct {
	breakdown *quote.TollBreakdown
	err       error
}

func (f *fakeTollAPI) Calculate(_ context.Context, _, _ quote.LatLng, _ string) (*quote.TollBreakdown, error) {
	return f.breakdown, f.err
}

type fakeWeatherAPI struct {
	forecasts map[quote.LatLng]*quote.Forecast
	err       error
}

func (f *fakeWeatherAPI) Forecast(_ context.Context, at quote.LatLng, _ time.Time) (*quote.Forecast, error) {
	if f.err != nil {
		return nil, f.err
	}

	return f.forecasts[at], nil
}
