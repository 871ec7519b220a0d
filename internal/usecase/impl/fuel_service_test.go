package impl

import (
	"context"
	"testing"
	"time"

	"lanerate/internal/domain/provider"
	"lanerate/internal/domain/quote"
	"lanerate/internal/infra/cache"
	"lanerate/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFuelService(t *testing.T, api provider.FuelPriceAPI, c *cache.FuelPriceCache) usecase.FuelUsecase {
	t.Helper()

	if c == nil {
		c = cache.NewFuelPriceCache(24 * time.Hour)
	}

	return NewFuelService(FuelServiceParams{
		Logger: testLogger(),
		API:    api,
		Cache:  c,
		Static: testStatic(t),
	})
}

func TestFuelService_StaticFallbackWithoutProvider(t *testing.T) {
	svc := newTestFuelService(t, nil, nil)

	result := svc.StatePrice(context.Background(), "IL")
	require.NotNil(t, result)
	assert.Equal(t, quote.SourceFallback, result.Source)
	assert.Greater(t, result.PricePerGallon, 0.0)
	assert.True(t, result.LastUpdated.IsZero())
}

func TestFuelService_APISuccessPopulatesCache(t *testing.T) {
	api := &fakeFuelAPI{prices: map[string]float64{"IL": 3.99}}
	c := cache.NewFuelPriceCache(24 * time.Hour)
	svc := newTestFuelService(t, api, c)

	first := svc.StatePrice(context.Background(), "IL")
	assert.Equal(t, quote.SourceAPI, first.Source)
	assert.Equal(t, 3.99, first.PricePerGallon)

	// Second lookup is served from cache without touching the provider.
	second := svc.StatePrice(context.Background(), "IL")
	assert.Equal(t, quote.SourceCache, second.Source)
	assert.Equal(t, 3.99, second.PricePerGallon)
	assert.Equal(t, 1, api.calls)
}

func TestFuelService_StaleCacheBeatsStaticTable(t *testing.T) {
	c := cache.NewFuelPriceCache(10 * time.Millisecond)
	stale := quote.FuelPriceResult{
		PricePerGallon: 4.10,
		State:          "IL",
		LastUpdated:    time.Now().Add(-48 * time.Hour),
		Source:         quote.SourceAPI,
	}
	c.Put("IL", stale)
	// Let the entry expire without crossing the stale retention window.
	time.Sleep(20 * time.Millisecond)

	api := &fakeFuelAPI{err: quote.NewProviderUnavailable("fuel", nil)}
	svc := newTestFuelService(t, api, c)

	result := svc.StatePrice(context.Background(), "IL")
	assert.Equal(t, quote.SourceCache, result.Source)
	assert.Equal(t, 4.10, result.PricePerGallon)
	assert.Equal(t, stale.LastUpdated, result.LastUpdated)
}

func TestFuelService_RoutePriceEqualWeights(t *testing.T) {
	svc := newTestFuelService(t, nil, nil)
	ctx := context.Background()

	states := []string{"IL", "MO", "OK"}
	want := 0.0
	for _, state := range states {
		want += svc.StatePrice(ctx, state).PricePerGallon
	}
	want /= float64(len(states))

	result := svc.RoutePrice(ctx, states, nil)
	require.NotNil(t, result)
	assert.InDelta(t, want, result.PricePerGallon, 1e-6)
	assert.Equal(t, quote.SourceFallback, result.Source)
	assert.Equal(t, "IL,MO,OK", result.State)
}

func TestFuelService_RoutePriceMileWeighted(t *testing.T) {
	api := &fakeFuelAPI{prices: map[string]float64{"IL": 4.00, "IN": 3.00}}
	svc := newTestFuelService(t, api, nil)

	result := svc.RoutePrice(context.Background(), []string{"IL", "IN"}, map[string]float64{
		"IL": 300,
		"IN": 100,
	})
	require.NotNil(t, result)
	assert.InDelta(t, 3.75, result.PricePerGallon, 1e-6)
	assert.Equal(t, quote.SourceAPI, result.Source)
}

func TestFuelService_RoutePriceReportsWeakestSource(t *testing.T) {
	// IL resolves through the provider, MO falls back to the static table,
	// so the aggregate must carry the fallback tag.
	api := &fakeFuelAPI{prices: map[string]float64{"IL": 4.00}}
	svc := newTestFuelService(t, api, nil)

	result := svc.RoutePrice(context.Background(), []string{"IL", "MO"}, nil)
	require.NotNil(t, result)
	assert.Equal(t, quote.SourceFallback, result.Source)
	assert.True(t, result.LastUpdated.IsZero())
}

func TestFuelService_RefreshAll(t *testing.T) {
	api := &fakeFuelAPI{prices: map[string]float64{"IL": 3.99, "MO": 3.80}}
	c := cache.NewFuelPriceCache(24 * time.Hour)
	svc := newTestFuelService(t, api, c)

	result := svc.RefreshAll(context.Background())
	assert.Equal(t, 2, result.Updated)
	assert.Equal(t, 48, result.Failed)
	assert.Equal(t, 2, c.Len())
}

func TestFuelService_RefreshAllWithoutProvider(t *testing.T) {
	svc := newTestFuelService(t, nil, nil)

	result := svc.RefreshAll(context.Background())
	assert.Equal(t, 0, result.Updated)
	assert.Equal(t, 50, result.Failed)
}
