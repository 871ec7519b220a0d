package impl

import (
	"context"
	"testing"

	"lanerate/internal/domain/provider"
	"lanerate/internal/domain/quote"
	"lanerate/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTollService(t *testing.T, api provider.TollAPI) usecase.TollUsecase {
	t.Helper()

	return NewTollService(TollServiceParams{
		Logger: testLogger(),
		API:    api,
		Static: testStatic(t),
	})
}

func TestTollService_CalculateWithoutProvider(t *testing.T) {
	svc := newTestTollService(t, nil)

	tolls := svc.Calculate(context.Background(), quote.LatLng{}, quote.LatLng{}, quote.VehicleSemi)
	assert.Nil(t, tolls)
}

func TestTollService_CalculateAbsorbsProviderFailure(t *testing.T) {
	svc := newTestTollService(t, &fakeTollAPI{err: quote.NewProviderTimeout("toll", 0)})

	tolls := svc.Calculate(context.Background(), quote.LatLng{}, quote.LatLng{}, quote.VehicleSemi)
	assert.Nil(t, tolls)
}

func TestTollService_CalculatePassesThrough(t *testing.T) {
	want := &quote.TollBreakdown{TotalTolls: 42.50, Source: quote.SourceAPI}
	svc := newTestTollService(t, &fakeTollAPI{breakdown: want})

	tolls := svc.Calculate(context.Background(), quote.LatLng{}, quote.LatLng{}, quote.VehicleBoxTruck)
	assert.Equal(t, want, tolls)
}

func TestTollService_EstimateFallback(t *testing.T) {
	svc := newTestTollService(t, nil)

	// NJ and PA carry toll mileage in the reference table; MO is toll-free
	// there and must not contribute.
	states := []string{"MO", "PA", "NJ"}
	stateMiles := map[string]float64{"MO": 150, "PA": 200, "NJ": 80}

	tolls := svc.EstimateFallback(430, states, stateMiles)
	require.NotNil(t, tolls)
	assert.Equal(t, quote.SourceFallback, tolls.Source)
	assert.Greater(t, tolls.TotalTolls, 0.0)
	assert.NotContains(t, tolls.TollsByState, "MO")

	var sum float64
	for _, v := range tolls.TollsByState {
		sum += v
	}
	assert.InDelta(t, tolls.TotalTolls, sum, 1e-9)
	assert.Equal(t, len(tolls.TollsByState), tolls.TollCount)

	// The transponder tariff is discounted against cash.
	assert.Less(t, tolls.TransponderTolls, tolls.CashTolls)
	assert.InDelta(t, tolls.CashTolls*transponderDiscount, tolls.TransponderTolls, 1e-9)
}

func TestTollService_EstimateFallbackEqualSplit(t *testing.T) {
	svc := newTestTollService(t, nil)

	// No mile split known: each state gets an equal share of the distance.
	tolls := svc.EstimateFallback(300, []string{"PA", "NJ"}, nil)
	require.NotNil(t, tolls)
	assert.Greater(t, tolls.TollsByState["PA"], 0.0)
	assert.Greater(t, tolls.TollsByState["NJ"], 0.0)
}

func TestTollService_EstimateFallbackTollFreeRoute(t *testing.T) {
	svc := newTestTollService(t, nil)

	tolls := svc.EstimateFallback(500, []string{"MT", "WY"}, nil)
	require.NotNil(t, tolls)
	assert.Zero(t, tolls.TotalTolls)
	assert.Zero(t, tolls.TollCount)
	assert.Empty(t, tolls.TollsByState)
}
