package impl

import (
	"context"
	"testing"
	"time"

	"lanerate/internal/domain/provider"
	"lanerate/internal/domain/quote"
	"lanerate/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	chicagoPt = quote.LatLng{Lat: 41.88, Lng: -87.63}
	denverPt  = quote.LatLng{Lat: 39.74, Lng: -104.99}
)

func newTestWeatherService(api provider.WeatherAPI) usecase.WeatherUsecase {
	return NewWeatherService(WeatherServiceParams{Logger: testLogger(), API: api})
}

func TestWeatherService_NilWithoutProvider(t *testing.T) {
	svc := newTestWeatherService(nil)

	data := svc.RouteWeather(context.Background(), &chicagoPt, &denverPt, time.Now())
	assert.Nil(t, data)
}

func TestWeatherService_NilOnProviderFailure(t *testing.T) {
	svc := newTestWeatherService(&fakeWeatherAPI{err: quote.NewProviderUnavailable("weather", nil)})

	data := svc.RouteWeather(context.Background(), &chicagoPt, &denverPt, time.Now())
	assert.Nil(t, data)
}

func TestWeatherService_WorstConditionWins(t *testing.T) {
	api := &fakeWeatherAPI{forecasts: map[quote.LatLng]*quote.Forecast{
		chicagoPt: {Condition: quote.ConditionClear, VisibilityMiles: 10},
		denverPt:  {Condition: quote.ConditionSnow, VisibilityMiles: 5, PrecipitationIn: 0.8},
	}}
	svc := newTestWeatherService(api)

	data := svc.RouteWeather(context.Background(), &chicagoPt, &denverPt, time.Now())
	require.NotNil(t, data)
	assert.Equal(t, quote.ConditionSnow, data.RouteCondition)
	assert.Equal(t, quote.RiskHigh, data.Risk)
	assert.NotEmpty(t, data.Advisories)
}

func TestWeatherService_PartialForecast(t *testing.T) {
	api := &fakeWeatherAPI{forecasts: map[quote.LatLng]*quote.Forecast{
		chicagoPt: {Condition: quote.ConditionRain, VisibilityMiles: 6, PrecipitationIn: 0.2},
	}}
	svc := newTestWeatherService(api)

	data := svc.RouteWeather(context.Background(), &chicagoPt, &denverPt, time.Now())
	require.NotNil(t, data)
	assert.NotNil(t, data.Origin)
	assert.Nil(t, data.Destination)
	assert.Equal(t, quote.ConditionRain, data.RouteCondition)
	assert.Equal(t, quote.RiskModerate, data.Risk)
	assert.NotNil(t, data.Advisories)
	assert.Empty(t, data.Advisories)
}

func TestWeatherService_IceReadsSevere(t *testing.T) {
	api := &fakeWeatherAPI{forecasts: map[quote.LatLng]*quote.Forecast{
		chicagoPt: {Condition: quote.ConditionIce, VisibilityMiles: 4},
	}}
	svc := newTestWeatherService(api)

	data := svc.RouteWeather(context.Background(), &chicagoPt, nil, time.Now())
	require.NotNil(t, data)
	assert.Equal(t, quote.RiskSevere, data.Risk)
	assert.Contains(t, data.Advisories[0], "winter conditions")
}

func TestClassifyRisk_Bumps(t *testing.T) {
	tests := []struct {
		name string
		fc   quote.Forecast
		want quote.RiskLevel
	}{
		{"clear calm", quote.Forecast{Condition: quote.ConditionClear, VisibilityMiles: 10}, quote.RiskLow},
		{"clear but gale winds", quote.Forecast{Condition: quote.ConditionClear, VisibilityMiles: 10, WindSpeedMph: 55}, quote.RiskHigh},
		{"fog near whiteout", quote.Forecast{Condition: quote.ConditionFog, VisibilityMiles: 0.5}, quote.RiskSevere},
		{"rain heavy precip", quote.Forecast{Condition: quote.ConditionRain, VisibilityMiles: 7, PrecipitationIn: 1.5}, quote.RiskHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifyRisk(tt.fc.Condition, foldHazards(&tt.fc)))
		})
	}
}

func TestWeatherService_HazardsSpanEndpoints(t *testing.T) {
	// The destination has the worse condition, but the origin carries the
	// near-whiteout visibility. Both endpoints must count.
	api := &fakeWeatherAPI{forecasts: map[quote.LatLng]*quote.Forecast{
		chicagoPt: {Condition: quote.ConditionCloudy, VisibilityMiles: 0.5},
		denverPt:  {Condition: quote.ConditionRain, VisibilityMiles: 8, PrecipitationIn: 0.2},
	}}
	svc := newTestWeatherService(api)

	data := svc.RouteWeather(context.Background(), &chicagoPt, &denverPt, time.Now())
	require.NotNil(t, data)
	assert.Equal(t, quote.ConditionRain, data.RouteCondition)
	assert.Equal(t, quote.RiskSevere, data.Risk)
	require.NotEmpty(t, data.Advisories)
	assert.Contains(t, data.Advisories[0], "visibility reduced")
}
