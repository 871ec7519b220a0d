package httpapi

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"time"

	"lanerate/config"
	"lanerate/internal/domain/provider"
	"lanerate/internal/domain/quote"
)

// forecastHorizon is how far out the provider publishes daily forecasts.
const forecastHorizon = 14 * 24 * time.Hour

// WeatherClient fetches daily point forecasts.
type WeatherClient struct {
	client
	now func() time.Time
}

// NewWeatherClient builds the forecast client, nil when unconfigured.
func NewWeatherClient(cfg config.ProviderConfig) *WeatherClient {
	if !cfg.Enabled() {
		return nil
	}

	return &WeatherClient{client: newClient("weather", cfg), now: time.Now}
}

type forecastResponse struct {
	Condition       string  `json:"condition"`
	TemperatureF    float64 `json:"temperature_f"`
	PrecipitationIn float64 `json:"precipitation_in"`
	VisibilityMiles float64 `json:"visibility_miles"`
	WindSpeedMph    float64 `json:"wind_speed_mph"`
}

// Forecast fetches the forecast for a point and date. Returns (nil, nil)
// when the date falls outside the forecast horizon or the provider has no
// data for the location.
func (c *WeatherClient) Forecast(ctx context.Context, at quote.LatLng, date time.Time) (*quote.Forecast, error) {
	if date.After(c.now().Add(forecastHorizon)) {
		return nil, nil
	}

	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(at.Lat, 'f', 4, 64))
	q.Set("lon", strconv.FormatFloat(at.Lng, 'f', 4, 64))
	q.Set("date", date.Format("2006-01-02"))

	var resp forecastResponse
	if err := c.getJSON(ctx, "/v1/forecast/daily", q, &resp); err != nil {
		if notFound(err) {
			return nil, nil
		}

		return nil, err
	}

	return &quote.Forecast{
		Condition:       mapCondition(resp.Condition),
		TemperatureF:    resp.TemperatureF,
		PrecipitationIn: resp.PrecipitationIn,
		VisibilityMiles: resp.VisibilityMiles,
		WindSpeedMph:    resp.WindSpeedMph,
	}, nil
}

// mapCondition folds the provider's condition vocabulary onto the internal
// severity-ordered enum. Unrecognized values degrade to cloudy rather than
// clear so an odd label never reads as "no risk".
func mapCondition(s string) quote.WeatherCondition {
	switch strings.ToLower(s) {
	case "clear", "sunny":
		return quote.ConditionClear
	case "clouds", "cloudy", "overcast", "partly_cloudy":
		return quote.ConditionCloudy
	case "rain", "drizzle", "showers", "thunderstorm_light":
		return quote.ConditionRain
	case "fog", "mist", "haze", "smoke":
		return quote.ConditionFog
	case "snow", "flurries", "blizzard":
		return quote.ConditionSnow
	case "ice", "sleet", "freezing_rain":
		return quote.ConditionIce
	case "storm", "thunderstorm", "severe":
		return quote.ConditionStorm
	default:
		return quote.ConditionCloudy
	}
}

var _ provider.WeatherAPI = (*WeatherClient)(nil)
