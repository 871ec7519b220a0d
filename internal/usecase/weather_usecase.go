package usecase

import (
	"context"
	"time"

	"lanerate/internal/domain/quote"
)

// WeatherUsecase assesses route-level weather risk. Weather is advisory
// only: the assessment is nil when no forecast is available and never fails
// the quote.
type WeatherUsecase interface {
	// RouteWeather fetches origin and destination forecasts independently
	// (either may be missing) and classifies the worse of the two.
	RouteWeather(ctx context.Context, origin, dest *quote.LatLng, date time.Time) *quote.WeatherData
}
