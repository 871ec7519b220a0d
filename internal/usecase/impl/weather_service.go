package impl

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"lanerate/internal/domain/provider"
	"lanerate/internal/domain/quote"
	"lanerate/internal/usecase"

	"go.uber.org/fx"
)

// WeatherServiceParams holds dependencies for the weather assessor, injected by Fx.
type WeatherServiceParams struct {
	fx.In

	Logger *slog.Logger
	API    provider.WeatherAPI `optional:"true"`
}

type weatherService struct {
	api    provider.WeatherAPI
	logger *slog.Logger
}

// NewWeatherService creates the weather risk assessor.
func NewWeatherService(params WeatherServiceParams) usecase.WeatherUsecase {
	return &weatherService{api: params.API, logger: params.Logger}
}

// RouteWeather fetches origin and destination forecasts independently and
// classifies the worse of the two. Any failure, missing coordinate, or
// out-of-horizon date degrades to nil rather than an error.
func (s *weatherService) RouteWeather(ctx context.Context, origin, dest *quote.LatLng, date time.Time) *quote.WeatherData {
	if s.api == nil {
		return nil
	}

	originFc := s.forecast(ctx, origin, date, "origin")
	destFc := s.forecast(ctx, dest, date, "destination")
	if originFc == nil && destFc == nil {
		return nil
	}

	worst := worstForecast(originFc, destFc)
	hz := foldHazards(originFc, destFc)

	return &quote.WeatherData{
		Origin:         originFc,
		Destination:    destFc,
		RouteCondition: worst.Condition,
		Risk:           classifyRisk(worst.Condition, hz),
		Advisories:     advisories(worst.Condition, hz),
	}
}

// hazards folds both endpoint forecasts into the extremes that drive the
// threshold checks: strongest wind, worst reported visibility, heaviest
// precipitation. A hazard at either endpoint affects the whole trip.
type hazards struct {
	windMph         float64
	visibilityMiles float64 // 0 means unreported
	precipIn        float64
}

func foldHazards(fcs ...*quote.Forecast) hazards {
	var hz hazards
	for _, fc := range fcs {
		if fc == nil {
			continue
		}
		if fc.WindSpeedMph > hz.windMph {
			hz.windMph = fc.WindSpeedMph
		}
		if fc.VisibilityMiles > 0 && (hz.visibilityMiles == 0 || fc.VisibilityMiles < hz.visibilityMiles) {
			hz.visibilityMiles = fc.VisibilityMiles
		}
		if fc.PrecipitationIn > hz.precipIn {
			hz.precipIn = fc.PrecipitationIn
		}
	}

	return hz
}

func (s *weatherService) forecast(ctx context.Context, at *quote.LatLng, date time.Time, endpoint string) *quote.Forecast {
	if at == nil {
		return nil
	}

	fc, err := s.api.Forecast(ctx, *at, date)
	if err != nil {
		s.logger.Warn("weather forecast failed",
			slog.String("endpoint", endpoint),
			slog.Any("error", err),
		)

		return nil
	}

	return fc
}

// worstForecast picks the endpoint forecast with the more severe condition.
// At least one argument must be non-nil.
func worstForecast(a, b *quote.Forecast) *quote.Forecast {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}

	if b.Condition.Severity() > a.Condition.Severity() {
		return b
	}

	return a
}

// classifyRisk maps the route condition and folded hazards to a risk level.
// The condition sets the base level; wind, visibility and precipitation can
// only raise it.
func classifyRisk(condition quote.WeatherCondition, hz hazards) quote.RiskLevel {
	risk := quote.RiskLow
	switch condition {
	case quote.ConditionStorm, quote.ConditionIce:
		risk = quote.RiskSevere
	case quote.ConditionSnow:
		risk = quote.RiskHigh
	case quote.ConditionRain, quote.ConditionFog:
		risk = quote.RiskModerate
	}

	if hz.visibilityMiles > 0 && hz.visibilityMiles <= 1 {
		return quote.RiskSevere
	}
	if hz.windMph >= 50 {
		risk = maxRisk(risk, quote.RiskHigh)
	}
	if hz.precipIn >= 1.0 {
		risk = maxRisk(risk, quote.RiskHigh)
	}

	return risk
}

var riskOrder = map[quote.RiskLevel]int{
	quote.RiskLow:      0,
	quote.RiskModerate: 1,
	quote.RiskHigh:     2,
	quote.RiskSevere:   3,
}

func maxRisk(a, b quote.RiskLevel) quote.RiskLevel {
	if riskOrder[b] > riskOrder[a] {
		return b
	}

	return a
}

// advisories renders driver-facing warnings from the route condition and the
// folded hazards. Always non-nil so the JSON field serializes as an array.
func advisories(condition quote.WeatherCondition, hz hazards) []string {
	out := []string{}

	if hz.windMph >= 40 {
		out = append(out, fmt.Sprintf("high winds up to %.0f mph, secure loads and expect crosswind restrictions", hz.windMph))
	}
	if hz.visibilityMiles > 0 && hz.visibilityMiles <= 2 {
		out = append(out, fmt.Sprintf("visibility reduced to %.1f miles", hz.visibilityMiles))
	}
	if condition == quote.ConditionSnow || condition == quote.ConditionIce {
		out = append(out, "winter conditions, chains may be required on mountain passes")
	}
	if hz.precipIn >= 0.5 {
		out = append(out, fmt.Sprintf("heavy precipitation expected, %.1f inches", hz.precipIn))
	}

	return out
}
