package impl

import (
	"context"
	"log/slog"
	"math"
	"strings"

	"lanerate/internal/domain/provider"
	"lanerate/internal/domain/quote"
	"lanerate/internal/infra/staticdata"
	"lanerate/internal/usecase"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"go.uber.org/fx"
)

const (
	// roadFactor approximates road distance from the great-circle distance.
	roadFactor = 1.30
	// fallbackSpeedMph estimates duration when no provider reports one.
	fallbackSpeedMph = 50.0
	// sampleSpacingMiles spaces the waypoints used to attribute the route to
	// states in fallback mode.
	sampleSpacingMiles = 25.0
	// maxRouteSamples caps the state-attribution work on long polylines.
	maxRouteSamples = 96
	// intrastateFallbackMiles stands in for a same-centroid leg, where offline
	// geocoding collapses both in-state endpoints onto the state centroid.
	intrastateFallbackMiles = 100.0

	metersPerMile = 1609.344
)

// RouteServiceParams holds dependencies for the route resolver, injected by Fx.
type RouteServiceParams struct {
	fx.In

	Logger  *slog.Logger
	Truck   provider.TruckRouter   `optional:"true"`
	Mapping provider.MappingRouter `optional:"true"`
	Static  *staticdata.Data
}

type routeService struct {
	truck   provider.TruckRouter
	mapping provider.MappingRouter
	static  *staticdata.Data
	logger  *slog.Logger
}

// NewRouteService creates the route resolver. Unconfigured provider tiers
// arrive as nil and are skipped.
func NewRouteService(params RouteServiceParams) usecase.RouteUsecase {
	return &routeService{
		truck:   params.Truck,
		mapping: params.Mapping,
		static:  params.Static,
		logger:  params.Logger,
	}
}

// Resolve tries the provider chain in order: truck-legal router, generic
// mapping router, straight-line estimate. Provider failures and timeouts
// advance the chain; only geocoding failures and chain exhaustion are fatal.
func (s *routeService) Resolve(ctx context.Context, origin, destination string, specs *quote.VehicleSpecs) (*quote.RouteResult, error) {
	if strings.TrimSpace(origin) == "" {
		return nil, &quote.ValidationError{Field: "origin", Reason: "must be non-empty"}
	}
	if strings.TrimSpace(destination) == "" {
		return nil, &quote.ValidationError{Field: "destination", Reason: "must be non-empty"}
	}

	if s.truck != nil && specs != nil {
		route, err := s.truck.Route(ctx, origin, destination, *specs)
		if err == nil {
			return route, nil
		}
		if !quote.IsProviderFailure(err) {
			return nil, err
		}
		s.warn("truck routing tier failed", err)
	}

	// The mapping tier may fail after geocoding succeeded; keep the
	// coordinates so the straight-line tier does not re-geocode.
	var originGeo, destGeo *provider.Geocoded

	if s.mapping != nil {
		route, og, dg, err := s.resolveMapping(ctx, origin, destination)
		if err == nil {
			return route, nil
		}
		if !quote.IsProviderFailure(err) {
			return nil, err
		}
		s.warn("mapping tier failed", err)
		originGeo, destGeo = og, dg
	}

	return s.resolveStraightLine(ctx, origin, destination, originGeo, destGeo)
}

// Geocode resolves a single address through the mapping provider, or through
// the offline state-centroid table when no provider is configured.
func (s *routeService) Geocode(ctx context.Context, address string) (*provider.Geocoded, error) {
	if s.mapping != nil {
		g, err := s.mapping.Geocode(ctx, address)
		if err == nil || !quote.IsProviderFailure(err) {
			return g, err
		}
		s.warn("geocode provider failed", err)
	}

	return s.offlineGeocode(address)
}

// resolveMapping runs the secondary tier. Returns any geocodes it obtained
// even on failure so the fallback tier can reuse them.
func (s *routeService) resolveMapping(ctx context.Context, origin, destination string) (*quote.RouteResult, *provider.Geocoded, *provider.Geocoded, error) {
	og, err := s.mapping.Geocode(ctx, origin)
	if err != nil {
		return nil, nil, nil, err
	}

	dg, err := s.mapping.Geocode(ctx, destination)
	if err != nil {
		return nil, og, nil, err
	}

	path, err := s.mapping.Route(ctx, og.Point, dg.Point)
	if err != nil {
		return nil, og, dg, err
	}

	states, stateMiles := s.statesAlong(path.Geometry, path.DistanceMiles)
	if len(states) == 0 {
		states, stateMiles = s.statesBetween(og.Point, dg.Point, path.DistanceMiles)
	}

	duration := path.DurationHours
	if duration <= 0 {
		duration = path.DistanceMiles / fallbackSpeedMph
	}

	return &quote.RouteResult{
		DistanceMiles: path.DistanceMiles,
		DurationHours: duration,
		Origin:        og.Formatted,
		Destination:   dg.Formatted,
		OriginPoint:   &og.Point,
		DestPoint:     &dg.Point,
		StatesCrossed: states,
		StateMiles:    stateMiles,
		Provider:      quote.RoutingSecondary,
	}, og, dg, nil
}

// resolveStraightLine is the last tier: great-circle distance scaled by the
// road factor, duration from a fixed average speed, states from the
// centroid-sampling heuristic. It needs nothing but coordinates, so it only
// fails when neither the provider nor the offline table can place an address.
func (s *routeService) resolveStraightLine(ctx context.Context, origin, destination string, originGeo, destGeo *provider.Geocoded) (*quote.RouteResult, error) {
	var err error

	if originGeo == nil {
		if originGeo, err = s.Geocode(ctx, origin); err != nil {
			return nil, err
		}
	}
	if destGeo == nil {
		if destGeo, err = s.Geocode(ctx, destination); err != nil {
			return nil, err
		}
	}

	straight := geo.Distance(
		orb.Point{originGeo.Point.Lng, originGeo.Point.Lat},
		orb.Point{destGeo.Point.Lng, destGeo.Point.Lat},
	) / metersPerMile

	distance := straight * roadFactor
	if distance <= 0 {
		return s.resolveIntrastate(originGeo, destGeo)
	}

	states, stateMiles := s.statesBetween(originGeo.Point, destGeo.Point, distance)

	return &quote.RouteResult{
		DistanceMiles: distance,
		DurationHours: distance / fallbackSpeedMph,
		Origin:        originGeo.Formatted,
		Destination:   destGeo.Formatted,
		OriginPoint:   &originGeo.Point,
		DestPoint:     &destGeo.Point,
		StatesCrossed: states,
		StateMiles:    stateMiles,
		Provider:      quote.RoutingFallback,
	}, nil
}

// resolveIntrastate prices a lane whose endpoints resolved to the same point.
// Offline geocoding does this for every pair of in-state addresses, so a zero
// great-circle distance means a short intrastate leg, not an unroutable lane.
// All miles are attributed to the shared state.
func (s *routeService) resolveIntrastate(originGeo, destGeo *provider.Geocoded) (*quote.RouteResult, error) {
	state := originGeo.State
	if state == "" {
		state, _ = s.static.NearestState(originGeo.Point)
	}
	if state == "" {
		return nil, quote.ErrRouteUnavailable
	}

	return &quote.RouteResult{
		DistanceMiles: intrastateFallbackMiles,
		DurationHours: intrastateFallbackMiles / fallbackSpeedMph,
		Origin:        originGeo.Formatted,
		Destination:   destGeo.Formatted,
		OriginPoint:   &originGeo.Point,
		DestPoint:     &destGeo.Point,
		StatesCrossed: []string{state},
		StateMiles:    map[string]float64{state: intrastateFallbackMiles},
		Provider:      quote.RoutingFallback,
	}, nil
}

// offlineGeocode places an address on its state centroid, keyed on the state
// code in the address text. Coarse, but enough for the straight-line tier.
func (s *routeService) offlineGeocode(address string) (*provider.Geocoded, error) {
	state := extractStateCode(address, s.static)
	if state == "" {
		return nil, &quote.GeocodeError{Address: address}
	}

	info, ok := s.static.Lookup(state)
	if !ok {
		return nil, &quote.GeocodeError{Address: address}
	}

	return &provider.Geocoded{
		Point:     info.Centroid,
		Formatted: strings.TrimSpace(address),
		State:     state,
	}, nil
}

// statesBetween derives the traversal-ordered state sequence for a straight
// line by sampling points along it and snapping each to the nearest state
// centroid.
func (s *routeService) statesBetween(from, to quote.LatLng, totalMiles float64) ([]string, map[string]float64) {
	samples := int(math.Ceil(totalMiles / sampleSpacingMiles))
	if samples < 2 {
		samples = 2
	}
	if samples > maxRouteSamples {
		samples = maxRouteSamples
	}

	points := make([]quote.LatLng, 0, samples)
	for i := 0; i < samples; i++ {
		t := float64(i) / float64(samples-1)
		points = append(points, quote.LatLng{
			Lat: from.Lat + (to.Lat-from.Lat)*t,
			Lng: from.Lng + (to.Lng-from.Lng)*t,
		})
	}

	return s.statesAlong(points, totalMiles)
}

// statesAlong snaps each point of a polyline to its nearest state centroid,
// deduplicates consecutive hits into traversal order, and attributes an equal
// share of the total mileage to each sample.
func (s *routeService) statesAlong(points []quote.LatLng, totalMiles float64) ([]string, map[string]float64) {
	if len(points) == 0 {
		return nil, nil
	}

	sampled := points
	if len(sampled) > maxRouteSamples {
		step := float64(len(points)-1) / float64(maxRouteSamples-1)
		sampled = make([]quote.LatLng, 0, maxRouteSamples)
		for i := 0; i < maxRouteSamples; i++ {
			sampled = append(sampled, points[int(math.Round(float64(i)*step))])
		}
	}

	milesPerSample := totalMiles / float64(len(sampled))

	var states []string
	stateMiles := make(map[string]float64)
	for _, p := range sampled {
		state, _ := s.static.NearestState(p)
		if state == "" {
			continue
		}

		stateMiles[state] += milesPerSample
		if len(states) == 0 || states[len(states)-1] != state {
			states = append(states, state)
		}
	}

	return states, stateMiles
}

// extractStateCode scans address tokens from the end for a known two-letter
// state code, so "Chicago, IL" and "Chicago, IL 60601" both resolve.
func extractStateCode(address string, static *staticdata.Data) string {
	fields := strings.FieldsFunc(address, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})

	for i := len(fields) - 1; i >= 0; i-- {
		token := strings.ToUpper(strings.TrimSpace(fields[i]))
		if len(token) != 2 {
			continue
		}
		if _, ok := static.Lookup(token); ok {
			return token
		}
	}

	return ""
}

func (s *routeService) warn(msg string, err error) {
	if s.logger != nil {
		s.logger.Warn(msg, slog.Any("error", err))
	}
}
