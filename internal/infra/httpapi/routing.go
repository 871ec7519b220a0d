package httpapi

import (
	"context"

	"lanerate/config"
	"lanerate/internal/domain/provider"
	"lanerate/internal/domain/quote"
	"lanerate/internal/errors"
)

// TruckRoutingClient is the truck-legal routing provider. It takes the
// vehicle's physical profile so the returned route respects height, weight
// and hazmat restrictions, and it reports a per-state mile split.
type TruckRoutingClient struct {
	client
}

// NewTruckRoutingClient builds the primary-tier routing client. Returns nil
// when the tier is not configured, which the resolver reads as "skip".
func NewTruckRoutingClient(cfg config.ProviderConfig) *TruckRoutingClient {
	if !cfg.Enabled() {
		return nil
	}

	return &TruckRoutingClient{client: newClient("truck-routing", cfg)}
}

type truckRouteRequest struct {
	Origin      string            `json:"origin"`
	Destination string            `json:"destination"`
	Vehicle     truckRouteVehicle `json:"vehicle"`
}

type truckRouteVehicle struct {
	Type        string  `json:"type"`
	HeightFt    float64 `json:"height_ft"`
	WidthFt     float64 `json:"width_ft"`
	LengthFt    float64 `json:"length_ft"`
	WeightLbs   float64 `json:"weight_lbs"`
	Hazmat      bool    `json:"hazmat"`
	HazmatClass string  `json:"hazmat_class,omitempty"`
}

type truckRouteResponse struct {
	DistanceMiles float64 `json:"distance_miles"`
	DurationHours float64 `json:"duration_hours"`
	Origin        struct {
		Formatted string  `json:"formatted"`
		Lat       float64 `json:"lat"`
		Lng       float64 `json:"lng"`
	} `json:"origin"`
	Destination struct {
		Formatted string  `json:"formatted"`
		Lat       float64 `json:"lat"`
		Lng       float64 `json:"lng"`
	} `json:"destination"`
	States []struct {
		State string  `json:"state"`
		Miles float64 `json:"miles"`
	} `json:"states"`
}

// Route resolves a truck-legal route between two addresses.
func (c *TruckRoutingClient) Route(ctx context.Context, origin, destination string, specs quote.VehicleSpecs) (*quote.RouteResult, error) {
	req := truckRouteRequest{
		Origin:      origin,
		Destination: destination,
		Vehicle: truckRouteVehicle{
			Type:        string(specs.Type),
			HeightFt:    specs.HeightFt,
			WidthFt:     specs.WidthFt,
			LengthFt:    specs.LengthFt,
			WeightLbs:   specs.WeightLbs,
			Hazmat:      specs.Hazmat,
			HazmatClass: specs.HazmatClass,
		},
	}

	var resp truckRouteResponse
	if err := c.postJSON(ctx, "/v1/routes", req, &resp); err != nil {
		return nil, err
	}

	if resp.DistanceMiles <= 0 || len(resp.States) == 0 {
		return nil, quote.NewProviderUnavailable(c.name, errors.New("empty route in response"))
	}

	states := make([]string, 0, len(resp.States))
	stateMiles := make(map[string]float64, len(resp.States))
	for _, s := range resp.States {
		states = append(states, s.State)
		stateMiles[s.State] += s.Miles
	}

	return &quote.RouteResult{
		DistanceMiles: resp.DistanceMiles,
		DurationHours: resp.DurationHours,
		Origin:        resp.Origin.Formatted,
		Destination:   resp.Destination.Formatted,
		OriginPoint:   &quote.LatLng{Lat: resp.Origin.Lat, Lng: resp.Origin.Lng},
		DestPoint:     &quote.LatLng{Lat: resp.Destination.Lat, Lng: resp.Destination.Lng},
		StatesCrossed: states,
		StateMiles:    stateMiles,
		Provider:      quote.RoutingPrimary,
	}, nil
}

var _ provider.TruckRouter = (*TruckRoutingClient)(nil)
