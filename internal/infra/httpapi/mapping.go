package httpapi

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"lanerate/config"
	"lanerate/internal/domain/provider"
	"lanerate/internal/domain/quote"
	"lanerate/internal/errors"
)

const (
	metersPerMile    = 1609.344
	secondsPerHour   = 3600.0
	mappingProfile   = "driving-hgv"
	geocodeCountryUS = "US"
)

// MappingClient is the generic geocoding/routing provider (secondary tier).
// It has no notion of truck restrictions; routes are heavy-goods-profile
// approximations.
type MappingClient struct {
	client
}

// NewMappingClient builds the secondary-tier client, nil when unconfigured.
func NewMappingClient(cfg config.ProviderConfig) *MappingClient {
	if !cfg.Enabled() {
		return nil
	}

	return &MappingClient{client: newClient("mapping", cfg)}
}

type geocodeResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
		Properties struct {
			Label   string `json:"label"`
			RegionA string `json:"region_a"`
		} `json:"properties"`
	} `json:"features"`
}

// Geocode resolves an address to coordinates. An address the provider cannot
// resolve is a GeocodeError (fatal to the caller); transport failures remain
// non-fatal provider errors.
func (c *MappingClient) Geocode(ctx context.Context, address string) (*provider.Geocoded, error) {
	q := url.Values{}
	q.Set("text", strings.Join(strings.Fields(address), " "))
	q.Set("boundary.country", geocodeCountryUS)
	q.Set("size", "1")

	var resp geocodeResponse
	if err := c.getJSON(ctx, "/geocode/search", q, &resp); err != nil {
		return nil, err
	}

	if len(resp.Features) == 0 {
		return nil, &quote.GeocodeError{Address: address}
	}

	feature := resp.Features[0]
	if len(feature.Geometry.Coordinates) != 2 {
		return nil, &quote.GeocodeError{Address: address, Err: errors.New("invalid coordinate format")}
	}

	return &provider.Geocoded{
		Point:     quote.LatLng{Lat: feature.Geometry.Coordinates[1], Lng: feature.Geometry.Coordinates[0]},
		Formatted: feature.Properties.Label,
		State:     strings.ToUpper(feature.Properties.RegionA),
	}, nil
}

type directionsResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"`
		} `json:"geometry"`
		Properties struct {
			Summary struct {
				Distance float64 `json:"distance"` // meters
				Duration float64 `json:"duration"` // seconds
			} `json:"summary"`
		} `json:"properties"`
	} `json:"features"`
}

// Route fetches an HGV-profile route between two coordinates. The returned
// geometry is the polyline the resolver samples to derive states crossed.
func (c *MappingClient) Route(ctx context.Context, from, to quote.LatLng) (*provider.RoutePath, error) {
	q := url.Values{}
	q.Set("start", fmt.Sprintf("%f,%f", from.Lng, from.Lat))
	q.Set("end", fmt.Sprintf("%f,%f", to.Lng, to.Lat))

	var resp directionsResponse
	if err := c.getJSON(ctx, "/v2/directions/"+mappingProfile, q, &resp); err != nil {
		return nil, err
	}

	if len(resp.Features) == 0 {
		return nil, quote.NewProviderUnavailable(c.name, errors.New("no route in response"))
	}

	feature := resp.Features[0]
	geometry := make([]quote.LatLng, 0, len(feature.Geometry.Coordinates))
	for _, pair := range feature.Geometry.Coordinates {
		if len(pair) < 2 {
			continue
		}
		geometry = append(geometry, quote.LatLng{Lat: pair[1], Lng: pair[0]})
	}

	return &provider.RoutePath{
		DistanceMiles: feature.Properties.Summary.Distance / metersPerMile,
		DurationHours: feature.Properties.Summary.Duration / secondsPerHour,
		Geometry:      geometry,
	}, nil
}

var _ provider.MappingRouter = (*MappingClient)(nil)
