package httpapi

import (
	"context"

	"lanerate/config"
	"lanerate/internal/domain/provider"
	"lanerate/internal/domain/quote"
)

// TollClient calculates route tolls through an external tolling API. The
// provider speaks an axle-class vocabulary; the toll service maps internal
// vehicle types onto it before calling.
type TollClient struct {
	client
}

// NewTollClient builds the tolling client, nil when unconfigured.
func NewTollClient(cfg config.ProviderConfig) *TollClient {
	if !cfg.Enabled() {
		return nil
	}

	return &TollClient{client: newClient("toll", cfg)}
}

type tollRequest struct {
	From         latLngBody `json:"from"`
	To           latLngBody `json:"to"`
	VehicleClass string     `json:"vehicle_class"`
}

type latLngBody struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type tollResponse struct {
	Tolls []struct {
		Name            string   `json:"name"`
		State           string   `json:"state"`
		CashCost        float64  `json:"cash_cost"`
		TransponderCost float64  `json:"transponder_cost"`
		Lat             *float64 `json:"lat,omitempty"`
		Lng             *float64 `json:"lng,omitempty"`
	} `json:"tolls"`
}

// Calculate fetches the toll breakdown for a route. Returns (nil, nil) when
// the provider reports no toll data for the route; a toll-free route and a
// missing answer both fall through to the caller's heuristic fallback.
func (c *TollClient) Calculate(ctx context.Context, origin, dest quote.LatLng, vehicleClass string) (*quote.TollBreakdown, error) {
	req := tollRequest{
		From:         latLngBody{Lat: origin.Lat, Lng: origin.Lng},
		To:           latLngBody{Lat: dest.Lat, Lng: dest.Lng},
		VehicleClass: vehicleClass,
	}

	var resp tollResponse
	if err := c.postJSON(ctx, "/v1/calc/route", req, &resp); err != nil {
		if notFound(err) {
			return nil, nil
		}

		return nil, err
	}

	if len(resp.Tolls) == 0 {
		return nil, nil
	}

	breakdown := &quote.TollBreakdown{
		TollsByState: make(map[string]float64),
		Source:       quote.SourceAPI,
	}

	for _, t := range resp.Tolls {
		plaza := quote.TollPlaza{
			Name:            t.Name,
			State:           t.State,
			CashCost:        t.CashCost,
			TransponderCost: t.TransponderCost,
		}
		if t.Lat != nil && t.Lng != nil {
			plaza.Location = &quote.LatLng{Lat: *t.Lat, Lng: *t.Lng}
		}

		breakdown.Plazas = append(breakdown.Plazas, plaza)
		breakdown.CashTolls += t.CashCost
		breakdown.TransponderTolls += t.TransponderCost
		breakdown.TollsByState[t.State] += t.TransponderCost
		breakdown.TollCount++
	}

	// Totals track the transponder tariff; cash stays available separately.
	breakdown.TotalTolls = breakdown.TransponderTolls

	return breakdown, nil
}

var _ provider.TollAPI = (*TollClient)(nil)
