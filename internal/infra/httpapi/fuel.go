package httpapi

import (
	"context"
	"net/url"
	"time"

	"lanerate/config"
	"lanerate/internal/domain/provider"
	"lanerate/internal/domain/quote"
	"lanerate/internal/errors"
)

// FuelClient fetches per-state retail diesel prices.
type FuelClient struct {
	client
}

// NewFuelClient builds the fuel price client, nil when unconfigured.
func NewFuelClient(cfg config.ProviderConfig) *FuelClient {
	if !cfg.Enabled() {
		return nil
	}

	return &FuelClient{client: newClient("fuel", cfg)}
}

type fuelPriceResponse struct {
	State          string    `json:"state"`
	PricePerGallon float64   `json:"price_per_gallon"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// StatePrice fetches the current diesel price for a state.
func (c *FuelClient) StatePrice(ctx context.Context, state string) (*provider.StatePrice, error) {
	q := url.Values{}
	q.Set("state", state)
	q.Set("fuel", "diesel")

	var resp fuelPriceResponse
	if err := c.getJSON(ctx, "/v1/prices", q, &resp); err != nil {
		return nil, err
	}

	if resp.PricePerGallon <= 0 {
		return nil, quote.NewProviderUnavailable(c.name, errors.Errorf("no price for state %s", state))
	}

	asOf := resp.UpdatedAt
	if asOf.IsZero() {
		asOf = time.Now()
	}

	return &provider.StatePrice{
		State:          state,
		PricePerGallon: resp.PricePerGallon,
		AsOf:           asOf,
	}, nil
}

var _ provider.FuelPriceAPI = (*FuelClient)(nil)
