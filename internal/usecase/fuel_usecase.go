package usecase

import (
	"context"

	"lanerate/internal/domain/quote"
)

// FuelRefreshResult counts the outcome of a batch price refresh.
type FuelRefreshResult struct {
	Updated int `json:"updated"`
	Failed  int `json:"failed"`
}

// FuelUsecase looks up diesel prices. Lookups never fail outright: the chain
// is fresh cache → provider → stale cache → static regional table, and the
// worst case is a result carrying the fallback source tag.
type FuelUsecase interface {
	// StatePrice returns the price for one state.
	StatePrice(ctx context.Context, state string) *quote.FuelPriceResult

	// RoutePrice returns the mile-weighted average price across the states a
	// route crosses. States are weighted equally when no mile split is known.
	// The aggregate source tag reports the weakest constituent.
	RoutePrice(ctx context.Context, states []string, stateMiles map[string]float64) *quote.FuelPriceResult

	// RefreshAll re-fetches every state price from the provider. Individual
	// failures do not abort the batch.
	RefreshAll(ctx context.Context) FuelRefreshResult
}
