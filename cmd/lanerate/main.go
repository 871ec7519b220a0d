package main

import (
	"context"
	"log/slog"
	"os"

	"lanerate/config"
	"lanerate/internal/delivery"
	"lanerate/internal/delivery/http"
	"lanerate/internal/delivery/http/router/handler"
	"lanerate/internal/domain/provider"
	"lanerate/internal/infra/cache"
	"lanerate/internal/infra/httpapi"
	logs "lanerate/internal/infra/log"
	"lanerate/internal/infra/staticdata"
	"lanerate/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectProviders(),
		injectUsecase(),
		injectDelivery(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		staticdata.New,
		newFuelCache,
	)
}

func newFuelCache(cfg *config.Config) *cache.FuelPriceCache {
	return cache.NewFuelPriceCache(cfg.FuelCache.TTL)
}

// The provider constructors below return nil interfaces for unconfigured
// tiers. Typed-nil pointers must not cross the interface boundary, so the
// conversion is explicit.
func injectProviders() fx.Option {
	return fx.Options(
		fx.Provide(
			newTruckRouter,
			newMappingRouter,
			newFuelAPI,
			newTollAPI,
			newWeatherAPI,
		),
	)
}

func newTruckRouter(cfg *config.Config) provider.TruckRouter {
	if c := httpapi.NewTruckRoutingClient(cfg.Providers.TruckRouting); c != nil {
		return c
	}

	return nil
}

func newMappingRouter(cfg *config.Config) provider.MappingRouter {
	if c := httpapi.NewMappingClient(cfg.Providers.Mapping); c != nil {
		return c
	}

	return nil
}

func newFuelAPI(cfg *config.Config) provider.FuelPriceAPI {
	if c := httpapi.NewFuelClient(cfg.Providers.Fuel); c != nil {
		return c
	}

	return nil
}

func newTollAPI(cfg *config.Config) provider.TollAPI {
	if c := httpapi.NewTollClient(cfg.Providers.Toll); c != nil {
		return c
	}

	return nil
}

func newWeatherAPI(cfg *config.Config) provider.WeatherAPI {
	if c := httpapi.NewWeatherClient(cfg.Providers.Weather); c != nil {
		return c
	}

	return nil
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewRouteService,
			impl.NewFuelService,
			impl.NewTollService,
			impl.NewWeatherService,
			impl.NewCostService,
			impl.NewRateService,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewQuoteHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
