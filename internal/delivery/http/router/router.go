// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"lanerate/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	QuoteHandler *handler.QuoteHandler
}

// router holds all the handlers that need to be registered.
type router struct {
	quoteHandler *handler.QuoteHandler
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		quoteHandler: params.QuoteHandler,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	v1 := e.Group("/v1")
	{
		v1.POST("/quotes", r.quoteHandler.CalculateRate)
		v1.POST("/tolls", r.quoteHandler.CalculateTolls)
		v1.POST("/distance", r.quoteHandler.CalculateDistance)
		v1.POST("/fuel/refresh", r.quoteHandler.RefreshFuelPrices)
	}
}
