// Package handler contains the HTTP handlers for the rate engine API.
package handler

import (
	"log/slog"
	"net/http"
	"time"

	"lanerate/internal/delivery/http/response"
	"lanerate/internal/domain/quote"
	"lanerate/internal/errors"
	"lanerate/internal/usecase"

	"github.com/labstack/echo/v4"
)

// QuoteHandler holds dependencies for the quote endpoints.
type QuoteHandler struct {
	rate   usecase.RateUsecase
	fuel   usecase.FuelUsecase
	logger *slog.Logger
}

// NewQuoteHandler is the constructor for QuoteHandler, injected by Fx.
func NewQuoteHandler(rate usecase.RateUsecase, fuel usecase.FuelUsecase, logger *slog.Logger) *QuoteHandler {
	return &QuoteHandler{
		rate:   rate,
		fuel:   fuel,
		logger: logger,
	}
}

type rateRequest struct {
	Origin      string               `json:"origin" validate:"required"`
	Destination string               `json:"destination" validate:"required"`
	PickupDate  time.Time            `json:"pickup_date"`
	Vehicle     quote.VehicleSpecs   `json:"vehicle" validate:"required"`
	Costs       quote.OperatingCosts `json:"costs"`
}

type laneRequest struct {
	Origin      string            `json:"origin" validate:"required"`
	Destination string            `json:"destination" validate:"required"`
	VehicleType quote.VehicleType `json:"vehicle_type"`
}

// CalculateRate handles the full quote calculation request.
func (h *QuoteHandler) CalculateRate(c echo.Context) error {
	var input rateRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid rate request")
	}
	if err := c.Validate(&input); err != nil {
		return response.BadRequest(c, "INVALID_INPUT", err.Error())
	}

	q, err := h.rate.CalculateRate(c.Request().Context(), &quote.RateRequest{
		Origin:      input.Origin,
		Destination: input.Destination,
		PickupDate:  input.PickupDate,
		Vehicle:     input.Vehicle,
		Costs:       input.Costs,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, q, "Rate calculated")
}

// CalculateTolls handles the standalone toll estimate request.
func (h *QuoteHandler) CalculateTolls(c echo.Context) error {
	var input laneRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid toll request")
	}
	if err := c.Validate(&input); err != nil {
		return response.BadRequest(c, "INVALID_INPUT", err.Error())
	}

	vehicleType := input.VehicleType
	if vehicleType == "" {
		vehicleType = quote.VehicleSemi
	}

	tolls, err := h.rate.CalculateTolls(c.Request().Context(), input.Origin, input.Destination, vehicleType)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, tolls, "Tolls calculated")
}

// CalculateDistance handles the standalone route distance request.
func (h *QuoteHandler) CalculateDistance(c echo.Context) error {
	var input laneRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid distance request")
	}
	if err := c.Validate(&input); err != nil {
		return response.BadRequest(c, "INVALID_INPUT", err.Error())
	}

	route, err := h.rate.CalculateDistance(c.Request().Context(), input.Origin, input.Destination)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, route, "Distance calculated")
}

// RefreshFuelPrices re-fetches every state diesel price from the provider.
func (h *QuoteHandler) RefreshFuelPrices(c echo.Context) error {
	result := h.fuel.RefreshAll(c.Request().Context())

	return response.Success(c, http.StatusOK, result, "Fuel prices refreshed")
}
