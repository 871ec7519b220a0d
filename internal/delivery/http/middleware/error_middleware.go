package middleware

import (
	"log/slog"
	"net/http"

	"lanerate/internal/delivery/http/response"
	"lanerate/internal/domain/quote"
	"lanerate/internal/errors"

	"github.com/labstack/echo/v4"
)

// ErrorMiddleware error handling middleware
type ErrorMiddleware struct {
	logger *slog.Logger
}

// NewErrorMiddleware creates a new error handling middleware
func NewErrorMiddleware(logger *slog.Logger) *ErrorMiddleware {
	return &ErrorMiddleware{
		logger: logger,
	}
}

// HandleHTTPError maps engine errors onto HTTP statuses as Echo's
// HTTPErrorHandler. Provider errors surfacing here mean every fallback tier
// was exhausted, so they read as a bad gateway.
func (m *ErrorMiddleware) HandleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var validationErr *quote.ValidationError
	if errors.As(err, &validationErr) {
		_ = response.BadRequest(c, "INVALID_REQUEST", validationErr.Error())

		return
	}

	var geocodeErr *quote.GeocodeError
	if errors.As(err, &geocodeErr) {
		_ = response.UnprocessableEntity(c, "GEOCODE_FAILED", geocodeErr.Error())

		return
	}

	if errors.Is(err, quote.ErrRouteUnavailable) {
		_ = response.UnprocessableEntity(c, "ROUTE_UNAVAILABLE", err.Error())

		return
	}

	if quote.IsProviderFailure(err) {
		_ = response.BadGateway(c, "PROVIDER_UNAVAILABLE", err.Error())

		return
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		message := http.StatusText(httpErr.Code)
		if s, ok := httpErr.Message.(string); ok {
			message = s
		}
		_ = response.Error(c, httpErr.Code, "HTTP_ERROR", message, "")

		return
	}

	m.logger.Error("Unhandled error",
		slog.String("error", err.Error()),
		slog.String("path", c.Request().URL.Path),
		slog.String("method", c.Request().Method),
	)

	_ = response.InternalServerError(c, "INTERNAL_ERROR", "Internal server error")
}
