// Package routers
package routers

import (
	"errors"
	"io"
	"net/http"

	"stockcast-api/internal/ctx"
	"stockcast-api/internal/shared"

	"github.com/labstack/echo/v4"
)

func readRequestBody(c *ctx.Context) ([]byte, error) {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		c.Log.Errorw("Failed to read request body", "error", err.Error())
		return nil, err
	}
	return body, nil
}

// respondError records the error on the request and writes the wire
// shape the dashboard expects. Anything that is not a RequestError goes
// out as an opaque 500.
func respondError(c *ctx.Context, err error) error {
	c.LogValues.AddError(err)
	var re *shared.RequestError
	if errors.As(err, &re) {
		if re.StatusCode >= 500 {
			c.LogValues.LogLevel = "ERROR"
		}
		return c.JSON(re.StatusCode, shared.ErrorResponse{Error: re.Err.Error()})
	}
	c.LogValues.LogLevel = "ERROR"
	return c.JSON(shared.ErrInternalServerError.StatusCode, shared.ErrorResponse{Error: shared.ErrInternalServerError.Err.Error()})
}

// RegisterHealthRoutes serves the liveness shape the dashboard polls on
// both the bare root and /health. The model loads before the server
// starts listening, so a serving process always reports it loaded.
func RegisterHealthRoutes(e *echo.Echo) {
	health := func(c echo.Context) error {
		return c.JSON(http.StatusOK, shared.HealthResponse{
			Status:      "healthy",
			Service:     "Inventory Forecast API",
			ModelLoaded: true,
		})
	}
	e.GET("/", health)
	e.GET("/health", health)
}
