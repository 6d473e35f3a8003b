// Package ctx
package ctx

import (
	"fmt"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ForecastInfo captures what the model said for a single prediction so
// the end of request line can carry it.
type ForecastInfo struct {
	Category       string
	PredictedUnits float64
	Decision       string
}

// ContextLogValues should only be accessed for logging, and not for
// actual business logic, or any other logic
type ContextLogValues struct {
	// Added in track middleware
	RequestID       string
	StartTime       time.Time
	StatusCode      int
	RequestDuration time.Duration
	Path            string

	// Added dynamically by handlers
	Forecast   *ForecastInfo
	BulkItems  int
	BulkFailed int

	// Override log level. Useful when the status code has already been
	// written but a later step still fails
	LogLevel string

	// Added dynamically
	Error error
}

// AddError adds errors to the error chain. Always add errors, even if only warnings.
// Log level is determined by the status code of the request
func (c *ContextLogValues) AddError(err error) {
	if c.Error == nil {
		c.Error = err
		return
	}
	c.Error = fmt.Errorf("%w: %w", err, c.Error)
}

func (c *ContextLogValues) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("request_id", c.RequestID)
	enc.AddTime("start_time", c.StartTime)
	enc.AddDuration("request_duration", c.RequestDuration)
	enc.AddInt("status_code", c.StatusCode)
	if c.Forecast != nil {
		enc.AddString("category", c.Forecast.Category)
		enc.AddFloat64("predicted_units", c.Forecast.PredictedUnits)
		enc.AddString("decision", c.Forecast.Decision)
	}
	if c.BulkItems != 0 {
		enc.AddInt("bulk_items", c.BulkItems)
		enc.AddInt("bulk_failed", c.BulkFailed)
	}
	if c.Error != nil {
		enc.AddString("error", c.Error.Error())
	}
	enc.AddString("path", c.Path)
	return nil
}

type Context struct {
	echo.Context
	Log       *zap.SugaredLogger
	Reqid     string
	LogValues *ContextLogValues
}
