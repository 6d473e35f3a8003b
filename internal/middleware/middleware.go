// Package middleware
package middleware

import (
	"fmt"
	"time"

	"stockcast-api/internal/ctx"
	"stockcast-api/internal/metrics"
	"stockcast-api/internal/shared"

	"github.com/aidarkhanov/nanoid"
	"github.com/labstack/echo/v4"
	emw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

// NewTrackMiddleware tags every request with a generated id, swaps the
// plain echo context for ours, and writes the end_of_request line once
// the handler returns.
func NewTrackMiddleware(log *zap.SugaredLogger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			reqID, _ := nanoid.Generate(shared.RequestIDAlphabet, shared.RequestIDLength)
			logger := log.With(
				"request_id", "req_"+reqID,
			)

			lv := &ctx.ContextLogValues{
				RequestID: "req_" + reqID,
				StartTime: time.Now(),
				Path:      c.Path(),
			}
			cc := &ctx.Context{Context: c, Log: logger, Reqid: reqID, LogValues: lv}
			err := next(cc)
			lv.StatusCode = cc.Response().Status
			lv.RequestDuration = time.Since(lv.StartTime)
			if lv.LogLevel == "ERROR" {
				cc.Log.Errorw("end_of_request", zap.Object("request", lv))
			} else {
				cc.Log.Infow("end_of_request", zap.Object("request", lv))
			}
			metrics.ResponseCodes.WithLabelValues(cc.Path(), fmt.Sprintf("%d", cc.Response().Status)).Inc()
			return err
		}
	}
}

func NewRecoverMiddleware(log *zap.SugaredLogger) echo.MiddlewareFunc {
	return emw.RecoverWithConfig(emw.RecoverConfig{
		StackSize: 1 << 10, // 1 KB
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			defer func() {
				_ = log.Sync()
			}()
			log.Errorw("Api Panic", "error", err.Error())
			return c.String(500, shared.ErrInternalServerError.Err.Error())
		},
	})
}
