package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"stockcast-api/internal/handlers/notify"
	"stockcast-api/internal/middleware"
	"stockcast-api/internal/predictor"
	"stockcast-api/internal/routers"
	"stockcast-api/internal/shared"
	"stockcast-api/internal/validate"

	"github.com/labstack/echo/v4"
	emw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/manifold-inc/manifold-sdk/lib/eflag"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// Flags / ENV Variables
	port := flag.String("port", shared.DefaultPort, "HTTP listen port")
	modelPath := flag.String("model-path", "model/inventory_forecast.onnx", "Forecast model path")
	featureNamesPath := flag.String("feature-names-path", "model/feature_names.json", "Model feature name list path")
	onnxLibPath := flag.String("onnx-lib-path", "", "onnxruntime shared library path, defaults to the model directory")
	corsOrigins := flag.String("cors-origins", shared.DefaultCORSOrigins, "Comma separated allowed origins")
	metricsAPIKey := flag.String("metrics-api-key", "", "Metrics api key")
	bulkWorkers := flag.Int("bulk-workers", shared.DefaultBulkWorkers, "Concurrent model calls per bulk request")
	debug := flag.Bool("debug", false, "Debug enabled")

	smtpServer := flag.String("smtp-server", "smtp.gmail.com", "SMTP server host")
	smtpPort := flag.Int("smtp-port", shared.DefaultSMTPPort, "SMTP server port")
	smtpUser := flag.String("smtp-user", "", "SMTP username, empty runs email in mock mode")
	smtpPassword := flag.String("smtp-password", "", "SMTP password")
	fromEmail := flag.String("from-email", "", "Sender address, defaults to the SMTP username")

	err := eflag.SetFlagsFromEnvironment()
	if err != nil {
		panic(err)
	}
	flag.Parse()

	// Model init
	p, err := predictor.Load(*modelPath, *featureNamesPath, *onnxLibPath)
	if err != nil {
		panic(fmt.Sprintf("failed loading forecast model: %s", err))
	}
	defer func() {
		if p != nil {
			_ = p.Close()
		}
	}()

	var logger *zap.Logger
	if !*debug {
		logger, err = zap.NewProduction()
		if err != nil {
			panic("Failed init logger")
		}
	}
	if *debug {
		logger, err = zap.NewDevelopment()
		if err != nil {
			panic("Failed init logger")
		}
	}
	log := logger.Sugar()

	e := echo.New()
	e.JSONSerializer = routers.GoJSONSerializer{}
	e.Validator = validate.New()

	routers.RegisterHealthRoutes(e)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()), func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			apiKey, err := shared.ExtractAPIKey(c)
			if err != nil {
				return c.String(401, "Missing or invalid API key")
			}

			if apiKey != *metricsAPIKey {
				return c.String(401, "Unauthorized API key")
			}
			return next(c)
		}
	})
	base := e.Group("")
	base.Use(emw.CORSWithConfig(emw.CORSConfig{
		AllowOrigins: strings.Split(*corsOrigins, ","),
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType},
	}))
	base.Use(middleware.NewRecoverMiddleware(log))
	base.Use(middleware.NewTrackMiddleware(log))

	// Register routes
	routers.RegisterForecastRoutes(base, p, log, *bulkWorkers)
	routers.RegisterNotifyRoutes(base, notify.Config{
		Host:     *smtpServer,
		Port:     *smtpPort,
		Username: *smtpUser,
		Password: *smtpPassword,
		From:     *fromEmail,
	}, log)

	log.Infow("forecast api ready",
		"port", *port,
		"model", *modelPath,
		"features", p.Schema().Len(),
	)

	go func() {
		if err := e.Start(":" + *port); err != nil && err != http.ErrServerClosed {
			e.Logger.Fatal("shutting down the server")
		}
	}()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	// Wait for interrupt signal to gracefully shut down the server with a timeout of 10 seconds.
	<-ctx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), shared.DefaultShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		e.Logger.Fatal(err)
	}
}
