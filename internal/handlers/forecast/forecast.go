// Package forecast turns prediction requests into stocking
// recommendations backed by the trained inventory model.
package forecast

import (
	"context"
	"errors"
	"math"
	"time"

	"stockcast-api/internal/metrics"
	"stockcast-api/internal/predictor"
	"stockcast-api/internal/shared"

	"go.uber.org/zap"
)

type Handler struct {
	predictor predictor.Predictor
	log       *zap.SugaredLogger
	workers   int
	now       func() time.Time
}

func NewHandler(p predictor.Predictor, log *zap.SugaredLogger, workers int) *Handler {
	if workers <= 0 {
		workers = shared.DefaultBulkWorkers
	}
	return &Handler{predictor: p, log: log, workers: workers, now: time.Now}
}

// ValidateRequest checks a decoded prediction request and returns the
// normalized category and the stock level.
func ValidateRequest(req *shared.PredictionRequest) (string, float64, error) {
	if req.Category == nil || req.CurrentStock == nil {
		return "", 0, shared.ErrMissingFields
	}
	category := shared.NormalizeCategory(*req.Category)
	if category == "" {
		return "", 0, shared.ErrEmptyCategory
	}
	stock := req.CurrentStock.Float64()
	if math.IsNaN(stock) || math.IsInf(stock, 0) {
		return "", 0, shared.ErrStockNotNumeric
	}
	if stock < 0 {
		return "", 0, shared.ErrStockNegative
	}
	return category, stock, nil
}

// Predict validates one request, builds its feature row, and labels the
// forecast against the stock on hand.
func (h *Handler) Predict(ctx context.Context, req *shared.PredictionRequest) (*shared.PredictionResult, error) {
	category, stock, err := ValidateRequest(req)
	if err != nil {
		return nil, err
	}

	row, known, err := BuildRow(h.predictor.Schema(), category, stock, h.now())
	if err != nil {
		metrics.SchemaMismatchCount.Inc()
		return nil, err
	}
	if !known {
		h.log.Warnw("unknown category, one-hot columns left at zero", "category", category)
		metrics.UnknownCategoryCount.WithLabelValues("predict").Inc()
	}

	start := time.Now()
	preds, err := h.predictor.Predict(ctx, []*predictor.Row{row})
	metrics.PredictionDuration.WithLabelValues("predict").Observe(time.Since(start).Seconds())
	if err != nil {
		var sm *predictor.SchemaMismatchError
		if errors.As(err, &sm) {
			metrics.SchemaMismatchCount.Inc()
		}
		return nil, err
	}

	predicted := preds[0]
	recommendation := Recommend(predicted, stock)
	metrics.PredictionCount.WithLabelValues("predict", recommendation).Inc()
	return &shared.PredictionResult{
		PredictedSales: shared.Round2(predicted),
		CurrentStock:   stock,
		Recommendation: recommendation,
	}, nil
}
