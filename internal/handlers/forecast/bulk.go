package forecast

import (
	"context"
	"errors"
	"sync"
	"time"

	"stockcast-api/internal/metrics"
	"stockcast-api/internal/predictor"
	"stockcast-api/internal/shared"

	"github.com/goccy/go-json"
)

// BulkPredict runs every item through validation and the model with a
// bounded number of workers. Bad items fail in place without touching
// their neighbors, and the response keeps request order. A schema
// mismatch is the one batch-wide failure, since every item shares the
// model schema.
func (h *Handler) BulkPredict(ctx context.Context, items []json.RawMessage) ([]shared.BulkSlot, error) {
	slots := make([]shared.BulkSlot, len(items))
	if len(items) == 0 {
		return slots, nil
	}

	now := h.now()
	sem := make(chan struct{}, h.workers)
	var wg sync.WaitGroup
	var mismatchOnce sync.Once
	var mismatchErr error

	for i, raw := range items {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, raw json.RawMessage) {
			defer wg.Done()
			defer func() { <-sem }()
			slot, err := h.bulkOne(ctx, raw, now)
			if err != nil {
				mismatchOnce.Do(func() { mismatchErr = err })
				return
			}
			slots[i] = slot
		}(i, raw)
	}
	wg.Wait()

	if mismatchErr != nil {
		metrics.SchemaMismatchCount.Inc()
		return nil, mismatchErr
	}

	for i := range slots {
		if slots[i].Err != nil {
			metrics.BulkItemCount.WithLabelValues("error").Inc()
		} else {
			metrics.BulkItemCount.WithLabelValues("ok").Inc()
		}
	}
	return slots, nil
}

// bulkOne produces the slot for a single item. The returned error is
// non nil only for schema mismatches; every other failure is encoded in
// the slot itself.
func (h *Handler) bulkOne(ctx context.Context, raw json.RawMessage, now time.Time) (shared.BulkSlot, error) {
	var req shared.PredictionRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		category, stock := echoValues(raw)
		return errSlot(shared.ErrInvalidItem, category, stock), nil
	}

	category, stock, err := ValidateRequest(&req)
	if err != nil {
		rawCategory, rawStock := echoValues(raw)
		return errSlot(err, rawCategory, rawStock), nil
	}

	row, known, err := BuildRow(h.predictor.Schema(), category, stock, now)
	if err != nil {
		return shared.BulkSlot{}, err
	}
	if !known {
		metrics.UnknownCategoryCount.WithLabelValues("bulk_predict").Inc()
	}

	start := time.Now()
	preds, err := h.predictor.Predict(ctx, []*predictor.Row{row})
	metrics.PredictionDuration.WithLabelValues("bulk_predict").Observe(time.Since(start).Seconds())
	if err != nil {
		var sm *predictor.SchemaMismatchError
		if errors.As(err, &sm) {
			return shared.BulkSlot{}, err
		}
		h.log.Errorw("bulk item prediction failed", "category", category, "error", err)
		return shared.BulkSlot{Err: &shared.BulkItemError{
			Error:        shared.ErrInternalServerError.Err.Error(),
			Category:     category,
			CurrentStock: stock,
		}}, nil
	}

	predicted := preds[0]
	decision, reorder, safety := Decide(predicted, stock)
	metrics.PredictionCount.WithLabelValues("bulk_predict", decision).Inc()
	return shared.BulkSlot{Decision: &shared.BulkDecision{
		Category:            category,
		PredNextWeekUnits:   shared.Round2(predicted),
		CurrentStock:        stock,
		Decision:            decision,
		ReorderQty:          reorder,
		SafetyStockEstimate: shared.Round2(safety),
	}}, nil
}

func errSlot(err error, category string, stock any) shared.BulkSlot {
	return shared.BulkSlot{Err: &shared.BulkItemError{
		Error:        requestErrorMessage(err),
		Category:     category,
		CurrentStock: stock,
	}}
}

// requestErrorMessage unwraps the user facing message from a request
// error chain.
func requestErrorMessage(err error) string {
	var re *shared.RequestError
	if errors.As(err, &re) {
		return re.Err.Error()
	}
	return shared.ErrInternalServerError.Err.Error()
}

// echoValues pulls the raw category and stock back out of a failed
// item. Missing stock echoes 0 and a missing or non string category
// echoes "unknown", the defaults the dashboard expects in error rows.
func echoValues(raw json.RawMessage) (string, any) {
	category := "unknown"
	stock := any(0)
	var loose map[string]json.RawMessage
	if err := json.Unmarshal(raw, &loose); err != nil {
		return category, stock
	}
	if rawCategory, ok := loose["category"]; ok {
		var s string
		if err := json.Unmarshal(rawCategory, &s); err == nil {
			category = s
		}
	}
	if rawStock, ok := loose["current_stock"]; ok {
		var v any
		if err := json.Unmarshal(rawStock, &v); err == nil {
			stock = v
		}
	}
	return category, stock
}
