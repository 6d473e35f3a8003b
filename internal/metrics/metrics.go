// Package metrics defines prometheus metrics to expose
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PredictionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "stockcast_api_prediction_duration_seconds",
			Help:    "Total time taken for model predictions in seconds",
			Buckets: []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"endpoint"},
	)

	PredictionCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stockcast_api_prediction_count_total",
			Help: "Total number of predictions served",
		},
		[]string{"endpoint", "decision"},
	)

	UnknownCategoryCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stockcast_api_unknown_category_total",
			Help: "Predictions served with a category the model was not trained on",
		},
		[]string{"endpoint"},
	)

	BulkItemCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stockcast_api_bulk_item_count_total",
			Help: "Bulk prediction items by outcome",
		},
		[]string{"status"},
	)

	SchemaMismatchCount = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "stockcast_api_schema_mismatch_total",
			Help: "Feature rows rejected by the model schema",
		},
	)

	EmailCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stockcast_api_email_count_total",
			Help: "Notification emails by delivery mode and outcome",
		},
		[]string{"mode", "status"},
	)

	ResponseCodes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stockcast_api_status_code",
			Help: "Status Codes",
		},
		[]string{"path", "status_code"},
	)
)
