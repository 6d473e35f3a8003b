// Package predictor loads the trained inventory model and turns dense
// feature rows into next week unit forecasts.
package predictor

import (
	"context"
	"path/filepath"
)

// Predictor serves forecasts for feature rows built against its schema.
// Implementations are safe for concurrent use.
type Predictor interface {
	// Predict returns one forecast per row, in row order.
	Predict(ctx context.Context, rows []*Row) ([]float64, error)
	Schema() *Schema
	Close() error
}

// Load reads the feature name sidecar and opens the model file. The
// backend is picked from the extension: .json loads linear weights,
// anything else goes through the ONNX runtime.
func Load(modelPath, featureNamesPath, libPath string) (Predictor, error) {
	schema, err := LoadSchema(featureNamesPath)
	if err != nil {
		return nil, err
	}
	if filepath.Ext(modelPath) == ".json" {
		return NewLinear(modelPath, schema)
	}
	return NewONNXPredictor(modelPath, schema, libPath)
}
