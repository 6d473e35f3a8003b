package predictor

import (
	"context"
	"fmt"
	"os"

	"github.com/goccy/go-json"
)

// Linear is a pure Go backend for linear models exported as a JSON
// weight file. It exists for environments without the ONNX runtime
// library, mostly development and CI.
type Linear struct {
	schema  *Schema
	weights []float32
	bias    float32
}

// NewLinear loads coefficients keyed by feature name. Features the file
// does not mention get a zero weight. A coefficient naming a feature
// outside the schema means the artifacts are out of sync.
func NewLinear(path string, schema *Schema) (*Linear, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("linear: %w", err)
	}

	var weightFile struct {
		Intercept    float64            `json:"intercept"`
		Coefficients map[string]float64 `json:"coefficients"`
	}
	if err := json.Unmarshal(data, &weightFile); err != nil {
		return nil, fmt.Errorf("linear: parse %s: %w", path, err)
	}
	if len(weightFile.Coefficients) == 0 {
		return nil, fmt.Errorf("linear: %s has no coefficients", path)
	}

	weights := make([]float32, schema.Len())
	for name, v := range weightFile.Coefficients {
		i, ok := schema.Index(name)
		if !ok {
			return nil, &SchemaMismatchError{Feature: name, Reason: "coefficient has no matching model feature"}
		}
		weights[i] = float32(v)
	}

	return &Linear{schema: schema, weights: weights, bias: float32(weightFile.Intercept)}, nil
}

func (l *Linear) Schema() *Schema {
	return l.schema
}

func (l *Linear) Predict(ctx context.Context, rows []*Row) ([]float64, error) {
	if len(rows) == 0 {
		return []float64{}, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	preds := make([]float64, len(rows))
	for i, r := range rows {
		if r.schema != l.schema {
			return nil, &SchemaMismatchError{Reason: "row built against a different schema"}
		}
		sum := l.bias
		for j, w := range l.weights {
			sum += w * r.values[j]
		}
		preds[i] = float64(sum)
	}
	return preds, nil
}

func (l *Linear) Close() error {
	return nil
}
