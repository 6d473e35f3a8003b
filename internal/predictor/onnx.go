package predictor

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	ort "github.com/yalue/onnxruntime_go"
)

// ortEnv manages global ONNX Runtime initialization (process-wide singleton).
var ortEnv struct {
	once sync.Once
	err  error
}

// initORT initializes the ONNX Runtime environment. Safe to call multiple
// times; only the first call has any effect.
func initORT(libPath string) error {
	ortEnv.once.Do(func() {
		ort.SetSharedLibraryPath(libPath)
		ortEnv.err = ort.InitializeEnvironment()
	})
	return ortEnv.err
}

// ONNXPredictor runs the exported regression model through the ONNX
// runtime. Run calls are safe concurrently since every call owns its
// input and output tensors.
type ONNXPredictor struct {
	session    *ort.DynamicAdvancedSession
	schema     *Schema
	inputName  string
	outputName string
	outputRank int
}

// NewONNXPredictor loads the model and creates an inference session. It
// validates the model's input width against the feature schema, so a
// stale sidecar fails here instead of at request time. When libPath is
// empty the runtime library is expected alongside the model file.
func NewONNXPredictor(modelPath string, schema *Schema, libPath string) (*ONNXPredictor, error) {
	if libPath == "" {
		libPath = filepath.Join(filepath.Dir(modelPath), "libonnxruntime.so")
	}
	if err := initORT(libPath); err != nil {
		return nil, fmt.Errorf("onnx: failed to initialize runtime: %w", err)
	}

	// Inspect model to discover tensor names and shapes.
	inputs, outputs, err := ort.GetInputOutputInfo(modelPath)
	if err != nil {
		return nil, fmt.Errorf("onnx: failed to read model info: %w", err)
	}
	if len(inputs) != 1 {
		return nil, fmt.Errorf("onnx: expected a single input tensor, got %d", len(inputs))
	}
	if len(outputs) == 0 {
		return nil, fmt.Errorf("onnx: model has no outputs")
	}

	inDims := inputs[0].Dimensions
	if len(inDims) != 2 {
		return nil, fmt.Errorf("onnx: expected 2D input tensor, got %v", inDims)
	}
	if inDims[1] > 0 && inDims[1] != int64(schema.Len()) {
		return nil, fmt.Errorf("onnx: model expects %d features, sidecar lists %d", inDims[1], schema.Len())
	}

	outDims := outputs[0].Dimensions
	if len(outDims) != 1 && len(outDims) != 2 {
		return nil, fmt.Errorf("onnx: expected 1D or 2D output tensor, got %v", outDims)
	}
	if len(outDims) == 2 && outDims[1] > 1 {
		return nil, fmt.Errorf("onnx: expected a single output column, got %v", outDims)
	}

	opts, err := ort.NewSessionOptions()
	if err != nil {
		return nil, fmt.Errorf("onnx: failed to create session options: %w", err)
	}
	defer opts.Destroy()
	opts.SetIntraOpNumThreads(4)
	opts.SetInterOpNumThreads(1)

	session, err := ort.NewDynamicAdvancedSession(
		modelPath,
		[]string{inputs[0].Name},
		[]string{outputs[0].Name},
		opts,
	)
	if err != nil {
		return nil, fmt.Errorf("onnx: failed to create session: %w", err)
	}

	return &ONNXPredictor{
		session:    session,
		schema:     schema,
		inputName:  inputs[0].Name,
		outputName: outputs[0].Name,
		outputRank: len(outDims),
	}, nil
}

func (p *ONNXPredictor) Schema() *Schema {
	return p.schema
}

// Predict runs one batched inference call over all rows.
func (p *ONNXPredictor) Predict(ctx context.Context, rows []*Row) ([]float64, error) {
	if len(rows) == 0 {
		return []float64{}, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	n := p.schema.Len()
	flat := make([]float32, 0, len(rows)*n)
	for _, r := range rows {
		if r.schema != p.schema {
			return nil, &SchemaMismatchError{Reason: "row built against a different schema"}
		}
		flat = append(flat, r.values...)
	}

	batch := int64(len(rows))
	in, err := ort.NewTensor(ort.NewShape(batch, int64(n)), flat)
	if err != nil {
		return nil, fmt.Errorf("onnx: failed to create input tensor: %w", err)
	}
	defer in.Destroy()

	outShape := ort.NewShape(batch, 1)
	if p.outputRank == 1 {
		outShape = ort.NewShape(batch)
	}
	out, err := ort.NewEmptyTensor[float32](outShape)
	if err != nil {
		return nil, fmt.Errorf("onnx: failed to create output tensor: %w", err)
	}
	defer out.Destroy()

	if err := p.session.Run([]ort.Value{in}, []ort.Value{out}); err != nil {
		return nil, fmt.Errorf("onnx: inference failed: %w", err)
	}

	// Copy data out before the tensor is destroyed.
	src := out.GetData()
	if len(src) != len(rows) {
		return nil, fmt.Errorf("onnx: output has %d values for %d rows", len(src), len(rows))
	}
	preds := make([]float64, len(rows))
	for i, v := range src {
		preds[i] = float64(v)
	}
	return preds, nil
}

// Close releases the ONNX session resources.
func (p *ONNXPredictor) Close() error {
	return p.session.Destroy()
}
