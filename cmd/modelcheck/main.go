package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"stockcast-api/internal/handlers/forecast"
	"stockcast-api/internal/predictor"
	"stockcast-api/internal/shared"
)

func main() {
	// Get artifact locations from environment
	modelPath := shared.GetEnv("MODEL_PATH", "model/inventory_forecast.onnx")
	featureNamesPath := shared.GetEnv("FEATURE_NAMES_PATH", "model/feature_names.json")
	onnxLibPath := shared.GetEnv("ONNX_LIB_PATH", "")
	if len(os.Args) > 1 {
		modelPath = os.Args[1]
	}

	p, err := predictor.Load(modelPath, featureNamesPath, onnxLibPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading model %s: %v\n", modelPath, err)
		os.Exit(1)
	}
	defer p.Close()

	schema := p.Schema()
	fmt.Printf("Model: %s\n", modelPath)
	fmt.Printf("Features (%d):\n", schema.Len())
	for _, name := range schema.Names() {
		fmt.Printf("  %s\n", name)
	}

	// Run one end to end prediction against the loaded artifact
	row, known, err := forecast.BuildRow(schema, "electronics", 100, time.Now())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building probe row: %v\n", err)
		os.Exit(1)
	}
	if !known {
		fmt.Println("Note: probe category \"electronics\" is not in the feature list")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	preds, err := p.Predict(ctx, []*predictor.Row{row})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running probe prediction: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Probe prediction: %.2f units\n", preds[0])
	fmt.Println("Model check completed successfully!")
}
