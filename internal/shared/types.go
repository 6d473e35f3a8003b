package shared

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// FlexNumber is a float64 that also accepts numeric JSON strings, so
// `"current_stock": "120"` decodes the same as `"current_stock": 120`.
// Dashboard clients send both. NaN and Inf literals parse here and are
// rejected by validation.
type FlexNumber float64

func (f *FlexNumber) UnmarshalJSON(data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("empty number literal")
	}
	s := string(data)
	if data[0] == '"' {
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("parse number %q: %w", s, err)
	}
	*f = FlexNumber(v)
	return nil
}

func (f FlexNumber) Float64() float64 {
	return float64(f)
}

// PredictionRequest is the body of POST /predict and of each element of
// POST /bulk_predict. Pointers distinguish missing fields from zero values.
type PredictionRequest struct {
	Category     *string     `json:"category"`
	CurrentStock *FlexNumber `json:"current_stock"`
}

type PredictionResult struct {
	PredictedSales float64 `json:"predicted_sales"`
	CurrentStock   float64 `json:"current_stock"`
	Recommendation string  `json:"recommendation"`
}

type BulkDecision struct {
	Category            string  `json:"category"`
	PredNextWeekUnits   float64 `json:"pred_next_week_units"`
	CurrentStock        float64 `json:"current_stock"`
	Decision            string  `json:"decision"`
	ReorderQty          int     `json:"reorder_qty"`
	SafetyStockEstimate float64 `json:"safety_stock_estimate"`
}

// BulkItemError reports a failed bulk item in place. CurrentStock echoes
// whatever the caller sent, including non numbers and null.
type BulkItemError struct {
	Error        string `json:"error"`
	Category     string `json:"category"`
	CurrentStock any    `json:"current_stock"`
}

// BulkSlot is one position in a bulk response, either a decision or an
// error, never both.
type BulkSlot struct {
	Decision *BulkDecision
	Err      *BulkItemError
}

func (s BulkSlot) MarshalJSON() ([]byte, error) {
	if s.Err != nil {
		return json.Marshal(s.Err)
	}
	return json.Marshal(s.Decision)
}

type SendEmailRequest struct {
	To      string `json:"to" validate:"required,email"`
	Subject string `json:"subject" validate:"required"`
	HTML    string `json:"html"`
	Text    string `json:"text"`
}

type SendEmailResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	To      string `json:"to"`
}

type HealthResponse struct {
	Status      string `json:"status"`
	Service     string `json:"service"`
	ModelLoaded bool   `json:"model_loaded"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
