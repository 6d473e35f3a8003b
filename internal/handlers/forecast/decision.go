package forecast

import "math"

// Labels returned by the single prediction endpoint. The names are part
// of the dashboard contract: predicted demand above stock reports
// Overstock.
const (
	RecommendOverstock  = "Overstock"
	RecommendUnderstock = "Understock"
)

// Labels returned on bulk decisions.
const (
	DecisionRestock   = "restock"
	DecisionOverstock = "overstock"
	DecisionOK        = "ok"
)

// safetyFactor pads the forecast by 20% when sizing reorders.
const safetyFactor = 1.2

// Recommend labels a single forecast against the stock on hand.
func Recommend(predicted, stock float64) string {
	if predicted > stock {
		return RecommendOverstock
	}
	return RecommendUnderstock
}

// Decide sizes the reorder and classifies stock health for one bulk
// item. Restock fires when the forecast clears 150% of stock, overstock
// when it falls under 50%.
func Decide(predicted, stock float64) (string, int, float64) {
	safety := predicted * safetyFactor
	reorder := int(math.Max(0, math.Floor(safety-stock)))
	switch {
	case predicted > stock*1.5:
		return DecisionRestock, reorder, safety
	case predicted < stock*0.5:
		return DecisionOverstock, reorder, safety
	}
	return DecisionOK, reorder, safety
}
