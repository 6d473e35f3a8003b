package forecast

import (
	"time"

	"stockcast-api/internal/predictor"
	"stockcast-api/internal/shared"
)

// BuildRow derives the model features for one item. No sales history is
// stored anywhere, so the lag features are seeded from the stock on
// hand with the same decay factors the model was trained against, and
// the rolling mean averages them. The second return reports whether the
// category matched a trained one-hot column; when it does not, the row
// goes through with every category column at zero.
func BuildRow(schema *predictor.Schema, category string, stock float64, now time.Time) (*predictor.Row, bool, error) {
	row := schema.NewRow()

	_, week := now.ISOWeek()
	lag1 := stock * 0.9
	lag2 := stock * 0.85
	lag3 := stock * 0.8
	base := map[string]float64{
		"month":          float64(int(now.Month())),
		"weekofyear":     float64(week),
		"lag_1":          lag1,
		"lag_2":          lag2,
		"lag_3":          lag3,
		"rolling_mean_3": (lag1 + lag2 + lag3) / 3,
	}
	for name, v := range base {
		if err := row.Set(name, v); err != nil {
			return nil, false, err
		}
	}

	known := false
	catFeature := "cat_" + shared.NormalizeCategory(category)
	if _, ok := schema.Index(catFeature); ok {
		if err := row.Set(catFeature, 1); err != nil {
			return nil, false, err
		}
		known = true
	}
	return row, known, nil
}
