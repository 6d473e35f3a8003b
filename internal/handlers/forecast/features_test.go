package forecast

import (
	"testing"
	"time"
)

func TestBuildRow(t *testing.T) {
	schema := testSchema(t)
	now := time.Date(2026, time.August, 25, 12, 0, 0, 0, time.UTC)

	row, known, err := BuildRow(schema, "toys", 100, now)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if !known {
		t.Error("toys is a trained category")
	}

	_, wantWeek := now.ISOWeek()
	want := map[string]float32{
		"month":           8,
		"weekofyear":      float32(wantWeek),
		"lag_1":           90,
		"lag_2":           85,
		"lag_3":           80,
		"rolling_mean_3":  85,
		"cat_electronics": 0,
		"cat_groceries":   0,
		"cat_toys":        1,
	}
	values := row.Values()
	for name, wantV := range want {
		i, ok := schema.Index(name)
		if !ok {
			t.Fatalf("schema missing %s", name)
		}
		if values[i] != wantV {
			t.Errorf("%s = %v, want %v", name, values[i], wantV)
		}
	}
}

func TestBuildRowISOWeekYearBoundary(t *testing.T) {
	schema := testSchema(t)
	// 2021-01-01 belongs to ISO week 53 of 2020.
	now := time.Date(2021, time.January, 1, 0, 0, 0, 0, time.UTC)

	row, _, err := BuildRow(schema, "toys", 10, now)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	monthIdx, _ := schema.Index("month")
	weekIdx, _ := schema.Index("weekofyear")
	values := row.Values()
	if values[monthIdx] != 1 {
		t.Errorf("month = %v, want 1", values[monthIdx])
	}
	if values[weekIdx] != 53 {
		t.Errorf("weekofyear = %v, want 53", values[weekIdx])
	}
}

func TestBuildRowUnknownCategory(t *testing.T) {
	schema := testSchema(t)
	now := time.Date(2026, time.August, 25, 12, 0, 0, 0, time.UTC)

	row, known, err := BuildRow(schema, "unseen brand", 50, now)
	if err != nil {
		t.Fatalf("unknown category must not error: %v", err)
	}
	if known {
		t.Error("unseen brand should not match a trained category")
	}

	values := row.Values()
	for _, name := range []string{"cat_electronics", "cat_groceries", "cat_toys"} {
		i, _ := schema.Index(name)
		if values[i] != 0 {
			t.Errorf("%s = %v, want 0", name, values[i])
		}
	}
}

func TestBuildRowNormalizesAgain(t *testing.T) {
	schema := testSchema(t)
	now := time.Date(2026, time.August, 25, 12, 0, 0, 0, time.UTC)

	// Already normalized input and raw input land on the same column.
	for _, category := range []string{"toys", "  TOYS  "} {
		row, known, err := BuildRow(schema, category, 10, now)
		if err != nil {
			t.Fatalf("build %q: %v", category, err)
		}
		if !known {
			t.Errorf("%q should match cat_toys", category)
		}
		i, _ := schema.Index("cat_toys")
		if row.Values()[i] != 1 {
			t.Errorf("%q: cat_toys = %v, want 1", category, row.Values()[i])
		}
	}
}

func TestBuildRowZeroStock(t *testing.T) {
	schema := testSchema(t)
	now := time.Date(2026, time.August, 25, 12, 0, 0, 0, time.UTC)

	row, _, err := BuildRow(schema, "toys", 0, now)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	for _, name := range []string{"lag_1", "lag_2", "lag_3", "rolling_mean_3"} {
		i, _ := schema.Index(name)
		if row.Values()[i] != 0 {
			t.Errorf("%s = %v, want 0", name, row.Values()[i])
		}
	}
}
