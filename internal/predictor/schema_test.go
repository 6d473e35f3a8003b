package predictor

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestNewSchemaValidation(t *testing.T) {
	cases := []struct {
		name  string
		names []string
		isErr bool
	}{
		{name: "valid", names: []string{"month", "weekofyear", "lag_1"}},
		{name: "empty list", names: nil, isErr: true},
		{name: "empty name", names: []string{"month", ""}, isErr: true},
		{name: "duplicate", names: []string{"month", "month"}, isErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, err := NewSchema(tc.names)
			if tc.isErr {
				if err == nil {
					t.Fatalf("expected error for %v", tc.names)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if s.Len() != len(tc.names) {
				t.Errorf("len = %d, want %d", s.Len(), len(tc.names))
			}
		})
	}
}

func TestRowSet(t *testing.T) {
	s, err := NewSchema([]string{"month", "weekofyear", "lag_1"})
	if err != nil {
		t.Fatal(err)
	}
	r := s.NewRow()
	if err := r.Set("weekofyear", 35); err != nil {
		t.Fatalf("set weekofyear: %v", err)
	}
	if err := r.Set("lag_1", 108); err != nil {
		t.Fatalf("set lag_1: %v", err)
	}

	want := []float32{0, 35, 108}
	got := r.Values()
	if len(got) != len(want) {
		t.Fatalf("values len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("values[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	err = r.Set("cat_unseen", 1)
	var sm *SchemaMismatchError
	if !errors.As(err, &sm) {
		t.Fatalf("got %v, want SchemaMismatchError", err)
	}
	if sm.Feature != "cat_unseen" {
		t.Errorf("feature = %q, want cat_unseen", sm.Feature)
	}
}

func TestLoadSchema(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "feature_names.json")
	sidecar := `["month","weekofyear","lag_1","lag_2","lag_3","rolling_mean_3","cat_electronics","cat_groceries"]`
	if err := os.WriteFile(path, []byte(sidecar), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := LoadSchema(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if s.Len() != 8 {
		t.Errorf("len = %d, want 8", s.Len())
	}
	if i, ok := s.Index("cat_groceries"); !ok || i != 7 {
		t.Errorf("Index(cat_groceries) = %d %v, want 7 true", i, ok)
	}
	if _, ok := s.Index("cat_unseen"); ok {
		t.Error("Index(cat_unseen) should be absent")
	}

	if _, err := LoadSchema(filepath.Join(dir, "absent.json")); err == nil {
		t.Error("expected error for missing sidecar")
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`{"not":"a list"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSchema(bad); err == nil {
		t.Error("expected error for malformed sidecar")
	}
}
