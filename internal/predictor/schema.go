package predictor

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"
)

// SchemaMismatchError reports a feature row that does not line up with
// the columns the model was trained on. It always means a bug or a
// stale model artifact, never bad user input.
type SchemaMismatchError struct {
	Feature string
	Reason  string
}

func (e *SchemaMismatchError) Error() string {
	if e.Feature != "" {
		return fmt.Sprintf("schema mismatch on %q: %s", e.Feature, e.Reason)
	}
	return fmt.Sprintf("schema mismatch: %s", e.Reason)
}

// Schema is the ordered column list the model was trained on. Rows are
// dense vectors laid out in this order.
type Schema struct {
	names []string
	index map[string]int
}

func NewSchema(names []string) (*Schema, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("schema: empty feature list")
	}
	index := make(map[string]int, len(names))
	for i, name := range names {
		if name == "" {
			return nil, fmt.Errorf("schema: empty feature name at position %d", i)
		}
		if _, dup := index[name]; dup {
			return nil, fmt.Errorf("schema: duplicate feature name %q", name)
		}
		index[name] = i
	}
	return &Schema{names: names, index: index}, nil
}

// LoadSchema reads the feature name sidecar written at model export
// time, a JSON array of column names in training order.
func LoadSchema(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("schema: %w", err)
	}
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return nil, fmt.Errorf("schema: parse %s: %w", path, err)
	}
	return NewSchema(names)
}

func (s *Schema) Len() int {
	return len(s.names)
}

func (s *Schema) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

func (s *Schema) Index(name string) (int, bool) {
	i, ok := s.index[name]
	return i, ok
}

// NewRow returns a zeroed feature row bound to this schema.
func (s *Schema) NewRow() *Row {
	return &Row{schema: s, values: make([]float32, len(s.names))}
}

// Row is one dense feature vector in schema order.
type Row struct {
	schema *Schema
	values []float32
}

// Set writes a named feature value. An unknown name means the feature
// builder and the model artifact disagree about the schema.
func (r *Row) Set(name string, v float64) error {
	i, ok := r.schema.index[name]
	if !ok {
		return &SchemaMismatchError{Feature: name, Reason: "not a model feature"}
	}
	r.values[i] = float32(v)
	return nil
}

func (r *Row) Schema() *Schema {
	return r.schema
}

// Values exposes the backing vector in schema order.
func (r *Row) Values() []float32 {
	return r.values
}
