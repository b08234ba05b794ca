package csvrecord

import (
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/oleg578/csvrecord/internal/delim"
)

// RowSchema describes a record holding one data line: every field is a scalar.
type RowSchema struct {
	fieldSet
}

// NewRowSchema declares a row schema. Field names must be unique and every
// field type scalar.
func NewRowSchema(name string, fields ...Field) (*RowSchema, error) {
	fs, err := newFieldSet(name, fields)
	if err != nil {
		return nil, err
	}
	for _, f := range fs.fields {
		if f.tag.IsSequence() {
			return nil, &SchemaError{Schema: name, Field: f.name, Reason: "value should be a scalar"}
		}
	}
	return &RowSchema{fieldSet: fs}, nil
}

// MustRowSchema is like NewRowSchema but panics on error. It simplifies
// package-level schema declarations.
func MustRowSchema(name string, fields ...Field) *RowSchema {
	s, err := NewRowSchema(name, fields...)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *RowSchema) Shape() Shape { return ShapeRow }

// New builds a row from raw values keyed by field name. Every field must be
// present and no other name may appear.
func (s *RowSchema) New(raw map[string]any) (*Row, error) {
	if len(raw) != len(s.fields) {
		return nil, s.checkNames(mapKeys(raw))
	}
	values := make([]any, len(s.fields))
	for i, f := range s.fields {
		v, ok := raw[f.name]
		if !ok {
			return nil, s.checkNames(mapKeys(raw))
		}
		values[i] = v
	}
	return s.build(values)
}

// NewRow builds a row from raw values given in declaration order.
func (s *RowSchema) NewRow(values ...any) (*Row, error) {
	if len(values) != len(s.fields) {
		return nil, fmt.Errorf("%w: schema %q has %d fields, got %d values",
			ErrSchemaMismatch, s.name, len(s.fields), len(values))
	}
	return s.build(slices.Clone(values))
}

// build parses values in place, field by field, and checks each result
// against the declared type.
func (s *RowSchema) build(values []any) (*Row, error) {
	for i, f := range s.fields {
		v, err := f.parse(values[i])
		if err != nil {
			return nil, &FieldError{Field: f.name, Index: -1, Kind: ErrParse, Err: err}
		}
		if !f.tag.Matches(v) {
			return nil, &TypeMismatchError{Field: f.name, Index: -1, Want: f.tag, Got: typeName(v)}
		}
		values[i] = v
	}
	return &Row{schema: s, values: values}, nil
}

func (s *RowSchema) decode(src *delim.DictReader) (Dataset, error) {
	var rows Rows
	for {
		rec, err := src.Read()
		if err == io.EOF {
			return rows, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		raw := make(map[string]any, len(rec))
		for k, v := range rec {
			raw[k] = v
		}
		row, err := s.New(raw)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", src.Line(), err)
		}
		rows = append(rows, row)
	}
}

// Row is one validated data line. Its values are fixed at construction.
type Row struct {
	schema *RowSchema
	values []any
}

func (r *Row) Schema() *RowSchema { return r.schema }

// Get returns the value of the named field.
func (r *Row) Get(name string) (any, bool) {
	i, ok := r.schema.index[name]
	if !ok {
		return nil, false
	}
	return r.values[i], true
}

// Value returns the i-th value in declaration order.
func (r *Row) Value(i int) any { return r.values[i] }

// Values returns a copy of the values in declaration order.
func (r *Row) Values() []any { return slices.Clone(r.values) }

// Map returns the values keyed by field name.
func (r *Row) Map() map[string]any {
	m := make(map[string]any, len(r.values))
	for i, name := range r.schema.names {
		m[name] = r.values[i]
	}
	return m
}

// SerializedValues runs every value through its field's serializer, in declaration order.
func (r *Row) SerializedValues() []string {
	out := make([]string, len(r.values))
	for i, f := range r.schema.fields {
		out[i] = f.serialize(r.values[i])
	}
	return out
}

// SerializedMap is SerializedValues keyed by field name.
func (r *Row) SerializedMap() map[string]string {
	m := make(map[string]string, len(r.values))
	for i, s := range r.SerializedValues() {
		m[r.schema.names[i]] = s
	}
	return m
}

// Equal reports whether o has the same schema and equal values.
func (r *Row) Equal(o *Row) bool {
	if r == nil || o == nil {
		return r == o
	}
	return r.schema == o.schema && valuesEqual(r.values, o.values)
}

func (r *Row) String() string {
	return fmt.Sprintf("%s%v", r.schema.name, r.Map())
}

// Get returns the named field of r as a T.
func Get[T any](r *Row, name string) (T, error) {
	var zero T
	v, ok := r.Get(name)
	if !ok {
		return zero, fmt.Errorf("%w: schema %q has no field %q", ErrSchemaMismatch, r.schema.name, name)
	}
	t, ok := v.(T)
	if !ok {
		return zero, &TypeMismatchError{Field: name, Index: -1, Want: r.schema.fields[r.schema.index[name]].tag, Got: typeName(v)}
	}
	return t, nil
}

// Rows is a collection of row records. Dumping it requires every row to share
// the first row's schema.
type Rows []*Row

func (rs Rows) Len() int { return len(rs) }

// Schema returns the schema of the first row, or nil for an empty collection.
func (rs Rows) Schema() *RowSchema {
	if len(rs) == 0 || rs[0] == nil {
		return nil
	}
	return rs[0].schema
}

func (rs Rows) encode(dst *delim.Writer) error {
	schema := rs.Schema()
	if schema == nil {
		if len(rs) == 0 {
			return ErrEmptyCollection
		}
		return fmt.Errorf("%w: row 0 is nil", ErrHeterogeneousCollection)
	}

	// Nothing is written unless every row shares the schema.
	for i, row := range rs {
		if row == nil || row.schema != schema {
			return fmt.Errorf("%w: row %d is not of schema %q", ErrHeterogeneousCollection, i, schema.name)
		}
	}

	w := delim.NewDictWriter(dst, schema.names)
	if err := w.WriteHeader(); err != nil {
		return err
	}
	for _, row := range rs {
		if err := w.Write(row.SerializedMap()); err != nil {
			return err
		}
	}
	return nil
}

func mapKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func valuesEqual(a, b []any) bool {
	return slices.EqualFunc(a, b, valueEqual)
}

func valueEqual(a, b any) bool {
	if ta, ok := a.(time.Time); ok {
		tb, ok := b.(time.Time)
		return ok && ta.Equal(tb)
	}
	return a == b
}
