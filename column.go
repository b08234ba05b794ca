package csvrecord

import (
	"fmt"
	"io"
	"iter"
	"slices"

	"github.com/oleg578/csvrecord/internal/delim"
)

// ColumnSchema describes a record holding a whole table: every field is a
// sequence with one element per data line.
type ColumnSchema struct {
	fieldSet
	rows *RowSchema
}

// NewColumnSchema declares a column schema. Every field must be declared with
// SequenceOf; this is checked before any data is seen.
func NewColumnSchema(name string, fields ...Field) (*ColumnSchema, error) {
	fs, err := newFieldSet(name, fields)
	if err != nil {
		return nil, err
	}
	elems := make([]Field, len(fs.fields))
	for i, f := range fs.fields {
		if !f.tag.IsSequence() {
			return nil, &SchemaError{Schema: name, Field: f.name, Reason: "value should be a sequence"}
		}
		elems[i] = f.withType(f.tag.Elem())
	}
	rows, err := NewRowSchema(name, elems...)
	if err != nil {
		return nil, err
	}
	return &ColumnSchema{fieldSet: fs, rows: rows}, nil
}

// MustColumnSchema is like NewColumnSchema but panics on error.
func MustColumnSchema(name string, fields ...Field) *ColumnSchema {
	s, err := NewColumnSchema(name, fields...)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *ColumnSchema) Shape() Shape { return ShapeColumn }

// RowSchema returns the element-wise row schema: same names, parsers and
// serializers, scalar types.
func (s *ColumnSchema) RowSchema() *RowSchema { return s.rows }

// New builds a column record from one raw sequence per field. Each element is
// parsed on its own and checked against the field's element type. All
// sequences must have the same length.
func (s *ColumnSchema) New(raw map[string][]any) (*Columns, error) {
	if err := s.checkNames(mapKeys(raw)); err != nil {
		return nil, err
	}

	n := len(raw[s.names[0]])
	cols := make([][]any, len(s.fields))
	for i, f := range s.fields {
		in := raw[f.name]
		if len(in) != n {
			return nil, &FieldError{
				Field: f.name,
				Index: -1,
				Kind:  ErrRaggedColumns,
				Err:   fmt.Errorf("has %d values, %s has %d", len(in), s.names[0], n),
			}
		}
		out := make([]any, n)
		for j, rv := range in {
			v, err := f.parse(rv)
			if err != nil {
				return nil, &FieldError{Field: f.name, Index: j, Kind: ErrParse, Err: err}
			}
			if !f.tag.Matches(v) {
				return nil, &TypeMismatchError{Field: f.name, Index: j, Want: f.tag, Got: typeName(v)}
			}
			out[j] = v
		}
		cols[i] = out
	}
	return &Columns{schema: s, cols: cols, n: n}, nil
}

func (s *ColumnSchema) decode(src *delim.DictReader) (Dataset, error) {
	raw := make(map[string][]any, len(s.fields))
	for _, name := range s.names {
		raw[name] = nil
	}
	for {
		rec, err := src.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		for _, name := range s.names {
			raw[name] = append(raw[name], rec[name])
		}
	}
	cols, err := s.New(raw)
	if err != nil {
		return nil, err
	}
	return cols, nil
}

// Columns is a whole table held as parallel sequences, one per field.
type Columns struct {
	schema *ColumnSchema
	cols   [][]any
	n      int
}

func (c *Columns) Schema() *ColumnSchema { return c.schema }

// Len is the number of rows, the length of every column.
func (c *Columns) Len() int {
	if c == nil {
		return 0
	}
	return c.n
}

// Column returns a copy of the named column.
func (c *Columns) Column(name string) ([]any, bool) {
	i, ok := c.schema.index[name]
	if !ok {
		return nil, false
	}
	return slices.Clone(c.cols[i]), true
}

// Rows yields one name to value mapping per row index. Each range over the
// result starts a new pass.
func (c *Columns) Rows() iter.Seq[map[string]any] {
	return func(yield func(map[string]any) bool) {
		for i := 0; i < c.n; i++ {
			row := make(map[string]any, len(c.cols))
			for j, name := range c.schema.names {
				row[name] = c.cols[j][i]
			}
			if !yield(row) {
				return
			}
		}
	}
}

// SerializedRows is Rows with every value run through its field's serializer.
func (c *Columns) SerializedRows() iter.Seq[map[string]string] {
	return func(yield func(map[string]string) bool) {
		for i := 0; i < c.n; i++ {
			row := make(map[string]string, len(c.cols))
			for j, f := range c.schema.fields {
				row[f.name] = f.serialize(c.cols[j][i])
			}
			if !yield(row) {
				return
			}
		}
	}
}

// Records transposes c into row records of c.Schema().RowSchema(). Values are
// already validated and are not parsed again.
func (c *Columns) Records() Rows {
	rows := make(Rows, c.n)
	for i := range rows {
		values := make([]any, len(c.cols))
		for j := range c.cols {
			values[j] = c.cols[j][i]
		}
		rows[i] = &Row{schema: c.schema.rows, values: values}
	}
	return rows
}

// Equal reports whether o has the same schema and equal columns.
func (c *Columns) Equal(o *Columns) bool {
	if c == nil || o == nil {
		return c == o
	}
	return c.schema == o.schema && slices.EqualFunc(c.cols, o.cols, valuesEqual)
}

func (c *Columns) encode(dst *delim.Writer) error {
	if c == nil {
		return fmt.Errorf("%w: nil columns", ErrEmptyCollection)
	}
	w := delim.NewDictWriter(dst, c.schema.names)
	if err := w.WriteHeader(); err != nil {
		return err
	}
	for row := range c.SerializedRows() {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// ColumnOf returns the named column of c as a []T.
func ColumnOf[T any](c *Columns, name string) ([]T, error) {
	i, ok := c.schema.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: schema %q has no field %q", ErrSchemaMismatch, c.schema.name, name)
	}
	out := make([]T, c.n)
	for j, v := range c.cols[i] {
		t, ok := v.(T)
		if !ok {
			return nil, &TypeMismatchError{Field: name, Index: j, Want: c.schema.fields[i].tag, Got: typeName(v)}
		}
		out[j] = t
	}
	return out, nil
}

// Raw converts typed values into the []any form ColumnSchema.New accepts.
func Raw[T any](vs []T) []any {
	out := make([]any, len(vs))
	for i, v := range vs {
		out[i] = v
	}
	return out
}
