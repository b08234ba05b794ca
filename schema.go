package csvrecord

import (
	"slices"

	"github.com/oleg578/csvrecord/internal/delim"
)

// Shape distinguishes the two record layouts.
type Shape uint8

const (
	// ShapeRow holds one record per data line.
	ShapeRow Shape = iota + 1
	// ShapeColumn holds the whole table in one record of parallel sequences.
	ShapeColumn
)

func (s Shape) String() string {
	switch s {
	case ShapeRow:
		return "row"
	case ShapeColumn:
		return "column"
	}
	return "unknown"
}

// Schema is implemented by *RowSchema and *ColumnSchema only.
type Schema interface {
	Name() string
	Shape() Shape
	Fields() []Field
	FieldNames() []string

	// checkNames compares header names, in any order, with the field names.
	checkNames(names []string) error
	// decode builds the dataset from a reader whose header already matched.
	decode(src *delim.DictReader) (Dataset, error)
}

// Dataset is the result of a load and the input of a dump: Rows or *Columns.
type Dataset interface {
	// Len is the number of data lines the dataset serializes to.
	Len() int

	// encode writes header and data lines.
	encode(dst *delim.Writer) error
}

// fieldSet is the ordered field list shared by both schema kinds.
type fieldSet struct {
	name   string
	fields []Field
	names  []string
	index  map[string]int
}

func newFieldSet(name string, fields []Field) (fieldSet, error) {
	if len(fields) == 0 {
		return fieldSet{}, &SchemaError{Schema: name, Reason: "no fields declared"}
	}
	fs := fieldSet{
		name:   name,
		fields: slices.Clone(fields),
		names:  make([]string, len(fields)),
		index:  make(map[string]int, len(fields)),
	}
	for i, f := range fields {
		if f.name == "" {
			return fieldSet{}, &SchemaError{Schema: name, Reason: "field name is empty"}
		}
		if _, dup := fs.index[f.name]; dup {
			return fieldSet{}, &SchemaError{Schema: name, Field: f.name, Reason: "declared twice"}
		}
		if !f.tag.Valid() {
			return fieldSet{}, &SchemaError{Schema: name, Field: f.name, Reason: "invalid type " + f.tag.String()}
		}
		fs.names[i] = f.name
		fs.index[f.name] = i
	}
	return fs, nil
}

func (fs *fieldSet) Name() string { return fs.name }

// Fields returns the declared fields in order.
func (fs *fieldSet) Fields() []Field { return slices.Clone(fs.fields) }

// FieldNames returns the declared field names in order.
func (fs *fieldSet) FieldNames() []string { return slices.Clone(fs.names) }

// Field looks a field up by name.
func (fs *fieldSet) Field(name string) (Field, bool) {
	i, ok := fs.index[name]
	if !ok {
		return Field{}, false
	}
	return fs.fields[i], true
}

// checkNames compares got, in any order, with the declared names.
func (fs *fieldSet) checkNames(got []string) error {
	var missing, extra []string
	seen := make(map[string]bool, len(got))
	for _, name := range got {
		if _, ok := fs.index[name]; !ok || seen[name] {
			extra = append(extra, name)
		}
		seen[name] = true
	}
	for _, name := range fs.names {
		if !seen[name] {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 && len(extra) == 0 {
		return nil
	}
	return &SchemaMismatchError{
		Expected: fs.FieldNames(),
		Header:   slices.Clone(got),
		Missing:  missing,
		Extra:    extra,
	}
}
