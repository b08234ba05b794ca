package csvrecord

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSchema is returned when a schema declaration is invalid.
	ErrSchema = errors.New("csvrecord: invalid schema")
	// ErrTypeMismatch is returned when a parsed value does not have its field's declared type.
	ErrTypeMismatch = errors.New("csvrecord: type mismatch")
	// ErrSchemaMismatch is returned when input names do not match the schema's field names.
	ErrSchemaMismatch = errors.New("csvrecord: fields do not match schema")
	// ErrHeterogeneousCollection is returned when dumping rows built from different schemas.
	ErrHeterogeneousCollection = errors.New("csvrecord: rows of different schemas")
	// ErrParse is returned when a field's parser fails.
	ErrParse = errors.New("csvrecord: parse failed")
	// ErrRaggedColumns is returned when the columns of a column record differ in length.
	ErrRaggedColumns = errors.New("csvrecord: columns differ in length")
	// ErrEmptyCollection is returned when dumping zero rows, which carry no schema to write a header from.
	ErrEmptyCollection = errors.New("csvrecord: empty row collection")
)

// SchemaError describes an invalid schema declaration.
type SchemaError struct {
	Schema string
	Field  string
	Reason string
}

func (e *SchemaError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field == "" {
		return fmt.Sprintf("csvrecord: schema %q: %s", e.Schema, e.Reason)
	}
	return fmt.Sprintf("csvrecord: schema %q: field %q: %s", e.Schema, e.Field, e.Reason)
}

func (e *SchemaError) Unwrap() error { return ErrSchema }

// TypeMismatchError reports a parsed value whose runtime type disagrees with
// the declared type. Index is the element position in a column, or -1 for a
// row field.
type TypeMismatchError struct {
	Field string
	Index int
	Want  TypeTag
	Got   string
}

func (e *TypeMismatchError) Error() string {
	if e == nil {
		return ""
	}
	if e.Index < 0 {
		return fmt.Sprintf("csvrecord: parsed value for %s has type %s, want %s", e.Field, e.Got, e.Want)
	}
	return fmt.Sprintf("csvrecord: parsed value %d for %s has type %s, want %s", e.Index, e.Field, e.Got, e.Want.Elem())
}

func (e *TypeMismatchError) Unwrap() error { return ErrTypeMismatch }

// SchemaMismatchError reports a header whose names differ from the schema's.
type SchemaMismatchError struct {
	Expected []string
	Header   []string
	Missing  []string
	Extra    []string
}

func (e *SchemaMismatchError) Error() string {
	if e == nil {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "csvrecord: header %q does not have the expected columns %q", e.Header, e.Expected)
	if len(e.Missing) > 0 {
		fmt.Fprintf(&b, ", missing %q", e.Missing)
	}
	if len(e.Extra) > 0 {
		fmt.Fprintf(&b, ", unexpected %q", e.Extra)
	}
	return b.String()
}

func (e *SchemaMismatchError) Unwrap() error { return ErrSchemaMismatch }

// FieldError attaches a field, and for columns an element index, to a failure
// while building a record.
type FieldError struct {
	Field string
	Index int
	Kind  error // ErrParse or ErrRaggedColumns
	Err   error
}

func (e *FieldError) Error() string {
	if e == nil {
		return ""
	}
	if e.Index < 0 {
		return fmt.Sprintf("%v: field %s: %v", e.Kind, e.Field, e.Err)
	}
	return fmt.Sprintf("%v: field %s, value %d: %v", e.Kind, e.Field, e.Index, e.Err)
}

// Unwrap exposes both the category and the cause to errors.Is and errors.As.
func (e *FieldError) Unwrap() []error {
	if e == nil {
		return nil
	}
	return []error{e.Kind, e.Err}
}
