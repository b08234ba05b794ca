package csvrecord

import "fmt"

// ParseFunc converts a raw value, usually the string read from a cell, into
// the value stored in a record.
type ParseFunc func(raw any) (any, error)

// SerializeFunc renders a stored value as cell text.
type SerializeFunc func(v any) string

// Identity is the default parser: the raw value is stored unchanged.
func Identity(raw any) (any, error) { return raw, nil }

// Stringify is the default serializer.
func Stringify(v any) string { return fmt.Sprint(v) }

// Field declares one named slot of a schema: its type and how its values are
// parsed from and serialized to text. A Field is immutable once built.
type Field struct {
	name      string
	tag       TypeTag
	parse     ParseFunc
	serialize SerializeFunc
}

// FieldOption customizes a Field at construction.
type FieldOption func(*Field)

// WithParser sets the parse function. A nil p keeps the default.
func WithParser(p ParseFunc) FieldOption {
	return func(f *Field) {
		if p != nil {
			f.parse = p
		}
	}
}

// WithSerializer sets the serialize function. A nil s keeps the default.
func WithSerializer(s SerializeFunc) FieldOption {
	return func(f *Field) {
		if s != nil {
			f.serialize = s
		}
	}
}

// NewField declares a field. Without options values are stored as given and
// serialized with fmt.Sprint.
func NewField(name string, tag TypeTag, opts ...FieldOption) Field {
	f := Field{
		name:      name,
		tag:       tag,
		parse:     Identity,
		serialize: Stringify,
	}
	for _, opt := range opts {
		opt(&f)
	}
	return f
}

func (f Field) Name() string { return f.name }

func (f Field) Type() TypeTag { return f.tag }

// Parse applies the field's parser to raw.
func (f Field) Parse(raw any) (any, error) { return f.parse(raw) }

// Serialize applies the field's serializer to v.
func (f Field) Serialize(v any) string { return f.serialize(v) }

// withType returns a copy of f declaring tag instead.
func (f Field) withType(tag TypeTag) Field {
	f.tag = tag
	return f
}
