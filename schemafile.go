package csvrecord

import (
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// SchemaDoc is the YAML form of a schema.
//
//	name: weather
//	shape: row
//	fields:
//	  - name: filename
//	    type: string
//	  - name: temp
//	    type: float
//	    precision: 1
type SchemaDoc struct {
	Name   string     `yaml:"name"`
	Shape  string     `yaml:"shape"`
	Fields []FieldDoc `yaml:"fields"`
}

// FieldDoc is the YAML form of a field.
type FieldDoc struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
	// Layout is the time layout for time fields.
	Layout string `yaml:"layout,omitempty"`
	// Precision, when set, serializes float values with that many decimals.
	// It is rejected for integer types.
	Precision *int `yaml:"precision,omitempty"`
	// Trim strips surrounding white space before parsing.
	Trim bool `yaml:"trim,omitempty"`
}

// ParseSchema decodes a YAML schema document.
func ParseSchema(data []byte) (Schema, error) {
	var doc SchemaDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: decode document: %v", ErrSchema, err)
	}
	return doc.Schema()
}

// ReadSchema decodes a YAML schema document from r.
func ReadSchema(r io.Reader) (Schema, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read schema: %w", err)
	}
	return ParseSchema(data)
}

// Schema builds the schema the document declares. Each field gets its kind's
// default parser.
func (d SchemaDoc) Schema() (Schema, error) {
	fields := make([]Field, len(d.Fields))
	for i, fd := range d.Fields {
		f, err := fd.Field()
		if err != nil {
			return nil, fmt.Errorf("schema %q: %w", d.Name, err)
		}
		fields[i] = f
	}

	// Never wrap a nil *RowSchema or *ColumnSchema in a Schema.
	switch strings.ToLower(strings.TrimSpace(d.Shape)) {
	case "", "row", "rows":
		s, err := NewRowSchema(d.Name, fields...)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "column", "columns":
		s, err := NewColumnSchema(d.Name, fields...)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	return nil, &SchemaError{Schema: d.Name, Reason: fmt.Sprintf("unknown shape %q", d.Shape)}
}

// Field builds the field the document declares.
func (fd FieldDoc) Field() (Field, error) {
	tag, err := ParseTypeTag(fd.Type)
	if err != nil {
		return Field{}, fmt.Errorf("field %q: %w", fd.Name, err)
	}

	parse := ParserFor(tag.Kind())
	var serialize SerializeFunc
	switch tag.Kind() {
	case KindTime:
		parse = ParseTime(fd.Layout)
		serialize = FormatTime(fd.Layout)
	case KindFloat64:
		if fd.Precision != nil {
			serialize = FormatFloat(*fd.Precision)
		}
	case KindInt, KindInt64:
		// Decimals would not read back through ParseInt.
		if fd.Precision != nil {
			return Field{}, fmt.Errorf("%w: field %q: precision needs a float type, got %s", ErrSchema, fd.Name, tag)
		}
	}
	if fd.Trim {
		parse = Trimmed(parse)
	}
	return NewField(fd.Name, tag, WithParser(parse), WithSerializer(serialize)), nil
}
