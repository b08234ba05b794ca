// # csvrecord: Schema-Driven Mapping Between Delimited Text and Typed Records
//
// csvrecord converts rows of comma-separated text into typed records and back.
// A caller declares the fields of a record once, each with a type, a parser and
// a serializer, and the package does the rest in both directions.
//
// # Shapes
//
// - RowSchema: one Row per data line. Load returns Rows.
// - ColumnSchema: one Columns value for the whole table, every field a sequence
// with one element per line. Load returns *Columns.
//
// # Features
//
// - Explicit type tags (Scalar, SequenceOf) checked once, at record construction.
// - Header validation by name set: column order in the input does not matter.
// - Load, LoadString, Dump, DumpString for streams and strings.
// - Built-in codecs for int, int64, float64, bool, time and UUID values.
// - YAML schema documents (ParseSchema) and YAML config files (LoadConfig).
// - Errors matchable with errors.Is (ErrSchema, ErrTypeMismatch,
// ErrSchemaMismatch, ErrHeterogeneousCollection, ErrParse) and inspectable with
// errors.As (SchemaError, TypeMismatchError, SchemaMismatchError, FieldError).
//
// # Getting Started
//
//	schema := csvrecord.MustRowSchema("sample",
//		csvrecord.NewField("filename", csvrecord.Scalar(csvrecord.KindString)),
//		csvrecord.NewField("temp", csvrecord.Scalar(csvrecord.KindInt),
//			csvrecord.WithParser(csvrecord.ParseInt),
//			csvrecord.WithSerializer(csvrecord.FormatFloat(1))),
//	)
//	rows, err := csvrecord.LoadRows(file, schema)
package csvrecord
