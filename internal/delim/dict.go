package delim

import (
	"errors"
	"fmt"
	"io"
)

// ErrUnknownField is returned by DictWriter.Write for a name outside the writer's field list.
var ErrUnknownField = errors.New("delim: unknown field")

// Dialect configures both directions of the delimited-text format.
type Dialect struct {
	Comma       byte
	Quote       byte
	UseCRLF     bool
	AlwaysQuote bool
}

// DefaultDialect is comma separated, double-quote quoted, CRLF terminated.
func DefaultDialect() Dialect {
	return Dialect{Comma: ',', Quote: '"', UseCRLF: true}
}

// NewReader returns a tokenizer for src configured by d.
func (d Dialect) NewReader(src io.Reader) *Reader {
	r := NewReader(src)
	if d.Comma != 0 {
		r.Comma = d.Comma
	}
	if d.Quote != 0 {
		r.Quote = d.Quote
	}
	return r
}

// NewWriter returns a record writer for dst configured by d.
func (d Dialect) NewWriter(dst io.Writer) *Writer {
	w := NewWriter(dst)
	if d.Comma != 0 {
		w.Comma = d.Comma
	}
	if d.Quote != 0 {
		w.Quote = d.Quote
	}
	w.UseCRLF = d.UseCRLF
	w.AlwaysQuote = d.AlwaysQuote
	return w
}

// DictReader reads the first record as a header and yields every following
// record as a mapping from header name to raw value.
type DictReader struct {
	r      *Reader
	header []string
	err    error
	read   bool
}

// NewDictReader wraps r. The header is read on first use.
func NewDictReader(r *Reader) *DictReader {
	return &DictReader{r: r}
}

// Header returns the header record. It returns io.EOF when the input is empty.
func (d *DictReader) Header() ([]string, error) {
	if d.read {
		return d.header, d.err
	}
	d.read = true

	rec, err := d.r.Read()
	if err != nil {
		d.err = err
		return nil, err
	}
	d.header = append([]string(nil), rec...)
	// Data records must be as wide as the header.
	d.r.FieldsPerRecord = len(d.header)
	return d.header, nil
}

// Read returns the next data record keyed by header name.
func (d *DictReader) Read() (map[string]string, error) {
	header, err := d.Header()
	if err != nil {
		return nil, err
	}
	rec, err := d.r.Read()
	if err != nil {
		return nil, err
	}
	row := make(map[string]string, len(header))
	for i, name := range header {
		row[name] = rec[i]
	}
	return row, nil
}

// Line reports the line on which the last returned record started.
func (d *DictReader) Line() int {
	return d.r.Line()
}

// DictWriter writes mappings as records in a fixed field order.
type DictWriter struct {
	w      *Writer
	fields []string
	index  map[string]int
	row    []string
}

// NewDictWriter returns a DictWriter emitting fields in the given order.
func NewDictWriter(w *Writer, fields []string) *DictWriter {
	index := make(map[string]int, len(fields))
	for i, f := range fields {
		index[f] = i
	}
	return &DictWriter{
		w:      w,
		fields: append([]string(nil), fields...),
		index:  index,
		row:    make([]string, len(fields)),
	}
}

// WriteHeader writes the field names as one record.
func (d *DictWriter) WriteHeader() error {
	return d.w.Write(d.fields)
}

// Write emits row in field order. Names absent from row are written empty.
func (d *DictWriter) Write(row map[string]string) error {
	clear(d.row)
	for name, v := range row {
		i, ok := d.index[name]
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownField, name)
		}
		d.row[i] = v
	}
	return d.w.Write(d.row)
}

// Flush flushes the underlying Writer.
func (d *DictWriter) Flush() error {
	return d.w.Flush()
}
