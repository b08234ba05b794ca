package delim

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

const defaultBufferSize = 1 << 10 // 1024 bytes

var (
	// ErrBareQuote is returned when an unexpected quote is found in an unquoted field.
	ErrBareQuote = errors.New("delim: bare quote in non-quoted field")
	// ErrUnterminatedQuote is returned when a quoted field is not closed before EOF.
	ErrUnterminatedQuote = errors.New("delim: unterminated quoted field")
	// ErrFieldCount is returned when a record contains an unexpected number of fields.
	ErrFieldCount = errors.New("delim: wrong number of fields")
)

// ParseError contains location information for parsing errors.
type ParseError struct {
	Line   int
	Column int
	Err    error
}

// Error formats the parse error message with the stored line, column, and Err values.
func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("delim: parse error on line %d, column %d: %v", e.Line, e.Column, e.Err)
}

// Unwrap returns the underlying Err so ParseError participates in errors.Unwrap.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Reader splits delimited text into records of raw string fields.
type Reader struct {
	src *bufio.Reader

	// Comma is the field delimiter. Default is ','.
	Comma byte
	// Quote is the quote character. Default is '"'.
	Quote byte
	// ReuseRecord indicates whether Read should reuse the backing array of the returned slice.
	ReuseRecord bool
	// FieldsPerRecord expects each record to contain this many fields. Zero captures
	// the width of the first record, a negative value disables the check.
	FieldsPerRecord int

	field  []byte
	ends   []int
	record []string

	line       int // current line, 1-based
	col        int // bytes consumed on the current line
	recordLine int
	done       bool
}

// NewReader creates a Reader consuming delimited text from r. It panics if r is nil.
func NewReader(r io.Reader) *Reader {
	if r == nil {
		panic("delim: reader source cannot be nil")
	}
	return &Reader{
		src:   bufio.NewReaderSize(r, defaultBufferSize),
		Comma: ',',
		Quote: '"',
		field: make([]byte, 0, 256),
		ends:  make([]int, 0, 16),
		line:  1,
	}
}

// Line reports the line on which the most recently returned record started.
func (r *Reader) Line() int {
	return r.recordLine
}

// Read returns the next record. Blank lines are skipped; io.EOF signals that
// no more records remain.
func (r *Reader) Read() ([]string, error) {
	if r == nil || r.src == nil || r.done {
		return nil, io.EOF
	}
	rec, err := r.readRecord()
	if err != nil {
		if err == io.EOF {
			r.done = true
		}
		return nil, err
	}

	switch {
	case r.FieldsPerRecord == 0:
		r.FieldsPerRecord = len(rec)
	case r.FieldsPerRecord > 0 && len(rec) != r.FieldsPerRecord:
		return rec, &ParseError{Line: r.recordLine, Column: 1, Err: ErrFieldCount}
	}
	return rec, nil
}

// ReadAll reads the remaining records until io.EOF.
func (r *Reader) ReadAll() ([][]string, error) {
	var records [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return nil, err
		}
		if r.ReuseRecord {
			rec = append([]string(nil), rec...)
		}
		records = append(records, rec)
	}
}

func (r *Reader) readRecord() ([]string, error) {
	comma, quote := r.delimiters()

	r.field = r.field[:0]
	r.ends = r.ends[:0]
	start := r.line

	fieldStart := 0
	quoted := false   // current field opened with a quote
	inQuotes := false // inside an open quoted section

	for {
		b, err := r.readByte()
		if err != nil {
			if err != io.EOF {
				return nil, err
			}
			if inQuotes {
				r.done = true
				return nil, &ParseError{Line: r.line, Column: r.col + 1, Err: ErrUnterminatedQuote}
			}
			if len(r.ends) == 0 && len(r.field) == 0 && !quoted {
				return nil, io.EOF
			}
			r.done = true
			r.ends = append(r.ends, len(r.field))
			r.recordLine = start
			return r.build(), nil
		}

		if inQuotes {
			if b != quote {
				r.field = append(r.field, b)
				continue
			}
			next, err := r.src.Peek(1)
			if err == nil && next[0] == quote {
				_, _ = r.readByte()
				r.field = append(r.field, quote)
				continue
			}
			if err != nil && err != io.EOF {
				return nil, err
			}
			inQuotes = false
			continue
		}

		switch b {
		case comma:
			r.ends = append(r.ends, len(r.field))
			fieldStart = len(r.field)
			quoted = false
		case '\r', '\n':
			if b == '\r' {
				if err := r.skipLF(); err != nil {
					return nil, err
				}
			}
			if len(r.ends) == 0 && len(r.field) == 0 && !quoted {
				// Blank line.
				start = r.line
				continue
			}
			r.ends = append(r.ends, len(r.field))
			r.recordLine = start
			return r.build(), nil
		case quote:
			if len(r.field) == fieldStart && !quoted {
				inQuotes = true
				quoted = true
				continue
			}
			return nil, &ParseError{Line: r.line, Column: r.col, Err: ErrBareQuote}
		default:
			r.field = append(r.field, b)
		}
	}
}

// skipLF consumes the '\n' of a CRLF pair, or accounts for a lone '\r' as a line break.
func (r *Reader) skipLF() error {
	next, err := r.src.Peek(1)
	if err == nil && next[0] == '\n' {
		_, _ = r.readByte()
		return nil
	}
	if err != nil && err != io.EOF {
		return err
	}
	r.line++
	r.col = 0
	return nil
}

func (r *Reader) readByte() (byte, error) {
	b, err := r.src.ReadByte()
	if err != nil {
		return 0, err
	}
	if b == '\n' {
		r.line++
		r.col = 0
	} else {
		r.col++
	}
	return b, nil
}

// build slices the accumulated field bytes into the record using the recorded end offsets.
func (r *Reader) build() []string {
	n := len(r.ends)
	if r.ReuseRecord && cap(r.record) >= n {
		r.record = r.record[:n]
	} else {
		r.record = make([]string, n)
	}

	s := string(r.field)
	start := 0
	for i, end := range r.ends {
		r.record[i] = s[start:end]
		start = end
	}
	return r.record
}

func (r *Reader) delimiters() (comma, quote byte) {
	comma, quote = r.Comma, r.Quote
	if comma == 0 {
		comma = ','
	}
	if quote == 0 {
		quote = '"'
	}
	return comma, quote
}
