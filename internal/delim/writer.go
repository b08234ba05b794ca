package delim

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

var (
	errNilWriter      = errors.New("delim: writer is nil")
	errWriterNoTarget = errors.New("delim: writer destination cannot be nil")
)

// Writer emits delimited records through an internal buffer.
type Writer struct {
	dst *bufio.Writer

	// Comma is the field delimiter. Default is ','.
	Comma byte
	// Quote is the quote character. Default is '"'.
	Quote byte
	// UseCRLF writes records terminated with \r\n when set.
	UseCRLF bool
	// AlwaysQuote forces quoting for all fields when enabled.
	AlwaysQuote bool

	line []byte
	err  error
}

// NewWriter creates a Writer that buffers output to w. It panics if w is nil.
func NewWriter(w io.Writer) *Writer {
	if w == nil {
		panic(errWriterNoTarget.Error())
	}
	return &Writer{
		dst:   bufio.NewWriterSize(w, defaultBufferSize),
		Comma: ',',
		Quote: '"',
	}
}

// Reset discards buffered state and redirects output to dst, keeping the configuration.
func (w *Writer) Reset(dst io.Writer) {
	if w == nil {
		panic(errNilWriter.Error())
	}
	if dst == nil {
		panic(errWriterNoTarget.Error())
	}
	if w.dst == nil {
		w.dst = bufio.NewWriterSize(dst, defaultBufferSize)
	} else {
		w.dst.Reset(dst)
	}
	w.err = nil
}

// Write emits a single record terminated with the configured line ending.
func (w *Writer) Write(record []string) error {
	if w == nil {
		return errNilWriter
	}
	if w.dst == nil {
		return errWriterNoTarget
	}
	if w.err != nil {
		return w.err
	}

	comma, quote := w.Comma, w.Quote
	if comma == 0 {
		comma = ','
	}
	if quote == 0 {
		quote = '"'
	}

	w.line = w.line[:0]
	for i, field := range record {
		if i > 0 {
			w.line = append(w.line, comma)
		}
		// A lone empty field would otherwise read back as a blank line.
		mustQuote := w.AlwaysQuote || (len(record) == 1 && field == "")
		w.line = appendField(w.line, field, comma, quote, mustQuote)
	}
	if w.UseCRLF {
		w.line = append(w.line, '\r', '\n')
	} else {
		w.line = append(w.line, '\n')
	}

	if _, err := w.dst.Write(w.line); err != nil {
		w.err = err
		return err
	}
	return nil
}

// WriteAll writes multiple records, stopping at the first error.
func (w *Writer) WriteAll(records [][]string) error {
	if w == nil {
		return errNilWriter
	}
	for _, record := range records {
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes pending buffered data to the underlying writer.
func (w *Writer) Flush() error {
	if w == nil {
		return errNilWriter
	}
	if w.dst == nil {
		return errWriterNoTarget
	}
	if w.err != nil {
		return w.err
	}
	if err := w.dst.Flush(); err != nil {
		w.err = err
		return err
	}
	return nil
}

// Error reports the first error encountered by the writer.
func (w *Writer) Error() error {
	if w == nil {
		return errNilWriter
	}
	return w.err
}

func appendField(dst []byte, field string, comma, quote byte, force bool) []byte {
	if !force && !needsQuote(field, comma, quote) {
		return append(dst, field...)
	}
	dst = append(dst, quote)
	for {
		i := strings.IndexByte(field, quote)
		if i < 0 {
			break
		}
		dst = append(dst, field[:i+1]...)
		dst = append(dst, quote)
		field = field[i+1:]
	}
	dst = append(dst, field...)
	return append(dst, quote)
}

func needsQuote(field string, comma, quote byte) bool {
	for i := 0; i < len(field); i++ {
		switch field[i] {
		case comma, quote, '\r', '\n':
			return true
		}
	}
	return false
}
