package csvrecord

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/oleg578/csvrecord/internal/delim"
)

// Load reads a table from r into the shape s describes: Rows for a
// *RowSchema, *Columns for a *ColumnSchema.
//
// The header must name exactly the schema's fields, in any order. Every value
// is parsed and type-checked; the first failure aborts the load and nothing is
// returned. r is read once and never closed.
func Load(r io.Reader, s Schema, opts ...Option) (Dataset, error) {
	o := newOptions(opts)

	src := delim.NewDictReader(o.dialect.NewReader(r))
	header, err := src.Header()
	switch {
	case errors.Is(err, io.EOF):
		header = nil
	case err != nil:
		return nil, fmt.Errorf("read header: %w", err)
	}
	if err := s.checkNames(header); err != nil {
		return nil, err
	}

	d, err := s.decode(src)
	if err != nil {
		return nil, err
	}
	o.logger.LogAttrs(context.Background(), slog.LevelDebug, "csvrecord: loaded",
		slog.String("schema", s.Name()),
		slog.String("shape", s.Shape().String()),
		slog.Int("rows", d.Len()),
	)
	return d, nil
}

// LoadRows is Load for a row schema.
func LoadRows(r io.Reader, s *RowSchema, opts ...Option) (Rows, error) {
	d, err := Load(r, s, opts...)
	if err != nil {
		return nil, err
	}
	return d.(Rows), nil
}

// LoadColumns is Load for a column schema.
func LoadColumns(r io.Reader, s *ColumnSchema, opts ...Option) (*Columns, error) {
	d, err := Load(r, s, opts...)
	if err != nil {
		return nil, err
	}
	return d.(*Columns), nil
}

// LoadString is Load reading from text.
func LoadString(text string, s Schema, opts ...Option) (Dataset, error) {
	return Load(strings.NewReader(text), s, opts...)
}
