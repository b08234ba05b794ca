package csvrecord

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Dump writes d to w: a header line of field names in declaration order, then
// one line per record. For Rows every row must share the first row's schema.
// Output is flushed before Dump returns; w is never closed.
func Dump(w io.Writer, d Dataset, opts ...Option) error {
	if d == nil {
		return fmt.Errorf("%w: nil dataset", ErrEmptyCollection)
	}
	o := newOptions(opts)

	dst := o.dialect.NewWriter(w)
	if err := d.encode(dst); err != nil {
		return err
	}
	if err := dst.Flush(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	o.logger.LogAttrs(context.Background(), slog.LevelDebug, "csvrecord: dumped",
		slog.Int("rows", d.Len()),
	)
	return nil
}

// DumpString is Dump returning the text instead of writing it.
func DumpString(d Dataset, opts ...Option) (string, error) {
	var b strings.Builder
	if err := Dump(&b, d, opts...); err != nil {
		return "", err
	}
	return b.String(), nil
}
