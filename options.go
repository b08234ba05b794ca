package csvrecord

import (
	"log/slog"

	"github.com/oleg578/csvrecord/internal/delim"
)

// Dialect configures the delimited-text format: delimiter, quote character,
// line terminator and quoting policy.
type Dialect = delim.Dialect

// DefaultDialect is comma separated, double-quote quoted, CRLF terminated,
// quoting only where needed.
func DefaultDialect() Dialect { return delim.DefaultDialect() }

type options struct {
	dialect Dialect
	logger  *slog.Logger
}

// Option configures a Load or Dump call.
type Option func(*options)

// WithDialect replaces the default dialect.
func WithDialect(d Dialect) Option {
	return func(o *options) { o.dialect = d }
}

// WithLogger sets the logger receiving debug records about completed calls.
// Nothing is logged by default.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func newOptions(opts []Option) options {
	o := options{
		dialect: DefaultDialect(),
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
