package csvrecord

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Built-in parsers accept either the cell text or a value that already has
// the target type, so records can be built from typed values as well.

// ParseString accepts only strings.
func ParseString(raw any) (any, error) {
	if s, ok := raw.(string); ok {
		return s, nil
	}
	return nil, fmt.Errorf("cannot use %s as string", typeName(raw))
}

func ParseInt(raw any) (any, error) {
	switch v := raw.(type) {
	case int:
		return v, nil
	case string:
		return strconv.Atoi(v)
	}
	return nil, fmt.Errorf("cannot parse %s as int", typeName(raw))
}

func ParseInt64(raw any) (any, error) {
	switch v := raw.(type) {
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case string:
		return strconv.ParseInt(v, 10, 64)
	}
	return nil, fmt.Errorf("cannot parse %s as int64", typeName(raw))
}

func ParseFloat(raw any) (any, error) {
	switch v := raw.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case string:
		return strconv.ParseFloat(v, 64)
	}
	return nil, fmt.Errorf("cannot parse %s as float64", typeName(raw))
}

func ParseBool(raw any) (any, error) {
	switch v := raw.(type) {
	case bool:
		return v, nil
	case string:
		return strconv.ParseBool(v)
	}
	return nil, fmt.Errorf("cannot parse %s as bool", typeName(raw))
}

func ParseUUID(raw any) (any, error) {
	switch v := raw.(type) {
	case uuid.UUID:
		return v, nil
	case string:
		return uuid.Parse(v)
	}
	return nil, fmt.Errorf("cannot parse %s as uuid", typeName(raw))
}

// ParseTime returns a parser reading times in layout (time.RFC3339 when empty).
func ParseTime(layout string) ParseFunc {
	if layout == "" {
		layout = time.RFC3339
	}
	return func(raw any) (any, error) {
		switch v := raw.(type) {
		case time.Time:
			return v, nil
		case string:
			return time.Parse(layout, v)
		}
		return nil, fmt.Errorf("cannot parse %s as time", typeName(raw))
	}
}

// Trimmed strips surrounding white space from string input before calling p.
func Trimmed(p ParseFunc) ParseFunc {
	return func(raw any) (any, error) {
		if s, ok := raw.(string); ok {
			raw = strings.TrimSpace(s)
		}
		return p(raw)
	}
}

// ParserFor returns the default parser of kind k.
func ParserFor(k Kind) ParseFunc {
	switch k {
	case KindString:
		return ParseString
	case KindInt:
		return ParseInt
	case KindInt64:
		return ParseInt64
	case KindFloat64:
		return ParseFloat
	case KindBool:
		return ParseBool
	case KindTime:
		return ParseTime("")
	case KindUUID:
		return ParseUUID
	}
	return Identity
}

// FormatFloat renders numbers with prec digits after the decimal point, or the
// shortest exact representation when prec is negative. FormatFloat(1) turns
// 25 into "25.0".
func FormatFloat(prec int) SerializeFunc {
	return func(v any) string {
		var f float64
		switch n := v.(type) {
		case float64:
			f = n
		case int:
			f = float64(n)
		case int64:
			f = float64(n)
		default:
			return fmt.Sprint(v)
		}
		return strconv.FormatFloat(f, 'f', prec, 64)
	}
}

// FormatTime renders time values in layout (time.RFC3339 when empty).
func FormatTime(layout string) SerializeFunc {
	if layout == "" {
		layout = time.RFC3339
	}
	return func(v any) string {
		if t, ok := v.(time.Time); ok {
			return t.Format(layout)
		}
		return fmt.Sprint(v)
	}
}
