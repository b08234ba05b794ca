package csvrecord

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Kind is the scalar element type a field holds.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindString       // string
	KindInt          // int
	KindInt64        // int64
	KindFloat64      // float64
	KindBool         // bool
	KindTime         // time.Time
	KindUUID         // uuid.UUID
)

var kindNames = [...]string{
	KindInvalid: "invalid",
	KindString:  "string",
	KindInt:     "int",
	KindInt64:   "int64",
	KindFloat64: "float64",
	KindBool:    "bool",
	KindTime:    "time",
	KindUUID:    "uuid",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Valid reports whether k names a supported element type.
func (k Kind) Valid() bool {
	return k > KindInvalid && int(k) < len(kindNames)
}

// matches reports whether v's dynamic type is the Go type k stands for.
func (k Kind) matches(v any) bool {
	switch v.(type) {
	case string:
		return k == KindString
	case int:
		return k == KindInt
	case int64:
		return k == KindInt64
	case float64:
		return k == KindFloat64
	case bool:
		return k == KindBool
	case time.Time:
		return k == KindTime
	case uuid.UUID:
		return k == KindUUID
	}
	return false
}

// TypeTag is the declared type of a field: a scalar kind, or a sequence of one.
type TypeTag struct {
	kind Kind
	seq  bool
}

// Scalar declares a single value of kind k.
func Scalar(k Kind) TypeTag { return TypeTag{kind: k} }

// SequenceOf declares a sequence whose elements are of kind k.
func SequenceOf(k Kind) TypeTag { return TypeTag{kind: k, seq: true} }

func (t TypeTag) Kind() Kind { return t.kind }
func (t TypeTag) IsSequence() bool { return t.seq }
func (t TypeTag) Elem() TypeTag { return Scalar(t.kind) }
func (t TypeTag) Valid() bool { return t.kind.Valid() }

// Matches reports whether v is a valid element for t. For sequence tags the
// check applies to one element, not to the sequence itself.
func (t TypeTag) Matches(v any) bool {
	return t.kind.matches(v)
}

func (t TypeTag) String() string {
	if t.seq {
		return "[]" + t.kind.String()
	}
	return t.kind.String()
}

// ParseTypeTag is the inverse of TypeTag.String. It also accepts "float" for
// float64 and "list[T]" for sequences.
func ParseTypeTag(s string) (TypeTag, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	seq := false
	switch {
	case strings.HasPrefix(s, "[]"):
		seq, s = true, s[2:]
	case strings.HasPrefix(s, "list[") && strings.HasSuffix(s, "]"):
		seq, s = true, s[5:len(s)-1]
	}
	if s == "float" {
		s = "float64"
	}
	for k := KindString; k.Valid(); k++ {
		if kindNames[k] == s {
			return TypeTag{kind: k, seq: seq}, nil
		}
	}
	return TypeTag{}, fmt.Errorf("%w: unknown type %q", ErrSchema, s)
}

// typeName renders the dynamic type of v for error messages.
func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	return fmt.Sprintf("%T", v)
}
