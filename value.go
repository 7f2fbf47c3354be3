package indexpager

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Kind enumerates the scalar kinds an index field value may hold.
// The declaration order is the cross-kind sort order.
type Kind uint8

const (
	KindNull Kind = iota
	KindNumber
	KindBool
	KindString
	KindID
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindID:
		return "id"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Value is a single index field value. The zero Value is null.
//
// Values of different kinds compare in a fixed total order:
//
//	null < number < bool < string < id
//
// The cross-kind order is arbitrary but stable; a storage backend must sort
// the same fields the same way for pagination to be gap-free.
type Value struct {
	kind Kind
	num  float64
	b    bool
	str  string
}

func Null() Value            { return Value{} }
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }
func Bool(b bool) Value      { return Value{kind: KindBool, b: b} }
func String(s string) Value  { return Value{kind: KindString, str: s} }

// ID wraps an opaque document identifier. IDs compare as strings but occupy
// their own slot in the cross-kind order and round-trip through the cursor
// encoding without degrading to plain strings.
func ID(id string) Value { return Value{kind: KindID, str: id} }

func (v Value) Kind() Kind { return v.kind }

// Native returns the value as a plain Go value suitable for database
// drivers: nil, float64, bool or string.
func (v Value) Native() any {
	switch v.kind {
	case KindNumber:
		return v.num
	case KindBool:
		return v.b
	case KindString, KindID:
		return v.str
	default:
		return nil
	}
}

// Compare returns -1, 0 or 1. Comparison is total and never fails: values of
// different kinds order by Kind.
func (v Value) Compare(other Value) int {
	if v.kind != other.kind {
		if v.kind < other.kind {
			return -1
		}
		return 1
	}

	switch v.kind {
	case KindNumber:
		switch {
		case v.num < other.num:
			return -1
		case v.num > other.num:
			return 1
		}
	case KindBool:
		switch {
		case !v.b && other.b:
			return -1
		case v.b && !other.b:
			return 1
		}
	case KindString, KindID:
		switch {
		case v.str < other.str:
			return -1
		case v.str > other.str:
			return 1
		}
	}

	return 0
}

func (v Value) Equal(other Value) bool {
	return v.Compare(other) == 0
}

// String - implements fmt.Stringer.
func (v Value) String() string {
	switch v.kind {
	case KindNumber:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindString:
		return strconv.Quote(v.str)
	case KindID:
		return "id:" + v.str
	default:
		return "null"
	}
}

// idWrapper is the wire form of KindID values. Plain JSON scalars cover the
// remaining kinds.
type idWrapper struct {
	ID string `json:"$id"`
}

// MarshalJSON - implements json.Marshaler. The encoding is the cursor wire
// format and must round-trip exactly, see EncodeCursor.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindID:
		return json.Marshal(idWrapper{ID: v.str})
	default:
		return json.Marshal(v.Native())
	}
}

// UnmarshalJSON - implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch rt := raw.(type) {
	case nil:
		*v = Null()
	case float64:
		*v = Number(rt)
	case bool:
		*v = Bool(rt)
	case string:
		*v = String(rt)
	case map[string]any:
		id, ok := rt["$id"].(string)
		if !ok || len(rt) != 1 {
			return fmt.Errorf("unexpected object in value encoding: %s", string(data))
		}
		*v = ID(id)
	default:
		return fmt.Errorf("unsupported value encoding: %s", string(data))
	}

	return nil
}

var (
	_ json.Marshaler   = Value{}
	_ json.Unmarshaler = (*Value)(nil)
	_ fmt.Stringer     = Value{}
)
