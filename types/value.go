package types

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ValueKind tags the variant held by a Value.
type ValueKind int

const (
	KindNull ValueKind = iota
	KindNum
	KindString
	KindBool
)

// Value is the tagged union produced by literal classification and
// expression evaluation: { Num(decimal, Family), String(text), Bool(bool),
// Null }. Num carries an arbitrary-precision decimal so that literals
// exceeding 64-bit range survive until coercion; its Family records the
// inferred narrow family (SmallInt/Integer/BigInt/Real/Double/Numeric).
type Value struct {
	kind   ValueKind
	num    decimal.Decimal
	family Family
	str    string
	b      bool
}

func Null() Value { return Value{kind: KindNull} }

func Num(d decimal.Decimal, f Family) Value {
	return Value{kind: KindNum, num: d, family: f}
}

func Str(s string) Value { return Value{kind: KindString, str: s} }

func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

func (k ValueKind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindNum:
		return "numeric"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

func (v Value) Kind() ValueKind { return v.kind }
func (v Value) IsNull() bool    { return v.kind == KindNull }

// NumValue returns the decimal payload and its ok flag; ok is false unless
// Kind() == KindNum.
func (v Value) NumValue() (decimal.Decimal, bool) {
	if v.kind != KindNum {
		return decimal.Decimal{}, false
	}
	return v.num, true
}

// NumFamily returns the narrow family recorded alongside a Num value.
func (v Value) NumFamily() Family { return v.family }

func (v Value) StringValue() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.str, true
}

func (v Value) BoolValue() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.b, true
}

func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "NULL"
	case KindNum:
		return v.num.String()
	case KindString:
		return v.str
	case KindBool:
		if v.b {
			return "t"
		}
		return "f"
	default:
		return fmt.Sprintf("value(kind=%d)", v.kind)
	}
}
