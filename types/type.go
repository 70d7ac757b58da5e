package types

import "fmt"

// CharKind distinguishes the fixed-width Char(n) from the variable-width
// VarChar(n); both map to the String family and share a representation, so
// the distinction matters only for display and DDL round-tripping.
type CharKind int

const (
	CharFixed CharKind = iota
	CharVarying
)

// Type is a concrete SQL type: a Family plus the length parameters that
// family allows. Every Type maps to exactly one Family.
type Type struct {
	family Family
	kind   CharKind
	// length is meaningful only for Char/VarChar (the declared length in
	// characters). It is zero for every other family.
	length int
}

// Family returns the type family this Type belongs to.
func (t Type) Family() Family { return t.family }

// Length returns the declared length for Char/VarChar types, or 0 for
// types that don't carry one.
func (t Type) Length() int { return t.length }

// Kind distinguishes Char from VarChar for String-family types.
func (t Type) Kind() CharKind { return t.kind }

func (t Type) String() string {
	switch t.family {
	case Bool:
		return "bool"
	case SmallInt:
		return "smallint"
	case Integer:
		return "integer"
	case BigInt:
		return "bigint"
	case Real:
		return "real"
	case Double:
		return "double precision"
	case Numeric:
		return "numeric"
	case String:
		if t.kind == CharFixed {
			return fmt.Sprintf("char(%d)", t.length)
		}
		return fmt.Sprintf("varchar(%d)", t.length)
	default:
		return t.family.String()
	}
}

// Constructors for every Type named in spec.md §3.

func NewBool() Type     { return Type{family: Bool} }
func NewSmallInt() Type { return Type{family: SmallInt} }
func NewInteger() Type  { return Type{family: Integer} }
func NewBigInt() Type   { return Type{family: BigInt} }
func NewReal() Type     { return Type{family: Real} }
func NewDouble() Type   { return Type{family: Double} }
func NewNumeric() Type  { return Type{family: Numeric} }

func NewChar(n int) Type {
	return Type{family: String, kind: CharFixed, length: n}
}

func NewVarChar(n int) Type {
	return Type{family: String, kind: CharVarying, length: n}
}
