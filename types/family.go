// Package types implements the SQL type system: type families, the typed
// value union produced by analysis, and the packed binary row format used by
// the row store.
package types

import "fmt"

// Family is a closed enumeration of SQL type families. Families group SQL
// types that share arithmetic and comparison rules; a Type always maps to
// exactly one Family.
type Family int

const (
	// Unknown is the family of an unresolved literal (e.g. a quoted string
	// before context fixes its type). It is absorbed by any other family
	// under Resultant.
	Unknown Family = iota
	SmallInt
	Integer
	BigInt
	Real
	Double
	Numeric
	Bool
	String
)

func (f Family) String() string {
	switch f {
	case Unknown:
		return "unknown"
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
	case Bool:
		return "boolean"
	case String:
		return "string"
	default:
		return fmt.Sprintf("family(%d)", int(f))
	}
}

// IsInteger reports whether f is one of the integer families.
func (f Family) IsInteger() bool {
	switch f {
	case SmallInt, Integer, BigInt:
		return true
	default:
		return false
	}
}

// IsFloat reports whether f is one of the approximate-floating families.
func (f Family) IsFloat() bool {
	switch f {
	case Real, Double:
		return true
	default:
		return false
	}
}

// IsNumeric reports whether f participates in arithmetic (integer, float, or
// arbitrary-precision numeric).
func (f Family) IsNumeric() bool {
	return f.IsInteger() || f.IsFloat() || f == Numeric
}

// integerRank and floatRank encode the natural widening orders named in the
// spec: SmallInt < Integer < BigInt < Numeric, and Real < Double < Numeric.
var integerRank = map[Family]int{SmallInt: 0, Integer: 1, BigInt: 2, Numeric: 3}
var floatRank = map[Family]int{Real: 0, Double: 1, Numeric: 2}

// Resultant computes the least family that can losslessly hold both f and
// other: the widening used when two differently-sized operands meet in a
// binary operator. Unknown is absorbed by any family.
func (f Family) Resultant(other Family) Family {
	if f == Unknown {
		return other
	}
	if other == Unknown {
		return f
	}
	if f == other {
		return f
	}

	if rf, ok := integerRank[f]; ok {
		if ro, ok := integerRank[other]; ok {
			if rf >= ro {
				return f
			}
			return other
		}
	}
	if rf, ok := floatRank[f]; ok {
		if ro, ok := floatRank[other]; ok {
			if rf >= ro {
				return f
			}
			return other
		}
	}

	// Mixed integer/float both participate in Numeric; anything else that
	// still needs widening settles on Numeric, the top of both ranks.
	if f.IsNumeric() && other.IsNumeric() {
		return Numeric
	}

	// Incomparable families (e.g. Bool vs String): the caller is expected to
	// have already rejected this combination via operator.Accepts. Resultant
	// never panics; it falls back to the left operand to stay total.
	return f
}

// Rank returns a total order consistent with the widening order above, used
// by tests asserting monotonicity of Resultant. Families outside either
// numeric rank (Bool, String, Unknown) rank below every numeric family.
func (f Family) Rank() int {
	if r, ok := integerRank[f]; ok {
		return r + 10
	}
	if r, ok := floatRank[f]; ok {
		return r + 10
	}
	if f == Numeric {
		return 13
	}
	return -1
}
