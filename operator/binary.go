package operator

import "github.com/nanodb/nanodb/types"

// Binary is one of the binary operators named in spec.md §4.B, partitioned
// into arithmetic, comparison, logical, bitwise, pattern, and string groups.
type Binary int

const (
	Add Binary = iota
	Sub
	Mul
	Div
	Mod
	Exp

	Eq
	NotEq
	Lt
	Gt
	LtEq
	GtEq

	And
	Or

	BitwiseAnd
	BitwiseOr
	BitwiseXor
	ShiftLeft
	ShiftRight

	Like
	NotLike

	Concat
)

func (b Binary) String() string {
	switch b {
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mul:
		return "*"
	case Div:
		return "/"
	case Mod:
		return "%"
	case Exp:
		return "^"
	case Eq:
		return "="
	case NotEq:
		return "<>"
	case Lt:
		return "<"
	case Gt:
		return ">"
	case LtEq:
		return "<="
	case GtEq:
		return ">="
	case And:
		return "AND"
	case Or:
		return "OR"
	case BitwiseAnd:
		return "&"
	case BitwiseOr:
		return "|"
	case BitwiseXor:
		return "#"
	case ShiftLeft:
		return "<<"
	case ShiftRight:
		return ">>"
	case Like:
		return "LIKE"
	case NotLike:
		return "NOT LIKE"
	case Concat:
		return "||"
	default:
		return "binary(?)"
	}
}

// IsArithmetic, IsComparison, ... classify which partition b falls in.
func (b Binary) IsArithmetic() bool {
	switch b {
	case Add, Sub, Mul, Div, Mod, Exp:
		return true
	default:
		return false
	}
}

func (b Binary) IsComparison() bool {
	switch b {
	case Eq, NotEq, Lt, Gt, LtEq, GtEq:
		return true
	default:
		return false
	}
}

func (b Binary) IsLogical() bool {
	return b == And || b == Or
}

func (b Binary) IsBitwise() bool {
	switch b {
	case BitwiseAnd, BitwiseOr, BitwiseXor, ShiftLeft, ShiftRight:
		return true
	default:
		return false
	}
}

func (b Binary) IsPattern() bool {
	return b == Like || b == NotLike
}

func (b Binary) IsString() bool {
	return b == Concat
}

// ResultFamilies enumerates the families b can ever produce, independent of
// operand families; used by analysis-time checks that need a closed set
// without yet knowing operands.
func (b Binary) ResultFamilies() []types.Family {
	switch {
	case b.IsArithmetic():
		return []types.Family{types.SmallInt, types.Integer, types.BigInt, types.Real, types.Double, types.Numeric}
	case b.IsComparison(), b.IsLogical(), b.IsPattern():
		return []types.Family{types.Bool}
	case b.IsBitwise():
		return []types.Family{types.SmallInt, types.Integer, types.BigInt}
	case b.IsString():
		return []types.Family{types.String}
	default:
		return nil
	}
}

// Accepts reports whether b is defined over operands of families (fl, fr).
func Accepts(b Binary, fl, fr types.Family) bool {
	switch {
	case b.IsArithmetic():
		return fl.IsNumeric() && fr.IsNumeric()
	case b.IsComparison():
		return fl == fr || fl == types.Unknown || fr == types.Unknown ||
			(fl.IsNumeric() && fr.IsNumeric())
	case b.IsLogical():
		return fl == types.Bool && fr == types.Bool
	case b.IsBitwise():
		return fl.IsInteger() && fr.IsInteger()
	case b.IsPattern():
		return fl == types.String && fr == types.String
	case b.IsString():
		return fl == types.String && fr == types.String
	default:
		return false
	}
}

// ResultFamily computes the result family of b applied to operands already
// widened to (fl, fr) by type inference (spec.md §4.G).
func ResultFamily(b Binary, fl, fr types.Family) types.Family {
	switch {
	case b.IsArithmetic():
		return fl.Resultant(fr)
	case b.IsComparison(), b.IsLogical(), b.IsPattern():
		return types.Bool
	case b.IsBitwise():
		return fl.Resultant(fr)
	case b.IsString():
		return types.String
	default:
		return types.Unknown
	}
}
