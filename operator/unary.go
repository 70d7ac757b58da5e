// Package operator defines the SQL operator algebra: the unary and binary
// operator enums, the type families each accepts, and the family each
// produces. It has no evaluation logic of its own — eval implements that
// against this algebra.
package operator

import "github.com/nanodb/nanodb/types"

// Unary is one of the unary operators named in spec.md §4.B.
type Unary int

const (
	Neg Unary = iota
	Pos
	SquareRoot
	CubeRoot
	Factorial
	Abs
	LogicalNot
	BitwiseNot
	// Cast is parameterized by its target family; CastTarget on the tree
	// item carries the target, this tag only marks the operator kind.
	Cast
)

func (u Unary) String() string {
	switch u {
	case Neg:
		return "-"
	case Pos:
		return "+"
	case SquareRoot:
		return "|/"
	case CubeRoot:
		return "||/"
	case Factorial:
		return "!"
	case Abs:
		return "@"
	case LogicalNot:
		return "NOT"
	case BitwiseNot:
		return "~"
	case Cast:
		return "CAST"
	default:
		return "unary(?)"
	}
}

// AcceptsUnary reports whether u is defined over a value of family f.
// Cast's applicability is judged by the type checker (it depends on the
// target family too), not here.
func AcceptsUnary(u Unary, f types.Family) bool {
	switch u {
	case Neg, Pos, SquareRoot, CubeRoot, Abs:
		return f.IsNumeric()
	case Factorial:
		return f.IsInteger()
	case LogicalNot:
		return f == types.Bool
	case BitwiseNot:
		return f.IsInteger()
	case Cast:
		return true
	default:
		return false
	}
}

// UnaryResultFamily returns the family of applying u to an operand of
// family f. For every operator but Cast the result family propagates the
// operand's family; Cast's result is its target family (computed by the
// caller, since Unary alone doesn't carry it).
func UnaryResultFamily(u Unary, f types.Family) types.Family {
	return f
}
