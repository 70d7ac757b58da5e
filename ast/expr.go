package ast

import "github.com/shopspring/decimal"

// UnaryOp enumerates the AST-level unary operators (spec §4.B/§4.F). Cast
// is modeled as its own node (CastExpr) rather than a UnaryOp variant since
// it carries an extra TypeName the other unary forms don't.
type UnaryOp int

const (
	Neg UnaryOp = iota
	UnaryPlus
	Abs
	SquareRoot
	CubeRoot
	Factorial
	BitwiseNot
	LogicalNot
)

// BinaryOp enumerates the AST-level binary operators. BitwiseXor and
// PGBitwiseXor are kept distinct per spec §9's explicit call-out: the
// source's `^` token (BitwiseXor) is PostgreSQL's exponentiation operator
// and maps to operator.Exp, while PGBitwiseXor (`#`) maps to this package's
// bitwise XOR (operator.BitwiseXor) — the analyzer, not this package,
// performs that renaming.
type BinaryOp int

const (
	Plus BinaryOp = iota
	Minus
	Star
	Slash
	Percent
	BitwiseXor
	PGBitwiseXor
	BitwiseAnd
	BitwiseOr
	ShiftLeft
	ShiftRight
	Eq
	Neq
	Lt
	Lte
	Gt
	Gte
	And
	Or
	Concat
	Like
	NotLike
)

// IntLiteral is an integer literal. The analyzer classifies it into
// Int(i32)/BigInt(i64) by range (spec §4.F); Number literals come only from
// NumberLiteral.
type IntLiteral struct{ Value int64 }

// NumberLiteral is a literal with a decimal point or that overflows int64,
// carried as an arbitrary-precision decimal.
type NumberLiteral struct{ Value decimal.Decimal }

// StringLiteral is a quoted string literal; its family is Unknown until
// resolved by context (spec §4.F).
type StringLiteral struct{ Value string }

// BoolLiteral is a TRUE/FALSE literal.
type BoolLiteral struct{ Value bool }

// NullLiteral is the NULL literal.
type NullLiteral struct{}

// Param is a positional bind parameter ($1, $2, ...), zero-indexed here.
type Param struct{ Index int }

// ColumnRef is an unqualified column name, resolved against the statement's
// target table by the analyzer.
type ColumnRef struct{ Name string }

// UnaryExpr applies a UnaryOp to one operand.
type UnaryExpr struct {
	Op      UnaryOp
	Operand Expr
}

// BinaryExpr applies a BinaryOp to two operands.
type BinaryExpr struct {
	Op    BinaryOp
	Left  Expr
	Right Expr
}

// CastExpr is an explicit `CAST(expr AS type)` / `expr::type`.
type CastExpr struct {
	Target  TypeName
	Operand Expr
}

func (IntLiteral) node()    {}
func (IntLiteral) expr()    {}
func (NumberLiteral) node() {}
func (NumberLiteral) expr() {}
func (StringLiteral) node() {}
func (StringLiteral) expr() {}
func (BoolLiteral) node()   {}
func (BoolLiteral) expr()   {}
func (NullLiteral) node()   {}
func (NullLiteral) expr()   {}
func (Param) node()         {}
func (Param) expr()         {}
func (ColumnRef) node()     {}
func (ColumnRef) expr()     {}
func (*UnaryExpr) node()    {}
func (*UnaryExpr) expr()    {}
func (*BinaryExpr) node()   {}
func (*BinaryExpr) expr()   {}
func (*CastExpr) node()     {}
func (*CastExpr) expr()     {}
