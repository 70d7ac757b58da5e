package tree

import (
	"github.com/shopspring/decimal"

	"github.com/nanodb/nanodb/types"
)

// LiteralKind classifies a Const/leaf node's raw literal shape, before any
// family is assigned (spec §4.F's literal classification rules: integer
// literals fit Int, then BigInt, then arbitrary-precision Number; quoted
// strings stay Literal/Unknown until context resolves them; Bool and Null
// keep their identity).
type LiteralKind int

const (
	LiteralInt LiteralKind = iota
	LiteralBigInt
	LiteralNumber
	LiteralString
	LiteralBool
)

// UntypedItem is the payload of an UntypedTree node (tree.Tree[UntypedItem]),
// produced by the analyzer (spec §4.F). It carries exactly the fields a
// given Kind needs; fields irrelevant to a node's Kind are left zero.
type UntypedItem struct {
	Literal    LiteralKind
	IntVal     int32
	BigIntVal  int64
	NumVal     decimal.Decimal
	StrVal     string
	BoolVal    bool
	ParamIndex int
	// ColumnName, ColumnOrdinal, and ColumnFamily are set on KindColumn
	// nodes once the analyzer has resolved the reference against the
	// catalog (spec §4.F: "Column references ... resolve to
	// UntypedItem::Column{name, type, ordinal}").
	ColumnName    string
	ColumnOrdinal int
	ColumnFamily  types.Family
	// CastTarget is set on KindUnOp nodes whose UnaryOp is operator.Cast;
	// it is the family the cast coerces to.
	CastTarget types.Family
}

// TypedItem is the payload of a TypedTree node (tree.Tree[TypedItem]),
// produced by typeinfer (spec §4.G): the UntypedItem plus the family
// inferred for this node.
type TypedItem struct {
	UntypedItem
	Family types.Family
}

// CheckedItem is the payload of a CheckedTree node (tree.Tree[CheckedItem]),
// produced by typecheck (spec §4.H). Type checking validates operand
// families and Cast legality but does not change a node's value or family,
// so CheckedItem reuses TypedItem's shape verbatim — the distinction is the
// stage, not the payload.
type CheckedItem = TypedItem

// ExecItem is the payload of an ExecutableTree node (tree.Tree[ExecItem]),
// produced by typecoerce (spec §4.I): constants are lowered to a concrete
// types.Value, column references carry a resolved ordinal, and casts carry
// their target family for the evaluator to apply.
type ExecItem struct {
	Family        types.Family
	Value         types.Value
	ParamIndex    int
	ColumnOrdinal int
	CastTarget    types.Family
}

// Named aliases for the four pipeline stages, matching the vocabulary of
// spec §4.F-§4.J and §9 (UntypedTree -> TypedTree -> CheckedTree ->
// ExecutableTree).
type (
	UntypedTree    = Tree[UntypedItem]
	TypedTree      = Tree[TypedItem]
	CheckedTree    = Tree[CheckedItem]
	ExecutableTree = Tree[ExecItem]
)
