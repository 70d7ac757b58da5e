package analyzer

import (
	"fmt"
	"math"

	"github.com/nanodb/nanodb/ast"
	"github.com/nanodb/nanodb/catalog"
	"github.com/nanodb/nanodb/operator"
	"github.com/nanodb/nanodb/tree"
	"github.com/nanodb/nanodb/types"
)

// columnResolver resolves an unqualified column name against the
// statement's target table. A nil columnResolver means the expression is
// being lowered in a static context (spec §4.F: INSERT VALUES that doesn't
// reference the target row), where any column reference is an error.
type columnResolver func(name string) (ordinal int, family types.Family, ok bool)

func columnResolverFor(table *catalog.Table) columnResolver {
	return func(name string) (int, types.Family, bool) {
		col, ok := table.ColumnByName(name)
		if !ok {
			return 0, types.Unknown, false
		}
		return col.Ordinal, col.Type.Family(), true
	}
}

// lowerExpr lowers one ast.Expr into an UntypedTree, resolving column
// references via resolve (nil for a static context).
func lowerExpr(e ast.Expr, resolve columnResolver) (*tree.UntypedTree, error) {
	switch v := e.(type) {
	case ast.IntLiteral:
		return classifyInt(v.Value), nil

	case ast.NumberLiteral:
		return tree.Leaf(tree.KindConst, tree.UntypedItem{Literal: tree.LiteralNumber, NumVal: v.Value}), nil

	case ast.StringLiteral:
		return tree.Leaf(tree.KindConst, tree.UntypedItem{Literal: tree.LiteralString, StrVal: v.Value}), nil

	case ast.BoolLiteral:
		return tree.Leaf(tree.KindConst, tree.UntypedItem{Literal: tree.LiteralBool, BoolVal: v.Value}), nil

	case ast.NullLiteral:
		return tree.Leaf(tree.KindNull, tree.UntypedItem{}), nil

	case ast.Param:
		return tree.Leaf(tree.KindParam, tree.UntypedItem{ParamIndex: v.Index}), nil

	case ast.ColumnRef:
		if resolve == nil {
			return nil, ErrColumnCantBeReferenced.New(v.Name)
		}
		ordinal, family, ok := resolve(v.Name)
		if !ok {
			return nil, catalog.ErrColumnNotFound.New(v.Name, "", "")
		}
		return tree.Leaf(tree.KindColumn, tree.UntypedItem{
			ColumnName:    v.Name,
			ColumnOrdinal: ordinal,
			ColumnFamily:  family,
		}), nil

	case *ast.UnaryExpr:
		child, err := lowerExpr(v.Operand, resolve)
		if err != nil {
			return nil, err
		}
		return tree.Unary(mapUnaryOp(v.Op), tree.UntypedItem{}, child), nil

	case *ast.BinaryExpr:
		left, err := lowerExpr(v.Left, resolve)
		if err != nil {
			return nil, err
		}
		right, err := lowerExpr(v.Right, resolve)
		if err != nil {
			return nil, err
		}
		return tree.Binary(mapBinaryOp(v.Op), tree.UntypedItem{}, left, right), nil

	case *ast.CastExpr:
		child, err := lowerExpr(v.Operand, resolve)
		if err != nil {
			return nil, err
		}
		target, err := typeNameToFamily(v.Target)
		if err != nil {
			return nil, err
		}
		return tree.Unary(operator.Cast, tree.UntypedItem{CastTarget: target}, child), nil

	default:
		return nil, fmt.Errorf("analyzer: unsupported expression %T", e)
	}
}

// classifyInt applies spec §4.F's literal classification: an integer
// literal fits Int(i32) if in range, else BigInt(i64) (arbitrary-precision
// Number only arises from a literal the parser couldn't fit in an int64 at
// all, which surfaces as ast.NumberLiteral directly).
func classifyInt(v int64) *tree.UntypedTree {
	if v >= math.MinInt32 && v <= math.MaxInt32 {
		return tree.Leaf(tree.KindConst, tree.UntypedItem{Literal: tree.LiteralInt, IntVal: int32(v)})
	}
	return tree.Leaf(tree.KindConst, tree.UntypedItem{Literal: tree.LiteralBigInt, BigIntVal: v})
}

// mapUnaryOp applies the fixed AST-to-operator-algebra mapping of spec
// §4.F for unary operators.
func mapUnaryOp(op ast.UnaryOp) operator.Unary {
	switch op {
	case ast.Neg:
		return operator.Neg
	case ast.UnaryPlus:
		return operator.Pos
	case ast.Abs:
		return operator.Abs
	case ast.SquareRoot:
		return operator.SquareRoot
	case ast.CubeRoot:
		return operator.CubeRoot
	case ast.Factorial:
		return operator.Factorial
	case ast.BitwiseNot:
		return operator.BitwiseNot
	case ast.LogicalNot:
		return operator.LogicalNot
	default:
		return operator.Neg
	}
}

// mapBinaryOp applies spec §4.F's fixed mapping table, including its one
// renaming quirk: the source's BitwiseXor token is PostgreSQL's `^`
// (exponentiation) and maps to operator.Exp, while PGBitwiseXor (`#`) is
// the actual bitwise XOR and maps to operator.BitwiseXor (spec §9).
func mapBinaryOp(op ast.BinaryOp) operator.Binary {
	switch op {
	case ast.Plus:
		return operator.Add
	case ast.Minus:
		return operator.Sub
	case ast.Star:
		return operator.Mul
	case ast.Slash:
		return operator.Div
	case ast.Percent:
		return operator.Mod
	case ast.BitwiseXor:
		return operator.Exp
	case ast.PGBitwiseXor:
		return operator.BitwiseXor
	case ast.BitwiseAnd:
		return operator.BitwiseAnd
	case ast.BitwiseOr:
		return operator.BitwiseOr
	case ast.ShiftLeft:
		return operator.ShiftLeft
	case ast.ShiftRight:
		return operator.ShiftRight
	case ast.Eq:
		return operator.Eq
	case ast.Neq:
		return operator.NotEq
	case ast.Lt:
		return operator.Lt
	case ast.Lte:
		return operator.LtEq
	case ast.Gt:
		return operator.Gt
	case ast.Gte:
		return operator.GtEq
	case ast.And:
		return operator.And
	case ast.Or:
		return operator.Or
	case ast.Concat:
		return operator.Concat
	case ast.Like:
		return operator.Like
	case ast.NotLike:
		return operator.NotLike
	default:
		return operator.Add
	}
}

// typeNameToType resolves an ast.TypeName to a concrete types.Type.
func typeNameToType(tn ast.TypeName) (types.Type, error) {
	switch tn.Name {
	case "smallint":
		return types.NewSmallInt(), nil
	case "integer", "int":
		return types.NewInteger(), nil
	case "bigint":
		return types.NewBigInt(), nil
	case "real":
		return types.NewReal(), nil
	case "double precision", "double":
		return types.NewDouble(), nil
	case "numeric", "decimal":
		return types.NewNumeric(), nil
	case "bool", "boolean":
		return types.NewBool(), nil
	case "char":
		return types.NewChar(tn.Length), nil
	case "varchar":
		return types.NewVarChar(tn.Length), nil
	default:
		return types.Type{}, fmt.Errorf("analyzer: unknown type name %q", tn.Name)
	}
}

func typeNameToFamily(tn ast.TypeName) (types.Family, error) {
	t, err := typeNameToType(tn)
	if err != nil {
		return types.Unknown, err
	}
	return t.Family(), nil
}
