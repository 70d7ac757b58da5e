// Package typecoerce lowers a CheckedTree into an ExecutableTree (spec
// §4.I): constants become a concrete types.Value, column references carry
// their resolved ordinal, casts carry their target family, and operators
// are left untouched. Nothing here narrows or rounds a Numeric value —
// arbitrary-precision arithmetic is preserved all the way to eval.
package typecoerce

import (
	"github.com/shopspring/decimal"

	"github.com/nanodb/nanodb/operator"
	"github.com/nanodb/nanodb/tree"
	"github.com/nanodb/nanodb/types"
)

// Coerce transforms c into its ExecutableTree. It never fails: every case
// type checking accepted has a well-defined lowering.
func Coerce(c *tree.CheckedTree) (*tree.ExecutableTree, error) {
	return tree.Map(c, coerceNode)
}

func coerceNode(node *tree.CheckedTree, left, right *tree.ExecutableTree) (tree.ExecItem, error) {
	payload := node.Payload()

	switch node.Kind.Tag {
	case tree.KindConst:
		return tree.ExecItem{Family: payload.Family, Value: literalValue(payload)}, nil

	case tree.KindNull:
		return tree.ExecItem{Family: payload.Family, Value: types.Null()}, nil

	case tree.KindParam:
		return tree.ExecItem{Family: payload.Family, ParamIndex: payload.ParamIndex}, nil

	case tree.KindColumn:
		return tree.ExecItem{Family: payload.Family, ColumnOrdinal: payload.ColumnOrdinal}, nil

	case tree.KindUnOp:
		if node.UnaryOp == operator.Cast {
			return tree.ExecItem{Family: payload.Family, CastTarget: payload.Family}, nil
		}
		return tree.ExecItem{Family: payload.Family}, nil

	case tree.KindBiOp:
		return tree.ExecItem{Family: payload.Family}, nil

	default:
		return tree.ExecItem{Family: payload.Family}, nil
	}
}

func literalValue(item tree.TypedItem) types.Value {
	switch item.Literal {
	case tree.LiteralInt:
		return types.Num(decimal.NewFromInt32(item.IntVal), item.Family)
	case tree.LiteralBigInt:
		return types.Num(decimal.NewFromInt(item.BigIntVal), item.Family)
	case tree.LiteralNumber:
		return types.Num(item.NumVal, item.Family)
	case tree.LiteralBool:
		return types.Bool(item.BoolVal)
	case tree.LiteralString:
		return types.Str(item.StrVal)
	default:
		return types.Null()
	}
}
