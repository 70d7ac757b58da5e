// Package typeinfer lowers an UntypedTree into a TypedTree by assigning a
// type family to every node (spec §4.G). Inference never rejects a tree —
// it is total over well-formed input — it only widens string-literal and
// numeric operands so that typecheck (spec §4.H) can later verify the
// widened families against the operator algebra.
package typeinfer

import (
	"github.com/nanodb/nanodb/operator"
	"github.com/nanodb/nanodb/tree"
	"github.com/nanodb/nanodb/types"
)

// Infer transforms u into its TypedTree.
func Infer(u *tree.UntypedTree) (*tree.TypedTree, error) {
	if u == nil {
		return nil, nil
	}

	payload := u.Kind.Payload

	switch u.Kind.Tag {
	case tree.KindConst:
		return tree.Leaf(tree.KindConst, tree.TypedItem{
			UntypedItem: payload,
			Family:      familyOfLiteral(payload.Literal),
		}), nil

	case tree.KindNull:
		return tree.Leaf(tree.KindNull, tree.TypedItem{Family: types.Unknown}), nil

	case tree.KindParam:
		return tree.Leaf(tree.KindParam, tree.TypedItem{UntypedItem: payload, Family: types.Unknown}), nil

	case tree.KindColumn:
		return tree.Leaf(tree.KindColumn, tree.TypedItem{UntypedItem: payload, Family: payload.ColumnFamily}), nil

	case tree.KindUnOp:
		return inferUnOp(u)

	case tree.KindBiOp:
		return inferBiOp(u)

	default:
		return nil, nil
	}
}

func familyOfLiteral(k tree.LiteralKind) types.Family {
	switch k {
	case tree.LiteralInt:
		return types.Integer
	case tree.LiteralBigInt:
		return types.BigInt
	case tree.LiteralNumber:
		return types.Numeric
	case tree.LiteralBool:
		return types.Bool
	case tree.LiteralString:
		return types.Unknown
	default:
		return types.Unknown
	}
}

func inferUnOp(u *tree.UntypedTree) (*tree.TypedTree, error) {
	child, err := Infer(u.Left)
	if err != nil {
		return nil, err
	}

	payload := u.Kind.Payload
	var family types.Family
	if u.UnaryOp == operator.Cast {
		family = payload.CastTarget
	} else {
		family = operator.UnaryResultFamily(u.UnaryOp, child.Payload().Family)
	}

	return tree.Unary(u.UnaryOp, tree.TypedItem{UntypedItem: payload, Family: family}, child), nil
}

func inferBiOp(u *tree.UntypedTree) (*tree.TypedTree, error) {
	left, err := Infer(u.Left)
	if err != nil {
		return nil, err
	}
	right, err := Infer(u.Right)
	if err != nil {
		return nil, err
	}

	fl := left.Payload().Family
	fr := right.Payload().Family

	if fl != fr {
		switch {
		case fl == types.Unknown && fr != types.Unknown:
			left = castTo(left, fr)
			fl = fr
		case fr == types.Unknown && fl != types.Unknown:
			right = castTo(right, fl)
			fr = fl
		case fl.IsNumeric() && fr.IsNumeric():
			resultant := fl.Resultant(fr)
			if fl != resultant {
				left = castTo(left, resultant)
				fl = resultant
			}
			if fr != resultant {
				right = castTo(right, resultant)
				fr = resultant
			}
		}
	}

	payload := u.Kind.Payload
	family := operator.ResultFamily(u.BinaryOp, fl, fr)

	return tree.Binary(u.BinaryOp, tree.TypedItem{UntypedItem: payload, Family: family}, left, right), nil
}

// castTo wraps child in a synthetic UnOp{Cast(target)} node, the mechanism
// by which a string literal ("string_literal_and_int") or a narrower
// numeric family is widened to match its sibling (spec §4.G steps 3-4).
func castTo(child *tree.TypedTree, target types.Family) *tree.TypedTree {
	payload := tree.TypedItem{
		UntypedItem: tree.UntypedItem{CastTarget: target},
		Family:      target,
	}
	return tree.Unary(operator.Cast, payload, child)
}
