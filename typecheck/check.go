// Package typecheck validates a TypedTree against the operator algebra and
// cast legality, producing a CheckedTree (spec §4.H). Checking never
// changes a node's family or value — TypedItem and CheckedItem share the
// same Go type (tree.CheckedItem is an alias of tree.TypedItem) — it only
// either accepts the tree as-is or rejects it with a named error.
package typecheck

import (
	"github.com/nanodb/nanodb/operator"
	"github.com/nanodb/nanodb/tree"
	"github.com/nanodb/nanodb/types"
)

// Check validates t bottom-up and returns it re-typed as a CheckedTree. It
// returns the same tree structure typeinfer produced; there is nothing left
// to transform, only to verify.
func Check(t *tree.TypedTree) (*tree.CheckedTree, error) {
	if err := checkNode(t); err != nil {
		return nil, err
	}
	return t, nil
}

func checkNode(t *tree.TypedTree) error {
	if t == nil {
		return nil
	}
	if err := checkNode(t.Left); err != nil {
		return err
	}
	if err := checkNode(t.Right); err != nil {
		return err
	}

	switch t.Kind.Tag {
	case tree.KindUnOp:
		if t.UnaryOp == operator.Cast {
			from := t.Left.Payload().Family
			to := t.Payload().Family
			if !castAllowed(from, to) {
				return ErrCanNotCoerce.New(from, to)
			}
			return nil
		}
		childFamily := t.Left.Payload().Family
		if !operator.AcceptsUnary(t.UnaryOp, childFamily) {
			return ErrUndefinedFunction.New(t.UnaryOp, childFamily)
		}

	case tree.KindBiOp:
		fl := t.Left.Payload().Family
		fr := t.Right.Payload().Family
		if !operator.Accepts(t.BinaryOp, fl, fr) {
			return ErrUndefinedFunction.New(t.BinaryOp, fl)
		}
	}

	return nil
}

// castAllowed implements the permitted/forbidden cast table of spec §4.H:
// identity casts, any numeric-to-numeric widen/narrow (range checked later,
// at evaluation), Integer (but not the other integer families) to Bool, and
// any cast from an as-yet-unresolved literal (Unknown) or from String —
// both validated for real at evaluation time against the literal text.
func castAllowed(from, to types.Family) bool {
	switch {
	case from == to:
		return true
	case from == types.Unknown:
		return true
	case from == types.String:
		return true
	case from.IsNumeric() && to.IsNumeric():
		return true
	case from == types.Integer && to == types.Bool:
		return true
	default:
		return false
	}
}
