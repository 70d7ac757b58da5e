// Package tree implements the single generic expression tree used across
// the analysis pipeline (spec §9's "one typed tree generic over an item
// variant" design note). Rather than the source's multiple parallel
// near-duplicate tree types (StaticTypedTree/DynamicTypedTree/CheckedTree/
// ExecutableTree), every stage of the pipeline — analyzer, typeinfer,
// typecheck, typecoerce, eval — shares this one Tree[I] shape and supplies
// its own item payload type I. A transform from one stage to the next is a
// total function Tree[A] -> (Tree[B], error).
package tree

import "github.com/nanodb/nanodb/operator"

// Kind discriminates the shape of a Tree node. A tree's Kind together with
// its Item, UnaryOp/BinaryOp, and Left/Right fields fully describes it;
// there is no inheritance, only this one tagged struct reused at every
// stage with a different Item type parameter.
type Kind int

const (
	// KindConst is a resolved constant value (a literal after classification,
	// or a coerced executable value). Leaf node.
	KindConst Kind = iota
	// KindNull is the SQL NULL literal. Leaf node.
	KindNull
	// KindParam is a positional parameter reference ($1, $2, ...). Leaf node.
	KindParam
	// KindColumn is a reference to a column of the current row. Leaf node,
	// only valid in a dynamic (row-dependent) tree.
	KindColumn
	// KindUnOp applies a unary operator to Left.
	KindUnOp
	// KindBiOp applies a binary operator to Left and Right.
	KindBiOp
)

func (k Kind) String() string {
	switch k {
	case KindConst:
		return "Const"
	case KindNull:
		return "Null"
	case KindParam:
		return "Param"
	case KindColumn:
		return "Column"
	case KindUnOp:
		return "UnOp"
	case KindBiOp:
		return "BiOp"
	default:
		return "Kind(?)"
	}
}

// Tree is one node of an expression tree, parameterized over the payload
// type I carried at this pipeline stage (UntypedItem, TypedItem,
// CheckedItem, or ExecItem — all defined in items.go).
type Tree[I any] struct {
	Kind Item[I]

	// UnaryOp is set iff Kind.Tag == KindUnOp.
	UnaryOp operator.Unary
	// BinaryOp is set iff Kind.Tag == KindBiOp.
	BinaryOp operator.Binary

	// Left is the sole child of a KindUnOp node, or the left child of a
	// KindBiOp node. Nil for leaves.
	Left *Tree[I]
	// Right is the right child of a KindBiOp node. Nil otherwise.
	Right *Tree[I]
}

// Item bundles the structural Kind tag with the stage-specific payload I.
// Every Tree node carries exactly one Item; I is where family information
// (TypedItem), validated operand info (CheckedItem), or executable values
// (ExecItem) live — Tree itself never inspects I's contents.
type Item[I any] struct {
	Tag     Kind
	Payload I
}

// Leaf builds a leaf node (Const, Null, Param, or Column) from its payload.
func Leaf[I any](tag Kind, payload I) *Tree[I] {
	return &Tree[I]{Kind: Item[I]{Tag: tag, Payload: payload}}
}

// Unary builds a KindUnOp node.
func Unary[I any](op operator.Unary, payload I, child *Tree[I]) *Tree[I] {
	return &Tree[I]{
		Kind:    Item[I]{Tag: KindUnOp, Payload: payload},
		UnaryOp: op,
		Left:    child,
	}
}

// Binary builds a KindBiOp node.
func Binary[I any](op operator.Binary, payload I, left, right *Tree[I]) *Tree[I] {
	return &Tree[I]{
		Kind:     Item[I]{Tag: KindBiOp, Payload: payload},
		BinaryOp: op,
		Left:     left,
		Right:    right,
	}
}

// Payload returns the node's stage-specific payload.
func (t *Tree[I]) Payload() I {
	return t.Kind.Payload
}

// SetPayload replaces the node's stage-specific payload in place, used by
// transforms that rewrite a node (e.g. inserting a Cast) without changing
// its shape.
func (t *Tree[I]) SetPayload(payload I) {
	t.Kind.Payload = payload
}

// Map applies f to every node's payload, producing a new tree of the same
// shape with payload type O. This is the shared machinery every pipeline
// stage transform (UntypedTree->TypedTree, etc.) is built from: f computes
// the new payload for a node given the already-transformed children.
func Map[I, O any](t *Tree[I], f func(node *Tree[I], left, right *Tree[O]) (O, error)) (*Tree[O], error) {
	if t == nil {
		return nil, nil
	}

	var left, right *Tree[O]
	var err error

	if t.Left != nil {
		left, err = Map(t.Left, f)
		if err != nil {
			return nil, err
		}
	}
	if t.Right != nil {
		right, err = Map(t.Right, f)
		if err != nil {
			return nil, err
		}
	}

	payload, err := f(t, left, right)
	if err != nil {
		return nil, err
	}

	return &Tree[O]{
		Kind:     Item[O]{Tag: t.Kind.Tag, Payload: payload},
		UnaryOp:  t.UnaryOp,
		BinaryOp: t.BinaryOp,
		Left:     left,
		Right:    right,
	}, nil
}
