package typeinfer

import (
	"testing"

	"github.com/nanodb/nanodb/operator"
	"github.com/nanodb/nanodb/tree"
	"github.com/nanodb/nanodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intLit(v int32) *tree.UntypedTree {
	return tree.Leaf(tree.KindConst, tree.UntypedItem{Literal: tree.LiteralInt, IntVal: v})
}

func bigIntLit(v int64) *tree.UntypedTree {
	return tree.Leaf(tree.KindConst, tree.UntypedItem{Literal: tree.LiteralBigInt, BigIntVal: v})
}

func strLit(s string) *tree.UntypedTree {
	return tree.Leaf(tree.KindConst, tree.UntypedItem{Literal: tree.LiteralString, StrVal: s})
}

func TestInferLiteralFamilies(t *testing.T) {
	typed, err := Infer(intLit(1))
	require.NoError(t, err)
	assert.Equal(t, types.Integer, typed.Payload().Family)

	typed, err = Infer(bigIntLit(1))
	require.NoError(t, err)
	assert.Equal(t, types.BigInt, typed.Payload().Family)

	typed, err = Infer(strLit("x"))
	require.NoError(t, err)
	assert.Equal(t, types.Unknown, typed.Payload().Family)
}

func TestInferNullAndParamAreUnknown(t *testing.T) {
	n := tree.Leaf[tree.UntypedItem](tree.KindNull, tree.UntypedItem{})
	typed, err := Infer(n)
	require.NoError(t, err)
	assert.Equal(t, types.Unknown, typed.Payload().Family)

	p := tree.Leaf(tree.KindParam, tree.UntypedItem{ParamIndex: 0})
	typed, err = Infer(p)
	require.NoError(t, err)
	assert.Equal(t, types.Unknown, typed.Payload().Family)
}

func TestInferColumnPropagatesResolvedFamily(t *testing.T) {
	c := tree.Leaf(tree.KindColumn, tree.UntypedItem{ColumnName: "a", ColumnOrdinal: 2, ColumnFamily: types.BigInt})
	typed, err := Infer(c)
	require.NoError(t, err)
	assert.Equal(t, types.BigInt, typed.Payload().Family)
	assert.Equal(t, 2, typed.Payload().ColumnOrdinal)
}

func TestInferStringLiteralPromotedAgainstInt(t *testing.T) {
	u := tree.Binary(operator.Eq, tree.UntypedItem{}, strLit("3"), intLit(3))
	typed, err := Infer(u)
	require.NoError(t, err)

	// left was promoted: wrapped in a synthetic Cast(Integer) UnOp.
	assert.Equal(t, tree.KindUnOp, typed.Left.Kind.Tag)
	assert.Equal(t, operator.Cast, typed.Left.UnaryOp)
	assert.Equal(t, types.Integer, typed.Left.Payload().Family)
	assert.Equal(t, types.Bool, typed.Payload().Family)
}

func TestInferNumericWideningInsertsCastOnNarrowerSide(t *testing.T) {
	u := tree.Binary(operator.Add, tree.UntypedItem{}, intLit(1), bigIntLit(2))
	typed, err := Infer(u)
	require.NoError(t, err)

	assert.Equal(t, tree.KindUnOp, typed.Left.Kind.Tag)
	assert.Equal(t, operator.Cast, typed.Left.UnaryOp)
	assert.Equal(t, types.BigInt, typed.Left.Payload().Family)
	assert.Equal(t, tree.KindConst, typed.Right.Kind.Tag)
	assert.Equal(t, types.BigInt, typed.Payload().Family)
}

func TestInferCastUnaryUsesTargetFamily(t *testing.T) {
	u := tree.Unary(operator.Cast, tree.UntypedItem{CastTarget: types.BigInt}, intLit(1))
	typed, err := Infer(u)
	require.NoError(t, err)
	assert.Equal(t, types.BigInt, typed.Payload().Family)
}

func TestInferNegPropagatesOperandFamily(t *testing.T) {
	u := tree.Unary(operator.Neg, tree.UntypedItem{}, intLit(1))
	typed, err := Infer(u)
	require.NoError(t, err)
	assert.Equal(t, types.Integer, typed.Payload().Family)
}
