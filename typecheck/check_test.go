package typecheck

import (
	"testing"

	"github.com/nanodb/nanodb/operator"
	"github.com/nanodb/nanodb/tree"
	"github.com/nanodb/nanodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func constNode(f types.Family) *tree.TypedTree {
	return tree.Leaf(tree.KindConst, tree.TypedItem{Family: f})
}

func TestCheckAcceptsValidBinary(t *testing.T) {
	u := tree.Binary(operator.Add, tree.TypedItem{Family: types.Integer}, constNode(types.Integer), constNode(types.Integer))
	checked, err := Check(u)
	require.NoError(t, err)
	assert.Equal(t, types.Integer, checked.Payload().Family)
}

func TestCheckRejectsUndefinedBinary(t *testing.T) {
	u := tree.Binary(operator.Add, tree.TypedItem{Family: types.Bool}, constNode(types.Bool), constNode(types.Bool))
	_, err := Check(u)
	assert.True(t, ErrUndefinedFunction.Is(err))
}

func TestCheckRejectsUndefinedUnary(t *testing.T) {
	u := tree.Unary(operator.Neg, tree.TypedItem{Family: types.Bool}, constNode(types.Bool))
	_, err := Check(u)
	assert.True(t, ErrUndefinedFunction.Is(err))
}

func TestCheckCastTable(t *testing.T) {
	cases := []struct {
		from, to types.Family
		ok       bool
	}{
		{types.Integer, types.Bool, true},
		{types.BigInt, types.Bool, false},
		{types.Bool, types.Bool, true},
		{types.Integer, types.BigInt, true},
		{types.Numeric, types.Real, true},
		{types.String, types.Integer, true},
		{types.Unknown, types.Integer, true},
		{types.Bool, types.Integer, false},
	}
	for _, c := range cases {
		u := tree.Unary(operator.Cast, tree.TypedItem{Family: c.to}, constNode(c.from))
		_, err := Check(u)
		if c.ok {
			assert.NoErrorf(t, err, "%s -> %s should be allowed", c.from, c.to)
		} else {
			assert.Truef(t, ErrCanNotCoerce.Is(err), "%s -> %s should be forbidden", c.from, c.to)
		}
	}
}

func TestCheckRecursesIntoChildren(t *testing.T) {
	badChild := tree.Unary(operator.Neg, tree.TypedItem{Family: types.Bool}, constNode(types.Bool))
	outer := tree.Unary(operator.LogicalNot, tree.TypedItem{Family: types.Bool}, badChild)
	_, err := Check(outer)
	assert.True(t, ErrUndefinedFunction.Is(err))
}
