package tree

import (
	"testing"

	"github.com/nanodb/nanodb/operator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeafAndPayload(t *testing.T) {
	n := Leaf[int](KindConst, 42)
	assert.Equal(t, KindConst, n.Kind.Tag)
	assert.Equal(t, 42, n.Payload())
}

func TestBinaryShape(t *testing.T) {
	l := Leaf[int](KindConst, 1)
	r := Leaf[int](KindConst, 2)
	n := Binary(operator.Add, 0, l, r)

	assert.Equal(t, KindBiOp, n.Kind.Tag)
	assert.Equal(t, operator.Add, n.BinaryOp)
	assert.Same(t, l, n.Left)
	assert.Same(t, r, n.Right)
}

func TestSetPayload(t *testing.T) {
	n := Leaf[int](KindConst, 1)
	n.SetPayload(99)
	assert.Equal(t, 99, n.Payload())
}

// TestMapSumsLeaves exercises Map by lowering an int-payload tree into
// another int-payload tree that records each node's evaluated sum, confirming
// that Map visits children before parents and preserves tree shape.
func TestMapSumsLeaves(t *testing.T) {
	l := Leaf[int](KindConst, 3)
	r := Leaf[int](KindConst, 4)
	root := Binary(operator.Add, 0, l, r)

	sums, err := Map(root, func(node *Tree[int], left, right *Tree[int]) (int, error) {
		switch node.Kind.Tag {
		case KindConst:
			return node.Payload(), nil
		case KindBiOp:
			return left.Payload() + right.Payload(), nil
		default:
			return 0, nil
		}
	})
	require.NoError(t, err)
	assert.Equal(t, 7, sums.Payload())
	assert.Equal(t, 3, sums.Left.Payload())
	assert.Equal(t, 4, sums.Right.Payload())
}

func TestMapNilTree(t *testing.T) {
	var n *Tree[int]
	out, err := Map(n, func(node *Tree[int], left, right *Tree[int]) (int, error) {
		return 0, nil
	})
	require.NoError(t, err)
	assert.Nil(t, out)
}
