package eval

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/nanodb/nanodb/operator"
	"github.com/nanodb/nanodb/tree"
	"github.com/nanodb/nanodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func constLeaf(v types.Value) *tree.ExecutableTree {
	return tree.Leaf(tree.KindConst, tree.ExecItem{Family: familyOf(v), Value: v})
}

func familyOf(v types.Value) types.Family {
	if v.Kind() == types.KindNum {
		return v.NumFamily()
	}
	return types.Unknown
}

func numLit(i int64, f types.Family) *tree.ExecutableTree {
	return constLeaf(types.Num(decimal.NewFromInt(i), f))
}

func nullLeaf() *tree.ExecutableTree {
	return tree.Leaf[tree.ExecItem](tree.KindNull, tree.ExecItem{Value: types.Null()})
}

func TestEvalConstAndNull(t *testing.T) {
	v, err := Eval(numLit(5, types.Integer), nil, nil)
	require.NoError(t, err)
	d, _ := v.NumValue()
	assert.True(t, d.Equal(decimal.NewFromInt(5)))

	v, err = Eval(nullLeaf(), nil, nil)
	require.NoError(t, err)
	assert.True(t, v.IsNull())
}

func TestEvalParamAndColumn(t *testing.T) {
	p := tree.Leaf(tree.KindParam, tree.ExecItem{ParamIndex: 1, Family: types.Integer})
	v, err := Eval(p, []types.Value{types.Null(), types.Bool(true)}, nil)
	require.NoError(t, err)
	b, _ := v.BoolValue()
	assert.True(t, b)

	col := tree.Leaf(tree.KindColumn, tree.ExecItem{ColumnOrdinal: 0, Family: types.SmallInt})
	v, err = Eval(col, nil, []types.Datum{types.DatumI16(7)})
	require.NoError(t, err)
	d, _ := v.NumValue()
	assert.True(t, d.Equal(decimal.NewFromInt(7)))
}

func TestEvalNegWidensOnOverflow(t *testing.T) {
	neg := tree.Unary(operator.Neg, tree.ExecItem{Family: types.BigInt}, numLit(-9223372036854775808, types.BigInt))
	v, err := Eval(neg, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, types.Numeric, v.NumFamily())
}

func TestEvalNegSimple(t *testing.T) {
	neg := tree.Unary(operator.Neg, tree.ExecItem{Family: types.Integer}, numLit(32768, types.Integer))
	v, err := Eval(neg, nil, nil)
	require.NoError(t, err)
	d, _ := v.NumValue()
	assert.True(t, d.Equal(decimal.NewFromInt(-32768)))
	assert.Equal(t, types.Integer, v.NumFamily())
}

func TestEvalDivisionByZero(t *testing.T) {
	div := tree.Binary(operator.Div, tree.ExecItem{Family: types.Integer}, numLit(1, types.Integer), numLit(0, types.Integer))
	_, err := Eval(div, nil, nil)
	assert.True(t, ErrDivisionByZero.Is(err))
}

func TestEvalArithmeticNullPropagates(t *testing.T) {
	add := tree.Binary(operator.Add, tree.ExecItem{Family: types.Integer}, numLit(1, types.Integer), nullLeaf())
	v, err := Eval(add, nil, nil)
	require.NoError(t, err)
	assert.True(t, v.IsNull())
}

func TestEvalAndKleeneLogic(t *testing.T) {
	falseLeaf := constLeaf(types.Bool(false))
	and := tree.Binary(operator.And, tree.ExecItem{Family: types.Bool}, nullLeaf(), falseLeaf)
	v, err := Eval(and, nil, nil)
	require.NoError(t, err)
	b, ok := v.BoolValue()
	require.True(t, ok)
	assert.False(t, b)
}

func TestEvalOrKleeneLogic(t *testing.T) {
	trueLeaf := constLeaf(types.Bool(true))
	or := tree.Binary(operator.Or, tree.ExecItem{Family: types.Bool}, nullLeaf(), trueLeaf)
	v, err := Eval(or, nil, nil)
	require.NoError(t, err)
	b, ok := v.BoolValue()
	require.True(t, ok)
	assert.True(t, b)
}

func TestEvalConcat(t *testing.T) {
	l := constLeaf(types.Str("foo"))
	r := constLeaf(types.Str("bar"))
	cat := tree.Binary(operator.Concat, tree.ExecItem{Family: types.String}, l, r)
	v, err := Eval(cat, nil, nil)
	require.NoError(t, err)
	s, _ := v.StringValue()
	assert.Equal(t, "foobar", s)
}

func TestEvalLikePatterns(t *testing.T) {
	cases := []struct {
		s, pattern string
		want       bool
	}{
		{"hello", "h%", true},
		{"hello", "h_llo", true},
		{"hello", "world", false},
		{"hello", "%ell%", true},
		{"hello", "h__lo", true},
	}
	for _, c := range cases {
		l := constLeaf(types.Str(c.s))
		r := constLeaf(types.Str(c.pattern))
		like := tree.Binary(operator.Like, tree.ExecItem{Family: types.Bool}, l, r)
		v, err := Eval(like, nil, nil)
		require.NoError(t, err)
		b, _ := v.BoolValue()
		assert.Equalf(t, c.want, b, "LIKE %q against %q", c.s, c.pattern)
	}
}

func TestEvalCastStringToIntegerInvalidSyntax(t *testing.T) {
	cast := tree.Unary(operator.Cast, tree.ExecItem{Family: types.Integer, CastTarget: types.Integer}, constLeaf(types.Str("not-a-number")))
	_, err := Eval(cast, nil, nil)
	assert.True(t, ErrInvalidInputSyntaxForType.Is(err))
}

func TestEvalCastStringToIntegerValid(t *testing.T) {
	cast := tree.Unary(operator.Cast, tree.ExecItem{Family: types.Integer, CastTarget: types.Integer}, constLeaf(types.Str("42")))
	v, err := Eval(cast, nil, nil)
	require.NoError(t, err)
	d, _ := v.NumValue()
	assert.True(t, d.Equal(decimal.NewFromInt(42)))
}

func TestEvalCastNumericOutOfRange(t *testing.T) {
	cast := tree.Unary(operator.Cast, tree.ExecItem{Family: types.SmallInt, CastTarget: types.SmallInt}, numLit(99999, types.Integer))
	_, err := Eval(cast, nil, nil)
	assert.True(t, ErrNumericOutOfRange.Is(err))
}

func TestEvalCastIntegerToBool(t *testing.T) {
	castTrue := tree.Unary(operator.Cast, tree.ExecItem{Family: types.Bool, CastTarget: types.Bool}, numLit(5, types.Integer))
	v, err := Eval(castTrue, nil, nil)
	require.NoError(t, err)
	b, _ := v.BoolValue()
	assert.True(t, b)

	castFalse := tree.Unary(operator.Cast, tree.ExecItem{Family: types.Bool, CastTarget: types.Bool}, numLit(0, types.Integer))
	v, err = Eval(castFalse, nil, nil)
	require.NoError(t, err)
	b, _ = v.BoolValue()
	assert.False(t, b)
}

func TestEvalFactorial(t *testing.T) {
	fact := tree.Unary(operator.Factorial, tree.ExecItem{Family: types.BigInt}, numLit(5, types.Integer))
	v, err := Eval(fact, nil, nil)
	require.NoError(t, err)
	d, _ := v.NumValue()
	assert.True(t, d.Equal(decimal.NewFromInt(120)))
}

func TestEvalComparison(t *testing.T) {
	eq := tree.Binary(operator.Eq, tree.ExecItem{Family: types.Bool}, numLit(3, types.Integer), numLit(3, types.Integer))
	v, err := Eval(eq, nil, nil)
	require.NoError(t, err)
	b, _ := v.BoolValue()
	assert.True(t, b)
}
