package rowstore

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/nanodb/nanodb/operator"
	"github.com/nanodb/nanodb/tree"
	"github.com/nanodb/nanodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decFromInt(i int64) decimal.Decimal {
	return decimal.NewFromInt(i)
}

func row(datums ...types.Datum) types.Row {
	return types.PackDatums(datums)
}

func TestInsertAssignsMonotonicKeys(t *testing.T) {
	tbl := New()
	n, err := tbl.Insert([]types.Row{row(types.DatumI16(1)), row(types.DatumI16(2)), row(types.DatumI16(3))})
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	c := tbl.Scan()
	var keys []Key
	for {
		p, ok := c.Next()
		if !ok {
			break
		}
		keys = append(keys, p.Key)
	}
	require.Len(t, keys, 3)
	assert.True(t, keys[0] < keys[1])
	assert.True(t, keys[1] < keys[2])
}

func TestScanPreservesInsertionOrder(t *testing.T) {
	tbl := New()
	_, err := tbl.Insert([]types.Row{row(types.DatumI16(10)), row(types.DatumI16(20))})
	require.NoError(t, err)

	c := tbl.Scan()
	p1, ok := c.Next()
	require.True(t, ok)
	p2, ok := c.Next()
	require.True(t, ok)
	_, ok = c.Next()
	require.False(t, ok)

	datums1, _ := types.UnpackDatums(p1.Row)
	datums2, _ := types.UnpackDatums(p2.Row)
	assert.Equal(t, int16(10), datums1[0].I16Value())
	assert.Equal(t, int16(20), datums2[0].I16Value())
}

func TestUpdateUnknownKeyIsError(t *testing.T) {
	tbl := New()
	err := tbl.Update([]Pair{{Key: 99, Row: row(types.DatumI16(1))}})
	assert.Error(t, err)
}

func TestUpdateReplacesRow(t *testing.T) {
	tbl := New()
	_, err := tbl.Insert([]types.Row{row(types.DatumI16(1))})
	require.NoError(t, err)

	c := tbl.Scan()
	p, _ := c.Next()

	err = tbl.Update([]Pair{{Key: p.Key, Row: row(types.DatumI16(99))}})
	require.NoError(t, err)

	c = tbl.Scan()
	p, _ = c.Next()
	datums, _ := types.UnpackDatums(p.Row)
	assert.Equal(t, int16(99), datums[0].I16Value())
}

func TestDeleteSkipsAbsentKeys(t *testing.T) {
	tbl := New()
	_, err := tbl.Insert([]types.Row{row(types.DatumI16(1)), row(types.DatumI16(2)), row(types.DatumI16(3))})
	require.NoError(t, err)

	c := tbl.Scan()
	var keys []Key
	for {
		p, ok := c.Next()
		if !ok {
			break
		}
		keys = append(keys, p.Key)
	}

	n, err := tbl.Delete([]Key{keys[1], 9999})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	c = tbl.Scan()
	var remaining int
	for {
		_, ok := c.Next()
		if !ok {
			break
		}
		remaining++
	}
	assert.Equal(t, 2, remaining)
}

func TestEvalStaticAndDynamic(t *testing.T) {
	lit := tree.Leaf(tree.KindConst, tree.ExecItem{Family: types.Integer, Value: types.Num(decFromInt(7), types.Integer)})
	v, err := EvalStatic(lit, nil)
	require.NoError(t, err)
	d, _ := v.NumValue()
	assert.True(t, d.Equal(decFromInt(7)))

	col := tree.Leaf(tree.KindColumn, tree.ExecItem{ColumnOrdinal: 0, Family: types.SmallInt})
	r := row(types.DatumI16(42))
	v, err = EvalDynamic(col, nil, r)
	require.NoError(t, err)
	d, _ = v.NumValue()
	assert.True(t, d.Equal(decFromInt(42)))
}

func TestEvalDynamicBinaryOp(t *testing.T) {
	l := tree.Leaf(tree.KindColumn, tree.ExecItem{ColumnOrdinal: 0, Family: types.SmallInt})
	r := tree.Leaf(tree.KindConst, tree.ExecItem{Family: types.SmallInt, Value: types.Num(decFromInt(5), types.SmallInt)})
	eq := tree.Binary(operator.Eq, tree.ExecItem{Family: types.Bool}, l, r)

	v, err := EvalDynamic(eq, nil, row(types.DatumI16(5)))
	require.NoError(t, err)
	b, _ := v.BoolValue()
	assert.True(t, b)
}
