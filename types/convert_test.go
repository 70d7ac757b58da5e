package types

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestValueFromDatumRoundTripsThroughFamily(t *testing.T) {
	v := ValueFromDatum(DatumI32(42), Integer)
	d, ok := v.NumValue()
	assert.True(t, ok)
	assert.True(t, d.Equal(decimal.NewFromInt(42)))
	assert.Equal(t, Integer, v.NumFamily())
}

func TestValueFromDatumNull(t *testing.T) {
	v := ValueFromDatum(DatumNull(), Integer)
	assert.True(t, v.IsNull())
}

func TestDatumFromValueNarrowsToDeclaredType(t *testing.T) {
	v := Num(decimal.NewFromInt(7), BigInt)
	d := DatumFromValue(v, NewSmallInt())
	assert.Equal(t, TagI16, d.Tag())
	assert.Equal(t, int16(7), d.I16Value())
}

func TestDatumFromValueNullIsNullDatum(t *testing.T) {
	d := DatumFromValue(Null(), NewInteger())
	assert.True(t, d.IsNull())
}

func TestFitsInFamily(t *testing.T) {
	assert.True(t, FitsInFamily(decimal.NewFromInt(32767), SmallInt))
	assert.False(t, FitsInFamily(decimal.NewFromInt(32768), SmallInt))
	assert.True(t, FitsInFamily(decimal.NewFromInt(1), Numeric))
}
