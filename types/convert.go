package types

import "github.com/shopspring/decimal"

// widths chosen per family for DatumFromValue/ValueFromDatum: SmallInt packs
// as I16, Integer as I32, BigInt as I64, Real as F32, Double as F64, Numeric
// as F64 (arbitrary precision is not preserved across the row-store boundary
// — only within one expression's evaluation, per spec §4.I), Bool as Bool,
// String as Str.

// ValueFromDatum decodes a raw Datum into an evaluator Value, tagging
// numeric datums with family so downstream arithmetic keeps its family.
func ValueFromDatum(d Datum, family Family) Value {
	switch d.Tag() {
	case TagNull:
		return Null()
	case TagBool:
		return Bool(d.BoolValue())
	case TagI16:
		return Num(decimal.NewFromInt(int64(d.I16Value())), family)
	case TagI32:
		return Num(decimal.NewFromInt(int64(d.I32Value())), family)
	case TagI64:
		return Num(decimal.NewFromInt(d.I64Value()), family)
	case TagF32:
		return Num(decimal.NewFromFloat32(d.F32Value()), family)
	case TagF64:
		return Num(decimal.NewFromFloat(d.F64Value()), family)
	case TagStr:
		return Str(d.StrValue())
	default:
		return Null()
	}
}

// DatumFromValue narrows v to its column's declared Type, producing the
// Datum the row store will pack. Used at INSERT/UPDATE time, after typecoerce
// and eval have already produced a family-tagged Value; NumericOutOfRange is
// the caller's responsibility (queryexec checks range before calling this
// for the fixed-width integer families).
func DatumFromValue(v Value, t Type) Datum {
	if v.IsNull() {
		return DatumNull()
	}
	switch t.Family() {
	case Bool:
		b, _ := v.BoolValue()
		return DatumBool(b)
	case SmallInt:
		d, _ := v.NumValue()
		return DatumI16(int16(d.IntPart()))
	case Integer:
		d, _ := v.NumValue()
		return DatumI32(int32(d.IntPart()))
	case BigInt:
		d, _ := v.NumValue()
		return DatumI64(d.IntPart())
	case Real:
		d, _ := v.NumValue()
		f, _ := d.Float64()
		return DatumF32(float32(f))
	case Double, Numeric:
		d, _ := v.NumValue()
		f, _ := d.Float64()
		return DatumF64(f)
	case String:
		s, _ := v.StringValue()
		return DatumStr(s)
	default:
		return DatumNull()
	}
}

// FitsInFamily reports whether decimal d's integer value fits within the
// fixed-width range of family f, used to surface NumericOutOfRange before
// narrowing a wider family (e.g. BigInt) down into a column's declared,
// narrower family (e.g. SmallInt).
func FitsInFamily(d decimal.Decimal, f Family) bool {
	switch f {
	case SmallInt:
		return d.Cmp(decimal.NewFromInt(-32768)) >= 0 && d.Cmp(decimal.NewFromInt(32767)) <= 0
	case Integer:
		return d.Cmp(decimal.NewFromInt(-2147483648)) >= 0 && d.Cmp(decimal.NewFromInt(2147483647)) <= 0
	case BigInt:
		return d.Cmp(decimal.NewFromInt(-9223372036854775808)) >= 0 && d.Cmp(decimal.NewFromInt(9223372036854775807)) <= 0
	default:
		return true
	}
}
