package types

import (
	"encoding/binary"
	"fmt"
	"math"
)

// DatumTag is the one-byte wire tag for a packed Datum. The assignment is a
// compatibility boundary: tests assert fixed byte sequences, so these values
// must never change.
type DatumTag byte

const (
	TagNull DatumTag = 0
	TagBool DatumTag = 1
	TagI16  DatumTag = 2
	TagI32  DatumTag = 3
	TagI64  DatumTag = 4
	TagF32  DatumTag = 5
	TagF64  DatumTag = 6
	TagStr  DatumTag = 7
)

// Datum is the on-the-wire-compatible binary representation of one column
// value. Exactly one of the accessor methods is meaningful, selected by Tag.
type Datum struct {
	tag DatumTag
	i   int64
	f   float64
	s   string
}

func DatumNull() Datum       { return Datum{tag: TagNull} }
func DatumBool(b bool) Datum {
	v := Datum{tag: TagBool}
	if b {
		v.i = 1
	}
	return v
}
func DatumI16(v int16) Datum { return Datum{tag: TagI16, i: int64(v)} }
func DatumI32(v int32) Datum { return Datum{tag: TagI32, i: int64(v)} }
func DatumI64(v int64) Datum { return Datum{tag: TagI64, i: v} }
func DatumF32(v float32) Datum {
	return Datum{tag: TagF32, f: float64(v)}
}
func DatumF64(v float64) Datum { return Datum{tag: TagF64, f: v} }
func DatumStr(s string) Datum  { return Datum{tag: TagStr, s: s} }

func (d Datum) Tag() DatumTag { return d.tag }
func (d Datum) IsNull() bool  { return d.tag == TagNull }

func (d Datum) BoolValue() bool    { return d.i != 0 }
func (d Datum) I16Value() int16    { return int16(d.i) }
func (d Datum) I32Value() int32    { return int32(d.i) }
func (d Datum) I64Value() int64    { return d.i }
func (d Datum) F32Value() float32  { return float32(d.f) }
func (d Datum) F64Value() float64  { return d.f }
func (d Datum) StrValue() string   { return d.s }

func (d Datum) String() string {
	switch d.tag {
	case TagNull:
		return "NULL"
	case TagBool:
		if d.BoolValue() {
			return "t"
		}
		return "f"
	case TagI16:
		return fmt.Sprintf("%d", d.I16Value())
	case TagI32:
		return fmt.Sprintf("%d", d.I32Value())
	case TagI64:
		return fmt.Sprintf("%d", d.I64Value())
	case TagF32:
		return fmt.Sprintf("%v", d.F32Value())
	case TagF64:
		return fmt.Sprintf("%v", d.F64Value())
	case TagStr:
		return d.s
	default:
		return fmt.Sprintf("datum(tag=%d)", d.tag)
	}
}

// Row is the packed concatenation of one table row's datums.
type Row []byte

// PackDatums encodes a sequence of datums into a Row. Each datum is written
// as a one-byte tag followed by a tag-specific payload: integers and floats
// use native little-endian width; strings carry an 8-byte little-endian
// length prefix followed by their UTF-8 bytes. PackDatums is deterministic:
// the same input sequence always yields the same bytes.
func PackDatums(datums []Datum) Row {
	buf := make([]byte, 0, len(datums)*2)
	for _, d := range datums {
		buf = append(buf, byte(d.tag))
		switch d.tag {
		case TagNull:
			// no payload
		case TagBool:
			if d.BoolValue() {
				buf = append(buf, 1)
			} else {
				buf = append(buf, 0)
			}
		case TagI16:
			var tmp [2]byte
			binary.LittleEndian.PutUint16(tmp[:], uint16(d.I16Value()))
			buf = append(buf, tmp[:]...)
		case TagI32:
			var tmp [4]byte
			binary.LittleEndian.PutUint32(tmp[:], uint32(d.I32Value()))
			buf = append(buf, tmp[:]...)
		case TagI64:
			var tmp [8]byte
			binary.LittleEndian.PutUint64(tmp[:], uint64(d.I64Value()))
			buf = append(buf, tmp[:]...)
		case TagF32:
			var tmp [4]byte
			binary.LittleEndian.PutUint32(tmp[:], math.Float32bits(d.F32Value()))
			buf = append(buf, tmp[:]...)
		case TagF64:
			var tmp [8]byte
			binary.LittleEndian.PutUint64(tmp[:], math.Float64bits(d.F64Value()))
			buf = append(buf, tmp[:]...)
		case TagStr:
			var tmp [8]byte
			b := []byte(d.s)
			binary.LittleEndian.PutUint64(tmp[:], uint64(len(b)))
			buf = append(buf, tmp[:]...)
			buf = append(buf, b...)
		}
	}
	return Row(buf)
}

// UnpackDatums is the inverse of PackDatums: for any Row produced by
// PackDatums, UnpackDatums reproduces the original datum sequence exactly.
func UnpackDatums(row Row) ([]Datum, error) {
	var out []Datum
	buf := []byte(row)
	pos := 0
	for pos < len(buf) {
		tag := DatumTag(buf[pos])
		pos++
		switch tag {
		case TagNull:
			out = append(out, DatumNull())
		case TagBool:
			if pos >= len(buf) {
				return nil, fmt.Errorf("types: truncated bool datum")
			}
			out = append(out, DatumBool(buf[pos] != 0))
			pos++
		case TagI16:
			if pos+2 > len(buf) {
				return nil, fmt.Errorf("types: truncated i16 datum")
			}
			out = append(out, DatumI16(int16(binary.LittleEndian.Uint16(buf[pos:pos+2]))))
			pos += 2
		case TagI32:
			if pos+4 > len(buf) {
				return nil, fmt.Errorf("types: truncated i32 datum")
			}
			out = append(out, DatumI32(int32(binary.LittleEndian.Uint32(buf[pos:pos+4]))))
			pos += 4
		case TagI64:
			if pos+8 > len(buf) {
				return nil, fmt.Errorf("types: truncated i64 datum")
			}
			out = append(out, DatumI64(int64(binary.LittleEndian.Uint64(buf[pos:pos+8]))))
			pos += 8
		case TagF32:
			if pos+4 > len(buf) {
				return nil, fmt.Errorf("types: truncated f32 datum")
			}
			out = append(out, DatumF32(math.Float32frombits(binary.LittleEndian.Uint32(buf[pos:pos+4]))))
			pos += 4
		case TagF64:
			if pos+8 > len(buf) {
				return nil, fmt.Errorf("types: truncated f64 datum")
			}
			out = append(out, DatumF64(math.Float64frombits(binary.LittleEndian.Uint64(buf[pos:pos+8]))))
			pos += 8
		case TagStr:
			if pos+8 > len(buf) {
				return nil, fmt.Errorf("types: truncated string length")
			}
			n := binary.LittleEndian.Uint64(buf[pos : pos+8])
			pos += 8
			if uint64(pos)+n > uint64(len(buf)) {
				return nil, fmt.Errorf("types: truncated string payload")
			}
			out = append(out, DatumStr(string(buf[pos:pos+int(n)])))
			pos += int(n)
		default:
			return nil, fmt.Errorf("types: unknown datum tag %d", tag)
		}
	}
	return out, nil
}
