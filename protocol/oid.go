package protocol

import (
	"github.com/jackc/pgx/v5/pgproto3"
	"github.com/lib/pq/oid"

	"github.com/nanodb/nanodb/types"
)

// FamilyOID is the fixed Family -> wire type OID table supplementing spec
// §6's "a fixed mapping from SQL type to a one-byte protocol-format code" by
// making its RowDescription counterpart concrete (SPEC_FULL §3), grounded on
// lib/pq/oid's Postgres OID constants.
var FamilyOID = map[types.Family]oid.Oid{
	types.SmallInt: oid.T_int2,
	types.Integer:  oid.T_int4,
	types.BigInt:   oid.T_int8,
	types.Real:     oid.T_float4,
	types.Double:   oid.T_float8,
	types.Numeric:  oid.T_numeric,
	types.Bool:     oid.T_bool,
	types.String:   oid.T_text,
	types.Unknown:  oid.T_unknown,
}

// FieldSpec is one output column's (name, family) pair, the shape spec §6's
// RowDescription carries.
type FieldSpec struct {
	Name   string
	Family types.Family
}

// NewReadyForQuery builds the outbound ReadyForQuery message. This engine
// has no multi-statement transactions (spec Non-goals), so the indicator is
// always Idle.
func NewReadyForQuery() ReadyForQuery {
	return ReadyForQuery{&pgproto3.ReadyForQuery{TxStatus: 'I'}}
}

// NewRowDescription builds the outbound RowDescription message naming
// fields in projection order, every datum sent in text format (spec §6:
// numerics/strings/bool all render as text, never binary).
func NewRowDescription(fields []FieldSpec) RowDescription {
	descs := make([]pgproto3.FieldDescription, len(fields))
	for i, f := range fields {
		descs[i] = pgproto3.FieldDescription{
			Name:         []byte(f.Name),
			DataTypeOID:  uint32(FamilyOID[f.Family]),
			DataTypeSize: -1,
			Format:       0,
		}
	}
	return RowDescription{&pgproto3.RowDescription{Fields: descs}}
}
