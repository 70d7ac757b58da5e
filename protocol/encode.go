package protocol

import (
	"github.com/jackc/pgx/v5/pgproto3"

	"github.com/nanodb/nanodb/types"
)

// FormatValue renders a Value in text mode per spec §6: Bool(true)→"t",
// Bool(false)→"f", Null→"NULL", numerics → decimal string, strings → raw
// UTF-8. types.Value.String already implements this rule (it's also used
// for error-message formatting), so this is the wire-boundary name for it.
func FormatValue(v types.Value) string {
	return v.String()
}

// NewDataRow text-encodes one SELECT result row in projection order; a SQL
// NULL becomes the wire protocol's NULL marker (a nil byte slice), not the
// four-byte literal "NULL" (spec §6 draws this distinction for human-facing
// vs. wire-facing NULL rendering).
func NewDataRow(values []types.Value) DataRow {
	cols := make([][]byte, len(values))
	for i, v := range values {
		if v.IsNull() {
			cols[i] = nil
			continue
		}
		cols[i] = []byte(FormatValue(v))
	}
	return DataRow{&pgproto3.DataRow{Values: cols}}
}
