// Package protocol defines the wire-facing message vocabulary of spec §6:
// the Inbound variants a listener/codec collaborator hands the engine, and
// the Outbound variants the engine hands back. Where a 1:1 Postgres wire
// frame exists, the variant wraps a jackc/pgx/v5/pgproto3 struct (the way
// other_examples' myduckserver pgserver package wraps the same library);
// the DB-event variants the wire protocol has no frame for (SchemaCreated,
// RecordsInserted, ...) are plain Go structs.
package protocol

import "github.com/jackc/pgx/v5/pgproto3"

// Inbound is one message the engine consumes from a client connection.
type Inbound interface{ inbound() }

// Query is the simple-query protocol's single-statement request.
type Query struct{ *pgproto3.Query }

func (Query) inbound() {}

// Parse names and parameterizes a prepared statement (extended query
// protocol).
type Parse struct{ *pgproto3.Parse }

func (Parse) inbound() {}

// Bind attaches parameter values to a named statement, producing a portal.
type Bind struct{ *pgproto3.Bind }

func (Bind) inbound() {}

// Describe asks for a statement's or portal's shape without executing it.
type Describe struct{ *pgproto3.Describe }

func (Describe) inbound() {}

// Execute runs a portal, optionally capped at MaxRows.
type Execute struct{ *pgproto3.Execute }

func (Execute) inbound() {}

// Sync ends an extended-query message group.
type Sync struct{}

func (Sync) inbound() {}

// Terminate closes the connection.
type Terminate struct{}

func (Terminate) inbound() {}

// Outbound is one message the engine produces in response to an Inbound.
type Outbound interface{ outbound() }

// SchemaCreated reports a successful CREATE SCHEMA (including the
// IF NOT EXISTS no-op case, spec scenario 6).
type SchemaCreated struct{ Name string }

func (SchemaCreated) outbound() {}

// SchemaDropped reports a successful DROP SCHEMA.
type SchemaDropped struct{ Name string }

func (SchemaDropped) outbound() {}

// TableCreated reports a successful CREATE TABLE.
type TableCreated struct {
	Schema string
	Table  string
}

func (TableCreated) outbound() {}

// TableDropped reports a successful DROP TABLE.
type TableDropped struct {
	Schema string
	Table  string
}

func (TableDropped) outbound() {}

// RecordsInserted reports the row count of a successful INSERT.
type RecordsInserted struct{ N int }

func (RecordsInserted) outbound() {}

// RecordsDeleted reports the row count of a successful DELETE.
type RecordsDeleted struct{ N int }

func (RecordsDeleted) outbound() {}

// RecordsUpdated reports the row count of a successful UPDATE.
type RecordsUpdated struct{ N int }

func (RecordsUpdated) outbound() {}

// RecordsSelected reports the row count of a successful SELECT, sent after
// the RowDescription/DataRow sequence.
type RecordsSelected struct{ N int }

func (RecordsSelected) outbound() {}

// RowDescription announces a SELECT result's column shape.
type RowDescription struct{ *pgproto3.RowDescription }

func (RowDescription) outbound() {}

// DataRow carries one SELECT result row, already text-encoded per spec §6.
type DataRow struct{ *pgproto3.DataRow }

func (DataRow) outbound() {}

// ParseComplete acknowledges a Parse message.
type ParseComplete struct{}

func (ParseComplete) outbound() {}

// BindComplete acknowledges a Bind message.
type BindComplete struct{}

func (BindComplete) outbound() {}

// ReadyForQuery marks the end of one statement's response sequence.
type ReadyForQuery struct{ *pgproto3.ReadyForQuery }

func (ReadyForQuery) outbound() {}

// ErrorResponse carries one of spec §7's closed error kinds to the client.
type ErrorResponse struct{ *pgproto3.ErrorResponse }

func (ErrorResponse) outbound() {}
