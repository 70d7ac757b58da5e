package ddl

import "github.com/nanodb/nanodb/catalog"

// ObjectKind names what a Step's existence check or structural primitive
// targets (spec §4.E).
type ObjectKind int

const (
	ObjectSchema ObjectKind = iota
	ObjectTable
)

// StepKind enumerates the filesystem-analogue and meta-table primitives of
// spec §4.E. The in-memory engine implements every kind directly against
// Database; an on-disk variant would mirror CreateFolder/RemoveFolder/
// CreateFile/RemoveFile onto real directories and files.
type StepKind int

const (
	StepCheckExistence StepKind = iota
	StepCheckDependants
	StepCreateFolder
	StepRemoveFolder
	StepCreateFile
	StepRemoveFile
	StepCreateRecord
	StepRemoveRecord
)

// Step is one primitive operation within a step group. Only the fields
// relevant to Kind are populated.
type Step struct {
	Kind   StepKind
	Object ObjectKind
	Schema string
	Table  string

	// MustExist/OnMismatchSkip apply to StepCheckExistence: if the object's
	// actual existence doesn't match MustExist, OnMismatchSkip decides
	// whether that's a silent skip of the rest of this group (true, the
	// IF [NOT] EXISTS case) or a hard error (false).
	MustExist      bool
	OnMismatchSkip bool

	// Columns is populated on a StepCreateFile step that creates a table.
	Columns []catalog.Column

	// Record is populated on StepCreateRecord/StepRemoveRecord: one of
	// catalog.SchemaRecord, catalog.TableRecord, catalog.ColumnRecord. For
	// removal, a record's non-identity fields are ignored (wildcard) — see
	// recordMatches.
	Record interface{}
}

// SystemOperation is a DDL statement lowered into a grouped step list
// (spec §4.E). Steps is executed group-by-group; within a group, steps run
// in order and a validation failure at the front of a group aborts the
// whole operation before any mutation in that group has run, preserving
// per-group atomicity.
type SystemOperation struct {
	Steps [][]Step
}
