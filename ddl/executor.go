package ddl

import (
	"fmt"

	"github.com/nanodb/nanodb/catalog"
	"github.com/nanodb/nanodb/rowstore"
	"github.com/nanodb/nanodb/types"
)

// Execute runs op's step groups against db under the catalog's
// single-writer lock (spec §5: "a per-database lock acquired for the
// duration of any catalog-mutating DDL"), so every group of a multi-group
// SystemOperation (e.g. DROP SCHEMA ... CASCADE's per-table groups) sees a
// catalog no other connection can mutate concurrently. A group whose leading
// CheckExistence step is allowed to mismatch (OnMismatchSkip) is skipped
// without affecting later groups — this is how DROP CASCADE's per-table
// step groups tolerate a table having already vanished.
//
// Every group's existence/dependency checks are evaluated against the
// catalog before any group's mutating steps run, so a later group's failed
// check aborts the whole operation without any earlier group's effect ever
// having been applied (spec.md: "earlier groups' successful effects are
// retained only when the full statement succeeds") — a multi-object
// statement like `DROP TABLE a, b` either drops both or leaves both
// untouched, never one.
func Execute(db *Database, op SystemOperation) error {
	var outerErr error
	db.Catalog.WithLock(func(m *catalog.Mutator) {
		skip := make([]bool, len(op.Steps))
		for i, group := range op.Steps {
			s, err := checkGroup(m, group)
			if err != nil {
				outerErr = err
				return
			}
			skip[i] = s
		}

		for i, group := range op.Steps {
			if skip[i] {
				continue
			}
			if err := runGroup(db, m, group); err != nil {
				outerErr = err
				return
			}
		}
	})
	return outerErr
}

// checkGroup evaluates a group's CheckExistence/CheckDependants steps
// against the catalog without running any mutating step, reporting whether
// the group should be skipped entirely (OnMismatchSkip) or would fail.
func checkGroup(m *catalog.Mutator, steps []Step) (skip bool, err error) {
	for _, s := range steps {
		switch s.Kind {
		case StepCheckExistence:
			exists := objectExists(m, s)
			if exists != s.MustExist {
				if s.OnMismatchSkip {
					return true, nil
				}
				return false, existenceError(s, exists)
			}

		case StepCheckDependants:
			names, err := m.SchemaTableNames(s.Schema)
			if err != nil {
				return false, err
			}
			if len(names) > 0 {
				return false, catalog.ErrSchemaHasDependentObjects.New(s.Schema)
			}
		}
	}
	return false, nil
}

func runGroup(db *Database, m *catalog.Mutator, steps []Step) error {
	for _, s := range steps {
		switch s.Kind {
		case StepCheckExistence:
			exists := objectExists(m, s)
			if exists != s.MustExist {
				if s.OnMismatchSkip {
					return nil
				}
				return existenceError(s, exists)
			}

		case StepCheckDependants:
			names, err := m.SchemaTableNames(s.Schema)
			if err != nil {
				return err
			}
			if len(names) > 0 {
				return catalog.ErrSchemaHasDependentObjects.New(s.Schema)
			}

		case StepCreateFolder:
			if err := m.CreateSchema(s.Schema, true); err != nil {
				return err
			}
			db.createSchemaFolder(s.Schema)

		case StepRemoveFolder:
			if err := m.DropSchemas([]string{s.Schema}, true, true); err != nil {
				return err
			}
			db.removeSchemaFolder(s.Schema)

		case StepCreateFile:
			if err := m.CreateTable(s.Schema, s.Table, s.Columns, true); err != nil {
				return err
			}
			db.createFile(s.Schema, s.Table)

		case StepRemoveFile:
			if err := m.DropTables([][2]string{{s.Schema, s.Table}}, true); err != nil {
				return err
			}
			db.removeFile(s.Schema, s.Table)

		case StepCreateRecord:
			if err := createRecord(db, s); err != nil {
				return err
			}

		case StepRemoveRecord:
			if err := removeRecord(db, s); err != nil {
				return err
			}

		default:
			return fmt.Errorf("ddl: unknown step kind %d", s.Kind)
		}
	}
	return nil
}

func objectExists(m *catalog.Mutator, s Step) bool {
	switch s.Object {
	case ObjectSchema:
		return m.SchemaExists(s.Schema)
	case ObjectTable:
		return m.TableExists(s.Schema, s.Table)
	default:
		return false
	}
}

func existenceError(s Step, exists bool) error {
	if s.Object == ObjectSchema {
		if exists {
			return catalog.ErrSchemaAlreadyExists.New(s.Schema)
		}
		return catalog.ErrSchemaDoesNotExist.New(s.Schema)
	}
	if exists {
		return catalog.ErrTableAlreadyExists.New(s.Schema, s.Table)
	}
	return catalog.ErrTableDoesNotExist.New(s.Schema, s.Table)
}

func metaTableFor(record interface{}) string {
	switch record.(type) {
	case catalog.SchemaRecord:
		return catalog.MetaTableSchemata
	case catalog.TableRecord:
		return catalog.MetaTableTables
	case catalog.ColumnRecord:
		return catalog.MetaTableColumns
	default:
		return ""
	}
}

func createRecord(db *Database, s Step) error {
	meta := db.metaTable(metaTableFor(s.Record))
	if meta == nil {
		return fmt.Errorf("ddl: no meta-table for record %T", s.Record)
	}

	var row types.Row
	switch rec := s.Record.(type) {
	case catalog.SchemaRecord:
		row = types.PackDatums([]types.Datum{types.DatumStr(rec.SchemaName)})
	case catalog.TableRecord:
		row = types.PackDatums([]types.Datum{types.DatumStr(rec.SchemaName), types.DatumStr(rec.TableName)})
	case catalog.ColumnRecord:
		row = types.PackDatums([]types.Datum{
			types.DatumStr(rec.SchemaName),
			types.DatumStr(rec.TableName),
			types.DatumStr(rec.ColumnName),
			types.DatumI32(int32(rec.Ordinal)),
			types.DatumStr(rec.Type),
		})
	default:
		return fmt.Errorf("ddl: unrecognized record type %T", s.Record)
	}

	_, err := meta.Insert([]types.Row{row})
	return err
}

func removeRecord(db *Database, s Step) error {
	meta := db.metaTable(metaTableFor(s.Record))
	if meta == nil {
		return fmt.Errorf("ddl: no meta-table for record %T", s.Record)
	}

	cursor := meta.Scan()
	var keys []rowstore.Key
	for {
		p, ok := cursor.Next()
		if !ok {
			break
		}
		datums, err := types.UnpackDatums(p.Row)
		if err != nil {
			return err
		}
		if recordMatches(s.Record, datums) {
			keys = append(keys, p.Key)
		}
	}

	_, err := meta.Delete(keys)
	return err
}

func recordMatches(pattern interface{}, datums []types.Datum) bool {
	switch p := pattern.(type) {
	case catalog.SchemaRecord:
		return datums[0].StrValue() == p.SchemaName
	case catalog.TableRecord:
		return datums[0].StrValue() == p.SchemaName && datums[1].StrValue() == p.TableName
	case catalog.ColumnRecord:
		if datums[0].StrValue() != p.SchemaName || datums[1].StrValue() != p.TableName {
			return false
		}
		if p.ColumnName != "" && datums[2].StrValue() != p.ColumnName {
			return false
		}
		return true
	default:
		return false
	}
}
