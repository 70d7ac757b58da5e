package ddl

import (
	"github.com/nanodb/nanodb/catalog"
)

// PlanCreateSchema lowers CREATE SCHEMA into a SystemOperation (spec §4.E).
func PlanCreateSchema(name string, ifNotExists bool) SystemOperation {
	group := []Step{
		{Kind: StepCheckExistence, Object: ObjectSchema, Schema: name, MustExist: false, OnMismatchSkip: ifNotExists},
		{Kind: StepCreateFolder, Schema: name},
		{Kind: StepCreateRecord, Record: catalog.SchemaRecord{SchemaName: name}},
	}
	return SystemOperation{Steps: [][]Step{group}}
}

// PlanCreateTable lowers CREATE TABLE into a SystemOperation.
func PlanCreateTable(schema, name string, columns []catalog.Column, ifNotExists bool) SystemOperation {
	group := []Step{
		{Kind: StepCheckExistence, Object: ObjectSchema, Schema: schema, MustExist: true, OnMismatchSkip: false},
		{Kind: StepCheckExistence, Object: ObjectTable, Schema: schema, Table: name, MustExist: false, OnMismatchSkip: ifNotExists},
		{Kind: StepCreateFile, Schema: schema, Table: name, Columns: columns},
		{Kind: StepCreateRecord, Record: catalog.TableRecord{SchemaName: schema, TableName: name}},
	}
	for i, col := range columns {
		group = append(group, Step{
			Kind: StepCreateRecord,
			Record: catalog.ColumnRecord{
				SchemaName: schema,
				TableName:  name,
				ColumnName: col.Name,
				Ordinal:    i,
				Type:       col.Type.String(),
			},
		})
	}
	return SystemOperation{Steps: [][]Step{group}}
}

// PlanDropTables lowers DROP TABLE into a SystemOperation: one step group
// per named table, each removing its column meta-records, then the file
// itself, then its table meta-record (spec §4.E).
func PlanDropTables(fqns [][2]string, ifExists bool) SystemOperation {
	var groups [][]Step
	for _, fqn := range fqns {
		groups = append(groups, dropTableGroup(fqn[0], fqn[1], ifExists))
	}
	return SystemOperation{Steps: groups}
}

func dropTableGroup(schema, table string, ifExists bool) []Step {
	return []Step{
		{Kind: StepCheckExistence, Object: ObjectTable, Schema: schema, Table: table, MustExist: true, OnMismatchSkip: ifExists},
		{Kind: StepRemoveRecord, Record: catalog.ColumnRecord{SchemaName: schema, TableName: table}},
		{Kind: StepRemoveFile, Schema: schema, Table: table},
		{Kind: StepRemoveRecord, Record: catalog.TableRecord{SchemaName: schema, TableName: table}},
	}
}

// PlanDropSchemas lowers DROP SCHEMA into a SystemOperation. With cascade,
// each schema's step groups follow the ordering policy of spec §4.E: check
// the schema exists, drop every contained table (each its own group, so a
// concurrently-vanished table doesn't fail the whole statement), then
// remove the schema's folder and SCHEMATA record. Without cascade, a
// non-empty schema fails SchemaHasDependentObjects via StepCheckDependants.
func PlanDropSchemas(db *Database, names []string, ifExists, cascade bool) (SystemOperation, error) {
	var groups [][]Step

	for _, name := range names {
		if name == catalog.DefinitionSchemaName {
			return SystemOperation{}, catalog.ErrSchemaNamingError.New(name)
		}
		group := []Step{
			{Kind: StepCheckExistence, Object: ObjectSchema, Schema: name, MustExist: true, OnMismatchSkip: ifExists},
		}

		if !cascade {
			groups = append(groups, append(group, Step{Kind: StepCheckDependants, Object: ObjectSchema, Schema: name}))
		} else {
			groups = append(groups, group)
			tables, err := db.Catalog.SchemaTableNames(name)
			if err != nil && !catalog.ErrSchemaDoesNotExist.Is(err) {
				return SystemOperation{}, err
			}
			for _, table := range tables {
				groups = append(groups, dropTableGroup(name, table, true))
			}
		}

		groups = append(groups, []Step{
			{Kind: StepRemoveFolder, Schema: name},
			{Kind: StepRemoveRecord, Record: catalog.SchemaRecord{SchemaName: name}},
		})
	}

	return SystemOperation{Steps: groups}, nil
}

// PlanCreateIndex validates name, schema, table, columns against the
// catalog. The in-memory engine keeps no index structures (rowstore always
// full-scans, spec §4.D), so this has no step group of its own — it either
// succeeds (a pure validation) or returns the catalog's error.
func PlanCreateIndex(db *Database, name, schema, table string, columns []string) error {
	return db.Catalog.CreateIndex(name, schema, table, columns)
}
