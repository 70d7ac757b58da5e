// Package ddl implements the DDL planner and executor (spec §4.E): lowering
// a DDL statement into a SystemOperation, a grouped list of Steps executed
// group-by-group, each group atomic with respect to the catalog.
package ddl

import (
	"github.com/nanodb/nanodb/catalog"
	"github.com/nanodb/nanodb/rowstore"
)

// Database is the handle mediating access to both the catalog and the
// per-table row stores (spec §5: "the in-memory database is shared across
// connections through a handle that mediates access"). It is the one place
// that knows both a table's catalog shape and its backing rowstore.Table.
type Database struct {
	Catalog *catalog.Catalog
	tables  map[string]map[string]*rowstore.Table
}

// NewDatabase returns a Database with a fresh catalog (DEFINITION_SCHEMA
// already present) and backing row stores for its three meta-tables.
func NewDatabase() *Database {
	db := &Database{
		Catalog: catalog.New(),
		tables:  make(map[string]map[string]*rowstore.Table),
	}
	db.tables[catalog.DefinitionSchemaName] = map[string]*rowstore.Table{
		catalog.MetaTableSchemata: rowstore.New(),
		catalog.MetaTableTables:   rowstore.New(),
		catalog.MetaTableColumns:  rowstore.New(),
	}
	return db
}

// Table returns the backing row store for schema.table, or nil if absent.
func (db *Database) Table(schema, name string) *rowstore.Table {
	tables, ok := db.tables[schema]
	if !ok {
		return nil
	}
	return tables[name]
}

func (db *Database) createSchemaFolder(name string) {
	if _, ok := db.tables[name]; !ok {
		db.tables[name] = make(map[string]*rowstore.Table)
	}
}

func (db *Database) removeSchemaFolder(name string) {
	delete(db.tables, name)
}

func (db *Database) createFile(schema, table string) {
	if _, ok := db.tables[schema]; !ok {
		db.tables[schema] = make(map[string]*rowstore.Table)
	}
	db.tables[schema][table] = rowstore.New()
}

func (db *Database) removeFile(schema, table string) {
	if tables, ok := db.tables[schema]; ok {
		delete(tables, table)
	}
}

// metaTable returns one of the three DEFINITION_SCHEMA row stores.
func (db *Database) metaTable(name string) *rowstore.Table {
	return db.tables[catalog.DefinitionSchemaName][name]
}
