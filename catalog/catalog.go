// Package catalog implements the in-memory SQL catalog: named schemas
// containing named tables, each table an ordered column list. The catalog is
// the single process-wide source of truth for schema/table/column existence
// and shape; the DDL executor is the only writer, and it serializes a whole
// multi-step DDL statement with WithLock (spec §5's single-writer policy).
//
// Cyclic references are avoided by design: a Table records its Schema's name,
// not a pointer back to it (spec §9's "cyclic graphs" note), so the catalog
// can be copied, inspected, and torn down without graph-walking.
package catalog

import (
	"sort"
	"sync"

	"github.com/nanodb/nanodb/types"
)

// Column is one column of a Table: its name, declared type, and its
// zero-based ordinal position (rows are packed in this order, see
// rowstore.Row / types.PackDatums).
type Column struct {
	Name    string
	Type    types.Type
	Ordinal int
}

// Table is a named, ordered column list within a Schema.
type Table struct {
	Schema  string
	Name    string
	Columns []Column
}

// ColumnByName returns the column named name and true, or the zero Column
// and false if no such column exists.
func (t *Table) ColumnByName(name string) (Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// Schema is a named container of tables.
type Schema struct {
	Name   string
	Tables map[string]*Table
}

// Catalog is the process-wide collection of schemas. All mutating methods
// acquire mu for their duration, matching the single-writer-lock model of
// spec §5; read-only queries also take the lock since a concurrent DDL write
// may otherwise race with a scan of the schemas map.
type Catalog struct {
	mu      sync.Mutex
	schemas map[string]*Schema
}

// New returns an empty Catalog, pre-populated with the reserved
// DEFINITION_SCHEMA meta-schema (see metaschema.go).
func New() *Catalog {
	c := &Catalog{schemas: make(map[string]*Schema)}
	c.schemas[DefinitionSchemaName] = newDefinitionSchema()
	return c
}

// CreateSchema adds an empty schema named name. If the schema already
// exists, it fails with ErrSchemaAlreadyExists unless ifNotExists is set, in
// which case it is a silent no-op.
func (c *Catalog) CreateSchema(name string, ifNotExists bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.createSchemaLocked(name, ifNotExists)
}

func (c *Catalog) createSchemaLocked(name string, ifNotExists bool) error {
	if _, ok := c.schemas[name]; ok {
		if ifNotExists {
			return nil
		}
		return ErrSchemaAlreadyExists.New(name)
	}
	c.schemas[name] = &Schema{Name: name, Tables: make(map[string]*Table)}
	return nil
}

// DropSchemas removes each named schema. Per name: missing schemas fail
// ErrSchemaDoesNotExist unless ifExists; non-empty schemas fail
// ErrSchemaHasDependentObjects unless cascade.
func (c *Catalog) DropSchemas(names []string, ifExists, cascade bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dropSchemasLocked(names, ifExists, cascade)
}

func (c *Catalog) dropSchemasLocked(names []string, ifExists, cascade bool) error {
	for _, name := range names {
		if name == DefinitionSchemaName {
			return ErrSchemaNamingError.New(name)
		}
		s, ok := c.schemas[name]
		if !ok {
			if ifExists {
				continue
			}
			return ErrSchemaDoesNotExist.New(name)
		}
		if len(s.Tables) > 0 && !cascade {
			return ErrSchemaHasDependentObjects.New(name)
		}
		delete(c.schemas, name)
	}
	return nil
}

// CreateTable adds a table named name to schema, with the given columns in
// order. Fails ErrSchemaDoesNotExist if schema is absent, ErrTableAlreadyExists
// if the table is already present (unless ifNotExists).
func (c *Catalog) CreateTable(schema, name string, columns []Column, ifNotExists bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.createTableLocked(schema, name, columns, ifNotExists)
}

func (c *Catalog) createTableLocked(schema, name string, columns []Column, ifNotExists bool) error {
	s, ok := c.schemas[schema]
	if !ok {
		return ErrSchemaDoesNotExist.New(schema)
	}
	if _, ok := s.Tables[name]; ok {
		if ifNotExists {
			return nil
		}
		return ErrTableAlreadyExists.New(schema, name)
	}
	cols := make([]Column, len(columns))
	for i, col := range columns {
		col.Ordinal = i
		cols[i] = col
	}
	s.Tables[name] = &Table{Schema: schema, Name: name, Columns: cols}
	return nil
}

// DropTables removes each (schema, table) pair named in fqns. Missing tables
// fail ErrTableDoesNotExist unless ifExists.
func (c *Catalog) DropTables(fqns [][2]string, ifExists bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dropTablesLocked(fqns, ifExists)
}

func (c *Catalog) dropTablesLocked(fqns [][2]string, ifExists bool) error {
	for _, fqn := range fqns {
		schema, name := fqn[0], fqn[1]
		s, ok := c.schemas[schema]
		if !ok {
			if ifExists {
				continue
			}
			return ErrSchemaDoesNotExist.New(schema)
		}
		if _, ok := s.Tables[name]; !ok {
			if ifExists {
				continue
			}
			return ErrTableDoesNotExist.New(schema, name)
		}
		delete(s.Tables, name)
	}
	return nil
}

// CreateIndex validates that name, schema, table, columns reference a real
// table and existing columns. The in-memory engine does not maintain index
// structures (rowstore always does a full scan, spec §4.D), so this is
// purely a validating operation; it returns ErrSchemaDoesNotExist,
// ErrTableDoesNotExist, or ErrColumnNotFound.
func (c *Catalog) CreateIndex(name, schema, table string, columns []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.schemas[schema]
	if !ok {
		return ErrSchemaDoesNotExist.New(schema)
	}
	t, ok := s.Tables[table]
	if !ok {
		return ErrTableDoesNotExist.New(schema, table)
	}
	for _, col := range columns {
		if _, ok := t.ColumnByName(col); !ok {
			return ErrColumnNotFound.New(col, schema, table)
		}
	}
	return nil
}

// SchemaExists reports whether a schema named name exists.
func (c *Catalog) SchemaExists(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.schemaExistsLocked(name)
}

func (c *Catalog) schemaExistsLocked(name string) bool {
	_, ok := c.schemas[name]
	return ok
}

// TableExists reports whether schema.table exists.
func (c *Catalog) TableExists(schema, table string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tableExistsLocked(schema, table)
}

func (c *Catalog) tableExistsLocked(schema, table string) bool {
	s, ok := c.schemas[schema]
	if !ok {
		return false
	}
	_, ok = s.Tables[table]
	return ok
}

// TableColumns returns the ordered column defs of schema.table.
func (c *Catalog) TableColumns(schema, table string) ([]Column, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.schemas[schema]
	if !ok {
		return nil, ErrSchemaDoesNotExist.New(schema)
	}
	t, ok := s.Tables[table]
	if !ok {
		return nil, ErrTableDoesNotExist.New(schema, table)
	}
	cols := make([]Column, len(t.Columns))
	copy(cols, t.Columns)
	return cols, nil
}

// ResolveColumn returns the ordinal and type of schema.table.column.
func (c *Catalog) ResolveColumn(schema, table, column string) (int, types.Type, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.schemas[schema]
	if !ok {
		return 0, types.Type{}, ErrSchemaDoesNotExist.New(schema)
	}
	t, ok := s.Tables[table]
	if !ok {
		return 0, types.Type{}, ErrTableDoesNotExist.New(schema, table)
	}
	col, ok := t.ColumnByName(column)
	if !ok {
		return 0, types.Type{}, ErrColumnNotFound.New(column, schema, table)
	}
	return col.Ordinal, col.Type, nil
}

// SchemaNames returns every schema name in sorted order, DEFINITION_SCHEMA
// included. Used by the DDL executor to rebuild the SCHEMATA meta-table and
// by introspection queries.
func (c *Catalog) SchemaNames() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	names := make([]string, 0, len(c.schemas))
	for name := range c.schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SchemaTableNames returns the table names of schema, sorted.
func (c *Catalog) SchemaTableNames(schema string) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.schemaTableNamesLocked(schema)
}

func (c *Catalog) schemaTableNamesLocked(schema string) ([]string, error) {
	s, ok := c.schemas[schema]
	if !ok {
		return nil, ErrSchemaDoesNotExist.New(schema)
	}
	names := make([]string, 0, len(s.Tables))
	for name := range s.Tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// WithLock runs f while holding the catalog's single-writer lock, giving a
// caller that already owns a *Catalog (such as the DDL executor driving a
// whole SystemOperation) a way to perform several mutations atomically
// without each one re-acquiring the non-reentrant lock. f must not call any
// other Catalog method that locks — only the methods of the Mutator passed
// to it.
func (c *Catalog) WithLock(f func(m *Mutator)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	f(&Mutator{c: c})
}

// Mutator exposes the catalog's internal, non-locking operations for use
// inside WithLock. Its methods are non-locking counterparts of a subset of
// Catalog's locking methods: CreateSchema, DropSchemas, CreateTable,
// DropTables, SchemaExists, TableExists and SchemaTableNames.
type Mutator struct{ c *Catalog }

func (m *Mutator) CreateSchema(name string, ifNotExists bool) error {
	return m.c.createSchemaLocked(name, ifNotExists)
}

func (m *Mutator) DropSchemas(names []string, ifExists, cascade bool) error {
	return m.c.dropSchemasLocked(names, ifExists, cascade)
}

func (m *Mutator) CreateTable(schema, name string, columns []Column, ifNotExists bool) error {
	return m.c.createTableLocked(schema, name, columns, ifNotExists)
}

func (m *Mutator) DropTables(fqns [][2]string, ifExists bool) error {
	return m.c.dropTablesLocked(fqns, ifExists)
}

func (m *Mutator) SchemaExists(name string) bool { return m.c.schemaExistsLocked(name) }

func (m *Mutator) TableExists(schema, table string) bool {
	return m.c.tableExistsLocked(schema, table)
}

func (m *Mutator) SchemaTableNames(schema string) ([]string, error) {
	return m.c.schemaTableNamesLocked(schema)
}

// Table returns the named table for read access outside of a catalog-held
// lock (callers such as the analyzer resolve columns once at plan time). It
// returns a copy-free pointer; callers must not mutate Columns.
func (c *Catalog) Table(schema, name string) (*Table, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.schemas[schema]
	if !ok {
		return nil, ErrSchemaDoesNotExist.New(schema)
	}
	t, ok := s.Tables[name]
	if !ok {
		return nil, ErrTableDoesNotExist.New(schema, name)
	}
	return t, nil
}
