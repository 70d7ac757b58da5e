package analyzer

import (
	"fmt"

	"github.com/nanodb/nanodb/ast"
	"github.com/nanodb/nanodb/catalog"
	"github.com/nanodb/nanodb/ddl"
)

// AnalyzeDDL lowers a DDL ast.Statement into a ddl.SystemOperation by
// consulting db's catalog (PlanDropSchemas needs it to enumerate a cascaded
// schema's tables at plan time, spec §4.E).
func AnalyzeDDL(stmt ast.Statement, db *ddl.Database) (ddl.SystemOperation, error) {
	switch s := stmt.(type) {
	case *ast.CreateSchemaStmt:
		return ddl.PlanCreateSchema(s.Name, s.IfNotExists), nil

	case *ast.DropSchemaStmt:
		return ddl.PlanDropSchemas(db, s.Names, s.IfExists, s.Cascade)

	case *ast.CreateTableStmt:
		if s.Table.Schema == "" {
			return ddl.SystemOperation{}, catalog.ErrTableNamingError.New(s.Table.Table)
		}
		cols := make([]catalog.Column, len(s.Columns))
		for i, c := range s.Columns {
			t, err := typeNameToType(c.Type)
			if err != nil {
				return ddl.SystemOperation{}, err
			}
			cols[i] = catalog.Column{Name: c.Name, Type: t}
		}
		return ddl.PlanCreateTable(s.Table.Schema, s.Table.Table, cols, s.IfNotExists), nil

	case *ast.DropTableStmt:
		fqns := make([][2]string, len(s.Tables))
		for i, t := range s.Tables {
			if t.Schema == "" {
				return ddl.SystemOperation{}, catalog.ErrTableNamingError.New(t.Table)
			}
			fqns[i] = [2]string{t.Schema, t.Table}
		}
		return ddl.PlanDropTables(fqns, s.IfExists), nil

	default:
		return ddl.SystemOperation{}, fmt.Errorf("analyzer: %T is not a DDL statement", stmt)
	}
}

// AnalyzeCreateIndex validates a CREATE INDEX statement against the
// catalog. It has no SystemOperation of its own (rowstore keeps no index
// structures, spec §4.D), so it reports success or the catalog's error
// directly.
func AnalyzeCreateIndex(stmt *ast.CreateIndexStmt, db *ddl.Database) error {
	if stmt.Table.Schema == "" {
		return catalog.ErrTableNamingError.New(stmt.Table.Table)
	}
	return ddl.PlanCreateIndex(db, stmt.Name, stmt.Table.Schema, stmt.Table.Table, stmt.Columns)
}
