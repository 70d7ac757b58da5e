// Package analyzer implements the query analyzer (spec §4.F): lowering a
// validated ast.Statement into the untyped form the rest of the pipeline
// (typeinfer -> typecheck -> typecoerce -> eval) consumes. Table references
// are resolved against the catalog here, so every tree.UntypedTree this
// package produces already carries correct column ordinals and families on
// its KindColumn leaves.
package analyzer

import (
	"fmt"

	"github.com/nanodb/nanodb/ast"
	"github.com/nanodb/nanodb/catalog"
	"github.com/nanodb/nanodb/tree"
)

// Kind discriminates the DML statement an UntypedQuery was lowered from.
type Kind int

const (
	KindInsert Kind = iota
	KindUpdate
	KindDelete
	KindSelect
)

// UntypedQuery is the analyzer's output for INSERT/UPDATE/DELETE/SELECT
// (spec §4.F); its shape mirrors the four plan shapes of §4.K one stage
// earlier, before type inference has run.
type UntypedQuery struct {
	Kind   Kind
	Schema string
	Table  string

	// InsertRows holds one full-width row per VALUES row: InsertRows[r][c]
	// is the tree for column c of row r. Columns not supplied by the
	// statement are filled with a KindNull leaf rather than left nil, so
	// downstream stages never need an Option<Tree> (spec §4.D:
	// "unnamed columns are filled with Datum::Null").
	InsertRows [][]*tree.UntypedTree

	// Assignments holds one slot per table column; nil at index i means
	// column i is not assigned by this UPDATE and keeps its current value.
	Assignments []*tree.UntypedTree

	// Filter is the WHERE clause, or nil when absent.
	Filter *tree.UntypedTree

	// Projections/ProjectionNames are parallel slices: SELECT's output
	// columns and the trees that compute them.
	Projections     []*tree.UntypedTree
	ProjectionNames []string
}

// AnalyzeQuery dispatches stmt to the matching Analyze* function.
func AnalyzeQuery(stmt ast.Statement, cat *catalog.Catalog) (*UntypedQuery, error) {
	switch s := stmt.(type) {
	case *ast.InsertStmt:
		return AnalyzeInsert(s, cat)
	case *ast.UpdateStmt:
		return AnalyzeUpdate(s, cat)
	case *ast.DeleteStmt:
		return AnalyzeDelete(s, cat)
	case *ast.SelectStmt:
		return AnalyzeSelect(s, cat)
	default:
		return nil, fmt.Errorf("analyzer: %T is not a query statement", stmt)
	}
}

func resolveTableRef(cat *catalog.Catalog, ref ast.TableRef) (*catalog.Table, error) {
	if ref.Schema == "" {
		return nil, catalog.ErrTableNamingError.New(ref.Table)
	}
	return cat.Table(ref.Schema, ref.Table)
}

// AnalyzeInsert lowers an INSERT statement (spec §4.F's column-list and
// arity rules).
func AnalyzeInsert(stmt *ast.InsertStmt, cat *catalog.Catalog) (*UntypedQuery, error) {
	table, err := resolveTableRef(cat, stmt.Table)
	if err != nil {
		return nil, err
	}

	var targetOrdinals []int
	if stmt.Columns != nil {
		targetOrdinals = make([]int, len(stmt.Columns))
		for i, name := range stmt.Columns {
			col, ok := table.ColumnByName(name)
			if !ok {
				return nil, catalog.ErrColumnNotFound.New(name, stmt.Table.Schema, stmt.Table.Table)
			}
			targetOrdinals[i] = col.Ordinal
		}
	} else {
		targetOrdinals = make([]int, len(table.Columns))
		for i := range table.Columns {
			targetOrdinals[i] = i
		}
	}

	rows := make([][]*tree.UntypedTree, len(stmt.Rows))
	for ri, row := range stmt.Rows {
		if len(row) != len(targetOrdinals) {
			return nil, ErrInsertArityMismatch.New(len(row), len(targetOrdinals))
		}

		full := make([]*tree.UntypedTree, len(table.Columns))
		for i := range full {
			full[i] = tree.Leaf(tree.KindNull, tree.UntypedItem{})
		}
		for i, val := range row {
			// INSERT VALUES is a static context: column references are
			// rejected with ColumnCantBeReferenced (spec §4.F).
			t, err := lowerExpr(val, nil)
			if err != nil {
				return nil, err
			}
			full[targetOrdinals[i]] = t
		}
		rows[ri] = full
	}

	return &UntypedQuery{
		Kind:       KindInsert,
		Schema:     stmt.Table.Schema,
		Table:      stmt.Table.Table,
		InsertRows: rows,
	}, nil
}

// AnalyzeUpdate lowers an UPDATE statement; each assignment's column must
// belong to the target table (spec §4.F).
func AnalyzeUpdate(stmt *ast.UpdateStmt, cat *catalog.Catalog) (*UntypedQuery, error) {
	table, err := resolveTableRef(cat, stmt.Table)
	if err != nil {
		return nil, err
	}
	resolve := columnResolverFor(table)

	assignments := make([]*tree.UntypedTree, len(table.Columns))
	for _, a := range stmt.Assignments {
		col, ok := table.ColumnByName(a.Column)
		if !ok {
			return nil, catalog.ErrColumnNotFound.New(a.Column, stmt.Table.Schema, stmt.Table.Table)
		}
		val, err := lowerExpr(a.Value, resolve)
		if err != nil {
			return nil, err
		}
		assignments[col.Ordinal] = val
	}

	filter, err := lowerFilter(stmt.Where, resolve)
	if err != nil {
		return nil, err
	}

	return &UntypedQuery{
		Kind:        KindUpdate,
		Schema:      stmt.Table.Schema,
		Table:       stmt.Table.Table,
		Assignments: assignments,
		Filter:      filter,
	}, nil
}

// AnalyzeDelete lowers a DELETE statement.
func AnalyzeDelete(stmt *ast.DeleteStmt, cat *catalog.Catalog) (*UntypedQuery, error) {
	table, err := resolveTableRef(cat, stmt.Table)
	if err != nil {
		return nil, err
	}
	resolve := columnResolverFor(table)

	filter, err := lowerFilter(stmt.Where, resolve)
	if err != nil {
		return nil, err
	}

	return &UntypedQuery{
		Kind:   KindDelete,
		Schema: stmt.Table.Schema,
		Table:  stmt.Table.Table,
		Filter: filter,
	}, nil
}

// AnalyzeSelect lowers a SELECT statement. SELECT * expands to one
// ColumnRef per table column in ordinal order before lowering.
func AnalyzeSelect(stmt *ast.SelectStmt, cat *catalog.Catalog) (*UntypedQuery, error) {
	table, err := resolveTableRef(cat, stmt.Table)
	if err != nil {
		return nil, err
	}
	resolve := columnResolverFor(table)

	var names []string
	var exprs []ast.Expr
	if stmt.Star {
		names = make([]string, len(table.Columns))
		exprs = make([]ast.Expr, len(table.Columns))
		for i, c := range table.Columns {
			names[i] = c.Name
			exprs[i] = ast.ColumnRef{Name: c.Name}
		}
	} else {
		exprs = stmt.Projections
		names = make([]string, len(exprs))
		for i, e := range exprs {
			names[i] = projectionName(e)
		}
	}

	projections := make([]*tree.UntypedTree, len(exprs))
	for i, e := range exprs {
		t, err := lowerExpr(e, resolve)
		if err != nil {
			return nil, err
		}
		projections[i] = t
	}

	filter, err := lowerFilter(stmt.Where, resolve)
	if err != nil {
		return nil, err
	}

	return &UntypedQuery{
		Kind:            KindSelect,
		Schema:          stmt.Table.Schema,
		Table:           stmt.Table.Table,
		Projections:     projections,
		ProjectionNames: names,
		Filter:          filter,
	}, nil
}

// projectionName mirrors PostgreSQL's own convention: a bare column
// reference keeps its name, anything else is labeled "?column?" (this
// spec's Non-goals exclude output aliases, so there's no AS clause to read
// a better name from).
func projectionName(e ast.Expr) string {
	if c, ok := e.(ast.ColumnRef); ok {
		return c.Name
	}
	return "?column?"
}

func lowerFilter(where ast.Expr, resolve columnResolver) (*tree.UntypedTree, error) {
	if where == nil {
		return nil, nil
	}
	return lowerExpr(where, resolve)
}
