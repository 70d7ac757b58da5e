// Package queryexec implements the query executor (spec §4.K): running an
// analyzer.UntypedQuery's four shapes (insert, delete, update, select)
// against a ddl.Database, compiling each expression tree through
// typeinfer -> typecheck -> typecoerce immediately before it's evaluated.
package queryexec

import (
	"fmt"

	"github.com/nanodb/nanodb/analyzer"
	"github.com/nanodb/nanodb/ddl"
	"github.com/nanodb/nanodb/eval"
	"github.com/nanodb/nanodb/rowstore"
	"github.com/nanodb/nanodb/tree"
	"github.com/nanodb/nanodb/typecheck"
	"github.com/nanodb/nanodb/typecoerce"
	"github.com/nanodb/nanodb/typeinfer"
	"github.com/nanodb/nanodb/types"
)

// TableHandle is the capability record the executor depends on (spec §9):
// scan/insert/update/delete, nothing storage-specific. rowstore.Table
// satisfies it today; a future on-disk table implementation could satisfy
// it without any change here.
type TableHandle interface {
	Scan() *rowstore.Cursor
	Insert(rows []types.Row) (int, error)
	Update(updates []rowstore.Pair) error
	Delete(keys []rowstore.Key) (int, error)
}

// ResultColumn is one output column of a SELECT result (spec §4.K: "columns
// carries (name, family) pairs used to build the row-description outbound
// message").
type ResultColumn struct {
	Name   string
	Family types.Family
}

// Result is the executor's outcome for one statement: a row count for
// INSERT/UPDATE/DELETE, or columns+rows for SELECT.
type Result struct {
	Kind         analyzer.Kind
	RowsAffected int
	Columns      []ResultColumn
	Rows         [][]types.Value
}

// compile runs one UntypedTree through the rest of the analysis pipeline
// (spec §4.G-§4.I), producing the ExecutableTree eval.Eval consumes.
func compile(u *tree.UntypedTree) (*tree.ExecutableTree, error) {
	typed, err := typeinfer.Infer(u)
	if err != nil {
		return nil, err
	}
	checked, err := typecheck.Check(typed)
	if err != nil {
		return nil, err
	}
	return typecoerce.Coerce(checked)
}

// Execute dispatches q to its matching plan executor.
func Execute(q *analyzer.UntypedQuery, db *ddl.Database, params []types.Value) (*Result, error) {
	switch q.Kind {
	case analyzer.KindInsert:
		return execInsert(q, db, params)
	case analyzer.KindDelete:
		return execDelete(q, db, params)
	case analyzer.KindUpdate:
		return execUpdate(q, db, params)
	case analyzer.KindSelect:
		return execSelect(q, db, params)
	default:
		return nil, fmt.Errorf("queryexec: unknown query kind %d", q.Kind)
	}
}

// execInsert implements spec §4.K's insert plan: evaluate each value tree
// statically (no row context), narrow the result to the column's declared
// type, pack, and write.
func execInsert(q *analyzer.UntypedQuery, db *ddl.Database, params []types.Value) (*Result, error) {
	cols, err := db.Catalog.TableColumns(q.Schema, q.Table)
	if err != nil {
		return nil, err
	}
	var table TableHandle = db.Table(q.Schema, q.Table)

	rows := make([]types.Row, len(q.InsertRows))
	for ri, row := range q.InsertRows {
		datums := make([]types.Datum, len(row))
		for ci, u := range row {
			exec, err := compile(u)
			if err != nil {
				return nil, err
			}
			v, err := rowstore.EvalStatic(exec, params)
			if err != nil {
				return nil, err
			}
			d, err := narrowToColumn(v, cols[ci].Type)
			if err != nil {
				return nil, err
			}
			datums[ci] = d
		}
		rows[ri] = types.PackDatums(datums)
	}

	n, err := table.Insert(rows)
	if err != nil {
		return nil, err
	}
	return &Result{Kind: analyzer.KindInsert, RowsAffected: n}, nil
}

// execDelete implements spec §4.K's delete plan: scan, keep keys whose
// filter evaluates true (or every key when there's no filter), delete them.
func execDelete(q *analyzer.UntypedQuery, db *ddl.Database, params []types.Value) (*Result, error) {
	var table TableHandle = db.Table(q.Schema, q.Table)

	filter, err := compileOptional(q.Filter)
	if err != nil {
		return nil, err
	}

	var keys []rowstore.Key
	cursor := table.Scan()
	for {
		p, ok := cursor.Next()
		if !ok {
			break
		}
		match, err := matchesFilter(filter, params, p.Row)
		if err != nil {
			return nil, err
		}
		if match {
			keys = append(keys, p.Key)
		}
	}

	n, err := table.Delete(keys)
	if err != nil {
		return nil, err
	}
	return &Result{Kind: analyzer.KindDelete, RowsAffected: n}, nil
}

// execUpdate implements spec §4.K's update plan: for each matching row,
// evaluate every assigned column against the row's *original* values,
// narrow to the column's declared type, and rewrite the row, leaving
// unassigned columns untouched.
func execUpdate(q *analyzer.UntypedQuery, db *ddl.Database, params []types.Value) (*Result, error) {
	cols, err := db.Catalog.TableColumns(q.Schema, q.Table)
	if err != nil {
		return nil, err
	}
	var table TableHandle = db.Table(q.Schema, q.Table)

	assignments := make([]*tree.ExecutableTree, len(q.Assignments))
	for i, u := range q.Assignments {
		if u == nil {
			continue
		}
		exec, err := compile(u)
		if err != nil {
			return nil, err
		}
		assignments[i] = exec
	}

	filter, err := compileOptional(q.Filter)
	if err != nil {
		return nil, err
	}

	var updates []rowstore.Pair
	cursor := table.Scan()
	for {
		p, ok := cursor.Next()
		if !ok {
			break
		}
		match, err := matchesFilter(filter, params, p.Row)
		if err != nil {
			return nil, err
		}
		if !match {
			continue
		}

		datums, err := types.UnpackDatums(p.Row)
		if err != nil {
			return nil, err
		}
		for i, exec := range assignments {
			if exec == nil {
				continue
			}
			v, err := rowstore.EvalDynamic(exec, params, p.Row)
			if err != nil {
				return nil, err
			}
			d, err := narrowToColumn(v, cols[i].Type)
			if err != nil {
				return nil, err
			}
			datums[i] = d
		}
		updates = append(updates, rowstore.Pair{Key: p.Key, Row: types.PackDatums(datums)})
	}

	if err := table.Update(updates); err != nil {
		return nil, err
	}
	return &Result{Kind: analyzer.KindUpdate, RowsAffected: len(updates)}, nil
}

// execSelect implements spec §4.K's select plan: for each matching row,
// evaluate every projection against it and collect the resulting values in
// insertion (scan) order.
func execSelect(q *analyzer.UntypedQuery, db *ddl.Database, params []types.Value) (*Result, error) {
	var table TableHandle = db.Table(q.Schema, q.Table)

	projections := make([]*tree.ExecutableTree, len(q.Projections))
	columns := make([]ResultColumn, len(q.Projections))
	for i, u := range q.Projections {
		exec, err := compile(u)
		if err != nil {
			return nil, err
		}
		projections[i] = exec
		columns[i] = ResultColumn{Name: q.ProjectionNames[i], Family: exec.Payload().Family}
	}

	filter, err := compileOptional(q.Filter)
	if err != nil {
		return nil, err
	}

	var rows [][]types.Value
	cursor := table.Scan()
	for {
		p, ok := cursor.Next()
		if !ok {
			break
		}
		match, err := matchesFilter(filter, params, p.Row)
		if err != nil {
			return nil, err
		}
		if !match {
			continue
		}

		out := make([]types.Value, len(projections))
		for i, exec := range projections {
			v, err := rowstore.EvalDynamic(exec, params, p.Row)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		rows = append(rows, out)
	}

	return &Result{Kind: analyzer.KindSelect, RowsAffected: len(rows), Columns: columns, Rows: rows}, nil
}

// narrowToColumn converts v to the Datum its column's declared Type stores,
// range-checking fixed-width integer families first — types.DatumFromValue
// itself just truncates (spec §4.D's "narrowing cast with range check" is
// the caller's job for INSERT/UPDATE, same as eval's explicit-CAST path).
func narrowToColumn(v types.Value, t types.Type) (types.Datum, error) {
	if !v.IsNull() && t.Family().IsInteger() {
		d, ok := v.NumValue()
		if ok && !types.FitsInFamily(d, t.Family()) {
			return types.Datum{}, eval.ErrNumericOutOfRange.New(t.Family())
		}
	}
	return types.DatumFromValue(v, t), nil
}

func compileOptional(u *tree.UntypedTree) (*tree.ExecutableTree, error) {
	if u == nil {
		return nil, nil
	}
	return compile(u)
}

// matchesFilter reports whether row passes filter; a nil filter (no WHERE
// clause) matches every row.
func matchesFilter(filter *tree.ExecutableTree, params []types.Value, row types.Row) (bool, error) {
	if filter == nil {
		return true, nil
	}
	v, err := rowstore.EvalDynamic(filter, params, row)
	if err != nil {
		return false, err
	}
	b, ok := v.BoolValue()
	return ok && b, nil
}
