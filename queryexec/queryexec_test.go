package queryexec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nanodb/nanodb/analyzer"
	"github.com/nanodb/nanodb/ast"
	"github.com/nanodb/nanodb/catalog"
	"github.com/nanodb/nanodb/ddl"
	"github.com/nanodb/nanodb/eval"
	"github.com/nanodb/nanodb/types"
)

func newSmallIntTestDB(t *testing.T) *ddl.Database {
	t.Helper()
	db := ddl.NewDatabase()
	require.NoError(t, ddl.Execute(db, ddl.PlanCreateSchema("shop", false)))
	cols := []catalog.Column{
		{Name: "id", Type: types.NewInteger()},
		{Name: "qty", Type: types.NewSmallInt()},
	}
	require.NoError(t, ddl.Execute(db, ddl.PlanCreateTable("shop", "stock", cols, false)))
	return db
}

func newTestDB(t *testing.T) *ddl.Database {
	t.Helper()
	db := ddl.NewDatabase()
	require.NoError(t, ddl.Execute(db, ddl.PlanCreateSchema("shop", false)))
	cols := []catalog.Column{
		{Name: "id", Type: types.NewInteger()},
		{Name: "name", Type: types.NewVarChar(32)},
	}
	require.NoError(t, ddl.Execute(db, ddl.PlanCreateTable("shop", "products", cols, false)))
	return db
}

func mustAnalyze(t *testing.T, db *ddl.Database, stmt ast.Statement) *analyzer.UntypedQuery {
	t.Helper()
	q, err := analyzer.AnalyzeQuery(stmt, db.Catalog)
	require.NoError(t, err)
	return q
}

func insertOne(t *testing.T, db *ddl.Database, id int64, name string) {
	t.Helper()
	stmt := &ast.InsertStmt{
		Table: ast.TableRef{Schema: "shop", Table: "products"},
		Rows: [][]ast.Expr{{
			ast.IntLiteral{Value: id},
			ast.StringLiteral{Value: name},
		}},
	}
	q := mustAnalyze(t, db, stmt)
	res, err := Execute(q, db, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, res.RowsAffected)
}

func TestExecuteInsertWritesRow(t *testing.T) {
	db := newTestDB(t)
	insertOne(t, db, 1, "widget")

	cursor := db.Table("shop", "products").Scan()
	p, ok := cursor.Next()
	require.True(t, ok)
	datums, err := types.UnpackDatums(p.Row)
	require.NoError(t, err)
	assert.Equal(t, "widget", datums[1].StrValue())
}

func TestExecuteSelectStarReturnsInsertedRows(t *testing.T) {
	db := newTestDB(t)
	insertOne(t, db, 1, "widget")
	insertOne(t, db, 2, "gadget")

	stmt := &ast.SelectStmt{Table: ast.TableRef{Schema: "shop", Table: "products"}, Star: true}
	q := mustAnalyze(t, db, stmt)

	res, err := Execute(q, db, nil)
	require.NoError(t, err)
	require.Equal(t, []string{"id", "name"}, []string{res.Columns[0].Name, res.Columns[1].Name})
	require.Len(t, res.Rows, 2)

	name0, _ := res.Rows[0][1].StringValue()
	name1, _ := res.Rows[1][1].StringValue()
	assert.Equal(t, "widget", name0)
	assert.Equal(t, "gadget", name1)
}

func TestExecuteSelectWithFilterNarrowsRows(t *testing.T) {
	db := newTestDB(t)
	insertOne(t, db, 1, "widget")
	insertOne(t, db, 2, "gadget")

	stmt := &ast.SelectStmt{
		Table: ast.TableRef{Schema: "shop", Table: "products"},
		Star:  true,
		Where: &ast.BinaryExpr{Op: ast.Eq, Left: ast.ColumnRef{Name: "id"}, Right: ast.IntLiteral{Value: 2}},
	}
	q := mustAnalyze(t, db, stmt)

	res, err := Execute(q, db, nil)
	require.NoError(t, err)
	require.Len(t, res.Rows, 1)
	name, _ := res.Rows[0][1].StringValue()
	assert.Equal(t, "gadget", name)
}

func TestExecuteUpdateRewritesOnlyAssignedColumn(t *testing.T) {
	db := newTestDB(t)
	insertOne(t, db, 1, "widget")

	stmt := &ast.UpdateStmt{
		Table:       ast.TableRef{Schema: "shop", Table: "products"},
		Assignments: []ast.Assignment{{Column: "name", Value: ast.StringLiteral{Value: "gadget"}}},
		Where:       &ast.BinaryExpr{Op: ast.Eq, Left: ast.ColumnRef{Name: "id"}, Right: ast.IntLiteral{Value: 1}},
	}
	q := mustAnalyze(t, db, stmt)

	res, err := Execute(q, db, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, res.RowsAffected)

	cursor := db.Table("shop", "products").Scan()
	p, ok := cursor.Next()
	require.True(t, ok)
	datums, err := types.UnpackDatums(p.Row)
	require.NoError(t, err)
	assert.Equal(t, "gadget", datums[1].StrValue())
	assert.Equal(t, int32(1), datums[0].I32Value())
}

func TestExecuteDeleteRemovesMatchingRows(t *testing.T) {
	db := newTestDB(t)
	insertOne(t, db, 1, "widget")
	insertOne(t, db, 2, "gadget")

	stmt := &ast.DeleteStmt{
		Table: ast.TableRef{Schema: "shop", Table: "products"},
		Where: &ast.BinaryExpr{Op: ast.Eq, Left: ast.ColumnRef{Name: "id"}, Right: ast.IntLiteral{Value: 1}},
	}
	q := mustAnalyze(t, db, stmt)

	res, err := Execute(q, db, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, res.RowsAffected)

	cursor := db.Table("shop", "products").Scan()
	p, ok := cursor.Next()
	require.True(t, ok)
	datums, err := types.UnpackDatums(p.Row)
	require.NoError(t, err)
	assert.Equal(t, int32(2), datums[0].I32Value())
	_, ok = cursor.Next()
	assert.False(t, ok)
}

func TestExecuteInsertOutOfRangeSmallIntIsRejectedNotTruncated(t *testing.T) {
	db := newSmallIntTestDB(t)
	stmt := &ast.InsertStmt{
		Table: ast.TableRef{Schema: "shop", Table: "stock"},
		Rows: [][]ast.Expr{{
			ast.IntLiteral{Value: 1},
			ast.IntLiteral{Value: 40000},
		}},
	}
	q := mustAnalyze(t, db, stmt)

	_, err := Execute(q, db, nil)
	require.Error(t, err)
	assert.True(t, eval.ErrNumericOutOfRange.Is(err))

	cursor := db.Table("shop", "stock").Scan()
	_, ok := cursor.Next()
	assert.False(t, ok)
}

func TestExecuteUpdateOutOfRangeSmallIntIsRejectedNotTruncated(t *testing.T) {
	db := newSmallIntTestDB(t)
	insertStmt := &ast.InsertStmt{
		Table: ast.TableRef{Schema: "shop", Table: "stock"},
		Rows: [][]ast.Expr{{
			ast.IntLiteral{Value: 1},
			ast.IntLiteral{Value: 5},
		}},
	}
	q := mustAnalyze(t, db, insertStmt)
	_, err := Execute(q, db, nil)
	require.NoError(t, err)

	updateStmt := &ast.UpdateStmt{
		Table:       ast.TableRef{Schema: "shop", Table: "stock"},
		Assignments: []ast.Assignment{{Column: "qty", Value: ast.IntLiteral{Value: 40000}}},
		Where:       &ast.BinaryExpr{Op: ast.Eq, Left: ast.ColumnRef{Name: "id"}, Right: ast.IntLiteral{Value: 1}},
	}
	q = mustAnalyze(t, db, updateStmt)

	_, err = Execute(q, db, nil)
	require.Error(t, err)
	assert.True(t, eval.ErrNumericOutOfRange.Is(err))

	cursor := db.Table("shop", "stock").Scan()
	p, ok := cursor.Next()
	require.True(t, ok)
	datums, err := types.UnpackDatums(p.Row)
	require.NoError(t, err)
	assert.Equal(t, int16(5), datums[1].I16Value())
}

func TestExecuteDeleteWithoutWhereRemovesEverything(t *testing.T) {
	db := newTestDB(t)
	insertOne(t, db, 1, "widget")
	insertOne(t, db, 2, "gadget")

	stmt := &ast.DeleteStmt{Table: ast.TableRef{Schema: "shop", Table: "products"}}
	q := mustAnalyze(t, db, stmt)

	res, err := Execute(q, db, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, res.RowsAffected)

	cursor := db.Table("shop", "products").Scan()
	_, ok := cursor.Next()
	assert.False(t, ok)
}
