package ast

import "testing"

func TestStatementsImplementStatementInterface(t *testing.T) {
	var stmts = []Statement{
		&CreateSchemaStmt{Name: "shop"},
		&DropSchemaStmt{Names: []string{"shop"}},
		&CreateTableStmt{Table: TableRef{Schema: "shop", Table: "t"}},
		&DropTableStmt{Tables: []TableRef{{Schema: "shop", Table: "t"}}},
		&CreateIndexStmt{Name: "idx", Table: TableRef{Schema: "shop", Table: "t"}},
		&InsertStmt{Table: TableRef{Schema: "shop", Table: "t"}},
		&UpdateStmt{Table: TableRef{Schema: "shop", Table: "t"}},
		&DeleteStmt{Table: TableRef{Schema: "shop", Table: "t"}},
		&SelectStmt{Table: TableRef{Schema: "shop", Table: "t"}},
	}
	if len(stmts) != 9 {
		t.Fatalf("expected 9 statement kinds, got %d", len(stmts))
	}
}

func TestExprsImplementExprInterface(t *testing.T) {
	var exprs = []Expr{
		IntLiteral{Value: 1},
		NumberLiteral{},
		StringLiteral{Value: "x"},
		BoolLiteral{Value: true},
		NullLiteral{},
		Param{Index: 0},
		ColumnRef{Name: "id"},
		&UnaryExpr{Op: Neg, Operand: IntLiteral{Value: 1}},
		&BinaryExpr{Op: Plus, Left: IntLiteral{Value: 1}, Right: IntLiteral{Value: 2}},
		&CastExpr{Target: TypeName{Name: "integer"}, Operand: StringLiteral{Value: "1"}},
	}
	if len(exprs) != 10 {
		t.Fatalf("expected 10 expr kinds, got %d", len(exprs))
	}
}
