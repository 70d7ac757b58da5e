// Package ast defines the language-agnostic input AST the query analyzer
// consumes (spec §6: "the core consumes an already-parsed AST"; parsing SQL
// text into these nodes is delegated to a wire-protocol/parser collaborator
// out of this package's scope). Every node implements the unexported node()
// marker, the same closed-interface idiom other_examples' omniql AST package
// uses for its Node/node() pair, kept minimal here rather than one sprawling
// struct.
package ast

// Node is implemented by every AST node.
type Node interface {
	node()
}

// Expr is an expression AST node: a literal, a reference, or an operator
// application over child Exprs.
type Expr interface {
	Node
	expr()
}

// Statement is a top-level AST statement: one DDL or DML operation.
type Statement interface {
	Node
	statement()
}

// TableRef names a fully-qualified table. Per spec §4.F, table references
// must be schema-qualified; an AST producer that only has an unqualified
// name is responsible for resolving a default schema before constructing
// this node.
type TableRef struct {
	Schema string
	Table  string
}

// TypeName is the AST-level spelling of a declared column type, resolved to
// a types.Type by the analyzer.
type TypeName struct {
	Name   string // "smallint", "integer", "bigint", "real", "double precision", "numeric", "bool", "char", "varchar"
	Length int    // meaningful only for "char"/"varchar"
}

// ColumnDef is one column of a CREATE TABLE column list.
type ColumnDef struct {
	Name string
	Type TypeName
}

// Assignment is one `column = expr` pair of an UPDATE statement.
type Assignment struct {
	Column string
	Value  Expr
}
