// Package engine wires the analysis and execution pipeline to the wire
// protocol boundary (SPEC_FULL §4.L): F (analyzer) -> G/H/I (typeinfer /
// typecheck / typecoerce, run inline by queryexec) -> K (queryexec) -> J
// (eval) -> D (rowstore), and E (ddl) -> C (catalog), the way the teacher's
// top-level Engine (engine.go) wires its analyzer, rowexec, and catalog
// together behind one Handle-shaped entry point.
package engine

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/nanodb/nanodb/analyzer"
	"github.com/nanodb/nanodb/ast"
	"github.com/nanodb/nanodb/ddl"
	"github.com/nanodb/nanodb/protocol"
	"github.com/nanodb/nanodb/queryexec"
)

// Parser turns SQL text into an AST. Per spec §6, "parsing sql into an AST
// is delegated" — Engine depends on this interface rather than a concrete
// parser so that collaborator can live outside this module's scope.
type Parser interface {
	Parse(sql string) (ast.Statement, error)
}

// Engine owns the catalog/row-store handle and the per-session prepared
// statement state, mirroring the teacher's Engine + PreparedDataCache pair.
type Engine struct {
	db       *ddl.Database
	parser   Parser
	prepared *PreparedStatementCache
	log      *logrus.Entry
}

// New returns an Engine over a fresh, empty Database.
func New(parser Parser) *Engine {
	return &Engine{
		db:       ddl.NewDatabase(),
		parser:   parser,
		prepared: NewPreparedStatementCache(),
		log:      logrus.WithField("component", "engine"),
	}
}

// Handle processes one Inbound message for the given session, returning the
// Outbound sequence it produces. Per spec §9's design note, a connection is
// modeled as an iterator of inbound messages producing iterators of
// outbound messages; Handle is one step of that iteration.
func (e *Engine) Handle(sessionID protocol.Session, in protocol.Inbound) []protocol.Outbound {
	switch m := in.(type) {
	case protocol.Query:
		stmt, err := e.parser.Parse(m.String)
		if err != nil {
			return append(e.fail(errors.Wrap(err, "parse")), readyForQuery())
		}
		return append(e.execStatement(stmt), readyForQuery())

	case protocol.Parse:
		stmt, err := e.parser.Parse(m.Query)
		if err != nil {
			return []protocol.Outbound{protocol.NewErrorResponse(errors.Wrap(err, "parse"))}
		}
		e.prepared.CacheStmt(sessionID, m.Name, stmt)
		return []protocol.Outbound{protocol.ParseComplete{}}

	case protocol.Bind:
		stmt, ok := e.prepared.GetCachedStmt(sessionID, m.PreparedStatement)
		if !ok {
			return []protocol.Outbound{protocol.NewErrorResponse(errors.Errorf("unknown prepared statement %q", m.PreparedStatement))}
		}
		e.prepared.CachePortal(sessionID, m.DestinationPortal, stmt)
		return []protocol.Outbound{protocol.BindComplete{}}

	case protocol.Describe:
		return []protocol.Outbound{}

	case protocol.Execute:
		// Per the extended query protocol, results from Execute are NOT
		// followed by ReadyForQuery — that only comes after Sync, allowing
		// several Parse/Bind/Execute groups to pipeline before a round trip.
		stmt, ok := e.prepared.GetCachedPortal(sessionID, m.Portal)
		if !ok {
			return []protocol.Outbound{protocol.NewErrorResponse(errors.Errorf("unknown portal %q", m.Portal))}
		}
		return e.execStatement(stmt)

	case protocol.Sync:
		return []protocol.Outbound{readyForQuery()}

	case protocol.Terminate:
		e.prepared.DeleteSessionData(sessionID)
		return nil

	default:
		return []protocol.Outbound{protocol.NewErrorResponse(errors.Errorf("unsupported inbound message %T", in))}
	}
}

// execStatement routes a parsed ast.Statement through the DDL or DML path,
// returning its result messages without a trailing ReadyForQuery — callers
// decide when that belongs (spec §7: "no retries, no partial results", §9:
// the connection is an iterator of inbound messages producing iterators of
// outbound messages).
func (e *Engine) execStatement(stmt ast.Statement) []protocol.Outbound {
	switch s := stmt.(type) {
	case *ast.CreateSchemaStmt, *ast.DropSchemaStmt, *ast.CreateTableStmt, *ast.DropTableStmt:
		return e.execDDL(stmt)
	case *ast.CreateIndexStmt:
		if err := analyzer.AnalyzeCreateIndex(s, e.db); err != nil {
			return e.fail(err)
		}
		return []protocol.Outbound{protocol.TableCreated{Schema: s.Table.Schema, Table: s.Table.Table}}
	default:
		return e.execDML(stmt)
	}
}

func (e *Engine) execDDL(stmt ast.Statement) []protocol.Outbound {
	op, err := analyzer.AnalyzeDDL(stmt, e.db)
	if err != nil {
		return e.fail(err)
	}
	if err := ddl.Execute(e.db, op); err != nil {
		return e.fail(err)
	}
	e.log.WithField("stmt", stmt).Trace("ddl applied")
	return []protocol.Outbound{ddlOutbound(stmt)}
}

func ddlOutbound(stmt ast.Statement) protocol.Outbound {
	switch s := stmt.(type) {
	case *ast.CreateSchemaStmt:
		return protocol.SchemaCreated{Name: s.Name}
	case *ast.DropSchemaStmt:
		name := ""
		if len(s.Names) > 0 {
			name = s.Names[0]
		}
		return protocol.SchemaDropped{Name: name}
	case *ast.CreateTableStmt:
		return protocol.TableCreated{Schema: s.Table.Schema, Table: s.Table.Table}
	case *ast.DropTableStmt:
		if len(s.Tables) > 0 {
			return protocol.TableDropped{Schema: s.Tables[0].Schema, Table: s.Tables[0].Table}
		}
		return protocol.TableDropped{}
	default:
		return protocol.TableCreated{}
	}
}

func (e *Engine) execDML(stmt ast.Statement) []protocol.Outbound {
	q, err := analyzer.AnalyzeQuery(stmt, e.db.Catalog)
	if err != nil {
		return e.fail(err)
	}

	res, err := queryexec.Execute(q, e.db, nil)
	if err != nil {
		return e.fail(err)
	}

	switch res.Kind {
	case analyzer.KindInsert:
		return []protocol.Outbound{protocol.RecordsInserted{N: res.RowsAffected}}
	case analyzer.KindUpdate:
		return []protocol.Outbound{protocol.RecordsUpdated{N: res.RowsAffected}}
	case analyzer.KindDelete:
		return []protocol.Outbound{protocol.RecordsDeleted{N: res.RowsAffected}}
	case analyzer.KindSelect:
		fields := make([]protocol.FieldSpec, len(res.Columns))
		for i, c := range res.Columns {
			fields[i] = protocol.FieldSpec{Name: c.Name, Family: c.Family}
		}
		out := []protocol.Outbound{protocol.NewRowDescription(fields)}
		for _, row := range res.Rows {
			out = append(out, protocol.NewDataRow(row))
		}
		return append(out, protocol.RecordsSelected{N: len(res.Rows)})
	default:
		return e.fail(errors.Errorf("engine: unhandled query kind %d", res.Kind))
	}
}

func (e *Engine) fail(err error) []protocol.Outbound {
	e.log.WithError(err).Warn("statement failed")
	return []protocol.Outbound{protocol.NewErrorResponse(err)}
}

func readyForQuery() protocol.Outbound {
	return protocol.NewReadyForQuery()
}
