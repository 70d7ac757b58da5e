package engine

import (
	"sync"

	"github.com/nanodb/nanodb/ast"
	"github.com/nanodb/nanodb/protocol"
)

// PreparedStatementCache holds, per session, the named prepared statements
// (from Parse) and the named portals bound to them (from Bind) so that a
// later Bind/Execute has somewhere to find them — directly
// mirroring the teacher's PreparedDataCache (engine.go): one mutex-guarded
// map keyed by session id, looked up by name.
type PreparedStatementCache struct {
	mu      sync.Mutex
	stmts   map[protocol.Session]map[string]ast.Statement
	portals map[protocol.Session]map[string]ast.Statement
}

// NewPreparedStatementCache returns an empty cache.
func NewPreparedStatementCache() *PreparedStatementCache {
	return &PreparedStatementCache{
		stmts:   make(map[protocol.Session]map[string]ast.Statement),
		portals: make(map[protocol.Session]map[string]ast.Statement),
	}
}

// CacheStmt associates name with stmt for sessionID (a Parse message).
func (p *PreparedStatementCache) CacheStmt(sessionID protocol.Session, name string, stmt ast.Statement) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.stmts[sessionID]; !ok {
		p.stmts[sessionID] = make(map[string]ast.Statement)
	}
	p.stmts[sessionID][name] = stmt
}

// GetCachedStmt retrieves the statement named name for sessionID, or false
// if no such statement was ever Parse'd.
func (p *PreparedStatementCache) GetCachedStmt(sessionID protocol.Session, name string) (ast.Statement, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if sess, ok := p.stmts[sessionID]; ok {
		stmt, ok := sess[name]
		return stmt, ok
	}
	return nil, false
}

// CachePortal associates portal with stmt for sessionID (a Bind message).
func (p *PreparedStatementCache) CachePortal(sessionID protocol.Session, portal string, stmt ast.Statement) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.portals[sessionID]; !ok {
		p.portals[sessionID] = make(map[string]ast.Statement)
	}
	p.portals[sessionID][portal] = stmt
}

// GetCachedPortal retrieves the statement bound to portal for sessionID.
func (p *PreparedStatementCache) GetCachedPortal(sessionID protocol.Session, portal string) (ast.Statement, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if sess, ok := p.portals[sessionID]; ok {
		stmt, ok := sess[portal]
		return stmt, ok
	}
	return nil, false
}

// DeleteSessionData clears every statement and portal registered for
// sessionID (a Terminate message).
func (p *PreparedStatementCache) DeleteSessionData(sessionID protocol.Session) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.stmts, sessionID)
	delete(p.portals, sessionID)
}
