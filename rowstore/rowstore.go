// Package rowstore implements the per-table row storage (spec §4.D): a
// table is a map from a monotonically assigned Key to a packed Row. Each
// Table guards its own state with a sync.RWMutex (spec §5: "Row stores are
// per-table and may be mutated concurrently with other tables"), separate
// from the catalog's single process-wide lock.
package rowstore

import (
	"fmt"
	"sync"

	"github.com/nanodb/nanodb/eval"
	"github.com/nanodb/nanodb/tree"
	"github.com/nanodb/nanodb/types"
)

// Key identifies one row within a Table. Keys are assigned in strictly
// increasing order by successive inserts (spec §8's "key monotonicity"
// property) and never reused.
type Key uint64

// Pair is one (Key, Row) result of a scan.
type Pair struct {
	Key Key
	Row types.Row
}

// Table is a mapping Key -> Row plus the insertion-order key sequence, so
// that a scan without ORDER BY reproduces insertion order (spec §8's
// "SELECT insertion order" property).
type Table struct {
	mu      sync.RWMutex
	rows    map[Key]types.Row
	order   []Key
	nextKey Key
}

// New returns an empty Table.
func New() *Table {
	return &Table{rows: make(map[Key]types.Row)}
}

// Scan returns a snapshot cursor over every row present at the moment of
// the call, in insertion-key order. Per spec §5, writes that happen after
// Scan returns are not visible through the returned Cursor.
func (t *Table) Scan() *Cursor {
	t.mu.RLock()
	defer t.mu.RUnlock()

	pairs := make([]Pair, 0, len(t.order))
	for _, k := range t.order {
		if row, ok := t.rows[k]; ok {
			pairs = append(pairs, Pair{Key: k, Row: row})
		}
	}
	return &Cursor{pairs: pairs}
}

// Cursor is a lazy iterator over a Scan snapshot.
type Cursor struct {
	pairs []Pair
	pos   int
}

// Next returns the next (Key, Row) pair and true, or the zero Pair and
// false once exhausted.
func (c *Cursor) Next() (Pair, bool) {
	if c.pos >= len(c.pairs) {
		return Pair{}, false
	}
	p := c.pairs[c.pos]
	c.pos++
	return p, true
}

// Insert appends rows in order, each assigned the next available Key.
// Returns the number of rows inserted.
func (t *Table) Insert(rows []types.Row) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, row := range rows {
		k := t.nextKey
		t.nextKey++
		t.rows[k] = row
		t.order = append(t.order, k)
	}
	return len(rows), nil
}

// Update replaces the row at each given key. An update naming a key absent
// from the table is an error (spec §4.D: "unknown keys are errors").
func (t *Table) Update(updates []Pair) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, u := range updates {
		if _, ok := t.rows[u.Key]; !ok {
			return fmt.Errorf("rowstore: update references unknown key %d", u.Key)
		}
	}
	for _, u := range updates {
		t.rows[u.Key] = u.Row
	}
	return nil
}

// Delete removes each named key's row, returning the count actually
// removed. Absent keys are silently skipped (spec §4.D: "consistent with
// 'delete all matching' semantics").
func (t *Table) Delete(keys []Key) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	deleted := 0
	removed := map[Key]struct{}{}
	for _, k := range keys {
		if _, ok := t.rows[k]; ok {
			delete(t.rows, k)
			deleted++
			removed[k] = struct{}{}
		}
	}
	if deleted == 0 {
		return 0, nil
	}

	newOrder := t.order[:0:0]
	for _, k := range t.order {
		if _, wasRemoved := removed[k]; wasRemoved {
			continue
		}
		newOrder = append(newOrder, k)
	}
	t.order = newOrder
	return deleted, nil
}

// EvalStatic collapses a row-independent ExecutableTree into a Value (spec
// §4.D's eval_static bridge), e.g. an INSERT VALUES expression that never
// references a column.
func EvalStatic(t *tree.ExecutableTree, params []types.Value) (types.Value, error) {
	return eval.Eval(t, params, nil)
}

// EvalDynamic evaluates a row-dependent ExecutableTree against one packed
// Row (spec §4.D's eval_dynamic bridge): column references bind to the
// row's datums by ordinal.
func EvalDynamic(t *tree.ExecutableTree, params []types.Value, row types.Row) (types.Value, error) {
	datums, err := types.UnpackDatums(row)
	if err != nil {
		return types.Value{}, err
	}
	return eval.Eval(t, params, datums)
}
