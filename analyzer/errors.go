package analyzer

import "gopkg.in/src-d/go-errors.v1"

// Error kinds specific to analysis that don't already live in catalog (spec
// §4.F/§7): a static-context column reference, and an INSERT whose row
// arity doesn't match the target column list.
var (
	ErrColumnCantBeReferenced = errors.NewKind("column %s cannot be referenced in this context")
	ErrInsertArityMismatch    = errors.NewKind("insert has %d values but %d columns")
)
