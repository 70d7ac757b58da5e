package typecheck

import "gopkg.in/src-d/go-errors.v1"

// Typing error kinds (spec §4.H/§7).
var (
	ErrUndefinedFunction = errors.NewKind("undefined operator %s for type %s")
	ErrCanNotCoerce      = errors.NewKind("cannot cast type %s to type %s")
)
