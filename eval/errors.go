package eval

import "gopkg.in/src-d/go-errors.v1"

// Evaluation error kinds (spec §4.J/§7).
var (
	ErrUndefinedFunction            = errors.NewKind("undefined operator %s for type %s")
	ErrDatatypeMismatch              = errors.NewKind("operator %s expected %s, got %s")
	ErrInvalidInputSyntaxForType     = errors.NewKind("invalid input syntax for type %s: %q")
	ErrInvalidArgumentForPowerFunction = errors.NewKind("invalid argument for power function")
	ErrDivisionByZero                = errors.NewKind("division by zero")
	ErrNumericOutOfRange             = errors.NewKind("numeric out of range for type %s")
)
