package protocol

import (
	"gopkg.in/src-d/go-errors.v1"

	"github.com/jackc/pgx/v5/pgproto3"

	"github.com/nanodb/nanodb/analyzer"
	"github.com/nanodb/nanodb/catalog"
	"github.com/nanodb/nanodb/eval"
	"github.com/nanodb/nanodb/typecheck"
)

// sqlState maps spec §7's closed error kinds to their Postgres SQLSTATE code
// (mirroring lib/pq's Error.Code field, other_examples/66d70aa3_lib-pq__error.go.go),
// so a generic client can branch on Code the same way it would against a
// real Postgres server.
var sqlState = []struct {
	kind *errors.Kind
	code string
}{
	{catalog.ErrSchemaNamingError, "42602"},
	{catalog.ErrTableNamingError, "42602"},
	{catalog.ErrColumnNamingError, "42602"},
	{analyzer.ErrColumnCantBeReferenced, "42P10"},
	{catalog.ErrSchemaDoesNotExist, "3F000"},
	{catalog.ErrSchemaAlreadyExists, "42P06"},
	{catalog.ErrTableDoesNotExist, "42P01"},
	{catalog.ErrTableAlreadyExists, "42P07"},
	{catalog.ErrColumnNotFound, "42703"},
	{catalog.ErrSchemaHasDependentObjects, "2BP01"},
	{analyzer.ErrInsertArityMismatch, "42601"},
	{eval.ErrUndefinedFunction, "42883"},
	{typecheck.ErrUndefinedFunction, "42883"},
	{eval.ErrDatatypeMismatch, "42804"},
	{typecheck.ErrCanNotCoerce, "42846"},
	{eval.ErrInvalidInputSyntaxForType, "22P02"},
	{eval.ErrDivisionByZero, "22012"},
	{eval.ErrNumericOutOfRange, "22003"},
	{eval.ErrInvalidArgumentForPowerFunction, "2201F"},
}

// NewErrorResponse converts any error returned by the analysis/execution
// pipeline into an outbound error frame, matching it against the registered
// taxonomy kinds (spec §7) to find its SQLSTATE code; an error from outside
// the taxonomy (a Go stdlib error, e.g.) gets the generic "internal_error"
// code rather than failing to report at all.
func NewErrorResponse(err error) ErrorResponse {
	code := "XX000"
	for _, m := range sqlState {
		if m.kind.Is(err) {
			code = m.code
			break
		}
	}
	return ErrorResponse{&pgproto3.ErrorResponse{
		Severity: string(ErrorResponseSeverityError),
		Code:     code,
		Message:  err.Error(),
	}}
}

// ErrorResponseSeverity mirrors Postgres's ErrorResponse severity field.
type ErrorResponseSeverity string

const (
	ErrorResponseSeverityError   ErrorResponseSeverity = "ERROR"
	ErrorResponseSeverityFatal   ErrorResponseSeverity = "FATAL"
	ErrorResponseSeverityPanic   ErrorResponseSeverity = "PANIC"
	ErrorResponseSeverityWarning ErrorResponseSeverity = "WARNING"
)
