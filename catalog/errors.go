package catalog

import "gopkg.in/src-d/go-errors.v1"

// Error kinds form the closed naming/existence/dependency taxonomy of
// spec §4.C/§7. Each is a go-errors.v1 Kind, following the auth package's
// errors.NewKind idiom: construct once, instantiate per occurrence with
// .New(args...).
var (
	ErrSchemaNamingError        = errors.NewKind("invalid schema name: %s")
	ErrTableNamingError         = errors.NewKind("invalid table name: %s")
	ErrColumnNamingError        = errors.NewKind("invalid column name: %s")
	ErrSchemaAlreadyExists      = errors.NewKind("schema %s already exists")
	ErrSchemaDoesNotExist       = errors.NewKind("schema %s does not exist")
	ErrTableAlreadyExists       = errors.NewKind("table %s.%s already exists")
	ErrTableDoesNotExist        = errors.NewKind("table %s.%s does not exist")
	ErrColumnNotFound           = errors.NewKind("column %s not found in %s.%s")
	ErrSchemaHasDependentObjects = errors.NewKind("schema %s has dependent objects")
)
