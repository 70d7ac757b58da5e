package catalog

// DefinitionSchemaName is the reserved meta-schema mirroring catalog state
// (spec §3/§4.C). It always exists and cannot be dropped: Catalog.DropSchemas
// and the DDL planner's PlanDropSchemas both reject it with
// ErrSchemaNamingError. The DDL executor writes its meta-tables through the
// CreateRecord/RemoveRecord steps.
const DefinitionSchemaName = "DEFINITION_SCHEMA"

// Names of the three meta-tables inside DEFINITION_SCHEMA. Their column
// shapes mirror the catalog state a DDL step group affects: every
// CreateSchema/CreateTable effect is paired with a CreateRecord step that
// inserts the matching row here, and DropSchemas/DropTables with a
// RemoveRecord step.
const (
	MetaTableSchemata = "SCHEMATA"
	MetaTableTables   = "TABLES"
	MetaTableColumns  = "COLUMNS"
)

func newDefinitionSchema() *Schema {
	return &Schema{
		Name: DefinitionSchemaName,
		Tables: map[string]*Table{
			MetaTableSchemata: {
				Schema: DefinitionSchemaName,
				Name:   MetaTableSchemata,
				Columns: []Column{
					{Name: "schema_name", Ordinal: 0},
				},
			},
			MetaTableTables: {
				Schema: DefinitionSchemaName,
				Name:   MetaTableTables,
				Columns: []Column{
					{Name: "schema_name", Ordinal: 0},
					{Name: "table_name", Ordinal: 1},
				},
			},
			MetaTableColumns: {
				Schema: DefinitionSchemaName,
				Name:   MetaTableColumns,
				Columns: []Column{
					{Name: "schema_name", Ordinal: 0},
					{Name: "table_name", Ordinal: 1},
					{Name: "column_name", Ordinal: 2},
					{Name: "ordinal", Ordinal: 3},
					{Name: "type", Ordinal: 4},
				},
			},
		},
	}
}

// SchemaRecord, TableRecord, and ColumnRecord are the Record variants the
// DDL executor's CreateRecord/RemoveRecord steps carry (spec §4.E): the
// fully-qualified identity of the object, plus — for columns — their Type
// rendered as its String() form, matching the text-mode wire encoding used
// elsewhere (spec §6).
type SchemaRecord struct {
	SchemaName string
}

type TableRecord struct {
	SchemaName string
	TableName  string
}

type ColumnRecord struct {
	SchemaName string
	TableName  string
	ColumnName string
	Ordinal    int
	Type       string
}
