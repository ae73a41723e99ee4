package dialect

import "office-pump/internal/catalog"

// Dialect abstracts database-specific catalog introspection.
type Dialect interface {
	// Metadata Queries (Schema Introspection)
	// TablesQuery yields rows of (table name, connect string).
	TablesQuery(schema string) (string, []any)
	// ColumnsQuery yields rows of (column name, data type, max length).
	ColumnsQuery(schema, table string) (string, []any)

	// DDL/DML used to seed demo catalogs
	InsertQuery(table string, cols []string) string
	DropTableQuery(table string) string
	ColumnType(ft catalog.FieldType, size int) string

	// Identifiers
	QualifiedName(schema, table string) string
	Placeholder(index int) string

	// Helpers
	FieldType(dataType string, length int) catalog.FieldType
	SystemTablePrefix() string
	GetSchemaName(input string) string
}
