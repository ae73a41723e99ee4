package dialect

import (
	"fmt"
	"strings"

	"office-pump/internal/catalog"
)

type PostgresDialect struct{}

func (d *PostgresDialect) TablesQuery(schema string) (string, []any) {
	// Foreign tables report the foreign server they are bound to.
	return `SELECT t.table_name, COALESCE(ft.foreign_server_name, '') AS connect_str
FROM information_schema.tables t
LEFT JOIN information_schema.foreign_tables ft
	ON ft.foreign_table_schema = t.table_schema AND ft.foreign_table_name = t.table_name
WHERE t.table_schema = $1 AND t.table_type IN ('BASE TABLE', 'FOREIGN')
ORDER BY t.table_name`, []any{schema}
}

func (d *PostgresDialect) ColumnsQuery(schema, table string) (string, []any) {
	return `SELECT column_name, data_type, character_maximum_length FROM information_schema.columns WHERE table_schema = $1 AND table_name = $2 ORDER BY ordinal_position`, []any{schema, table}
}

func (d *PostgresDialect) QualifiedName(schema, table string) string {
	return qualify(schema, table, `"`, `"`)
}

func (d *PostgresDialect) FieldType(dataType string, length int) catalog.FieldType {
	t := DefaultNormalizeType(dataType)
	switch {
	case t == "boolean":
		return catalog.Boolean
	case t == "smallint":
		return catalog.Integer
	case t == "integer":
		return catalog.Long
	case t == "bigint":
		return catalog.BigInt
	case t == "real":
		return catalog.Single
	case t == "double precision":
		return catalog.Double
	case t == "money":
		return catalog.Currency
	case t == "numeric":
		return catalog.Decimal
	case t == "date", strings.HasPrefix(t, "timestamp"), strings.HasPrefix(t, "time"), t == "interval":
		return catalog.Date
	case t == "uuid":
		return catalog.GUID
	case t == "character varying", t == "character":
		if length > 0 {
			return catalog.Text
		}
		return catalog.Memo
	case t == "text", t == "json", t == "jsonb", t == "xml", t == "tsvector":
		return catalog.Memo
	case t == "bytea":
		return catalog.LongBinary
	default:
		return catalog.Unknown
	}
}

func (d *PostgresDialect) SystemTablePrefix() string {
	return "pg_"
}

func (d *PostgresDialect) GetSchemaName(input string) string {
	if input == "" {
		return "public"
	}
	return input
}

func (d *PostgresDialect) InsertQuery(table string, cols []string) string {
	// Generate placeholders ($1, $2, ...)
	vals := GeneratePlaceholders(len(cols), d.Placeholder)
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", table, strings.Join(cols, ", "), vals)
}

func (d *PostgresDialect) DropTableQuery(table string) string {
	return fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE", table)
}

func (d *PostgresDialect) Placeholder(index int) string {
	return fmt.Sprintf("$%d", index+1)
}

func (d *PostgresDialect) ColumnType(ft catalog.FieldType, size int) string {
	switch ft {
	case catalog.Boolean:
		return "BOOLEAN"
	case catalog.Long:
		return "INTEGER"
	case catalog.BigInt:
		return "BIGINT"
	case catalog.Double:
		return "DOUBLE PRECISION"
	case catalog.Currency, catalog.Decimal:
		return "NUMERIC(19,4)"
	case catalog.Date:
		return "TIMESTAMP"
	case catalog.Text:
		return fmt.Sprintf("VARCHAR(%d)", size)
	case catalog.Memo:
		return "TEXT"
	case catalog.LongBinary:
		return "BYTEA"
	default:
		return "VARCHAR(255)"
	}
}
