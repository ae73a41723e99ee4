package dialect

import (
	"fmt"
	"strings"

	"office-pump/internal/catalog"
)

type SqliteDialect struct{}

func (d *SqliteDialect) TablesQuery(schema string) (string, []any) {
	// Virtual tables are backed by a module rather than the database file;
	// their CREATE statement stands in for the connect string.
	return `SELECT name, CASE WHEN sql LIKE 'CREATE VIRTUAL TABLE%' THEN sql ELSE '' END FROM sqlite_master WHERE type = 'table' AND ? IS NOT NULL ORDER BY name`, []any{d.GetSchemaName(schema)}
}

func (d *SqliteDialect) ColumnsQuery(schema, table string) (string, []any) {
	// pragma_table_info reports the declared type verbatim, e.g. VARCHAR(50).
	return `SELECT name, type, NULL FROM pragma_table_info(?) ORDER BY cid`, []any{table}
}

func (d *SqliteDialect) QualifiedName(schema, table string) string {
	return qualify(d.GetSchemaName(schema), table, `"`, `"`)
}

// FieldType follows SQLite's type-affinity rules on the declared type name,
// refined by common declared names.
func (d *SqliteDialect) FieldType(dataType string, length int) catalog.FieldType {
	t := DefaultNormalizeType(dataType)
	switch {
	case t == "":
		return catalog.LongBinary
	case strings.Contains(t, "bool"):
		return catalog.Boolean
	case t == "tinyint":
		return catalog.Byte
	case t == "smallint":
		return catalog.Integer
	case t == "bigint":
		return catalog.BigInt
	case strings.Contains(t, "int"):
		return catalog.Long
	case strings.Contains(t, "char"), strings.Contains(t, "clob"), strings.Contains(t, "text"):
		if length > 0 {
			return catalog.Text
		}
		return catalog.Memo
	case strings.Contains(t, "blob"):
		return catalog.LongBinary
	case t == "float":
		return catalog.Single
	case strings.Contains(t, "real"), strings.Contains(t, "floa"), strings.Contains(t, "doub"):
		return catalog.Double
	case strings.Contains(t, "money"), strings.Contains(t, "currency"):
		return catalog.Currency
	case strings.Contains(t, "dec"), strings.Contains(t, "numeric"):
		return catalog.Decimal
	case strings.Contains(t, "date"), strings.Contains(t, "time"):
		return catalog.Date
	case t == "uuid", t == "guid":
		return catalog.GUID
	default:
		return catalog.Unknown
	}
}

func (d *SqliteDialect) SystemTablePrefix() string {
	return "sqlite_"
}

func (d *SqliteDialect) GetSchemaName(input string) string {
	if input == "" {
		return "main"
	}
	return input
}

func (d *SqliteDialect) InsertQuery(table string, cols []string) string {
	vals := GeneratePlaceholders(len(cols), d.Placeholder)
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", table, strings.Join(cols, ", "), vals)
}

func (d *SqliteDialect) DropTableQuery(table string) string {
	return fmt.Sprintf("DROP TABLE IF EXISTS %s", table)
}

func (d *SqliteDialect) Placeholder(index int) string {
	return "?"
}

func (d *SqliteDialect) ColumnType(ft catalog.FieldType, size int) string {
	switch ft {
	case catalog.Boolean:
		return "BOOLEAN"
	case catalog.Long:
		return "INTEGER"
	case catalog.BigInt:
		return "BIGINT"
	case catalog.Double:
		return "DOUBLE"
	case catalog.Currency, catalog.Decimal:
		return "DECIMAL(19,4)"
	case catalog.Date:
		return "DATETIME"
	case catalog.Text:
		return fmt.Sprintf("VARCHAR(%d)", size)
	case catalog.Memo:
		return "TEXT"
	case catalog.LongBinary:
		return "BLOB"
	default:
		return "VARCHAR(255)"
	}
}
