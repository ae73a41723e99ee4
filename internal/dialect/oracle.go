package dialect

import (
	"fmt"
	"strings"

	"office-pump/internal/catalog"
)

type OracleDialect struct{}

func (d *OracleDialect) TablesQuery(schema string) (string, []any) {
	// USER_TABLES lists tables owned by the current user.
	// We include a dummy clause to consume the schema argument like the other dialects.
	// Oracle has no linked tables; remote data is reached through DB links in queries.
	return `SELECT TABLE_NAME, '' FROM USER_TABLES WHERE :1 IS NOT NULL ORDER BY TABLE_NAME`, []any{oracleSchemaArg(schema)}
}

func (d *OracleDialect) ColumnsQuery(schema, table string) (string, []any) {
	return `SELECT COLUMN_NAME, DATA_TYPE, CASE WHEN CHAR_LENGTH > 0 THEN CHAR_LENGTH ELSE DATA_LENGTH END FROM USER_TAB_COLUMNS WHERE TABLE_NAME = :1 ORDER BY COLUMN_ID`, []any{table}
}

func (d *OracleDialect) QualifiedName(schema, table string) string {
	// Objects are resolved against the connected user's schema.
	return quote(table, `"`, `"`)
}

func (d *OracleDialect) FieldType(dataType string, length int) catalog.FieldType {
	t := DefaultNormalizeType(dataType)
	switch {
	case t == "number":
		return catalog.Decimal
	case t == "binary_float":
		return catalog.Single
	case t == "float", t == "binary_double":
		return catalog.Double
	case t == "date", strings.HasPrefix(t, "timestamp"), strings.HasPrefix(t, "interval"):
		return catalog.Date
	case t == "char", t == "nchar", t == "varchar2", t == "nvarchar2":
		return catalog.Text
	case t == "clob", t == "nclob", t == "long":
		return catalog.Memo
	case t == "raw":
		if length == 16 {
			return catalog.GUID
		}
		return catalog.Binary
	case t == "blob", t == "long raw", t == "bfile":
		return catalog.LongBinary
	default:
		return catalog.Unknown
	}
}

func (d *OracleDialect) SystemTablePrefix() string {
	return "SYS_"
}

func (d *OracleDialect) GetSchemaName(input string) string {
	return input
}

func oracleSchemaArg(schema string) string {
	if schema == "" {
		return "USER"
	}
	return schema
}

func (d *OracleDialect) InsertQuery(table string, cols []string) string {
	vals := GeneratePlaceholders(len(cols), d.Placeholder)
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", table, strings.Join(cols, ", "), vals)
}

// DropTableQuery has no IF EXISTS on Oracle; callers ignore the error for missing tables.
func (d *OracleDialect) DropTableQuery(table string) string {
	return fmt.Sprintf("DROP TABLE %s PURGE", table)
}

func (d *OracleDialect) Placeholder(index int) string {
	return fmt.Sprintf(":%d", index+1)
}

func (d *OracleDialect) ColumnType(ft catalog.FieldType, size int) string {
	switch ft {
	case catalog.Boolean:
		return "NUMBER(1)"
	case catalog.Long:
		return "NUMBER(10)"
	case catalog.BigInt:
		return "NUMBER(19)"
	case catalog.Double:
		return "BINARY_DOUBLE"
	case catalog.Currency, catalog.Decimal:
		return "NUMBER(19,4)"
	case catalog.Date:
		return "DATE"
	case catalog.Text:
		return fmt.Sprintf("VARCHAR2(%d)", size)
	case catalog.Memo:
		return "CLOB"
	case catalog.LongBinary:
		return "BLOB"
	default:
		return "VARCHAR2(255)"
	}
}
