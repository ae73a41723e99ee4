package dialect

import (
	"fmt"
	"strings"

	"office-pump/internal/catalog"
)

type MysqlDialect struct{}

func (d *MysqlDialect) TablesQuery(schema string) (string, []any) {
	// FEDERATED tables keep their remote connection string in CREATE_OPTIONS.
	return `SELECT TABLE_NAME, IF(ENGINE = 'FEDERATED', COALESCE(NULLIF(CREATE_OPTIONS, ''), 'FEDERATED'), '') AS CONNECT_STR FROM information_schema.TABLES WHERE TABLE_SCHEMA = ? AND TABLE_TYPE = 'BASE TABLE' ORDER BY TABLE_NAME`, []any{schema}
}

func (d *MysqlDialect) ColumnsQuery(schema, table string) (string, []any) {
	return `SELECT COLUMN_NAME, DATA_TYPE, CHARACTER_MAXIMUM_LENGTH FROM information_schema.COLUMNS WHERE TABLE_SCHEMA = ? AND TABLE_NAME = ? ORDER BY ORDINAL_POSITION`, []any{schema, table}
}

func (d *MysqlDialect) QualifiedName(schema, table string) string {
	return qualify(schema, table, "`", "`")
}

func (d *MysqlDialect) FieldType(dataType string, length int) catalog.FieldType {
	switch t := DefaultNormalizeType(dataType); t {
	case "bit", "bool", "boolean":
		return catalog.Boolean
	case "tinyint":
		return catalog.Byte
	case "smallint", "year":
		return catalog.Integer
	case "mediumint", "int", "integer":
		return catalog.Long
	case "bigint":
		return catalog.BigInt
	case "float":
		return catalog.Single
	case "double", "real":
		return catalog.Double
	case "decimal", "numeric":
		return catalog.Decimal
	case "date", "datetime", "timestamp", "time":
		return catalog.Date
	case "char", "varchar", "enum", "set":
		return catalog.Text
	case "binary", "varbinary":
		return catalog.Binary
	case "tinytext", "text", "mediumtext", "longtext", "json":
		return catalog.Memo
	case "tinyblob", "blob", "mediumblob", "longblob":
		return catalog.LongBinary
	default:
		if strings.HasPrefix(t, "geometry") {
			return catalog.LongBinary
		}
		return catalog.Unknown
	}
}

// SystemTablePrefix is empty: system tables live in their own schemas.
func (d *MysqlDialect) SystemTablePrefix() string {
	return ""
}

func (d *MysqlDialect) GetSchemaName(input string) string {
	return DefaultGetSchemaName(input)
}

func (d *MysqlDialect) InsertQuery(table string, cols []string) string {
	vals := GeneratePlaceholders(len(cols), d.Placeholder)
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", table, strings.Join(cols, ", "), vals)
}

func (d *MysqlDialect) DropTableQuery(table string) string {
	return fmt.Sprintf("DROP TABLE IF EXISTS %s", table)
}

func (d *MysqlDialect) Placeholder(index int) string {
	return "?"
}

func (d *MysqlDialect) ColumnType(ft catalog.FieldType, size int) string {
	switch ft {
	case catalog.Boolean:
		return "TINYINT(1)"
	case catalog.Long:
		return "INT"
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
		return "LONGTEXT"
	case catalog.LongBinary:
		return "LONGBLOB"
	default:
		return "VARCHAR(255)"
	}
}
