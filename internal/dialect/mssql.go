package dialect

import (
	"fmt"
	"strings"

	"office-pump/internal/catalog"

	_ "github.com/denisenkom/go-mssqldb" // SQL Server Driver
)

type MSSQLDialect struct{}

// Helper: MSSQL Driver (go-mssqldb) often prefers @p1, @p2 named parameters over ?

func (d *MSSQLDialect) TablesQuery(schema string) (string, []any) {
	// External tables (PolyBase) point at a data source outside the database.
	return `
		SELECT t.name, COALESCE(eds.location, '') AS CONNECT_STR
		FROM sys.tables t
		JOIN sys.schemas s ON t.schema_id = s.schema_id
		LEFT JOIN sys.external_tables et ON et.object_id = t.object_id
		LEFT JOIN sys.external_data_sources eds ON eds.data_source_id = et.data_source_id
		WHERE s.name = @p1 AND t.is_ms_shipped = 0
		ORDER BY t.name`, []any{schema}
}

func (d *MSSQLDialect) ColumnsQuery(schema, table string) (string, []any) {
	return `SELECT COLUMN_NAME, DATA_TYPE, CHARACTER_MAXIMUM_LENGTH FROM INFORMATION_SCHEMA.COLUMNS WHERE TABLE_SCHEMA = @p1 AND TABLE_NAME = @p2 ORDER BY ORDINAL_POSITION`, []any{schema, table}
}

func (d *MSSQLDialect) QualifiedName(schema, table string) string {
	return qualify(schema, table, "[", "]")
}

// FieldType maps T-SQL types. A length of -1 marks (MAX) columns, which are unbounded.
func (d *MSSQLDialect) FieldType(dataType string, length int) catalog.FieldType {
	switch DefaultNormalizeType(dataType) {
	case "bit":
		return catalog.Boolean
	case "tinyint":
		return catalog.Byte
	case "smallint":
		return catalog.Integer
	case "int":
		return catalog.Long
	case "bigint":
		return catalog.BigInt
	case "real":
		return catalog.Single
	case "float":
		return catalog.Double
	case "money", "smallmoney":
		return catalog.Currency
	case "decimal", "numeric":
		return catalog.Decimal
	case "date", "datetime", "datetime2", "smalldatetime", "datetimeoffset", "time":
		return catalog.Date
	case "uniqueidentifier":
		return catalog.GUID
	case "char", "nchar", "varchar", "nvarchar":
		if length < 0 {
			return catalog.Memo
		}
		return catalog.Text
	case "text", "ntext", "xml":
		return catalog.Memo
	case "binary", "varbinary":
		if length < 0 {
			return catalog.LongBinary
		}
		return catalog.Binary
	case "image":
		return catalog.LongBinary
	default:
		return catalog.Unknown
	}
}

// SystemTablePrefix is empty: shipped objects are filtered by TablesQuery and
// user tables may legitimately start with "sys".
func (d *MSSQLDialect) SystemTablePrefix() string {
	return ""
}

func (d *MSSQLDialect) GetSchemaName(input string) string {
	if input == "" {
		return "dbo"
	}
	return input
}

func (d *MSSQLDialect) InsertQuery(table string, cols []string) string {
	vals := GeneratePlaceholders(len(cols), d.Placeholder)
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", table, strings.Join(cols, ", "), vals)
}

func (d *MSSQLDialect) DropTableQuery(table string) string {
	return fmt.Sprintf("DROP TABLE IF EXISTS %s", table)
}

func (d *MSSQLDialect) Placeholder(index int) string {
	return fmt.Sprintf("@p%d", index+1)
}

func (d *MSSQLDialect) ColumnType(ft catalog.FieldType, size int) string {
	switch ft {
	case catalog.Boolean:
		return "BIT"
	case catalog.Long:
		return "INT"
	case catalog.BigInt:
		return "BIGINT"
	case catalog.Double:
		return "FLOAT"
	case catalog.Currency:
		return "MONEY"
	case catalog.Decimal:
		return "DECIMAL(19,4)"
	case catalog.Date:
		return "DATETIME2"
	case catalog.Text:
		return fmt.Sprintf("NVARCHAR(%d)", size)
	case catalog.Memo:
		return "NVARCHAR(MAX)"
	case catalog.LongBinary:
		return "VARBINARY(MAX)"
	default:
		return "NVARCHAR(255)"
	}
}
