package dialect_test

import (
	"testing"

	"office-pump/internal/catalog"
	"office-pump/internal/dialect"

	"github.com/stretchr/testify/assert"
)

func TestGetDialect(t *testing.T) {
	assert.IsType(t, &dialect.PostgresDialect{}, dialect.GetDialect("postgres"))
	assert.IsType(t, &dialect.MSSQLDialect{}, dialect.GetDialect("sqlserver"))
	assert.IsType(t, &dialect.MSSQLDialect{}, dialect.GetDialect("mssql"))
	assert.IsType(t, &dialect.OracleDialect{}, dialect.GetDialect("oracle"))
	assert.IsType(t, &dialect.SqliteDialect{}, dialect.GetDialect("sqlite"))
	assert.IsType(t, &dialect.MysqlDialect{}, dialect.GetDialect("mysql"))
	assert.IsType(t, &dialect.MysqlDialect{}, dialect.GetDialect(""))
}

func TestFieldType(t *testing.T) {
	tests := []struct {
		driver   string
		dataType string
		length   int
		want     catalog.FieldType
	}{
		{"mysql", "varchar", 50, catalog.Text},
		{"mysql", "longtext", 0, catalog.Memo},
		{"mysql", "tinyint", 0, catalog.Byte},
		{"mysql", "decimal", 0, catalog.Decimal},
		{"mysql", "blob", 0, catalog.LongBinary},
		{"postgres", "timestamp without time zone", 0, catalog.Date},
		{"postgres", "character varying", 0, catalog.Memo},
		{"postgres", "character varying", 20, catalog.Text},
		{"postgres", "uuid", 0, catalog.GUID},
		{"postgres", "money", 0, catalog.Currency},
		{"sqlserver", "nvarchar", -1, catalog.Memo},
		{"sqlserver", "nvarchar", 100, catalog.Text},
		{"sqlserver", "varbinary", -1, catalog.LongBinary},
		{"sqlserver", "binary", 16, catalog.Binary},
		{"sqlserver", "bit", 0, catalog.Boolean},
		{"oracle", "NUMBER", 22, catalog.Decimal},
		{"oracle", "TIMESTAMP(6)", 11, catalog.Date},
		{"oracle", "RAW", 16, catalog.GUID},
		{"oracle", "CLOB", 4000, catalog.Memo},
		{"sqlite", "VARCHAR(50)", 50, catalog.Text},
		{"sqlite", "TEXT", 0, catalog.Memo},
		{"sqlite", "INTEGER", 0, catalog.Long},
		{"sqlite", "BIGINT", 0, catalog.BigInt},
		{"sqlite", "DOUBLE PRECISION", 0, catalog.Double},
		{"sqlite", "", 0, catalog.LongBinary},
		{"sqlite", "whatever", 0, catalog.Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.driver+"/"+tt.dataType, func(t *testing.T) {
			d := dialect.GetDialect(tt.driver)
			assert.Equal(t, tt.want, d.FieldType(tt.dataType, tt.length))
		})
	}
}

func TestDeclaredLength(t *testing.T) {
	assert.Equal(t, 50, dialect.DeclaredLength("VARCHAR(50)"))
	assert.Equal(t, 10, dialect.DeclaredLength("decimal(10, 2)"))
	assert.Equal(t, 0, dialect.DeclaredLength("TEXT"))
	assert.Equal(t, 0, dialect.DeclaredLength("CHAR(x)"))
}

func TestQualifiedName(t *testing.T) {
	assert.Equal(t, "`shop`.`order items`", dialect.GetDialect("mysql").QualifiedName("shop", "order items"))
	assert.Equal(t, `"public"."Orders"`, dialect.GetDialect("postgres").QualifiedName("public", "Orders"))
	assert.Equal(t, "[dbo].[a]]b]", dialect.GetDialect("sqlserver").QualifiedName("dbo", "a]b"))
	assert.Equal(t, `"ORDERS"`, dialect.GetDialect("oracle").QualifiedName("ignored", "ORDERS"))
	assert.Equal(t, `"main"."t"`, dialect.GetDialect("sqlite").QualifiedName("", "t"))
}

func TestSystemTablePrefix(t *testing.T) {
	assert.Equal(t, "sqlite_", dialect.GetDialect("sqlite").SystemTablePrefix())
	assert.Equal(t, "pg_", dialect.GetDialect("postgres").SystemTablePrefix())
	// user tables named sys* or mysql_* must survive the prefix filter
	assert.Empty(t, dialect.GetDialect("sqlserver").SystemTablePrefix())
	assert.Empty(t, dialect.GetDialect("mysql").SystemTablePrefix())
}

func TestGetSchemaName(t *testing.T) {
	assert.Equal(t, "public", dialect.GetDialect("postgres").GetSchemaName(""))
	assert.Equal(t, "dbo", dialect.GetDialect("mssql").GetSchemaName(""))
	assert.Equal(t, "main", dialect.GetDialect("sqlite").GetSchemaName(""))
	assert.Equal(t, "sakila", dialect.GetDialect("mysql").GetSchemaName("sakila"))
}

func TestInsertQuery(t *testing.T) {
	cols := []string{"id", "name"}
	assert.Equal(t, `INSERT INTO t (id, name) VALUES (?, ?)`, dialect.GetDialect("mysql").InsertQuery("t", cols))
	assert.Equal(t, `INSERT INTO t (id, name) VALUES ($1, $2)`, dialect.GetDialect("postgres").InsertQuery("t", cols))
	assert.Equal(t, `INSERT INTO t (id, name) VALUES (@p1, @p2)`, dialect.GetDialect("sqlserver").InsertQuery("t", cols))
	assert.Equal(t, `INSERT INTO t (id, name) VALUES (:1, :2)`, dialect.GetDialect("oracle").InsertQuery("t", cols))
}

func TestColumnType_RoundTrip(t *testing.T) {
	d := dialect.GetDialect("sqlite")
	tests := []struct {
		ft   catalog.FieldType
		size int
		want catalog.FieldType
	}{
		{catalog.Boolean, 0, catalog.Boolean},
		{catalog.Long, 0, catalog.Long},
		{catalog.BigInt, 0, catalog.BigInt},
		{catalog.Double, 0, catalog.Double},
		{catalog.Currency, 0, catalog.Decimal},
		{catalog.Date, 0, catalog.Date},
		{catalog.Text, 50, catalog.Text},
		{catalog.Memo, 0, catalog.Memo},
		{catalog.LongBinary, 0, catalog.LongBinary},
	}
	for _, tt := range tests {
		decl := d.ColumnType(tt.ft, tt.size)
		assert.Equal(t, tt.want, d.FieldType(decl, dialect.DeclaredLength(decl)), decl)
	}

	assert.Equal(t, "NVARCHAR(MAX)", dialect.GetDialect("mssql").ColumnType(catalog.Memo, 0))
	assert.Equal(t, "VARCHAR2(40)", dialect.GetDialect("oracle").ColumnType(catalog.Text, 40))
}
