package schema

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"office-pump/internal/catalog"
	"office-pump/internal/dialect"
)

// ---------------------------------------------------------------------
// SQL-backed catalog source
// ---------------------------------------------------------------------

// Catalog implements catalog.Source over a database/sql connection.
type Catalog struct {
	db     *sql.DB
	d      dialect.Dialect
	schema string
}

var _ catalog.Source = (*Catalog)(nil)

func NewCatalog(db *sql.DB, d dialect.Dialect, schemaName string) *Catalog {
	// [Interface-First]: Delegate schema resolution to the dialect
	return &Catalog{db: db, d: d, schema: d.GetSchemaName(schemaName)}
}

// Schema returns the resolved schema name the catalog introspects.
func (c *Catalog) Schema() string {
	return c.schema
}

func (c *Catalog) Tables(ctx context.Context) ([]catalog.Table, error) {
	query, args := c.d.TablesQuery(c.schema)
	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tables: %w", err)
	}
	defer rows.Close()

	var tables []catalog.Table
	for rows.Next() {
		var name, connect sql.NullString
		if err := rows.Scan(&name, &connect); err != nil {
			return nil, fmt.Errorf("failed to scan table name: %w", err)
		}
		if !name.Valid {
			continue // Skip invalid rows
		}
		tables = append(tables, catalog.Table{
			Name:    name.String,
			Connect: strings.TrimSpace(connect.String),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tables: %w", err)
	}
	return tables, nil
}

func (c *Catalog) Columns(ctx context.Context, table catalog.Table) ([]catalog.Column, error) {
	query, args := c.d.ColumnsQuery(c.schema, table.Name)
	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query columns (table: %s): %w", table.Name, err)
	}
	defer rows.Close()

	var cols []catalog.Column
	for rows.Next() {
		var cName, dType sql.NullString
		var cLen sql.NullString // Use String for safety

		if err := rows.Scan(&cName, &dType, &cLen); err != nil {
			return nil, fmt.Errorf("failed to scan column (table: %s): %w", table.Name, err)
		}
		if !cName.Valid {
			continue
		}

		length := parseLength(cLen)
		if length == 0 {
			length = dialect.DeclaredLength(dType.String)
		}

		cols = append(cols, catalog.Column{
			Name: cName.String,
			Type: c.d.FieldType(dType.String, length),
			Size: max(length, 0),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating columns (table: %s): %w", table.Name, err)
	}
	return cols, nil
}

// OpenCount counts rows through the schema-qualified, quoted table name.
func (c *Catalog) OpenCount(ctx context.Context, table catalog.Table) (int64, error) {
	return c.count(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s", c.d.QualifiedName(c.schema, table.Name)))
}

// QueryCount counts rows through the quoted table name without a schema,
// resolved by the session's search path.
func (c *Catalog) QueryCount(ctx context.Context, table catalog.Table) (int64, error) {
	return c.count(ctx, fmt.Sprintf("SELECT COUNT(*) AS c FROM %s", c.d.QualifiedName("", table.Name)))
}

func (c *Catalog) count(ctx context.Context, query string) (int64, error) {
	var n int64
	if err := c.db.QueryRowContext(ctx, query).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// Analyze returns every table of the schema with its column layout.
// A table whose columns cannot be read is returned with Err set.
func Analyze(ctx context.Context, db *sql.DB, d dialect.Dialect, schemaName string) ([]*Table, error) {
	c := NewCatalog(db, d, schemaName)
	defs, err := c.Tables(ctx)
	if err != nil {
		return nil, err
	}

	tables := make([]*Table, 0, len(defs))
	for _, def := range defs {
		t := &Table{Table: def}
		t.Columns, t.Err = c.Columns(ctx, def)
		tables = append(tables, t)
	}
	return tables, nil
}

// Handle Length safely: drivers report it as integer, decimal or text.
// -1 is kept so dialects can recognise (MAX) columns.
func parseLength(v sql.NullString) int {
	if !v.Valid || v.String == "" {
		return 0
	}
	var length int
	if _, err := fmt.Sscanf(v.String, "%d", &length); err == nil {
		return length
	}
	var fLength float64
	if _, err := fmt.Sscanf(v.String, "%f", &fLength); err == nil {
		return int(fLength)
	}
	return 0
}
