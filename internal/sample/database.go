package sample

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"office-pump/internal/catalog"
	"office-pump/internal/dialect"

	"github.com/sirupsen/logrus"
)

// Table is a demo table definition. The first column is the integer key.
type Table struct {
	Name    string
	Columns []catalog.Column
}

// DemoTables covers every sizing rule: fixed-width numerics, declared text,
// long text and binary columns, plus an empty table.
func DemoTables() []Table {
	return []Table{
		{Name: "Customers", Columns: []catalog.Column{
			{Name: "id", Type: catalog.Long},
			{Name: "cust_nm", Type: catalog.Text, Size: 80},
			{Name: "email", Type: catalog.Text, Size: 120},
			{Name: "tel", Type: catalog.Text, Size: 30},
			{Name: "addr", Type: catalog.Text, Size: 200},
			{Name: "ctry", Type: catalog.Text, Size: 60},
			{Name: "is_active", Type: catalog.Boolean},
			{Name: "created_dt", Type: catalog.Date},
		}},
		{Name: "Invoices", Columns: []catalog.Column{
			{Name: "id", Type: catalog.Long},
			{Name: "inv_no", Type: catalog.Text, Size: 20},
			{Name: "customer_id", Type: catalog.Long},
			{Name: "amt", Type: catalog.Currency},
			{Name: "ccy", Type: catalog.Text, Size: 3},
			{Name: "fx_rate", Type: catalog.Double},
			{Name: "stat", Type: catalog.Text, Size: 10},
			{Name: "issued_dt", Type: catalog.Date},
		}},
		{Name: "Documents", Columns: []catalog.Column{
			{Name: "id", Type: catalog.Long},
			{Name: "subj", Type: catalog.Text, Size: 200},
			{Name: "body", Type: catalog.Memo},
			{Name: "scan", Type: catalog.LongBinary},
		}},
		{Name: "Archive", Columns: []catalog.Column{
			{Name: "id", Type: catalog.Long},
			{Name: "acct_cd", Type: catalog.Text, Size: 12},
			{Name: "bal", Type: catalog.Decimal},
		}},
	}
}

// PumpResult is the outcome of seeding one table.
type PumpResult struct {
	TableName string
	Target    int
	Actual    int
	Status    string
	ErrorMsg  string
}

// Seeder creates the demo tables in a SQL database and fills them with fake rows.
type Seeder struct {
	db     *sql.DB
	d      dialect.Dialect
	schema string
	values *Values
	log    logrus.FieldLogger
}

func NewSeeder(db *sql.DB, d dialect.Dialect, schemaName string, values *Values, log logrus.FieldLogger) *Seeder {
	return &Seeder{db: db, d: d, schema: d.GetSchemaName(schemaName), values: values, log: log}
}

// CreateTables creates tables, dropping existing ones first when clean is set.
func (s *Seeder) CreateTables(ctx context.Context, tables []Table, clean bool) error {
	for _, t := range tables {
		name := s.d.QualifiedName(s.schema, t.Name)
		if clean {
			if _, err := s.db.ExecContext(ctx, s.d.DropTableQuery(name)); err != nil {
				s.log.WithField("table", t.Name).WithError(err).Debug("drop failed, continuing")
			}
		}

		defs := make([]string, 0, len(t.Columns))
		for i, c := range t.Columns {
			def := c.Name + " " + s.d.ColumnType(c.Type, c.Size)
			if i == 0 {
				def += " PRIMARY KEY"
			}
			defs = append(defs, def)
		}
		ddl := fmt.Sprintf("CREATE TABLE %s (%s)", name, strings.Join(defs, ", "))
		if _, err := s.db.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("failed to create table %s: %w", t.Name, err)
		}
		s.log.WithField("table", t.Name).Debug("table created")
	}
	return nil
}

// Pump inserts rows fake rows into each table, one transaction per table,
// then verifies the row count. A table listed in empty gets no rows.
func (s *Seeder) Pump(ctx context.Context, tables []Table, rows int, empty map[string]bool, onProgress func()) ([]PumpResult, error) {
	var results []PumpResult

	for _, t := range tables {
		target := rows
		if empty[t.Name] {
			target = 0
		}
		name := s.d.QualifiedName(s.schema, t.Name)

		initial, err := s.count(ctx, name)
		if err != nil {
			return nil, err
		}

		colNames := make([]string, 0, len(t.Columns))
		for _, c := range t.Columns {
			colNames = append(colNames, c.Name)
		}
		query := s.d.InsertQuery(name, colNames)

		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to begin transaction: %w", err)
		}

		inserted := 0
		var firstErr error
		for i := 0; i < target; i++ {
			values := make([]any, 0, len(t.Columns))
			values = append(values, initial+i+1)
			for _, c := range t.Columns[1:] {
				values = append(values, s.values.Value(c))
			}
			if _, err := tx.ExecContext(ctx, query, values...); err != nil {
				if firstErr == nil {
					firstErr = err
					s.log.WithField("table", t.Name).WithError(err).Warn("insert failed")
				}
			} else {
				inserted++
			}
			if onProgress != nil {
				onProgress()
			}
		}

		if err := tx.Commit(); err != nil {
			return nil, fmt.Errorf("failed to commit %s: %w", t.Name, err)
		}

		// Verification
		final, err := s.count(ctx, name)
		if err != nil {
			return nil, err
		}
		res := PumpResult{TableName: t.Name, Target: target, Actual: final - initial, Status: "OK"}
		if res.Actual < target {
			res.Status = "MISSING DATA"
			if firstErr != nil {
				res.ErrorMsg = firstErr.Error()
			}
		}
		results = append(results, res)
	}
	return results, nil
}

func (s *Seeder) count(ctx context.Context, qualified string) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s", qualified)).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", qualified, err)
	}
	return n, nil
}
