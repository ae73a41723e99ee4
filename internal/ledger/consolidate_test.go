package ledger_test

import (
	"errors"
	"path/filepath"
	"testing"

	"office-pump/internal/ledger"
	"office-pump/internal/workbook"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type sheetRows struct {
	name string
	rows [][]any
}

func writeWorkbook(t *testing.T, path string, sheets ...sheetRows) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, s := range sheets {
		if i == 0 {
			require.NoError(t, f.SetSheetName("Sheet1", s.name))
		} else {
			_, err := f.NewSheet(s.name)
			require.NoError(t, err)
		}
		for r, row := range s.rows {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow(s.name, cell, &row))
		}
	}
	require.NoError(t, f.SaveAs(path))
}

var exportHeader = []any{"Account", "Business Date", "Reporting Level", "Clean P&L", "Actual", "Book Type"}

func TestNormalizeRecords_DropsAndCounts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "PnL_20240102.xlsx")
	writeWorkbook(t, path, sheetRows{"Data", [][]any{
		exportHeader,
		{"123.0", "2024-01-02", "CGML Rates", "1,000.00", "(5)", "TB"},
		{"", "2024-01-02", "", "1", "1", "TB"},
		{"456", "", "", "1", "1", "TB"},
		{"789", "2024-01-02", "", "oops", "2", "BB"},
	}})

	sheet, err := workbook.ReadSheet(path, "", 1)
	require.NoError(t, err)

	recs, stats, err := ledger.NormalizeRecords(sheet, ledger.DefaultConfig().Columns, "cgme")
	require.NoError(t, err)
	assert.Equal(t, ledger.LoadStats{Loaded: 2, MissingDate: 1, MissingAccount: 1, NullAmounts: 1}, stats)

	require.Len(t, recs, 2)
	assert.Equal(t, "123", recs[0].Account)
	assert.Equal(t, "123", recs[0].Key)
	assert.Equal(t, "CGME", recs[0].Signal)
	assert.Equal(t, "PnL_20240102.xlsx", recs[0].Source)
	assert.True(t, decimal.NewFromInt(1000).Equal(recs[0].CleanPnL.Decimal))
	assert.True(t, decimal.NewFromInt(-5).Equal(recs[0].Actual.Decimal))
	assert.False(t, recs[1].CleanPnL.Valid, "unparseable amount is null, not zero")
}

func TestNormalizeRecords_MissingColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.xlsx")
	writeWorkbook(t, path, sheetRows{"Data", [][]any{{"Account", "Business Date"}, {"1", "2024-01-02"}}})

	sheet, err := workbook.ReadSheet(path, "", 1)
	require.NoError(t, err)

	_, _, err = ledger.NormalizeRecords(sheet, ledger.DefaultConfig().Columns, "")
	require.ErrorIs(t, err, ledger.ErrMissingColumn)
	assert.Contains(t, err.Error(), `"Actual", "Clean P&L"`)
}

func TestNormalizeMapping(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mapping.xlsx")
	writeWorkbook(t, path, sheetRows{"new", [][]any{
		{"Account", "Entity"},
		{"S200123", "cgml"},
		{"S200123", " CGME "},
		{"S2555", "OTHER"},
		{"", "CGML"},
	}})

	sheet, err := workbook.ReadSheet(path, "new", 1)
	require.NoError(t, err)

	entries, dropped, err := ledger.NormalizeMapping(sheet, ledger.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, 2, dropped)
	assert.Equal(t, []ledger.MappingEntry{
		{Account: "00123", Key: "123", Entity: "CGML", Sheet: "new"},
		{Account: "00123", Key: "123", Entity: "CGME", Sheet: "new"},
	}, entries)
}

func TestConsolidate_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	export := filepath.Join(dir, "PnL_20240102.xlsx")
	mapping := filepath.Join(dir, "mapping.xlsx")

	writeWorkbook(t, export, sheetRows{"Data", [][]any{
		exportHeader,
		{"123.0", "2024-01-02", "Rates", "10", "12", "TB"},
	}})
	writeWorkbook(t, mapping, sheetRows{"new", [][]any{
		{"Account", "Entity"},
		{"S200123", "CGML"},
	}})

	log, hook := test.NewNullLogger()
	res, err := ledger.Consolidate(ledger.Inputs{Exports: []string{export}, Mapping: mapping}, ledger.DefaultConfig(), log)
	require.NoError(t, err)

	require.Len(t, res.Records, 1)
	rec := res.Records[0]
	assert.Equal(t, "123", rec.Key)
	assert.Equal(t, "CGML", rec.Entity)
	assert.Equal(t, ledger.RuleNewSheet, rec.Rule)

	require.Len(t, res.Series, 4)
	names := make([]string, 0, 4)
	for _, s := range res.Series {
		names = append(names, s.Name())
	}
	assert.Equal(t, []string{"CGML_All", "CGML_TB", "CGME_All", "CGME_TB"}, names)
	require.Len(t, res.Series[1].Points, 1)
	assert.True(t, decimal.NewFromInt(12).Equal(res.Series[1].Points[0].Actual.Decimal))

	// the "old" sheet is optional
	var warned bool
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel && e.Data["sheet"] == "old" {
			warned = true
		}
	}
	assert.True(t, warned)
}

func TestConsolidate_Summary(t *testing.T) {
	dir := t.TempDir()
	day1 := filepath.Join(dir, "PnL_20240102.xlsx")
	day2 := filepath.Join(dir, "PnL_20240103.xlsx")
	mtd := filepath.Join(dir, "MTD.xlsx")
	mapping := filepath.Join(dir, "mapping.xlsx")

	writeWorkbook(t, day1, sheetRows{"Data", [][]any{
		exportHeader,
		{"100", "2024-01-02", "CGML Rates", "1", "1", "TB"},
		{"100", "2024-01-02", "CGML Rates", "2", "2", "TB"},
		{"100", "2024-01-02", "CGME Credit", "4", "4", "BB"},
		{"999", "2024-01-02", "", "1", "1", "TB"},
	}})
	writeWorkbook(t, day2, sheetRows{"Data", [][]any{
		exportHeader,
		{"0200", "2024-01-03", "", "5", "", "TB"},
		{"300", "", "", "5", "5", "TB"},
	}})
	writeWorkbook(t, mtd, sheetRows{"Adjustments", [][]any{
		exportHeader,
		{"200", "2024-01-03", "", "-1", "", "TB"},
	}})
	writeWorkbook(t, mapping,
		sheetRows{"new", [][]any{{"Account", "Entity"}, {"S2100", "CGML"}, {"S2100", "CGME"}, {"S2200", "CGME"}}},
		sheetRows{"old", [][]any{{"Account", "Entity"}, {"S2200", "CGML"}, {"S2300", "???"}}},
	)

	cfg := ledger.DefaultConfig()
	cfg.MTD.Entity = "CGME"
	log, _ := test.NewNullLogger()

	res, err := ledger.Consolidate(ledger.Inputs{Exports: []string{day1, day2}, MTD: mtd, Mapping: mapping}, cfg, log)
	require.NoError(t, err)

	sum := res.Summary
	assert.Equal(t, 3, sum.Files)
	assert.Equal(t, 6, sum.Loaded)
	assert.Equal(t, 1, sum.MissingDate)
	assert.Equal(t, 4, sum.MappingRows)
	assert.Equal(t, 1, sum.MappingDropped)
	assert.Equal(t, 1, sum.Unmapped)
	assert.Equal(t, 1, sum.ConflictDropped)
	assert.Equal(t, 4, sum.Retained)
	assert.Equal(t, 3, sum.ByRule[ledger.RuleHint])
	assert.Equal(t, 1, sum.ByRule[ledger.RuleNewSheet])
	assert.Equal(t, 1, sum.ByRule[ledger.RuleSignal])

	// one entity per (date, account)
	owner := make(map[string]string)
	for _, r := range res.Records {
		k := r.Date.Format("2006-01-02") + "|" + r.Key
		if e, seen := owner[k]; seen {
			assert.Equal(t, e, r.Entity, "group %s", k)
		}
		owner[k] = r.Entity
	}
	assert.Len(t, owner, 2)

	// records come out in date order
	for i := 1; i < len(res.Records); i++ {
		assert.False(t, res.Records[i].Date.Before(res.Records[i-1].Date))
	}

	cgmeAll := res.Series[2]
	require.Equal(t, "CGME_All", cgmeAll.Name())
	require.Len(t, cgmeAll.Points, 1)
	assert.True(t, decimal.NewFromInt(4).Equal(cgmeAll.Points[0].CleanPnL.Decimal))
	assert.False(t, cgmeAll.Points[0].Actual.Valid)
}

func TestConsolidate_Errors(t *testing.T) {
	log, _ := test.NewNullLogger()
	cfg := ledger.DefaultConfig()

	_, err := ledger.Consolidate(ledger.Inputs{Mapping: "m.xlsx"}, cfg, log)
	assert.True(t, errors.Is(err, workbook.ErrNoInputs))

	_, err = ledger.Consolidate(ledger.Inputs{Exports: []string{"x.xlsx"}}, cfg, log)
	assert.Error(t, err)

	dir := t.TempDir()
	mapping := filepath.Join(dir, "mapping.xlsx")
	writeWorkbook(t, mapping, sheetRows{"old", [][]any{{"Account", "Entity"}}})
	_, err = ledger.Consolidate(ledger.Inputs{Exports: []string{filepath.Join(dir, "missing.xlsx")}, Mapping: mapping}, cfg, log)
	assert.ErrorIs(t, err, workbook.ErrSheetNotFound, "the new mapping sheet is required")
}
