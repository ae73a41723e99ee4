package workbook_test

import (
	"os"
	"path/filepath"
	"testing"

	"office-pump/internal/workbook"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeFixture(t *testing.T, path string, sheets map[string][][]any) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	first := true
	for name, rows := range sheets {
		if first {
			require.NoError(t, f.SetSheetName("Sheet1", name))
			first = false
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for i, row := range rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow(name, cell, &row))
		}
	}
	require.NoError(t, f.SaveAs(path))
}

func TestReadSheet_HeaderOffset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.xlsx")
	writeFixture(t, path, map[string][][]any{
		"Data": {
			{"P&L export"},
			{},
			{"Account", "Amount"},
			{"00123", 10.5},
			{},
			{"456", -2},
		},
	})

	s, err := workbook.ReadSheet(path, "Data", 3)
	require.NoError(t, err)
	assert.Equal(t, "Data", s.Name)
	assert.Equal(t, []string{"Account", "Amount"}, s.Header)
	require.Len(t, s.Rows, 2)
	assert.Equal(t, "00123", s.Rows[0][0])
	assert.Equal(t, "10.5", s.Rows[0][1])
	assert.Equal(t, "-2", workbook.Cell(s.Rows[1], 1))
	assert.Equal(t, "", workbook.Cell(s.Rows[1], 5))
}

func TestReadSheet_FirstSheetAndMissingSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "map.xlsx")
	writeFixture(t, path, map[string][][]any{
		"new": {{"Account", "Entity"}, {"S200123", "cgml"}},
	})

	s, err := workbook.ReadSheet(path, "", 1)
	require.NoError(t, err)
	assert.Equal(t, "new", s.Name)

	_, err = workbook.ReadSheet(path, "old", 1)
	assert.ErrorIs(t, err, workbook.ErrSheetNotFound)

	_, err = workbook.ReadSheet(path, "new", 9)
	assert.ErrorIs(t, err, workbook.ErrNoHeader)

	names, err := workbook.SheetNames(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"new"}, names)
}

func TestResolveExports(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"PnL_20240302.xlsx", "PnL_20240115.xlsx", "~$PnL_20240101.xlsx", "other.xlsx"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}

	got, err := workbook.ResolveExports(filepath.Join(dir, "*PnL_*.xlsx"), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "PnL_20240115.xlsx"),
		filepath.Join(dir, "PnL_20240302.xlsx"),
	}, got)

	override := []string{filepath.Join(dir, "other.xlsx")}
	got, err = workbook.ResolveExports(filepath.Join(dir, "*PnL_*.xlsx"), override)
	require.NoError(t, err)
	assert.Equal(t, override, got)

	_, err = workbook.ResolveExports(filepath.Join(dir, "none_*.xlsx"), nil)
	assert.ErrorIs(t, err, workbook.ErrNoInputs)

	_, err = workbook.ResolveExports("", []string{filepath.Join(dir, "missing.xlsx")})
	assert.Error(t, err)
}
