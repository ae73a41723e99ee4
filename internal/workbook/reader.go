package workbook

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

var (
	ErrSheetNotFound = errors.New("sheet not found")
	ErrNoHeader      = errors.New("header row not found")
)

// Sheet is a rectangular read of one worksheet below its header row.
type Sheet struct {
	Path   string
	Name   string
	Header []string
	Rows   [][]string
}

// Cell returns row[index] or "" when the row is short.
func Cell(row []string, index int) string {
	if index < 0 || index >= len(row) {
		return ""
	}
	return row[index]
}

// SheetNames lists the worksheets of a workbook in tab order.
func SheetNames(path string) ([]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()
	return f.GetSheetList(), nil
}

// ReadSheet reads a worksheet whose header sits on the 1-based headerRow.
// An empty sheet name selects the first sheet. Cell values are raw, so
// dates stay as Excel serial numbers and numbers keep full precision.
func ReadSheet(path, sheet string, headerRow int) (*Sheet, error) {
	if headerRow < 1 {
		headerRow = 1
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%w: workbook %s has no sheets", ErrSheetNotFound, path)
		}
		sheet = sheets[0]
	} else if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, fmt.Errorf("%w: %q in %s", ErrSheetNotFound, sheet, path)
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) < headerRow {
		return nil, fmt.Errorf("%w: %s!%d", ErrNoHeader, sheet, headerRow)
	}

	out := &Sheet{Path: path, Name: sheet, Header: rows[headerRow-1]}
	for _, row := range rows[headerRow:] {
		if isBlank(row) {
			continue
		}
		out.Rows = append(out.Rows, row)
	}
	return out, nil
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
