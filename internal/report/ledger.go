package report

import (
	"fmt"
	"io"
	"sort"

	"office-pump/internal/ledger"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	combinedSheet = "Combined"
	mappingSheet  = "Mapping"
	dateFormat    = "yyyy-mm-dd"
)

// WriteLedgerWorkbook saves the consolidation result: every retained record,
// the mapping as loaded, and one sheet per entity series.
func WriteLedgerWorkbook(path string, res *ledger.Result, cfg ledger.Config) error {
	f := excelize.NewFile()
	defer f.Close()

	w, err := newSheetWriter(f)
	if err != nil {
		return err
	}

	cols := cfg.Columns
	header := []string{cols.Account, cols.Date, cols.Level, cols.CleanPnL, cols.Actual, cols.BookType, "Entity", "Rule", "Source"}
	rows := make([][]any, 0, len(res.Records))
	for _, r := range res.Records {
		rows = append(rows, []any{r.Account, r.Date, r.Level, cellValue(r.CleanPnL), cellValue(r.Actual), r.BookType, r.Entity, r.Rule.String(), r.Source})
	}
	if err := w.write(combinedSheet, header, rows, []float64{15, 14, 30, 15, 15, 12, 10, 10, 30}, 2); err != nil {
		return err
	}

	rows = rows[:0]
	for _, m := range res.Mapping {
		rows = append(rows, []any{m.Account, m.Key, m.Entity, m.Sheet})
	}
	if err := w.write(mappingSheet, []string{"Account", "Match Key", "Entity", "Sheet"}, rows, []float64{15, 15, 10, 10}, 0); err != nil {
		return err
	}

	for _, s := range res.Series {
		rows = rows[:0]
		for _, p := range s.Points {
			rows = append(rows, []any{p.Date, cellValue(p.CleanPnL), cellValue(p.Actual)})
		}
		if err := w.write(s.Name(), []string{"Date", cols.CleanPnL, cols.Actual}, rows, []float64{14, 18, 18}, 1); err != nil {
			return err
		}
	}

	// excelize starts with Sheet1
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return err
	}
	if idx, err := f.GetSheetIndex(combinedSheet); err == nil {
		f.SetActiveSheet(idx)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", path, err)
	}
	return nil
}

// cellValue keeps null amounts as empty cells.
func cellValue(d decimal.NullDecimal) any {
	if !d.Valid {
		return nil
	}
	v, _ := d.Decimal.Float64()
	return v
}

type sheetWriter struct {
	f           *excelize.File
	headerStyle int
	dateStyle   int
}

func newSheetWriter(f *excelize.File) (*sheetWriter, error) {
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}
	format := dateFormat
	dateStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &format})
	if err != nil {
		return nil, err
	}
	return &sheetWriter{f: f, headerStyle: headerStyle, dateStyle: dateStyle}, nil
}

// write fills a new sheet. dateCol is the 1-based date column, 0 for none.
func (w *sheetWriter) write(name string, header []string, rows [][]any, widths []float64, dateCol int) error {
	if _, err := w.f.NewSheet(name); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", name, err)
	}

	for i, h := range header {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := w.f.SetCellValue(name, cell, h); err != nil {
			return err
		}
	}
	last, _ := excelize.CoordinatesToCellName(len(header), 1)
	if err := w.f.SetCellStyle(name, "A1", last, w.headerStyle); err != nil {
		return err
	}

	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := w.f.SetSheetRow(name, cell, &row); err != nil {
			return err
		}
	}

	if dateCol > 0 && len(rows) > 0 {
		top, _ := excelize.CoordinatesToCellName(dateCol, 2)
		bottom, _ := excelize.CoordinatesToCellName(dateCol, len(rows)+1)
		if err := w.f.SetCellStyle(name, top, bottom, w.dateStyle); err != nil {
			return err
		}
	}

	for i, width := range widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := w.f.SetColWidth(name, col, col, width); err != nil {
			return err
		}
	}
	return nil
}

// PrintLedgerSummary prints the counters of a consolidation run.
func PrintLedgerSummary(w io.Writer, res *ledger.Result) {
	s := res.Summary
	fmt.Fprintln(w, "\nConsolidation summary:")
	fmt.Fprintf(w, "Files read: %d | records loaded: %d\n", s.Files, s.Loaded)
	fmt.Fprintf(w, "Dropped: missing date %d | missing account %d | unmapped %d | entity conflicts %d\n",
		s.MissingDate, s.MissingAccount, s.Unmapped, s.ConflictDropped)
	fmt.Fprintf(w, "Rows with a null amount: %d\n", s.NullAmounts)
	fmt.Fprintf(w, "Mapping entries: %d (dropped %d)\n", s.MappingRows, s.MappingDropped)

	rules := make([]ledger.Rule, 0, len(s.ByRule))
	for r := range s.ByRule {
		rules = append(rules, r)
	}
	sort.Slice(rules, func(i, j int) bool { return rules[i] < rules[j] })
	for _, r := range rules {
		fmt.Fprintf(w, "  resolved by %-9s %d\n", r.String()+":", s.ByRule[r])
	}

	for _, series := range res.Series {
		fmt.Fprintf(w, "  %-10s %d day(s)\n", series.Name(), len(series.Points))
	}
	fmt.Fprintf(w, "Records retained: %d\n", s.Retained)
}
