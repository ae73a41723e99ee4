package ledger

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"office-pump/internal/workbook"
)

// ErrMissingColumn is returned when a required header is absent.
var ErrMissingColumn = errors.New("required column missing")

// LoadStats counts the outcome of normalising one sheet.
type LoadStats struct {
	Loaded         int
	MissingDate    int
	MissingAccount int
	NullAmounts    int
}

// NormalizeRecords turns a ledger sheet into records. Rows without a date or
// an account are dropped and counted. sourceSignal, if set, is the
// source-level entity tag for every row lacking its own.
func NormalizeRecords(sheet *workbook.Sheet, cols Columns, sourceSignal string) ([]Record, LoadStats, error) {
	var stats LoadStats
	idx := headerIndex(sheet.Header)

	required := map[string]string{
		"account":   cols.Account,
		"date":      cols.Date,
		"clean_pnl": cols.CleanPnL,
		"actual":    cols.Actual,
	}
	pos := make(map[string]int, len(required))
	var missing []string
	for key, label := range required {
		i, ok := lookup(idx, label)
		if !ok {
			missing = append(missing, fmt.Sprintf("%q", label))
			continue
		}
		pos[key] = i
	}
	if len(missing) > 0 {
		return nil, stats, fmt.Errorf("%w in %s!%s: %s", ErrMissingColumn,
			filepath.Base(sheet.Path), sheet.Name, strings.Join(sortedCopy(missing), ", "))
	}

	levelCol, _ := lookup(idx, cols.Level)
	bookCol, _ := lookup(idx, cols.BookType)
	entityCol, _ := lookup(idx, cols.Entity)
	source := filepath.Base(sheet.Path)
	sourceSignal = strings.ToUpper(strings.TrimSpace(sourceSignal))

	records := make([]Record, 0, len(sheet.Rows))
	for _, row := range sheet.Rows {
		date, ok := ParseDate(workbook.Cell(row, pos["date"]))
		if !ok {
			stats.MissingDate++
			continue
		}
		account := DisplayAccount(workbook.Cell(row, pos["account"]))
		if account == "" {
			stats.MissingAccount++
			continue
		}

		rec := Record{
			Account:  account,
			Key:      MatchKey(account),
			Date:     date,
			Level:    NormalizeLabel(workbook.Cell(row, levelCol)),
			CleanPnL: ParseAmount(workbook.Cell(row, pos["clean_pnl"])),
			Actual:   ParseAmount(workbook.Cell(row, pos["actual"])),
			BookType: strings.TrimSpace(workbook.Cell(row, bookCol)),
			Signal:   strings.ToUpper(strings.TrimSpace(workbook.Cell(row, entityCol))),
			Source:   source,
		}
		if rec.Signal == "" {
			rec.Signal = sourceSignal
		}
		if !rec.CleanPnL.Valid || !rec.Actual.Valid {
			stats.NullAmounts++
		}
		records = append(records, rec)
	}
	stats.Loaded = len(records)
	return records, stats, nil
}
