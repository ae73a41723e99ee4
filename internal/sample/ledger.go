package sample

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"office-pump/internal/ledger"

	"github.com/xuri/excelize/v2"
)

// LedgerOptions shapes the generated demo workbooks.
type LedgerOptions struct {
	Dir      string
	Days     int
	Accounts int
	Start    time.Time
	Seed     int64
}

// LedgerFiles lists what GenerateLedger wrote.
type LedgerFiles struct {
	Exports []string
	MTD     string
	Mapping string
}

type account struct {
	code     string
	entities []string // nil when unmapped
	oldOnly  bool
	dual     bool
}

var desks = []string{"Rates", "Credit", "FX", "Equities", "Treasury"}

// GenerateLedger writes daily P&L exports, an MTD adjustment workbook and an
// account mapping laid out per cfg. The data exercises every resolution rule:
// source signals, level hints, dual mappings on the new sheet, old-only
// accounts, unmapped accounts and unrecognised entities.
func GenerateLedger(opts LedgerOptions, cfg ledger.Config) (*LedgerFiles, error) {
	if opts.Days <= 0 {
		opts.Days = 5
	}
	if opts.Accounts <= 0 {
		opts.Accounts = 40
	}
	if opts.Start.IsZero() {
		opts.Start = time.Now().UTC().AddDate(0, 0, -opts.Days)
	}
	if len(cfg.Entities) == 0 {
		return nil, fmt.Errorf("no entities configured")
	}
	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return nil, err
	}

	v := NewValues(opts.Seed)
	f := v.f
	labels := make([]string, 0, len(cfg.Entities))
	for _, e := range cfg.Entities {
		labels = append(labels, strings.ToUpper(e.Label))
	}

	accounts := make([]account, opts.Accounts)
	for i := range accounts {
		a := account{code: fmt.Sprintf("%06d", f.Number(1000, 999999))}
		switch {
		case i%10 == 9:
			// unmapped
		case i%5 == 0 && len(labels) > 1:
			a.entities = []string{labels[0], labels[1]}
			a.dual = true
		case i%7 == 3:
			a.entities = []string{f.RandomString(labels)}
			a.oldOnly = true
		default:
			a.entities = []string{f.RandomString(labels)}
		}
		accounts[i] = a
	}

	files := &LedgerFiles{}
	var err error
	if files.Mapping, err = writeMapping(opts.Dir, cfg, accounts); err != nil {
		return nil, err
	}

	day := opts.Start
	for n := 0; n < opts.Days; n++ {
		for day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
			day = day.AddDate(0, 0, 1)
		}
		rows := make([][]any, 0, len(accounts))
		for _, a := range accounts {
			if f.Number(0, 9) == 0 {
				continue // not every account trades every day
			}
			level := f.RandomString(desks)
			if a.dual && f.Bool() {
				level = a.entities[f.Number(0, len(a.entities)-1)] + " " + level
			}
			rows = append(rows, []any{
				exportAccount(a.code, f.Number(0, 2)),
				day,
				level,
				amount(v, 15),
				amount(v, 20),
				f.RandomString([]string{cfg.TBLabel, cfg.TBLabel, "BB"}),
			})
		}
		path := filepath.Join(opts.Dir, fmt.Sprintf("PnL_%s.xlsx", day.Format("20060102")))
		if err := writeLedgerSheet(path, cfg, cfg.Export, rows, nil); err != nil {
			return nil, err
		}
		files.Exports = append(files.Exports, path)
		day = day.AddDate(0, 0, 1)
	}

	// MTD adjustments carry an explicit entity per row
	var mtdRows [][]any
	var signals []string
	for _, a := range accounts {
		if !a.dual {
			continue
		}
		mtdRows = append(mtdRows, []any{
			a.code,
			day.AddDate(0, 0, -1),
			"MTD adjustment",
			amount(v, 0),
			amount(v, 0),
			cfg.TBLabel,
		})
		signals = append(signals, a.entities[1])
	}
	files.MTD = filepath.Join(opts.Dir, "MTD_adjustments.xlsx")
	if err := writeLedgerSheet(files.MTD, cfg, cfg.MTD, mtdRows, signals); err != nil {
		return nil, err
	}
	return files, nil
}

// exportAccount renders a code the way exports mangle it: as is, with leading
// zeros dropped, or as a float with a trailing ".0".
func exportAccount(code string, style int) string {
	switch style {
	case 1:
		return ledger.MatchKey(code)
	case 2:
		return ledger.MatchKey(code) + ".0"
	default:
		return code
	}
}

// amount is a two-decimal amount, blank with probability pctBlank percent.
func amount(v *Values, pctBlank int) any {
	if v.f.Number(1, 100) <= pctBlank {
		return ""
	}
	return v.f.Price(-250000, 250000)
}

func writeMapping(dir string, cfg ledger.Config, accounts []account) (string, error) {
	f := excelize.NewFile()
	defer f.Close()

	m := cfg.Mapping
	header := []any{m.AccountColumn, m.EntityColumn}
	var newRows, oldRows [][]any
	for _, a := range accounts {
		for _, e := range a.entities {
			row := []any{m.Prefix + a.code, strings.ToLower(e)}
			if a.oldOnly {
				oldRows = append(oldRows, row)
			} else {
				newRows = append(newRows, row)
			}
		}
	}
	// an entity outside the recognised set is dropped on load
	oldRows = append(oldRows, []any{m.Prefix + "000001", "XXXX"})

	if err := f.SetSheetName("Sheet1", m.NewSheet); err != nil {
		return "", err
	}
	if err := fillSheet(f, m.NewSheet, m.HeaderRow, header, newRows); err != nil {
		return "", err
	}
	if m.OldSheet != "" {
		if _, err := f.NewSheet(m.OldSheet); err != nil {
			return "", err
		}
		if err := fillSheet(f, m.OldSheet, m.HeaderRow, header, oldRows); err != nil {
			return "", err
		}
	}

	path := filepath.Join(dir, "account_mapping.xlsx")
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to save %s: %w", path, err)
	}
	return path, nil
}

func writeLedgerSheet(path string, cfg ledger.Config, src ledger.SourceConfig, rows [][]any, signals []string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := src.Sheet
	if sheet == "" {
		sheet = "Data"
	}
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}

	c := cfg.Columns
	header := []any{c.Account, c.Date, c.Level, c.CleanPnL, c.Actual, c.BookType}
	if signals != nil && c.Entity != "" {
		header = append(header, c.Entity)
		for i := range rows {
			rows[i] = append(rows[i], signals[i])
		}
	}
	if err := fillSheet(f, sheet, src.HeaderRow, header, rows); err != nil {
		return err
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}

// fillSheet writes a title above a header on the 1-based headerRow, then the rows.
func fillSheet(f *excelize.File, sheet string, headerRow int, header []any, rows [][]any) error {
	if headerRow < 1 {
		headerRow = 1
	}
	if headerRow > 1 {
		if err := f.SetCellValue(sheet, "A1", "Generated by office-pump sample"); err != nil {
			return err
		}
	}
	cell, _ := excelize.CoordinatesToCellName(1, headerRow)
	if err := f.SetSheetRow(sheet, cell, &header); err != nil {
		return err
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, headerRow+1+i)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}
