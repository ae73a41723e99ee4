package ledger

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"office-pump/internal/workbook"
)

// NormalizeMapping reads one mapping sheet. The literal prefix is stripped
// from account labels, entities are upper-cased and restricted to the
// recognised set. Duplicates are kept: an account may legitimately map to
// both entities. The second return value counts rows that were dropped.
func NormalizeMapping(sheet *workbook.Sheet, cfg Config) ([]MappingEntry, int, error) {
	idx := headerIndex(sheet.Header)
	accCol, ok := lookup(idx, cfg.Mapping.AccountColumn)
	if !ok {
		return nil, 0, fmt.Errorf("%w in %s!%s: %q", ErrMissingColumn, filepath.Base(sheet.Path), sheet.Name, cfg.Mapping.AccountColumn)
	}
	entCol, ok := lookup(idx, cfg.Mapping.EntityColumn)
	if !ok {
		return nil, 0, fmt.Errorf("%w in %s!%s: %q", ErrMissingColumn, filepath.Base(sheet.Path), sheet.Name, cfg.Mapping.EntityColumn)
	}

	var entries []MappingEntry
	dropped := 0
	for _, row := range sheet.Rows {
		raw := strings.TrimSpace(workbook.Cell(row, accCol))
		if cfg.Mapping.Prefix != "" {
			raw = strings.TrimPrefix(raw, cfg.Mapping.Prefix)
		}
		account := DisplayAccount(raw)
		entity := strings.ToUpper(strings.TrimSpace(workbook.Cell(row, entCol)))
		if account == "" || !cfg.recognised(entity) {
			dropped++
			continue
		}
		entries = append(entries, MappingEntry{
			Account: account,
			Key:     MatchKey(account),
			Entity:  entity,
			Sheet:   sheet.Name,
		})
	}
	return entries, dropped, nil
}

func sortedCopy(in []string) []string {
	out := append([]string(nil), in...)
	sort.Strings(out)
	return out
}
