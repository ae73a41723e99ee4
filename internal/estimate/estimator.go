package estimate

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"office-pump/internal/catalog"

	"github.com/sirupsen/logrus"
)

const bytesPerMB = 1024 * 1024

// Note flags attached to a table result.
const (
	NoteLongText   = "LongText"
	NoteAttachment = "Attachment/OLE"
)

// TableEstimate is the size estimate of one table.
type TableEstimate struct {
	Name     string
	Rows     int64
	RowWidth int64
	EstBytes int64
	EstMB    float64
	Notes    []string
}

// NotesString joins the notes for display.
func (t TableEstimate) NotesString() string {
	return strings.Join(t.Notes, ";")
}

// Summary counts what happened during a run.
type Summary struct {
	Seen         int
	Skipped      int // system or linked tables
	Estimated    int
	RowCountErrs int
	ColumnErrs   int
}

// IsUserLocal reports whether a table is a local user table.
func IsUserLocal(t catalog.Table, systemPrefix string) bool {
	if systemPrefix != "" && strings.HasPrefix(t.Name, systemPrefix) {
		return false
	}
	return !t.IsLinked()
}

// Estimator ranks the tables of a catalog source by estimated size.
type Estimator struct {
	cfg Config
	log logrus.FieldLogger
}

func New(cfg Config, log logrus.FieldLogger) *Estimator {
	return &Estimator{cfg: cfg, log: log}
}

// Candidates lists the local user tables of src. A listing failure is fatal.
func (e *Estimator) Candidates(ctx context.Context, src catalog.Source) ([]catalog.Table, int, error) {
	all, err := src.Tables(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to enumerate tables: %w", err)
	}
	var local []catalog.Table
	for _, t := range all {
		if IsUserLocal(t, e.cfg.SystemPrefix) {
			local = append(local, t)
		}
	}
	return local, len(all) - len(local), nil
}

// Estimate sizes every local user table. Per-table failures are recorded as
// notes and never abort the run. onProgress, if set, is called once per table.
func (e *Estimator) Estimate(ctx context.Context, src catalog.Source, onProgress func()) ([]TableEstimate, Summary, error) {
	var sum Summary

	tables, skipped, err := e.Candidates(ctx, src)
	if err != nil {
		return nil, sum, err
	}
	sum.Seen = len(tables) + skipped
	sum.Skipped = skipped

	results := make([]TableEstimate, 0, len(tables))
	for _, t := range tables {
		if err := ctx.Err(); err != nil {
			return nil, sum, err
		}
		res := e.estimateTable(ctx, src, t, &sum)
		results = append(results, res)
		sum.Estimated++
		if onProgress != nil {
			onProgress()
		}
	}

	// Rank by size, largest first
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].EstMB > results[j].EstMB
	})
	return results, sum, nil
}

func (e *Estimator) estimateTable(ctx context.Context, src catalog.Source, t catalog.Table, sum *Summary) TableEstimate {
	log := e.log.WithField("table", t.Name)
	notes := make(map[string]struct{})

	cols, colErr := src.Columns(ctx, t)
	if colErr == nil {
		for _, c := range cols {
			switch c.Type {
			case catalog.Memo:
				notes[NoteLongText] = struct{}{}
			case catalog.LongBinary, catalog.Attachment:
				notes[NoteAttachment] = struct{}{}
			}
		}
	}

	rows, err := e.rowCount(ctx, src, t)
	if err != nil {
		log.WithError(err).Warn("row count failed")
		rows = 0
		notes["RowCountErr:"+err.Error()] = struct{}{}
		sum.RowCountErrs++
	}

	var width, total int64
	if colErr != nil {
		log.WithError(colErr).Warn("column scan failed")
		notes["SizeEstErr:"+colErr.Error()] = struct{}{}
		sum.ColumnErrs++
	} else {
		width = RowWidth(cols, e.cfg)
		total = TotalBytes(width, rows, e.cfg)
	}

	return TableEstimate{
		Name:     t.Name,
		Rows:     rows,
		RowWidth: width,
		EstBytes: total,
		EstMB:    float64(total) / bytesPerMB,
		Notes:    sortedNotes(notes),
	}
}

// rowCount opens the table for an exact count and falls back to a count-all query.
func (e *Estimator) rowCount(ctx context.Context, src catalog.Source, t catalog.Table) (int64, error) {
	n, err := src.OpenCount(ctx, t)
	if err == nil {
		return n, nil
	}
	e.log.WithField("table", t.Name).WithError(err).Debug("open count failed, falling back to count query")
	return src.QueryCount(ctx, t)
}

func sortedNotes(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for n := range set {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
