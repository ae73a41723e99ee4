package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"office-pump/internal/estimate"

	"github.com/dustin/go-humanize"
)

var sizesHeader = []string{"TableName", "Rows", "EstMB", "EstBytes", "Notes"}

// WriteSizesCSV writes the ranked estimates as CSV.
func WriteSizesCSV(w io.Writer, estimates []estimate.TableEstimate) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(sizesHeader); err != nil {
		return err
	}
	for _, e := range estimates {
		rec := []string{
			e.Name,
			strconv.FormatInt(e.Rows, 10),
			fmt.Sprintf("%.3f", e.EstMB),
			strconv.FormatInt(e.EstBytes, 10),
			e.NotesString(),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// SizesFileName is the CSV file name for a database at time now.
func SizesFileName(dbName string, now time.Time) string {
	return fmt.Sprintf("%s_table_sizes_%s.csv", dbName, now.Format("20060102_150405"))
}

// PrintSizes prints the first top estimates as an aligned table; top <= 0 prints all.
func PrintSizes(w io.Writer, estimates []estimate.TableEstimate, top int) {
	rows := estimates
	if top > 0 && top < len(rows) {
		rows = rows[:top]
	}
	if len(rows) == 0 {
		fmt.Fprintln(w, "No local tables found.")
		return
	}

	nameW := len("TableName")
	for _, r := range rows {
		if len(r.Name) > nameW {
			nameW = len(r.Name)
		}
	}

	fmt.Fprintf(w, "%-*s  %12s  %10s  %s\n", nameW, "TableName", "Rows", "EstMB", "Notes")
	fmt.Fprintln(w, strings.Repeat("-", nameW+2+12+2+10+2+20))
	for _, r := range rows {
		fmt.Fprintf(w, "%-*s  %12s  %10.3f  %s\n", nameW, r.Name, humanize.Comma(r.Rows), r.EstMB, r.NotesString())
	}
}

// PrintSizesSummary prints the run counters.
func PrintSizesSummary(w io.Writer, s estimate.Summary) {
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Tables seen: %d | estimated: %d | skipped (system/linked): %d\n", s.Seen, s.Estimated, s.Skipped)
	if s.RowCountErrs > 0 || s.ColumnErrs > 0 {
		fmt.Fprintf(w, "Row count errors: %d | column errors: %d\n", s.RowCountErrs, s.ColumnErrs)
	}
}
