package estimate

import (
	"math"

	"office-pump/internal/catalog"
)

// FieldBytes estimates the stored width of one column value.
// Long binary and attachment columns are unbounded and count as 0; they are
// flagged in the table notes instead.
func FieldBytes(col catalog.Column, cfg Config) int64 {
	switch col.Type {
	case catalog.Boolean, catalog.Byte:
		return 1
	case catalog.Integer:
		return 2
	case catalog.Long, catalog.Single:
		return 4
	case catalog.BigInt, catalog.Double, catalog.Currency, catalog.Date:
		return 8
	case catalog.Decimal:
		return 12
	case catalog.GUID:
		return 16
	case catalog.Binary:
		return int64(max(col.Size, 0))
	case catalog.Text:
		// 2 bytes per character, scaled by how full the declared length typically is.
		return int64(math.Round(float64(col.Size) * 2 * cfg.TextFill))
	case catalog.Memo:
		return int64(cfg.AvgLongTextChars) * 2
	default:
		return 0
	}
}

// RowWidth sums FieldBytes over a column layout.
func RowWidth(cols []catalog.Column, cfg Config) int64 {
	var total int64
	for _, c := range cols {
		total += FieldBytes(c, cfg)
	}
	return total
}

// TotalBytes applies the row overhead and index surcharge to a row width.
func TotalBytes(rowWidth, rows int64, cfg Config) int64 {
	return int64(math.Round(float64(rowWidth+int64(cfg.RowOverhead)) * float64(rows) * cfg.IndexMultiplier))
}
