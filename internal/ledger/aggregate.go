package ledger

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Point is one day of an entity's time series.
type Point struct {
	Date     time.Time
	CleanPnL decimal.NullDecimal
	Actual   decimal.NullDecimal
	Lines    int
}

// Series is an entity's daily totals, optionally restricted to the trading book.
type Series struct {
	Entity string
	TBOnly bool
	Points []Point
}

// Name is the output section name, e.g. "CGML_TB".
func (s Series) Name() string {
	if s.TBOnly {
		return s.Entity + "_TB"
	}
	return s.Entity + "_All"
}

// IsTradingBook reports whether a book type equals the trading-book label,
// ignoring case and surrounding space.
func IsTradingBook(bookType, tbLabel string) bool {
	return strings.EqualFold(strings.TrimSpace(bookType), strings.TrimSpace(tbLabel))
}

// Aggregate sums both amounts per calendar day for one entity. A day whose
// values are all null stays null.
func Aggregate(records []Record, entity string, tbOnly bool, tbLabel string) Series {
	byDay := make(map[time.Time]*Point)
	for _, r := range records {
		if r.Entity != entity {
			continue
		}
		if tbOnly && !IsTradingBook(r.BookType, tbLabel) {
			continue
		}
		p, ok := byDay[r.Date]
		if !ok {
			p = &Point{Date: r.Date}
			byDay[r.Date] = p
		}
		p.CleanPnL = addNull(p.CleanPnL, r.CleanPnL)
		p.Actual = addNull(p.Actual, r.Actual)
		p.Lines++
	}

	s := Series{Entity: entity, TBOnly: tbOnly, Points: make([]Point, 0, len(byDay))}
	for _, p := range byDay {
		s.Points = append(s.Points, *p)
	}
	sort.Slice(s.Points, func(i, j int) bool {
		return s.Points[i].Date.Before(s.Points[j].Date)
	})
	return s
}

func addNull(acc, v decimal.NullDecimal) decimal.NullDecimal {
	if !v.Valid {
		return acc
	}
	if !acc.Valid {
		return v
	}
	return decimal.NewNullDecimal(acc.Decimal.Add(v.Decimal))
}
