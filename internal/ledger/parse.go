package ledger

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// maxExcelSerial is 9999-12-31 in the 1900 date system.
const maxExcelSerial = 2958465

var dateLayouts = []string{
	"2006-01-02",            // YYYY-MM-DD (ISO standard)
	"2006-01-02 15:04:05",   // ISO with time
	time.RFC3339,            // exported timestamps
	"2006/01/02",            // YYYY/MM/DD
	"20060102",              // compact stamp
	"01/02/2006",            // MM/DD/YYYY (US format)
	"01/02/2006 3:04:05 PM", // MM/DD/YYYY with time
	"01/02/06",              // MM/DD/YY (short year)
	"01-02-06",              // MM-DD-YY (Excel US format with dash)
	"02-Jan-2006",           // DD-Mon-YYYY
	"02 Jan 2006",           // DD Month YYYY
	"Jan 02, 2006",          // Month DD, YYYY
}

// ParseDate parses an Excel serial date or one of the text layouts above.
// The result is the calendar day at midnight UTC.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	if v, err := strconv.ParseFloat(s, 64); err == nil && v >= 1 && v <= maxExcelSerial {
		t, err := excelize.ExcelDateToTime(v, false)
		if err == nil {
			return day(t), true
		}
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return day(t), true
		}
	}
	return time.Time{}, false
}

// ParseAmount parses a signed amount. Thousands separators and accounting
// parentheses are accepted. Anything unparseable is null, never zero.
func ParseAmount(s string) decimal.NullDecimal {
	s = strings.TrimSpace(s)
	s = strings.NewReplacer(",", "", " ", "").Replace(s)
	if s == "" || s == "-" {
		return decimal.NullDecimal{}
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}
	}
	if negative {
		d = d.Neg()
	}
	return decimal.NewNullDecimal(d)
}

func day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
