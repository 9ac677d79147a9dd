package normalize

import (
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02 15:04:05",
	"2006/01/02 15:04",
	"2006/1/2",
	"2006/01/02",
	"2006.01.02",
	"01/02/2006",
	"1/2/2006",
	"01-02-06",
	"1-2-06",
	"1/2/06",
	"20060102",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 January 2006",
	"2006年1月2日",
	"2006年01月02日",
	"2006年1月",
	"2006-01",
}

// Serial numbers outside this window are treated as epoch timestamps or noise
const (
	minExcelSerial = 20000 // 1954-10-03
	maxExcelSerial = 80000 // 2119-01-10
)

// ParseDate parses a date cell in any of the layouts marketplace exports use,
// Unix seconds or milliseconds, or an Excel serial day number.
// The second result is false when the cell is not a date.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if isNullish(s) {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	if !decimalNumber.MatchString(s) {
		return time.Time{}, false
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		switch {
		case f >= minExcelSerial && f <= maxExcelSerial:
			t, err := excelize.ExcelDateToTime(f, false)
			if err == nil {
				return t, true
			}
		case f >= 1e12 && f < 1e14:
			return time.UnixMilli(int64(f)).UTC(), true
		case f >= 1e9 && f < 1e11:
			return time.Unix(int64(f), 0).UTC(), true
		}
	}

	return time.Time{}, false
}

// DaysBetween returns the whole days elapsed from t to now, rounded down
func DaysBetween(t, now time.Time) int {
	d := now.Sub(t)
	days := int(d / (24 * time.Hour))
	if d < 0 && d%(24*time.Hour) != 0 {
		days--
	}
	return days
}
