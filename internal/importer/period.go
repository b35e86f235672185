package importer

import (
	"strconv"
	"strings"
	"time"

	"paydesk/internal/payroll"
)

// ParsePeriod derives a payroll period from the raw month and year cell
// values.
//
// Numeric months 1-12 map to the English month name; any other string is
// used verbatim (trimmed). The year is stringified. ok is false when either
// cell is empty or the month is an out-of-range number — callers fall back
// to DefaultPeriod and mark the period system-derived.
func ParsePeriod(monthCell, yearCell string) (p payroll.Period, ok bool) {
	m := strings.TrimSpace(monthCell)
	y := strings.TrimSpace(yearCell)
	if m == "" || y == "" {
		return payroll.Period{}, false
	}

	if n, err := strconv.Atoi(m); err == nil {
		if n < 1 || n > 12 {
			return payroll.Period{}, false
		}
		m = time.Month(n).String()
	}

	return payroll.Period{Month: m, Year: y, FromSource: true}, true
}

// DefaultPeriod returns the previous calendar month relative to now.
//
// Computed from the first day of the current month to avoid day-of-month
// normalization (March 31 minus one month must be February, not March 2).
func DefaultPeriod(now time.Time) payroll.Period {
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	prev := firstOfMonth.AddDate(0, 0, -1)
	return payroll.Period{
		Month:      prev.Month().String(),
		Year:       strconv.Itoa(prev.Year()),
		FromSource: false,
	}
}
