package report

import (
	"fmt"
	"time"
)

// dayKey formats a daily bucket key.
func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// monthKey formats a monthly bucket key.
func monthKey(t time.Time) string {
	return t.Format("2006-01")
}

// MonthKey builds a monthly bucket key from a (year, month) pair, for
// matching explicit schedule targets against rollup buckets.
func MonthKey(year, month int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}

// weekKey formats a Monday-aligned weekly bucket key. The week number is a
// simple yearday offset, not the ISO-8601 rule; it can misnumber the first
// and last week of some years. Dashboards key on these labels, so the
// numbering is kept as-is.
func weekKey(t time.Time) string {
	monday := mondayOf(t)
	week := (monday.YearDay()-1)/7 + 1
	return fmt.Sprintf("%d-W%02d", monday.Year(), week)
}

// mondayOf returns the Monday of the week containing t.
func mondayOf(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -offset)
}
