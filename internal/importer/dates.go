package importer

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DateKind tags the outcome of date normalization.
type DateKind int

const (
	DateUnparseable DateKind = iota
	DateDay
	DateMonth
)

// DateValue is the normalized form of a date cell: a full calendar day, a
// (year, month) pair for schedule periods, or a tagged parse failure. Failure
// is a value, never an error; the caller decides severity.
type DateValue struct {
	Kind  DateKind
	Day   time.Time
	Year  int
	Month time.Month
}

// serialEpochOffset is the day count between the spreadsheet epoch
// (1899-12-30) and the Unix epoch (1970-01-01).
const serialEpochOffset = 25569

var (
	isoDateRe    = regexp.MustCompile(`^(\d{4})-(\d{2})(?:-(\d{2}))?`)
	dottedDateRe = regexp.MustCompile(`^(\d{1,2})[./-](\d{1,2})[./-](\d{4})$`)
	shortDateRe  = regexp.MustCompile(`^(\d{1,2})[./-](\d{1,2})[./-](\d{2})$`)
)

var turkishMonths = map[string]time.Month{
	"ocak": time.January, "şubat": time.February, "mart": time.March,
	"nisan": time.April, "mayıs": time.May, "haziran": time.June,
	"temmuz": time.July, "ağustos": time.August, "eylül": time.September,
	"ekim": time.October, "kasım": time.November, "aralık": time.December,
	"oca": time.January, "şub": time.February, "mar": time.March,
	"nis": time.April, "may": time.May, "haz": time.June,
	"tem": time.July, "ağu": time.August, "eyl": time.September,
	"eki": time.October, "kas": time.November, "ara": time.December,
}

var englishMonths = map[string]time.Month{
	"january": time.January, "february": time.February, "march": time.March,
	"april": time.April, "may": time.May, "june": time.June,
	"july": time.July, "august": time.August, "september": time.September,
	"october": time.October, "november": time.November, "december": time.December,
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "jun": time.June, "jul": time.July,
	"aug": time.August, "sep": time.September, "oct": time.October,
	"nov": time.November, "dec": time.December,
}

// NormalizeDate turns a raw cell into a canonical date. Rule precedence,
// first match wins: spreadsheet serial, ISO prefix, day-first dotted date
// with 4-digit year, the same with a 2-digit pivot year, then month-name
// forms. Day-before-month order is fixed, never auto-detected.
func NormalizeDate(cell Cell) DateValue {
	if cell.Kind == CellNumber {
		return fromSerial(cell.Number)
	}
	if cell.Kind != CellText {
		return DateValue{Kind: DateUnparseable}
	}
	s := strings.TrimSpace(cell.Text)
	if s == "" {
		return DateValue{Kind: DateUnparseable}
	}

	if m := isoDateRe.FindStringSubmatch(s); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		if m[3] == "" {
			return monthValue(year, month)
		}
		day, _ := strconv.Atoi(m[3])
		return dayValue(year, month, day)
	}

	if m := dottedDateRe.FindStringSubmatch(s); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		return dayValue(year, month, day)
	}

	if m := shortDateRe.FindStringSubmatch(s); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		return dayValue(expandYear(year), month, day)
	}

	if year, month, ok := parseMonthName(s); ok {
		return monthValue(year, int(month))
	}

	return DateValue{Kind: DateUnparseable}
}

// fromSerial converts a spreadsheet serial day count, rejecting values that
// do not land in a sane calendar range.
func fromSerial(serial float64) DateValue {
	unix := (serial - serialEpochOffset) * 86400
	t := time.Unix(int64(unix), 0).UTC()
	if t.Year() < 1950 || t.Year() > 2100 {
		return DateValue{Kind: DateUnparseable}
	}
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return DateValue{Kind: DateDay, Day: day, Year: day.Year(), Month: day.Month()}
}

// expandYear applies the 2-digit pivot: 00-50 → 2000-2050, 51-99 → 1951-1999.
func expandYear(yy int) int {
	if yy <= 50 {
		return 2000 + yy
	}
	return 1900 + yy
}

func dayValue(year, month, day int) DateValue {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return DateValue{Kind: DateUnparseable}
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes overflow (31.02 → 03.03); treat that as invalid.
	if t.Day() != day || t.Month() != time.Month(month) || t.Year() != year {
		return DateValue{Kind: DateUnparseable}
	}
	return DateValue{Kind: DateDay, Day: t, Year: year, Month: time.Month(month)}
}

func monthValue(year, month int) DateValue {
	if month < 1 || month > 12 || year < 1950 || year > 2100 {
		return DateValue{Kind: DateUnparseable}
	}
	return DateValue{Kind: DateMonth, Year: year, Month: time.Month(month)}
}

// parseMonthName handles "Ocak 2025", "2025 Ocak", "Jan-25" and the rest of
// the month-name family: Turkish or English table, month and year in either
// order, space or hyphen separated, 2- or 4-digit year.
func parseMonthName(s string) (int, time.Month, bool) {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '-'
	})
	if len(parts) != 2 {
		return 0, 0, false
	}

	for _, order := range [2][2]string{{parts[0], parts[1]}, {parts[1], parts[0]}} {
		month, ok := lookupMonth(order[0])
		if !ok {
			continue
		}
		yearDigits := order[1]
		if len(yearDigits) != 2 && len(yearDigits) != 4 {
			continue
		}
		year, err := strconv.Atoi(yearDigits)
		if err != nil {
			continue
		}
		if len(yearDigits) == 2 {
			year = expandYear(year)
		}
		return year, month, true
	}
	return 0, 0, false
}

func lookupMonth(name string) (time.Month, bool) {
	folded := foldTurkish(strings.TrimSpace(name))
	if m, ok := turkishMonths[folded]; ok {
		return m, true
	}
	if m, ok := englishMonths[strings.ToLower(strings.TrimSpace(name))]; ok {
		return m, true
	}
	return 0, false
}
