package importer

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// CodeLookup resolves human-typed budget codes to persisted work item IDs.
// It is project-scoped and supplied by the caller; the validator never
// touches storage itself.
type CodeLookup map[string]int64

// maxSuggestedCodes caps how many known codes an unresolved-code error lists.
const maxSuggestedCodes = 5

// Resolve looks up a budget code after trimming surrounding whitespace.
func (l CodeLookup) Resolve(code string) (int64, bool) {
	id, ok := l[strings.TrimSpace(code)]
	return id, ok
}

// Suggest returns up to maxSuggestedCodes known codes in sorted order, for
// embedding in unresolved-code error messages.
func (l CodeLookup) Suggest() []string {
	codes := make([]string, 0, len(l))
	for code := range l {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	if len(codes) > maxSuggestedCodes {
		codes = codes[:maxSuggestedCodes]
	}
	return codes
}

// Rows wraps decoded cell rows with their 1-based sheet row numbers, header
// included as row 1.
func Rows(cells [][]Cell) []RawRow {
	rows := make([]RawRow, len(cells))
	for i, cs := range cells {
		rows[i] = RawRow{SheetRow: i + 1, Cells: cs}
	}
	return rows
}

// fieldReader extracts canonical fields from one row, accumulating field
// errors into the shared sink. Each validator drops the row when the reader
// saw at least one error.
type fieldReader struct {
	row    RawRow
	cols   ResolvedColumns
	errors []ValidationError
}

func newFieldReader(row RawRow, cols ResolvedColumns) *fieldReader {
	return &fieldReader{row: row, cols: cols}
}

func (fr *fieldReader) addError(field string, cell Cell, message string) {
	fr.errors = append(fr.errors, ValidationError{
		Row:     fr.row.SheetRow,
		Field:   field,
		Value:   cell.String(),
		Message: message,
	})
}

func (fr *fieldReader) cell(key string) (Cell, bool) {
	col, ok := fr.cols.Column(key)
	if !ok {
		return Cell{Kind: CellEmpty}, false
	}
	return fr.row.Cell(col), true
}

// optionalText returns the trimmed text of an optional field, empty when the
// column is missing or the cell is blank.
func (fr *fieldReader) optionalText(key string) string {
	cell, ok := fr.cell(key)
	if !ok || cell.IsEmpty() {
		return ""
	}
	return strings.TrimSpace(cell.Text)
}

// requiredText reads a mandatory text field, recording an error when absent.
func (fr *fieldReader) requiredText(key, label string) (string, bool) {
	cell, ok := fr.cell(key)
	if !ok || cell.IsEmpty() || strings.TrimSpace(cell.Text) == "" {
		fr.addError(key, cell, fmt.Sprintf("%s boş olamaz", label))
		return "", false
	}
	return strings.TrimSpace(cell.Text), true
}

// requiredNumber reads a mandatory numeric field, recording an error when
// absent or unparseable.
func (fr *fieldReader) requiredNumber(key, label string) (float64, bool) {
	cell, ok := fr.cell(key)
	if !ok || cell.IsEmpty() {
		fr.addError(key, cell, fmt.Sprintf("%s boş olamaz", label))
		return 0, false
	}
	n := NormalizeNumber(cell)
	if !n.OK {
		fr.addError(key, cell, fmt.Sprintf("%s sayı olarak okunamadı", label))
		return 0, false
	}
	return n.Value, true
}

// requiredDay reads a mandatory full calendar date. Month-only values are
// rejected: daily entries need a day.
func (fr *fieldReader) requiredDay(key, label string) (time.Time, bool) {
	cell, ok := fr.cell(key)
	if !ok || cell.IsEmpty() {
		fr.addError(key, cell, fmt.Sprintf("%s boş olamaz", label))
		return time.Time{}, false
	}
	d := NormalizeDate(cell)
	switch d.Kind {
	case DateDay:
		return d.Day, true
	case DateMonth:
		fr.addError(key, cell, fmt.Sprintf("%s gün içeren tam tarih olmalı", label))
	default:
		fr.addError(key, cell, fmt.Sprintf("%s tarih olarak okunamadı", label))
	}
	return time.Time{}, false
}

// resolveCode maps a budget code through the caller's lookup, recording an
// error that lists known codes when the code is unknown.
func (fr *fieldReader) resolveCode(key, code string, lookup CodeLookup) (int64, bool) {
	id, ok := lookup.Resolve(code)
	if !ok {
		suggestions := strings.Join(lookup.Suggest(), ", ")
		msg := fmt.Sprintf("bütçe kodu tanımlı değil: %s", code)
		if suggestions != "" {
			msg += fmt.Sprintf(" (tanımlı kodlar: %s)", suggestions)
		}
		cell, _ := fr.cell(key)
		fr.addError(key, cell, msg)
		return 0, false
	}
	return id, true
}

func (fr *fieldReader) failed() bool {
	return len(fr.errors) > 0
}

func (fr *fieldReader) flushInto(errs *[]ValidationError) {
	*errs = append(*errs, fr.errors...)
}
