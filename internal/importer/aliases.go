package importer

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ImportKind identifies which spreadsheet layout an upload claims to be.
type ImportKind string

const (
	KindWorkItem     ImportKind = "work_item"
	KindProgress     ImportKind = "progress"
	KindManHours     ImportKind = "man_hours"
	KindWorkSchedule ImportKind = "work_schedule"
)

// Field is one canonical column slot of an import kind. Aliases mix a
// localized display name and a machine key so both hand-edited and
// round-tripped sheets resolve.
type Field struct {
	Key      string
	Label    string
	Aliases  []string
	Required bool
}

// FieldSet is the static column configuration of one import kind.
type FieldSet struct {
	Kind   ImportKind
	Fields []Field
}

// Field keys shared by the row validators.
const (
	FieldBudgetCode     = "budget_code"
	FieldName           = "name"
	FieldUnit           = "unit"
	FieldTargetQuantity = "target_quantity"
	FieldTargetManHours = "target_man_hours"
	FieldParentCode     = "parent_code"
	FieldCategory       = "category"
	FieldDate           = "date"
	FieldQuantity       = "quantity"
	FieldRatio          = "ratio"
	FieldRegion         = "region"
)

// WorkItemFields is the column configuration for work item uploads.
func WorkItemFields() FieldSet {
	return FieldSet{Kind: KindWorkItem, Fields: []Field{
		{Key: FieldBudgetCode, Label: "Bütçe Kodu", Aliases: []string{"Bütçe Kodu", "budget_code", "Poz No"}, Required: true},
		{Key: FieldName, Label: "İmalat Adı", Aliases: []string{"İmalat Adı", "name", "Tanım"}, Required: true},
		{Key: FieldUnit, Label: "Birim", Aliases: []string{"Birim", "unit"}, Required: true},
		{Key: FieldTargetQuantity, Label: "Hedef Metraj", Aliases: []string{"Hedef Metraj", "target_quantity", "Hedef Miktar"}, Required: true},
		{Key: FieldTargetManHours, Label: "Hedef Adam Saat", Aliases: []string{"Hedef Adam Saat", "target_man_hours"}, Required: true},
		{Key: FieldParentCode, Label: "Üst Bütçe Kodu", Aliases: []string{"Üst Bütçe Kodu", "parent_code"}},
		{Key: FieldCategory, Label: "Kategori", Aliases: []string{"Kategori", "category"}},
	}}
}

// ProgressFields is the column configuration for daily progress uploads.
func ProgressFields() FieldSet {
	return FieldSet{Kind: KindProgress, Fields: []Field{
		{Key: FieldDate, Label: "Tarih", Aliases: []string{"Tarih", "date"}, Required: true},
		{Key: FieldBudgetCode, Label: "Bütçe Kodu", Aliases: []string{"Bütçe Kodu", "budget_code", "Poz No"}, Required: true},
		{Key: FieldQuantity, Label: "Metraj", Aliases: []string{"Metraj", "quantity", "Miktar"}, Required: true},
		{Key: FieldRatio, Label: "Oran", Aliases: []string{"Oran", "ratio"}},
		{Key: FieldRegion, Label: "Mahal", Aliases: []string{"Mahal", "region", "Bölge"}},
	}}
}

// ManHoursFields is the column configuration for daily man-hour uploads.
// The value column is labeled "Miktar"/"quantity" by sheet convention even
// though it carries man-hours.
func ManHoursFields() FieldSet {
	return FieldSet{Kind: KindManHours, Fields: []Field{
		{Key: FieldDate, Label: "Tarih", Aliases: []string{"Tarih", "date"}, Required: true},
		{Key: FieldBudgetCode, Label: "Bütçe Kodu", Aliases: []string{"Bütçe Kodu", "budget_code", "Poz No"}, Required: true},
		{Key: FieldQuantity, Label: "Miktar", Aliases: []string{"Miktar", "quantity", "Adam Saat"}, Required: true},
	}}
}

// foldTurkish lowercases with Turkish casing rules, so İ→i and I→ı.
// ASCII lowercasing breaks the dotted/dotless pair and must not be used here.
func foldTurkish(s string) string {
	return cases.Lower(language.Turkish).String(s)
}

// headerEqual compares a header cell against an alias. Turkish folding covers
// localized display names; EqualFold covers all-caps machine keys whose I
// would otherwise fold to ı.
func headerEqual(header, alias string) bool {
	header = strings.TrimSpace(header)
	if foldTurkish(header) == foldTurkish(alias) {
		return true
	}
	return strings.EqualFold(header, alias)
}

// ResolvedColumns maps canonical field keys to column indices for one upload.
type ResolvedColumns struct {
	columns map[string]int
}

// Column returns the resolved column index for a field key.
func (rc ResolvedColumns) Column(key string) (int, bool) {
	col, ok := rc.columns[key]
	return col, ok
}

// ResolveColumns matches the header row against the field set's aliases.
// A header that matches no required field at all yields a warning listing the
// expected column names, but resolution never aborts: whatever fields did
// match are still usable so rows can partially succeed.
func ResolveColumns(fs FieldSet, header RawRow) (ResolvedColumns, []string) {
	rc := ResolvedColumns{columns: make(map[string]int)}

	for _, f := range fs.Fields {
		for col, cell := range header.Cells {
			if cell.IsEmpty() {
				continue
			}
			matched := false
			for _, alias := range f.Aliases {
				if headerEqual(cell.Text, alias) {
					matched = true
					break
				}
			}
			if matched {
				if _, taken := rc.columns[f.Key]; !taken {
					rc.columns[f.Key] = col
				}
				break
			}
		}
	}

	var warnings []string
	anyRequired := false
	var expected []string
	for _, f := range fs.Fields {
		if !f.Required {
			continue
		}
		expected = append(expected, f.Label)
		if _, ok := rc.columns[f.Key]; ok {
			anyRequired = true
		}
	}
	if !anyRequired {
		warnings = append(warnings, fmt.Sprintf(
			"başlık satırı tanınamadı, beklenen sütunlar: %s", strings.Join(expected, ", ")))
	}
	return rc, warnings
}

// ScheduleColumn is one dynamic work-item column of a schedule sheet.
type ScheduleColumn struct {
	Index int
	Label string
}

// ScheduleColumns is the resolved layout of a work schedule sheet: column 0
// is always the period axis, every other non-empty header becomes a work item
// column, except the distinguished man-hour aggregate column.
type ScheduleColumns struct {
	Items      []ScheduleColumn
	ManHourCol int
}

// manHourAliasKeys are the collapsed forms of the "adam saat" alias family.
var manHourAliasKeys = map[string]bool{
	"adamsaat":       true,
	"adamsaati":      true,
	"toplamadamsaat": true,
	"manhours":       true,
	"totalmanhours":  true,
}

// isManHourHeader reports whether a header belongs to the man-hour alias
// family, ignoring case, spaces, hyphens and underscores.
func isManHourHeader(s string) bool {
	collapsed := foldTurkish(strings.TrimSpace(s))
	collapsed = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '_':
			return -1
		}
		return r
	}, collapsed)
	return manHourAliasKeys[collapsed]
}

// ResolveScheduleColumns derives the dynamic column layout from a schedule
// header row.
func ResolveScheduleColumns(header RawRow) ScheduleColumns {
	sc := ScheduleColumns{ManHourCol: -1}
	for col := 1; col < len(header.Cells); col++ {
		cell := header.Cells[col]
		if cell.IsEmpty() {
			continue
		}
		label := strings.TrimSpace(cell.Text)
		if isManHourHeader(label) {
			if sc.ManHourCol < 0 {
				sc.ManHourCol = col
			}
			continue
		}
		sc.Items = append(sc.Items, ScheduleColumn{Index: col, Label: label})
	}
	return sc
}
