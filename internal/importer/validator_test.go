package importer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func textRow(sheetRow int, cells ...string) RawRow {
	row := RawRow{SheetRow: sheetRow, Cells: make([]Cell, len(cells))}
	for i, c := range cells {
		row.Cells[i] = TextCell(c)
	}
	return row
}

func progressSheet(dataRows ...RawRow) []RawRow {
	rows := []RawRow{headerRow("Tarih", "Bütçe Kodu", "Metraj")}
	return append(rows, dataRows...)
}

func testLookup() CodeLookup {
	return CodeLookup{"BK-001": 11, "BK-002": 12, "BK-003": 13}
}

func TestValidateProgress_ValidRow(t *testing.T) {
	res := ValidateProgress(progressSheet(
		textRow(2, "01.06.2024", "BK-001", "24,5"),
	), testLookup())

	assert.Empty(t, res.Errors)
	assert.Empty(t, res.Warnings)
	require.Len(t, res.ValidItems, 1)

	item := res.ValidItems[0]
	assert.Equal(t, int64(11), item.WorkItemID)
	assert.Equal(t, "BK-001", item.BudgetCode)
	assert.Equal(t, time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC), item.Date)
	assert.Equal(t, 24.5, item.Quantity)
}

func TestValidateProgress_UnknownCodeListsSuggestions(t *testing.T) {
	lookup := CodeLookup{
		"BK-001": 1, "BK-002": 2, "BK-003": 3, "BK-004": 4,
		"BK-005": 5, "BK-006": 6, "BK-007": 7,
	}
	res := ValidateProgress(progressSheet(
		textRow(2, "01.06.2024", "YOK-9", "10"),
	), lookup)

	assert.Empty(t, res.ValidItems)
	require.Len(t, res.Errors, 1)

	e := res.Errors[0]
	assert.Equal(t, 2, e.Row)
	assert.Equal(t, FieldBudgetCode, e.Field)
	// at most five known codes, in sorted order
	assert.Contains(t, e.Message, "BK-001, BK-002, BK-003, BK-004, BK-005")
	assert.NotContains(t, e.Message, "BK-006")
}

func TestValidateProgress_ZeroQuantityIsWarning(t *testing.T) {
	res := ValidateProgress(progressSheet(
		textRow(2, "01.06.2024", "BK-001", "0"),
	), testLookup())

	assert.Empty(t, res.Errors)
	assert.Empty(t, res.ValidItems)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "satır 2")
}

func TestValidateProgress_InvalidDateIsHardError(t *testing.T) {
	res := ValidateProgress(progressSheet(
		textRow(2, "yarın", "BK-001", "5"),
	), testLookup())

	assert.Empty(t, res.ValidItems)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, FieldDate, res.Errors[0].Field)
}

func TestValidateProgress_MonthOnlyDateRejected(t *testing.T) {
	res := ValidateProgress(progressSheet(
		textRow(2, "2024-06", "BK-001", "5"),
	), testLookup())

	assert.Empty(t, res.ValidItems)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, FieldDate, res.Errors[0].Field)
}

func TestValidateProgress_NegativeQuantityRejected(t *testing.T) {
	res := ValidateProgress(progressSheet(
		textRow(2, "01.06.2024", "BK-001", "-4"),
	), testLookup())

	assert.Empty(t, res.ValidItems)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, FieldQuantity, res.Errors[0].Field)
}

func TestValidateProgress_RowNumbersMatchSheet(t *testing.T) {
	res := ValidateProgress(progressSheet(
		textRow(2, "01.06.2024", "BK-001", "5"),
		textRow(3, "01.06.2024", "YOK", "5"),
	), testLookup())

	require.Len(t, res.Errors, 1)
	assert.Equal(t, 3, res.Errors[0].Row)
}

func TestValidateProgress_Idempotent(t *testing.T) {
	rows := progressSheet(
		textRow(2, "01.06.2024", "BK-001", "24,5"),
		textRow(3, "02.06.2024", "YOK", "3"),
		textRow(4, "03.06.2024", "BK-002", "0"),
	)
	first := ValidateProgress(rows, testLookup())
	second := ValidateProgress(rows, testLookup())
	require.Equal(t, first, second)
}

func TestValidateManHours_SharedRules(t *testing.T) {
	rows := []RawRow{
		headerRow("Tarih", "Bütçe Kodu", "Miktar"),
		textRow(2, "01.06.2024", "BK-001", "150"),
		textRow(3, "02.06.2024", "BK-002", "0"),
	}
	res := ValidateManHours(rows, testLookup())

	assert.Empty(t, res.Errors)
	require.Len(t, res.ValidItems, 1)
	assert.Equal(t, 150.0, res.ValidItems[0].ManHours)
	require.Len(t, res.Warnings, 1)
}

func TestValidateWorkItems_DuplicateCodeKeepsBoth(t *testing.T) {
	rows := []RawRow{
		headerRow("Bütçe Kodu", "İmalat Adı", "Birim", "Hedef Metraj", "Hedef Adam Saat"),
		textRow(2, "BK-001", "Temel Betonu", "m3", "300", "600"),
		textRow(3, "BK-001", "Temel Betonu Rev", "m3", "320", "640"),
	}
	res := ValidateWorkItems(rows)

	assert.Empty(t, res.Errors)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "BK-001")

	// both rows survive in row order; the consumer applies them in order so
	// the later values win on commit
	require.Len(t, res.ValidItems, 2)
	assert.Equal(t, "Temel Betonu", res.ValidItems[0].Name)
	assert.Equal(t, "Temel Betonu Rev", res.ValidItems[1].Name)
}

func TestValidateWorkItems_MissingFields(t *testing.T) {
	rows := []RawRow{
		headerRow("Bütçe Kodu", "İmalat Adı", "Birim", "Hedef Metraj", "Hedef Adam Saat"),
		textRow(2, "BK-001", "", "m3", "300", "600"),
	}
	res := ValidateWorkItems(rows)

	assert.Empty(t, res.ValidItems)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, FieldName, res.Errors[0].Field)
}

func TestValidateWorkItems_OptionalColumns(t *testing.T) {
	rows := []RawRow{
		headerRow("Bütçe Kodu", "İmalat Adı", "Birim", "Hedef Metraj", "Hedef Adam Saat", "Kategori"),
		textRow(2, "BK-001", "Temel Betonu", "m3", "300", "600", "Kaba Yapı"),
	}
	res := ValidateWorkItems(rows)

	require.Len(t, res.ValidItems, 1)
	assert.Equal(t, "Kaba Yapı", res.ValidItems[0].Category)
}

func TestValidateSchedule_SkipsStrayRowsWithBatchedWarning(t *testing.T) {
	rows := []RawRow{
		headerRow("Dönem", "Saha Betonu", "Adam Saat"),
		textRow(2, "Ocak 2025", "120", "1500"),
		textRow(3, "İş Programı Toplamı", "", ""),
		textRow(4, "Şubat 2025", "90", "1300"),
	}
	res := ValidateSchedule(rows)

	assert.Empty(t, res.Errors)
	require.Len(t, res.ValidItems, 2)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "3")

	jan := res.ValidItems[0]
	assert.Equal(t, 2025, jan.Year)
	assert.Equal(t, time.January, jan.Month)
	require.Len(t, jan.Items, 1)
	assert.Equal(t, ScheduleItemTarget{Name: "Saha Betonu", Quantity: 120}, jan.Items[0])
	assert.True(t, jan.HasManHours)
	assert.Equal(t, 1500.0, jan.ManHours)
}

func TestValidateSchedule_DayPeriodCollapsesToMonth(t *testing.T) {
	rows := []RawRow{
		headerRow("Dönem", "Beton"),
		textRow(2, "01.03.2025", "80"),
	}
	res := ValidateSchedule(rows)

	require.Len(t, res.ValidItems, 1)
	assert.Equal(t, 2025, res.ValidItems[0].Year)
	assert.Equal(t, time.March, res.ValidItems[0].Month)
	assert.False(t, res.ValidItems[0].HasManHours)
}

func TestValidateSchedule_BadValueIsFieldError(t *testing.T) {
	rows := []RawRow{
		headerRow("Dönem", "Beton"),
		textRow(2, "Ocak 2025", "bilinmiyor"),
	}
	res := ValidateSchedule(rows)

	assert.Empty(t, res.ValidItems)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "Beton", res.Errors[0].Field)
}
