package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func headerRow(cells ...string) RawRow {
	row := RawRow{SheetRow: 1, Cells: make([]Cell, len(cells))}
	for i, c := range cells {
		row.Cells[i] = TextCell(c)
	}
	return row
}

func TestResolveColumns_DisplayNamesAndMachineKeys(t *testing.T) {
	rc, warnings := ResolveColumns(ProgressFields(), headerRow("Tarih", "budget_code", "Metraj"))
	assert.Empty(t, warnings)

	col, ok := rc.Column(FieldDate)
	require.True(t, ok)
	assert.Equal(t, 0, col)
	col, ok = rc.Column(FieldBudgetCode)
	require.True(t, ok)
	assert.Equal(t, 1, col)
	col, ok = rc.Column(FieldQuantity)
	require.True(t, ok)
	assert.Equal(t, 2, col)
}

func TestResolveColumns_TurkishCaseFolding(t *testing.T) {
	// Uppercase dotted İ must fold to i under Turkish rules; ASCII folding
	// would miss this header.
	rc, warnings := ResolveColumns(ProgressFields(), headerRow("TARİH", "BÜTÇE KODU", "METRAJ"))
	assert.Empty(t, warnings)

	_, ok := rc.Column(FieldDate)
	assert.True(t, ok)
	_, ok = rc.Column(FieldBudgetCode)
	assert.True(t, ok)
}

func TestResolveColumns_UnrecognizedHeaderWarns(t *testing.T) {
	rc, warnings := ResolveColumns(ProgressFields(), headerRow("sütun a", "sütun b"))
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "Tarih")
	assert.Contains(t, warnings[0], "Bütçe Kodu")
	assert.Contains(t, warnings[0], "Metraj")

	_, ok := rc.Column(FieldDate)
	assert.False(t, ok)
}

func TestResolveScheduleColumns(t *testing.T) {
	sc := ResolveScheduleColumns(headerRow("Dönem", "Saha Betonu", "Kalıp İmalatı", "Adam Saat"))

	require.Len(t, sc.Items, 2)
	assert.Equal(t, ScheduleColumn{Index: 1, Label: "Saha Betonu"}, sc.Items[0])
	assert.Equal(t, ScheduleColumn{Index: 2, Label: "Kalıp İmalatı"}, sc.Items[1])
	assert.Equal(t, 3, sc.ManHourCol)
}

func TestResolveScheduleColumns_ManHourVariants(t *testing.T) {
	for _, label := range []string{"Adam Saat", "ADAM SAATİ", "adam-saat", "man_hours", "Toplam Adam Saat"} {
		sc := ResolveScheduleColumns(headerRow("Dönem", label))
		assert.Equal(t, 1, sc.ManHourCol, label)
		assert.Empty(t, sc.Items, label)
	}
}

func TestResolveScheduleColumns_NoManHourColumn(t *testing.T) {
	sc := ResolveScheduleColumns(headerRow("Dönem", "Beton"))
	assert.Equal(t, -1, sc.ManHourCol)
	require.Len(t, sc.Items, 1)
}
