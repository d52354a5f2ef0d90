package service

import (
	"bytes"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/ebulut/progress-tracker/internal/importer"
	"github.com/ebulut/progress-tracker/internal/models"
)

type fakeTxRunner struct {
	calls int
}

func (f *fakeTxRunner) WithTransaction(fn func(*sql.Tx) error) error {
	f.calls++
	return fn(nil)
}

type fakeWorkItemStore struct {
	upserts []importer.WorkItemRecord
	lookup  importer.CodeLookup
}

func (f *fakeWorkItemStore) Upsert(_ *sql.Tx, _ int64, item importer.WorkItemRecord) error {
	f.upserts = append(f.upserts, item)
	return nil
}

func (f *fakeWorkItemStore) CodeLookup(int64) (importer.CodeLookup, error) {
	return f.lookup, nil
}

type fakeEntryStore struct {
	entries []models.DailyEntry
}

func (f *fakeEntryStore) Insert(_ *sql.Tx, entry *models.DailyEntry) error {
	f.entries = append(f.entries, *entry)
	return nil
}

type fakeScheduleStore struct {
	replaced []models.ScheduleTarget
}

func (f *fakeScheduleStore) Replace(_ *sql.Tx, _ int64, targets []models.ScheduleTarget) error {
	f.replaced = targets
	return nil
}

func workbook(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return &buf
}

func newTestService() (*ImportService, *fakeTxRunner, *fakeWorkItemStore, *fakeEntryStore, *fakeScheduleStore) {
	tx := &fakeTxRunner{}
	items := &fakeWorkItemStore{lookup: importer.CodeLookup{"BK-001": 11}}
	entries := &fakeEntryStore{}
	schedule := &fakeScheduleStore{}
	svc := NewImportService(tx, items, entries, schedule, zap.NewNop())
	return svc, tx, items, entries, schedule
}

func TestImportWorkItems_CleanBatchAutoCommits(t *testing.T) {
	svc, tx, items, _, _ := newTestService()

	buf := workbook(t, [][]interface{}{
		{"Bütçe Kodu", "İmalat Adı", "Birim", "Hedef Metraj", "Hedef Adam Saat"},
		{"BK-001", "Temel Betonu", "m3", "300", "600"},
	})

	outcome, err := svc.ImportWorkItems(1, buf, true)
	require.NoError(t, err)

	assert.True(t, outcome.Committed)
	assert.Equal(t, 1, tx.calls)
	require.Len(t, items.upserts, 1)
	assert.Equal(t, "BK-001", items.upserts[0].BudgetCode)
}

func TestImportWorkItems_DirtyBatchHeldForConfirmation(t *testing.T) {
	svc, tx, items, _, _ := newTestService()

	// duplicate code produces a warning, so the batch is not clean
	buf := workbook(t, [][]interface{}{
		{"Bütçe Kodu", "İmalat Adı", "Birim", "Hedef Metraj", "Hedef Adam Saat"},
		{"BK-001", "Temel Betonu", "m3", "300", "600"},
		{"BK-001", "Temel Betonu Rev", "m3", "320", "640"},
	})

	outcome, err := svc.ImportWorkItems(1, buf, true)
	require.NoError(t, err)

	assert.False(t, outcome.Committed)
	assert.Zero(t, tx.calls)
	assert.Empty(t, items.upserts)
	assert.Len(t, outcome.Result.ValidItems, 2)
	assert.Len(t, outcome.Result.Warnings, 1)
}

func TestImportWorkItems_NeverCommitOnlyValidates(t *testing.T) {
	svc, tx, _, _, _ := newTestService()

	buf := workbook(t, [][]interface{}{
		{"Bütçe Kodu", "İmalat Adı", "Birim", "Hedef Metraj", "Hedef Adam Saat"},
		{"BK-001", "Temel Betonu", "m3", "300", "600"},
	})

	outcome, err := svc.ImportWorkItems(1, buf, false)
	require.NoError(t, err)

	assert.False(t, outcome.Committed)
	assert.Zero(t, tx.calls)
	assert.Len(t, outcome.Result.ValidItems, 1)
}

func TestImportProgress_CommitsDailyEntries(t *testing.T) {
	svc, _, _, entries, _ := newTestService()

	buf := workbook(t, [][]interface{}{
		{"Tarih", "Bütçe Kodu", "Metraj"},
		{"01.06.2024", "BK-001", "24,5"},
	})

	outcome, err := svc.ImportProgress(7, buf, true)
	require.NoError(t, err)

	assert.True(t, outcome.Committed)
	require.Len(t, entries.entries, 1)
	e := entries.entries[0]
	assert.Equal(t, int64(7), e.ProjectID)
	assert.Equal(t, int64(11), e.WorkItemID)
	assert.Equal(t, 24.5, e.Quantity)
	assert.Zero(t, e.ManHours)
}

func TestImportManHours_CommitsDailyEntries(t *testing.T) {
	svc, _, _, entries, _ := newTestService()

	buf := workbook(t, [][]interface{}{
		{"Tarih", "Bütçe Kodu", "Miktar"},
		{"01.06.2024", "BK-001", "150"},
	})

	outcome, err := svc.ImportManHours(7, buf, true)
	require.NoError(t, err)

	assert.True(t, outcome.Committed)
	require.Len(t, entries.entries, 1)
	assert.Equal(t, 150.0, entries.entries[0].ManHours)
	assert.Zero(t, entries.entries[0].Quantity)
}

func TestImportSchedule_ReplacesMonthlyTargets(t *testing.T) {
	svc, _, _, _, schedule := newTestService()

	buf := workbook(t, [][]interface{}{
		{"Dönem", "Saha Betonu", "Adam Saat"},
		{"Ocak 2025", "120", "1500"},
		{"Şubat 2025", "90", "1300"},
	})

	outcome, err := svc.ImportSchedule(7, buf, true)
	require.NoError(t, err)

	assert.True(t, outcome.Committed)
	require.Len(t, schedule.replaced, 2)
	assert.Equal(t, 2025, schedule.replaced[0].Year)
	assert.Equal(t, 1, schedule.replaced[0].Month)
	assert.Equal(t, 1500.0, schedule.replaced[0].TargetManHours)
}

func TestImportProgress_UnknownCodeNotCommitted(t *testing.T) {
	svc, tx, _, entries, _ := newTestService()

	buf := workbook(t, [][]interface{}{
		{"Tarih", "Bütçe Kodu", "Metraj"},
		{"01.06.2024", "YOK-9", "10"},
	})

	outcome, err := svc.ImportProgress(7, buf, true)
	require.NoError(t, err)

	assert.False(t, outcome.Committed)
	assert.Zero(t, tx.calls)
	assert.Empty(t, entries.entries)
	assert.Len(t, outcome.Result.Errors, 1)
}
