package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ebulut/progress-tracker/internal/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBuild_EfficiencyScenario(t *testing.T) {
	// target 600 man-hours for 300 m³ gives a planned rate of 2.0 MH/m³;
	// 100 m³ done with 150 MH spent earns 200 MH → 133% efficiency.
	in := Input{
		Items: []models.WorkItem{
			{ID: 1, BudgetCode: "BK-001", Name: "Temel Betonu", Unit: "m3",
				TargetQuantity: 300, TargetManHours: 600},
		},
		Entries: []models.DailyEntry{
			{WorkItemID: 1, Date: day(2024, time.June, 1), Quantity: 100},
			{WorkItemID: 1, Date: day(2024, time.June, 1), ManHours: 150},
		},
	}
	r := Build(in)

	require.Len(t, r.WorkItems, 1)
	stat := r.WorkItems[0]
	assert.Equal(t, 100.0, stat.ActualQuantity)
	assert.Equal(t, 150.0, stat.ActualManHours)
	assert.InDelta(t, 33.333, stat.ProgressPercent, 0.001)
	require.NotNil(t, stat.EfficiencyPercent)
	assert.InDelta(t, 133.333, *stat.EfficiencyPercent, 0.001)
}

func TestBuild_EfficiencyUndefinedWithoutManHours(t *testing.T) {
	in := Input{
		Items: []models.WorkItem{
			{ID: 1, BudgetCode: "BK-001", TargetQuantity: 300, TargetManHours: 600},
		},
		Entries: []models.DailyEntry{
			{WorkItemID: 1, Date: day(2024, time.June, 1), Quantity: 50},
		},
	}
	r := Build(in)

	require.Len(t, r.WorkItems, 1)
	assert.Nil(t, r.WorkItems[0].EfficiencyPercent)
}

func TestBuild_ProgressZeroTarget(t *testing.T) {
	in := Input{
		Items: []models.WorkItem{{ID: 1, BudgetCode: "BK-001"}},
		Entries: []models.DailyEntry{
			{WorkItemID: 1, Date: day(2024, time.June, 1), Quantity: 50},
		},
	}
	r := Build(in)

	require.Len(t, r.WorkItems, 1)
	assert.Zero(t, r.WorkItems[0].ProgressPercent)
}

func TestBuild_SeriesSumsAgree(t *testing.T) {
	in := Input{
		Items: []models.WorkItem{{ID: 1, TargetManHours: 1000}},
		Entries: []models.DailyEntry{
			{WorkItemID: 1, Date: day(2024, time.January, 1), ManHours: 10, Quantity: 2},
			{WorkItemID: 1, Date: day(2024, time.January, 1), ManHours: 5},
			{WorkItemID: 1, Date: day(2024, time.January, 8), ManHours: 8, Quantity: 1},
			{WorkItemID: 1, Date: day(2024, time.February, 3), ManHours: 7, Quantity: 4},
		},
	}
	r := Build(in)

	var dailySum, monthlySum float64
	for _, d := range r.Daily {
		dailySum += d.ManHours
	}
	for _, m := range r.Monthly {
		monthlySum += m.ManHours
	}
	require.NotEmpty(t, r.Cumulative)
	last := r.Cumulative[len(r.Cumulative)-1]

	assert.Equal(t, 30.0, dailySum)
	assert.Equal(t, dailySum, monthlySum)
	assert.Equal(t, dailySum, last.CumulativeManHours)
	assert.Equal(t, dailySum, r.Summary.TotalSpentManHours)
}

func TestBuild_DailySeriesOrderedAndSummed(t *testing.T) {
	in := Input{
		Entries: []models.DailyEntry{
			{WorkItemID: 1, Date: day(2024, time.June, 2), ManHours: 4},
			{WorkItemID: 1, Date: day(2024, time.June, 1), ManHours: 3},
			{WorkItemID: 1, Date: day(2024, time.June, 1), ManHours: 2},
		},
	}
	r := Build(in)

	require.Len(t, r.Daily, 2)
	assert.Equal(t, "2024-06-01", r.Daily[0].Date)
	assert.Equal(t, 5.0, r.Daily[0].ManHours)
	assert.Equal(t, "2024-06-02", r.Daily[1].Date)
}

func TestBuild_FlatDailyTarget(t *testing.T) {
	start := day(2024, time.January, 1)
	end := day(2024, time.January, 10)
	in := Input{
		Items:        []models.WorkItem{{ID: 1, TargetManHours: 100}},
		ProjectStart: &start,
		ProjectEnd:   &end,
		Entries: []models.DailyEntry{
			{WorkItemID: 1, Date: day(2024, time.January, 2), ManHours: 12},
		},
	}
	r := Build(in)

	require.Len(t, r.Daily, 1)
	assert.InDelta(t, 10.0, r.Daily[0].Target, 1e-9)
}

func TestBuild_WeeklyMondayAligned(t *testing.T) {
	// Mon 2024-01-01 through Sun 2024-01-07 share a bucket; Mon 2024-01-08
	// starts the next one.
	in := Input{
		Entries: []models.DailyEntry{
			{WorkItemID: 1, Date: day(2024, time.January, 1), ManHours: 1},
			{WorkItemID: 1, Date: day(2024, time.January, 7), ManHours: 2},
			{WorkItemID: 1, Date: day(2024, time.January, 8), ManHours: 4},
		},
	}
	r := Build(in)

	require.Len(t, r.Weekly, 2)
	assert.Equal(t, "2024-W01", r.Weekly[0].Week)
	assert.Equal(t, 3.0, r.Weekly[0].ManHours)
	assert.Equal(t, "2024-W02", r.Weekly[1].Week)
	assert.Equal(t, 4.0, r.Weekly[1].ManHours)
}

func TestBuild_MonthlyTargetsFromSchedule(t *testing.T) {
	in := Input{
		MonthlyTargets: map[string]float64{"2024-01": 1500},
		Entries: []models.DailyEntry{
			{WorkItemID: 1, Date: day(2024, time.January, 5), ManHours: 100},
			{WorkItemID: 1, Date: day(2024, time.February, 5), ManHours: 80},
		},
	}
	r := Build(in)

	require.Len(t, r.Monthly, 2)
	assert.Equal(t, "2024-01", r.Monthly[0].Month)
	assert.Equal(t, 1500.0, r.Monthly[0].Target)
	// no explicit schedule entry for February
	assert.Equal(t, 0.0, r.Monthly[1].Target)
}

func TestBuild_CategoryRollupUsesSameEfficiency(t *testing.T) {
	in := Input{
		Items: []models.WorkItem{
			{ID: 1, BudgetCode: "BK-001", Category: "Kaba Yapı",
				TargetQuantity: 300, TargetManHours: 600},
			{ID: 2, BudgetCode: "BK-002", Category: "Kaba Yapı",
				TargetQuantity: 100, TargetManHours: 400},
		},
		Entries: []models.DailyEntry{
			{WorkItemID: 1, Date: day(2024, time.June, 1), Quantity: 100, ManHours: 150},
			{WorkItemID: 2, Date: day(2024, time.June, 1), Quantity: 25, ManHours: 50},
		},
	}
	r := Build(in)

	require.Len(t, r.Categories, 1)
	c := r.Categories[0]
	assert.Equal(t, "Kaba Yapı", c.Category)
	// earned = 100×2.0 + 25×4.0 = 300; spent = 200 → 150%
	assert.InDelta(t, 300.0, c.EarnedManHours, 1e-9)
	require.NotNil(t, c.EfficiencyPercent)
	assert.InDelta(t, 150.0, *c.EfficiencyPercent, 1e-9)
}

func TestBuild_Deterministic(t *testing.T) {
	in := Input{
		Items: []models.WorkItem{
			{ID: 2, BudgetCode: "BK-002", TargetQuantity: 10, TargetManHours: 20},
			{ID: 1, BudgetCode: "BK-001", TargetQuantity: 5, TargetManHours: 10},
		},
		Entries: []models.DailyEntry{
			{WorkItemID: 1, Date: day(2024, time.March, 3), ManHours: 2, Quantity: 1},
			{WorkItemID: 2, Date: day(2024, time.March, 4), ManHours: 3, Quantity: 2},
		},
	}
	first := Build(in)
	second := Build(in)
	require.Equal(t, first, second)

	// stats come back sorted by budget code regardless of input order
	require.Len(t, first.WorkItems, 2)
	assert.Equal(t, "BK-001", first.WorkItems[0].BudgetCode)
}
