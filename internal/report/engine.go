package report

import (
	"sort"
	"time"

	"github.com/ebulut/progress-tracker/internal/models"
)

// Input is everything the engine reads: a project's persisted entries, its
// work item catalog, and the optional explicit monthly target schedule keyed
// by MonthKey. ProjectStart/ProjectEnd bound the flat daily target; when
// either is missing the span of the entry dates is used instead.
type Input struct {
	Entries        []models.DailyEntry
	Items          []models.WorkItem
	MonthlyTargets map[string]float64
	ProjectStart   *time.Time
	ProjectEnd     *time.Time
}

// Build recomputes the full report from scratch. The engine holds no state
// and is deterministic for the same input; concurrent callers need no
// coordination.
func Build(in Input) *Report {
	r := &Report{
		Daily:      []DailyPoint{},
		Weekly:     []WeeklyPoint{},
		Monthly:    []MonthlyPoint{},
		Cumulative: []CumulativePoint{},
		WorkItems:  []WorkItemStat{},
		Categories: []CategoryStat{},
	}

	r.Summary = buildSummary(in)
	r.Daily = buildDaily(in)
	r.Weekly = buildWeekly(r.Daily)
	r.Monthly = buildMonthly(r.Daily, in.MonthlyTargets)
	r.Cumulative = buildCumulative(r.Daily)
	r.WorkItems = buildWorkItemStats(in)
	r.Categories = buildCategoryStats(in)
	return r
}

// efficiencyPercent is the productivity KPI: earned over spent man-hours.
// Undefined (nil) when nothing was spent. Every surface that shows
// efficiency goes through this one definition.
func efficiencyPercent(earnedManHours, actualManHours float64) *float64 {
	if actualManHours == 0 {
		return nil
	}
	v := earnedManHours / actualManHours * 100
	return &v
}

// earnedManHours is actual quantity priced at the item's planned unit rate.
func earnedManHours(actualQuantity, targetManHours, targetQuantity float64) float64 {
	if targetQuantity == 0 {
		return 0
	}
	return actualQuantity * (targetManHours / targetQuantity)
}

func buildSummary(in Input) Summary {
	var s Summary
	for _, item := range in.Items {
		s.TotalPlannedManHours += item.TargetManHours
		s.TotalPlannedConcrete += item.TargetQuantity
	}
	for _, e := range in.Entries {
		s.TotalSpentManHours += e.ManHours
		s.TotalQuantity += e.Quantity
	}
	return s
}

func buildDaily(in Input) []DailyPoint {
	type sums struct{ manHours, quantity float64 }
	byDay := make(map[string]*sums)
	var minDate, maxDate time.Time

	for _, e := range in.Entries {
		key := dayKey(e.Date)
		s, ok := byDay[key]
		if !ok {
			s = &sums{}
			byDay[key] = s
		}
		s.manHours += e.ManHours
		s.quantity += e.Quantity
		if minDate.IsZero() || e.Date.Before(minDate) {
			minDate = e.Date
		}
		if maxDate.IsZero() || e.Date.After(maxDate) {
			maxDate = e.Date
		}
	}

	keys := make([]string, 0, len(byDay))
	for k := range byDay {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	target := flatDailyTarget(in, minDate, maxDate)

	points := make([]DailyPoint, 0, len(keys))
	for _, k := range keys {
		s := byDay[k]
		points = append(points, DailyPoint{
			Date:     k,
			ManHours: s.manHours,
			Quantity: s.quantity,
			Target:   target,
		})
	}
	return points
}

// flatDailyTarget spreads the total planned man-hours evenly over the
// project duration. No ramp curve.
func flatDailyTarget(in Input, minDate, maxDate time.Time) float64 {
	start, end := minDate, maxDate
	if in.ProjectStart != nil && in.ProjectEnd != nil {
		start, end = *in.ProjectStart, *in.ProjectEnd
	}
	if start.IsZero() || end.IsZero() || end.Before(start) {
		return 0
	}
	days := int(end.Sub(start).Hours()/24) + 1
	if days <= 0 {
		return 0
	}
	var planned float64
	for _, item := range in.Items {
		planned += item.TargetManHours
	}
	return planned / float64(days)
}

func buildWeekly(daily []DailyPoint) []WeeklyPoint {
	byWeek := make(map[string]*WeeklyPoint)
	var order []string
	for _, d := range daily {
		t, err := time.Parse("2006-01-02", d.Date)
		if err != nil {
			continue
		}
		key := weekKey(t)
		p, ok := byWeek[key]
		if !ok {
			p = &WeeklyPoint{Week: key}
			byWeek[key] = p
			order = append(order, key)
		}
		p.ManHours += d.ManHours
		p.Quantity += d.Quantity
		p.Target += d.Target
	}

	points := make([]WeeklyPoint, 0, len(order))
	for _, key := range order {
		points = append(points, *byWeek[key])
	}
	return points
}

func buildMonthly(daily []DailyPoint, targets map[string]float64) []MonthlyPoint {
	byMonth := make(map[string]*MonthlyPoint)
	var order []string
	for _, d := range daily {
		t, err := time.Parse("2006-01-02", d.Date)
		if err != nil {
			continue
		}
		key := monthKey(t)
		p, ok := byMonth[key]
		if !ok {
			p = &MonthlyPoint{Month: key, Target: targets[key]}
			byMonth[key] = p
			order = append(order, key)
		}
		p.ManHours += d.ManHours
		p.Quantity += d.Quantity
	}

	points := make([]MonthlyPoint, 0, len(order))
	for _, key := range order {
		points = append(points, *byMonth[key])
	}
	return points
}

func buildCumulative(daily []DailyPoint) []CumulativePoint {
	points := make([]CumulativePoint, 0, len(daily))
	var manHours, quantity, target float64
	for _, d := range daily {
		manHours += d.ManHours
		quantity += d.Quantity
		target += d.Target
		points = append(points, CumulativePoint{
			Date:               d.Date,
			CumulativeManHours: manHours,
			CumulativeQuantity: quantity,
			CumulativeTarget:   target,
		})
	}
	return points
}

func buildWorkItemStats(in Input) []WorkItemStat {
	type sums struct{ manHours, quantity float64 }
	byItem := make(map[int64]*sums)
	for _, e := range in.Entries {
		s, ok := byItem[e.WorkItemID]
		if !ok {
			s = &sums{}
			byItem[e.WorkItemID] = s
		}
		s.manHours += e.ManHours
		s.quantity += e.Quantity
	}

	stats := make([]WorkItemStat, 0, len(in.Items))
	for _, item := range in.Items {
		actual := sums{}
		if s, ok := byItem[item.ID]; ok {
			actual = *s
		}

		progress := 0.0
		if item.TargetQuantity > 0 {
			progress = actual.quantity / item.TargetQuantity * 100
		}
		earned := earnedManHours(actual.quantity, item.TargetManHours, item.TargetQuantity)

		stats = append(stats, WorkItemStat{
			BudgetCode:        item.BudgetCode,
			Name:              item.Name,
			Unit:              item.Unit,
			Category:          item.Category,
			TargetQuantity:    item.TargetQuantity,
			TargetManHours:    item.TargetManHours,
			ActualQuantity:    actual.quantity,
			ActualManHours:    actual.manHours,
			ProgressPercent:   progress,
			EfficiencyPercent: efficiencyPercent(earned, actual.manHours),
		})
	}

	sort.Slice(stats, func(i, j int) bool { return stats[i].BudgetCode < stats[j].BudgetCode })
	return stats
}

func buildCategoryStats(in Input) []CategoryStat {
	type sums struct{ manHours, quantity float64 }
	byItem := make(map[int64]*sums)
	for _, e := range in.Entries {
		s, ok := byItem[e.WorkItemID]
		if !ok {
			s = &sums{}
			byItem[e.WorkItemID] = s
		}
		s.manHours += e.ManHours
		s.quantity += e.Quantity
	}

	byCategory := make(map[string]*CategoryStat)
	var order []string
	for _, item := range in.Items {
		category := item.Category
		if category == "" {
			category = "Diğer"
		}
		c, ok := byCategory[category]
		if !ok {
			c = &CategoryStat{Category: category}
			byCategory[category] = c
			order = append(order, category)
		}
		c.TargetQuantity += item.TargetQuantity
		c.TargetManHours += item.TargetManHours
		if s, ok := byItem[item.ID]; ok {
			c.ActualQuantity += s.quantity
			c.ActualManHours += s.manHours
			c.EarnedManHours += earnedManHours(s.quantity, item.TargetManHours, item.TargetQuantity)
		}
	}

	sort.Strings(order)
	stats := make([]CategoryStat, 0, len(order))
	for _, category := range order {
		c := byCategory[category]
		c.EfficiencyPercent = efficiencyPercent(c.EarnedManHours, c.ActualManHours)
		stats = append(stats, *c)
	}
	return stats
}
