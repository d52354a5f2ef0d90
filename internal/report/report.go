package report

// DailyPoint is one calendar date's summed actuals plus its flat pro-rated
// target share.
type DailyPoint struct {
	Date     string  `json:"date"`
	ManHours float64 `json:"manHours"`
	Quantity float64 `json:"quantity"`
	Target   float64 `json:"target"`
}

// WeeklyPoint is a Monday-aligned weekly rollup bucket.
type WeeklyPoint struct {
	Week     string  `json:"week"`
	ManHours float64 `json:"manHours"`
	Quantity float64 `json:"quantity"`
	Target   float64 `json:"target"`
}

// MonthlyPoint is a (year, month) rollup bucket. Target comes from the
// explicit schedule when one covers the month, else 0.
type MonthlyPoint struct {
	Month    string  `json:"month"`
	ManHours float64 `json:"manHours"`
	Quantity float64 `json:"quantity"`
	Target   float64 `json:"target"`
}

// CumulativePoint is a running total across the ordered daily series.
type CumulativePoint struct {
	Date               string  `json:"date"`
	CumulativeManHours float64 `json:"cumulativeManHours"`
	CumulativeQuantity float64 `json:"cumulativeQuantity"`
	CumulativeTarget   float64 `json:"cumulativeTarget"`
}

// WorkItemStat is one work item's planned-vs-actual figures and KPIs.
// EfficiencyPercent is nil when no man-hours were spent; the UI renders that
// as "-".
type WorkItemStat struct {
	BudgetCode        string   `json:"budgetCode"`
	Name              string   `json:"name"`
	Unit              string   `json:"unit"`
	Category          string   `json:"category,omitempty"`
	TargetQuantity    float64  `json:"targetQuantity"`
	TargetManHours    float64  `json:"targetManHours"`
	ActualQuantity    float64  `json:"actualQuantity"`
	ActualManHours    float64  `json:"actualManHours"`
	ProgressPercent   float64  `json:"progressPercent"`
	EfficiencyPercent *float64 `json:"efficiencyPercent"`
}

// CategoryStat rolls work item figures up to their category, with the same
// KPI definitions as the per-item table.
type CategoryStat struct {
	Category          string   `json:"category"`
	TargetQuantity    float64  `json:"targetQuantity"`
	TargetManHours    float64  `json:"targetManHours"`
	ActualQuantity    float64  `json:"actualQuantity"`
	ActualManHours    float64  `json:"actualManHours"`
	EarnedManHours    float64  `json:"earnedManHours"`
	EfficiencyPercent *float64 `json:"efficiencyPercent"`
}

// Summary is the project-level total block.
type Summary struct {
	TotalPlannedManHours float64 `json:"totalPlannedManHours"`
	TotalSpentManHours   float64 `json:"totalSpentManHours"`
	TotalPlannedConcrete float64 `json:"totalPlannedConcrete"`
	TotalQuantity        float64 `json:"totalQuantity"`
}

// Report is the full aggregation output for one project.
type Report struct {
	Daily      []DailyPoint      `json:"daily"`
	Weekly     []WeeklyPoint     `json:"weekly"`
	Monthly    []MonthlyPoint    `json:"monthly"`
	Cumulative []CumulativePoint `json:"cumulative"`
	WorkItems  []WorkItemStat    `json:"workItems"`
	Categories []CategoryStat    `json:"categories"`
	Summary    Summary           `json:"summary"`
}
