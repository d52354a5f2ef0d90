package models

import "time"

// Project is one construction project being tracked.
type Project struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// WorkItem is a planned unit of construction work. TargetManHours divided by
// TargetQuantity is the planned unit man-hour rate used for the efficiency
// KPI.
type WorkItem struct {
	ID             int64     `json:"id"`
	ProjectID      int64     `json:"project_id"`
	BudgetCode     string    `json:"budget_code"`
	ParentCode     string    `json:"parent_code,omitempty"`
	Category       string    `json:"category,omitempty"`
	Name           string    `json:"name"`
	Unit           string    `json:"unit"`
	TargetQuantity float64   `json:"target_quantity"`
	TargetManHours float64   `json:"target_man_hours"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// DailyEntry is one day's recorded actuals for a work item. Progress uploads
// fill Quantity, man-hour uploads fill ManHours; both land in the same table.
type DailyEntry struct {
	ID         int64     `json:"id"`
	ProjectID  int64     `json:"project_id"`
	WorkItemID int64     `json:"work_item_id"`
	Date       time.Time `json:"date"`
	ManHours   float64   `json:"man_hours"`
	Quantity   float64   `json:"quantity"`
	Region     string    `json:"region,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// ScheduleTarget is the explicit planned man-hour total for one month, taken
// from a work schedule upload.
type ScheduleTarget struct {
	ID             int64     `json:"id"`
	ProjectID      int64     `json:"project_id"`
	Year           int       `json:"year"`
	Month          int       `json:"month"`
	TargetManHours float64   `json:"target_man_hours"`
	CreatedAt      time.Time `json:"created_at"`
}
