package service

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/ebulut/progress-tracker/internal/models"
	"github.com/ebulut/progress-tracker/internal/report"
)

// ProjectStore is the project read surface the report flow needs.
type ProjectStore interface {
	GetByID(id int64) (*models.Project, error)
}

// WorkItemReader lists a project's work item catalog.
type WorkItemReader interface {
	ListByProject(projectID int64) ([]models.WorkItem, error)
}

// EntryReader lists a project's persisted daily entries.
type EntryReader interface {
	ListByProject(projectID int64) ([]models.DailyEntry, error)
}

// ScheduleReader lists a project's explicit monthly targets.
type ScheduleReader interface {
	ListByProject(projectID int64) ([]models.ScheduleTarget, error)
}

// ReportService loads a project's committed data and runs the aggregation
// engine over it. Reads are independent, so two overlapping report requests
// may see different data if an import lands in between; that weak
// consistency is accepted for a progress dashboard.
type ReportService struct {
	projects  ProjectStore
	workItems WorkItemReader
	entries   EntryReader
	schedule  ScheduleReader
	logger    *zap.Logger
}

// NewReportService creates a new report service.
func NewReportService(
	projects ProjectStore,
	workItems WorkItemReader,
	entries EntryReader,
	schedule ScheduleReader,
	logger *zap.Logger,
) *ReportService {
	return &ReportService{
		projects:  projects,
		workItems: workItems,
		entries:   entries,
		schedule:  schedule,
		logger:    logger,
	}
}

// BuildReport assembles the full aggregation report for one project.
func (s *ReportService) BuildReport(projectID int64) (*report.Report, error) {
	project, err := s.projects.GetByID(projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, fmt.Errorf("project not found: %d", projectID)
	}

	items, err := s.workItems.ListByProject(projectID)
	if err != nil {
		return nil, err
	}
	entries, err := s.entries.ListByProject(projectID)
	if err != nil {
		return nil, err
	}
	targets, err := s.schedule.ListByProject(projectID)
	if err != nil {
		return nil, err
	}

	monthly := make(map[string]float64, len(targets))
	for _, t := range targets {
		monthly[report.MonthKey(t.Year, t.Month)] = t.TargetManHours
	}

	s.logger.Debug("Building report",
		zap.Int64("project_id", projectID),
		zap.Int("work_items", len(items)),
		zap.Int("entries", len(entries)),
		zap.Int("schedule_months", len(targets)))

	return report.Build(report.Input{
		Entries:        entries,
		Items:          items,
		MonthlyTargets: monthly,
		ProjectStart:   project.StartDate,
		ProjectEnd:     project.EndDate,
	}), nil
}
