package service

import (
	"database/sql"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/ebulut/progress-tracker/internal/excel"
	"github.com/ebulut/progress-tracker/internal/importer"
	"github.com/ebulut/progress-tracker/internal/models"
)

// TxRunner executes a function inside one database transaction.
type TxRunner interface {
	WithTransaction(fn func(*sql.Tx) error) error
}

// WorkItemStore is the work item persistence surface the import flow needs.
type WorkItemStore interface {
	Upsert(tx *sql.Tx, projectID int64, item importer.WorkItemRecord) error
	CodeLookup(projectID int64) (importer.CodeLookup, error)
}

// EntryStore persists validated daily entries.
type EntryStore interface {
	Insert(tx *sql.Tx, entry *models.DailyEntry) error
}

// ScheduleStore persists monthly schedule targets.
type ScheduleStore interface {
	Replace(tx *sql.Tx, projectID int64, targets []models.ScheduleTarget) error
}

// ImportService runs the upload flow: decode the workbook, validate rows,
// then apply the caller's commit policy. The validation engines stay pure;
// all I/O lives here.
type ImportService struct {
	db        TxRunner
	workItems WorkItemStore
	entries   EntryStore
	schedule  ScheduleStore
	logger    *zap.Logger
}

// NewImportService creates a new import service.
func NewImportService(
	db TxRunner,
	workItems WorkItemStore,
	entries EntryStore,
	schedule ScheduleStore,
	logger *zap.Logger,
) *ImportService {
	return &ImportService{
		db:        db,
		workItems: workItems,
		entries:   entries,
		schedule:  schedule,
		logger:    logger,
	}
}

// Outcome pairs a validation result with whether its items were committed.
// Items are committed only when the caller asked for auto-commit and the
// batch came back clean; a batch with any errors or warnings is always held
// for user confirmation.
type Outcome[T any] struct {
	Result    *importer.ValidationResult[T] `json:"result"`
	Committed bool                          `json:"committed"`
}

// ImportWorkItems decodes and validates a work item catalog upload, applying
// validated rows in order on commit so a duplicated budget code ends up with
// the later row's values.
func (s *ImportService) ImportWorkItems(projectID int64, file io.Reader, autoCommit bool) (*Outcome[importer.WorkItemRecord], error) {
	rows, err := excel.ReadRows(file)
	if err != nil {
		return nil, err
	}

	res := importer.ValidateWorkItems(rows)
	s.logResult("work_items", projectID, len(res.ValidItems), len(res.Errors), len(res.Warnings))

	outcome := &Outcome[importer.WorkItemRecord]{Result: res}
	if !autoCommit || !res.Clean() {
		return outcome, nil
	}

	err = s.db.WithTransaction(func(tx *sql.Tx) error {
		for _, item := range res.ValidItems {
			if err := s.workItems.Upsert(tx, projectID, item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to commit work items: %w", err)
	}
	outcome.Committed = true
	return outcome, nil
}

// ImportProgress decodes and validates a daily progress upload.
func (s *ImportService) ImportProgress(projectID int64, file io.Reader, autoCommit bool) (*Outcome[importer.ProgressRecord], error) {
	rows, err := excel.ReadRows(file)
	if err != nil {
		return nil, err
	}

	lookup, err := s.workItems.CodeLookup(projectID)
	if err != nil {
		return nil, err
	}

	res := importer.ValidateProgress(rows, lookup)
	s.logResult("progress", projectID, len(res.ValidItems), len(res.Errors), len(res.Warnings))

	outcome := &Outcome[importer.ProgressRecord]{Result: res}
	if !autoCommit || !res.Clean() {
		return outcome, nil
	}

	err = s.db.WithTransaction(func(tx *sql.Tx) error {
		for _, rec := range res.ValidItems {
			entry := models.DailyEntry{
				ProjectID:  projectID,
				WorkItemID: rec.WorkItemID,
				Date:       rec.Date,
				Quantity:   rec.Quantity,
				Region:     rec.Region,
			}
			if err := s.entries.Insert(tx, &entry); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to commit progress entries: %w", err)
	}
	outcome.Committed = true
	return outcome, nil
}

// ImportManHours decodes and validates a daily man-hour upload.
func (s *ImportService) ImportManHours(projectID int64, file io.Reader, autoCommit bool) (*Outcome[importer.ManHoursRecord], error) {
	rows, err := excel.ReadRows(file)
	if err != nil {
		return nil, err
	}

	lookup, err := s.workItems.CodeLookup(projectID)
	if err != nil {
		return nil, err
	}

	res := importer.ValidateManHours(rows, lookup)
	s.logResult("man_hours", projectID, len(res.ValidItems), len(res.Errors), len(res.Warnings))

	outcome := &Outcome[importer.ManHoursRecord]{Result: res}
	if !autoCommit || !res.Clean() {
		return outcome, nil
	}

	err = s.db.WithTransaction(func(tx *sql.Tx) error {
		for _, rec := range res.ValidItems {
			entry := models.DailyEntry{
				ProjectID:  projectID,
				WorkItemID: rec.WorkItemID,
				Date:       rec.Date,
				ManHours:   rec.ManHours,
			}
			if err := s.entries.Insert(tx, &entry); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to commit man-hour entries: %w", err)
	}
	outcome.Committed = true
	return outcome, nil
}

// ImportSchedule decodes and validates a work schedule upload. On commit the
// project's monthly targets are replaced wholesale; periods without the
// aggregate man-hour column carry no explicit target.
func (s *ImportService) ImportSchedule(projectID int64, file io.Reader, autoCommit bool) (*Outcome[importer.ScheduleRecord], error) {
	rows, err := excel.ReadRows(file)
	if err != nil {
		return nil, err
	}

	res := importer.ValidateSchedule(rows)
	s.logResult("work_schedule", projectID, len(res.ValidItems), len(res.Errors), len(res.Warnings))

	outcome := &Outcome[importer.ScheduleRecord]{Result: res}
	if !autoCommit || !res.Clean() {
		return outcome, nil
	}

	var targets []models.ScheduleTarget
	for _, rec := range res.ValidItems {
		if !rec.HasManHours {
			continue
		}
		targets = append(targets, models.ScheduleTarget{
			ProjectID:      projectID,
			Year:           rec.Year,
			Month:          int(rec.Month),
			TargetManHours: rec.ManHours,
		})
	}

	err = s.db.WithTransaction(func(tx *sql.Tx) error {
		return s.schedule.Replace(tx, projectID, targets)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to commit schedule targets: %w", err)
	}
	outcome.Committed = true
	return outcome, nil
}

func (s *ImportService) logResult(kind string, projectID int64, valid, errs, warnings int) {
	s.logger.Info("Import validated",
		zap.String("kind", kind),
		zap.Int64("project_id", projectID),
		zap.Int("valid", valid),
		zap.Int("errors", errs),
		zap.Int("warnings", warnings))
}
