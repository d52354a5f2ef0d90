package repository

import (
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ebulut/progress-tracker/internal/models"
)

// EntryRepository handles daily entry database operations.
type EntryRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewEntryRepository creates a new entry repository.
func NewEntryRepository(db *sql.DB, logger *zap.Logger) *EntryRepository {
	return &EntryRepository{db: db, logger: logger}
}

// Insert appends one daily entry.
func (r *EntryRepository) Insert(tx *sql.Tx, entry *models.DailyEntry) error {
	query := `
		INSERT INTO daily_entries (project_id, work_item_id, entry_date, man_hours, quantity, region)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	var result sql.Result
	var err error
	if tx != nil {
		result, err = tx.Exec(query, entry.ProjectID, entry.WorkItemID,
			entry.Date.Format("2006-01-02"), entry.ManHours, entry.Quantity, entry.Region)
	} else {
		result, err = r.db.Exec(query, entry.ProjectID, entry.WorkItemID,
			entry.Date.Format("2006-01-02"), entry.ManHours, entry.Quantity, entry.Region)
	}
	if err != nil {
		r.logger.Error("Failed to insert daily entry",
			zap.Int64("work_item_id", entry.WorkItemID), zap.Error(err))
		return fmt.Errorf("failed to insert daily entry: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	entry.ID = id
	return nil
}

// ListByProject returns all of a project's entries ordered by date.
func (r *EntryRepository) ListByProject(projectID int64) ([]models.DailyEntry, error) {
	query := `
		SELECT id, project_id, work_item_id, entry_date, man_hours, quantity, region, created_at
		FROM daily_entries WHERE project_id = ? ORDER BY entry_date, id
	`
	rows, err := r.db.Query(query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list daily entries: %w", err)
	}
	defer rows.Close()

	var entries []models.DailyEntry
	for rows.Next() {
		var e models.DailyEntry
		var dateStr string
		if err := rows.Scan(&e.ID, &e.ProjectID, &e.WorkItemID, &dateStr,
			&e.ManHours, &e.Quantity, &e.Region, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan daily entry: %w", err)
		}
		e.Date, err = time.Parse("2006-01-02", dateStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse entry date %q: %w", dateStr, err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
