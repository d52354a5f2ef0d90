package repository

import (
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/ebulut/progress-tracker/internal/models"
)

// ScheduleRepository handles monthly schedule target database operations.
type ScheduleRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewScheduleRepository creates a new schedule repository.
func NewScheduleRepository(db *sql.DB, logger *zap.Logger) *ScheduleRepository {
	return &ScheduleRepository{db: db, logger: logger}
}

// Replace swaps a project's schedule targets for the given set. Schedule
// uploads always describe the whole plan, so the old rows go first.
func (r *ScheduleRepository) Replace(tx *sql.Tx, projectID int64, targets []models.ScheduleTarget) error {
	exec := r.db.Exec
	if tx != nil {
		exec = tx.Exec
	}

	if _, err := exec(`DELETE FROM schedule_targets WHERE project_id = ?`, projectID); err != nil {
		r.logger.Error("Failed to clear schedule targets", zap.Int64("project_id", projectID), zap.Error(err))
		return fmt.Errorf("failed to clear schedule targets: %w", err)
	}

	query := `
		INSERT INTO schedule_targets (project_id, year, month, target_man_hours)
		VALUES (?, ?, ?, ?)
	`
	for _, t := range targets {
		if _, err := exec(query, projectID, t.Year, t.Month, t.TargetManHours); err != nil {
			r.logger.Error("Failed to insert schedule target",
				zap.Int("year", t.Year), zap.Int("month", t.Month), zap.Error(err))
			return fmt.Errorf("failed to insert schedule target: %w", err)
		}
	}
	return nil
}

// ListByProject returns a project's schedule targets in period order.
func (r *ScheduleRepository) ListByProject(projectID int64) ([]models.ScheduleTarget, error) {
	query := `
		SELECT id, project_id, year, month, target_man_hours, created_at
		FROM schedule_targets WHERE project_id = ? ORDER BY year, month
	`
	rows, err := r.db.Query(query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedule targets: %w", err)
	}
	defer rows.Close()

	var targets []models.ScheduleTarget
	for rows.Next() {
		var t models.ScheduleTarget
		if err := rows.Scan(&t.ID, &t.ProjectID, &t.Year, &t.Month, &t.TargetManHours, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan schedule target: %w", err)
		}
		targets = append(targets, t)
	}
	return targets, rows.Err()
}
