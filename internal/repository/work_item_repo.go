package repository

import (
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/ebulut/progress-tracker/internal/importer"
	"github.com/ebulut/progress-tracker/internal/models"
)

// WorkItemRepository handles work item database operations.
type WorkItemRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewWorkItemRepository creates a new work item repository.
func NewWorkItemRepository(db *sql.DB, logger *zap.Logger) *WorkItemRepository {
	return &WorkItemRepository{db: db, logger: logger}
}

// Upsert inserts or replaces a work item by (project, budget code). Applying
// validated rows in order means a code duplicated within one upload ends up
// with the later row's values.
func (r *WorkItemRepository) Upsert(tx *sql.Tx, projectID int64, item importer.WorkItemRecord) error {
	query := `
		INSERT INTO work_items (
			project_id, budget_code, parent_code, category, name, unit,
			target_quantity, target_man_hours
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(project_id, budget_code) DO UPDATE SET
			parent_code = excluded.parent_code,
			category = excluded.category,
			name = excluded.name,
			unit = excluded.unit,
			target_quantity = excluded.target_quantity,
			target_man_hours = excluded.target_man_hours,
			updated_at = CURRENT_TIMESTAMP
	`
	var err error
	if tx != nil {
		_, err = tx.Exec(query, projectID, item.BudgetCode, item.ParentCode, item.Category,
			item.Name, item.Unit, item.TargetQuantity, item.TargetManHours)
	} else {
		_, err = r.db.Exec(query, projectID, item.BudgetCode, item.ParentCode, item.Category,
			item.Name, item.Unit, item.TargetQuantity, item.TargetManHours)
	}
	if err != nil {
		r.logger.Error("Failed to upsert work item",
			zap.String("budget_code", item.BudgetCode), zap.Error(err))
		return fmt.Errorf("failed to upsert work item: %w", err)
	}
	return nil
}

// ListByProject returns a project's work items ordered by budget code.
func (r *WorkItemRepository) ListByProject(projectID int64) ([]models.WorkItem, error) {
	query := `
		SELECT id, project_id, budget_code, parent_code, category, name, unit,
			target_quantity, target_man_hours, created_at, updated_at
		FROM work_items WHERE project_id = ? ORDER BY budget_code
	`
	rows, err := r.db.Query(query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list work items: %w", err)
	}
	defer rows.Close()

	var items []models.WorkItem
	for rows.Next() {
		var item models.WorkItem
		if err := rows.Scan(
			&item.ID, &item.ProjectID, &item.BudgetCode, &item.ParentCode,
			&item.Category, &item.Name, &item.Unit,
			&item.TargetQuantity, &item.TargetManHours,
			&item.CreatedAt, &item.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan work item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// CodeLookup builds the project-scoped budget code lookup the validators
// resolve foreign keys against.
func (r *WorkItemRepository) CodeLookup(projectID int64) (importer.CodeLookup, error) {
	query := `SELECT budget_code, id FROM work_items WHERE project_id = ?`
	rows, err := r.db.Query(query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to build code lookup: %w", err)
	}
	defer rows.Close()

	lookup := make(importer.CodeLookup)
	for rows.Next() {
		var code string
		var id int64
		if err := rows.Scan(&code, &id); err != nil {
			return nil, fmt.Errorf("failed to scan code lookup: %w", err)
		}
		lookup[code] = id
	}
	return lookup, rows.Err()
}
