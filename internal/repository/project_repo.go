package repository

import (
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/ebulut/progress-tracker/internal/models"
)

// ProjectRepository handles project database operations.
type ProjectRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewProjectRepository creates a new project repository.
func NewProjectRepository(db *sql.DB, logger *zap.Logger) *ProjectRepository {
	return &ProjectRepository{db: db, logger: logger}
}

// Create inserts a new project.
func (r *ProjectRepository) Create(project *models.Project) error {
	query := `
		INSERT INTO projects (name, start_date, end_date)
		VALUES (?, ?, ?)
	`
	result, err := r.db.Exec(query, project.Name, project.StartDate, project.EndDate)
	if err != nil {
		r.logger.Error("Failed to create project", zap.Error(err))
		return fmt.Errorf("failed to create project: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	project.ID = id
	return nil
}

// GetByID retrieves a project by ID. Returns (nil, nil) when absent.
func (r *ProjectRepository) GetByID(id int64) (*models.Project, error) {
	query := `
		SELECT id, name, start_date, end_date, created_at, updated_at
		FROM projects WHERE id = ?
	`
	var p models.Project
	err := r.db.QueryRow(query, id).Scan(
		&p.ID, &p.Name, &p.StartDate, &p.EndDate, &p.CreatedAt, &p.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get project", zap.Int64("project_id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return &p, nil
}

// List returns all projects ordered by creation time.
func (r *ProjectRepository) List() ([]models.Project, error) {
	query := `
		SELECT id, name, start_date, end_date, created_at, updated_at
		FROM projects ORDER BY created_at
	`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		var p models.Project
		if err := rows.Scan(&p.ID, &p.Name, &p.StartDate, &p.EndDate, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}
