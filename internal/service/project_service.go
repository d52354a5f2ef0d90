package service

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ebulut/progress-tracker/internal/models"
)

// ProjectCatalog is the project write/list surface the project flow needs.
type ProjectCatalog interface {
	Create(project *models.Project) error
	List() ([]models.Project, error)
}

// ProjectService manages the project catalog. Every import and report is
// scoped to a project created here.
type ProjectService struct {
	projects ProjectCatalog
	logger   *zap.Logger
}

// NewProjectService creates a new project service.
func NewProjectService(projects ProjectCatalog, logger *zap.Logger) *ProjectService {
	return &ProjectService{projects: projects, logger: logger}
}

// Create registers a new project. Start and end dates are optional; when both
// are present the report engine spreads the planned man-hours over that span.
func (s *ProjectService) Create(name string, startDate, endDate *time.Time) (*models.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("project name is required")
	}
	if startDate != nil && endDate != nil && endDate.Before(*startDate) {
		return nil, fmt.Errorf("project end date precedes start date")
	}

	project := &models.Project{
		Name:      name,
		StartDate: startDate,
		EndDate:   endDate,
	}
	if err := s.projects.Create(project); err != nil {
		return nil, err
	}

	s.logger.Info("Project created",
		zap.Int64("project_id", project.ID),
		zap.String("name", project.Name))
	return project, nil
}

// List returns all projects.
func (s *ProjectService) List() ([]models.Project, error) {
	return s.projects.List()
}
