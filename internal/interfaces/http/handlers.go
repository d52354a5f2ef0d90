package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ebulut/progress-tracker/internal/excel"
	"github.com/ebulut/progress-tracker/internal/export"
	"github.com/ebulut/progress-tracker/internal/importer"
	"github.com/ebulut/progress-tracker/internal/service"
)

// Handlers contains all HTTP request handlers.
type Handlers struct {
	projectService *service.ProjectService
	importService  *service.ImportService
	reportService  *service.ReportService
	exporter       *export.ReportExporter
	maxUploadBytes int64
	logger         Logger
}

// NewHandlers creates a new Handlers instance. maxUploadBytes caps the size
// of one spreadsheet upload; zero means no cap.
func NewHandlers(
	projectService *service.ProjectService,
	importService *service.ImportService,
	reportService *service.ReportService,
	exporter *export.ReportExporter,
	maxUploadBytes int64,
	logger Logger,
) *Handlers {
	return &Handlers{
		projectService: projectService,
		importService:  importService,
		reportService:  reportService,
		exporter:       exporter,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

// Response represents a standard JSON error response.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// importResponse is the diagnostic shape returned for every upload, clean or
// not, plus whether the valid items were committed.
type importResponse[T any] struct {
	ValidItems []T                        `json:"validItems"`
	Errors     []importer.ValidationError `json:"errors"`
	Warnings   []string                   `json:"warnings"`
	Committed  bool                       `json:"committed"`
}

// CreateProjectRequest is the POST /api/v1/projects payload. Dates are
// optional "2006-01-02" strings.
type CreateProjectRequest struct {
	Name      string `json:"name" binding:"required"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// HealthCheck handles GET /health.
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().Format(time.RFC3339),
		Version:   "1.0.0",
	})
}

// CreateProject handles POST /api/v1/projects.
func (h *Handlers) CreateProject(c *gin.Context) {
	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid request body"})
		return
	}

	startDate, err := parseOptionalDate(req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid start_date, expected YYYY-MM-DD"})
		return
	}
	endDate, err := parseOptionalDate(req.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid end_date, expected YYYY-MM-DD"})
		return
	}

	project, err := h.projectService.Create(req.Name, startDate, endDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}
	c.JSON(http.StatusCreated, Response{Success: true, Data: project})
}

// ListProjects handles GET /api/v1/projects.
func (h *Handlers) ListProjects(c *gin.Context) {
	projects, err := h.projectService.List()
	if err != nil {
		h.logger.Error("Failed to list projects", "error", err)
		c.JSON(http.StatusInternalServerError, Response{Success: false, Error: "failed to list projects"})
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: projects})
}

func parseOptionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Import handles POST /api/v1/projects/:id/import/:kind. The commit query
// parameter carries the caller's partial-success policy: "auto" commits a
// clean batch, anything else only validates.
func (h *Handlers) Import(c *gin.Context) {
	projectID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid project id"})
		return
	}
	autoCommit := c.Query("commit") == "auto"

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "missing file upload"})
		return
	}
	if h.maxUploadBytes > 0 && fileHeader.Size > h.maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, Response{
			Success: false,
			Error:   fmt.Sprintf("file exceeds upload limit of %d bytes", h.maxUploadBytes),
		})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "unable to open upload"})
		return
	}
	defer file.Close()

	kind := importer.ImportKind(c.Param("kind"))
	switch kind {
	case importer.KindWorkItem:
		outcome, err := h.importService.ImportWorkItems(projectID, file, autoCommit)
		respondImport(c, outcome, err, h.logger)
	case importer.KindProgress:
		outcome, err := h.importService.ImportProgress(projectID, file, autoCommit)
		respondImport(c, outcome, err, h.logger)
	case importer.KindManHours:
		outcome, err := h.importService.ImportManHours(projectID, file, autoCommit)
		respondImport(c, outcome, err, h.logger)
	case importer.KindWorkSchedule:
		outcome, err := h.importService.ImportSchedule(projectID, file, autoCommit)
		respondImport(c, outcome, err, h.logger)
	default:
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   fmt.Sprintf("unknown import kind: %s", kind),
		})
	}
}

// respondImport shapes one import outcome. A workbook that could not be
// decoded at all is the only whole-batch failure.
func respondImport[T any](c *gin.Context, outcome *service.Outcome[T], err error, logger Logger) {
	if err != nil {
		if errors.Is(err, excel.ErrUnreadableWorkbook) {
			c.JSON(http.StatusBadRequest, Response{Success: false, Error: err.Error()})
			return
		}
		logger.Error("Import failed", "error", err)
		c.JSON(http.StatusInternalServerError, Response{Success: false, Error: "import failed"})
		return
	}
	c.JSON(http.StatusOK, importResponse[T]{
		ValidItems: outcome.Result.ValidItems,
		Errors:     outcome.Result.Errors,
		Warnings:   outcome.Result.Warnings,
		Committed:  outcome.Committed,
	})
}

// GetReport handles GET /api/v1/projects/:id/report.
func (h *Handlers) GetReport(c *gin.Context) {
	projectID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid project id"})
		return
	}

	r, err := h.reportService.BuildReport(projectID)
	if err != nil {
		h.logger.Error("Failed to build report", "project_id", projectID, "error", err)
		c.JSON(http.StatusInternalServerError, Response{Success: false, Error: "failed to build report"})
		return
	}
	c.JSON(http.StatusOK, r)
}

// ExportReport handles GET /api/v1/projects/:id/report/export.
func (h *Handlers) ExportReport(c *gin.Context) {
	projectID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid project id"})
		return
	}

	r, err := h.reportService.BuildReport(projectID)
	if err != nil {
		h.logger.Error("Failed to build report", "project_id", projectID, "error", err)
		c.JSON(http.StatusInternalServerError, Response{Success: false, Error: "failed to build report"})
		return
	}

	data, err := h.exporter.Export(fmt.Sprintf("project-%d", projectID), r)
	if err != nil {
		h.logger.Error("Failed to export report", "project_id", projectID, "error", err)
		c.JSON(http.StatusInternalServerError, Response{Success: false, Error: "failed to export report"})
		return
	}

	filename := fmt.Sprintf("ilerleme-raporu-%d.xlsx", projectID)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
