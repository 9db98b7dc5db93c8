package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/straye-as/facility-api/internal/domain"
	"github.com/straye-as/facility-api/internal/service"
	"go.uber.org/zap"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ProjectHandler struct {
	projectService *service.ProjectService
	reportService  *service.ReportService
	logger         *zap.Logger
}

func NewProjectHandler(projectService *service.ProjectService, reportService *service.ReportService, logger *zap.Logger) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		reportService:  reportService,
		logger:         logger,
	}
}

func projectFilters(r *http.Request) *domain.ProjectFilters {
	query := r.URL.Query()
	return domain.ParseProjectFilters(
		query.Get("search"),
		query.Get("status"),
		query.Get("type"),
		query.Get("clientId"),
	)
}

// List godoc
// @Summary List projects
// @Description Paginated list of projects, newest first, 15 per page, with counts per status
// @Tags Projects
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param search query string false "Matches title, location name or client name"
// @Param status query string false "Filter by status" Enums(quote, approved, in_progress, completed, invoiced)
// @Param type query string false "Filter by type" Enums(maintenance, recurring, renovation)
// @Param clientId query string false "Only projects at locations of this client"
// @Success 200 {object} domain.ProjectListResponse{data=[]domain.ProjectDTO}
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /projects [get]
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.projectService.List(r.Context(), parsePage(r), projectFilters(r))
	if err != nil {
		respondServiceError(w, h.logger, err, "list projects")
		return
	}

	result.WithLinks(r.URL)
	respondJSON(w, http.StatusOK, result)
}

// Export godoc
// @Summary Export projects
// @Description Spreadsheet of every project matching the list filters, with financials
// @Tags Projects
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param search query string false "Matches title, location name or client name"
// @Param status query string false "Filter by status"
// @Param type query string false "Filter by type"
// @Param clientId query string false "Only projects of this client"
// @Success 200 {file} file
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /projects/export [get]
func (h *ProjectHandler) Export(w http.ResponseWriter, r *http.Request) {
	buf, err := h.reportService.ExportProjects(r.Context(), projectFilters(r))
	if err != nil {
		respondServiceError(w, h.logger, err, "export projects")
		return
	}

	filename := h.reportService.ExportFilename(time.Now())
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// GetByID godoc
// @Summary Get project
// @Description Project with time entries, materials, notes, files, active activity types and financials
// @Tags Projects
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} domain.ProjectDetailDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /projects/{id} [get]
func (h *ProjectHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "id", "project")
	if !ok {
		return
	}

	project, err := h.projectService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err, "get project")
		return
	}

	respondJSON(w, http.StatusOK, project)
}

// Create godoc
// @Summary Create project
// @Description Type defaults to maintenance and status to quote
// @Tags Projects
// @Accept json
// @Produce json
// @Param request body domain.ProjectRequest true "Project data"
// @Success 201 {object} domain.ProjectDTO
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /projects [post]
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.ProjectRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	project, err := h.projectService.Create(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "create project")
		return
	}

	respondJSON(w, http.StatusCreated, project)
}

// Update godoc
// @Summary Update project
// @Tags Projects
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param request body domain.ProjectRequest true "Project data"
// @Success 200 {object} domain.ProjectDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /projects/{id} [put]
func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "id", "project")
	if !ok {
		return
	}

	var req domain.ProjectRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	project, err := h.projectService.Update(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "update project")
		return
	}

	respondJSON(w, http.StatusOK, project)
}

// Delete godoc
// @Summary Delete project
// @Description Deletes the project with its time entries, materials, notes and files
// @Tags Projects
// @Param id path string true "Project ID"
// @Success 204
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /projects/{id} [delete]
func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "id", "project")
	if !ok {
		return
	}

	if err := h.projectService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, h.logger, err, "delete project")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
