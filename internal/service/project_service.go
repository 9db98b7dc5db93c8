package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/straye-as/facility-api/internal/domain"
	"github.com/straye-as/facility-api/internal/mapper"
	"github.com/straye-as/facility-api/internal/repository"
	"github.com/straye-as/facility-api/internal/storage"
	"go.uber.org/zap"
)

type ProjectService struct {
	projectRepo      *repository.ProjectRepository
	locationRepo     *repository.LocationRepository
	activityTypeRepo *repository.ActivityTypeRepository
	storage          storage.Storage
	logger           *zap.Logger
}

func NewProjectService(
	projectRepo *repository.ProjectRepository,
	locationRepo *repository.LocationRepository,
	activityTypeRepo *repository.ActivityTypeRepository,
	store storage.Storage,
	logger *zap.Logger,
) *ProjectService {
	return &ProjectService{
		projectRepo:      projectRepo,
		locationRepo:     locationRepo,
		activityTypeRepo: activityTypeRepo,
		storage:          store,
		logger:           logger,
	}
}

// Create stores a new project. Type defaults to maintenance and status to quote.
func (s *ProjectService) Create(ctx context.Context, req *domain.ProjectRequest) (*domain.ProjectDTO, error) {
	project := &domain.Project{
		Type:   domain.ProjectTypeMaintenance,
		Status: domain.ProjectStatusQuote,
	}
	if err := s.apply(ctx, project, req); err != nil {
		return nil, err
	}

	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	s.logger.Info("project created",
		zap.String("project_id", project.ID.String()),
		zap.String("location_id", project.LocationID.String()),
		zap.String("status", string(project.Status)),
	)

	return s.reload(ctx, project.ID)
}

// GetByID returns the project with all child rows, the active activity types
// and the derived financials
func (s *ProjectService) GetByID(ctx context.Context, id uuid.UUID) (*domain.ProjectDetailDTO, error) {
	project, err := s.projectRepo.GetDetail(ctx, id)
	if err != nil {
		return nil, lookupError(err, ErrProjectNotFound, "get project")
	}

	activityTypes, err := s.activityTypeRepo.List(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity types: %w", err)
	}

	dto := mapper.ToProjectDetailDTO(project, activityTypes, s.storage.URL)
	return &dto, nil
}

// Update replaces the project fields. An empty type or status keeps the
// current value.
func (s *ProjectService) Update(ctx context.Context, id uuid.UUID, req *domain.ProjectRequest) (*domain.ProjectDTO, error) {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, ErrProjectNotFound, "get project")
	}
	project.Location = nil

	previousStatus := project.Status
	if err := s.apply(ctx, project, req); err != nil {
		return nil, err
	}

	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	if previousStatus != project.Status {
		s.logger.Info("project status changed",
			zap.String("project_id", project.ID.String()),
			zap.String("from", string(previousStatus)),
			zap.String("to", string(project.Status)),
		)
	}

	return s.reload(ctx, project.ID)
}

// Delete removes the project with its time entries, materials, notes and
// files. Stored files are removed after the rows are gone.
func (s *ProjectService) Delete(ctx context.Context, id uuid.UUID) error {
	exists, err := s.projectRepo.Exists(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get project: %w", err)
	}
	if !exists {
		return ErrProjectNotFound
	}

	paths, err := s.projectRepo.FilePaths(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to collect project files: %w", err)
	}

	if err := s.projectRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	removeBlobs(ctx, s.storage, s.logger, paths)

	s.logger.Info("project deleted",
		zap.String("project_id", id.String()),
		zap.Int("files_removed", len(paths)),
	)
	return nil
}

// List returns a page of projects plus the number of projects per status
func (s *ProjectService) List(ctx context.Context, page int, filters *domain.ProjectFilters) (*domain.ProjectListResponse, error) {
	page = repository.ClampPage(page)

	projects, total, err := s.projectRepo.List(ctx, page, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	counts, err := s.projectRepo.StatusCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count projects: %w", err)
	}

	dtos := make([]domain.ProjectDTO, len(projects))
	for i := range projects {
		dtos[i] = mapper.ToProjectDTO(&projects[i])
	}

	return &domain.ProjectListResponse{
		PaginatedResponse: *domain.NewPaginatedResponse(dtos, total, page, repository.ProjectPageSize),
		StatusCounts:      counts,
	}, nil
}

func (s *ProjectService) apply(ctx context.Context, project *domain.Project, req *domain.ProjectRequest) error {
	if err := validateRequest(req); err != nil {
		return err
	}

	locationID, err := parseID("locationId", req.LocationID)
	if err != nil {
		return err
	}
	exists, err := s.locationRepo.Exists(ctx, locationID)
	if err != nil {
		return fmt.Errorf("failed to check location: %w", err)
	}
	if !exists {
		return domain.NewValidationError("locationId", "The selected location does not exist")
	}

	startDate, err := parseOptionalDate(req.StartDate)
	if err != nil {
		return domain.NewValidationError("startDate", domain.GetValidationMessage("datetime"))
	}
	dueDate, err := parseOptionalDate(req.DueDate)
	if err != nil {
		return domain.NewValidationError("dueDate", domain.GetValidationMessage("datetime"))
	}

	project.LocationID = locationID
	project.Title = req.Title
	project.Description = req.Description
	if req.Type != "" {
		project.Type = domain.ProjectType(req.Type)
	}
	if req.Status != "" {
		project.Status = domain.ProjectStatus(req.Status)
	}
	project.QuotedPrice = decimal.NullDecimal{}
	if req.QuotedPrice != nil {
		project.QuotedPrice = decimal.NewNullDecimal(req.QuotedPrice.Round(2))
	}
	project.StartDate = startDate
	project.DueDate = dueDate
	return nil
}

func (s *ProjectService) reload(ctx context.Context, id uuid.UUID) (*domain.ProjectDTO, error) {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, ErrProjectNotFound, "get project")
	}
	dto := mapper.ToProjectDTO(project)
	return &dto, nil
}
