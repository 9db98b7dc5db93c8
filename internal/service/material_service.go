package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/straye-as/facility-api/internal/domain"
	"github.com/straye-as/facility-api/internal/mapper"
	"github.com/straye-as/facility-api/internal/repository"
	"go.uber.org/zap"
)

// DefaultMaterialUnit is used when a material is recorded without a unit
const DefaultMaterialUnit = "stuks"

type MaterialService struct {
	materialRepo *repository.MaterialRepository
	projectRepo  *repository.ProjectRepository
	logger       *zap.Logger
}

func NewMaterialService(
	materialRepo *repository.MaterialRepository,
	projectRepo *repository.ProjectRepository,
	logger *zap.Logger,
) *MaterialService {
	return &MaterialService{
		materialRepo: materialRepo,
		projectRepo:  projectRepo,
		logger:       logger,
	}
}

// Create records a material. TotalCost is derived from quantity and unit cost.
func (s *MaterialService) Create(ctx context.Context, projectID uuid.UUID, req *domain.MaterialRequest) (*domain.MaterialDTO, error) {
	if err := requireProject(ctx, s.projectRepo, projectID); err != nil {
		return nil, err
	}

	material := &domain.ProjectMaterial{ProjectID: projectID}
	if err := applyMaterialRequest(material, req); err != nil {
		return nil, err
	}

	if err := s.materialRepo.Create(ctx, material); err != nil {
		return nil, fmt.Errorf("failed to create material: %w", err)
	}

	s.logger.Info("material created",
		zap.String("project_id", projectID.String()),
		zap.String("material_id", material.ID.String()),
		zap.String("total_cost", material.TotalCost.String()),
	)

	dto := mapper.ToMaterialDTO(material)
	return &dto, nil
}

func (s *MaterialService) Update(ctx context.Context, projectID, id uuid.UUID, req *domain.MaterialRequest) (*domain.MaterialDTO, error) {
	material, err := s.materialRepo.GetByProject(ctx, projectID, id)
	if err != nil {
		return nil, lookupError(err, ErrMaterialNotFound, "get material")
	}

	if err := applyMaterialRequest(material, req); err != nil {
		return nil, err
	}

	if err := s.materialRepo.Update(ctx, material); err != nil {
		return nil, fmt.Errorf("failed to update material: %w", err)
	}

	dto := mapper.ToMaterialDTO(material)
	return &dto, nil
}

func (s *MaterialService) Delete(ctx context.Context, projectID, id uuid.UUID) error {
	if _, err := s.materialRepo.GetByProject(ctx, projectID, id); err != nil {
		return lookupError(err, ErrMaterialNotFound, "get material")
	}

	if err := s.materialRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete material: %w", err)
	}
	return nil
}

func applyMaterialRequest(material *domain.ProjectMaterial, req *domain.MaterialRequest) error {
	if err := validateRequest(req); err != nil {
		return err
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return domain.NewValidationError("date", domain.GetValidationMessage("datetime"))
	}

	unit := req.Unit
	if unit == "" {
		unit = DefaultMaterialUnit
	}

	material.Name = req.Name
	material.Quantity = req.Quantity.Round(2)
	material.Unit = unit
	material.UnitCost = req.UnitCost.Round(2)
	material.Date = date
	material.Notes = req.Notes
	return nil
}
