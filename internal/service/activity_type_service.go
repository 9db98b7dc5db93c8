package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/straye-as/facility-api/internal/domain"
	"github.com/straye-as/facility-api/internal/mapper"
	"github.com/straye-as/facility-api/internal/repository"
	"go.uber.org/zap"
)

type ActivityTypeService struct {
	activityTypeRepo *repository.ActivityTypeRepository
	logger           *zap.Logger
}

func NewActivityTypeService(activityTypeRepo *repository.ActivityTypeRepository, logger *zap.Logger) *ActivityTypeService {
	return &ActivityTypeService{
		activityTypeRepo: activityTypeRepo,
		logger:           logger,
	}
}

func (s *ActivityTypeService) List(ctx context.Context, activeOnly bool) ([]domain.ActivityTypeDTO, error) {
	activityTypes, err := s.activityTypeRepo.List(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity types: %w", err)
	}

	dtos := make([]domain.ActivityTypeDTO, len(activityTypes))
	for i := range activityTypes {
		dtos[i] = mapper.ToActivityTypeDTO(&activityTypes[i])
	}
	return dtos, nil
}

// Create stores a new activity type. The rate defaults to 0 and the type is
// active unless stated otherwise.
func (s *ActivityTypeService) Create(ctx context.Context, req *domain.ActivityTypeRequest) (*domain.ActivityTypeDTO, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	activityType := &domain.ActivityType{
		DefaultHourlyRate: decimal.Zero,
		IsActive:          true,
	}
	applyActivityTypeRequest(activityType, req)

	if err := s.activityTypeRepo.Create(ctx, activityType); err != nil {
		return nil, fmt.Errorf("failed to create activity type: %w", err)
	}

	s.logger.Info("activity type created",
		zap.String("activity_type_id", activityType.ID.String()),
		zap.String("name", activityType.Name),
	)

	dto := mapper.ToActivityTypeDTO(activityType)
	return &dto, nil
}

func (s *ActivityTypeService) Update(ctx context.Context, id uuid.UUID, req *domain.ActivityTypeRequest) (*domain.ActivityTypeDTO, error) {
	activityType, err := s.activityTypeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, ErrActivityTypeNotFound, "get activity type")
	}

	if err := validateRequest(req); err != nil {
		return nil, err
	}
	applyActivityTypeRequest(activityType, req)

	if err := s.activityTypeRepo.Update(ctx, activityType); err != nil {
		return nil, fmt.Errorf("failed to update activity type: %w", err)
	}

	dto := mapper.ToActivityTypeDTO(activityType)
	return &dto, nil
}

// Delete refuses while any time entry references the activity type
func (s *ActivityTypeService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.activityTypeRepo.GetByID(ctx, id); err != nil {
		return lookupError(err, ErrActivityTypeNotFound, "get activity type")
	}

	inUse, err := s.activityTypeRepo.CountTimeEntries(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to count time entries: %w", err)
	}
	if inUse > 0 {
		return ErrActivityTypeInUse
	}

	if err := s.activityTypeRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete activity type: %w", err)
	}

	s.logger.Info("activity type deleted", zap.String("activity_type_id", id.String()))
	return nil
}

func applyActivityTypeRequest(activityType *domain.ActivityType, req *domain.ActivityTypeRequest) {
	activityType.Name = req.Name
	if req.DefaultHourlyRate != nil {
		activityType.DefaultHourlyRate = req.DefaultHourlyRate.Round(2)
	}
	if req.IsActive != nil {
		activityType.IsActive = *req.IsActive
	}
}
