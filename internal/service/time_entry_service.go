package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/straye-as/facility-api/internal/domain"
	"github.com/straye-as/facility-api/internal/mapper"
	"github.com/straye-as/facility-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type TimeEntryService struct {
	timeEntryRepo    *repository.TimeEntryRepository
	projectRepo      *repository.ProjectRepository
	activityTypeRepo *repository.ActivityTypeRepository
	logger           *zap.Logger
}

func NewTimeEntryService(
	timeEntryRepo *repository.TimeEntryRepository,
	projectRepo *repository.ProjectRepository,
	activityTypeRepo *repository.ActivityTypeRepository,
	logger *zap.Logger,
) *TimeEntryService {
	return &TimeEntryService{
		timeEntryRepo:    timeEntryRepo,
		projectRepo:      projectRepo,
		activityTypeRepo: activityTypeRepo,
		logger:           logger,
	}
}

func (s *TimeEntryService) Create(ctx context.Context, projectID uuid.UUID, req *domain.TimeEntryRequest) (*domain.TimeEntryDTO, error) {
	if err := requireProject(ctx, s.projectRepo, projectID); err != nil {
		return nil, err
	}

	entry := &domain.TimeEntry{ProjectID: projectID}
	if err := s.apply(ctx, entry, req); err != nil {
		return nil, err
	}

	if err := s.timeEntryRepo.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to create time entry: %w", err)
	}

	s.logger.Info("time entry created",
		zap.String("project_id", projectID.String()),
		zap.String("time_entry_id", entry.ID.String()),
		zap.String("hours", entry.Hours.String()),
	)

	dto := mapper.ToTimeEntryDTO(entry)
	return &dto, nil
}

func (s *TimeEntryService) Update(ctx context.Context, projectID, id uuid.UUID, req *domain.TimeEntryRequest) (*domain.TimeEntryDTO, error) {
	entry, err := s.timeEntryRepo.GetByProject(ctx, projectID, id)
	if err != nil {
		return nil, lookupError(err, ErrTimeEntryNotFound, "get time entry")
	}

	if err := s.apply(ctx, entry, req); err != nil {
		return nil, err
	}

	if err := s.timeEntryRepo.Update(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to update time entry: %w", err)
	}

	dto := mapper.ToTimeEntryDTO(entry)
	return &dto, nil
}

func (s *TimeEntryService) Delete(ctx context.Context, projectID, id uuid.UUID) error {
	if _, err := s.timeEntryRepo.GetByProject(ctx, projectID, id); err != nil {
		return lookupError(err, ErrTimeEntryNotFound, "get time entry")
	}

	if err := s.timeEntryRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete time entry: %w", err)
	}
	return nil
}

// apply validates req and copies it onto entry, loading the activity type
func (s *TimeEntryService) apply(ctx context.Context, entry *domain.TimeEntry, req *domain.TimeEntryRequest) error {
	if err := validateRequest(req); err != nil {
		return err
	}

	activityTypeID, err := parseID("activityTypeId", req.ActivityTypeID)
	if err != nil {
		return err
	}
	activityType, err := s.activityTypeRepo.GetByID(ctx, activityTypeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.NewValidationError("activityTypeId", "The selected activity type does not exist")
		}
		return fmt.Errorf("failed to get activity type: %w", err)
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return domain.NewValidationError("date", domain.GetValidationMessage("datetime"))
	}

	entry.ActivityTypeID = activityType.ID
	entry.ActivityType = activityType
	entry.Hours = req.Hours.Round(2)
	entry.HourlyRate = req.HourlyRate.Round(2)
	entry.Date = date
	entry.Notes = req.Notes
	return nil
}

// requireProject returns ErrProjectNotFound when the project does not exist
func requireProject(ctx context.Context, projectRepo *repository.ProjectRepository, projectID uuid.UUID) error {
	exists, err := projectRepo.Exists(ctx, projectID)
	if err != nil {
		return fmt.Errorf("failed to get project: %w", err)
	}
	if !exists {
		return ErrProjectNotFound
	}
	return nil
}
