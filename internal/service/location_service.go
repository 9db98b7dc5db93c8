package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/straye-as/facility-api/internal/domain"
	"github.com/straye-as/facility-api/internal/mapper"
	"github.com/straye-as/facility-api/internal/repository"
	"github.com/straye-as/facility-api/internal/storage"
	"go.uber.org/zap"
)

type LocationService struct {
	locationRepo *repository.LocationRepository
	clientRepo   *repository.ClientRepository
	storage      storage.Storage
	logger       *zap.Logger
}

func NewLocationService(
	locationRepo *repository.LocationRepository,
	clientRepo *repository.ClientRepository,
	store storage.Storage,
	logger *zap.Logger,
) *LocationService {
	return &LocationService{
		locationRepo: locationRepo,
		clientRepo:   clientRepo,
		storage:      store,
		logger:       logger,
	}
}

func (s *LocationService) Create(ctx context.Context, req *domain.LocationRequest) (*domain.LocationDTO, error) {
	clientID, err := s.checkRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	location := &domain.Location{ClientID: clientID}
	applyLocationRequest(location, req)

	if err := s.locationRepo.Create(ctx, location); err != nil {
		return nil, fmt.Errorf("failed to create location: %w", err)
	}

	s.logger.Info("location created",
		zap.String("location_id", location.ID.String()),
		zap.String("client_id", clientID.String()),
	)

	return s.reload(ctx, location.ID)
}

func (s *LocationService) GetByID(ctx context.Context, id uuid.UUID) (*domain.LocationDetailDTO, error) {
	location, err := s.locationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, ErrLocationNotFound, "get location")
	}

	projects := make([]domain.ProjectDTO, len(location.Projects))
	for i := range location.Projects {
		projects[i] = mapper.ToProjectDTO(&location.Projects[i])
	}

	return &domain.LocationDetailDTO{
		LocationDTO: mapper.ToLocationDTO(location, int64(len(location.Projects))),
		Projects:    projects,
	}, nil
}

func (s *LocationService) Update(ctx context.Context, id uuid.UUID, req *domain.LocationRequest) (*domain.LocationDTO, error) {
	location, err := s.locationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, ErrLocationNotFound, "get location")
	}

	clientID, err := s.checkRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	location.ClientID = clientID
	location.Client = nil
	location.Projects = nil
	applyLocationRequest(location, req)

	if err := s.locationRepo.Update(ctx, location); err != nil {
		return nil, fmt.Errorf("failed to update location: %w", err)
	}

	return s.reload(ctx, location.ID)
}

// Delete removes the location with its projects and their child rows
func (s *LocationService) Delete(ctx context.Context, id uuid.UUID) error {
	exists, err := s.locationRepo.Exists(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get location: %w", err)
	}
	if !exists {
		return ErrLocationNotFound
	}

	paths, err := s.locationRepo.FilePaths(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to collect location files: %w", err)
	}

	if err := s.locationRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete location: %w", err)
	}

	removeBlobs(ctx, s.storage, s.logger, paths)

	s.logger.Info("location deleted",
		zap.String("location_id", id.String()),
		zap.Int("files_removed", len(paths)),
	)
	return nil
}

func (s *LocationService) List(ctx context.Context, page int, search string, clientID *uuid.UUID) (*domain.PaginatedResponse, error) {
	page = repository.ClampPage(page)

	locations, total, err := s.locationRepo.List(ctx, page, search, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}

	ids := make([]uuid.UUID, len(locations))
	for i := range locations {
		ids[i] = locations[i].ID
	}
	counts, err := s.locationRepo.ProjectCounts(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to count projects: %w", err)
	}

	dtos := make([]domain.LocationDTO, len(locations))
	for i := range locations {
		dtos[i] = mapper.ToLocationDTO(&locations[i], counts[locations[i].ID])
	}

	return domain.NewPaginatedResponse(dtos, total, page, repository.LocationPageSize), nil
}

// checkRequest validates the request and verifies the referenced client exists
func (s *LocationService) checkRequest(ctx context.Context, req *domain.LocationRequest) (uuid.UUID, error) {
	if err := validateRequest(req); err != nil {
		return uuid.Nil, err
	}

	clientID, err := parseID("clientId", req.ClientID)
	if err != nil {
		return uuid.Nil, err
	}
	exists, err := s.clientRepo.Exists(ctx, clientID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to check client: %w", err)
	}
	if !exists {
		return uuid.Nil, domain.NewValidationError("clientId", "The selected client does not exist")
	}
	return clientID, nil
}

func (s *LocationService) reload(ctx context.Context, id uuid.UUID) (*domain.LocationDTO, error) {
	location, err := s.locationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, ErrLocationNotFound, "get location")
	}
	dto := mapper.ToLocationDTO(location, int64(len(location.Projects)))
	return &dto, nil
}

func applyLocationRequest(location *domain.Location, req *domain.LocationRequest) {
	location.Name = req.Name
	location.Address = req.Address
	location.PostalCode = req.PostalCode
	location.City = req.City
	location.BuildingType = domain.BuildingType(req.BuildingType)
	location.Notes = req.Notes
}
