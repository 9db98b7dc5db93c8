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

type ClientService struct {
	clientRepo   *repository.ClientRepository
	locationRepo *repository.LocationRepository
	storage      storage.Storage
	logger       *zap.Logger
}

func NewClientService(
	clientRepo *repository.ClientRepository,
	locationRepo *repository.LocationRepository,
	store storage.Storage,
	logger *zap.Logger,
) *ClientService {
	return &ClientService{
		clientRepo:   clientRepo,
		locationRepo: locationRepo,
		storage:      store,
		logger:       logger,
	}
}

func (s *ClientService) Create(ctx context.Context, req *domain.ClientRequest) (*domain.ClientDTO, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	client := &domain.Client{
		Name:          req.Name,
		ContactPerson: req.ContactPerson,
		Email:         req.Email,
		Phone:         req.Phone,
		Notes:         req.Notes,
	}

	if err := s.clientRepo.Create(ctx, client); err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	s.logger.Info("client created", zap.String("client_id", client.ID.String()))

	dto := mapper.ToClientDTO(client, 0, 0)
	return &dto, nil
}

// GetByID returns the client with its locations and per-location project counts
func (s *ClientService) GetByID(ctx context.Context, id uuid.UUID) (*domain.ClientDetailDTO, error) {
	client, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, ErrClientNotFound, "get client")
	}

	locationIDs := make([]uuid.UUID, len(client.Locations))
	for i := range client.Locations {
		locationIDs[i] = client.Locations[i].ID
	}
	projectCounts, err := s.locationRepo.ProjectCounts(ctx, locationIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to count projects: %w", err)
	}

	var totalProjects int64
	locations := make([]domain.LocationDTO, len(client.Locations))
	for i := range client.Locations {
		count := projectCounts[client.Locations[i].ID]
		totalProjects += count
		locations[i] = mapper.ToLocationDTO(&client.Locations[i], count)
	}

	return &domain.ClientDetailDTO{
		ClientDTO: mapper.ToClientDTO(client, int64(len(client.Locations)), totalProjects),
		Locations: locations,
	}, nil
}

func (s *ClientService) Update(ctx context.Context, id uuid.UUID, req *domain.ClientRequest) (*domain.ClientDTO, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	client, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, ErrClientNotFound, "get client")
	}

	client.Name = req.Name
	client.ContactPerson = req.ContactPerson
	client.Email = req.Email
	client.Phone = req.Phone
	client.Notes = req.Notes

	if err := s.clientRepo.Update(ctx, client); err != nil {
		return nil, fmt.Errorf("failed to update client: %w", err)
	}

	counts, err := s.counts(ctx, []uuid.UUID{client.ID})
	if err != nil {
		return nil, err
	}

	dto := mapper.ToClientDTO(client, counts.locations[client.ID], counts.projects[client.ID])
	return &dto, nil
}

// Delete removes the client with all its locations, projects and their
// child rows. Stored files of those projects are removed afterwards.
func (s *ClientService) Delete(ctx context.Context, id uuid.UUID) error {
	exists, err := s.clientRepo.Exists(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get client: %w", err)
	}
	if !exists {
		return ErrClientNotFound
	}

	paths, err := s.clientRepo.FilePaths(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to collect client files: %w", err)
	}

	if err := s.clientRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}

	removeBlobs(ctx, s.storage, s.logger, paths)

	s.logger.Info("client deleted",
		zap.String("client_id", id.String()),
		zap.Int("files_removed", len(paths)),
	)
	return nil
}

func (s *ClientService) List(ctx context.Context, page int, search string) (*domain.PaginatedResponse, error) {
	page = repository.ClampPage(page)

	clients, total, err := s.clientRepo.List(ctx, page, search)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}

	ids := make([]uuid.UUID, len(clients))
	for i := range clients {
		ids[i] = clients[i].ID
	}
	counts, err := s.counts(ctx, ids)
	if err != nil {
		return nil, err
	}

	dtos := make([]domain.ClientDTO, len(clients))
	for i := range clients {
		dtos[i] = mapper.ToClientDTO(&clients[i], counts.locations[clients[i].ID], counts.projects[clients[i].ID])
	}

	return domain.NewPaginatedResponse(dtos, total, page, repository.ClientPageSize), nil
}

// Options returns every client as an id/name pair ordered by name
func (s *ClientService) Options(ctx context.Context) ([]domain.ClientOptionDTO, error) {
	clients, err := s.clientRepo.Options(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list client options: %w", err)
	}

	dtos := make([]domain.ClientOptionDTO, len(clients))
	for i := range clients {
		dtos[i] = mapper.ToClientOptionDTO(&clients[i])
	}
	return dtos, nil
}

type clientCounts struct {
	locations map[uuid.UUID]int64
	projects  map[uuid.UUID]int64
}

func (s *ClientService) counts(ctx context.Context, ids []uuid.UUID) (*clientCounts, error) {
	locations, err := s.clientRepo.LocationCounts(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to count locations: %w", err)
	}
	projects, err := s.clientRepo.ProjectCounts(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to count projects: %w", err)
	}
	return &clientCounts{locations: locations, projects: projects}, nil
}
