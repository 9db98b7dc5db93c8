package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/straye-as/facility-api/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ClientRepository struct {
	db *gorm.DB
}

func NewClientRepository(db *gorm.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

func (r *ClientRepository) Create(ctx context.Context, client *domain.Client) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(client).Error
}

// GetByID loads a client with its locations ordered by name
func (r *ClientRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Client, error) {
	var client domain.Client
	err := r.db.WithContext(ctx).
		Preload("Locations", func(db *gorm.DB) *gorm.DB {
			return db.Order("name ASC, id ASC")
		}).
		Where("id = ?", id).
		First(&client).Error
	if err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *ClientRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Client{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// Update saves every column. Associations are not touched.
func (r *ClientRepository) Update(ctx context.Context, client *domain.Client) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(client).Error
}

// Delete removes the client; locations and everything below them go with it
// through the foreign key cascade
func (r *ClientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Client{}, "id = ?", id).Error
}

func (r *ClientRepository) List(ctx context.Context, page int, search string) ([]domain.Client, int64, error) {
	var clients []domain.Client
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.Client{})

	if search != "" {
		searchPattern := likePattern(search)
		query = query.Where(
			ilike("name")+" OR "+ilike("contact_person")+" OR "+ilike("email"),
			searchPattern, searchPattern, searchPattern,
		)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := paginate(query, page, ClientPageSize).Order("name ASC, id ASC").Find(&clients).Error
	return clients, total, err
}

// Options returns every client with only id and name, ordered by name
func (r *ClientRepository) Options(ctx context.Context) ([]domain.Client, error) {
	var clients []domain.Client
	err := r.db.WithContext(ctx).
		Select("id", "name").
		Order("name ASC, id ASC").
		Find(&clients).Error
	return clients, err
}

// LocationCounts returns the number of locations per client
func (r *ClientRepository) LocationCounts(ctx context.Context, clientIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	if len(clientIDs) == 0 {
		return map[uuid.UUID]int64{}, nil
	}
	counts, err := countGrouped(
		r.db.WithContext(ctx).Model(&domain.Location{}).Where("client_id IN ?", clientIDs),
		"client_id",
	)
	if err != nil {
		return nil, err
	}
	return countsByID(counts, clientIDs), nil
}

// ProjectCounts returns the number of projects across all locations per client
func (r *ClientRepository) ProjectCounts(ctx context.Context, clientIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	if len(clientIDs) == 0 {
		return map[uuid.UUID]int64{}, nil
	}
	counts, err := countGrouped(
		r.db.WithContext(ctx).
			Table("projects").
			Joins("JOIN locations ON locations.id = projects.location_id").
			Where("locations.client_id IN ?", clientIDs),
		"locations.client_id",
	)
	if err != nil {
		return nil, err
	}
	return countsByID(counts, clientIDs), nil
}

// FilePaths returns the storage paths of all files under the client's projects
func (r *ClientRepository) FilePaths(ctx context.Context, clientID uuid.UUID) ([]string, error) {
	var paths []string
	err := r.db.WithContext(ctx).
		Model(&domain.ProjectFile{}).
		Where("project_id IN (?)",
			r.db.Table("projects").
				Select("projects.id").
				Joins("JOIN locations ON locations.id = projects.location_id").
				Where("locations.client_id = ?", clientID),
		).
		Pluck("path", &paths).Error
	return paths, err
}
