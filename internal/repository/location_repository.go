package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/straye-as/facility-api/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LocationRepository struct {
	db *gorm.DB
}

func NewLocationRepository(db *gorm.DB) *LocationRepository {
	return &LocationRepository{db: db}
}

func (r *LocationRepository) Create(ctx context.Context, location *domain.Location) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(location).Error
}

// GetByID loads a location with its client and projects, newest project first
func (r *LocationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Location, error) {
	var location domain.Location
	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Projects", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC, id DESC")
		}).
		Where("id = ?", id).
		First(&location).Error
	if err != nil {
		return nil, err
	}
	return &location, nil
}

func (r *LocationRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Location{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *LocationRepository) Update(ctx context.Context, location *domain.Location) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(location).Error
}

// Delete removes the location and, through the cascade, its projects
func (r *LocationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Location{}, "id = ?", id).Error
}

// List returns a page of locations with their client. Search matches name,
// address, city and the client name.
func (r *LocationRepository) List(ctx context.Context, page int, search string, clientID *uuid.UUID) ([]domain.Location, int64, error) {
	var locations []domain.Location
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.Location{})

	if search != "" {
		searchPattern := likePattern(search)
		query = query.Where(
			ilike("name")+" OR "+ilike("address")+" OR "+ilike("city")+" OR client_id IN (?)",
			searchPattern, searchPattern, searchPattern,
			r.db.Model(&domain.Client{}).Select("id").Where(ilike("name"), searchPattern),
		)
	}

	if clientID != nil {
		query = query.Where("client_id = ?", *clientID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := paginate(query, page, LocationPageSize).
		Preload("Client").
		Order("name ASC, id ASC").
		Find(&locations).Error
	return locations, total, err
}

// ProjectCounts returns the number of projects per location
func (r *LocationRepository) ProjectCounts(ctx context.Context, locationIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	if len(locationIDs) == 0 {
		return map[uuid.UUID]int64{}, nil
	}
	counts, err := countGrouped(
		r.db.WithContext(ctx).Model(&domain.Project{}).Where("location_id IN ?", locationIDs),
		"location_id",
	)
	if err != nil {
		return nil, err
	}
	return countsByID(counts, locationIDs), nil
}

// FilePaths returns the storage paths of all files under the location's projects
func (r *LocationRepository) FilePaths(ctx context.Context, locationID uuid.UUID) ([]string, error) {
	var paths []string
	err := r.db.WithContext(ctx).
		Model(&domain.ProjectFile{}).
		Where("project_id IN (?)",
			r.db.Model(&domain.Project{}).Select("id").Where("location_id = ?", locationID),
		).
		Pluck("path", &paths).Error
	return paths, err
}
