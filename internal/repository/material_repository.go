package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/straye-as/facility-api/internal/domain"
	"gorm.io/gorm"
)

type MaterialRepository struct {
	db *gorm.DB
}

func NewMaterialRepository(db *gorm.DB) *MaterialRepository {
	return &MaterialRepository{db: db}
}

// Create inserts the material. The model hook sets TotalCost.
func (r *MaterialRepository) Create(ctx context.Context, material *domain.ProjectMaterial) error {
	return r.db.WithContext(ctx).Create(material).Error
}

// GetByProject loads a material only when it belongs to projectID
func (r *MaterialRepository) GetByProject(ctx context.Context, projectID, id uuid.UUID) (*domain.ProjectMaterial, error) {
	var material domain.ProjectMaterial
	err := r.db.WithContext(ctx).
		Where("id = ? AND project_id = ?", id, projectID).
		First(&material).Error
	if err != nil {
		return nil, err
	}
	return &material, nil
}

// Update saves the material through Save so the hook recomputes TotalCost
func (r *MaterialRepository) Update(ctx context.Context, material *domain.ProjectMaterial) error {
	return r.db.WithContext(ctx).Save(material).Error
}

func (r *MaterialRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.ProjectMaterial{}, "id = ?", id).Error
}
