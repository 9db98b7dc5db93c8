package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/straye-as/facility-api/internal/domain"
	"gorm.io/gorm"
)

type FileRepository struct {
	db *gorm.DB
}

func NewFileRepository(db *gorm.DB) *FileRepository {
	return &FileRepository{db: db}
}

func (r *FileRepository) Create(ctx context.Context, file *domain.ProjectFile) error {
	return r.db.WithContext(ctx).Create(file).Error
}

// GetByProject loads a file only when it belongs to projectID
func (r *FileRepository) GetByProject(ctx context.Context, projectID, id uuid.UUID) (*domain.ProjectFile, error) {
	var file domain.ProjectFile
	err := r.db.WithContext(ctx).
		Where("id = ? AND project_id = ?", id, projectID).
		First(&file).Error
	if err != nil {
		return nil, err
	}
	return &file, nil
}

func (r *FileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.ProjectFile{}, "id = ?", id).Error
}
