package repository

import (
	"context"

	"gorm.io/gorm"

	"bdrdragon/internal/model"
)

// IntegrationRepository persists the integration status row.
type IntegrationRepository interface {
	FindByScope(ctx context.Context, scope string) (*model.IntegrationStatus, error)
	Save(ctx context.Context, status *model.IntegrationStatus) error
}

type integrationRepository struct {
	db *gorm.DB
}

// NewIntegrationRepository creates a new integration status repository.
func NewIntegrationRepository(db *gorm.DB) IntegrationRepository {
	return &integrationRepository{db: db}
}

func (r *integrationRepository) FindByScope(ctx context.Context, scope string) (*model.IntegrationStatus, error) {
	var status model.IntegrationStatus
	if err := r.db.WithContext(ctx).Where("scope = ?", scope).
		Order("updated_at DESC").First(&status).Error; err != nil {
		return nil, err
	}
	return &status, nil
}

func (r *integrationRepository) Save(ctx context.Context, status *model.IntegrationStatus) error {
	return r.db.WithContext(ctx).Save(status).Error
}
