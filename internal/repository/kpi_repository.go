package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"bdrdragon/internal/model"
)

// KpiRepository defines KPI snapshot persistence operations.
type KpiRepository interface {
	Create(ctx context.Context, snapshot *model.KpiSnapshot) error
	// FindSnapshots returns snapshots of the given users dated within [from, to].
	FindSnapshots(ctx context.Context, userIDs []uuid.UUID, from, to time.Time) ([]model.KpiSnapshot, error)
}

type kpiRepository struct {
	db *gorm.DB
}

// NewKpiRepository creates a new KPI repository.
func NewKpiRepository(db *gorm.DB) KpiRepository {
	return &kpiRepository{db: db}
}

func (r *kpiRepository) Create(ctx context.Context, snapshot *model.KpiSnapshot) error {
	return r.db.WithContext(ctx).Omit("User").Create(snapshot).Error
}

func (r *kpiRepository) FindSnapshots(ctx context.Context, userIDs []uuid.UUID, from, to time.Time) ([]model.KpiSnapshot, error) {
	var snapshots []model.KpiSnapshot
	if len(userIDs) == 0 {
		return snapshots, nil
	}
	if err := r.db.WithContext(ctx).
		Where("user_id IN ?", userIDs).
		Where("date >= ? AND date <= ?", from, to).
		Find(&snapshots).Error; err != nil {
		return nil, err
	}
	return snapshots, nil
}
