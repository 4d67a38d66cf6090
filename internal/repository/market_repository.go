package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"bdrdragon/internal/model"
)

// MarketRepository defines market persistence operations.
type MarketRepository interface {
	Create(ctx context.Context, market *model.Market) error
	Update(ctx context.Context, market *model.Market) error
	// Delete removes the market's user assignments and then the market, in one transaction.
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Market, error)
	List(ctx context.Context) ([]model.Market, error)
	CountByIDs(ctx context.Context, ids []uuid.UUID) (int64, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]model.Market, error)
}

type marketRepository struct {
	db *gorm.DB
}

// NewMarketRepository creates a new market repository.
func NewMarketRepository(db *gorm.DB) MarketRepository {
	return &marketRepository{db: db}
}

func (r *marketRepository) Create(ctx context.Context, market *model.Market) error {
	return r.db.WithContext(ctx).Create(market).Error
}

func (r *marketRepository) Update(ctx context.Context, market *model.Market) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(market).Error
}

func (r *marketRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("market_id = ?", id).Delete(&model.UserMarket{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&model.Market{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *marketRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Market, error) {
	var market model.Market
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&market).Error; err != nil {
		return nil, err
	}
	return &market, nil
}

// List returns all markets, newest first.
func (r *marketRepository) List(ctx context.Context) ([]model.Market, error) {
	var markets []model.Market
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&markets).Error; err != nil {
		return nil, err
	}
	return markets, nil
}

func (r *marketRepository) CountByIDs(ctx context.Context, ids []uuid.UUID) (int64, error) {
	var count int64
	if len(ids) == 0 {
		return 0, nil
	}
	if err := r.db.WithContext(ctx).Model(&model.Market{}).
		Where("id IN ?", ids).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *marketRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]model.Market, error) {
	var markets []model.Market
	if err := r.db.WithContext(ctx).
		Joins("JOIN user_markets ON user_markets.market_id = markets.id").
		Where("user_markets.user_id = ?", userID).
		Order("markets.name ASC").
		Find(&markets).Error; err != nil {
		return nil, err
	}
	return markets, nil
}
