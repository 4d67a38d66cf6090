package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	apperrors "bdrdragon/internal/errors"
	"bdrdragon/internal/model"
	"bdrdragon/internal/repository"
)

// MarketInput creates a market. StartDate accepts YYYY-MM-DD or RFC 3339.
type MarketInput struct {
	Name                  string  `json:"name" validate:"required"`
	GeographicDescription *string `json:"geographicDescription"`
	AccountExecutives     *string `json:"accountExecutives"`
	ManagerName           *string `json:"managerName"`
	StartDate             *string `json:"startDate"`
	Quotas
}

// MarketUpdateInput is a partial market update. An empty string clears an optional field.
type MarketUpdateInput struct {
	Name                  *string `json:"name"`
	GeographicDescription *string `json:"geographicDescription"`
	AccountExecutives     *string `json:"accountExecutives"`
	ManagerName           *string `json:"managerName"`
	StartDate             *string `json:"startDate"`
	Quotas
}

// MarketService manages sales territories.
type MarketService interface {
	List(ctx context.Context) ([]model.Market, error)
	Create(ctx context.Context, in MarketInput) (*model.Market, error)
	Update(ctx context.Context, id uuid.UUID, in MarketUpdateInput) (*model.Market, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ForUser(ctx context.Context, userID uuid.UUID) ([]model.Market, error)
}

type marketService struct {
	repo  repository.MarketRepository
	clock Clock
}

// NewMarketService creates a new market service.
func NewMarketService(repo repository.MarketRepository, clock Clock) MarketService {
	return &marketService{repo: repo, clock: clock}
}

func (s *marketService) List(ctx context.Context) ([]model.Market, error) {
	markets, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list markets: %w", err)
	}
	return markets, nil
}

func (s *marketService) Create(ctx context.Context, in MarketInput) (*model.Market, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("name", "is required")
	}
	if err := validateQuotas(in.Quotas); err != nil {
		return nil, err
	}

	market := &model.Market{
		Name:                  name,
		GeographicDescription: optionalString(in.GeographicDescription),
		AccountExecutives:     optionalString(in.AccountExecutives),
		ManagerName:           optionalString(in.ManagerName),
	}
	if in.StartDate != nil {
		start, err := optionalDate("startDate", *in.StartDate, s.clock().Location())
		if err != nil {
			return nil, err
		}
		market.StartDate = start
	}
	applyMarketQuotas(market, in.Quotas)

	if err := s.repo.Create(ctx, market); err != nil {
		return nil, fmt.Errorf("create market: %w", err)
	}
	return market, nil
}

func (s *marketService) Update(ctx context.Context, id uuid.UUID, in MarketUpdateInput) (*model.Market, error) {
	market, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.ErrMarketNotFound
		}
		return nil, fmt.Errorf("find market: %w", err)
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, apperrors.NewValidationError("name", "must not be empty")
		}
		market.Name = name
	}
	if in.GeographicDescription != nil {
		market.GeographicDescription = optionalString(in.GeographicDescription)
	}
	if in.AccountExecutives != nil {
		market.AccountExecutives = optionalString(in.AccountExecutives)
	}
	if in.ManagerName != nil {
		market.ManagerName = optionalString(in.ManagerName)
	}
	if in.StartDate != nil {
		start, err := optionalDate("startDate", *in.StartDate, s.clock().Location())
		if err != nil {
			return nil, err
		}
		market.StartDate = start
	}
	if err := validateQuotas(in.Quotas); err != nil {
		return nil, err
	}
	applyMarketQuotas(market, in.Quotas)

	if err := s.repo.Update(ctx, market); err != nil {
		return nil, fmt.Errorf("update market: %w", err)
	}
	return market, nil
}

// Delete removes the market together with every user assignment referencing it.
func (s *marketService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if isNotFound(err) {
			return apperrors.ErrMarketNotFound
		}
		return fmt.Errorf("delete market: %w", err)
	}
	return nil
}

func (s *marketService) ForUser(ctx context.Context, userID uuid.UUID) ([]model.Market, error) {
	markets, err := s.repo.ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list user markets: %w", err)
	}
	return markets, nil
}

func applyMarketQuotas(m *model.Market, q Quotas) {
	if q.QuotaCalls != nil {
		m.QuotaCalls = *q.QuotaCalls
	}
	if q.QuotaEmails != nil {
		m.QuotaEmails = *q.QuotaEmails
	}
	if q.QuotaMeetingsBooked != nil {
		m.QuotaMeetingsBooked = *q.QuotaMeetingsBooked
	}
	if q.QuotaCleanOpportunities != nil {
		m.QuotaCleanOpportunities = *q.QuotaCleanOpportunities
	}
}
