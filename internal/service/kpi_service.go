package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	apperrors "bdrdragon/internal/errors"
	"bdrdragon/internal/kpi"
	"bdrdragon/internal/model"
	"bdrdragon/internal/repository"
)

// ActualsReport is the summed activity of the target users so far in the period.
type ActualsReport struct {
	RangeType kpi.RangeType `json:"rangeType"`
	StartDate time.Time     `json:"startDate"`
	EndDate   time.Time     `json:"endDate"`
	Metrics   kpi.Metrics   `json:"metrics"`
}

// ForecastReport paces the target users' actuals against their scaled quotas.
type ForecastReport struct {
	RangeType        kpi.RangeType `json:"rangeType"`
	StartDate        time.Time     `json:"startDate"`
	EndDateExclusive time.Time     `json:"endDateExclusive"`
	ElapsedFraction  float64       `json:"elapsedFraction"`
	Kpis             kpi.Forecast  `json:"kpis"`
}

// SnapshotInput records one user's activity for one day. Date defaults to today.
type SnapshotInput struct {
	UserID               uuid.UUID `json:"userId" validate:"required"`
	Date                 string    `json:"date"`
	Calls                int       `json:"calls" validate:"gte=0"`
	Emails               int       `json:"emails" validate:"gte=0"`
	MeetingsBooked       int       `json:"meetingsBooked" validate:"gte=0"`
	MeetingsHeld         int       `json:"meetingsHeld" validate:"gte=0"`
	OpportunitiesCreated int       `json:"opportunitiesCreated" validate:"gte=0"`
	CleanOpportunities   int       `json:"cleanOpportunities" validate:"gte=0"`
}

// KpiService computes actuals and forecasts and ingests daily snapshots.
type KpiService interface {
	// ResolveTargets decides whose data the caller may see. A BASIC caller naming any
	// user is forbidden; an ADMIN naming nobody sees every active user.
	ResolveTargets(ctx context.Context, caller Caller, requestedUserID string) ([]uuid.UUID, error)
	Actuals(ctx context.Context, caller Caller, rangeType, requestedUserID string) (*ActualsReport, error)
	Forecast(ctx context.Context, caller Caller, rangeType, requestedUserID string) (*ForecastReport, error)
	RecordSnapshot(ctx context.Context, in SnapshotInput) (*model.KpiSnapshot, error)
}

type kpiService struct {
	userRepo repository.UserRepository
	kpiRepo  repository.KpiRepository
	clock    Clock
}

// NewKpiService creates a new KPI service.
func NewKpiService(userRepo repository.UserRepository, kpiRepo repository.KpiRepository, clock Clock) KpiService {
	return &kpiService{userRepo: userRepo, kpiRepo: kpiRepo, clock: clock}
}

func (s *kpiService) ResolveTargets(ctx context.Context, caller Caller, requestedUserID string) ([]uuid.UUID, error) {
	if !caller.IsAdmin() {
		if requestedUserID != "" {
			return nil, apperrors.ErrForbidden
		}
		return []uuid.UUID{caller.UserID}, nil
	}

	if requestedUserID == "" {
		ids, err := s.userRepo.ActiveIDs(ctx)
		if err != nil {
			return nil, fmt.Errorf("list active users: %w", err)
		}
		return ids, nil
	}

	id, err := uuid.Parse(requestedUserID)
	if err != nil {
		return nil, apperrors.ErrUserNotFound
	}
	if _, err := s.userRepo.FindByID(ctx, id); err != nil {
		if isNotFound(err) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return []uuid.UUID{id}, nil
}

func (s *kpiService) Actuals(ctx context.Context, caller Caller, rangeType, requestedUserID string) (*ActualsReport, error) {
	rt, err := kpi.ParseRangeType(rangeType)
	if err != nil {
		return nil, apperrors.ErrInvalidRangeType
	}
	targets, err := s.ResolveTargets(ctx, caller, requestedUserID)
	if err != nil {
		return nil, err
	}

	now := s.clock()
	period := kpi.ResolvePeriod(rt, now)
	actual, err := s.actuals(ctx, targets, period.Start, now)
	if err != nil {
		return nil, err
	}

	return &ActualsReport{
		RangeType: rt,
		StartDate: period.Start,
		EndDate:   now,
		Metrics:   actual,
	}, nil
}

func (s *kpiService) Forecast(ctx context.Context, caller Caller, rangeType, requestedUserID string) (*ForecastReport, error) {
	rt, err := kpi.ParseRangeType(rangeType)
	if err != nil {
		return nil, apperrors.ErrInvalidRangeType
	}
	targets, err := s.ResolveTargets(ctx, caller, requestedUserID)
	if err != nil {
		return nil, err
	}

	now := s.clock()
	period := kpi.ResolvePeriod(rt, now)
	actual, err := s.actuals(ctx, targets, period.Start, now)
	if err != nil {
		return nil, err
	}

	users, err := s.userRepo.FindByIDs(ctx, targets)
	if err != nil {
		return nil, fmt.Errorf("load quotas: %w", err)
	}
	quota := kpi.SumQuotas(users).Scale(rt, now)

	return &ForecastReport{
		RangeType:        rt,
		StartDate:        period.Start,
		EndDateExclusive: period.EndExclusive,
		ElapsedFraction:  period.ElapsedFraction,
		Kpis:             kpi.BuildForecast(actual, quota, period.ElapsedFraction),
	}, nil
}

func (s *kpiService) actuals(ctx context.Context, targets []uuid.UUID, from, to time.Time) (kpi.Metrics, error) {
	snapshots, err := s.kpiRepo.FindSnapshots(ctx, targets, from, to)
	if err != nil {
		return kpi.Metrics{}, fmt.Errorf("load snapshots: %w", err)
	}
	return kpi.SumSnapshots(snapshots), nil
}

// RecordSnapshot stores a day's counts. A second snapshot for the same user and day is a conflict.
func (s *kpiService) RecordSnapshot(ctx context.Context, in SnapshotInput) (*model.KpiSnapshot, error) {
	now := s.clock()
	day := midnight(now)
	if in.Date != "" {
		d, err := parseDate("date", in.Date, now.Location())
		if err != nil {
			return nil, err
		}
		day = midnight(d)
	}

	counts := []struct {
		name  string
		value int
	}{
		{"calls", in.Calls},
		{"emails", in.Emails},
		{"meetingsBooked", in.MeetingsBooked},
		{"meetingsHeld", in.MeetingsHeld},
		{"opportunitiesCreated", in.OpportunitiesCreated},
		{"cleanOpportunities", in.CleanOpportunities},
	}
	for _, c := range counts {
		if c.value < 0 {
			return nil, apperrors.NewValidationError(c.name, "must be zero or greater")
		}
	}

	if _, err := s.userRepo.FindByID(ctx, in.UserID); err != nil {
		if isNotFound(err) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	snapshot := &model.KpiSnapshot{
		UserID:               in.UserID,
		Date:                 day,
		Calls:                in.Calls,
		Emails:               in.Emails,
		MeetingsBooked:       in.MeetingsBooked,
		MeetingsHeld:         in.MeetingsHeld,
		OpportunitiesCreated: in.OpportunitiesCreated,
		CleanOpportunities:   in.CleanOpportunities,
	}
	if err := s.kpiRepo.Create(ctx, snapshot); err != nil {
		if isDuplicate(err) {
			return nil, apperrors.ErrSnapshotExists
		}
		return nil, fmt.Errorf("create snapshot: %w", err)
	}
	return snapshot, nil
}
