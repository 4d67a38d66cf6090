package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"bdrdragon/internal/cache"
	apperrors "bdrdragon/internal/errors"
	"bdrdragon/internal/model"
	"bdrdragon/internal/repository"
)

const userCacheTTL = 5 * time.Minute

// UserWithMarkets is a user profile plus its assigned markets.
type UserWithMarkets struct {
	model.User
	Markets []model.MarketSummary `json:"markets"`
}

// Quotas carries optional monthly quota values.
type Quotas struct {
	QuotaCalls              *int `json:"quotaCalls" validate:"omitempty,gte=0"`
	QuotaEmails             *int `json:"quotaEmails" validate:"omitempty,gte=0"`
	QuotaMeetingsBooked     *int `json:"quotaMeetingsBooked" validate:"omitempty,gte=0"`
	QuotaCleanOpportunities *int `json:"quotaCleanOpportunities" validate:"omitempty,gte=0"`
}

// CreateUserInput describes a new user created by an admin.
type CreateUserInput struct {
	Email        string      `json:"email" validate:"required,email"`
	Role         model.Role  `json:"role" validate:"required,oneof=ADMIN BASIC"`
	FirstName    *string     `json:"firstName"`
	LastName     *string     `json:"lastName"`
	TempPassword string      `json:"tempPassword" validate:"required,min=8"`
	MarketIDs    []uuid.UUID `json:"marketIds"`
	Quotas
}

// RegisterInput describes a user created through the register endpoint.
type RegisterInput struct {
	Email        string     `json:"email" validate:"required,email"`
	Role         model.Role `json:"role"`
	FirstName    *string    `json:"firstName"`
	LastName     *string    `json:"lastName"`
	TempPassword string     `json:"tempPassword" validate:"required,min=8"`
}

// UpdateUserInput is a partial admin update. Nil fields are left unchanged; a non-nil
// MarketIDs replaces the whole assignment set.
type UpdateUserInput struct {
	Role      *model.Role  `json:"role" validate:"omitempty,oneof=ADMIN BASIC"`
	IsActive  *bool        `json:"isActive"`
	FirstName *string      `json:"firstName"`
	LastName  *string      `json:"lastName"`
	MarketIDs *[]uuid.UUID `json:"marketIds"`
	Quotas
}

// UpdateProfileInput renames the caller.
type UpdateProfileInput struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
}

// UserService exposes user profile and administration operations.
type UserService interface {
	Me(ctx context.Context, userID uuid.UUID) (*model.User, error)
	UpdateMe(ctx context.Context, caller Caller, in UpdateProfileInput) (*model.User, error)

	List(ctx context.Context) ([]UserWithMarkets, error)
	Create(ctx context.Context, in CreateUserInput) (*UserWithMarkets, error)
	Register(ctx context.Context, in RegisterInput) (*model.User, error)
	Update(ctx context.Context, id uuid.UUID, in UpdateUserInput) (*UserWithMarkets, error)
	SetPassword(ctx context.Context, id uuid.UUID, newPassword string) error
}

type userService struct {
	repo       repository.UserRepository
	marketRepo repository.MarketRepository
	cache      *cache.Client
}

// NewUserService builds a UserService with repositories and cache.
func NewUserService(repo repository.UserRepository, marketRepo repository.MarketRepository, cache *cache.Client) UserService {
	return &userService{repo: repo, marketRepo: marketRepo, cache: cache}
}

func (s *userService) cacheKey(id uuid.UUID) string {
	return "user:" + id.String()
}

func (s *userService) Me(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	var cached model.User
	if s.cache.GetJSON(ctx, s.cacheKey(userID), &cached) {
		return &cached, nil
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	_ = s.cache.SetJSON(ctx, s.cacheKey(userID), user, userCacheTTL)
	return user, nil
}

// UpdateMe is restricted to admins.
func (s *userService) UpdateMe(ctx context.Context, caller Caller, in UpdateProfileInput) (*model.User, error) {
	if !caller.IsAdmin() {
		return nil, apperrors.ErrForbidden
	}
	first := strings.TrimSpace(in.FirstName)
	if first == "" {
		return nil, apperrors.NewValidationError("firstName", "is required")
	}
	last := strings.TrimSpace(in.LastName)
	if last == "" {
		return nil, apperrors.NewValidationError("lastName", "is required")
	}

	user, err := s.repo.FindByID(ctx, caller.UserID)
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	user.FirstName = &first
	user.LastName = &last
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(user.ID))
	return user, nil
}

func (s *userService) List(ctx context.Context) ([]UserWithMarkets, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	out := make([]UserWithMarkets, 0, len(users))
	for i := range users {
		out = append(out, withMarkets(&users[i]))
	}
	return out, nil
}

func (s *userService) Create(ctx context.Context, in CreateUserInput) (*UserWithMarkets, error) {
	if !in.Role.Valid() {
		return nil, apperrors.NewValidationError("role", "must be ADMIN or BASIC")
	}
	if err := validateQuotas(in.Quotas); err != nil {
		return nil, err
	}

	marketIDs := uniqueIDs(in.MarketIDs)
	if err := s.checkMarkets(ctx, marketIDs); err != nil {
		return nil, err
	}

	user := &model.User{
		Email:     strings.TrimSpace(in.Email),
		Role:      in.Role,
		IsActive:  true,
		FirstName: optionalString(in.FirstName),
		LastName:  optionalString(in.LastName),
	}
	applyQuotas(user, in.Quotas)

	if err := s.create(ctx, user, in.TempPassword, marketIDs); err != nil {
		return nil, err
	}

	created, err := s.repo.FindByIDWithMarkets(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("reload user: %w", err)
	}
	result := withMarkets(created)
	return &result, nil
}

// Register creates a user without markets or quotas. Any role other than ADMIN becomes BASIC.
func (s *userService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	role := model.RoleBasic
	if in.Role == model.RoleAdmin {
		role = model.RoleAdmin
	}

	user := &model.User{
		Email:     strings.TrimSpace(in.Email),
		Role:      role,
		IsActive:  true,
		FirstName: optionalString(in.FirstName),
		LastName:  optionalString(in.LastName),
	}
	if err := s.create(ctx, user, in.TempPassword, nil); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) create(ctx context.Context, user *model.User, password string, marketIDs []uuid.UUID) error {
	if user.Email == "" {
		return apperrors.NewValidationError("email", "is required")
	}

	_, err := s.repo.FindByEmail(ctx, user.Email)
	if err == nil {
		return apperrors.ErrEmailTaken
	}
	if !isNotFound(err) {
		return fmt.Errorf("check email: %w", err)
	}

	hash, err := hashPassword("tempPassword", password)
	if err != nil {
		return err
	}
	user.PasswordHash = hash

	if err := s.repo.Create(ctx, user, marketIDs); err != nil {
		if isDuplicate(err) {
			return apperrors.ErrEmailTaken
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (s *userService) Update(ctx context.Context, id uuid.UUID, in UpdateUserInput) (*UserWithMarkets, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if in.Role != nil {
		if !in.Role.Valid() {
			return nil, apperrors.NewValidationError("role", "must be ADMIN or BASIC")
		}
		user.Role = *in.Role
	}
	if in.IsActive != nil {
		user.IsActive = *in.IsActive
	}
	if in.FirstName != nil {
		user.FirstName = optionalString(in.FirstName)
	}
	if in.LastName != nil {
		user.LastName = optionalString(in.LastName)
	}
	if err := validateQuotas(in.Quotas); err != nil {
		return nil, err
	}
	applyQuotas(user, in.Quotas)

	if in.MarketIDs != nil {
		marketIDs := uniqueIDs(*in.MarketIDs)
		if err := s.checkMarkets(ctx, marketIDs); err != nil {
			return nil, err
		}
		err = s.repo.UpdateWithMarkets(ctx, user, marketIDs)
	} else {
		err = s.repo.Update(ctx, user)
	}
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))

	updated, err := s.repo.FindByIDWithMarkets(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reload user: %w", err)
	}
	result := withMarkets(updated)
	return &result, nil
}

func (s *userService) SetPassword(ctx context.Context, id uuid.UUID, newPassword string) error {
	hash, err := hashPassword("newPassword", newPassword)
	if err != nil {
		return err
	}
	if err := s.repo.UpdatePassword(ctx, id, hash); err != nil {
		if isNotFound(err) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

func (s *userService) checkMarkets(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	count, err := s.marketRepo.CountByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("count markets: %w", err)
	}
	if count != int64(len(ids)) {
		return apperrors.ErrUnknownMarkets
	}
	return nil
}

func withMarkets(u *model.User) UserWithMarkets {
	return UserWithMarkets{User: *u, Markets: u.MarketSummaries()}
}

func validateQuotas(q Quotas) error {
	fields := []struct {
		name  string
		value *int
	}{
		{"quotaCalls", q.QuotaCalls},
		{"quotaEmails", q.QuotaEmails},
		{"quotaMeetingsBooked", q.QuotaMeetingsBooked},
		{"quotaCleanOpportunities", q.QuotaCleanOpportunities},
	}
	for _, f := range fields {
		if f.value != nil && *f.value < 0 {
			return apperrors.NewValidationError(f.name, "must be zero or greater")
		}
	}
	return nil
}

func applyQuotas(u *model.User, q Quotas) {
	if q.QuotaCalls != nil {
		u.QuotaCalls = *q.QuotaCalls
	}
	if q.QuotaEmails != nil {
		u.QuotaEmails = *q.QuotaEmails
	}
	if q.QuotaMeetingsBooked != nil {
		u.QuotaMeetingsBooked = *q.QuotaMeetingsBooked
	}
	if q.QuotaCleanOpportunities != nil {
		u.QuotaCleanOpportunities = *q.QuotaCleanOpportunities
	}
}
