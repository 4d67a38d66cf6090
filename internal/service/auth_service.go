package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"bdrdragon/internal/auth"
	apperrors "bdrdragon/internal/errors"
	"bdrdragon/internal/model"
	"bdrdragon/internal/repository"
)

// Session is a freshly issued access/refresh token pair.
type Session struct {
	AccessToken  string
	RefreshToken string
	User         *model.User
}

// AuthService handles authentication operations.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*Session, error)
	// Refresh rotates a refresh token: the old one is revoked and a new pair is issued.
	Refresh(ctx context.Context, refreshToken string) (*Session, error)
	// Logout revokes whichever of the two tokens are still recognisable. Empty tokens are ignored.
	Logout(ctx context.Context, accessToken, refreshToken string) error
	ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error
	// Authenticate validates an access token and checks it has not been logged out. When the
	// blacklist cannot be read the token is rejected with ErrSessionStoreUnavailable.
	Authenticate(ctx context.Context, accessToken string) (*auth.Claims, error)
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
	tokenStore auth.TokenStoreInterface
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService, tokenStore auth.TokenStoreInterface) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
		tokenStore: tokenStore,
	}
}

// Login authenticates a user by email and password.
func (s *authService) Login(ctx context.Context, email, password string) (*Session, error) {
	user, err := s.userRepo.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	if !user.IsActive || !checkPassword(user.PasswordHash, password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.issue(ctx, user)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*Session, error) {
	if refreshToken == "" {
		return nil, apperrors.ErrInvalidRefreshToken
	}
	claims, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperrors.ErrInvalidRefreshToken
	}

	storedUserID, err := s.tokenStore.GetRefreshToken(ctx, claims.ID)
	if errors.Is(err, auth.ErrRefreshTokenNotFound) {
		return nil, apperrors.ErrInvalidRefreshToken
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrSessionStoreUnavailable, err)
	}
	if storedUserID != claims.UserID {
		return nil, apperrors.ErrInvalidRefreshToken
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.ErrInvalidRefreshToken
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	if !user.IsActive {
		return nil, apperrors.ErrInvalidRefreshToken
	}

	if err := s.tokenStore.DeleteRefreshToken(ctx, claims.ID); err != nil {
		return nil, fmt.Errorf("%w: revoke refresh token: %w", apperrors.ErrSessionStoreUnavailable, err)
	}
	return s.issue(ctx, user)
}

func (s *authService) Logout(ctx context.Context, accessToken, refreshToken string) error {
	if refreshToken != "" {
		if claims, err := s.jwtService.ValidateRefreshToken(refreshToken); err == nil {
			if err := s.tokenStore.DeleteRefreshToken(ctx, claims.ID); err != nil {
				return fmt.Errorf("%w: revoke refresh token: %w", apperrors.ErrSessionStoreUnavailable, err)
			}
		}
	}

	if accessToken != "" {
		if claims, ok := s.jwtService.ParseAccessAllowExpired(accessToken); ok && claims.ExpiresAt != nil {
			ttl := time.Until(claims.ExpiresAt.Time)
			if err := s.tokenStore.BlacklistAccessToken(ctx, claims.ID, ttl); err != nil {
				return fmt.Errorf("%w: blacklist access token: %w", apperrors.ErrSessionStoreUnavailable, err)
			}
		}
	}
	return nil
}

func (s *authService) ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if isNotFound(err) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}
	if !checkPassword(user.PasswordHash, currentPassword) {
		return apperrors.ErrIncorrectPassword
	}

	hash, err := hashPassword("newPassword", newPassword)
	if err != nil {
		return err
	}
	if err := s.userRepo.UpdatePassword(ctx, userID, hash); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

func (s *authService) Authenticate(ctx context.Context, accessToken string) (*auth.Claims, error) {
	claims, err := s.jwtService.ValidateAccessToken(accessToken)
	if err != nil {
		return nil, apperrors.ErrUnauthorized
	}
	blacklisted, err := s.tokenStore.IsAccessTokenBlacklisted(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrSessionStoreUnavailable, err)
	}
	if blacklisted {
		return nil, apperrors.ErrUnauthorized
	}
	return claims, nil
}

func (s *authService) issue(ctx context.Context, user *model.User) (*Session, error) {
	_, accessToken, err := s.jwtService.GenerateAccessToken(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	tokenID, refreshToken, err := s.jwtService.GenerateRefreshToken(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	if err := s.tokenStore.StoreRefreshToken(ctx, tokenID, user.ID, s.jwtService.RefreshTTL()); err != nil {
		return nil, fmt.Errorf("%w: store refresh token: %w", apperrors.ErrSessionStoreUnavailable, err)
	}

	return &Session{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}
