package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"bdrdragon/internal/errors"
	"bdrdragon/internal/service"
)

// Cookie names carrying the session.
const (
	AccessCookieName  = "access_token"
	RefreshCookieName = "refresh_token"

	accessCookiePath  = "/"
	refreshCookiePath = "/api/auth"
)

// CookieConfig controls how session cookies are written.
type CookieConfig struct {
	// Secure switches to Secure; SameSite=None for cross-site production front ends.
	Secure     bool
	Domain     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
	userService service.UserService
	cookies     CookieConfig
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService, userService service.UserService, cookies CookieConfig) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		userService: userService,
		cookies:     cookies,
	}
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ChangePasswordRequest represents a password change by the signed-in user.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8"`
}

// Login godoc
// @Summary Login user
// @Description Sets the access_token and refresh_token cookies.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	session, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}

	h.setSessionCookies(c, session)
	return c.JSON(http.StatusOK, session.User)
}

// Refresh godoc
// @Summary Rotate session cookies
// @Description Exchanges the refresh_token cookie for a new cookie pair. The old refresh token is revoked.
// @Tags auth
// @Produce json
// @Success 200 {object} MessageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	cookie, err := c.Cookie(RefreshCookieName)
	if err != nil || cookie.Value == "" {
		return respondError(c, errors.ErrInvalidRefreshToken)
	}

	session, err := h.authService.Refresh(c.Request().Context(), cookie.Value)
	if err != nil {
		return respondError(c, err)
	}

	h.setSessionCookies(c, session)
	return c.JSON(http.StatusOK, MessageResponse{Message: "Refreshed"})
}

// Logout godoc
// @Summary Logout user
// @Description Revokes whatever session cookies are present and clears them. The cookies are cleared even when revocation fails, which is reported as 503.
// @Tags auth
// @Produce json
// @Success 200 {object} MessageResponse
// @Failure 503 {object} errors.ErrorResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	var accessToken, refreshToken string
	if cookie, err := c.Cookie(AccessCookieName); err == nil {
		accessToken = cookie.Value
	}
	if cookie, err := c.Cookie(RefreshCookieName); err == nil {
		refreshToken = cookie.Value
	}

	err := h.authService.Logout(c.Request().Context(), accessToken, refreshToken)
	h.clearSessionCookies(c)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Logged out"})
}

// ChangePassword godoc
// @Summary Change own password
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ChangePasswordRequest true "Current and new password"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/change-password [post]
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return respondError(c, err)
	}

	var req ChangePasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.authService.ChangePassword(c.Request().Context(), caller.UserID, req.CurrentPassword, req.NewPassword); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Password changed"})
}

// Register godoc
// @Summary Register a user (admin)
// @Description Any role other than ADMIN is stored as BASIC. The user's default task lists are created with it.
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.RegisterInput true "Registration data"
// @Success 201 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req service.RegisterInput
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.userService.Register(c.Request().Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, user)
}

func (h *AuthHandler) setSessionCookies(c echo.Context, session *service.Session) {
	c.SetCookie(h.cookie(AccessCookieName, session.AccessToken, accessCookiePath, h.cookies.AccessTTL))
	c.SetCookie(h.cookie(RefreshCookieName, session.RefreshToken, refreshCookiePath, h.cookies.RefreshTTL))
}

func (h *AuthHandler) clearSessionCookies(c echo.Context) {
	access := h.cookie(AccessCookieName, "", accessCookiePath, 0)
	access.MaxAge = -1
	access.Expires = time.Unix(0, 0)
	c.SetCookie(access)

	refresh := h.cookie(RefreshCookieName, "", refreshCookiePath, 0)
	refresh.MaxAge = -1
	refresh.Expires = time.Unix(0, 0)
	c.SetCookie(refresh)
}

func (h *AuthHandler) cookie(name, value, path string, ttl time.Duration) *http.Cookie {
	cookie := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     path,
		Domain:   h.cookies.Domain,
		HttpOnly: true,
		Secure:   h.cookies.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	if h.cookies.Secure {
		cookie.SameSite = http.SameSiteNoneMode
	}
	if ttl > 0 {
		cookie.MaxAge = int(ttl.Seconds())
	}
	return cookie
}
