package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUnauthorized is returned when the request carries no valid session.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidCredentials is returned when login fails or the account is inactive.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInvalidRefreshToken is returned when a refresh token is unknown, revoked or expired.
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	// ErrForbidden is returned when the caller's role does not allow the operation.
	ErrForbidden = errors.New("forbidden")
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrMarketNotFound is returned when a market is not found.
	ErrMarketNotFound = errors.New("market not found")
	// ErrTaskListNotFound is returned when a task list is not found or belongs to someone else.
	ErrTaskListNotFound = errors.New("task list not found")
	// ErrTaskNotFound is returned when a task is not found or belongs to someone else.
	ErrTaskNotFound = errors.New("task not found")
	// ErrEmailTaken is returned when a user with the email already exists.
	ErrEmailTaken = errors.New("email already in use")
	// ErrSnapshotExists is returned when a user already has a KPI snapshot for the day.
	ErrSnapshotExists = errors.New("kpi snapshot already recorded for this day")
	// ErrDefaultListImmutable is returned when renaming or deleting a non-custom list.
	ErrDefaultListImmutable = errors.New("only custom lists can be modified")
	// ErrInvalidRangeType is returned for a rangeType outside day|week|month|year.
	ErrInvalidRangeType = errors.New("rangeType must be one of day, week, month, year")
	// ErrIncorrectPassword is returned when the current password does not match.
	ErrIncorrectPassword = errors.New("current password is incorrect")
	// ErrUnknownMarkets is returned when some of the given market ids do not exist.
	ErrUnknownMarkets = errors.New("one or more markets do not exist")
	// ErrSessionStoreUnavailable is returned when session tokens cannot be read or revoked.
	ErrSessionStoreUnavailable = errors.New("session store unavailable")
)

// ValidationError reports a rejected request field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// NewValidationError creates a new validation error for field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
	Field string `json:"field,omitempty"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
	Field      string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
		Field: e.Field,
	}
}

// IsInternal reports whether the error maps to a 500.
func (e *HTTPError) IsInternal() bool {
	return e.StatusCode >= http.StatusInternalServerError
}

var sentinels = []struct {
	err    error
	status int
	code   string
}{
	{ErrUnauthorized, http.StatusUnauthorized, "UNAUTHORIZED"},
	{ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
	{ErrInvalidRefreshToken, http.StatusUnauthorized, "INVALID_REFRESH_TOKEN"},
	{ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
	{ErrUserNotFound, http.StatusNotFound, "USER_NOT_FOUND"},
	{ErrMarketNotFound, http.StatusNotFound, "MARKET_NOT_FOUND"},
	{ErrTaskListNotFound, http.StatusNotFound, "TASK_LIST_NOT_FOUND"},
	{ErrTaskNotFound, http.StatusNotFound, "TASK_NOT_FOUND"},
	{ErrEmailTaken, http.StatusConflict, "EMAIL_TAKEN"},
	{ErrSnapshotExists, http.StatusConflict, "SNAPSHOT_EXISTS"},
	{ErrDefaultListImmutable, http.StatusBadRequest, "DEFAULT_LIST_IMMUTABLE"},
	{ErrInvalidRangeType, http.StatusBadRequest, "INVALID_RANGE_TYPE"},
	{ErrIncorrectPassword, http.StatusBadRequest, "INCORRECT_PASSWORD"},
	{ErrUnknownMarkets, http.StatusBadRequest, "UNKNOWN_MARKETS"},
	{ErrSessionStoreUnavailable, http.StatusServiceUnavailable, "SESSION_STORE_UNAVAILABLE"},
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		e := NewHTTPError(http.StatusBadRequest, validationErr.Error(), "VALIDATION_ERROR")
		e.Field = validationErr.Field
		return e
	}

	for _, s := range sentinels {
		if errors.Is(err, s.err) {
			return NewHTTPError(s.status, s.err.Error(), s.code)
		}
	}

	return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
}
