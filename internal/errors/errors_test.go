package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{name: "unauthorized", err: ErrUnauthorized, wantStatus: http.StatusUnauthorized, wantCode: "UNAUTHORIZED"},
		{name: "forbidden", err: ErrForbidden, wantStatus: http.StatusForbidden, wantCode: "FORBIDDEN"},
		{name: "wrapped not found", err: fmt.Errorf("load user: %w", ErrUserNotFound), wantStatus: http.StatusNotFound, wantCode: "USER_NOT_FOUND"},
		{name: "conflict", err: ErrEmailTaken, wantStatus: http.StatusConflict, wantCode: "EMAIL_TAKEN"},
		{name: "bad range", err: ErrInvalidRangeType, wantStatus: http.StatusBadRequest, wantCode: "INVALID_RANGE_TYPE"},
		{name: "validation", err: NewValidationError("email", "is required"), wantStatus: http.StatusBadRequest, wantCode: "VALIDATION_ERROR"},
		{name: "session store down", err: fmt.Errorf("%w: connection refused", ErrSessionStoreUnavailable), wantStatus: http.StatusServiceUnavailable, wantCode: "SESSION_STORE_UNAVAILABLE"},
		{name: "unknown", err: errors.New("connection refused"), wantStatus: http.StatusInternalServerError, wantCode: "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapErrorToHTTP(tt.err)
			assert.Equal(t, tt.wantStatus, got.StatusCode)
			assert.Equal(t, tt.wantCode, got.Code)
		})
	}
}

func TestMapErrorToHTTP_InternalHidesDetail(t *testing.T) {
	got := MapErrorToHTTP(errors.New("dial tcp 10.0.0.1:3306: connection refused"))
	assert.Equal(t, "internal server error", got.Message)
	assert.True(t, got.IsInternal())
}

func TestMapErrorToHTTP_ValidationField(t *testing.T) {
	got := MapErrorToHTTP(fmt.Errorf("create user: %w", NewValidationError("tempPassword", "must be at least 8 characters")))

	resp := got.ToErrorResponse()
	assert.Equal(t, "tempPassword", resp.Field)
	assert.Equal(t, "tempPassword: must be at least 8 characters", resp.Error)
}

func TestMapErrorToHTTP_PassesThroughHTTPError(t *testing.T) {
	orig := NewHTTPError(http.StatusTeapot, "teapot", "TEAPOT")
	assert.Same(t, orig, MapErrorToHTTP(orig))
}
