package handler_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"bdrdragon/internal/auth"
	"bdrdragon/internal/errors"
	"bdrdragon/internal/handler"
	"bdrdragon/internal/model"
	"bdrdragon/internal/router"
)

// newTestEcho returns an Echo with the API validator. A non-nil claims value is
// installed the way the JWT middleware would.
func newTestEcho(claims *auth.Claims) *echo.Echo {
	e := echo.New()
	e.Validator = router.NewValidator()
	if claims != nil {
		e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error {
				c.Set(handler.ClaimsContextKey, claims)
				return next(c)
			}
		})
	}
	return e
}

func adminClaims() *auth.Claims {
	return &auth.Claims{UserID: uuid.New(), Role: model.RoleAdmin}
}

func basicClaims() *auth.Claims {
	return &auth.Claims{UserID: uuid.New(), Role: model.RoleBasic}
}

func doRequest(e *echo.Echo, method, target, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errors.ErrorResponse {
	t.Helper()
	var resp errors.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func findCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}
