package handler_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"bdrdragon/internal/handler"
	"bdrdragon/internal/model"
	"bdrdragon/internal/service"
)

func TestIntegrationHandler_Status(t *testing.T) {
	t.Run("before first sync", func(t *testing.T) {
		def := model.DefaultIntegrationStatus()
		svc := new(MockIntegrationService)
		svc.On("Status", mock.Anything).Return(&def, nil)

		e := newTestEcho(adminClaims())
		e.GET("/api/admin/integration-status", handler.NewIntegrationHandler(svc).Status)
		rec := doRequest(e, http.MethodGet, "/api/admin/integration-status", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"scope":"GLOBAL","salesforceStatus":"NOT_CONFIGURED","outreachStatus":"STUBBED","lastSyncAt":null}`, rec.Body.String())
	})

	t.Run("after sync", func(t *testing.T) {
		id := uuid.New()
		synced := time.Date(2024, time.May, 2, 9, 30, 0, 0, time.UTC)
		svc := new(MockIntegrationService)
		svc.On("Status", mock.Anything).Return(&model.IntegrationStatus{
			ID: id, Scope: "GLOBAL", SalesforceStatus: "CONFIGURED", OutreachStatus: "STUBBED", LastSyncAt: &synced,
		}, nil)

		e := newTestEcho(adminClaims())
		e.GET("/api/admin/integration-status", handler.NewIntegrationHandler(svc).Status)
		rec := doRequest(e, http.MethodGet, "/api/admin/integration-status", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"id":"`+id.String()+`"`)
		assert.Contains(t, rec.Body.String(), `"lastSyncAt":"2024-05-02T09:30:00Z"`)
	})
}

func TestIntegrationHandler_Sync(t *testing.T) {
	synced := time.Date(2024, time.May, 2, 9, 30, 0, 0, time.UTC)
	svc := new(MockIntegrationService)
	svc.On("Sync", mock.Anything).Return(&service.SyncResult{Message: "Sync triggered (stub)", LastSyncAt: &synced}, nil)

	e := newTestEcho(adminClaims())
	e.POST("/api/admin/sync", handler.NewIntegrationHandler(svc).Sync)
	rec := doRequest(e, http.MethodPost, "/api/admin/sync", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Sync triggered (stub)","lastSyncAt":"2024-05-02T09:30:00Z"}`, rec.Body.String())
}

func TestHealthHandler(t *testing.T) {
	ok := handler.PingFunc(func(context.Context) error { return nil })
	down := handler.PingFunc(func(context.Context) error { return assert.AnError })

	tests := []struct {
		name           string
		database       handler.Pinger
		cache          handler.Pinger
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "healthy",
			database:       ok,
			cache:          ok,
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"ok","database":"ok","cache":"ok","environment":"test"}`,
		},
		{
			name:           "cache down",
			database:       ok,
			cache:          down,
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"degraded","database":"ok","cache":"error","environment":"test"}`,
		},
		{
			name:           "database down",
			database:       down,
			cache:          ok,
			expectedStatus: http.StatusServiceUnavailable,
			expectedBody:   `{"status":"error","database":"error","cache":"ok","environment":"test"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEcho(nil)
			e.GET("/healthz", handler.NewHealthHandler("test", tt.database, tt.cache).Health)
			rec := doRequest(e, http.MethodGet, "/healthz", "")

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.JSONEq(t, tt.expectedBody, rec.Body.String())
		})
	}
}
