package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"bdrdragon/internal/service"
)

// IntegrationHandler serves the admin integration panel.
type IntegrationHandler struct {
	svc service.IntegrationService
}

// NewIntegrationHandler creates a new integration handler.
func NewIntegrationHandler(svc service.IntegrationService) *IntegrationHandler {
	return &IntegrationHandler{svc: svc}
}

// IntegrationStatusResponse is the GLOBAL integration row. ID is omitted before the first sync.
type IntegrationStatusResponse struct {
	ID               *uuid.UUID `json:"id,omitempty"`
	Scope            string     `json:"scope"`
	SalesforceStatus string     `json:"salesforceStatus"`
	OutreachStatus   string     `json:"outreachStatus"`
	LastSyncAt       *time.Time `json:"lastSyncAt"`
}

// Status godoc
// @Summary Integration status
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} IntegrationStatusResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/integration-status [get]
func (h *IntegrationHandler) Status(c echo.Context) error {
	status, err := h.svc.Status(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}

	resp := IntegrationStatusResponse{
		Scope:            status.Scope,
		SalesforceStatus: status.SalesforceStatus,
		OutreachStatus:   status.OutreachStatus,
		LastSyncAt:       status.LastSyncAt,
	}
	if status.ID != uuid.Nil {
		id := status.ID
		resp.ID = &id
	}
	return c.JSON(http.StatusOK, resp)
}

// Sync godoc
// @Summary Trigger a manual sync
// @Description Stub: marks Salesforce configured and records the sync time.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.SyncResult
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/sync [post]
func (h *IntegrationHandler) Sync(c echo.Context) error {
	result, err := h.svc.Sync(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}
