package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"bdrdragon/internal/service"
)

// KpiHandler serves KPI actuals, forecasts and snapshot ingestion.
type KpiHandler struct {
	svc service.KpiService
}

// NewKpiHandler creates a new KPI handler.
func NewKpiHandler(svc service.KpiService) *KpiHandler {
	return &KpiHandler{svc: svc}
}

// Actuals godoc
// @Summary KPI actuals for a period
// @Description Sums snapshots from the start of the period through now. BASIC callers may not pass userId; admins without userId get every active user.
// @Tags kpi
// @Produce json
// @Security BearerAuth
// @Param rangeType query string false "day, week, month or year" default(month)
// @Param userId query string false "User ID (admin only)"
// @Success 200 {object} service.ActualsReport
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /kpi/actuals [get]
func (h *KpiHandler) Actuals(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return respondError(c, err)
	}
	report, err := h.svc.Actuals(c.Request().Context(), caller, c.QueryParam("rangeType"), c.QueryParam("userId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, report)
}

// Forecast godoc
// @Summary KPI pacing forecast for a period
// @Tags kpi
// @Produce json
// @Security BearerAuth
// @Param rangeType query string false "day, week, month or year" default(month)
// @Param userId query string false "User ID (admin only)"
// @Success 200 {object} service.ForecastReport
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /kpi/forecast [get]
func (h *KpiHandler) Forecast(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return respondError(c, err)
	}
	report, err := h.svc.Forecast(c.Request().Context(), caller, c.QueryParam("rangeType"), c.QueryParam("userId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, report)
}

// RecordSnapshot godoc
// @Summary Record a daily KPI snapshot
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.SnapshotInput true "Snapshot"
// @Success 201 {object} model.KpiSnapshot
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /admin/kpi/snapshots [post]
func (h *KpiHandler) RecordSnapshot(c echo.Context) error {
	var req service.SnapshotInput
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	snapshot, err := h.svc.RecordSnapshot(c.Request().Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, snapshot)
}
