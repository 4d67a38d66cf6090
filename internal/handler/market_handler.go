package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"bdrdragon/internal/model"
	"bdrdragon/internal/service"
)

// MarketHandler serves market endpoints.
type MarketHandler struct {
	svc service.MarketService
}

// NewMarketHandler creates a new market handler.
func NewMarketHandler(svc service.MarketService) *MarketHandler {
	return &MarketHandler{svc: svc}
}

// MyMarketsResponse lists the markets assigned to the caller.
type MyMarketsResponse struct {
	Markets []model.Market `json:"markets"`
}

// Mine godoc
// @Summary List own markets
// @Tags markets
// @Produce json
// @Security BearerAuth
// @Success 200 {object} MyMarketsResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /market/me [get]
func (h *MarketHandler) Mine(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return respondError(c, err)
	}
	markets, err := h.svc.ForUser(c.Request().Context(), caller.UserID)
	if err != nil {
		return respondError(c, err)
	}
	if markets == nil {
		markets = []model.Market{}
	}
	return c.JSON(http.StatusOK, MyMarketsResponse{Markets: markets})
}

// List godoc
// @Summary List markets
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Market
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/markets [get]
func (h *MarketHandler) List(c echo.Context) error {
	markets, err := h.svc.List(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, markets)
}

// Create godoc
// @Summary Create market
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.MarketInput true "Market"
// @Success 201 {object} model.Market
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/markets [post]
func (h *MarketHandler) Create(c echo.Context) error {
	var req service.MarketInput
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	market, err := h.svc.Create(c.Request().Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, market)
}

// Update godoc
// @Summary Update market
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Market ID"
// @Param request body service.MarketUpdateInput true "Fields to change"
// @Success 200 {object} model.Market
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/markets/{id} [put]
func (h *MarketHandler) Update(c echo.Context) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	var req service.MarketUpdateInput
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	market, err := h.svc.Update(c.Request().Context(), id, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, market)
}

// Delete godoc
// @Summary Delete market
// @Description Also removes every user assignment to the market.
// @Tags admin
// @Security BearerAuth
// @Param id path string true "Market ID"
// @Success 204
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/markets/{id} [delete]
func (h *MarketHandler) Delete(c echo.Context) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
