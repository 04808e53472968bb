package handler

import (
	"github.com/fekuna/omnipos-poultry-service/internal/apperror"
	"github.com/fekuna/omnipos-poultry-service/internal/auth"
	"github.com/fekuna/omnipos-poultry-service/internal/inventory"
	"github.com/fekuna/omnipos-poultry-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-poultry-service/internal/logger"
	"github.com/fekuna/omnipos-poultry-service/internal/middleware"
	"github.com/fekuna/omnipos-poultry-service/internal/model"
	"github.com/fekuna/omnipos-poultry-service/internal/response"
	"github.com/labstack/echo/v4"
)

type InventoryHandler struct {
	uc     inventory.UseCase
	logger logger.ZapLogger
}

func NewInventoryHandler(uc inventory.UseCase, log logger.ZapLogger) *InventoryHandler {
	return &InventoryHandler{
		uc:     uc,
		logger: log,
	}
}

type adjustRequest struct {
	ItemType     model.ItemType `json:"item_type" validate:"required,oneof=product feed"`
	ItemID       string         `json:"item_id" validate:"required"`
	Change       int            `json:"quantity_change" validate:"required"`
	MovementType string         `json:"movement_type" validate:"omitempty,oneof=adjustment restock"`
	ReferenceID  string         `json:"reference_id"`
	Notes        string         `json:"notes"`
}

func (h *InventoryHandler) AdjustStock(c echo.Context) error {
	log := middleware.Logger(c, h.logger)

	var req adjustRequest
	if err := response.Bind(c, &req); err != nil {
		return response.Error(c, log, err)
	}

	movement, err := h.uc.AdjustStock(c.Request().Context(), &dto.AdjustStockInput{
		ItemType:     req.ItemType,
		ItemID:       req.ItemID,
		Change:       req.Change,
		MovementType: req.MovementType,
		ReferenceID:  req.ReferenceID,
		Notes:        req.Notes,
		UserID:       auth.UserID(c),
	})
	if err != nil {
		return response.Error(c, log, err)
	}
	return response.Created(c, movement)
}

func (h *InventoryHandler) ListMovements(c echo.Context) error {
	log := middleware.Logger(c, h.logger)

	filters := &dto.MovementFilters{
		ItemType:     model.ItemType(c.QueryParam("item_type")),
		ItemID:       c.QueryParam("item_id"),
		MovementType: c.QueryParam("movement_type"),
		Page:         1,
		PageSize:     50,
	}
	err := echo.QueryParamsBinder(c).
		Int("page", &filters.Page).
		Int("page_size", &filters.PageSize).
		BindError()
	if err != nil || filters.Page < 1 || filters.PageSize < 0 {
		return response.Error(c, log, apperror.Validation("page and page_size must be positive integers"))
	}

	items, count, err := h.uc.ListMovements(c.Request().Context(), filters)
	if err != nil {
		return response.Error(c, log, err)
	}
	return response.OK(c, response.Page{Data: items, Total: count, Page: filters.Page, PageSize: filters.PageSize})
}

func (h *InventoryHandler) ListLowStock(c echo.Context) error {
	log := middleware.Logger(c, h.logger)

	threshold := -1
	if err := echo.QueryParamsBinder(c).Int("threshold", &threshold).BindError(); err != nil || (c.QueryParam("threshold") != "" && threshold < 0) {
		return response.Error(c, log, apperror.Validation("threshold must be a non-negative integer"))
	}

	items, err := h.uc.ListLowStock(c.Request().Context(), threshold)
	if err != nil {
		return response.Error(c, log, err)
	}
	return response.OK(c, items)
}
