package handler

import (
	"net/http"

	"github.com/fekuna/omnipos-poultry-service/internal/apperror"
	"github.com/fekuna/omnipos-poultry-service/internal/logger"
	"github.com/fekuna/omnipos-poultry-service/internal/middleware"
	"github.com/fekuna/omnipos-poultry-service/internal/product"
	"github.com/fekuna/omnipos-poultry-service/internal/product/dto"
	"github.com/fekuna/omnipos-poultry-service/internal/response"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type ProductHandler struct {
	uc     product.UseCase
	logger logger.ZapLogger
}

func NewProductHandler(uc product.UseCase, log logger.ZapLogger) *ProductHandler {
	return &ProductHandler{
		uc:     uc,
		logger: log,
	}
}

type productRequest struct {
	Name     string          `json:"name" validate:"required"`
	Category string          `json:"category" validate:"required"`
	Stock    int             `json:"stock" validate:"gte=0"`
	Price    decimal.Decimal `json:"price"`
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	log := middleware.Logger(c, h.logger)

	var req productRequest
	if err := response.Bind(c, &req); err != nil {
		return response.Error(c, log, err)
	}

	p, err := h.uc.CreateProduct(c.Request().Context(), &dto.CreateProductInput{
		Name:     req.Name,
		Category: req.Category,
		Stock:    req.Stock,
		Price:    req.Price,
	})
	if err != nil {
		return response.Error(c, log, err)
	}

	log.Info("product created", zap.String("product_id", p.ID), zap.String("name", p.Name))
	return response.Created(c, p)
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	p, err := h.uc.GetProduct(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, middleware.Logger(c, h.logger), err)
	}
	return response.OK(c, p)
}

func (h *ProductHandler) ListProducts(c echo.Context) error {
	log := middleware.Logger(c, h.logger)

	filters := &dto.ProductFilters{
		Category:    c.QueryParam("category"),
		SearchQuery: c.QueryParam("search"),
		SortBy:      c.QueryParam("sort_by"),
		SortOrder:   c.QueryParam("sort_order"),
		Page:        1,
	}
	err := echo.QueryParamsBinder(c).
		Int("page", &filters.Page).
		Int("page_size", &filters.PageSize).
		BindError()
	if err != nil || filters.Page < 1 || filters.PageSize < 0 {
		return response.Error(c, log, apperror.Validation("page and page_size must be positive integers"))
	}

	products, count, err := h.uc.ListProducts(c.Request().Context(), filters)
	if err != nil {
		return response.Error(c, log, err)
	}

	return response.OK(c, response.Page{
		Data:     products,
		Total:    count,
		Page:     filters.Page,
		PageSize: filters.PageSize,
	})
}

func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	log := middleware.Logger(c, h.logger)

	var req productRequest
	if err := response.Bind(c, &req); err != nil {
		return response.Error(c, log, err)
	}

	p, err := h.uc.UpdateProduct(c.Request().Context(), &dto.UpdateProductInput{
		ID:       c.Param("id"),
		Name:     req.Name,
		Category: req.Category,
		Stock:    req.Stock,
		Price:    req.Price,
	})
	if err != nil {
		return response.Error(c, log, err)
	}

	log.Info("product updated", zap.String("product_id", p.ID))
	return response.OK(c, p)
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	log := middleware.Logger(c, h.logger)

	id := c.Param("id")
	if err := h.uc.DeleteProduct(c.Request().Context(), id); err != nil {
		return response.Error(c, log, err)
	}

	log.Info("product deleted", zap.String("product_id", id))
	return c.NoContent(http.StatusNoContent)
}
