package handler

import (
	"context"

	"github.com/fekuna/omnipos-poultry-service/internal/auth"
	"github.com/fekuna/omnipos-poultry-service/internal/cart"
	"github.com/fekuna/omnipos-poultry-service/internal/logger"
	"github.com/fekuna/omnipos-poultry-service/internal/middleware"
	"github.com/fekuna/omnipos-poultry-service/internal/model"
	"github.com/fekuna/omnipos-poultry-service/internal/response"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type ProductFinder interface {
	GetProduct(ctx context.Context, id string) (*model.Product, error)
}

type CartHandler struct {
	carts    *cart.Registry
	products ProductFinder
	taxRate  decimal.Decimal
	logger   logger.ZapLogger
}

func NewCartHandler(carts *cart.Registry, products ProductFinder, taxRate decimal.Decimal, log logger.ZapLogger) *CartHandler {
	return &CartHandler{carts: carts, products: products, taxRate: taxRate, logger: log}
}

type lineView struct {
	cart.Line
	LineTotal decimal.Decimal `json:"line_total"`
	Available int             `json:"available"`
}

type cartView struct {
	Lines []lineView `json:"lines"`
	cart.Totals
	TaxRate decimal.Decimal `json:"tax_rate"`
}

func (h *CartHandler) view(c *cart.Cart) cartView {
	lines := c.Lines()
	v := cartView{
		Lines:   make([]lineView, len(lines)),
		Totals:  cart.ComputeTotals(lines, h.taxRate),
		TaxRate: h.taxRate,
	}
	for i, l := range lines {
		available, _ := c.Available(l.ProductID)
		v.Lines[i] = lineView{Line: l, LineTotal: l.LineTotal(), Available: available}
	}
	return v
}

func (h *CartHandler) GetCart(c echo.Context) error {
	return response.OK(c, h.view(h.carts.Get(auth.UserID(c))))
}

type addItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity"`
}

func (h *CartHandler) AddItem(c echo.Context) error {
	log := middleware.Logger(c, h.logger)

	var req addItemRequest
	if err := response.Bind(c, &req); err != nil {
		return response.Error(c, log, err)
	}

	p, err := h.products.GetProduct(c.Request().Context(), req.ProductID)
	if err != nil {
		return response.Error(c, log, err)
	}

	userCart := h.carts.Get(auth.UserID(c))
	if err := userCart.AddItem(p, req.Quantity); err != nil {
		return response.Error(c, log, err)
	}

	log.Debug("cart item added", zap.String("product_id", p.ID), zap.Int("quantity", req.Quantity))
	return response.OK(c, h.view(userCart))
}

func (h *CartHandler) RemoveItem(c echo.Context) error {
	log := middleware.Logger(c, h.logger)

	userCart := h.carts.Get(auth.UserID(c))
	removed, err := userCart.RemoveItem(c.Param("product_id"))
	if err != nil {
		return response.Error(c, log, err)
	}

	log.Debug("cart item removed", zap.String("product_id", removed.ProductID), zap.Int("quantity", removed.Quantity))
	return response.OK(c, h.view(userCart))
}

func (h *CartHandler) ClearCart(c echo.Context) error {
	userCart := h.carts.Get(auth.UserID(c))
	userCart.Clear()
	return response.OK(c, h.view(userCart))
}
