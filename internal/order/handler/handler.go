package handler

import (
	"github.com/fekuna/omnipos-poultry-service/internal/apperror"
	"github.com/fekuna/omnipos-poultry-service/internal/auth"
	"github.com/fekuna/omnipos-poultry-service/internal/cart"
	"github.com/fekuna/omnipos-poultry-service/internal/logger"
	"github.com/fekuna/omnipos-poultry-service/internal/middleware"
	"github.com/fekuna/omnipos-poultry-service/internal/order"
	"github.com/fekuna/omnipos-poultry-service/internal/order/dto"
	"github.com/fekuna/omnipos-poultry-service/internal/response"
	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	uc     order.UseCase
	carts  *cart.Registry
	logger logger.ZapLogger
}

func NewOrderHandler(uc order.UseCase, carts *cart.Registry, log logger.ZapLogger) *OrderHandler {
	return &OrderHandler{uc: uc, carts: carts, logger: log}
}

type checkoutRequest struct {
	CustomerName string `json:"customer_name"`
}

// Checkout turns the caller's cart into an order. The cart is held for the
// whole checkout and cleared only after the order commits.
func (h *OrderHandler) Checkout(c echo.Context) error {
	log := middleware.Logger(c, h.logger)

	var req checkoutRequest
	if err := response.Bind(c, &req); err != nil {
		return response.Error(c, log, err)
	}

	userID := auth.UserID(c)

	var receipt *dto.Receipt
	err := h.carts.Get(userID).Checkout(func(lines []cart.Line) error {
		var err error
		receipt, err = h.uc.Checkout(c.Request().Context(), &dto.CheckoutInput{
			CustomerName: req.CustomerName,
			Lines:        lines,
			CashierID:    userID,
		})
		return err
	})
	if err != nil {
		return response.Error(c, log, err)
	}

	return response.Created(c, receipt)
}

func (h *OrderHandler) GetReceipt(c echo.Context) error {
	receipt, err := h.uc.GetReceipt(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, middleware.Logger(c, h.logger), err)
	}
	return response.OK(c, receipt)
}

func (h *OrderHandler) ListOrders(c echo.Context) error {
	log := middleware.Logger(c, h.logger)

	filters := &dto.OrderFilters{
		CustomerSearch: c.QueryParam("search"),
		Page:           1,
		PageSize:       50,
	}
	err := echo.QueryParamsBinder(c).
		Int("page", &filters.Page).
		Int("page_size", &filters.PageSize).
		BindError()
	if err != nil || filters.Page < 1 || filters.PageSize < 0 {
		return response.Error(c, log, apperror.Validation("page and page_size must be positive integers"))
	}

	orders, count, err := h.uc.ListOrders(c.Request().Context(), filters)
	if err != nil {
		return response.Error(c, log, err)
	}
	return response.OK(c, response.Page{Data: orders, Total: count, Page: filters.Page, PageSize: filters.PageSize})
}
