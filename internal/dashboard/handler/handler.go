package handler

import (
	"github.com/fekuna/omnipos-poultry-service/internal/dashboard"
	"github.com/fekuna/omnipos-poultry-service/internal/logger"
	"github.com/fekuna/omnipos-poultry-service/internal/middleware"
	"github.com/fekuna/omnipos-poultry-service/internal/response"
	"github.com/labstack/echo/v4"
)

type DashboardHandler struct {
	uc     dashboard.UseCase
	logger logger.ZapLogger
}

func NewDashboardHandler(uc dashboard.UseCase, log logger.ZapLogger) *DashboardHandler {
	return &DashboardHandler{uc: uc, logger: log}
}

func (h *DashboardHandler) Summary(c echo.Context) error {
	summary, err := h.uc.Summary(c.Request().Context())
	if err != nil {
		return response.Error(c, middleware.Logger(c, h.logger), err)
	}
	return response.OK(c, summary)
}

func (h *DashboardHandler) MonthlySales(c echo.Context) error {
	months, err := h.uc.MonthlySales(c.Request().Context())
	if err != nil {
		return response.Error(c, middleware.Logger(c, h.logger), err)
	}
	return response.OK(c, map[string]interface{}{"data": months})
}

func (h *DashboardHandler) StockByCategory(c echo.Context) error {
	rows, err := h.uc.StockByCategory(c.Request().Context())
	if err != nil {
		return response.Error(c, middleware.Logger(c, h.logger), err)
	}
	return response.OK(c, map[string]interface{}{"data": rows})
}
