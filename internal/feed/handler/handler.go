package handler

import (
	"net/http"

	"github.com/fekuna/omnipos-poultry-service/internal/apperror"
	"github.com/fekuna/omnipos-poultry-service/internal/feed"
	"github.com/fekuna/omnipos-poultry-service/internal/feed/dto"
	"github.com/fekuna/omnipos-poultry-service/internal/logger"
	"github.com/fekuna/omnipos-poultry-service/internal/middleware"
	"github.com/fekuna/omnipos-poultry-service/internal/response"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type FeedHandler struct {
	uc     feed.UseCase
	logger logger.ZapLogger
}

func NewFeedHandler(uc feed.UseCase, log logger.ZapLogger) *FeedHandler {
	return &FeedHandler{uc: uc, logger: log}
}

type feedRequest struct {
	Name     string `json:"name" validate:"required"`
	Category string `json:"category" validate:"required"`
	Level    int    `json:"level" validate:"gte=0"`
}

func (h *FeedHandler) CreateFeed(c echo.Context) error {
	log := middleware.Logger(c, h.logger)

	var req feedRequest
	if err := response.Bind(c, &req); err != nil {
		return response.Error(c, log, err)
	}

	f, err := h.uc.CreateFeed(c.Request().Context(), &dto.CreateFeedInput{
		Name:     req.Name,
		Category: req.Category,
		Level:    req.Level,
	})
	if err != nil {
		return response.Error(c, log, err)
	}

	log.Info("feed created", zap.String("feed_id", f.ID))
	return response.Created(c, f)
}

func (h *FeedHandler) GetFeed(c echo.Context) error {
	f, err := h.uc.GetFeed(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, middleware.Logger(c, h.logger), err)
	}
	return response.OK(c, f)
}

func (h *FeedHandler) ListFeeds(c echo.Context) error {
	log := middleware.Logger(c, h.logger)

	filters := &dto.FeedFilters{
		Category:    c.QueryParam("category"),
		SearchQuery: c.QueryParam("search"),
		Page:        1,
	}
	err := echo.QueryParamsBinder(c).
		Int("page", &filters.Page).
		Int("page_size", &filters.PageSize).
		BindError()
	if err != nil || filters.Page < 1 || filters.PageSize < 0 {
		return response.Error(c, log, apperror.Validation("page and page_size must be positive integers"))
	}

	feeds, count, err := h.uc.ListFeeds(c.Request().Context(), filters)
	if err != nil {
		return response.Error(c, log, err)
	}

	return response.OK(c, response.Page{Data: feeds, Total: count, Page: filters.Page, PageSize: filters.PageSize})
}

func (h *FeedHandler) UpdateFeed(c echo.Context) error {
	log := middleware.Logger(c, h.logger)

	var req feedRequest
	if err := response.Bind(c, &req); err != nil {
		return response.Error(c, log, err)
	}

	f, err := h.uc.UpdateFeed(c.Request().Context(), &dto.UpdateFeedInput{
		ID:       c.Param("id"),
		Name:     req.Name,
		Category: req.Category,
		Level:    req.Level,
	})
	if err != nil {
		return response.Error(c, log, err)
	}
	return response.OK(c, f)
}

func (h *FeedHandler) DeleteFeed(c echo.Context) error {
	log := middleware.Logger(c, h.logger)

	id := c.Param("id")
	if err := h.uc.DeleteFeed(c.Request().Context(), id); err != nil {
		return response.Error(c, log, err)
	}

	log.Info("feed deleted", zap.String("feed_id", id))
	return c.NoContent(http.StatusNoContent)
}
