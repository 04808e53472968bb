package handler

import (
	"net/http"

	"github.com/fekuna/omnipos-poultry-service/internal/apperror"
	"github.com/fekuna/omnipos-poultry-service/internal/logger"
	"github.com/fekuna/omnipos-poultry-service/internal/middleware"
	"github.com/fekuna/omnipos-poultry-service/internal/model"
	"github.com/fekuna/omnipos-poultry-service/internal/response"
	"github.com/fekuna/omnipos-poultry-service/internal/user"
	"github.com/fekuna/omnipos-poultry-service/internal/user/dto"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type UserHandler struct {
	uc     user.UseCase
	logger logger.ZapLogger
}

func NewUserHandler(uc user.UseCase, log logger.ZapLogger) *UserHandler {
	return &UserHandler{uc: uc, logger: log}
}

type createUserRequest struct {
	Name     string     `json:"name" validate:"required"`
	Role     model.Role `json:"role" validate:"required,oneof=Admin Manager Staff"`
	Email    string     `json:"email" validate:"required,email"`
	Password string     `json:"password" validate:"required"`
}

type updateUserRequest struct {
	Name     string     `json:"name" validate:"required"`
	Role     model.Role `json:"role" validate:"required,oneof=Admin Manager Staff"`
	Email    string     `json:"email" validate:"required,email"`
	Password string     `json:"password"`
}

func (h *UserHandler) CreateUser(c echo.Context) error {
	log := middleware.Logger(c, h.logger)

	var req createUserRequest
	if err := response.Bind(c, &req); err != nil {
		return response.Error(c, log, err)
	}

	u, err := h.uc.CreateUser(c.Request().Context(), &dto.CreateUserInput{
		Name:     req.Name,
		Role:     req.Role,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return response.Error(c, log, err)
	}

	log.Info("user created", zap.String("new_user_id", u.ID), zap.String("new_user_role", string(u.Role)))
	return response.Created(c, u)
}

func (h *UserHandler) GetUser(c echo.Context) error {
	u, err := h.uc.GetUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, middleware.Logger(c, h.logger), err)
	}
	return response.OK(c, u)
}

func (h *UserHandler) ListUsers(c echo.Context) error {
	log := middleware.Logger(c, h.logger)

	filters := &dto.UserFilters{
		Role:        model.Role(c.QueryParam("role")),
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

	users, count, err := h.uc.ListUsers(c.Request().Context(), filters)
	if err != nil {
		return response.Error(c, log, err)
	}
	return response.OK(c, response.Page{Data: users, Total: count, Page: filters.Page, PageSize: filters.PageSize})
}

func (h *UserHandler) UpdateUser(c echo.Context) error {
	log := middleware.Logger(c, h.logger)

	var req updateUserRequest
	if err := response.Bind(c, &req); err != nil {
		return response.Error(c, log, err)
	}

	u, err := h.uc.UpdateUser(c.Request().Context(), &dto.UpdateUserInput{
		ID:       c.Param("id"),
		Name:     req.Name,
		Role:     req.Role,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return response.Error(c, log, err)
	}

	log.Info("user updated", zap.String("target_user_id", u.ID))
	return response.OK(c, u)
}

func (h *UserHandler) DeleteUser(c echo.Context) error {
	log := middleware.Logger(c, h.logger)

	id := c.Param("id")
	if err := h.uc.DeleteUser(c.Request().Context(), id); err != nil {
		return response.Error(c, log, err)
	}

	log.Info("user deleted", zap.String("target_user_id", id))
	return c.NoContent(http.StatusNoContent)
}
