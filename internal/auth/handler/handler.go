package handler

import (
	"net/http"
	"time"

	"github.com/fekuna/omnipos-poultry-service/internal/apperror"
	"github.com/fekuna/omnipos-poultry-service/internal/auth"
	"github.com/fekuna/omnipos-poultry-service/internal/cart"
	"github.com/fekuna/omnipos-poultry-service/internal/logger"
	"github.com/fekuna/omnipos-poultry-service/internal/middleware"
	"github.com/fekuna/omnipos-poultry-service/internal/model"
	"github.com/fekuna/omnipos-poultry-service/internal/response"
	"github.com/fekuna/omnipos-poultry-service/internal/user"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type AuthHandler struct {
	users  user.UseCase
	tokens *auth.TokenManager
	carts  *cart.Registry
	logger logger.ZapLogger
}

func NewAuthHandler(users user.UseCase, tokens *auth.TokenManager, carts *cart.Registry, log logger.ZapLogger) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens, carts: carts, logger: log}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type sessionView struct {
	Token        string            `json:"token,omitempty"`
	ExpiresAt    *time.Time        `json:"expires_at,omitempty"`
	User         *model.User       `json:"user"`
	Capabilities []auth.Capability `json:"capabilities"`
	HomeScreen   auth.Screen       `json:"home_screen"`
}

func session(u *model.User) *sessionView {
	return &sessionView{
		User:         u,
		Capabilities: auth.Capabilities(u.Role),
		HomeScreen:   auth.HomeScreen(u.Role),
	}
}

// Login exchanges an email and password for a bearer token and tells the
// client which screen the role lands on.
func (h *AuthHandler) Login(c echo.Context) error {
	log := middleware.Logger(c, h.logger)

	var req loginRequest
	if err := response.Bind(c, &req); err != nil {
		return response.Error(c, log, err)
	}

	u, err := h.users.Authenticate(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return response.Error(c, log, err)
	}

	token, expiresAt, err := h.tokens.Issue(u)
	if err != nil {
		return response.Error(c, log, err)
	}

	log.Info("user logged in", zap.String("user_id", u.ID), zap.String("role", string(u.Role)))

	view := session(u)
	view.Token = token
	view.ExpiresAt = &expiresAt
	return response.OK(c, view)
}

// Logout discards the caller's cart. Tokens are stateless, so the client is
// expected to forget its own.
func (h *AuthHandler) Logout(c echo.Context) error {
	userID := auth.UserID(c)
	if userID == "" {
		return response.Error(c, middleware.Logger(c, h.logger), apperror.Unauthorized("not logged in"))
	}
	h.carts.Drop(userID)
	return c.JSON(http.StatusOK, map[string]auth.Screen{"next_screen": auth.ScreenLogin})
}

func (h *AuthHandler) Me(c echo.Context) error {
	log := middleware.Logger(c, h.logger)

	u, err := h.users.GetUser(c.Request().Context(), auth.UserID(c))
	if err != nil {
		return response.Error(c, log, err)
	}
	return response.OK(c, session(u))
}
