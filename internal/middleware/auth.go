package middleware

import (
	"strings"

	"github.com/fekuna/omnipos-poultry-service/internal/apperror"
	"github.com/fekuna/omnipos-poultry-service/internal/auth"
	"github.com/fekuna/omnipos-poultry-service/internal/logger"
	"github.com/fekuna/omnipos-poultry-service/internal/response"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Auth validates the Bearer token and stores its claims in the context.
func Auth(tokens *auth.TokenManager, base logger.ZapLogger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			log := Logger(c, base)

			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				log.Warn("missing Authorization header")
				return response.Error(c, log, apperror.Unauthorized("missing authorization token"))
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				log.Warn("invalid Authorization header format")
				return response.Error(c, log, apperror.Unauthorized("invalid authorization format, expected Bearer token"))
			}

			claims, err := tokens.Validate(parts[1])
			if err != nil {
				log.Warn("invalid JWT token", zap.Error(err))
				return response.Error(c, log, apperror.Unauthorized("invalid or expired token"))
			}

			auth.SetClaims(c, claims)
			c.Set(loggerKey, log.With(zap.String("user_id", claims.UserID), zap.String("role", string(claims.Role))))

			return next(c)
		}
	}
}

// Require rejects requests whose role lacks the capability. It must run after Auth.
func Require(capability auth.Capability, base logger.ZapLogger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			log := Logger(c, base)
			claims := auth.ClaimsFrom(c)
			if claims == nil {
				return response.Error(c, log, apperror.Unauthorized("not signed in"))
			}
			if !auth.HasCapability(claims.Role, capability) {
				log.Warn("capability denied", zap.String("capability", string(capability)))
				return response.Error(c, log, apperror.Forbidden("role "+string(claims.Role)+" may not use "+string(capability)))
			}
			return next(c)
		}
	}
}
