package middleware

import (
	"github.com/fekuna/omnipos-poultry-service/internal/logger"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
	loggerKey       = "logger"
)

// RequestID tags each request with an id, reusing the caller's header when
// present, and stores a logger carrying that id in the echo context.
func RequestID(base logger.ZapLogger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requestID := c.Request().Header.Get(requestIDHeader)
			if requestID == "" {
				requestID = uuid.New().String()
				c.Request().Header.Set(requestIDHeader, requestID)
			}
			c.Response().Header().Set(requestIDHeader, requestID)

			c.Set(requestIDKey, requestID)
			c.Set(loggerKey, base.With(zap.String("request_id", requestID)))

			return next(c)
		}
	}
}

// Logger returns the request-scoped logger, or fallback outside a request.
func Logger(c echo.Context, fallback logger.ZapLogger) logger.ZapLogger {
	if log, ok := c.Get(loggerKey).(logger.ZapLogger); ok {
		return log
	}
	return fallback
}

func RequestIDFrom(c echo.Context) string {
	id, _ := c.Get(requestIDKey).(string)
	return id
}
