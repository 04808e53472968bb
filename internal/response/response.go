package response

import (
	"errors"
	"net/http"

	"github.com/fekuna/omnipos-poultry-service/internal/apperror"
	"github.com/fekuna/omnipos-poultry-service/internal/logger"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type apiError struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

type Page struct {
	Data     interface{} `json:"data"`
	Total    int         `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
}

// Error writes err as {"error","code"} with the status of its kind.
// Internal errors are logged and their message is replaced.
func Error(c echo.Context, log logger.ZapLogger, err error) error {
	status := apperror.HTTPStatus(err)
	kind := apperror.KindOf(err)

	message := err.Error()
	if kind == apperror.KindInternal {
		log.Error("request failed", zap.Error(err), zap.String("path", c.Path()))
		message = http.StatusText(http.StatusInternalServerError)
	} else {
		log.Debug("request rejected", zap.String("code", kind.String()), zap.String("reason", message))
	}

	return c.JSON(status, apiError{Error: message, Code: kind.String()})
}

func OK(c echo.Context, v interface{}) error {
	return c.JSON(http.StatusOK, v)
}

func Created(c echo.Context, v interface{}) error {
	return c.JSON(http.StatusCreated, v)
}

// Validator adapts go-playground/validator to echo.
type Validator struct {
	v *validator.Validate
}

func NewValidator() *Validator {
	return &Validator{v: validator.New(validator.WithRequiredStructEnabled())}
}

func (cv *Validator) Validate(i interface{}) error {
	return cv.v.Struct(i)
}

// Bind decodes the request into dst and validates it, returning a
// Validation error for either failure.
func Bind(c echo.Context, dst interface{}) error {
	if err := c.Bind(dst); err != nil {
		return apperror.Validation("invalid request body")
	}
	if err := c.Validate(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return apperror.Validationf("field %s failed on %s", fe.Field(), fe.Tag())
		}
		return apperror.Validation(err.Error())
	}
	return nil
}
