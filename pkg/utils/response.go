package utils

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/eneca-dev/enecawork-backend/pkg/errors"
)

const internalErrorMessage = "Internal server error"

// ErrorBody - единый формат ошибки для клиента.
type ErrorBody struct {
	Detail string `json:"detail"`
}

// MessageBody - ответ операций, у которых нет данных.
type MessageBody struct {
	Message string `json:"message"`
}

func SuccessResponse(c echo.Context, body interface{}, code int) error {
	return c.JSON(code, body)
}

func MessageResponse(c echo.Context, message string, code int) error {
	return c.JSON(code, MessageBody{Message: message})
}

// Translate переводит ошибку в HTTP-статус и сообщение для клиента.
// Внутренние детали остаются только в логе.
func Translate(err error, logger *zap.Logger) (int, string) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		code := appErr.Status()
		fields := []zap.Field{
			zap.String("area", appErr.Area),
			zap.String("kind", appErr.Kind.String()),
			zap.Int("code", code),
			zap.String("message", appErr.Message),
		}
		if appErr.Err != nil {
			fields = append(fields, zap.Error(appErr.Err))
		}
		if len(appErr.Context) > 0 {
			fields = append(fields, zap.Any("context", appErr.Context))
		}
		if code >= http.StatusInternalServerError {
			logger.Error("HTTP Error", fields...)
		} else {
			logger.Warn("HTTP Error", fields...)
		}
		return code, appErr.Message
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		msgs := make([]string, 0, len(validationErrors))
		for _, e := range validationErrors {
			msgs = append(msgs, fmt.Sprintf("Поле '%s' не прошло проверку '%s'", e.Field(), e.Tag()))
		}
		return http.StatusUnprocessableEntity, "Ошибка валидации: " + strings.Join(msgs, "; ")
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		msg := http.StatusText(httpErr.Code)
		if s, ok := httpErr.Message.(string); ok && s != "" {
			msg = s
		}
		if httpErr.Code >= http.StatusInternalServerError {
			logger.Error("HTTP Error", zap.Int("code", httpErr.Code), zap.Error(err))
			msg = internalErrorMessage
		}
		return httpErr.Code, msg
	}

	logger.Error("Unexpected Error", zap.Error(err))
	return http.StatusInternalServerError, internalErrorMessage
}

func ErrorResponse(c echo.Context, err error, logger *zap.Logger) error {
	code, msg := Translate(err, logger)
	return c.JSON(code, ErrorBody{Detail: msg})
}

// NewHTTPErrorHandler - обработчик echo для ошибок, которые вернули хендлеры и middleware.
func NewHTTPErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		code, msg := Translate(err, logger)
		if c.Request().Method == http.MethodHead {
			err = c.NoContent(code)
		} else {
			err = c.JSON(code, ErrorBody{Detail: msg})
		}
		if err != nil {
			logger.Error("не удалось отправить ответ с ошибкой", zap.Error(err))
		}
	}
}
