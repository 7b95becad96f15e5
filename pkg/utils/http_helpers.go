package utils

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	apperrors "github.com/eneca-dev/enecawork-backend/pkg/errors"
	"github.com/eneca-dev/enecawork-backend/pkg/types"
)

// ParseUUIDParam читает UUID из path-параметра. Некорректное значение - 422.
func ParseUUIDParam(c echo.Context, name, area string) (uuid.UUID, error) {
	raw := strings.TrimSpace(c.Param(name))
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperrors.Validation(area, "Некорректный идентификатор: "+name)
	}
	return id, nil
}

// BindAndValidate - Bind + Validate одним вызовом, как в каждом хендлере с телом запроса.
func BindAndValidate(c echo.Context, dst interface{}) error {
	if err := c.Bind(dst); err != nil {
		if errors.Is(err, types.ErrInvalidDate) {
			return apperrors.Validation("", "Некорректная дата, ожидается YYYY-MM-DD")
		}
		return apperrors.ErrBadRequest
	}
	return c.Validate(dst)
}
