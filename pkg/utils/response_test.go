package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "github.com/eneca-dev/enecawork-backend/pkg/errors"
	"github.com/eneca-dev/enecawork-backend/pkg/types"
	"github.com/eneca-dev/enecawork-backend/pkg/validation"
)

func TestTranslate(t *testing.T) {
	logger := zap.NewNop()

	tests := []struct {
		name string
		err  error
		code int
		msg  string
	}{
		{"not found", apperrors.NotFound(apperrors.AreaAssignments, "Задание с ID %s не найдено", "x"), 404, "Задание с ID x не найдено"},
		{"обёрнутая", fmt.Errorf("wrap: %w", apperrors.Conflict(apperrors.AreaAuth, "User already exists", nil)), 409, "User already exists"},
		{"база скрывает причину", apperrors.Database(apperrors.AreaDigest, "получении дайджеста", errors.New("pq: secret")), 500, "Ошибка базы данных при получении дайджеста"},
		{"лимит", apperrors.RateLimited(apperrors.AreaAuth, nil), 429, "Too many requests"},
		{"echo 404", echo.ErrNotFound, 404, "Not Found"},
		{"echo 500", echo.NewHTTPError(http.StatusInternalServerError, "panic details"), 500, internalErrorMessage},
		{"неизвестная", errors.New("boom"), 500, internalErrorMessage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, msg := Translate(tt.err, logger)
			assert.Equal(t, tt.code, code)
			assert.Equal(t, tt.msg, msg)
		})
	}
}

func TestTranslate_ValidationErrors(t *testing.T) {
	var payload struct {
		Status string `json:"status" validate:"required,assignment_status"`
	}
	payload.Status = "Done"
	err := validation.New().Validate(payload)
	require.Error(t, err)

	code, msg := Translate(err, zap.NewNop())
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Contains(t, msg, "status")
}

func TestHTTPErrorHandler(t *testing.T) {
	e := echo.New()
	e.HTTPErrorHandler = NewHTTPErrorHandler(zap.NewNop())
	e.GET("/boom", func(c echo.Context) error {
		return apperrors.Validation(apperrors.AreaAuth, "Passwords do not match")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var body ErrorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Passwords do not match", body.Detail)
}

func TestParseUUIDParam(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("not-a-uuid")

	_, err := ParseUUIDParam(c, "id", apperrors.AreaProjects)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))

	c.SetParamValues("8d5e4c1a-1f7b-4a59-9b0e-5a3c6c2d1e00")
	id, err := ParseUUIDParam(c, "id", apperrors.AreaProjects)
	require.NoError(t, err)
	assert.Equal(t, "8d5e4c1a-1f7b-4a59-9b0e-5a3c6c2d1e00", id.String())
}

func TestBindAndValidate(t *testing.T) {
	e := echo.New()
	e.Validator = validation.New()

	type payload struct {
		Due types.Date `json:"due" validate:"required"`
	}
	bind := func(body string) error {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		var p payload
		return BindAndValidate(e.NewContext(req, httptest.NewRecorder()), &p)
	}

	assert.NoError(t, bind(`{"due":"2024-03-20"}`))

	err := bind(`{"due":"2024-03-20xyz"}`)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation), "получено: %v", err)

	err = bind(`{"due":`)
	assert.Same(t, apperrors.ErrBadRequest, err)
}
