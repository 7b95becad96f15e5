package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/eneca-dev/enecawork-backend/internal/dto"
	"github.com/eneca-dev/enecawork-backend/internal/services"
	apperrors "github.com/eneca-dev/enecawork-backend/pkg/errors"
	"github.com/eneca-dev/enecawork-backend/pkg/types"
	"github.com/eneca-dev/enecawork-backend/pkg/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var digestProjectHeaders = []interface{}{"ID проекта", "Проект", "Руководитель проекта", "Email руководителя"}

type DigestController struct {
	digestService services.DigestServiceInterface
	logger        *zap.Logger
}

func NewDigestController(digestService services.DigestServiceInterface, logger *zap.Logger) *DigestController {
	return &DigestController{digestService: digestService, logger: logger}
}

func (ctrl *DigestController) errorResponse(c echo.Context, err error) error {
	return utils.ErrorResponse(c, err, ctrl.logger)
}

func (ctrl *DigestController) GetProjects(c echo.Context) error {
	res, err := ctrl.digestService.GetUniqueProjects(c.Request().Context())
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, res, http.StatusOK)
}

// ExportProjects отдаёт тот же список проектов файлом .xlsx.
func (ctrl *DigestController) ExportProjects(c echo.Context) error {
	res, err := ctrl.digestService.GetUniqueProjects(c.Request().Context())
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return ctrl.respondWithXLSX(c, res)
}

// GetDigest - вариант с телом запроса {project_id, digest_date}.
func (ctrl *DigestController) GetDigest(c echo.Context) error {
	var payload dto.DigestRequestDTO
	if err := utils.BindAndValidate(c, &payload); err != nil {
		return ctrl.errorResponse(c, err)
	}

	res, err := ctrl.digestService.GetDigest(c.Request().Context(), payload.ProjectID, payload.DigestDate)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, res, http.StatusOK)
}

// GetDigestByProject - GET /digest/markdown/:id?date=YYYY-MM-DD.
func (ctrl *DigestController) GetDigestByProject(c echo.Context) error {
	projectID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return ctrl.errorResponse(c, apperrors.Validation(apperrors.AreaDigest, "Некорректный ID проекта"))
	}
	date, err := types.ParseDate(c.QueryParam("date"))
	if err != nil {
		return ctrl.errorResponse(c, apperrors.Validation(apperrors.AreaDigest, "Некорректная дата, ожидается YYYY-MM-DD"))
	}

	res, err := ctrl.digestService.GetDigest(c.Request().Context(), projectID, date)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, res, http.StatusOK)
}

func (ctrl *DigestController) respondWithXLSX(c echo.Context, projects []dto.ProjectInfo) error {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			ctrl.logger.Warn("не удалось закрыть xlsx", zap.Error(err))
		}
	}()

	sheet := "Проекты"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return ctrl.errorResponse(c, err)
	}
	if err := f.SetSheetRow(sheet, "A1", &digestProjectHeaders); err != nil {
		return ctrl.errorResponse(c, err)
	}
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		ctrl.logger.Warn("не удалось создать стиль заголовка xlsx", zap.Error(err))
	} else if err := f.SetCellStyle(sheet, "A1", "D1", style); err != nil {
		ctrl.logger.Warn("не удалось применить стиль заголовка xlsx", zap.Error(err))
	}

	for i, p := range projects {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return ctrl.errorResponse(c, err)
		}
		row := []interface{}{p.ProjectID, p.ProjectName, p.ProjectManager, p.ProjectManagerEmail}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return ctrl.errorResponse(c, err)
		}
	}
	for _, w := range []struct {
		from, to string
		width    float64
	}{{"B", "B", 40}, {"C", "D", 30}} {
		if err := f.SetColWidth(sheet, w.from, w.to, w.width); err != nil {
			ctrl.logger.Warn("не удалось задать ширину колонок xlsx", zap.String("columns", w.from+":"+w.to), zap.Error(err))
		}
	}

	fileName := fmt.Sprintf("digest_projects_%s.xlsx", time.Now().Format(types.DateLayout))
	c.Response().Header().Set(echo.HeaderContentType, xlsxContentType)
	c.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename="+fileName)
	c.Response().WriteHeader(http.StatusOK)
	return f.Write(c.Response().Writer)
}
