package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/eneca-dev/enecawork-backend/internal/services"
	apperrors "github.com/eneca-dev/enecawork-backend/pkg/errors"
	"github.com/eneca-dev/enecawork-backend/pkg/utils"
)

type ProjectController struct {
	projectService services.ProjectServiceInterface
	logger         *zap.Logger
}

func NewProjectController(projectService services.ProjectServiceInterface, logger *zap.Logger) *ProjectController {
	return &ProjectController{projectService: projectService, logger: logger}
}

func (ctrl *ProjectController) GetProjects(c echo.Context) error {
	res, err := ctrl.projectService.GetProjects(c.Request().Context())
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, res, http.StatusOK)
}

func (ctrl *ProjectController) GetProjectSections(c echo.Context) error {
	projectID, err := utils.ParseUUIDParam(c, "id", apperrors.AreaProjects)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	res, err := ctrl.projectService.GetProjectSections(c.Request().Context(), projectID)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, res, http.StatusOK)
}
