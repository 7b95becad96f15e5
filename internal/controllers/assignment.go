package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/eneca-dev/enecawork-backend/internal/dto"
	"github.com/eneca-dev/enecawork-backend/internal/services"
	apperrors "github.com/eneca-dev/enecawork-backend/pkg/errors"
	"github.com/eneca-dev/enecawork-backend/pkg/utils"
)

type AssignmentController struct {
	assignmentService services.AssignmentServiceInterface
	logger            *zap.Logger
}

func NewAssignmentController(assignmentService services.AssignmentServiceInterface, logger *zap.Logger) *AssignmentController {
	return &AssignmentController{assignmentService: assignmentService, logger: logger}
}

func (ctrl *AssignmentController) errorResponse(c echo.Context, err error) error {
	return utils.ErrorResponse(c, err, ctrl.logger)
}

func (ctrl *AssignmentController) GetProjectAssignments(c echo.Context) error {
	projectID, err := utils.ParseUUIDParam(c, "id", apperrors.AreaAssignments)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}

	res, err := ctrl.assignmentService.GetProjectAssignments(c.Request().Context(), projectID)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, res, http.StatusOK)
}

func (ctrl *AssignmentController) CreateAssignment(c echo.Context) error {
	ctx := c.Request().Context()
	principal, err := utils.GetPrincipalFromCtx(ctx)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	projectID, err := utils.ParseUUIDParam(c, "id", apperrors.AreaAssignments)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}

	var payload dto.CreateAssignmentDTO
	if err := utils.BindAndValidate(c, &payload); err != nil {
		return ctrl.errorResponse(c, err)
	}

	res, err := ctrl.assignmentService.CreateAssignment(ctx, principal, projectID, payload)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, res, http.StatusCreated)
}

func (ctrl *AssignmentController) UpdateAssignment(c echo.Context) error {
	ctx := c.Request().Context()
	principal, err := utils.GetPrincipalFromCtx(ctx)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	id, err := utils.ParseUUIDParam(c, "id", apperrors.AreaAssignments)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}

	var payload dto.UpdateAssignmentDTO
	if err := utils.BindAndValidate(c, &payload); err != nil {
		return ctrl.errorResponse(c, err)
	}

	res, err := ctrl.assignmentService.UpdateAssignment(ctx, principal, id, payload)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, res, http.StatusOK)
}

func (ctrl *AssignmentController) UpdateAssignmentStatus(c echo.Context) error {
	ctx := c.Request().Context()
	principal, err := utils.GetPrincipalFromCtx(ctx)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	id, err := utils.ParseUUIDParam(c, "id", apperrors.AreaAssignments)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}

	var payload dto.UpdateAssignmentStatusDTO
	if err := utils.BindAndValidate(c, &payload); err != nil {
		return ctrl.errorResponse(c, err)
	}

	msg, err := ctrl.assignmentService.UpdateAssignmentStatus(ctx, principal, id, payload)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.MessageResponse(c, msg, http.StatusOK)
}

func (ctrl *AssignmentController) DeleteAssignment(c echo.Context) error {
	ctx := c.Request().Context()
	principal, err := utils.GetPrincipalFromCtx(ctx)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	id, err := utils.ParseUUIDParam(c, "id", apperrors.AreaAssignments)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}

	msg, err := ctrl.assignmentService.DeleteAssignment(ctx, principal, id)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.MessageResponse(c, msg, http.StatusOK)
}
