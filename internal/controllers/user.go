package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/eneca-dev/enecawork-backend/internal/services"
	"github.com/eneca-dev/enecawork-backend/pkg/utils"
)

type UserController struct {
	userService services.UserServiceInterface
	logger      *zap.Logger
}

func NewUserController(userService services.UserServiceInterface, logger *zap.Logger) *UserController {
	return &UserController{userService: userService, logger: logger}
}

// GetMe обслуживает и GET, и POST /users/me.
func (ctrl *UserController) GetMe(c echo.Context) error {
	token, err := utils.GetAccessTokenFromCtx(c.Request().Context())
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	res, err := ctrl.userService.GetCurrentUser(c.Request().Context(), token)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, res, http.StatusOK)
}
