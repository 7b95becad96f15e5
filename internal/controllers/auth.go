package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/eneca-dev/enecawork-backend/internal/dto"
	"github.com/eneca-dev/enecawork-backend/internal/services"
	"github.com/eneca-dev/enecawork-backend/pkg/utils"
)

type AuthController struct {
	authService services.AuthServiceInterface
	logger      *zap.Logger
}

func NewAuthController(authService services.AuthServiceInterface, logger *zap.Logger) *AuthController {
	return &AuthController{authService: authService, logger: logger}
}

func (ctrl *AuthController) errorResponse(c echo.Context, err error) error {
	return utils.ErrorResponse(c, err, ctrl.logger)
}

func (ctrl *AuthController) Register(c echo.Context) error {
	var payload dto.RegisterDTO
	if err := utils.BindAndValidate(c, &payload); err != nil {
		return ctrl.errorResponse(c, err)
	}

	res, err := ctrl.authService.Register(c.Request().Context(), payload)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, res, http.StatusCreated)
}

func (ctrl *AuthController) Login(c echo.Context) error {
	var payload dto.LoginDTO
	if err := utils.BindAndValidate(c, &payload); err != nil {
		return ctrl.errorResponse(c, err)
	}

	res, err := ctrl.authService.Login(c.Request().Context(), payload)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, res, http.StatusOK)
}

func (ctrl *AuthController) ResetPassword(c echo.Context) error {
	var payload dto.ResetPasswordDTO
	if err := utils.BindAndValidate(c, &payload); err != nil {
		return ctrl.errorResponse(c, err)
	}

	msg, err := ctrl.authService.ResetPassword(c.Request().Context(), payload)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.MessageResponse(c, msg, http.StatusOK)
}

// UpdatePassword - access-токен кладёт в контекст RequireBearer.
func (ctrl *AuthController) UpdatePassword(c echo.Context) error {
	token, err := utils.GetAccessTokenFromCtx(c.Request().Context())
	if err != nil {
		return ctrl.errorResponse(c, err)
	}

	var payload dto.UpdatePasswordDTO
	if err := utils.BindAndValidate(c, &payload); err != nil {
		return ctrl.errorResponse(c, err)
	}

	msg, err := ctrl.authService.UpdatePassword(c.Request().Context(), token, payload)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.MessageResponse(c, msg, http.StatusOK)
}

func (ctrl *AuthController) RefreshToken(c echo.Context) error {
	var payload dto.RefreshTokenDTO
	if err := utils.BindAndValidate(c, &payload); err != nil {
		return ctrl.errorResponse(c, err)
	}

	res, err := ctrl.authService.RefreshToken(c.Request().Context(), payload)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, res, http.StatusOK)
}

func (ctrl *AuthController) Logout(c echo.Context) error {
	token, err := utils.GetAccessTokenFromCtx(c.Request().Context())
	if err != nil {
		return ctrl.errorResponse(c, err)
	}

	msg, err := ctrl.authService.Logout(c.Request().Context(), token)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.MessageResponse(c, msg, http.StatusOK)
}
