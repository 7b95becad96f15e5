package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/eneca-dev/enecawork-backend/internal/controllers"
	"github.com/eneca-dev/enecawork-backend/pkg/middleware"
)

func runAuthRouter(authGroup *echo.Group, authCtrl *controllers.AuthController, authMW *middleware.AuthMiddleware) {
	authGroup.POST("/register", authCtrl.Register)
	authGroup.POST("/login", authCtrl.Login)
	authGroup.POST("/reset-password", authCtrl.ResetPassword)
	authGroup.POST("/refresh-token", authCtrl.RefreshToken)
	authGroup.POST("/update-password", authCtrl.UpdatePassword, authMW.RequireBearer)
	authGroup.POST("/logout", authCtrl.Logout, authMW.RequireBearer)
}
