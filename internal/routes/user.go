package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/eneca-dev/enecawork-backend/internal/controllers"
	"github.com/eneca-dev/enecawork-backend/pkg/middleware"
)

// /users/me проверяет токен сам, через Auth API, поэтому здесь только RequireBearer.
func runUserRouter(usersGroup *echo.Group, userCtrl *controllers.UserController, authMW *middleware.AuthMiddleware) {
	usersGroup.GET("/me", userCtrl.GetMe, authMW.RequireBearer)
	usersGroup.POST("/me", userCtrl.GetMe, authMW.RequireBearer)
}
