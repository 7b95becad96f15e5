package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/eneca-dev/enecawork-backend/internal/controllers"
)

func runDigestRouter(digestGroup *echo.Group, digestCtrl *controllers.DigestController) {
	digestGroup.GET("/projects", digestCtrl.GetProjects)
	digestGroup.GET("/projects/export", digestCtrl.ExportProjects)
	digestGroup.POST("/markdown", digestCtrl.GetDigest)
	digestGroup.GET("/markdown/:id", digestCtrl.GetDigestByProject)
}
