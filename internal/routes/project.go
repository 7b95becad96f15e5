package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/eneca-dev/enecawork-backend/internal/controllers"
)

func runProjectRouter(projectsGroup *echo.Group, projectCtrl *controllers.ProjectController, assignmentCtrl *controllers.AssignmentController) {
	projectsGroup.GET("", projectCtrl.GetProjects)
	projectsGroup.GET("/:id/sections", projectCtrl.GetProjectSections)
	projectsGroup.GET("/:id/assignments", assignmentCtrl.GetProjectAssignments)
	projectsGroup.POST("/:id/assignments", assignmentCtrl.CreateAssignment)
}

func runAssignmentRouter(assignmentsGroup *echo.Group, assignmentCtrl *controllers.AssignmentController) {
	assignmentsGroup.PATCH("/:id", assignmentCtrl.UpdateAssignment)
	assignmentsGroup.PATCH("/:id/status", assignmentCtrl.UpdateAssignmentStatus)
	assignmentsGroup.DELETE("/:id", assignmentCtrl.DeleteAssignment)
}
