package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/eneca-dev/enecawork-backend/internal/controllers"
	"github.com/eneca-dev/enecawork-backend/internal/infrastructure/bd"
	"github.com/eneca-dev/enecawork-backend/internal/listeners"
	"github.com/eneca-dev/enecawork-backend/internal/repositories"
	"github.com/eneca-dev/enecawork-backend/internal/services"
	"github.com/eneca-dev/enecawork-backend/pkg/config"
	"github.com/eneca-dev/enecawork-backend/pkg/eventbus"
	"github.com/eneca-dev/enecawork-backend/pkg/metrics"
	"github.com/eneca-dev/enecawork-backend/pkg/middleware"
	"github.com/eneca-dev/enecawork-backend/pkg/service"
)

// Dependencies - всё, что роутеру нужно снаружи. Cache и JWT необязательны,
// Bus создаётся здесь же, если не передан.
type Dependencies struct {
	Store  bd.Store
	Auth   services.AuthProvider
	Cache  repositories.CacheRepositoryInterface
	JWT    service.JWTService
	Bus    *eventbus.Bus
	Config *config.Config
	Logger *zap.Logger
}

func InitRouter(e *echo.Echo, deps Dependencies) {
	logger := deps.Logger
	logger.Info("InitRouter: Начало создания маршрутов")

	// --- 1. РЕПОЗИТОРИИ ---
	userRepo := repositories.NewUserRepository(deps.Store, logger.Named("users"))
	projectRepo := repositories.NewProjectRepository(deps.Store, logger.Named("projects"))
	sectionRepo := repositories.NewSectionRepository(deps.Store, logger.Named("projects"))
	assignmentRepo := repositories.NewAssignmentRepository(deps.Store, logger.Named("assignments"))
	digestRepo := repositories.NewDigestRepository(deps.Store, logger.Named("digest"))

	bus := deps.Bus
	if bus == nil {
		bus = eventbus.New(logger.Named("events"))
	}
	listeners.NewActivityListener(logger.Named("activity")).Register(bus)

	// --- 2. СЕРВИСЫ ---
	authService := services.NewAuthService(deps.Auth, userRepo, deps.Cache, logger.Named("auth"), &deps.Config.Auth)
	userService := services.NewUserService(deps.Auth, userRepo, logger.Named("users"))
	projectService := services.NewProjectService(projectRepo, sectionRepo, logger.Named("projects"))
	assignmentService := services.NewAssignmentService(assignmentRepo, projectRepo, bus, logger.Named("assignments"))
	digestService := services.NewDigestService(digestRepo, logger.Named("digest"))

	// --- 3. КОНТРОЛЛЕРЫ ---
	authCtrl := controllers.NewAuthController(authService, logger.Named("auth"))
	userCtrl := controllers.NewUserController(userService, logger.Named("users"))
	projectCtrl := controllers.NewProjectController(projectService, logger.Named("projects"))
	assignmentCtrl := controllers.NewAssignmentController(assignmentService, logger.Named("assignments"))
	digestCtrl := controllers.NewDigestController(digestService, logger.Named("digest"))

	authMW := middleware.NewAuthMiddleware(deps.JWT, authService, logger.Named("auth"))

	// --- 4. РОУТЕРЫ ---
	e.GET("/", healthCheck)
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	runAuthRouter(e.Group("/auth"), authCtrl, authMW)
	runUserRouter(e.Group("/users"), userCtrl, authMW)
	runProjectRouter(e.Group("/projects", authMW.Authenticate), projectCtrl, assignmentCtrl)
	runAssignmentRouter(e.Group("/assignments", authMW.Authenticate), assignmentCtrl)
	runDigestRouter(e.Group("/digest"), digestCtrl)

	logger.Info("InitRouter: Создание маршрутов завершено")
}

func healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "healthy"})
}
