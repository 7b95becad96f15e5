// Файл: main.go

package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/eneca-dev/enecawork-backend/internal/infrastructure/bd"
	"github.com/eneca-dev/enecawork-backend/internal/repositories"
	"github.com/eneca-dev/enecawork-backend/internal/routes"
	"github.com/eneca-dev/enecawork-backend/pkg/config"
	"github.com/eneca-dev/enecawork-backend/pkg/database/postgresql"
	"github.com/eneca-dev/enecawork-backend/pkg/eventbus"
	apperrors "github.com/eneca-dev/enecawork-backend/pkg/errors"
	applogger "github.com/eneca-dev/enecawork-backend/pkg/logger"
	"github.com/eneca-dev/enecawork-backend/pkg/metrics"
	appmiddleware "github.com/eneca-dev/enecawork-backend/pkg/middleware"
	"github.com/eneca-dev/enecawork-backend/pkg/service"
	"github.com/eneca-dev/enecawork-backend/pkg/supabase"
	"github.com/eneca-dev/enecawork-backend/pkg/utils"
	"github.com/eneca-dev/enecawork-backend/pkg/validation"
)

func main() {
	// 1. Конфиг и логгер
	cfg := config.New()

	logger, err := applogger.NewLogger(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		log.Fatalf("не удалось создать логгер: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := cfg.Validate(); err != nil {
		logger.Fatal("некорректная конфигурация", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Echo и middleware
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = utils.NewHTTPErrorHandler(logger)
	e.Validator = validation.New()

	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		DisableStackAll: true,
		StackSize:       1 << 10,
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			logger.Error("!!! ОБНАРУЖЕНА ПАНИКА (PANIC) !!!",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Error(err),
				zap.String("stack", string(stack)),
			)
			if !c.Response().Committed {
				_ = utils.ErrorResponse(c, apperrors.New(apperrors.KindDatabase, "", "Internal server error", err), logger)
			}
			return err
		},
	}))
	e.Use(metrics.Middleware())
	e.Use(appmiddleware.RequestLogger(logger.Named("http")))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: !containsWildcard(cfg.Server.AllowedOrigins),
		ExposeHeaders:    []string{echo.HeaderContentDisposition},
	}))

	// 3. Клиент Supabase, один на процесс
	sb, err := supabase.New(supabase.Config{
		URL:        cfg.Supabase.URL,
		AnonKey:    cfg.Supabase.AnonKey,
		ServiceKey: cfg.Supabase.ServiceKey,
		Timeout:    cfg.Supabase.Timeout,
	})
	if err != nil {
		logger.Fatal("не удалось создать клиент Supabase", zap.Error(err))
	}

	// 4. Табличное хранилище
	store, pool, err := openStore(ctx, cfg, sb, logger)
	if err != nil {
		logger.Fatal("не удалось подготовить хранилище", zap.Error(err))
	}
	if pool != nil {
		defer pool.Close()
	}

	// 5. Redis (необязателен)
	var cacheRepo repositories.CacheRepositoryInterface
	if cfg.Redis.Address != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       0,
		})
		defer func() { _ = redisClient.Close() }()
		if _, err := redisClient.Ping(ctx).Result(); err != nil {
			logger.Fatal("не удалось подключиться к Redis", zap.Error(err), zap.String("address", cfg.Redis.Address))
		}
		cacheRepo = repositories.NewRedisCacheRepository(redisClient)
	} else {
		logger.Warn("REDIS_ADDRESS не задан, защита от повторных запросов сброса пароля выключена")
	}

	// 6. Локальная проверка токенов, если задан секрет
	var jwtSvc service.JWTService
	if cfg.Supabase.JWTSecret != "" {
		jwtSvc = service.NewJWTService(cfg.Supabase.JWTSecret)
	}

	// 7. Шина событий и роуты
	bus := eventbus.New(logger.Named("events"))
	routes.InitRouter(e, routes.Dependencies{
		Store:  store,
		Auth:   sb.Auth(),
		Cache:  cacheRepo,
		JWT:    jwtSvc,
		Bus:    bus,
		Config: cfg,
		Logger: logger,
	})

	// 8. Запуск и корректная остановка
	go func() {
		logger.Info("🚀 Сервер запущен", zap.String("port", cfg.Server.Port), zap.String("backend", cfg.Backend))
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Ошибка запуска сервера", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("получен сигнал остановки, завершаем работу")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("ошибка при остановке сервера", zap.Error(err))
	}
	if err := bus.Wait(shutdownCtx); err != nil {
		logger.Warn("не все обработчики событий завершились", zap.Error(err))
	}
}

// openStore выбирает бэкенд хранилища. Пул возвращается, только если выбран postgres.
func openStore(ctx context.Context, cfg *config.Config, sb *supabase.Client, logger *zap.Logger) (bd.Store, *pgxpool.Pool, error) {
	if cfg.Backend != config.BackendPostgres {
		return bd.Instrument(config.BackendRest, bd.NewRestStore(sb.Rest())), nil, nil
	}

	pool, err := postgresql.ConnectDB(ctx, cfg.Postgres.DSN, logger)
	if err != nil {
		return nil, nil, err
	}
	if cfg.Postgres.AutoMigrate {
		if err := postgresql.Migrate(ctx, pool, logger); err != nil {
			pool.Close()
			return nil, nil, err
		}
	}
	return bd.Instrument(config.BackendPostgres, bd.NewPostgresStore(pool)), pool, nil
}

func containsWildcard(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}
