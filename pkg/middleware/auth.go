package middleware

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/eneca-dev/enecawork-backend/internal/entities"
	apperrors "github.com/eneca-dev/enecawork-backend/pkg/errors"
	"github.com/eneca-dev/enecawork-backend/pkg/service"
	"github.com/eneca-dev/enecawork-backend/pkg/utils"
)

// RemoteVerifier - проверка токена через Auth API, когда секрет JWT не задан.
type RemoteVerifier interface {
	VerifyAccessToken(ctx context.Context, accessToken string) (uuid.UUID, error)
}

type AuthMiddleware struct {
	jwtService service.JWTService // nil - проверяем удалённо
	remote     RemoteVerifier
	logger     *zap.Logger
}

func NewAuthMiddleware(jwtSvc service.JWTService, remote RemoteVerifier, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtSvc,
		remote:     remote,
		logger:     logger,
	}
}

func bearerToken(c echo.Context) (string, error) {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if authHeader == "" {
		return "", apperrors.ErrEmptyAuthHeader
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", apperrors.ErrInvalidAuthHeader
	}
	return parts[1], nil
}

// RequireBearer только извлекает токен из заголовка. Проверяет его сервис.
func (m *AuthMiddleware) RequireBearer(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, err := bearerToken(c)
		if err != nil {
			m.logger.Warn("AuthMiddleware: неверный заголовок Authorization", zap.Error(err))
			return err
		}

		c.SetRequest(c.Request().WithContext(utils.WithAccessToken(c.Request().Context(), token)))
		return next(c)
	}
}

// Authenticate проверяет токен и кладёт Principal в контекст запроса.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, err := bearerToken(c)
		if err != nil {
			m.logger.Warn("AuthMiddleware: неверный заголовок Authorization", zap.Error(err))
			return err
		}

		ctx := c.Request().Context()
		userID, err := m.verify(ctx, token)
		if err != nil {
			m.logger.Warn("AuthMiddleware: ошибка валидации токена", zap.Error(err))
			return err
		}

		principal := entities.Principal{UserID: userID, AccessToken: token}
		c.SetRequest(c.Request().WithContext(utils.WithPrincipal(ctx, principal)))

		m.logger.Debug("AuthMiddleware: пользователь аутентифицирован", zap.String("userID", userID.String()))
		return next(c)
	}
}

func (m *AuthMiddleware) verify(ctx context.Context, token string) (uuid.UUID, error) {
	if m.jwtService != nil {
		claims, err := m.jwtService.ValidateToken(token)
		if err != nil {
			return uuid.Nil, err
		}
		return m.jwtService.UserID(claims)
	}
	if m.remote == nil {
		return uuid.Nil, apperrors.ErrUnauthorized
	}
	return m.remote.VerifyAccessToken(ctx, token)
}
