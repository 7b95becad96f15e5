// Файл: internal/services/auth.go
package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/eneca-dev/enecawork-backend/internal/dto"
	"github.com/eneca-dev/enecawork-backend/internal/entities"
	"github.com/eneca-dev/enecawork-backend/internal/infrastructure/bd"
	"github.com/eneca-dev/enecawork-backend/internal/repositories"
	"github.com/eneca-dev/enecawork-backend/pkg/config"
	"github.com/eneca-dev/enecawork-backend/pkg/constants"
	apperrors "github.com/eneca-dev/enecawork-backend/pkg/errors"
	"github.com/eneca-dev/enecawork-backend/pkg/supabase"
	"github.com/eneca-dev/enecawork-backend/pkg/validation"
)

const (
	MsgResetEmailSent  = "Email with reset link sent"
	MsgPasswordUpdated = "Password updated successfully"
	MsgLoggedOut       = "Successfully logged out"
)

type AuthServiceInterface interface {
	Register(ctx context.Context, payload dto.RegisterDTO) (*dto.AuthRegisterResponse, error)
	Login(ctx context.Context, payload dto.LoginDTO) (*dto.AuthLoginResponse, error)
	ResetPassword(ctx context.Context, payload dto.ResetPasswordDTO) (string, error)
	UpdatePassword(ctx context.Context, accessToken string, payload dto.UpdatePasswordDTO) (string, error)
	RefreshToken(ctx context.Context, payload dto.RefreshTokenDTO) (*dto.RefreshTokenResponse, error)
	Logout(ctx context.Context, accessToken string) (string, error)
	VerifyAccessToken(ctx context.Context, accessToken string) (uuid.UUID, error)
}

type AuthService struct {
	provider  AuthProvider
	userRepo  repositories.UserRepositoryInterface
	cacheRepo repositories.CacheRepositoryInterface // nil - защита от спама выключена
	logger    *zap.Logger
	cfg       *config.AuthConfig
}

func NewAuthService(
	provider AuthProvider,
	userRepo repositories.UserRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	logger *zap.Logger,
	cfg *config.AuthConfig,
) AuthServiceInterface {
	return &AuthService{
		provider:  provider,
		userRepo:  userRepo,
		cacheRepo: cacheRepo,
		logger:    logger,
		cfg:       cfg,
	}
}

// checkNewPassword выполняется до любых обращений к Auth API.
func checkNewPassword(password, confirm string) error {
	if problem := validation.PasswordProblem(password); problem != "" {
		return apperrors.Validation(apperrors.AreaAuth, problem)
	}
	if password != confirm {
		return apperrors.Validation(apperrors.AreaAuth, "Passwords do not match")
	}
	return nil
}

func (s *AuthService) Register(ctx context.Context, payload dto.RegisterDTO) (*dto.AuthRegisterResponse, error) {
	logger := s.logger.With(zap.String("email", payload.Email))

	if err := checkNewPassword(payload.Password, payload.PasswordConfirm); err != nil {
		return nil, err
	}
	if payload.Team == "" {
		payload.Team = constants.TeamGeneral
	}
	if payload.Category == "" {
		payload.Category = constants.CategoryGeneral
	}

	user, _, err := s.provider.SignUp(ctx, supabase.SignUpRequest{
		Email:    payload.Email,
		Password: payload.Password,
		Data: map[string]interface{}{
			"first_name": payload.FirstName,
			"last_name":  payload.LastName,
			"department": payload.Department,
			"team":       payload.Team,
			"position":   payload.Position,
			"category":   payload.Category,
		},
	})
	if err != nil {
		logger.Error("AuthService.Register: ошибка Auth API", zap.Error(err))
		if supabase.IsUserAlreadyExists(err) {
			return nil, apperrors.Conflict(apperrors.AreaAuth, "User with this email already exists", err)
		}
		return nil, providerError(apperrors.AreaAuth, "регистрации пользователя", err)
	}
	if user == nil {
		logger.Error("AuthService.Register: Auth API не вернул пользователя")
		return nil, apperrors.New(apperrors.KindDatabase, apperrors.AreaAuth, "Error creating user", nil)
	}

	userID, err := uuid.Parse(user.ID)
	if err != nil {
		logger.Error("AuthService.Register: некорректный id пользователя", zap.String("id", user.ID), zap.Error(err))
		return nil, apperrors.New(apperrors.KindDatabase, apperrors.AreaAuth, "Error creating user", err)
	}

	profile := &entities.User{
		ID:         userID,
		FirstName:  payload.FirstName,
		LastName:   payload.LastName,
		Email:      payload.Email,
		Department: payload.Department,
		Team:       payload.Team,
		Position:   payload.Position,
		Category:   payload.Category,
	}
	if _, err := s.userRepo.CreateUser(ctx, profile); err != nil {
		if bd.IsUniqueViolation(err) {
			return nil, apperrors.Conflict(apperrors.AreaAuth, "User with this email already exists", err)
		}
		return nil, storeError(apperrors.AreaAuth, "создании профиля пользователя", err)
	}

	logger.Info("пользователь зарегистрирован", zap.String("user_id", userID.String()))

	email := user.Email
	if email == "" {
		email = payload.Email
	}
	return &dto.AuthRegisterResponse{
		FirstName:  metadataOr(user, "first_name", payload.FirstName),
		LastName:   metadataOr(user, "last_name", payload.LastName),
		Department: metadataOr(user, "department", payload.Department),
		Team:       metadataOr(user, "team", payload.Team),
		Position:   metadataOr(user, "position", payload.Position),
		Category:   metadataOr(user, "category", payload.Category),
		Email:      email,
	}, nil
}

func metadataOr(user *supabase.User, key, fallback string) string {
	if v := user.MetadataString(key); v != "" {
		return v
	}
	return fallback
}

func (s *AuthService) Login(ctx context.Context, payload dto.LoginDTO) (*dto.AuthLoginResponse, error) {
	session, err := s.provider.SignInWithPassword(ctx, payload.Email, payload.Password)
	if err != nil {
		s.logger.Warn("AuthService.Login: ошибка входа", zap.String("email", payload.Email), zap.Error(err))
		switch {
		case supabase.IsInvalidCredentials(err):
			return nil, apperrors.Auth(apperrors.AreaAuth, "Invalid email or password", err)
		case supabase.IsEmailNotConfirmed(err):
			return nil, apperrors.Auth(apperrors.AreaAuth, "Email not confirmed", err)
		}
		return nil, providerError(apperrors.AreaAuth, "входе пользователя", err)
	}
	if session == nil || session.AccessToken == "" {
		return nil, apperrors.Auth(apperrors.AreaAuth, "Invalid email or password", nil)
	}

	email := payload.Email
	if session.User != nil && session.User.Email != "" {
		email = session.User.Email
	}
	return &dto.AuthLoginResponse{
		Email:        email,
		AccessToken:  session.AccessToken,
		RefreshToken: session.RefreshToken,
	}, nil
}

func resetCooldownKey(email string) string {
	return "reset_spam_protect:" + strings.ToLower(strings.TrimSpace(email))
}

func (s *AuthService) ResetPassword(ctx context.Context, payload dto.ResetPasswordDTO) (string, error) {
	logger := s.logger.With(zap.String("email", payload.Email))

	key := resetCooldownKey(payload.Email)
	locked := false
	if s.cacheRepo != nil && s.cfg.ResetPasswordCooldown > 0 {
		ok, err := s.cacheRepo.SetNX(ctx, key, "active", s.cfg.ResetPasswordCooldown)
		switch {
		case err != nil:
			// Redis недоступен - письмо всё равно отправляем.
			logger.Warn("AuthService.ResetPassword: ошибка Redis", zap.Error(err))
		case !ok:
			logger.Warn("Слишком частые запросы на сброс пароля")
			return "", apperrors.RateLimited(apperrors.AreaAuth, nil)
		default:
			locked = true
		}
	}

	if err := s.provider.ResetPasswordForEmail(ctx, payload.Email, s.cfg.ResetRedirectURL); err != nil {
		logger.Error("AuthService.ResetPassword: ошибка Auth API", zap.Error(err))
		if locked {
			s.releaseCooldown(key)
		}
		if supabase.IsRateLimited(err) {
			return "", apperrors.RateLimited(apperrors.AreaAuth, err)
		}
		return "", apperrors.BadRequest(apperrors.AreaAuth, "Invalid email", err)
	}
	return MsgResetEmailSent, nil
}

func (s *AuthService) releaseCooldown(key string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.cacheRepo.Del(ctx, key); err != nil {
		s.logger.Warn("не удалось снять блокировку сброса пароля", zap.String("key", key), zap.Error(err))
	}
}

func (s *AuthService) UpdatePassword(ctx context.Context, accessToken string, payload dto.UpdatePasswordDTO) (string, error) {
	if err := checkNewPassword(payload.Password, payload.PasswordConfirm); err != nil {
		return "", err
	}

	session, err := s.provider.SetSession(ctx, accessToken, payload.RefreshToken)
	if err != nil {
		s.logger.Warn("AuthService.UpdatePassword: не удалось восстановить сессию", zap.Error(err))
		return "", providerError(apperrors.AreaAuth, "восстановлении сессии", err)
	}

	if _, err := s.provider.UpdateUser(ctx, session.AccessToken, supabase.UserAttributes{Password: payload.Password}); err != nil {
		s.logger.Warn("AuthService.UpdatePassword: ошибка смены пароля", zap.Error(err))
		return "", providerError(apperrors.AreaAuth, "смене пароля", err)
	}
	return MsgPasswordUpdated, nil
}

func (s *AuthService) RefreshToken(ctx context.Context, payload dto.RefreshTokenDTO) (*dto.RefreshTokenResponse, error) {
	session, err := s.provider.RefreshSession(ctx, payload.RefreshToken)
	if err != nil {
		s.logger.Warn("AuthService.RefreshToken: ошибка обновления токена", zap.Error(err))
		if supabase.IsRateLimited(err) {
			return nil, apperrors.RateLimited(apperrors.AreaAuth, err)
		}
		if _, ok := supabase.AsError(err); ok {
			return nil, apperrors.Auth(apperrors.AreaAuth, "Invalid token", err)
		}
		return nil, apperrors.Database(apperrors.AreaAuth, "обновлении токена", err)
	}
	if session == nil || session.AccessToken == "" {
		return nil, apperrors.ErrInvalidToken
	}
	return &dto.RefreshTokenResponse{
		AccessToken:  session.AccessToken,
		RefreshToken: session.RefreshToken,
	}, nil
}

func (s *AuthService) Logout(ctx context.Context, accessToken string) (string, error) {
	if err := s.provider.SignOut(ctx, accessToken); err != nil {
		s.logger.Warn("AuthService.Logout: ошибка выхода", zap.Error(err))
		return "", providerError(apperrors.AreaAuth, "выходе пользователя", err)
	}
	return MsgLoggedOut, nil
}

// VerifyAccessToken проверяет токен через Auth API и возвращает id пользователя.
func (s *AuthService) VerifyAccessToken(ctx context.Context, accessToken string) (uuid.UUID, error) {
	user, err := s.provider.GetUser(ctx, accessToken)
	if err != nil {
		if _, ok := supabase.AsError(err); ok && !supabase.IsRateLimited(err) {
			return uuid.Nil, apperrors.Auth(apperrors.AreaAuth, "Invalid token", err)
		}
		return uuid.Nil, providerError(apperrors.AreaAuth, "проверке токена", err)
	}
	id, err := uuid.Parse(user.ID)
	if err != nil {
		return uuid.Nil, apperrors.Auth(apperrors.AreaAuth, "Invalid token", err)
	}
	return id, nil
}
