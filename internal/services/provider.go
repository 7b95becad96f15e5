package services

import (
	"context"
	"errors"

	"github.com/eneca-dev/enecawork-backend/internal/infrastructure/bd"
	"github.com/eneca-dev/enecawork-backend/pkg/supabase"

	apperrors "github.com/eneca-dev/enecawork-backend/pkg/errors"
)

// AuthProvider - часть Auth API, которой пользуются сервисы. Реализуется *supabase.AuthClient.
type AuthProvider interface {
	SignUp(ctx context.Context, req supabase.SignUpRequest) (*supabase.User, *supabase.Session, error)
	SignInWithPassword(ctx context.Context, email, password string) (*supabase.Session, error)
	GetUser(ctx context.Context, accessToken string) (*supabase.User, error)
	SetSession(ctx context.Context, accessToken, refreshToken string) (*supabase.Session, error)
	RefreshSession(ctx context.Context, refreshToken string) (*supabase.Session, error)
	UpdateUser(ctx context.Context, accessToken string, attrs supabase.UserAttributes) (*supabase.User, error)
	ResetPasswordForEmail(ctx context.Context, email, redirectTo string) error
	SignOut(ctx context.Context, accessToken string) error
}

var _ AuthProvider = (*supabase.AuthClient)(nil)

// providerError переводит ошибку Auth API в общую таксономию.
// Конкретные случаи (неверный пароль, занятый email) операции разбирают до вызова.
func providerError(area, operation string, err error) error {
	if supabase.IsRateLimited(err) {
		return apperrors.RateLimited(area, err)
	}
	if supabase.IsInvalidToken(err) {
		return apperrors.Auth(area, "Invalid token", err)
	}
	if sbErr, ok := supabase.AsError(err); ok && sbErr.StatusCode < 500 {
		return apperrors.BadRequest(area, sbErr.Message, err)
	}
	return apperrors.Database(area, operation, err)
}

// storeError переводит ошибку табличного хранилища. Внутренние детали остаются в Err.
func storeError(area, operation string, err error) error {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	if supabase.IsInvalidToken(err) {
		return apperrors.Auth(area, "Ошибка аутентификации при "+operation, err)
	}
	if bd.IsInvalidValue(err) {
		return apperrors.New(apperrors.KindValidation, area, "Ошибка валидации при "+operation, err)
	}
	return apperrors.Database(area, operation, err)
}
