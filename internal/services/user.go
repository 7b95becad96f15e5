package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/eneca-dev/enecawork-backend/internal/dto"
	"github.com/eneca-dev/enecawork-backend/internal/repositories"
	apperrors "github.com/eneca-dev/enecawork-backend/pkg/errors"
)

type UserServiceInterface interface {
	GetCurrentUser(ctx context.Context, accessToken string) (*dto.UserInformationResponse, error)
}

type UserService struct {
	provider AuthProvider
	userRepo repositories.UserRepositoryInterface
	logger   *zap.Logger
}

func NewUserService(provider AuthProvider, userRepo repositories.UserRepositoryInterface, logger *zap.Logger) UserServiceInterface {
	return &UserService{provider: provider, userRepo: userRepo, logger: logger}
}

// GetCurrentUser проверяет токен в Auth API и читает профиль по id из токена.
func (s *UserService) GetCurrentUser(ctx context.Context, accessToken string) (*dto.UserInformationResponse, error) {
	authUser, err := s.provider.GetUser(ctx, accessToken)
	if err != nil {
		s.logger.Warn("UserService.GetCurrentUser: не удалось проверить токен", zap.Error(err))
		return nil, providerError(apperrors.AreaUsers, "проверке токена", err)
	}

	userID, err := uuid.Parse(authUser.ID)
	if err != nil {
		return nil, apperrors.Auth(apperrors.AreaUsers, "Invalid token", err)
	}

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NotFound(apperrors.AreaUsers, "User not found")
		}
		return nil, storeError(apperrors.AreaUsers, "получении профиля пользователя", err)
	}

	email := user.Email
	if email == "" {
		email = authUser.Email
	}
	return &dto.UserInformationResponse{
		FirstName:  user.FirstName,
		LastName:   user.LastName,
		Department: user.Department,
		Team:       user.Team,
		Position:   user.Position,
		Category:   user.Category,
		Email:      email,
	}, nil
}
