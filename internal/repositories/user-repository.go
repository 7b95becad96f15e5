package repositories

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/eneca-dev/enecawork-backend/internal/entities"
	"github.com/eneca-dev/enecawork-backend/internal/infrastructure/bd"
	"github.com/eneca-dev/enecawork-backend/pkg/constants"
)

type UserRepositoryInterface interface {
	FindUserByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	CreateUser(ctx context.Context, user *entities.User) (*entities.User, error)
}

type UserRepository struct {
	store  bd.Store
	logger *zap.Logger
}

func NewUserRepository(store bd.Store, logger *zap.Logger) UserRepositoryInterface {
	return &UserRepository{store: store, logger: logger}
}

func (r *UserRepository) FindUserByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	var rows []entities.User
	err := r.store.Select(ctx, bd.Query{
		Table:   constants.TableUsers,
		Filters: []bd.Filter{bd.Eq("id", id)},
		Limit:   1,
	}, &rows)
	if err != nil {
		r.logger.Error("UserRepository.FindUserByID: ошибка запроса", zap.String("user_id", id.String()), zap.Error(err))
		return nil, err
	}
	return first(rows)
}

func (r *UserRepository) CreateUser(ctx context.Context, user *entities.User) (*entities.User, error) {
	var rows []entities.User
	if err := r.store.Insert(ctx, constants.TableUsers, user, &rows); err != nil {
		r.logger.Error("UserRepository.CreateUser: ошибка вставки", zap.String("email", user.Email), zap.Error(err))
		return nil, err
	}
	return first(rows)
}
