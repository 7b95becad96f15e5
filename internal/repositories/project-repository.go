package repositories

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/eneca-dev/enecawork-backend/internal/entities"
	"github.com/eneca-dev/enecawork-backend/internal/infrastructure/bd"
	"github.com/eneca-dev/enecawork-backend/pkg/constants"
)

var projectColumns = []string{"id", "name", "ws_project_id"}

type ProjectRepositoryInterface interface {
	GetProjects(ctx context.Context) ([]entities.Project, error)
	FindProject(ctx context.Context, id uuid.UUID) (*entities.Project, error)
}

type ProjectRepository struct {
	store  bd.Store
	logger *zap.Logger
}

func NewProjectRepository(store bd.Store, logger *zap.Logger) ProjectRepositoryInterface {
	return &ProjectRepository{store: store, logger: logger}
}

// GetProjects возвращает проекты в порядке добавления.
func (r *ProjectRepository) GetProjects(ctx context.Context) ([]entities.Project, error) {
	rows := make([]entities.Project, 0)
	err := r.store.Select(ctx, bd.Query{
		Table:   constants.TableProjects,
		Columns: projectColumns,
		OrderBy: []string{"created_at", "id"},
	}, &rows)
	if err != nil {
		r.logger.Error("ProjectRepository.GetProjects: ошибка запроса", zap.Error(err))
		return nil, err
	}
	return rows, nil
}

func (r *ProjectRepository) FindProject(ctx context.Context, id uuid.UUID) (*entities.Project, error) {
	var rows []entities.Project
	err := r.store.Select(ctx, bd.Query{
		Table:   constants.TableProjects,
		Columns: projectColumns,
		Filters: []bd.Filter{bd.Eq("id", id)},
		Limit:   1,
	}, &rows)
	if err != nil {
		r.logger.Error("ProjectRepository.FindProject: ошибка запроса", zap.String("project_id", id.String()), zap.Error(err))
		return nil, err
	}
	return first(rows)
}
