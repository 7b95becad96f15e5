package repositories

import (
	"context"

	"go.uber.org/zap"

	"github.com/eneca-dev/enecawork-backend/internal/entities"
	"github.com/eneca-dev/enecawork-backend/internal/infrastructure/bd"
	"github.com/eneca-dev/enecawork-backend/pkg/constants"
)

type SectionRepositoryInterface interface {
	GetSectionsByWorkspace(ctx context.Context, wsProjectID entities.WorkspaceID) ([]entities.Section, error)
}

type SectionRepository struct {
	store  bd.Store
	logger *zap.Logger
}

func NewSectionRepository(store bd.Store, logger *zap.Logger) SectionRepositoryInterface {
	return &SectionRepository{store: store, logger: logger}
}

func (r *SectionRepository) GetSectionsByWorkspace(ctx context.Context, wsProjectID entities.WorkspaceID) ([]entities.Section, error) {
	rows := make([]entities.Section, 0)
	err := r.store.Select(ctx, bd.Query{
		Table:   constants.TableSections,
		Columns: []string{"id", "ws_project_id", "name"},
		Filters: []bd.Filter{bd.Eq("ws_project_id", wsProjectID.String())},
		OrderBy: []string{"name", "id"},
	}, &rows)
	if err != nil {
		r.logger.Error("SectionRepository.GetSectionsByWorkspace: ошибка запроса", zap.String("ws_project_id", wsProjectID.String()), zap.Error(err))
		return nil, err
	}
	return rows, nil
}
