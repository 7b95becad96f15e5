package repositories

import (
	"context"

	"go.uber.org/zap"

	"github.com/eneca-dev/enecawork-backend/internal/entities"
	"github.com/eneca-dev/enecawork-backend/internal/infrastructure/bd"
	"github.com/eneca-dev/enecawork-backend/pkg/constants"
	"github.com/eneca-dev/enecawork-backend/pkg/types"
)

type DigestRepositoryInterface interface {
	GetReportProjects(ctx context.Context) ([]entities.DigestReport, error)
	FindDigests(ctx context.Context, projectID int64, date types.Date) ([]entities.DigestReport, error)
}

type DigestRepository struct {
	store  bd.Store
	logger *zap.Logger
}

func NewDigestRepository(store bd.Store, logger *zap.Logger) DigestRepositoryInterface {
	return &DigestRepository{store: store, logger: logger}
}

// GetReportProjects читает проектные колонки всех строк отчёта, повторы не убираются.
func (r *DigestRepository) GetReportProjects(ctx context.Context) ([]entities.DigestReport, error) {
	rows := make([]entities.DigestReport, 0)
	err := r.store.Select(ctx, bd.Query{
		Table:   constants.TableDigestReports,
		Columns: []string{"project_id", "project_name", "project_manager", "project_manager_email"},
	}, &rows)
	if err != nil {
		r.logger.Error("DigestRepository.GetReportProjects: ошибка запроса", zap.Error(err))
		return nil, err
	}
	return rows, nil
}

func (r *DigestRepository) FindDigests(ctx context.Context, projectID int64, date types.Date) ([]entities.DigestReport, error) {
	rows := make([]entities.DigestReport, 0)
	err := r.store.Select(ctx, bd.Query{
		Table:   constants.TableDigestReports,
		Columns: []string{"project_id", "digest_date", "digest_text"},
		Filters: []bd.Filter{
			bd.Eq("project_id", projectID),
			bd.Eq("digest_date", date.String()),
		},
	}, &rows)
	if err != nil {
		r.logger.Error("DigestRepository.FindDigests: ошибка запроса",
			zap.Int64("project_id", projectID), zap.String("digest_date", date.String()), zap.Error(err))
		return nil, err
	}
	return rows, nil
}
