package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/eneca-dev/enecawork-backend/internal/dto"
	"github.com/eneca-dev/enecawork-backend/internal/repositories"
	apperrors "github.com/eneca-dev/enecawork-backend/pkg/errors"
	"github.com/eneca-dev/enecawork-backend/pkg/types"
)

type DigestServiceInterface interface {
	GetUniqueProjects(ctx context.Context) ([]dto.ProjectInfo, error)
	GetDigest(ctx context.Context, projectID int64, date types.Date) (*dto.DigestResponse, error)
}

type DigestService struct {
	digestRepo repositories.DigestRepositoryInterface
	logger     *zap.Logger
}

func NewDigestService(digestRepo repositories.DigestRepositoryInterface, logger *zap.Logger) DigestServiceInterface {
	return &DigestService{digestRepo: digestRepo, logger: logger}
}

// GetUniqueProjects убирает повторы по project_id, сохраняя порядок первого появления.
func (s *DigestService) GetUniqueProjects(ctx context.Context) ([]dto.ProjectInfo, error) {
	rows, err := s.digestRepo.GetReportProjects(ctx)
	if err != nil {
		return nil, storeError(apperrors.AreaDigest, "получении списка проектов", err)
	}

	seen := make(map[int64]struct{}, len(rows))
	projects := make([]dto.ProjectInfo, 0, len(rows))
	for _, row := range rows {
		if _, ok := seen[row.ProjectID]; ok {
			continue
		}
		seen[row.ProjectID] = struct{}{}
		projects = append(projects, dto.ProjectInfo{
			ProjectID:           row.ProjectID,
			ProjectName:         row.ProjectName,
			ProjectManager:      row.ProjectManager,
			ProjectManagerEmail: row.ProjectManagerEmail,
		})
	}

	if len(projects) == 0 {
		return nil, apperrors.NotFound(apperrors.AreaDigest, "Проекты для дайджеста не найдены")
	}
	return projects, nil
}

func (s *DigestService) GetDigest(ctx context.Context, projectID int64, date types.Date) (*dto.DigestResponse, error) {
	rows, err := s.digestRepo.FindDigests(ctx, projectID, date)
	if err != nil {
		return nil, storeError(apperrors.AreaDigest, "получении текста дайджеста", err)
	}
	if len(rows) == 0 {
		s.logger.Info("дайджест не найден", zap.Int64("project_id", projectID), zap.String("digest_date", date.String()))
		return nil, apperrors.NotFound(apperrors.AreaDigest, "Дайджест не найден для проекта %d на дату %s", projectID, date)
	}
	return &dto.DigestResponse{DigestText: rows[0].DigestText}, nil
}
