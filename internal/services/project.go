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

type ProjectServiceInterface interface {
	GetProjects(ctx context.Context) ([]dto.ProjectResponse, error)
	GetProjectSections(ctx context.Context, projectID uuid.UUID) ([]dto.SectionResponse, error)
}

type ProjectService struct {
	projectRepo repositories.ProjectRepositoryInterface
	sectionRepo repositories.SectionRepositoryInterface
	logger      *zap.Logger
}

func NewProjectService(
	projectRepo repositories.ProjectRepositoryInterface,
	sectionRepo repositories.SectionRepositoryInterface,
	logger *zap.Logger,
) ProjectServiceInterface {
	return &ProjectService{projectRepo: projectRepo, sectionRepo: sectionRepo, logger: logger}
}

func (s *ProjectService) GetProjects(ctx context.Context) ([]dto.ProjectResponse, error) {
	projects, err := s.projectRepo.GetProjects(ctx)
	if err != nil {
		return nil, storeError(apperrors.AreaProjects, "получении списка проектов", err)
	}

	res := make([]dto.ProjectResponse, 0, len(projects))
	for _, p := range projects {
		res = append(res, dto.ProjectResponse{ProjectID: p.ID, ProjectName: p.Name})
	}
	return res, nil
}

// GetProjectSections отдаёт секции проекта. Рабочий идентификатор ws_project_id
// наружу не выходит: в ответе секция ссылается на публичный id проекта.
func (s *ProjectService) GetProjectSections(ctx context.Context, projectID uuid.UUID) ([]dto.SectionResponse, error) {
	project, err := s.projectRepo.FindProject(ctx, projectID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NotFound(apperrors.AreaProjects, "Проект с ID %s не найден", projectID)
		}
		return nil, storeError(apperrors.AreaProjects, "получении проекта", err)
	}

	sections, err := s.sectionRepo.GetSectionsByWorkspace(ctx, project.WSProjectID)
	if err != nil {
		return nil, storeError(apperrors.AreaProjects, "получении секций проекта", err)
	}

	res := make([]dto.SectionResponse, 0, len(sections))
	for _, sec := range sections {
		res = append(res, dto.SectionResponse{
			SectionID:   sec.ID,
			ProjectID:   project.ID,
			SectionName: sec.Name,
		})
	}
	s.logger.Debug("секции проекта", zap.String("project_id", projectID.String()), zap.Int("count", len(res)))
	return res, nil
}
