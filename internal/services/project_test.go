package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/eneca-dev/enecawork-backend/internal/entities"
	"github.com/eneca-dev/enecawork-backend/internal/repositories"
	"github.com/eneca-dev/enecawork-backend/pkg/constants"
	apperrors "github.com/eneca-dev/enecawork-backend/pkg/errors"
)

func TestProjectService(t *testing.T) {
	store := newStore()
	logger := zap.NewNop()
	svc := NewProjectService(repositories.NewProjectRepository(store, logger), repositories.NewSectionRepository(store, logger), logger)

	alpha := entities.Project{ID: uuid.New(), Name: "Альфа", WSProjectID: "10"}
	beta := entities.Project{ID: uuid.New(), Name: "Бета", WSProjectID: "20"}
	store.Seed(constants.TableProjects,
		map[string]interface{}{"id": alpha.ID, "name": alpha.Name, "ws_project_id": 10, "created_at": "2024-01-01T00:00:00Z"},
		map[string]interface{}{"id": beta.ID, "name": beta.Name, "ws_project_id": "20", "created_at": "2024-02-01T00:00:00Z"},
	)
	store.Seed(constants.TableSections,
		entities.Section{ID: uuid.New(), WSProjectID: "10", Name: "КР"},
		entities.Section{ID: uuid.New(), WSProjectID: "10", Name: "АР"},
		entities.Section{ID: uuid.New(), WSProjectID: "20", Name: "ОВ"},
	)

	t.Run("список проектов", func(t *testing.T) {
		projects, err := svc.GetProjects(context.Background())
		require.NoError(t, err)
		require.Len(t, projects, 2)
		assert.Equal(t, alpha.ID, projects[0].ProjectID)
		assert.Equal(t, "Бета", projects[1].ProjectName)
	})

	t.Run("секции по числовому ws_project_id", func(t *testing.T) {
		sections, err := svc.GetProjectSections(context.Background(), alpha.ID)
		require.NoError(t, err)
		require.Len(t, sections, 2)
		assert.Equal(t, "АР", sections[0].SectionName)
		assert.Equal(t, "КР", sections[1].SectionName)
		for _, s := range sections {
			assert.Equal(t, alpha.ID, s.ProjectID, "секция ссылается на публичный id проекта")
		}
	})

	t.Run("проект без секций", func(t *testing.T) {
		empty := entities.Project{ID: uuid.New(), Name: "Гамма", WSProjectID: "30"}
		store.Seed(constants.TableProjects, empty)
		sections, err := svc.GetProjectSections(context.Background(), empty.ID)
		require.NoError(t, err)
		assert.NotNil(t, sections)
		assert.Empty(t, sections)
	})

	t.Run("нет проекта", func(t *testing.T) {
		missing := uuid.New()
		_, err := svc.GetProjectSections(context.Background(), missing)
		var appErr *apperrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, apperrors.KindNotFound, appErr.Kind)
		assert.Equal(t, "Проект с ID "+missing.String()+" не найден", appErr.Message)
	})
}

func TestProjectService_StoreFailure(t *testing.T) {
	store := newStore()
	store.Err = errors.New("timeout")
	logger := zap.NewNop()
	svc := NewProjectService(repositories.NewProjectRepository(store, logger), repositories.NewSectionRepository(store, logger), logger)

	_, err := svc.GetProjects(context.Background())
	assert.True(t, apperrors.IsKind(err, apperrors.KindDatabase))
}
