package repositories

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/eneca-dev/enecawork-backend/internal/entities"
	"github.com/eneca-dev/enecawork-backend/internal/infrastructure/bd"
	"github.com/eneca-dev/enecawork-backend/pkg/constants"
)

type AssignmentRepositoryInterface interface {
	GetAssignmentsByProject(ctx context.Context, projectID uuid.UUID) ([]entities.Assignment, error)
	CreateAssignment(ctx context.Context, a *entities.Assignment) (*entities.Assignment, error)
	UpdateAssignment(ctx context.Context, id uuid.UUID, values map[string]interface{}) (*entities.Assignment, error)
	DeleteAssignment(ctx context.Context, id uuid.UUID) error
}

type AssignmentRepository struct {
	store  bd.Store
	logger *zap.Logger
}

func NewAssignmentRepository(store bd.Store, logger *zap.Logger) AssignmentRepositoryInterface {
	return &AssignmentRepository{store: store, logger: logger}
}

func (r *AssignmentRepository) GetAssignmentsByProject(ctx context.Context, projectID uuid.UUID) ([]entities.Assignment, error) {
	rows := make([]entities.Assignment, 0)
	err := r.store.Select(ctx, bd.Query{
		Table:   constants.TableAssignments,
		Filters: []bd.Filter{bd.Eq("project_id", projectID)},
		OrderBy: []string{"created_at", "id"},
	}, &rows)
	if err != nil {
		r.logger.Error("AssignmentRepository.GetAssignmentsByProject: ошибка запроса", zap.String("project_id", projectID.String()), zap.Error(err))
		return nil, err
	}
	return rows, nil
}

// CreateAssignment - одна вставка. Существование проекта и секций проверяют внешние ключи:
// при их нарушении возвращается bd.Error с кодом 23503, строка не создаётся.
func (r *AssignmentRepository) CreateAssignment(ctx context.Context, a *entities.Assignment) (*entities.Assignment, error) {
	values := map[string]interface{}{
		"project_id":      a.ProjectID,
		"from_section_id": a.FromSectionID,
		"to_section_id":   a.ToSectionID,
		"text":            a.Text,
		"link":            a.Link,
		"status":          a.Status,
		"due_date":        a.DueDate,
		"created_at":      a.CreatedAt,
		"created_by":      a.CreatedBy,
	}

	var rows []entities.Assignment
	if err := r.store.Insert(ctx, constants.TableAssignments, values, &rows); err != nil {
		r.logger.Warn("AssignmentRepository.CreateAssignment: ошибка вставки", zap.String("project_id", a.ProjectID.String()), zap.Error(err))
		return nil, err
	}
	return first(rows)
}

// UpdateAssignment - условный PATCH по id. Пустой результат значит, что задания нет.
func (r *AssignmentRepository) UpdateAssignment(ctx context.Context, id uuid.UUID, values map[string]interface{}) (*entities.Assignment, error) {
	var rows []entities.Assignment
	err := r.store.Update(ctx, bd.Query{
		Table:   constants.TableAssignments,
		Filters: []bd.Filter{bd.Eq("id", id)},
	}, values, &rows)
	if err != nil {
		r.logger.Error("AssignmentRepository.UpdateAssignment: ошибка обновления", zap.String("assignment_id", id.String()), zap.Error(err))
		return nil, err
	}
	return first(rows)
}

func (r *AssignmentRepository) DeleteAssignment(ctx context.Context, id uuid.UUID) error {
	var rows []entities.Assignment
	err := r.store.Delete(ctx, bd.Query{
		Table:   constants.TableAssignments,
		Filters: []bd.Filter{bd.Eq("id", id)},
	}, &rows)
	if err != nil {
		r.logger.Error("AssignmentRepository.DeleteAssignment: ошибка удаления", zap.String("assignment_id", id.String()), zap.Error(err))
		return err
	}
	if len(rows) == 0 {
		return ErrNotFound
	}
	return nil
}
