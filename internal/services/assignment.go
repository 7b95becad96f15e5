package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/eneca-dev/enecawork-backend/internal/dto"
	"github.com/eneca-dev/enecawork-backend/internal/entities"
	"github.com/eneca-dev/enecawork-backend/internal/events"
	"github.com/eneca-dev/enecawork-backend/internal/infrastructure/bd"
	"github.com/eneca-dev/enecawork-backend/internal/repositories"
	"github.com/eneca-dev/enecawork-backend/pkg/constants"
	apperrors "github.com/eneca-dev/enecawork-backend/pkg/errors"
	"github.com/eneca-dev/enecawork-backend/pkg/eventbus"
	"github.com/eneca-dev/enecawork-backend/pkg/utils"
)

const (
	MsgAssignmentStatusUpdated = "Статус задания успешно обновлен"
	MsgAssignmentDeleted       = "Задание успешно удалено"
)

type AssignmentServiceInterface interface {
	GetProjectAssignments(ctx context.Context, projectID uuid.UUID) ([]dto.AssignmentResponse, error)
	CreateAssignment(ctx context.Context, principal entities.Principal, projectID uuid.UUID, payload dto.CreateAssignmentDTO) (*dto.AssignmentResponse, error)
	UpdateAssignment(ctx context.Context, principal entities.Principal, id uuid.UUID, payload dto.UpdateAssignmentDTO) (*dto.AssignmentResponse, error)
	UpdateAssignmentStatus(ctx context.Context, principal entities.Principal, id uuid.UUID, payload dto.UpdateAssignmentStatusDTO) (string, error)
	DeleteAssignment(ctx context.Context, principal entities.Principal, id uuid.UUID) (string, error)
}

type AssignmentService struct {
	assignmentRepo repositories.AssignmentRepositoryInterface
	projectRepo    repositories.ProjectRepositoryInterface
	publisher      eventbus.Publisher // nil - события не публикуются
	logger         *zap.Logger
	now            func() time.Time
}

func NewAssignmentService(
	assignmentRepo repositories.AssignmentRepositoryInterface,
	projectRepo repositories.ProjectRepositoryInterface,
	publisher eventbus.Publisher,
	logger *zap.Logger,
) AssignmentServiceInterface {
	return &AssignmentService{
		assignmentRepo: assignmentRepo,
		projectRepo:    projectRepo,
		publisher:      publisher,
		logger:         logger,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

func (s *AssignmentService) publish(ctx context.Context, event events.AssignmentEvent) {
	if s.publisher != nil {
		s.publisher.Publish(ctx, event)
	}
}

func assignmentNotFound(id uuid.UUID) error {
	return apperrors.NotFound(apperrors.AreaAssignments, "Задание с ID %s не найдено", id)
}

func toAssignmentResponse(a *entities.Assignment) dto.AssignmentResponse {
	res := dto.AssignmentResponse{
		ID:            a.ID,
		ProjectID:     a.ProjectID,
		FromSectionID: a.FromSectionID,
		ToSectionID:   a.ToSectionID,
		Text:          a.Text,
		Link:          a.Link.String,
		Status:        a.Status,
		DueDate:       a.DueDate,
		CreatedAt:     a.CreatedAt,
		CreatedBy:     a.CreatedBy,
		UpdatedBy:     a.UpdatedBy,
	}
	if a.UpdatedAt.Valid {
		res.UpdatedAt = utils.ToPtr(a.UpdatedAt.Time)
	}
	return res
}

func (s *AssignmentService) GetProjectAssignments(ctx context.Context, projectID uuid.UUID) ([]dto.AssignmentResponse, error) {
	if _, err := s.projectRepo.FindProject(ctx, projectID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NotFound(apperrors.AreaAssignments, "Проект с ID %s не найден", projectID)
		}
		return nil, storeError(apperrors.AreaAssignments, "получении проекта", err)
	}

	assignments, err := s.assignmentRepo.GetAssignmentsByProject(ctx, projectID)
	if err != nil {
		return nil, storeError(apperrors.AreaAssignments, "получении списка заданий", err)
	}

	res := make([]dto.AssignmentResponse, 0, len(assignments))
	for i := range assignments {
		res = append(res, toAssignmentResponse(&assignments[i]))
	}
	return res, nil
}

// CreateAssignment - одна вставка без предварительных чтений. Если проекта или секции нет,
// вставку отклоняет внешний ключ, и это становится NotFound с именем недостающей сущности.
func (s *AssignmentService) CreateAssignment(ctx context.Context, principal entities.Principal, projectID uuid.UUID, payload dto.CreateAssignmentDTO) (*dto.AssignmentResponse, error) {
	status := payload.Status
	if status == "" {
		status = constants.AssignmentStatusWaiting
	}

	created, err := s.assignmentRepo.CreateAssignment(ctx, &entities.Assignment{
		ProjectID:     projectID,
		FromSectionID: payload.FromSectionID,
		ToSectionID:   payload.ToSectionID,
		Text:          payload.Text,
		Link:          payload.Link,
		Status:        status,
		DueDate:       payload.DueDate,
		CreatedAt:     s.now(),
		CreatedBy:     principal.UserID,
	})
	if err != nil {
		if column, ok := bd.ForeignKeyColumn(err); ok {
			return nil, missingReference(column, projectID, payload)
		}
		return nil, storeError(apperrors.AreaAssignments, "создании задания", err)
	}

	s.publish(ctx, events.AssignmentEvent{
		Kind:         events.AssignmentCreated,
		AssignmentID: created.ID,
		ProjectID:    projectID,
		Status:       created.Status,
		ActorID:      principal.UserID,
	})
	res := toAssignmentResponse(created)
	return &res, nil
}

func missingReference(column string, projectID uuid.UUID, payload dto.CreateAssignmentDTO) error {
	switch column {
	case "project_id":
		return apperrors.NotFound(apperrors.AreaAssignments, "Проект с ID %s не найден", projectID)
	case "from_section_id":
		return apperrors.NotFound(apperrors.AreaAssignments, "Секция с ID %s не найдена", payload.FromSectionID)
	case "to_section_id":
		return apperrors.NotFound(apperrors.AreaAssignments, "Секция с ID %s не найдена", payload.ToSectionID)
	default:
		return apperrors.NotFound(apperrors.AreaAssignments, "Проект или секция не найдены").
			WithContext("column", column)
	}
}

func (s *AssignmentService) UpdateAssignment(ctx context.Context, principal entities.Principal, id uuid.UUID, payload dto.UpdateAssignmentDTO) (*dto.AssignmentResponse, error) {
	values := map[string]interface{}{
		"updated_by": principal.UserID,
		"updated_at": s.now(),
	}
	if payload.Text != nil {
		values["text"] = *payload.Text
	}
	if payload.LinkSent || payload.Link.Valid {
		values["link"] = payload.Link
	}
	if payload.DueDate != nil {
		values["due_date"] = *payload.DueDate
	}

	updated, err := s.assignmentRepo.UpdateAssignment(ctx, id, values)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, assignmentNotFound(id)
		}
		return nil, storeError(apperrors.AreaAssignments, "обновлении задания", err)
	}

	s.publish(ctx, events.AssignmentEvent{
		Kind:         events.AssignmentUpdated,
		AssignmentID: updated.ID,
		ProjectID:    updated.ProjectID,
		ActorID:      principal.UserID,
	})
	res := toAssignmentResponse(updated)
	return &res, nil
}

// UpdateAssignmentStatus не ограничивает переходы: любой статус можно сменить на любой.
func (s *AssignmentService) UpdateAssignmentStatus(ctx context.Context, principal entities.Principal, id uuid.UUID, payload dto.UpdateAssignmentStatusDTO) (string, error) {
	if !constants.IsAssignmentStatus(payload.Status) {
		return "", apperrors.Validation(apperrors.AreaAssignments, "Недопустимый статус задания")
	}

	updated, err := s.assignmentRepo.UpdateAssignment(ctx, id, map[string]interface{}{
		"status":     payload.Status,
		"updated_by": principal.UserID,
		"updated_at": s.now(),
	})
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", assignmentNotFound(id)
		}
		return "", storeError(apperrors.AreaAssignments, "обновлении статуса задания", err)
	}

	s.publish(ctx, events.AssignmentEvent{
		Kind:         events.AssignmentStatusChanged,
		AssignmentID: id,
		ProjectID:    updated.ProjectID,
		Status:       payload.Status,
		ActorID:      principal.UserID,
	})
	return MsgAssignmentStatusUpdated, nil
}

func (s *AssignmentService) DeleteAssignment(ctx context.Context, principal entities.Principal, id uuid.UUID) (string, error) {
	if err := s.assignmentRepo.DeleteAssignment(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", assignmentNotFound(id)
		}
		return "", storeError(apperrors.AreaAssignments, "удалении задания", err)
	}
	s.publish(ctx, events.AssignmentEvent{Kind: events.AssignmentDeleted, AssignmentID: id, ActorID: principal.UserID})
	return MsgAssignmentDeleted, nil
}
