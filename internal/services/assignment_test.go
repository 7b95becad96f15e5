package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/eneca-dev/enecawork-backend/internal/dto"
	"github.com/eneca-dev/enecawork-backend/internal/entities"
	"github.com/eneca-dev/enecawork-backend/internal/events"
	"github.com/eneca-dev/enecawork-backend/internal/infrastructure/bd"
	"github.com/eneca-dev/enecawork-backend/internal/infrastructure/bd/bdtest"
	"github.com/eneca-dev/enecawork-backend/internal/repositories"
	"github.com/eneca-dev/enecawork-backend/pkg/constants"
	apperrors "github.com/eneca-dev/enecawork-backend/pkg/errors"
	"github.com/eneca-dev/enecawork-backend/pkg/eventbus"
	"github.com/eneca-dev/enecawork-backend/pkg/types"
)

var testNow = time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

type recordingPublisher struct {
	events []events.AssignmentEvent
}

func (p *recordingPublisher) Publish(ctx context.Context, event eventbus.Event) {
	p.events = append(p.events, event.(events.AssignmentEvent))
}

func (p *recordingPublisher) kinds() []string {
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Kind)
	}
	return out
}

type assignmentFixture struct {
	svc       *AssignmentService
	published *recordingPublisher
	store     *bdtest.Store
	project   entities.Project
	from, to  entities.Section
	principal entities.Principal
}

func newAssignmentFixture() *assignmentFixture {
	store := newStore()
	logger := zap.NewNop()

	f := &assignmentFixture{
		store:     store,
		project:   entities.Project{ID: uuid.New(), Name: "Жилой комплекс", WSProjectID: "77"},
		from:      entities.Section{ID: uuid.New(), WSProjectID: "77", Name: "АР"},
		to:        entities.Section{ID: uuid.New(), WSProjectID: "77", Name: "КР"},
		principal: entities.Principal{UserID: uuid.New(), AccessToken: "token"},
	}
	store.Seed(constants.TableProjects, f.project)
	store.Seed(constants.TableSections, f.from, f.to)

	f.published = &recordingPublisher{}
	svc := NewAssignmentService(
		repositories.NewAssignmentRepository(store, logger),
		repositories.NewProjectRepository(store, logger),
		f.published,
		logger,
	).(*AssignmentService)
	svc.now = func() time.Time { return testNow }
	f.svc = svc
	return f
}

func (f *assignmentFixture) payload() dto.CreateAssignmentDTO {
	return dto.CreateAssignmentDTO{
		FromSectionID: f.from.ID,
		ToSectionID:   f.to.ID,
		Text:          "Передать планы этажей",
		Link:          null.StringFrom("https://example.com/plan.pdf"),
		DueDate:       types.NewDate(2024, time.March, 15),
	}
}

func (f *assignmentFixture) create(t *testing.T) *dto.AssignmentResponse {
	t.Helper()
	res, err := f.svc.CreateAssignment(context.Background(), f.principal, f.project.ID, f.payload())
	require.NoError(t, err)
	return res
}

func TestCreateAssignment(t *testing.T) {
	f := newAssignmentFixture()

	res := f.create(t)
	assert.NotEqual(t, uuid.Nil, res.ID)
	assert.Equal(t, f.project.ID, res.ProjectID)
	assert.Equal(t, constants.AssignmentStatusWaiting, res.Status)
	assert.Equal(t, "https://example.com/plan.pdf", res.Link)
	assert.Equal(t, "2024-03-15", res.DueDate.String())
	assert.Equal(t, f.principal.UserID, res.CreatedBy)
	assert.True(t, testNow.Equal(res.CreatedAt))
	assert.Nil(t, res.UpdatedAt)
	assert.Nil(t, res.UpdatedBy)

	require.Len(t, f.published.events, 1)
	assert.Equal(t, events.AssignmentCreated, f.published.events[0].Kind)
	assert.Equal(t, res.ID, f.published.events[0].AssignmentID)
}

func TestCreateAssignment_MissingReferences(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(f *assignmentFixture, projectID *uuid.UUID, p *dto.CreateAssignmentDTO)
		message func(f *assignmentFixture, projectID uuid.UUID, p dto.CreateAssignmentDTO) string
	}{
		{
			name:   "проект",
			mutate: func(f *assignmentFixture, projectID *uuid.UUID, p *dto.CreateAssignmentDTO) { *projectID = uuid.New() },
			message: func(f *assignmentFixture, projectID uuid.UUID, p dto.CreateAssignmentDTO) string {
				return "Проект с ID " + projectID.String() + " не найден"
			},
		},
		{
			name:   "секция-источник",
			mutate: func(f *assignmentFixture, projectID *uuid.UUID, p *dto.CreateAssignmentDTO) { p.FromSectionID = uuid.New() },
			message: func(f *assignmentFixture, projectID uuid.UUID, p dto.CreateAssignmentDTO) string {
				return "Секция с ID " + p.FromSectionID.String() + " не найдена"
			},
		},
		{
			name:   "секция-получатель",
			mutate: func(f *assignmentFixture, projectID *uuid.UUID, p *dto.CreateAssignmentDTO) { p.ToSectionID = uuid.New() },
			message: func(f *assignmentFixture, projectID uuid.UUID, p dto.CreateAssignmentDTO) string {
				return "Секция с ID " + p.ToSectionID.String() + " не найдена"
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAssignmentFixture()
			projectID := f.project.ID
			payload := f.payload()
			tt.mutate(f, &projectID, &payload)

			_, err := f.svc.CreateAssignment(context.Background(), f.principal, projectID, payload)
			var appErr *apperrors.AppError
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, apperrors.KindNotFound, appErr.Kind)
			assert.Equal(t, tt.message(f, projectID, payload), appErr.Message)
			assert.Empty(t, f.store.Rows(constants.TableAssignments), "строка не должна появиться")
			assert.Empty(t, f.published.events)
		})
	}
}

func TestCreateAssignment_StoreFailure(t *testing.T) {
	f := newAssignmentFixture()
	f.store.Err = &bd.Error{Code: bd.CodeCheckViolation, Message: "violates check constraint"}

	_, err := f.svc.CreateAssignment(context.Background(), f.principal, f.project.ID, f.payload())
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))

	f.store.Err = errors.New("connection reset")
	_, err = f.svc.CreateAssignment(context.Background(), f.principal, f.project.ID, f.payload())
	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.KindDatabase, appErr.Kind)
	assert.Equal(t, "Ошибка базы данных при создании задания", appErr.Message)
}

func TestGetProjectAssignments(t *testing.T) {
	f := newAssignmentFixture()
	first := f.create(t)
	f.svc.now = func() time.Time { return testNow.Add(time.Hour) }
	second := f.create(t)

	list, err := f.svc.GetProjectAssignments(context.Background(), f.project.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID)
	assert.Equal(t, second.ID, list[1].ID)

	empty := entities.Project{ID: uuid.New(), Name: "Пустой", WSProjectID: "78"}
	f.store.Seed(constants.TableProjects, empty)
	list, err = f.svc.GetProjectAssignments(context.Background(), empty.ID)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)

	_, err = f.svc.GetProjectAssignments(context.Background(), uuid.New())
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestUpdateAssignment_Partial(t *testing.T) {
	f := newAssignmentFixture()
	created := f.create(t)
	editor := entities.Principal{UserID: uuid.New()}
	f.svc.now = func() time.Time { return testNow.Add(2 * time.Hour) }

	text := "Передать планы и разрезы"
	res, err := f.svc.UpdateAssignment(context.Background(), editor, created.ID, dto.UpdateAssignmentDTO{Text: &text})
	require.NoError(t, err)
	assert.Equal(t, text, res.Text)
	assert.Equal(t, created.Link, res.Link, "непереданные поля не меняются")
	assert.Equal(t, created.DueDate, res.DueDate)
	require.NotNil(t, res.UpdatedBy)
	assert.Equal(t, editor.UserID, *res.UpdatedBy)
	require.NotNil(t, res.UpdatedAt)
	assert.True(t, testNow.Add(2*time.Hour).Equal(*res.UpdatedAt))

	_, err = f.svc.UpdateAssignment(context.Background(), editor, uuid.New(), dto.UpdateAssignmentDTO{Text: &text})
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestUpdateAssignment_Link(t *testing.T) {
	f := newAssignmentFixture()
	created := f.create(t)
	editor := entities.Principal{UserID: uuid.New()}
	require.NotEmpty(t, created.Link)

	decode := func(body string) dto.UpdateAssignmentDTO {
		var payload dto.UpdateAssignmentDTO
		require.NoError(t, json.Unmarshal([]byte(body), &payload))
		return payload
	}

	res, err := f.svc.UpdateAssignment(context.Background(), editor, created.ID, decode(`{"text":"Новый текст"}`))
	require.NoError(t, err)
	assert.Equal(t, created.Link, res.Link, "без ключа link ссылка остаётся")

	res, err = f.svc.UpdateAssignment(context.Background(), editor, created.ID, decode(`{"link":"https://example.com/v2.pdf"}`))
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/v2.pdf", res.Link)

	res, err = f.svc.UpdateAssignment(context.Background(), editor, created.ID, decode(`{"link":null}`))
	require.NoError(t, err)
	assert.Empty(t, res.Link)

	rows := f.store.Rows(constants.TableAssignments)
	require.Len(t, rows, 1)
	assert.Nil(t, rows[0]["link"], "в хранилище записан NULL")
}

func TestUpdateAssignmentStatus_AnyTransition(t *testing.T) {
	f := newAssignmentFixture()
	created := f.create(t)

	sequence := []string{
		constants.AssignmentStatusCompleted,
		constants.AssignmentStatusWaiting,
		constants.AssignmentStatusCancelled,
		constants.AssignmentStatusInProgress,
		constants.AssignmentStatusTransferred,
	}
	for _, status := range sequence {
		msg, err := f.svc.UpdateAssignmentStatus(context.Background(), f.principal, created.ID, dto.UpdateAssignmentStatusDTO{Status: status})
		require.NoError(t, err, status)
		assert.Equal(t, MsgAssignmentStatusUpdated, msg)

		rows := f.store.Rows(constants.TableAssignments)
		require.Len(t, rows, 1)
		assert.Equal(t, status, rows[0]["status"])
	}

	assert.Len(t, f.published.events, 1+len(sequence))
	last := f.published.events[len(f.published.events)-1]
	assert.Equal(t, events.AssignmentStatusChanged, last.Kind)
	assert.Equal(t, constants.AssignmentStatusTransferred, last.Status)
	assert.Equal(t, f.project.ID, last.ProjectID)

	_, err := f.svc.UpdateAssignmentStatus(context.Background(), f.principal, created.ID, dto.UpdateAssignmentStatusDTO{Status: "Done"})
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))

	_, err = f.svc.UpdateAssignmentStatus(context.Background(), f.principal, uuid.New(), dto.UpdateAssignmentStatusDTO{Status: constants.AssignmentStatusCompleted})
	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.KindNotFound, appErr.Kind)
}

func TestDeleteAssignment(t *testing.T) {
	f := newAssignmentFixture()
	created := f.create(t)

	msg, err := f.svc.DeleteAssignment(context.Background(), f.principal, created.ID)
	require.NoError(t, err)
	assert.Equal(t, MsgAssignmentDeleted, msg)
	assert.Empty(t, f.store.Rows(constants.TableAssignments))

	_, err = f.svc.DeleteAssignment(context.Background(), f.principal, created.ID)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
	assert.Equal(t, []string{events.AssignmentCreated, events.AssignmentDeleted}, f.published.kinds())
}
