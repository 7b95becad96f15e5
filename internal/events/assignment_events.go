package events

import (
	"github.com/google/uuid"
)

const (
	AssignmentCreated       = "assignment.created"
	AssignmentUpdated       = "assignment.updated"
	AssignmentStatusChanged = "assignment.status.changed"
	AssignmentDeleted       = "assignment.deleted"
)

// AssignmentEvent - изменение задания. Status заполнен для создания и смены статуса.
type AssignmentEvent struct {
	Kind         string
	AssignmentID uuid.UUID
	ProjectID    uuid.UUID
	Status       string
	ActorID      uuid.UUID // uuid.Nil, если пользователь неизвестен
}

// Name реализует eventbus.Event
func (e AssignmentEvent) Name() string {
	return e.Kind
}
