package listeners

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/eneca-dev/enecawork-backend/internal/events"
	"github.com/eneca-dev/enecawork-backend/pkg/eventbus"
	"github.com/eneca-dev/enecawork-backend/pkg/metrics"
)

// ActivityListener пишет журнал изменений заданий и считает события.
type ActivityListener struct {
	logger *zap.Logger
}

func NewActivityListener(logger *zap.Logger) *ActivityListener {
	return &ActivityListener{logger: logger}
}

func (l *ActivityListener) Register(bus *eventbus.Bus) {
	for _, name := range []string{
		events.AssignmentCreated,
		events.AssignmentUpdated,
		events.AssignmentStatusChanged,
		events.AssignmentDeleted,
	} {
		bus.Subscribe(name, l.handleAssignmentEvent)
	}
	l.logger.Info("ActivityListener подписан на события заданий")
}

func (l *ActivityListener) handleAssignmentEvent(_ context.Context, event eventbus.Event) error {
	e, ok := event.(events.AssignmentEvent)
	if !ok {
		return fmt.Errorf("ActivityListener: неожиданный тип события %T", event)
	}

	metrics.ObserveAssignmentEvent(e.Kind)

	fields := []zap.Field{
		zap.String("event", e.Kind),
		zap.String("assignment_id", e.AssignmentID.String()),
		zap.String("actor_id", e.ActorID.String()),
	}
	if e.Status != "" {
		fields = append(fields, zap.String("status", e.Status))
	}
	l.logger.Info("изменение задания", fields...)
	return nil
}
