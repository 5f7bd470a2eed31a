// Package audit records every role and assignment change published on the
// event bus.
package audit

import (
	"context"
	"fmt"

	"github.com/philly/member-admin/internal/platform/eventbus"
	"github.com/philly/member-admin/internal/platform/events"
	"github.com/philly/member-admin/internal/platform/logger"
)

// EventRecorder counts handled events per topic.
type EventRecorder interface {
	RecordEvent(topic string)
}

// Subscriber writes one structured audit line per domain event.
type Subscriber struct {
	logger   logger.Logger
	recorder EventRecorder
}

func NewSubscriber(logger logger.Logger, recorder EventRecorder) *Subscriber {
	return &Subscriber{logger: logger, recorder: recorder}
}

// Register subscribes to every topic the services publish.
func (s *Subscriber) Register(bus *eventbus.Bus) {
	for _, topic := range events.AllTopics() {
		bus.Subscribe(topic, s.Handle)
	}
}

// Handle logs event and counts it. Unknown payloads are an error so a
// publisher/subscriber mismatch shows up in the bus error log.
func (s *Subscriber) Handle(ctx context.Context, event eventbus.Event) error {
	args, err := fields(event.Payload)
	if err != nil {
		return fmt.Errorf("audit %s: %w", event.Topic, err)
	}

	s.logger.Info(ctx, "audit", append([]any{"topic", string(event.Topic)}, args...)...)
	s.recorder.RecordEvent(string(event.Topic))
	return nil
}

func fields(payload any) ([]any, error) {
	switch p := payload.(type) {
	case events.RoleCreatedEvent:
		return []any{
			"role_id", p.RoleID,
			"actor_id", p.ActorID,
			"name", p.Name,
			"rank", p.Rank,
			"permissions", p.Permissions,
			"occurred_at", p.OccurredAt,
		}, nil
	case events.RoleUpdatedEvent:
		return []any{
			"role_id", p.RoleID,
			"actor_id", p.ActorID,
			"name", p.Name,
			"previous_name", p.PreviousName,
			"status", p.Status,
			"occurred_at", p.OccurredAt,
		}, nil
	case events.RoleStatusChangedEvent:
		return []any{
			"role_id", p.RoleID,
			"actor_id", p.ActorID,
			"status", p.Status,
			"occurred_at", p.OccurredAt,
		}, nil
	case events.RoleDeletedEvent:
		return []any{
			"role_id", p.RoleID,
			"actor_id", p.ActorID,
			"name", p.Name,
			"occurred_at", p.OccurredAt,
		}, nil
	case events.UserRolesAssignedEvent:
		return []any{
			"actor_id", p.ActorID,
			"user_ids", p.UserIDs,
			"role_names", p.RoleNames,
			"modified", p.Modified,
			"occurred_at", p.OccurredAt,
		}, nil
	default:
		return nil, fmt.Errorf("unexpected payload %T", payload)
	}
}
