package timeoff

import (
	"context"

	"go-staffhub/internal/calendar"
	"go-staffhub/internal/events"
	"go-staffhub/internal/messaging/kafka"
	"go-staffhub/internal/shared/contextutil"

	"github.com/google/uuid"
)

const aggregateType = "time_off_request"

// enqueueLifecycleEvent writes the event into the outbox inside tx's scope.
// It is a no-op when the service has no outbox.
func (s *service) enqueueLifecycleEvent(ctx context.Context, outbox kafka.OutboxRepository, eventType, actorID, previous string, r TimeOffRequest) error {
	if outbox == nil {
		return nil
	}

	payload := events.TimeOffLifecycleEvent{
		EventID:        uuid.NewString(),
		EventType:      eventType,
		RequestID:      contextutil.RequestID(ctx),
		TimeOffID:      r.ID.String(),
		UserID:         r.UserID.String(),
		ActorID:        actorID,
		Status:         r.Status,
		PreviousStatus: previous,
		StartDate:      calendar.DayKey(r.StartDate.UTC()),
		EndDate:        calendar.DayKey(r.EndDate.UTC()),
		OccurredAt:     s.now().UTC(),
	}

	event, err := kafka.NewOutboxEvent(
		payload.RequestID,
		aggregateType,
		payload.TimeOffID,
		eventType,
		events.TimeOffLifecycleTopic,
		payload,
	)
	if err != nil {
		return err
	}
	return outbox.Create(ctx, event)
}
