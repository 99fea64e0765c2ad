package audit

import (
	"context"
	"strings"
	"time"

	auditerrors "go-staffhub/internal/audit/errors"
	"go-staffhub/internal/authz"
	"go-staffhub/internal/events"
	"go-staffhub/internal/identity"
	"go-staffhub/internal/shared/apperror"
	"go-staffhub/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=audit_service.go -destination=mock/audit_service_mock.go -package=mock
type Service interface {
	// Record stores the event once. Redelivered events report false.
	Record(ctx context.Context, event events.TimeOffLifecycleEvent) (bool, error)
	History(ctx context.Context, actor identity.Actor, timeOffID string) ([]EntryResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("audit.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("audit.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Record(ctx context.Context, event events.TimeOffLifecycleEvent) (bool, error) {
	timeOffID, err := uuid.Parse(event.TimeOffID)
	if err != nil || strings.TrimSpace(event.EventID) == "" {
		return false, auditerrors.ErrInvalidEvent
	}
	userID, err := uuid.Parse(event.UserID)
	if err != nil {
		return false, auditerrors.ErrInvalidEvent
	}

	occurredAt := event.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = time.Now()
	}

	entry := &Entry{
		ID:             uuid.New(),
		EventID:        event.EventID,
		EventType:      event.EventType,
		TimeOffID:      timeOffID,
		UserID:         userID,
		ActorID:        event.ActorID,
		Status:         event.Status,
		PreviousStatus: event.PreviousStatus,
		RequestID:      event.RequestID,
		OccurredAt:     occurredAt.UTC(),
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		if apperror.IsUniqueViolation(err, EventIndex, eventColumns) {
			return false, nil
		}
		return false, apperror.StoreUnavailable(err)
	}
	return true, nil
}

func (s *service) History(ctx context.Context, actor identity.Actor, timeOffID string) ([]EntryResponse, error) {
	id, err := uuid.Parse(strings.TrimSpace(timeOffID))
	if err != nil {
		return nil, auditerrors.ErrHistoryNotFound
	}

	rows, err := s.repo.ListByTimeOff(ctx, id)
	if err != nil {
		contextutil.Logger(ctx, s.logger).Error("list time off history failed", zap.Error(err))
		return nil, apperror.StoreUnavailable(err)
	}
	if len(rows) == 0 {
		return nil, auditerrors.ErrHistoryNotFound
	}
	if !authz.CanViewTimeOffHistory(actor.ID, actor.Role, rows[0].UserID.String()) {
		return nil, auditerrors.ErrNotAllowedToView
	}

	out := make([]EntryResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, EntryResponse{
			EventType:      r.EventType,
			Status:         r.Status,
			PreviousStatus: r.PreviousStatus,
			ActorID:        r.ActorID,
			RequestID:      r.RequestID,
			OccurredAt:     r.OccurredAt.UTC().Format(time.RFC3339),
		})
	}
	return out, nil
}
