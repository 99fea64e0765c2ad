package rsvp

import (
	"context"
	"errors"
	"strings"
	"time"

	"go-staffhub/internal/authz"
	"go-staffhub/internal/identity"
	rsvperrors "go-staffhub/internal/rsvp/errors"
	"go-staffhub/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=rsvp_service.go -destination=mock/rsvp_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actor identity.Actor, req CreateRsvpRequest) (RsvpResponse, error)
	ListEventIDsByUser(ctx context.Context, userID string) (UserEventsResponse, error)
	Delete(ctx context.Context, actor identity.Actor, id string) error
	RemoveForEvent(ctx context.Context, eventID string) (int64, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("rsvp.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rsvp.service")
	}
	return &service{repo: repo, logger: l}
}

func mapToResponse(r Rsvp) RsvpResponse {
	return RsvpResponse{
		ID:        r.ID.String(),
		EventID:   r.EventID,
		UserID:    r.UserID.String(),
		CreatedAt: r.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// Create rejects a second rsvp for the same event and user; the unique
// index decides under concurrent submissions.
func (s *service) Create(ctx context.Context, actor identity.Actor, req CreateRsvpRequest) (RsvpResponse, error) {
	userID, err := uuid.Parse(strings.TrimSpace(actor.ID))
	if err != nil {
		return RsvpResponse{}, rsvperrors.ErrInvalidUserID
	}
	eventID := strings.TrimSpace(req.EventID)
	if eventID == "" {
		return RsvpResponse{}, rsvperrors.ErrEventIDRequired
	}

	row := &Rsvp{
		ID:      uuid.New(),
		EventID: eventID,
		UserID:  userID,
	}
	if err := s.repo.Create(ctx, row); err != nil {
		mapped := mapRepositoryError(err)
		if !errors.Is(mapped, rsvperrors.ErrAlreadyRsvped) {
			contextutil.Logger(ctx, s.logger).Error("create rsvp failed", zap.Error(err))
		}
		return RsvpResponse{}, mapped
	}

	return mapToResponse(*row), nil
}

func (s *service) ListEventIDsByUser(ctx context.Context, userID string) (UserEventsResponse, error) {
	uid, err := uuid.Parse(strings.TrimSpace(userID))
	if err != nil {
		return UserEventsResponse{}, rsvperrors.ErrInvalidUserID
	}

	eventIDs, err := s.repo.ListEventIDsByUser(ctx, uid)
	if err != nil {
		return UserEventsResponse{}, mapRepositoryError(err)
	}
	if eventIDs == nil {
		eventIDs = []string{}
	}
	return UserEventsResponse{UserID: uid.String(), EventIDs: eventIDs}, nil
}

func (s *service) Delete(ctx context.Context, actor identity.Actor, id string) error {
	rid, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return rsvperrors.ErrRsvpNotFound
	}

	row, err := s.repo.FindByID(ctx, rid)
	if err != nil {
		return mapRepositoryError(err)
	}
	if !authz.CanManageRsvpEntry(actor.ID, actor.Role, row.UserID.String()) {
		return rsvperrors.ErrNotAllowedToDelete
	}

	affected, err := s.repo.Delete(ctx, rid)
	if err != nil {
		return mapRepositoryError(err)
	}
	if affected == 0 {
		return rsvperrors.ErrRsvpNotFound
	}

	contextutil.Logger(ctx, s.logger).Info("rsvp removed",
		zap.String("rsvp_id", rid.String()),
		zap.String("actor_id", actor.ID),
	)
	return nil
}

// RemoveForEvent drops every rsvp attached to a cancelled event.
func (s *service) RemoveForEvent(ctx context.Context, eventID string) (int64, error) {
	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		return 0, rsvperrors.ErrEventIDRequired
	}

	removed, err := s.repo.DeleteByEvent(ctx, eventID)
	if err != nil {
		contextutil.Logger(ctx, s.logger).Error("remove event rsvps failed",
			zap.String("event_id", eventID),
			zap.Error(err),
		)
		return 0, mapRepositoryError(err)
	}
	return removed, nil
}
