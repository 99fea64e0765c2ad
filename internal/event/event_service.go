package event

import (
	"context"
	"strings"
	"time"

	"go-staffhub/internal/authz"
	"go-staffhub/internal/calendar"
	eventerrors "go-staffhub/internal/event/errors"
	"go-staffhub/internal/identity"
	"go-staffhub/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=event_service.go -destination=mock/event_service_mock.go -package=mock
type Service interface {
	List(ctx context.Context, from, to string) ([]EventResponse, error)
	Get(ctx context.Context, id string) (EventResponse, error)
	Create(ctx context.Context, actor identity.Actor, req CreateEventRequest) (EventResponse, error)
	Update(ctx context.Context, actor identity.Actor, id string, req UpdateEventRequest) (EventResponse, error)
	Delete(ctx context.Context, actor identity.Actor, id string) error
}

// AttendeeRemover drops the rsvps of an event that no longer exists.
type AttendeeRemover interface {
	RemoveForEvent(ctx context.Context, eventID string) (int64, error)
}

type service struct {
	repo      Repository
	attendees AttendeeRemover
	now       func() time.Time
	logger    *zap.Logger
}

type Option func(*service)

func WithLogger(logger *zap.Logger) Option {
	return func(s *service) {
		if logger != nil {
			s.logger = logger.Named("event.service")
		}
	}
}

func WithAttendees(attendees AttendeeRemover) Option {
	return func(s *service) {
		s.attendees = attendees
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(repo Repository, opts ...Option) Service {
	s := &service{
		repo:   repo,
		now:    time.Now,
		logger: zap.L().Named("event.service"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) log(ctx context.Context) *zap.Logger {
	return contextutil.Logger(ctx, s.logger)
}

func mapToResponse(e Event) EventResponse {
	return EventResponse{
		ID:          e.ID.String(),
		Title:       e.Title,
		Date:        calendar.DayKey(e.Date),
		Time:        e.StartsAt,
		Location:    e.Location,
		Description: e.Description,
		CreatedBy:   e.CreatedBy.String(),
		CreatedAt:   e.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   e.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// parseDate reads a yyyy-mm-dd day; events are not tied to a timezone.
func parseDate(value string) (time.Time, error) {
	d, err := calendar.ParseLocalDate(strings.TrimSpace(value), time.UTC)
	if err != nil {
		return time.Time{}, eventerrors.ErrInvalidDateFormat
	}
	return d, nil
}

func parseEventID(id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return uuid.Nil, eventerrors.ErrEventNotFound
	}
	return parsed, nil
}

func (s *service) List(ctx context.Context, from, to string) ([]EventResponse, error) {
	var start, end *time.Time
	if strings.TrimSpace(from) != "" {
		d, err := parseDate(from)
		if err != nil {
			return nil, err
		}
		start = &d
	}
	if strings.TrimSpace(to) != "" {
		d, err := parseDate(to)
		if err != nil {
			return nil, err
		}
		end = &d
	}
	if start != nil && end != nil && end.Before(*start) {
		return nil, eventerrors.ErrInvalidDateRange
	}

	rows, err := s.repo.List(ctx, start, end)
	if err != nil {
		s.log(ctx).Error("list events failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	out := make([]EventResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapToResponse(row))
	}
	return out, nil
}

func (s *service) Get(ctx context.Context, id string) (EventResponse, error) {
	eid, err := parseEventID(id)
	if err != nil {
		return EventResponse{}, err
	}
	row, err := s.repo.FindByID(ctx, eid)
	if err != nil {
		return EventResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*row), nil
}

func (s *service) Create(ctx context.Context, actor identity.Actor, req CreateEventRequest) (EventResponse, error) {
	if !authz.CanManageEvents(actor.Role) {
		return EventResponse{}, eventerrors.ErrNotAllowedToManage
	}
	creator, err := uuid.Parse(strings.TrimSpace(actor.ID))
	if err != nil {
		return EventResponse{}, eventerrors.ErrInvalidUserID
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return EventResponse{}, eventerrors.ErrTitleRequired
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return EventResponse{}, err
	}

	now := s.now().UTC()
	row := &Event{
		ID:          uuid.New(),
		Title:       title,
		Date:        date,
		StartsAt:    strings.TrimSpace(req.Time),
		Location:    strings.TrimSpace(req.Location),
		Description: strings.TrimSpace(req.Description),
		CreatedBy:   creator,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, row); err != nil {
		s.log(ctx).Error("create event failed", zap.Error(err))
		return EventResponse{}, mapRepositoryError(err)
	}

	s.log(ctx).Info("event created",
		zap.String("event_id", row.ID.String()),
		zap.String("date", calendar.DayKey(row.Date)),
	)
	return mapToResponse(*row), nil
}

func (s *service) Update(ctx context.Context, actor identity.Actor, id string, req UpdateEventRequest) (EventResponse, error) {
	if !authz.CanManageEvents(actor.Role) {
		return EventResponse{}, eventerrors.ErrNotAllowedToManage
	}
	eid, err := parseEventID(id)
	if err != nil {
		return EventResponse{}, err
	}

	fields := map[string]any{}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return EventResponse{}, eventerrors.ErrTitleRequired
		}
		fields["title"] = title
	}
	if req.Date != nil {
		date, err := parseDate(*req.Date)
		if err != nil {
			return EventResponse{}, err
		}
		fields["date"] = date
	}
	if req.Time != nil {
		fields["starts_at"] = strings.TrimSpace(*req.Time)
	}
	if req.Location != nil {
		fields["location"] = strings.TrimSpace(*req.Location)
	}
	if req.Description != nil {
		fields["description"] = strings.TrimSpace(*req.Description)
	}
	if len(fields) == 0 {
		return EventResponse{}, eventerrors.ErrNothingToUpdate
	}
	fields["updated_at"] = s.now().UTC()

	affected, err := s.repo.Update(ctx, eid, fields)
	if err != nil {
		s.log(ctx).Error("update event failed", zap.Error(err))
		return EventResponse{}, mapRepositoryError(err)
	}
	if affected == 0 {
		return EventResponse{}, eventerrors.ErrEventNotFound
	}

	row, err := s.repo.FindByID(ctx, eid)
	if err != nil {
		return EventResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*row), nil
}

// Delete removes the event and then its rsvps. A failed rsvp cleanup is
// logged; the event stays deleted.
func (s *service) Delete(ctx context.Context, actor identity.Actor, id string) error {
	if !authz.CanManageEvents(actor.Role) {
		return eventerrors.ErrNotAllowedToManage
	}
	eid, err := parseEventID(id)
	if err != nil {
		return err
	}

	affected, err := s.repo.Delete(ctx, eid)
	if err != nil {
		s.log(ctx).Error("delete event failed", zap.Error(err))
		return mapRepositoryError(err)
	}
	if affected == 0 {
		return eventerrors.ErrEventNotFound
	}

	logger := s.log(ctx).With(zap.String("event_id", eid.String()))
	if s.attendees != nil {
		removed, err := s.attendees.RemoveForEvent(ctx, eid.String())
		if err != nil {
			logger.Warn("event removed but rsvp cleanup failed", zap.Error(err))
		} else {
			logger = logger.With(zap.Int64("rsvps_removed", removed))
		}
	}
	logger.Info("event removed", zap.String("actor_id", actor.ID))
	return nil
}
