package timeoff

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"go-staffhub/internal/authz"
	"go-staffhub/internal/calendar"
	"go-staffhub/internal/events"
	"go-staffhub/internal/identity"
	"go-staffhub/internal/messaging/kafka"
	"go-staffhub/internal/shared/contextutil"
	timeofferrors "go-staffhub/internal/timeoff/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	// DeniedVisibilityDays is how long a denied request keeps showing up in
	// listings after its last day.
	DeniedVisibilityDays = 7
	// DefaultCalendarDays is the calendar window when no end date is given.
	DefaultCalendarDays = 30
	maxCalendarDays     = 366
)

//go:generate mockgen -source=timeoff_service.go -destination=mock/timeoff_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actor identity.Actor, req CreateTimeOffRequest) (TimeOffResponse, error)
	ListByRange(ctx context.Context, from, to string) ([]TimeOffResponse, error)
	ListForDay(ctx context.Context, date string) ([]TimeOffResponse, error)
	Calendar(ctx context.Context, from, to string) (CalendarResponse, error)
	SetStatus(ctx context.Context, actor identity.Actor, id string, req UpdateStatusRequest) (TimeOffResponse, error)
	Delete(ctx context.Context, actor identity.Actor, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	rdb    *redis.Client
	group  singleflight.Group
	now    func() time.Time
	loc    *time.Location
	logger *zap.Logger
}

type Option func(*service)

func WithLogger(logger *zap.Logger) Option {
	return func(s *service) {
		if logger != nil {
			s.logger = logger.Named("timeoff.service")
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *service) {
		if now != nil {
			s.now = now
		}
	}
}

func WithLocation(loc *time.Location) Option {
	return func(s *service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithOutbox makes every mutation enqueue a lifecycle event in the same
// transaction.
func WithOutbox(outbox kafka.OutboxRepository) Option {
	return func(s *service) {
		s.outbox = outbox
	}
}

// WithDayCache enables the redis backed cache for ListForDay.
func WithDayCache(rdb *redis.Client) Option {
	return func(s *service) {
		s.rdb = rdb
	}
}

func NewService(db *sql.DB, repo Repository, opts ...Option) Service {
	s := &service{
		db:     db,
		repo:   repo,
		now:    time.Now,
		loc:    time.Local,
		logger: zap.L().Named("timeoff.service"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) log(ctx context.Context) *zap.Logger {
	return contextutil.Logger(ctx, s.logger)
}

func (s *service) today() time.Time {
	return calendar.StartOfDay(s.now(), s.loc)
}

func (s *service) deniedCutoff() time.Time {
	return s.today().AddDate(0, 0, -DeniedVisibilityDays)
}

func (s *service) parseDate(value string) (time.Time, error) {
	d, err := calendar.ParseLocalDate(strings.TrimSpace(value), s.loc)
	if err != nil {
		return time.Time{}, timeofferrors.ErrInvalidDateFormat
	}
	return d, nil
}

// parseRequestID treats malformed ids as unknown ones.
func parseRequestID(id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return uuid.Nil, timeofferrors.ErrTimeOffNotFound
	}
	return parsed, nil
}

func (s *service) outboxFor(tx *sql.Tx) kafka.OutboxRepository {
	if s.outbox == nil {
		return nil
	}
	return s.outbox.WithTx(tx)
}

func (s *service) Create(ctx context.Context, actor identity.Actor, req CreateTimeOffRequest) (TimeOffResponse, error) {
	logger := s.log(ctx)
	logger.Debug("create time off requested",
		zap.String("actor_id", actor.ID),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	userID, err := uuid.Parse(strings.TrimSpace(actor.ID))
	if err != nil {
		return TimeOffResponse{}, timeofferrors.ErrInvalidUserID
	}
	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return TimeOffResponse{}, timeofferrors.ErrReasonRequired
	}
	startDate, err := s.parseDate(req.StartDate)
	if err != nil {
		return TimeOffResponse{}, err
	}
	endDate, err := s.parseDate(req.EndDate)
	if err != nil {
		return TimeOffResponse{}, err
	}
	if endDate.Before(startDate) {
		return TimeOffResponse{}, timeofferrors.ErrInvalidDateRange
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("create time off begin tx failed", zap.Error(err))
		return TimeOffResponse{}, mapRepositoryError(err)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	row := &TimeOffRequest{
		ID:        uuid.New(),
		UserID:    userID,
		Reason:    reason,
		Status:    StatusPending,
		StartDate: calendar.Civil(startDate),
		EndDate:   calendar.Civil(endDate),
	}
	if err := qtx.Create(ctx, row); err != nil {
		logger.Error("create time off persist failed", zap.Error(err))
		return TimeOffResponse{}, mapRepositoryError(err)
	}

	created, err := qtx.FindByID(ctx, row.ID)
	if err != nil {
		logger.Error("create time off reload failed", zap.Error(err))
		return TimeOffResponse{}, mapRepositoryError(err)
	}

	if err := s.enqueueLifecycleEvent(ctx, s.outboxFor(tx), events.TimeOffCreated, actor.ID, "", *created); err != nil {
		logger.Error("create time off outbox failed", zap.Error(err))
		return TimeOffResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		logger.Error("create time off commit failed", zap.Error(err))
		return TimeOffResponse{}, mapRepositoryError(err)
	}
	s.invalidateDayCache(ctx)

	logger.Info("create time off success",
		zap.String("time_off_id", created.ID.String()),
		zap.String("user_id", created.UserID.String()),
	)
	return mapToResponse(*created), nil
}

func (s *service) ListByRange(ctx context.Context, from, to string) ([]TimeOffResponse, error) {
	start := s.today()
	if strings.TrimSpace(from) != "" {
		parsed, err := s.parseDate(from)
		if err != nil {
			return nil, err
		}
		start = parsed
	}

	var end *time.Time
	if strings.TrimSpace(to) != "" {
		parsed, err := s.parseDate(to)
		if err != nil {
			return nil, err
		}
		if parsed.Before(start) {
			return nil, timeofferrors.ErrInvalidDateRange
		}
		civil := calendar.Civil(parsed)
		end = &civil
	}

	rows, err := s.repo.ListOverlapping(ctx, calendar.Civil(start), end, calendar.Civil(s.deniedCutoff()))
	if err != nil {
		s.log(ctx).Error("list time off by range failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(rows), nil
}

func (s *service) ListForDay(ctx context.Context, date string) ([]TimeOffResponse, error) {
	if strings.TrimSpace(date) == "" {
		return nil, timeofferrors.ErrInvalidDateFormat
	}
	day, err := s.parseDate(date)
	if err != nil {
		return nil, err
	}
	cutoff := s.deniedCutoff()

	if s.rdb == nil {
		return s.loadDay(ctx, day, cutoff)
	}
	gen := s.cacheGeneration(ctx)
	if gen == "" {
		return s.loadDay(ctx, day, cutoff)
	}

	key := DayCacheKey(gen, calendar.DayKey(day), calendar.DayKey(cutoff))
	if rows, ok := s.readDayCache(ctx, key); ok {
		return rows, nil
	}

	// The load is shared by every waiter, so one caller going away must
	// not fail the rest.
	shared := context.WithoutCancel(ctx)
	v, err, _ := s.group.Do(key, func() (any, error) {
		rows, err := s.loadDay(shared, day, cutoff)
		if err != nil {
			return nil, err
		}
		s.writeDayCache(shared, key, rows)
		return rows, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]TimeOffResponse), nil
}

func (s *service) loadDay(ctx context.Context, day, cutoff time.Time) ([]TimeOffResponse, error) {
	rows, err := s.repo.ListForDay(ctx, calendar.Civil(day), calendar.Civil(cutoff))
	if err != nil {
		s.log(ctx).Error("list time off for day failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(rows), nil
}

func (s *service) Calendar(ctx context.Context, from, to string) (CalendarResponse, error) {
	start := s.today()
	if strings.TrimSpace(from) != "" {
		parsed, err := s.parseDate(from)
		if err != nil {
			return CalendarResponse{}, err
		}
		start = parsed
	}
	end := start.AddDate(0, 0, DefaultCalendarDays-1)
	if strings.TrimSpace(to) != "" {
		parsed, err := s.parseDate(to)
		if err != nil {
			return CalendarResponse{}, err
		}
		end = parsed
	}
	if end.Before(start) {
		return CalendarResponse{}, timeofferrors.ErrInvalidDateRange
	}
	if calendar.SpanDays(start, end) > maxCalendarDays {
		return CalendarResponse{}, timeofferrors.ErrRangeTooWide
	}

	civilEnd := calendar.Civil(end)
	rows, err := s.repo.ListOverlapping(ctx, calendar.Civil(start), &civilEnd, calendar.Civil(s.deniedCutoff()))
	if err != nil {
		s.log(ctx).Error("time off calendar query failed", zap.Error(err))
		return CalendarResponse{}, mapRepositoryError(err)
	}

	indexed := calendar.IndexByDay(rows, start, end, func(r TimeOffRequest) (time.Time, time.Time) {
		return calendar.FromCivil(r.StartDate, s.loc), calendar.FromCivil(r.EndDate, s.loc)
	})

	days := make(map[string][]TimeOffResponse, len(indexed))
	for key, dayRows := range indexed {
		days[key] = mapToListResponse(dayRows)
	}
	return CalendarResponse{
		From: calendar.DayKey(start),
		To:   calendar.DayKey(end),
		Days: days,
	}, nil
}

func (s *service) SetStatus(ctx context.Context, actor identity.Actor, id string, req UpdateStatusRequest) (TimeOffResponse, error) {
	logger := s.log(ctx)

	if !authz.CanApproveOrDeny(actor.Role) {
		logger.Warn("time off decision forbidden",
			zap.String("actor_id", actor.ID),
			zap.String("role", actor.Role),
		)
		return TimeOffResponse{}, timeofferrors.ErrNotAllowedToDecide
	}
	status := strings.ToUpper(strings.TrimSpace(req.Status))
	if status != StatusApproved && status != StatusDenied {
		return TimeOffResponse{}, timeofferrors.ErrInvalidStatus
	}
	deciderID, err := uuid.Parse(strings.TrimSpace(actor.ID))
	if err != nil {
		return TimeOffResponse{}, timeofferrors.ErrInvalidUserID
	}
	requestID, err := parseRequestID(id)
	if err != nil {
		return TimeOffResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("set time off status begin tx failed", zap.Error(err))
		return TimeOffResponse{}, mapRepositoryError(err)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	row, err := qtx.FindByID(ctx, requestID)
	if err != nil {
		return TimeOffResponse{}, mapRepositoryError(err)
	}
	previous := row.Status

	decidedAt := s.now().UTC()
	affected, err := qtx.UpdateStatus(ctx, requestID, status, deciderID, decidedAt)
	if err != nil {
		logger.Error("set time off status persist failed", zap.Error(err))
		return TimeOffResponse{}, mapRepositoryError(err)
	}
	if affected == 0 {
		return TimeOffResponse{}, timeofferrors.ErrTimeOffNotFound
	}
	row.Status = status
	row.DecidedBy = &deciderID
	row.DecidedAt = &decidedAt

	if err := s.enqueueLifecycleEvent(ctx, s.outboxFor(tx), events.TimeOffStatusChanged, actor.ID, previous, *row); err != nil {
		logger.Error("set time off status outbox failed", zap.Error(err))
		return TimeOffResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		logger.Error("set time off status commit failed", zap.Error(err))
		return TimeOffResponse{}, mapRepositoryError(err)
	}
	s.invalidateDayCache(ctx)

	logger.Info("set time off status success",
		zap.String("time_off_id", row.ID.String()),
		zap.String("previous_status", previous),
		zap.String("status", status),
	)
	return mapToResponse(*row), nil
}

func (s *service) Delete(ctx context.Context, actor identity.Actor, id string) error {
	logger := s.log(ctx)

	requestID, err := parseRequestID(id)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("delete time off begin tx failed", zap.Error(err))
		return mapRepositoryError(err)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	row, err := qtx.FindByID(ctx, requestID)
	if err != nil {
		return mapRepositoryError(err)
	}
	if !authz.CanDeleteTimeOff(actor.ID, actor.Role, row.UserID.String()) {
		logger.Warn("time off delete forbidden",
			zap.String("actor_id", actor.ID),
			zap.String("owner_id", row.UserID.String()),
		)
		return timeofferrors.ErrNotAllowedToDelete
	}

	affected, err := qtx.Delete(ctx, requestID)
	if err != nil {
		logger.Error("delete time off persist failed", zap.Error(err))
		return mapRepositoryError(err)
	}
	if affected == 0 {
		return timeofferrors.ErrTimeOffNotFound
	}

	if err := s.enqueueLifecycleEvent(ctx, s.outboxFor(tx), events.TimeOffDeleted, actor.ID, row.Status, *row); err != nil {
		logger.Error("delete time off outbox failed", zap.Error(err))
		return mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		logger.Error("delete time off commit failed", zap.Error(err))
		return mapRepositoryError(err)
	}
	s.invalidateDayCache(ctx)

	logger.Info("delete time off success", zap.String("time_off_id", id))
	return nil
}
