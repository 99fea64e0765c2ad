package timeentry

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"go-staffhub/internal/calendar"
	"go-staffhub/internal/shared/contextutil"
	timeentryerrors "go-staffhub/internal/timeentry/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DefaultListWindow is how far back ListEntries reaches when no since date
// is given.
const DefaultListWindow = 3

//go:generate mockgen -source=timeentry_service.go -destination=mock/timeentry_service_mock.go -package=mock
type Service interface {
	ClockIn(ctx context.Context, userID string, req ClockInRequest) (TimeEntryResponse, error)
	ClockOut(ctx context.Context, userID string) (TimeEntryResponse, error)
	GetStatus(ctx context.Context, userID string) (StatusResponse, error)
	ListEntries(ctx context.Context, userID string, since time.Time) ([]TimeEntryResponse, error)
	WeeklyTotals(ctx context.Context, userID string, since time.Time) ([]WeeklyTotalResponse, error)
	DefaultSince() time.Time
}

type service struct {
	repo   Repository
	now    func() time.Time
	loc    *time.Location
	logger *zap.Logger
}

type Option func(*service)

func WithLogger(logger *zap.Logger) Option {
	return func(s *service) {
		if logger != nil {
			s.logger = logger.Named("timeentry.service")
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

func NewService(repo Repository, opts ...Option) Service {
	s := &service{
		repo:   repo,
		now:    time.Now,
		loc:    time.Local,
		logger: zap.L().Named("timeentry.service"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) log(ctx context.Context) *zap.Logger {
	return contextutil.Logger(ctx, s.logger)
}

func parseUserID(userID string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(userID))
	if err != nil {
		return uuid.Nil, timeentryerrors.ErrInvalidUserID
	}
	return id, nil
}

func (s *service) ClockIn(ctx context.Context, userID string, req ClockInRequest) (TimeEntryResponse, error) {
	uid, err := parseUserID(userID)
	if err != nil {
		return TimeEntryResponse{}, err
	}

	open, err := s.repo.FindOpenByUser(ctx, uid)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return TimeEntryResponse{}, mapRepositoryError(err)
	}
	if open != nil {
		return TimeEntryResponse{}, timeentryerrors.ErrAlreadyClockedIn
	}

	source := strings.ToUpper(strings.TrimSpace(req.Source))
	if source == "" {
		source = SourceWeb
	}

	row := &TimeEntry{
		ID:      uuid.New(),
		UserID:  uid,
		ClockIn: s.now().UTC(),
		Source:  source,
	}

	// A concurrent clock-in that won the race surfaces here as a unique
	// violation on the open-entry index.
	if err := s.repo.Create(ctx, row); err != nil {
		return TimeEntryResponse{}, mapRepositoryError(err)
	}

	s.log(ctx).Info("clocked in", zap.String("user_id", uid.String()), zap.String("entry_id", row.ID.String()))
	return s.toResponse(*row), nil
}

func (s *service) ClockOut(ctx context.Context, userID string) (TimeEntryResponse, error) {
	uid, err := parseUserID(userID)
	if err != nil {
		return TimeEntryResponse{}, err
	}

	open, err := s.repo.FindOpenByUser(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TimeEntryResponse{}, timeentryerrors.ErrNoOpenEntry
		}
		return TimeEntryResponse{}, mapRepositoryError(err)
	}

	clockOut := s.now().UTC()
	if clockOut.Before(open.ClockIn) {
		clockOut = open.ClockIn
	}

	affected, err := s.repo.Close(ctx, open.ID, clockOut)
	if err != nil {
		return TimeEntryResponse{}, mapRepositoryError(err)
	}
	if affected == 0 {
		return TimeEntryResponse{}, timeentryerrors.ErrTimeEntryNotFound
	}

	open.ClockOut = &clockOut
	s.log(ctx).Info("clocked out", zap.String("user_id", uid.String()), zap.String("entry_id", open.ID.String()))
	return s.toResponse(*open), nil
}

// GetStatus never fails for unknown or malformed users; they are simply not
// clocked in.
func (s *service) GetStatus(ctx context.Context, userID string) (StatusResponse, error) {
	uid, err := parseUserID(userID)
	if err != nil {
		return StatusResponse{}, nil
	}

	open, err := s.repo.FindOpenByUser(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return StatusResponse{}, nil
		}
		return StatusResponse{}, mapRepositoryError(err)
	}

	id := open.ID.String()
	since := open.ClockIn.In(s.loc).Format(time.RFC3339)
	return StatusResponse{ClockedIn: true, ActiveEntryID: &id, Since: &since}, nil
}

func (s *service) ListEntries(ctx context.Context, userID string, since time.Time) ([]TimeEntryResponse, error) {
	uid, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}
	if since.IsZero() {
		since = s.DefaultSince()
	}

	rows, err := s.repo.ListByUserSince(ctx, uid, since.UTC())
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	out := make([]TimeEntryResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, s.toResponse(row))
	}
	return out, nil
}

// WeeklyTotals sums closed entries per Monday-based week of their clock-in
// day, oldest week first.
func (s *service) WeeklyTotals(ctx context.Context, userID string, since time.Time) ([]WeeklyTotalResponse, error) {
	uid, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}
	if since.IsZero() {
		since = s.DefaultSince()
	}

	rows, err := s.repo.ListByUserSince(ctx, uid, since.UTC())
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	var out []WeeklyTotalResponse
	index := make(map[string]int)
	for _, row := range rows {
		start := weekStart(row.ClockIn, s.loc)
		key := calendar.DayKey(start)
		i, ok := index[key]
		if !ok {
			i = len(out)
			index[key] = i
			out = append(out, WeeklyTotalResponse{
				WeekStart: key,
				WeekEnd:   calendar.DayKey(start.AddDate(0, 0, 6)),
			})
		}
		out[i].TotalHours = math.Round((out[i].TotalHours+Hours(row))*100) / 100
		if row.IsOpen() {
			out[i].OpenEntries++
		}
	}
	return out, nil
}

func weekStart(t time.Time, loc *time.Location) time.Time {
	day := calendar.StartOfDay(t, loc)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// DefaultSince is local midnight DefaultListWindow months ago.
func (s *service) DefaultSince() time.Time {
	now := s.now().In(s.loc)
	y, m, d := now.Date()
	return time.Date(y, m-DefaultListWindow, d, 0, 0, 0, 0, s.loc)
}

func (s *service) toResponse(e TimeEntry) TimeEntryResponse {
	resp := TimeEntryResponse{
		ID:      e.ID.String(),
		UserID:  e.UserID.String(),
		ClockIn: e.ClockIn.In(s.loc).Format(time.RFC3339),
		Source:  e.Source,
		Hours:   Hours(e),
	}
	if e.ClockOut != nil {
		out := e.ClockOut.In(s.loc).Format(time.RFC3339)
		resp.ClockOut = &out
	}
	return resp
}

// Hours is the worked duration of a closed entry rounded to two decimals;
// open entries count as zero.
func Hours(e TimeEntry) float64 {
	if e.ClockOut == nil {
		return 0
	}
	minutes := math.Floor(e.ClockOut.Sub(e.ClockIn).Minutes())
	if minutes < 0 {
		return 0
	}
	return math.Round(minutes/60*100) / 100
}
