package timeoff_test

import (
	"context"
	"testing"
	"time"

	"go-staffhub/internal/calendar"
	"go-staffhub/internal/identity"
	"go-staffhub/internal/timeoff"
	timeofferrors "go-staffhub/internal/timeoff/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: gormlogger.Discard})
	assert.NoError(t, err)

	sqlDB, err := db.DB()
	assert.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	assert.NoError(t, db.AutoMigrate(&timeoff.UserRef{}, &timeoff.TimeOffRequest{}))
	return db
}

func seedRequest(t *testing.T, repo timeoff.Repository, userID uuid.UUID, status string, start, end time.Time, createdAt time.Time) timeoff.TimeOffRequest {
	t.Helper()
	row := timeoff.TimeOffRequest{
		ID:        uuid.New(),
		UserID:    userID,
		Reason:    "seed",
		Status:    status,
		StartDate: start,
		EndDate:   end,
		CreatedAt: createdAt,
	}
	assert.NoError(t, repo.Create(context.Background(), &row))
	return row
}

func ids(rows []timeoff.TimeOffRequest) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.ID)
	}
	return out
}

func TestRepository_ListOverlapping(t *testing.T) {
	ctx := context.Background()
	db := newSQLiteDB(t)
	repo := timeoff.NewRepository(db)

	userID := uuid.New()
	assert.NoError(t, db.Create(&timeoff.UserRef{ID: userID, Name: "Linus"}).Error)
	created := time.Date(2025, 8, 1, 9, 0, 0, 0, time.UTC)
	cutoff := day(2025, 8, 13)

	before := seedRequest(t, repo, userID, timeoff.StatusApproved, day(2025, 8, 1), day(2025, 8, 5), created)
	straddle := seedRequest(t, repo, userID, timeoff.StatusPending, day(2025, 8, 28), day(2025, 9, 2), created)
	inside := seedRequest(t, repo, userID, timeoff.StatusApproved, day(2025, 9, 10), day(2025, 9, 10), created)
	after := seedRequest(t, repo, userID, timeoff.StatusPending, day(2025, 10, 1), day(2025, 10, 3), created)
	oldDenied := seedRequest(t, repo, userID, timeoff.StatusDenied, day(2025, 8, 1), day(2025, 8, 12), created)
	recentDenied := seedRequest(t, repo, userID, timeoff.StatusDenied, day(2025, 8, 10), day(2025, 8, 13), created)

	t.Run("bounded window", func(t *testing.T) {
		to := day(2025, 9, 30)
		rows, err := repo.ListOverlapping(ctx, day(2025, 9, 1), &to, cutoff)

		assert.NoError(t, err)
		assert.Equal(t, []uuid.UUID{straddle.ID, inside.ID}, ids(rows))
		if assert.NotNil(t, rows[0].User) {
			assert.Equal(t, "Linus", rows[0].User.Name)
		}
	})

	t.Run("open ended window", func(t *testing.T) {
		rows, err := repo.ListOverlapping(ctx, day(2025, 9, 1), nil, cutoff)

		assert.NoError(t, err)
		assert.Equal(t, []uuid.UUID{straddle.ID, inside.ID, after.ID}, ids(rows))
	})

	t.Run("denied requests drop out after the cutoff", func(t *testing.T) {
		to := day(2025, 8, 31)
		rows, err := repo.ListOverlapping(ctx, day(2025, 8, 1), &to, cutoff)

		assert.NoError(t, err)
		got := ids(rows)
		assert.Contains(t, got, before.ID)
		assert.Contains(t, got, recentDenied.ID)
		assert.NotContains(t, got, oldDenied.ID)
	})
}

func TestRepository_ListForDayMatchesCovers(t *testing.T) {
	ctx := context.Background()
	repo := timeoff.NewRepository(newSQLiteDB(t))
	cutoff := day(2025, 8, 13)
	base := time.Date(2025, 8, 1, 9, 0, 0, 0, time.UTC)

	seeded := []timeoff.TimeOffRequest{
		seedRequest(t, repo, uuid.New(), timeoff.StatusPending, day(2025, 8, 18), day(2025, 8, 22), base.Add(3*time.Hour)),
		seedRequest(t, repo, uuid.New(), timeoff.StatusApproved, day(2025, 8, 20), day(2025, 8, 20), base.Add(time.Hour)),
		seedRequest(t, repo, uuid.New(), timeoff.StatusDenied, day(2025, 8, 21), day(2025, 8, 25), base.Add(2*time.Hour)),
		seedRequest(t, repo, uuid.New(), timeoff.StatusApproved, day(2025, 8, 31), day(2025, 9, 1), base),
	}

	for d := range calendar.Days(day(2025, 8, 16), day(2025, 9, 3)) {
		rows, err := repo.ListForDay(ctx, d, cutoff)
		assert.NoError(t, err)

		var want []uuid.UUID
		for _, r := range seeded {
			if calendar.Covers(r.StartDate, r.EndDate, d) {
				want = append(want, r.ID)
			}
		}

		got := ids(rows)
		assert.ElementsMatch(t, want, got, calendar.DayKey(d))
		for i := 1; i < len(rows); i++ {
			assert.False(t, rows[i].CreatedAt.Before(rows[i-1].CreatedAt), "ordered by creation on %s", calendar.DayKey(d))
		}
	}
}

func TestRepository_UpdateStatusAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := timeoff.NewRepository(newSQLiteDB(t))
	row := seedRequest(t, repo, uuid.New(), timeoff.StatusPending, day(2025, 9, 1), day(2025, 9, 2), time.Now().UTC())
	decider := uuid.New()
	at := time.Date(2025, 8, 20, 10, 0, 0, 0, time.UTC)

	affected, err := repo.UpdateStatus(ctx, row.ID, timeoff.StatusDenied, decider, at)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	got, err := repo.FindByID(ctx, row.ID)
	assert.NoError(t, err)
	assert.Equal(t, timeoff.StatusDenied, got.Status)
	if assert.NotNil(t, got.DecidedBy) {
		assert.Equal(t, decider, *got.DecidedBy)
	}

	affected, err = repo.UpdateStatus(ctx, uuid.New(), timeoff.StatusDenied, decider, at)
	assert.NoError(t, err)
	assert.Zero(t, affected)

	affected, err = repo.Delete(ctx, row.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	_, err = repo.FindByID(ctx, row.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestService_WithSQLite(t *testing.T) {
	ctx := context.Background()
	db := newSQLiteDB(t)
	sqlDB, err := db.DB()
	assert.NoError(t, err)

	now := time.Date(2025, 8, 20, 17, 30, 0, 0, time.UTC)
	svc := timeoff.NewService(sqlDB, timeoff.NewRepository(db),
		timeoff.WithClock(func() time.Time { return now }),
		timeoff.WithLocation(time.UTC),
	)

	owner := identity.Actor{ID: uuid.NewString(), Role: "EMPLOYEE"}
	admin := identity.Actor{ID: uuid.NewString(), Role: "ADMIN"}

	created, err := svc.Create(ctx, owner, timeoff.CreateTimeOffRequest{StartDate: "2025-08-25", EndDate: "2025-08-26", Reason: "move"})
	assert.NoError(t, err)
	assert.Equal(t, timeoff.StatusPending, created.Status)

	onDay, err := svc.ListForDay(ctx, "2025-08-26")
	assert.NoError(t, err)
	assert.Len(t, onDay, 1)

	decided, err := svc.SetStatus(ctx, admin, created.ID, timeoff.UpdateStatusRequest{Status: "DENIED"})
	assert.NoError(t, err)
	assert.Equal(t, timeoff.StatusDenied, decided.Status)

	err = svc.Delete(ctx, identity.Actor{ID: uuid.NewString(), Role: "EMPLOYEE"}, created.ID)
	assert.ErrorIs(t, err, timeofferrors.ErrNotAllowedToDelete)

	assert.NoError(t, svc.Delete(ctx, owner, created.ID))

	err = svc.Delete(ctx, owner, created.ID)
	assert.ErrorIs(t, err, timeofferrors.ErrTimeOffNotFound)
}
