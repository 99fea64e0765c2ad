package rsvp_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go-staffhub/internal/identity"
	"go-staffhub/internal/rsvp"
	rsvperrors "go-staffhub/internal/rsvp/errors"
	rsvpMock "go-staffhub/internal/rsvp/mock"
	"go-staffhub/internal/shared/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
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

	assert.NoError(t, db.AutoMigrate(&rsvp.Rsvp{}))
	return db
}

func TestRsvpService_WithSQLite(t *testing.T) {
	ctx := context.Background()
	svc := rsvp.NewService(rsvp.NewRepository(newSQLiteDB(t)))

	alice := identity.Actor{ID: uuid.NewString(), Role: "EMPLOYEE"}
	bob := identity.Actor{ID: uuid.NewString(), Role: "EMPLOYEE"}

	first, err := svc.Create(ctx, alice, rsvp.CreateRsvpRequest{EventID: "summer-party"})
	assert.NoError(t, err)
	assert.Equal(t, "summer-party", first.EventID)

	t.Run("second rsvp for the same event conflicts", func(t *testing.T) {
		_, err := svc.Create(ctx, alice, rsvp.CreateRsvpRequest{EventID: " summer-party "})
		assert.ErrorIs(t, err, rsvperrors.ErrAlreadyRsvped)
	})

	t.Run("other users and events are independent", func(t *testing.T) {
		_, err := svc.Create(ctx, bob, rsvp.CreateRsvpRequest{EventID: "summer-party"})
		assert.NoError(t, err)
		_, err = svc.Create(ctx, alice, rsvp.CreateRsvpRequest{EventID: "offsite"})
		assert.NoError(t, err)

		events, err := svc.ListEventIDsByUser(ctx, alice.ID)
		assert.NoError(t, err)
		assert.ElementsMatch(t, []string{"summer-party", "offsite"}, events.EventIDs)
	})

	t.Run("unknown user has no events", func(t *testing.T) {
		events, err := svc.ListEventIDsByUser(ctx, uuid.NewString())
		assert.NoError(t, err)
		assert.NotNil(t, events.EventIDs)
		assert.Empty(t, events.EventIDs)
	})

	t.Run("only the owner or a privileged role can delete", func(t *testing.T) {
		err := svc.Delete(ctx, bob, first.ID)
		assert.ErrorIs(t, err, rsvperrors.ErrNotAllowedToDelete)

		assert.NoError(t, svc.Delete(ctx, alice, first.ID))

		err = svc.Delete(ctx, alice, first.ID)
		assert.ErrorIs(t, err, rsvperrors.ErrRsvpNotFound)
	})

	t.Run("owner id in another uuid form still owns the entry", func(t *testing.T) {
		upper := identity.Actor{ID: strings.ToUpper(alice.ID), Role: "EMPLOYEE"}
		created, err := svc.Create(ctx, upper, rsvp.CreateRsvpRequest{EventID: "winter-party"})
		assert.NoError(t, err)

		assert.NoError(t, svc.Delete(ctx, identity.Actor{ID: "urn:uuid:" + alice.ID}, created.ID))
	})
	t.Run("removing an event drops its rsvps only", func(t *testing.T) {
		_, err := svc.Create(ctx, alice, rsvp.CreateRsvpRequest{EventID: "cancelled"})
		assert.NoError(t, err)
		_, err = svc.Create(ctx, bob, rsvp.CreateRsvpRequest{EventID: "cancelled"})
		assert.NoError(t, err)

		removed, err := svc.RemoveForEvent(ctx, " cancelled ")
		assert.NoError(t, err)
		assert.Equal(t, int64(2), removed)

		events, err := svc.ListEventIDsByUser(ctx, bob.ID)
		assert.NoError(t, err)
		assert.Equal(t, []string{"summer-party"}, events.EventIDs)
	})
}

func TestRsvpService_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid actor", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := rsvp.NewService(rsvpMock.NewMockRepository(ctrl))

		_, err := svc.Create(ctx, identity.Actor{ID: "x"}, rsvp.CreateRsvpRequest{EventID: "e"})
		assert.ErrorIs(t, err, rsvperrors.ErrInvalidUserID)
	})

	t.Run("blank event", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := rsvp.NewService(rsvpMock.NewMockRepository(ctrl))

		_, err := svc.Create(ctx, identity.Actor{ID: uuid.NewString()}, rsvp.CreateRsvpRequest{EventID: "  "})
		assert.ErrorIs(t, err, rsvperrors.ErrEventIDRequired)
	})

	t.Run("store failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := rsvpMock.NewMockRepository(ctrl)
		svc := rsvp.NewService(repo)

		repo.EXPECT().Create(ctx, gomock.Any()).Return(errors.New("conn reset"))

		_, err := svc.Create(ctx, identity.Actor{ID: uuid.NewString()}, rsvp.CreateRsvpRequest{EventID: "e"})
		assert.ErrorIs(t, err, apperror.ErrStoreUnavailable)
	})

	t.Run("admin deletes anyone's rsvp", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := rsvpMock.NewMockRepository(ctrl)
		svc := rsvp.NewService(repo)
		id := uuid.New()

		repo.EXPECT().FindByID(ctx, id).Return(&rsvp.Rsvp{ID: id, UserID: uuid.New()}, nil)
		repo.EXPECT().Delete(ctx, id).Return(int64(1), nil)

		assert.NoError(t, svc.Delete(ctx, identity.Actor{ID: uuid.NewString(), Role: "Admin"}, id.String()))
	})

	t.Run("absent rsvp", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := rsvpMock.NewMockRepository(ctrl)
		svc := rsvp.NewService(repo)
		id := uuid.New()

		repo.EXPECT().FindByID(ctx, id).Return(nil, gorm.ErrRecordNotFound)

		err := svc.Delete(ctx, identity.Actor{ID: uuid.NewString(), Role: "ADMIN"}, id.String())
		assert.ErrorIs(t, err, rsvperrors.ErrRsvpNotFound)
	})

	t.Run("remove for blank event", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := rsvp.NewService(rsvpMock.NewMockRepository(ctrl))

		_, err := svc.RemoveForEvent(ctx, " ")
		assert.ErrorIs(t, err, rsvperrors.ErrEventIDRequired)
	})
}
