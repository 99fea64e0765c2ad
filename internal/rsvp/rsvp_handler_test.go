package rsvp_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-staffhub/internal/identity"
	"go-staffhub/internal/rsvp"
	rsvperrors "go-staffhub/internal/rsvp/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeRsvpService struct {
	createFn func(ctx context.Context, actor identity.Actor, req rsvp.CreateRsvpRequest) (rsvp.RsvpResponse, error)
	listFn   func(ctx context.Context, userID string) (rsvp.UserEventsResponse, error)
	deleteFn func(ctx context.Context, actor identity.Actor, id string) error
}

func (f *fakeRsvpService) RemoveForEvent(ctx context.Context, eventID string) (int64, error) {
	return 0, nil
}

func (f *fakeRsvpService) Create(ctx context.Context, actor identity.Actor, req rsvp.CreateRsvpRequest) (rsvp.RsvpResponse, error) {
	return f.createFn(ctx, actor, req)
}
func (f *fakeRsvpService) ListEventIDsByUser(ctx context.Context, userID string) (rsvp.UserEventsResponse, error) {
	return f.listFn(ctx, userID)
}
func (f *fakeRsvpService) Delete(ctx context.Context, actor identity.Actor, id string) error {
	return f.deleteFn(ctx, actor, id)
}

func newTestContext(method, target, body string, actor *identity.Actor) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		c.Request.Header.Set("Content-Type", "application/json")
	}
	if actor != nil {
		identity.Set(c, *actor)
	}
	return c, w
}

func TestRsvpHandler(t *testing.T) {
	member := &identity.Actor{ID: "u-1", Role: "EMPLOYEE"}

	t.Run("create conflict", func(t *testing.T) {
		svc := &fakeRsvpService{createFn: func(ctx context.Context, actor identity.Actor, req rsvp.CreateRsvpRequest) (rsvp.RsvpResponse, error) {
			assert.Equal(t, "party", req.EventID)
			return rsvp.RsvpResponse{}, rsvperrors.ErrAlreadyRsvped
		}}
		c, w := newTestContext(http.MethodPost, "/api/v1/rsvps", `{"event_id":"party"}`, member)

		rsvp.NewHandler(svc).Create(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), `"CONFLICT"`)
	})

	t.Run("create requires event id", func(t *testing.T) {
		c, w := newTestContext(http.MethodPost, "/api/v1/rsvps", `{}`, member)

		rsvp.NewHandler(&fakeRsvpService{}).Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("list by user", func(t *testing.T) {
		svc := &fakeRsvpService{listFn: func(ctx context.Context, userID string) (rsvp.UserEventsResponse, error) {
			return rsvp.UserEventsResponse{UserID: userID, EventIDs: []string{"party"}}, nil
		}}
		c, w := newTestContext(http.MethodGet, "/api/v1/rsvps/users/u-2", "", member)
		c.Params = gin.Params{{Key: "userId", Value: "u-2"}}

		rsvp.NewHandler(svc).ListByUser(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"event_ids":["party"]`)
	})

	t.Run("delete without actor", func(t *testing.T) {
		c, w := newTestContext(http.MethodDelete, "/api/v1/rsvps/r-1", "", nil)

		rsvp.NewHandler(&fakeRsvpService{}).Delete(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
