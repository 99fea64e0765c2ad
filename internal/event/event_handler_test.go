package event_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go-staffhub/internal/event"
	eventerrors "go-staffhub/internal/event/errors"
	"go-staffhub/internal/identity"
	"go-staffhub/internal/middleware"
	"go-staffhub/internal/rbac"
	rbacInfra "go-staffhub/internal/rbac/infra"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

type fakeEventService struct {
	listFn   func(ctx context.Context, from, to string) ([]event.EventResponse, error)
	getFn    func(ctx context.Context, id string) (event.EventResponse, error)
	createFn func(ctx context.Context, actor identity.Actor, req event.CreateEventRequest) (event.EventResponse, error)
	updateFn func(ctx context.Context, actor identity.Actor, id string, req event.UpdateEventRequest) (event.EventResponse, error)
	deleteFn func(ctx context.Context, actor identity.Actor, id string) error
}

func (f *fakeEventService) List(ctx context.Context, from, to string) ([]event.EventResponse, error) {
	return f.listFn(ctx, from, to)
}
func (f *fakeEventService) Get(ctx context.Context, id string) (event.EventResponse, error) {
	return f.getFn(ctx, id)
}
func (f *fakeEventService) Create(ctx context.Context, actor identity.Actor, req event.CreateEventRequest) (event.EventResponse, error) {
	return f.createFn(ctx, actor, req)
}
func (f *fakeEventService) Update(ctx context.Context, actor identity.Actor, id string, req event.UpdateEventRequest) (event.EventResponse, error) {
	return f.updateFn(ctx, actor, id, req)
}
func (f *fakeEventService) Delete(ctx context.Context, actor identity.Actor, id string) error {
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

func TestEventHandler(t *testing.T) {
	t.Run("list passes the range through", func(t *testing.T) {
		svc := &fakeEventService{listFn: func(ctx context.Context, from, to string) ([]event.EventResponse, error) {
			assert.Equal(t, "2025-09-01", from)
			assert.Equal(t, "", to)
			return []event.EventResponse{{ID: "e-1", Title: "Team BBQ"}}, nil
		}}
		c, w := newTestContext(http.MethodGet, "/api/v1/events?from=2025-09-01", "", &employee)

		event.NewHandler(svc).List(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"Team BBQ"`)
	})

	t.Run("create requires a title", func(t *testing.T) {
		c, w := newTestContext(http.MethodPost, "/api/v1/events", `{"date":"2025-09-01"}`, &manager)

		event.NewHandler(&fakeEventService{}).Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("create without actor", func(t *testing.T) {
		c, w := newTestContext(http.MethodPost, "/api/v1/events", `{"title":"BBQ","date":"2025-09-01"}`, nil)

		event.NewHandler(&fakeEventService{}).Create(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("update forwards present fields", func(t *testing.T) {
		svc := &fakeEventService{updateFn: func(ctx context.Context, actor identity.Actor, id string, req event.UpdateEventRequest) (event.EventResponse, error) {
			assert.Equal(t, "e-1", id)
			assert.Nil(t, req.Title)
			if assert.NotNil(t, req.Location) {
				assert.Equal(t, "Lobby", *req.Location)
			}
			return event.EventResponse{ID: id, Location: *req.Location}, nil
		}}
		c, w := newTestContext(http.MethodPatch, "/api/v1/events/e-1", `{"location":"Lobby"}`, &manager)
		c.Params = gin.Params{{Key: "id", Value: "e-1"}}

		event.NewHandler(svc).Update(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("delete of absent event", func(t *testing.T) {
		svc := &fakeEventService{deleteFn: func(ctx context.Context, actor identity.Actor, id string) error {
			return eventerrors.ErrEventNotFound
		}}
		c, w := newTestContext(http.MethodDelete, "/api/v1/events/e-9", "", &manager)

		event.NewHandler(svc).Delete(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestRegisterRoutes_Authorization(t *testing.T) {
	gin.SetMode(gin.TestMode)
	const secret = "route-test-secret"

	enforcer, err := rbacInfra.NewEnforcer()
	assert.NoError(t, err)
	rbacService := rbac.NewService(rbac.NewRepository(), enforcer)

	svc := &fakeEventService{
		listFn: func(ctx context.Context, from, to string) ([]event.EventResponse, error) {
			return []event.EventResponse{}, nil
		},
		deleteFn: func(ctx context.Context, actor identity.Actor, id string) error {
			return nil
		},
	}

	r := gin.New()
	event.RegisterRoutes(r.Group("/api/v1"), event.NewHandler(svc), rbacService, middleware.NewAuthenticator(secret), nil,
		middleware.RateLimitByUser(rate.Inf, 0))

	send := func(method, target string, actor *identity.Actor) int {
		req := httptest.NewRequest(method, target, nil)
		if actor != nil {
			token, err := identity.IssueToken(secret, *actor, time.Minute)
			assert.NoError(t, err)
			req.Header.Set("Authorization", "Bearer "+token)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusUnauthorized, send(http.MethodGet, "/api/v1/events", nil))
	assert.Equal(t, http.StatusOK, send(http.MethodGet, "/api/v1/events", &employee))
	assert.Equal(t, http.StatusForbidden, send(http.MethodDelete, "/api/v1/events/e-1", &employee))
	assert.Equal(t, http.StatusOK, send(http.MethodDelete, "/api/v1/events/e-1", &manager))
}
