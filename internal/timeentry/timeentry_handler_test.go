package timeentry_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go-staffhub/internal/identity"
	"go-staffhub/internal/timeentry"
	timeentryerrors "go-staffhub/internal/timeentry/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Meta  json.RawMessage `json:"meta"`
	Error *apiError       `json:"error"`
}

func decodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	err := json.Unmarshal(body, &env)
	assert.NoError(t, err)
	return env
}

type fakeTimeEntryService struct {
	clockInFn      func(ctx context.Context, userID string, req timeentry.ClockInRequest) (timeentry.TimeEntryResponse, error)
	clockOutFn     func(ctx context.Context, userID string) (timeentry.TimeEntryResponse, error)
	getStatusFn    func(ctx context.Context, userID string) (timeentry.StatusResponse, error)
	listEntriesFn  func(ctx context.Context, userID string, since time.Time) ([]timeentry.TimeEntryResponse, error)
	weeklyTotalsFn func(ctx context.Context, userID string, since time.Time) ([]timeentry.WeeklyTotalResponse, error)
}

func (f *fakeTimeEntryService) ClockIn(ctx context.Context, userID string, req timeentry.ClockInRequest) (timeentry.TimeEntryResponse, error) {
	return f.clockInFn(ctx, userID, req)
}
func (f *fakeTimeEntryService) ClockOut(ctx context.Context, userID string) (timeentry.TimeEntryResponse, error) {
	return f.clockOutFn(ctx, userID)
}
func (f *fakeTimeEntryService) GetStatus(ctx context.Context, userID string) (timeentry.StatusResponse, error) {
	return f.getStatusFn(ctx, userID)
}
func (f *fakeTimeEntryService) ListEntries(ctx context.Context, userID string, since time.Time) ([]timeentry.TimeEntryResponse, error) {
	return f.listEntriesFn(ctx, userID, since)
}
func (f *fakeTimeEntryService) WeeklyTotals(ctx context.Context, userID string, since time.Time) ([]timeentry.WeeklyTotalResponse, error) {
	return f.weeklyTotalsFn(ctx, userID, since)
}
func (f *fakeTimeEntryService) DefaultSince() time.Time {
	return time.Time{}
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

var employee = &identity.Actor{ID: "7a0f1c36-6a3f-4b55-9d43-2f7c1f0e9b11", Role: "EMPLOYEE"}

func TestTimeEntryHandler_ClockIn(t *testing.T) {
	t.Run("created without body", func(t *testing.T) {
		svc := &fakeTimeEntryService{
			clockInFn: func(ctx context.Context, userID string, req timeentry.ClockInRequest) (timeentry.TimeEntryResponse, error) {
				assert.Equal(t, employee.ID, userID)
				assert.Empty(t, req.Source)
				return timeentry.TimeEntryResponse{ID: "entry-1", UserID: userID}, nil
			},
		}
		h := timeentry.NewHandler(svc, time.UTC)
		c, w := newTestContext(http.MethodPost, "/api/v1/time/clock-in", "", employee)

		h.ClockIn(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
		assert.Contains(t, string(env.Data), `"id":"entry-1"`)
	})

	t.Run("already clocked in maps to 409", func(t *testing.T) {
		svc := &fakeTimeEntryService{
			clockInFn: func(ctx context.Context, userID string, req timeentry.ClockInRequest) (timeentry.TimeEntryResponse, error) {
				assert.Equal(t, "MOBILE", req.Source)
				return timeentry.TimeEntryResponse{}, timeentryerrors.ErrAlreadyClockedIn
			},
		}
		h := timeentry.NewHandler(svc, time.UTC)
		c, w := newTestContext(http.MethodPost, "/api/v1/time/clock-in", `{"source":"MOBILE"}`, employee)

		h.ClockIn(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "ALREADY_CLOCKED_IN", env.Error.Code)
	})

	t.Run("missing actor", func(t *testing.T) {
		h := timeentry.NewHandler(&fakeTimeEntryService{}, time.UTC)
		c, w := newTestContext(http.MethodPost, "/api/v1/time/clock-in", "", nil)

		h.ClockIn(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestTimeEntryHandler_ClockOut(t *testing.T) {
	svc := &fakeTimeEntryService{
		clockOutFn: func(ctx context.Context, userID string) (timeentry.TimeEntryResponse, error) {
			return timeentry.TimeEntryResponse{}, timeentryerrors.ErrNoOpenEntry
		},
	}
	h := timeentry.NewHandler(svc, time.UTC)
	c, w := newTestContext(http.MethodPost, "/api/v1/time/clock-out", "", employee)

	h.ClockOut(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "NO_OPEN_ENTRY", decodeEnvelope(t, w.Body.Bytes()).Error.Code)
}

func TestTimeEntryHandler_Status(t *testing.T) {
	t.Run("anonymous caller", func(t *testing.T) {
		h := timeentry.NewHandler(&fakeTimeEntryService{}, time.UTC)
		c, w := newTestContext(http.MethodGet, "/api/v1/time/status", "", nil)

		h.Status(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"clocked_in":false,"active_entry_id":null,"since":null}`, string(decodeEnvelope(t, w.Body.Bytes()).Data))
	})

	t.Run("unexpected error", func(t *testing.T) {
		svc := &fakeTimeEntryService{
			getStatusFn: func(ctx context.Context, userID string) (timeentry.StatusResponse, error) {
				return timeentry.StatusResponse{}, errors.New("raw failure")
			},
		}
		h := timeentry.NewHandler(svc, time.UTC)
		c, w := newTestContext(http.MethodGet, "/api/v1/time/status", "", employee)

		h.Status(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "INTERNAL_ERROR", decodeEnvelope(t, w.Body.Bytes()).Error.Code)
	})
}

func TestTimeEntryHandler_ListEntries(t *testing.T) {
	t.Run("parses since and paginates", func(t *testing.T) {
		svc := &fakeTimeEntryService{
			listEntriesFn: func(ctx context.Context, userID string, since time.Time) ([]timeentry.TimeEntryResponse, error) {
				assert.Equal(t, time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC), since)
				return []timeentry.TimeEntryResponse{{ID: "a"}, {ID: "b"}, {ID: "c"}}, nil
			},
		}
		h := timeentry.NewHandler(svc, time.UTC)
		c, w := newTestContext(http.MethodGet, "/api/v1/time/entries?since=2025-07-01&page=2&page_size=2", "", employee)

		h.ListEntries(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		var items []timeentry.TimeEntryResponse
		assert.NoError(t, json.Unmarshal(env.Data, &items))
		assert.Len(t, items, 1)
		assert.Equal(t, "c", items[0].ID)
		assert.JSONEq(t, `{"total":3,"totalPages":2,"page":2,"pageSize":2}`, string(env.Meta))
	})

	t.Run("omitted since is zero", func(t *testing.T) {
		svc := &fakeTimeEntryService{
			listEntriesFn: func(ctx context.Context, userID string, since time.Time) ([]timeentry.TimeEntryResponse, error) {
				assert.True(t, since.IsZero())
				return nil, nil
			},
		}
		h := timeentry.NewHandler(svc, time.UTC)
		c, w := newTestContext(http.MethodGet, "/api/v1/time/entries", "", employee)

		h.ListEntries(c)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("bad since", func(t *testing.T) {
		h := timeentry.NewHandler(&fakeTimeEntryService{}, time.UTC)
		c, w := newTestContext(http.MethodGet, "/api/v1/time/entries?since=07/01/2025", "", employee)

		h.ListEntries(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "INVALID_INPUT", decodeEnvelope(t, w.Body.Bytes()).Error.Code)
	})
}

func TestTimeEntryHandler_WeeklyTotals(t *testing.T) {
	svc := &fakeTimeEntryService{
		weeklyTotalsFn: func(ctx context.Context, userID string, since time.Time) ([]timeentry.WeeklyTotalResponse, error) {
			return []timeentry.WeeklyTotalResponse{{WeekStart: "2025-08-11", WeekEnd: "2025-08-17", TotalHours: 38.75}}, nil
		},
	}
	h := timeentry.NewHandler(svc, time.UTC)
	c, w := newTestContext(http.MethodGet, "/api/v1/time/weekly", "", employee)

	h.WeeklyTotals(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total_hours":38.75`)
}
