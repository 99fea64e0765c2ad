package calendar_http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-staffhub/internal/calendar/calendar_http"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func serve(t *testing.T, target string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	calendar_http.RegisterRoutes(r.Group("/api/v1"), calendar_http.NewHandler(time.UTC))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))

	var body map[string]any
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestDaysCovered(t *testing.T) {
	t.Run("inclusive expansion across a month end", func(t *testing.T) {
		w, body := serve(t, "/api/v1/calendar/days?start=2025-01-30&end=2025-02-02")

		assert.Equal(t, http.StatusOK, w.Code)
		data := body["data"].(map[string]any)
		assert.Equal(t, []any{"2025-01-30", "2025-01-31", "2025-02-01", "2025-02-02"}, data["days"])
	})

	t.Run("reversed range is empty", func(t *testing.T) {
		w, body := serve(t, "/api/v1/calendar/days?start=2025-02-02&end=2025-01-30")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []any{}, body["data"].(map[string]any)["days"])
	})

	t.Run("missing end", func(t *testing.T) {
		w, _ := serve(t, "/api/v1/calendar/days?start=2025-02-02")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("malformed start", func(t *testing.T) {
		w, body := serve(t, "/api/v1/calendar/days?start=2025-13-01&end=2025-12-31")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "INVALID_INPUT", body["error"].(map[string]any)["code"])
	})

	t.Run("span too large", func(t *testing.T) {
		w, _ := serve(t, "/api/v1/calendar/days?start=2020-01-01&end=2025-01-01")
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}
