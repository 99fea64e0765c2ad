package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go-staffhub/internal/identity"
	"go-staffhub/internal/shared/contextutil"
	"go-staffhub/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	IdempotencyHeader    = "Idempotency-Key"
	CodeProcessing       = "PROCESSING"
	idempotencyLockTTL   = 30 * time.Second
	DefaultIdempotentTTL = 24 * time.Hour
)

type cachedResponse struct {
	Status int             `json:"status"`
	Body   json.RawMessage `json:"body"`
}

type bodyCaptureWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *bodyCaptureWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *bodyCaptureWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

func idempotencyKeys(path, userID, key string) (cacheKey, lockKey string) {
	cacheKey = fmt.Sprintf("idemp:%s:%s:%s", path, userID, key)
	return cacheKey, cacheKey + ":lock"
}

// Idempotency replays the first successful response for a repeated
// Idempotency-Key on POST requests. Redis failures let the request through.
func Idempotency(rdb *redis.Client, ttl time.Duration) gin.HandlerFunc {
	if ttl <= 0 {
		ttl = DefaultIdempotentTTL
	}
	return func(c *gin.Context) {
		idempKey := c.GetHeader(IdempotencyHeader)
		if idempKey == "" || c.Request.Method != http.MethodPost || rdb == nil {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		logger := contextutil.Logger(ctx, zap.L())

		var userID string
		if actor, ok := identity.FromGin(c); ok {
			userID = actor.ID
		}
		cacheKey, lockKey := idempotencyKeys(c.FullPath(), userID, idempKey)

		val, err := rdb.Get(ctx, cacheKey).Result()
		switch {
		case err == nil:
			var cached cachedResponse
			if jsonErr := json.Unmarshal([]byte(val), &cached); jsonErr == nil {
				c.Data(cached.Status, "application/json; charset=utf-8", cached.Body)
				c.Abort()
				return
			}
		case !errors.Is(err, redis.Nil):
			logger.Warn("idempotency lookup failed", zap.Error(err))
			c.Next()
			return
		}

		isNew, err := rdb.SetNX(ctx, lockKey, "locked", idempotencyLockTTL).Result()
		if err != nil {
			logger.Warn("idempotency lock failed", zap.Error(err))
			c.Next()
			return
		}
		if !isNew {
			response.Error(c, http.StatusConflict, CodeProcessing, "A request with this idempotency key is still being processed", nil)
			c.Abort()
			return
		}
		defer rdb.Del(ctx, lockKey)

		writer := &bodyCaptureWriter{ResponseWriter: c.Writer}
		c.Writer = writer

		c.Next()

		status := writer.Status()
		if status < 200 || status >= 300 {
			return
		}
		payload, err := json.Marshal(cachedResponse{Status: status, Body: writer.body.Bytes()})
		if err != nil {
			return
		}
		if err := rdb.Set(ctx, cacheKey, string(payload), ttl).Err(); err != nil {
			logger.Warn("idempotency store failed", zap.Error(err))
		}
	}
}
