package middleware

import (
	"net/http"
	"sync"
	"time"

	"go-staffhub/internal/identity"
	"go-staffhub/internal/shared/response"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const CodeTooManyRequests = "TOO_MANY_REQUESTS"

// limiterIdleTTL is how long an unused bucket is kept. A bucket idle that
// long has refilled completely, so dropping it changes nothing for the caller.
const limiterIdleTTL = 10 * time.Minute

type keyedLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// KeyedRateLimiter hands out one token bucket per key (client IP or user).
type KeyedRateLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*keyedLimiter
	r         rate.Limit
	b         int
	now       func() time.Time
	lastSweep time.Time
}

func NewKeyedRateLimiter(r rate.Limit, b int) *KeyedRateLimiter {
	return &KeyedRateLimiter{
		limiters: make(map[string]*keyedLimiter),
		r:        r,
		b:        b,
		now:      time.Now,
	}
}

func (k *KeyedRateLimiter) GetLimiter(key string) *rate.Limiter {
	k.mu.Lock()
	defer k.mu.Unlock()

	now := k.now()
	k.sweep(now)

	entry, ok := k.limiters[key]
	if !ok {
		entry = &keyedLimiter{limiter: rate.NewLimiter(k.r, k.b)}
		k.limiters[key] = entry
	}
	entry.lastSeen = now
	return entry.limiter
}

// Len reports how many buckets are currently tracked.
func (k *KeyedRateLimiter) Len() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.limiters)
}

// sweep drops idle buckets at most once per TTL. Callers hold mu.
func (k *KeyedRateLimiter) sweep(now time.Time) {
	if now.Sub(k.lastSweep) < limiterIdleTTL {
		return
	}
	k.lastSweep = now
	for key, entry := range k.limiters {
		if now.Sub(entry.lastSeen) >= limiterIdleTTL {
			delete(k.limiters, key)
		}
	}
}

func RateLimitByIP(r rate.Limit, b int) gin.HandlerFunc {
	limiter := NewKeyedRateLimiter(r, b)
	return func(c *gin.Context) {
		if !limiter.GetLimiter(c.ClientIP()).Allow() {
			response.Error(c, http.StatusTooManyRequests, CodeTooManyRequests, "Too many requests from this IP", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RateLimitByUser limits authenticated callers; anonymous requests pass
// through untouched.
func RateLimitByUser(r rate.Limit, b int) gin.HandlerFunc {
	limiter := NewKeyedRateLimiter(r, b)
	return func(c *gin.Context) {
		actor, ok := identity.FromGin(c)
		if !ok {
			c.Next()
			return
		}
		if !limiter.GetLimiter(actor.ID).Allow() {
			response.Error(c, http.StatusTooManyRequests, CodeTooManyRequests, "Too many requests from this user", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}
