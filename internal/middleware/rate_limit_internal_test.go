package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func TestKeyedRateLimiter_EvictsIdleBuckets(t *testing.T) {
	now := time.Date(2025, 8, 20, 9, 0, 0, 0, time.UTC)
	k := NewKeyedRateLimiter(rate.Limit(1), 1)
	k.now = func() time.Time { return now }

	first := k.GetLimiter("10.0.0.1")
	assert.Same(t, first, k.GetLimiter("10.0.0.1"))
	k.GetLimiter("10.0.0.2")
	assert.Equal(t, 2, k.Len())

	now = now.Add(limiterIdleTTL / 2)
	k.GetLimiter("10.0.0.2")

	now = now.Add(limiterIdleTTL / 2)
	k.GetLimiter("10.0.0.3")

	// .1 idled a full TTL and was dropped, .2 was touched halfway through.
	assert.Equal(t, 2, k.Len())
	assert.NotSame(t, first, k.GetLimiter("10.0.0.1"))
}
