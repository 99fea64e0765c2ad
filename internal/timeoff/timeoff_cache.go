package timeoff

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	DayCacheGenerationKey = "timeoff:day:gen"
	DayCacheTTL           = 5 * time.Minute
)

// DayCacheKey scopes a cached day listing to the cache generation and the
// denied cutoff in force when it was computed.
func DayCacheKey(generation, day, cutoff string) string {
	return fmt.Sprintf("timeoff:day:%s:%s:%s", generation, day, cutoff)
}

// cacheGeneration returns "" when redis cannot be read, which disables
// caching for the call.
func (s *service) cacheGeneration(ctx context.Context) string {
	gen, err := s.rdb.Get(ctx, DayCacheGenerationKey).Result()
	if errors.Is(err, redis.Nil) {
		return "0"
	}
	if err != nil {
		s.log(ctx).Warn("day cache generation unavailable", zap.Error(err))
		return ""
	}
	return gen
}

func (s *service) readDayCache(ctx context.Context, key string) ([]TimeOffResponse, bool) {
	raw, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.log(ctx).Warn("day cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}

	var rows []TimeOffResponse
	if err := json.Unmarshal(raw, &rows); err != nil {
		s.log(ctx).Warn("day cache entry corrupt", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return rows, true
}

func (s *service) writeDayCache(ctx context.Context, key string, rows []TimeOffResponse) {
	payload, err := json.Marshal(rows)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, key, string(payload), DayCacheTTL).Err(); err != nil {
		s.log(ctx).Warn("day cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// invalidateDayCache bumps the generation so every cached day is orphaned.
func (s *service) invalidateDayCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Incr(ctx, DayCacheGenerationKey).Err(); err != nil {
		s.log(ctx).Warn("day cache invalidation failed", zap.Error(err))
	}
}
