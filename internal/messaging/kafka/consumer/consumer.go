package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	auditerrors "go-staffhub/internal/audit/errors"
	"go-staffhub/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RetryDelay is the pause after a failed fetch and the first pause after a
// failed store write. Store retries double the pause up to MaxRetryDelay.
var (
	RetryDelay    = time.Second
	MaxRetryDelay = 30 * time.Second
)

type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

type LifecycleRecorder interface {
	Record(ctx context.Context, event events.TimeOffLifecycleEvent) (bool, error)
}

// ConsumeTimeOffLifecycle records every lifecycle event into the audit trail
// until ctx is cancelled. Undecodable or incomplete messages are committed
// and skipped; store failures retry the same message until it is recorded.
func ConsumeTimeOffLifecycle(
	ctx context.Context,
	reader MessageReader,
	recorder LifecycleRecorder,
	logger *zap.Logger,
) {
	if logger == nil {
		logger = zap.L()
	}
	log := logger.Named("kafka.consumer.timeoff_lifecycle")
	log.Info("time off lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("time off lifecycle consumer stopped")
				return
			}
			log.Error("fetch time off lifecycle message failed", zap.Error(err))
			if !wait(ctx, RetryDelay) {
				return
			}
			continue
		}

		var event events.TimeOffLifecycleEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode time off lifecycle event failed",
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
			commit(ctx, reader, msg, log)
			continue
		}

		recorded, err := record(ctx, recorder, event, log)
		if err != nil {
			if errors.Is(err, auditerrors.ErrInvalidEvent) {
				log.Warn("time off lifecycle event incomplete, skipping",
					zap.String("event_id", event.EventID),
					zap.String("time_off_id", event.TimeOffID),
				)
				commit(ctx, reader, msg, log)
				continue
			}
			log.Info("time off lifecycle consumer stopped")
			return
		}
		if !recorded {
			log.Debug("time off lifecycle event already recorded", zap.String("event_id", event.EventID))
		}

		if !commit(ctx, reader, msg, log) {
			continue
		}

		log.Info("time off lifecycle event recorded",
			zap.String("event_id", event.EventID),
			zap.String("event_type", event.EventType),
			zap.String("time_off_id", event.TimeOffID),
		)
	}
}

// record stores one event, retrying with backoff until it succeeds, the
// event is rejected as invalid, or ctx ends.
func record(ctx context.Context, recorder LifecycleRecorder, event events.TimeOffLifecycleEvent, log *zap.Logger) (bool, error) {
	delay := RetryDelay
	for attempt := 1; ; attempt++ {
		recorded, err := recorder.Record(ctx, event)
		if err == nil || errors.Is(err, auditerrors.ErrInvalidEvent) {
			return recorded, err
		}

		log.Error("record time off lifecycle event failed",
			zap.String("event_id", event.EventID),
			zap.Int("attempt", attempt),
			zap.Duration("retry_in", delay),
			zap.Error(err),
		)
		if !wait(ctx, delay) {
			return false, ctx.Err()
		}
		delay = min(delay*2, MaxRetryDelay)
	}
}

func commit(ctx context.Context, reader MessageReader, msg kafkago.Message, log *zap.Logger) bool {
	if err := reader.CommitMessages(ctx, msg); err != nil {
		log.Error("commit time off lifecycle message failed", zap.Error(err))
		return false
	}
	return true
}

func wait(ctx context.Context, d time.Duration) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(d):
		return true
	}
}
