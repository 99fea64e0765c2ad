package producer

import (
	"context"
	"errors"
	"time"

	"go-staffhub/internal/messaging/kafka"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const (
	DefaultBatchSize    = 50
	DefaultPollInterval = 3 * time.Second

	// maxBatchesPerTick bounds one drain so a large backlog cannot starve
	// shutdown.
	maxBatchesPerTick = 20
)

// Relay moves pending outbox rows to Kafka.
type Relay struct {
	repo         kafka.OutboxRepository
	writer       MessageWriter
	logger       *zap.Logger
	now          func() time.Time
	pollInterval time.Duration
	batchSize    int
}

type RelayOption func(*Relay)

func WithLogger(l *zap.Logger) RelayOption {
	return func(r *Relay) {
		if l != nil {
			r.logger = l.Named("kafka.producer.relay")
		}
	}
}

func WithClock(now func() time.Time) RelayOption {
	return func(r *Relay) {
		if now != nil {
			r.now = now
		}
	}
}

func WithPollInterval(d time.Duration) RelayOption {
	return func(r *Relay) {
		if d > 0 {
			r.pollInterval = d
		}
	}
}

func WithBatchSize(n int) RelayOption {
	return func(r *Relay) {
		if n > 0 {
			r.batchSize = n
		}
	}
}

func NewRelay(repo kafka.OutboxRepository, writer MessageWriter, opts ...RelayOption) *Relay {
	r := &Relay{
		repo:         repo,
		writer:       writer,
		logger:       zap.L().Named("kafka.producer.relay"),
		now:          time.Now,
		pollInterval: DefaultPollInterval,
		batchSize:    DefaultBatchSize,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run drains the outbox once, then again on every tick, until ctx is done.
func (r *Relay) Run(ctx context.Context) {
	r.logger.Info("outbox relay started", zap.Duration("poll_interval", r.pollInterval))

	ticker := time.NewTicker(r.pollInterval)
	defer ticker.Stop()

	for {
		if _, err := r.Drain(ctx); err != nil && ctx.Err() == nil {
			r.logger.Error("drain outbox failed", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			r.logger.Info("outbox relay stopped")
			return
		case <-ticker.C:
		}
	}
}

// Drain publishes batches while full batches keep coming back and returns
// how many events were sent.
func (r *Relay) Drain(ctx context.Context) (int, error) {
	total := 0
	for i := 0; i < maxBatchesPerTick; i++ {
		sent, fetched, err := r.PublishBatch(ctx)
		total += sent
		if err != nil {
			return total, err
		}
		if fetched < r.batchSize || sent == 0 || ctx.Err() != nil {
			break
		}
	}
	return total, nil
}

// PublishBatch writes one batch of pending events in a single Kafka call and
// records the outcome of each. It returns the sent and fetched counts.
func (r *Relay) PublishBatch(ctx context.Context) (sent, fetched int, err error) {
	events, err := r.repo.ListPending(ctx, r.now().UTC(), r.batchSize)
	if err != nil {
		return 0, 0, err
	}
	if len(events) == 0 {
		return 0, 0, nil
	}

	msgs := make([]kafkago.Message, len(events))
	for i, event := range events {
		msgs[i] = toMessage(event)
	}
	failures := perMessageErrors(r.writer.WriteMessages(ctx, msgs...), len(events))

	for i, event := range events {
		at := r.now().UTC()
		if failures[i] != nil {
			r.logger.Warn("publish outbox event failed",
				zap.String("outbox_id", event.ID),
				zap.String("event_type", event.EventType),
				zap.Int("retry_count", event.RetryCount),
				zap.Error(failures[i]),
			)
			if markErr := r.repo.MarkFailed(ctx, event, failures[i].Error(), at); markErr != nil {
				r.logger.Error("mark outbox event failed", zap.String("outbox_id", event.ID), zap.Error(markErr))
			}
			continue
		}

		if markErr := r.repo.MarkSent(ctx, event.ID, at); markErr != nil {
			// The row will be published again; consumers dedupe on event id.
			r.logger.Error("mark outbox event sent failed", zap.String("outbox_id", event.ID), zap.Error(markErr))
			continue
		}
		sent++
	}

	r.logger.Debug("outbox batch published", zap.Int("fetched", len(events)), zap.Int("sent", sent))
	return sent, len(events), nil
}

// perMessageErrors spreads a WriteMessages result over n messages.
func perMessageErrors(err error, n int) []error {
	out := make([]error, n)
	if err == nil {
		return out
	}

	var writeErrs kafkago.WriteErrors
	if errors.As(err, &writeErrs) && len(writeErrs) == n {
		copy(out, writeErrs)
		return out
	}
	for i := range out {
		out[i] = err
	}
	return out
}
