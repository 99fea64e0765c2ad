package producer_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"go-staffhub/internal/messaging/kafka"
	kafkaMock "go-staffhub/internal/messaging/kafka/mock"
	"go-staffhub/internal/messaging/kafka/producer"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

// fakeWriter mimics a synchronous *kafkago.Writer: per-message failures come
// back as kafkago.WriteErrors.
type fakeWriter struct {
	failFor map[string]bool
	err     error
	calls   int
	written []kafkago.Message
}

func (f *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafkago.Message) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	errs := make(kafkago.WriteErrors, len(msgs))
	failed := false
	for i, m := range msgs {
		if f.failFor[string(m.Key)] {
			errs[i] = errors.New("leader not available")
			failed = true
			continue
		}
		f.written = append(f.written, m)
	}
	if failed {
		return errs
	}
	return nil
}

var fixedNow = time.Date(2025, 8, 20, 12, 0, 0, 0, time.UTC)

func newRelay(repo kafka.OutboxRepository, w producer.MessageWriter, batch int) *producer.Relay {
	return producer.NewRelay(repo, w,
		producer.WithLogger(zap.NewNop()),
		producer.WithClock(func() time.Time { return fixedNow }),
		producer.WithBatchSize(batch),
	)
}

func TestRelay_PublishBatch(t *testing.T) {
	ctx := context.Background()

	ok := kafka.OutboxEvent{ID: "o-1", AggregateID: "agg-1", AggregateType: "time_off_request", EventType: "timeoff.created", Topic: "t", Payload: []byte(`{}`), RequestID: "rid"}
	bad := kafka.OutboxEvent{ID: "o-2", AggregateID: "agg-2", EventType: "timeoff.deleted", Topic: "t", Payload: []byte(`{}`), RetryCount: 2}

	t.Run("marks each message by its own result", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkaMock.NewMockOutboxRepository(ctrl)
		writer := &fakeWriter{failFor: map[string]bool{"agg-2": true}}

		repo.EXPECT().ListPending(ctx, fixedNow, 50).Return([]kafka.OutboxEvent{ok, bad}, nil)
		repo.EXPECT().MarkSent(ctx, "o-1", fixedNow).Return(nil)
		repo.EXPECT().MarkFailed(ctx, bad, "leader not available", fixedNow).Return(nil)

		sent, fetched, err := newRelay(repo, writer, 50).PublishBatch(ctx)

		assert.NoError(t, err)
		assert.Equal(t, 1, sent)
		assert.Equal(t, 2, fetched)
		assert.Equal(t, 1, writer.calls)
		if assert.Len(t, writer.written, 1) {
			msg := writer.written[0]
			assert.Equal(t, "agg-1", string(msg.Key))
			assert.Equal(t, "t", msg.Topic)
			assert.Contains(t, msg.Headers, kafkago.Header{Key: "outbox_id", Value: []byte("o-1")})
			assert.Contains(t, msg.Headers, kafkago.Header{Key: "event_type", Value: []byte("timeoff.created")})
			assert.Contains(t, msg.Headers, kafkago.Header{Key: "request_id", Value: []byte("rid")})
		}
	})

	t.Run("whole batch fails on a transport error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkaMock.NewMockOutboxRepository(ctrl)
		writer := &fakeWriter{err: errors.New("dial tcp: refused")}

		repo.EXPECT().ListPending(ctx, fixedNow, 50).Return([]kafka.OutboxEvent{ok, bad}, nil)
		repo.EXPECT().MarkFailed(ctx, ok, "dial tcp: refused", fixedNow).Return(nil)
		repo.EXPECT().MarkFailed(ctx, bad, "dial tcp: refused", fixedNow).Return(nil)

		sent, _, err := newRelay(repo, writer, 50).PublishBatch(ctx)
		assert.NoError(t, err)
		assert.Zero(t, sent)
	})

	t.Run("list error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkaMock.NewMockOutboxRepository(ctrl)
		repo.EXPECT().ListPending(ctx, fixedNow, 50).Return(nil, errors.New("db down"))

		_, _, err := newRelay(repo, &fakeWriter{}, 50).PublishBatch(ctx)
		assert.EqualError(t, err, "db down")
	})
}

func TestRelay_DrainFollowsFullBatches(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	repo := kafkaMock.NewMockOutboxRepository(ctrl)
	writer := &fakeWriter{}

	batch := func(from, n int) []kafka.OutboxEvent {
		out := make([]kafka.OutboxEvent, n)
		for i := range out {
			id := fmt.Sprintf("o-%d", from+i)
			out[i] = kafka.OutboxEvent{ID: id, AggregateID: id, Topic: "t"}
		}
		return out
	}

	gomock.InOrder(
		repo.EXPECT().ListPending(ctx, fixedNow, 2).Return(batch(0, 2), nil),
		repo.EXPECT().ListPending(ctx, fixedNow, 2).Return(batch(2, 1), nil),
	)
	repo.EXPECT().MarkSent(ctx, gomock.Any(), fixedNow).Return(nil).Times(3)

	sent, err := newRelay(repo, writer, 2).Drain(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 3, sent)
	assert.Equal(t, 2, writer.calls)
}

func TestRelay_RunStopsOnCancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := kafkaMock.NewMockOutboxRepository(ctrl)
	repo.EXPECT().ListPending(gomock.Any(), gomock.Any(), producer.DefaultBatchSize).Return(nil, nil).MinTimes(1)

	relay := producer.NewRelay(repo, &fakeWriter{},
		producer.WithLogger(zap.NewNop()),
		producer.WithPollInterval(5*time.Millisecond),
	)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		relay.Run(ctx)
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("relay did not stop")
	}
}
