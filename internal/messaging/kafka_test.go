package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturingWriter struct {
	messages []kafka.Message
	err      error
}

func (w *capturingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *capturingWriter) Close() error { return nil }

func TestRankingAuditPublisher_Publish(t *testing.T) {
	writer := &capturingWriter{}
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	publisher := &RankingAuditPublisher{writer: writer, logger: logger}

	publisher.Publish(context.Background(), RankingAuditEvent{
		Kind:        "influencer",
		RequestID:   "req-123",
		SortBy:      "score",
		Page:        2,
		Limit:       20,
		ResultTotal: 57,
		DurationMs:  42,
	})

	require.Len(t, writer.messages, 1)
	msg := writer.messages[0]
	assert.Equal(t, []byte("influencer"), msg.Key)

	var event RankingAuditEvent
	require.NoError(t, json.Unmarshal(msg.Value, &event))
	assert.Equal(t, "req-123", event.RequestID)
	assert.Equal(t, 57, event.ResultTotal)
	assert.False(t, event.Timestamp.IsZero(), "timestamp should be stamped on publish")
	assert.WithinDuration(t, time.Now(), event.Timestamp, time.Minute)
}

func TestRankingAuditPublisher_PublishFailureIsSwallowed(t *testing.T) {
	writer := &capturingWriter{err: errors.New("broker unavailable")}
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	publisher := &RankingAuditPublisher{writer: writer, logger: logger}

	// Must not panic or surface the error.
	publisher.Publish(context.Background(), RankingAuditEvent{Kind: "campaign"})
	assert.Empty(t, writer.messages)
}
