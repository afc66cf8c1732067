package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"

	"github.com/adlume/spotrank/internal/config"
)

const RankingAuditTopic = "ranking-audit"

// RankingAuditEvent records one served ranking request for offline
// analysis of weight changes and score drift.
type RankingAuditEvent struct {
	Kind        string    `json:"kind"`
	RequestID   string    `json:"request_id"`
	SortBy      string    `json:"sort_by"`
	Page        int       `json:"page"`
	Limit       int       `json:"limit"`
	ResultTotal int       `json:"result_total"`
	DurationMs  int64     `json:"duration_ms"`
	Timestamp   time.Time `json:"timestamp"`
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// RankingAuditPublisher writes audit events to Kafka. Publishing is
// best effort: a broker outage must never fail a ranking request.
type RankingAuditPublisher struct {
	writer messageWriter
	logger *logrus.Logger
}

func NewRankingAuditPublisher(cfg *config.Config, logger *logrus.Logger) *RankingAuditPublisher {
	return &RankingAuditPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(cfg.Kafka.Brokers...),
			Topic:        cfg.Kafka.Topics.RankingAudit,
			Balancer:     &kafka.Hash{}, // Key by candidate kind
			RequiredAcks: kafka.RequireOne,
			Async:        true,
			BatchTimeout: 10 * time.Millisecond,
			BatchSize:    100,
		},
		logger: logger,
	}
}

// Publish sends one audit event. Failures are logged and swallowed.
func (p *RankingAuditPublisher) Publish(ctx context.Context, event RankingAuditEvent) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		p.logger.WithError(err).Error("Failed to marshal ranking audit event")
		return
	}

	msg := kafka.Message{
		Key:   []byte(event.Kind),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "request_id", Value: []byte(event.RequestID)},
			{Key: "kind", Value: []byte(event.Kind)},
			{Key: "timestamp", Value: []byte(event.Timestamp.Format(time.RFC3339))},
		},
	}

	writeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := p.writer.WriteMessages(writeCtx, msg); err != nil {
		p.logger.WithError(err).WithFields(logrus.Fields{
			"request_id": event.RequestID,
			"kind":       event.Kind,
		}).Warn("Failed to publish ranking audit event")
		return
	}

	p.logger.WithFields(logrus.Fields{
		"request_id":   event.RequestID,
		"kind":         event.Kind,
		"result_total": event.ResultTotal,
	}).Debug("Ranking audit event published")
}

func (p *RankingAuditPublisher) Close() error {
	if err := p.writer.Close(); err != nil {
		return fmt.Errorf("failed to close audit writer: %w", err)
	}
	return nil
}
