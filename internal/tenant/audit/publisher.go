// Package audit publishes tenant mutation events.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"tenantadmin/internal/platform/kafka/producer"
	"tenantadmin/internal/tenant/models"
)

// Producer is the subset of the Kafka producer used here.
type Producer interface {
	Produce(ctx context.Context, msg *producer.Message) error
}

// record is the wire shape of a tenant audit event.
type record struct {
	Action     string    `json:"action"`
	TenantID   string    `json:"tenant_id"`
	TenantName string    `json:"tenant_name"`
	Actor      string    `json:"actor,omitempty"`
	RequestID  string    `json:"request_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

func toRecord(e models.AuditEvent) record {
	return record{
		Action:     string(e.Action),
		TenantID:   e.TenantID.String(),
		TenantName: e.TenantName,
		Actor:      e.Actor,
		RequestID:  e.RequestID,
		OccurredAt: e.OccurredAt.UTC(),
	}
}

// KafkaPublisher writes events as JSON records keyed by tenant ID, so every
// event for one tenant lands on the same partition.
type KafkaPublisher struct {
	producer Producer
	topic    string
}

func NewKafkaPublisher(p Producer, topic string) *KafkaPublisher {
	return &KafkaPublisher{producer: p, topic: topic}
}

func (p *KafkaPublisher) Publish(ctx context.Context, e models.AuditEvent) error {
	payload, err := json.Marshal(toRecord(e))
	if err != nil {
		return fmt.Errorf("encode audit event: %w", err)
	}
	return p.producer.Produce(ctx, &producer.Message{
		Topic: p.topic,
		Key:   []byte(e.TenantID.String()),
		Value: payload,
		Headers: map[string]string{
			"aggregate_type": "tenant",
			"aggregate_id":   e.TenantID.String(),
			"event_type":     string(e.Action),
		},
	})
}

// LogPublisher records events in the structured log when no broker is configured.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(ctx context.Context, e models.AuditEvent) error {
	p.logger.InfoContext(ctx, string(e.Action),
		"log_type", "audit",
		"tenant_id", e.TenantID.String(),
		"tenant_name", e.TenantName,
		"actor", e.Actor,
		"request_id", e.RequestID,
	)
	return nil
}
