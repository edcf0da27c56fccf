package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tenantadmin/internal/platform/kafka/producer"
	"tenantadmin/internal/tenant/models"
	id "tenantadmin/pkg/domain"
)

type recordingProducer struct {
	msgs []*producer.Message
	err  error
}

func (p *recordingProducer) Produce(_ context.Context, msg *producer.Message) error {
	p.msgs = append(p.msgs, msg)
	return p.err
}

func sampleEvent() models.AuditEvent {
	return models.AuditEvent{
		Action:     models.AuditTenantCreated,
		TenantID:   id.NewTenantID(),
		TenantName: "Acme",
		Actor:      "user-1",
		RequestID:  "req-1",
		OccurredAt: time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestKafkaPublisher(t *testing.T) {
	t.Run("encodes event keyed by tenant", func(t *testing.T) {
		prod := &recordingProducer{}
		pub := NewKafkaPublisher(prod, "tenant.audit")
		event := sampleEvent()

		require.NoError(t, pub.Publish(context.Background(), event))
		require.Len(t, prod.msgs, 1)

		msg := prod.msgs[0]
		assert.Equal(t, "tenant.audit", msg.Topic)
		assert.Equal(t, event.TenantID.String(), string(msg.Key))
		assert.Equal(t, "tenant_created", msg.Headers["event_type"])

		var decoded map[string]any
		require.NoError(t, json.Unmarshal(msg.Value, &decoded))
		assert.Equal(t, "tenant_created", decoded["action"])
		assert.Equal(t, "Acme", decoded["tenant_name"])
		assert.Equal(t, "user-1", decoded["actor"])
		assert.Equal(t, "2026-05-01T12:00:00Z", decoded["occurred_at"])
	})

	t.Run("propagates producer failure", func(t *testing.T) {
		prod := &recordingProducer{err: errors.New("broker down")}
		err := NewKafkaPublisher(prod, "tenant.audit").Publish(context.Background(), sampleEvent())
		assert.EqualError(t, err, "broker down")
	})
}

func TestLogPublisher(t *testing.T) {
	var buf bytes.Buffer
	pub := NewLogPublisher(slog.New(slog.NewJSONHandler(&buf, nil)))

	require.NoError(t, pub.Publish(context.Background(), sampleEvent()))
	assert.Contains(t, buf.String(), `"msg":"tenant_created"`)
	assert.Contains(t, buf.String(), `"log_type":"audit"`)
	assert.Contains(t, buf.String(), `"actor":"user-1"`)
}
