//go:build integration

package producer_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/twmb/franz-go/pkg/kgo"

	"tenantadmin/internal/platform/kafka/producer"
	"tenantadmin/pkg/testutil/containers"
)

type ProducerIntegrationSuite struct {
	suite.Suite
	kafka    *containers.KafkaContainer
	producer *producer.Producer
}

func TestProducerIntegrationSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(ProducerIntegrationSuite))
}

func (s *ProducerIntegrationSuite) SetupSuite() {
	s.kafka = containers.GetManager().GetKafka(s.T())

	cfg := producer.DefaultConfig(s.kafka.Brokers)
	cfg.DeliveryTimeout = 10 * time.Second
	prod, err := producer.New(cfg, nil)
	s.Require().NoError(err)
	s.producer = prod
}

func (s *ProducerIntegrationSuite) TearDownSuite() {
	if s.producer != nil {
		s.Require().NoError(s.producer.Close())
	}
}

func (s *ProducerIntegrationSuite) TestProduceDeliversKeyValueAndHeaders() {
	ctx := context.Background()
	topic := "tenant-producer-" + time.Now().Format("20060102150405")

	err := s.producer.Produce(ctx, &producer.Message{
		Topic: topic,
		Key:   []byte("tenant-key"),
		Value: []byte(`{"event":"tenant_created"}`),
		Headers: map[string]string{
			"aggregate_type": "tenant",
			"event_type":     "tenant_created",
		},
	})
	s.Require().NoError(err)

	record, err := s.kafka.WaitForRecord(ctx, topic, 10*time.Second, func(r *kgo.Record) bool {
		return string(r.Key) == "tenant-key"
	})
	s.Require().NoError(err)
	s.Require().NotNil(record)
	s.JSONEq(`{"event":"tenant_created"}`, string(record.Value))

	headers := make(map[string]string)
	for _, h := range record.Headers {
		headers[h.Key] = string(h.Value)
	}
	s.Equal("tenant", headers["aggregate_type"])
	s.Equal("tenant_created", headers["event_type"])
}

func (s *ProducerIntegrationSuite) TestHealthyWithRunningBroker() {
	s.NoError(s.producer.Healthy(context.Background()))
}

func (s *ProducerIntegrationSuite) TestProduceAfterCloseFails() {
	prod, err := producer.New(producer.DefaultConfig(s.kafka.Brokers), nil)
	s.Require().NoError(err)
	s.Require().NoError(prod.Close())

	err = prod.Produce(context.Background(), &producer.Message{Topic: "closed", Value: []byte("x")})
	s.Error(err)
	s.Error(prod.Healthy(context.Background()))
}
