//go:build integration

package producer_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/twmb/franz-go/pkg/kgo"

	"devportal/internal/platform/kafka/producer"
	"devportal/pkg/testutil/containers"
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

	prod, err := producer.New(producer.Config{
		Brokers:         s.kafka.Brokers,
		ClientID:        "devportal-test",
		Retries:         3,
		DeliveryTimeout: 10 * time.Second,
	}, nil)
	s.Require().NoError(err)
	s.producer = prod
}

func (s *ProducerIntegrationSuite) TearDownSuite() {
	if s.producer != nil {
		_ = s.producer.Close()
	}
}

func (s *ProducerIntegrationSuite) TestEnsureTopicIsRepeatable() {
	ctx := context.Background()
	s.Require().NoError(s.producer.EnsureTopic(ctx, "devportal.ensure", 3))
	s.Require().NoError(s.producer.EnsureTopic(ctx, "devportal.ensure", 3))
}

func (s *ProducerIntegrationSuite) TestProduceDeliversKeyedRecord() {
	ctx := context.Background()
	topic := "devportal.events.sync"
	s.Require().NoError(s.producer.EnsureTopic(ctx, topic, 1))
	before := s.producer.Stats()

	err := s.producer.Produce(ctx, &producer.Message{
		Topic:   topic,
		Key:     []byte("app-1"),
		Value:   []byte(`{"type":"access_request.approved"}`),
		Headers: map[string]string{"event": "access_request.approved"},
	})
	s.Require().NoError(err)
	s.Equal(before.Delivered+1, s.producer.Stats().Delivered)

	record := s.kafka.ReadRecord(s.T(), topic, 10*time.Second, func(r *kgo.Record) bool {
		return string(r.Key) == "app-1"
	})
	s.Require().NotNil(record)
	s.JSONEq(`{"type":"access_request.approved"}`, string(record.Value))
	s.Require().Len(record.Headers, 1)
	s.Equal("event", record.Headers[0].Key)
}

func (s *ProducerIntegrationSuite) TestAsyncRecordsAreFlushedOnClose() {
	ctx := context.Background()
	topic := "devportal.events.async"
	prod, err := producer.New(producer.Config{Brokers: s.kafka.Brokers}, nil)
	s.Require().NoError(err)
	s.Require().NoError(prod.EnsureTopic(ctx, topic, 1))

	s.Require().NoError(prod.ProduceAsync(&producer.Message{Topic: topic, Key: []byte("app-2"), Value: []byte(`{}`)}))
	s.Require().NoError(prod.Close())
	s.Equal(int64(1), prod.Stats().Delivered)

	s.ErrorIs(prod.Produce(ctx, &producer.Message{Topic: topic}), producer.ErrClosed)
	s.ErrorIs(prod.ProduceAsync(&producer.Message{Topic: topic}), producer.ErrClosed)
	s.False(prod.Healthy(ctx))
}
