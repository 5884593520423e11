package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"
	"go.uber.org/zap"

	domain "user-table-service/internal/domain/user"
	"user-table-service/pkg/logger"
)

// Producer is the part of *kgo.Client used for publishing.
type Producer interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
}

// KafkaPublisher writes user change events to a Kafka topic.
// Records are keyed by user ID so events for one user stay ordered.
type KafkaPublisher struct {
	producer Producer
	topic    string
	source   string
	log      *zap.Logger
	now      func() time.Time
}

// NewKafkaPublisher creates a publisher writing to topic. source names this
// service in the envelope.
func NewKafkaPublisher(p Producer, topic, source string, log *zap.Logger) *KafkaPublisher {
	return &KafkaPublisher{
		producer: p,
		topic:    topic,
		source:   source,
		log:      log,
		now:      time.Now,
	}
}

// Publish sends one event and waits for the broker acknowledgement.
func (p *KafkaPublisher) Publish(ctx context.Context, eventType string, u domain.User) error {
	payload, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("marshal user payload: %w", err)
	}

	envelope := Envelope{
		SpecVersion: SpecVersionV1,
		Domain:      Domain,
		EventType:   eventType,
		Source:      p.source,
		Timestamp:   p.now().UTC(),
		Payload:     payload,
	}
	if id := logger.GetRequestID(ctx); id != "" {
		envelope.Correlation = map[string]string{"request_id": id}
	}
	if err := envelope.validate(); err != nil {
		return fmt.Errorf("invalid envelope: %w", err)
	}

	data, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("marshal envelope: %w", err)
	}

	record := &kgo.Record{
		Topic:     p.topic,
		Key:       []byte(strconv.FormatInt(u.ID, 10)),
		Value:     data,
		Timestamp: envelope.Timestamp,
	}
	if err := p.producer.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("publish %s to %s: %w", eventType, p.topic, err)
	}

	logger.WithContext(ctx, p.log).Debug("published user event",
		zap.String("event_type", eventType),
		zap.Int64("id", u.ID),
		zap.String("topic", p.topic),
	)
	return nil
}

// NoopPublisher discards every event.
type NoopPublisher struct{}

// Publish implements the publisher interface and does nothing.
func (NoopPublisher) Publish(context.Context, string, domain.User) error {
	return nil
}
