package infrastructure

import (
	"fmt"

	"github.com/twmb/franz-go/pkg/kgo"
	"go.uber.org/zap"

	"user-table-service/internal/config"
)

// NewKafkaProducer creates the franz-go client used to publish user change events
func NewKafkaProducer(cfg *config.Config, l *zap.Logger) (*kgo.Client, error) {
	cl, err := kgo.NewClient(
		kgo.SeedBrokers(cfg.Kafka.Brokers...),
		kgo.DefaultProduceTopic(cfg.Kafka.Topic),
		kgo.ClientID(cfg.Logger.ServiceName),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	l.Info("Kafka producer configured",
		zap.Strings("brokers", cfg.Kafka.Brokers),
		zap.String("topic", cfg.Kafka.Topic),
	)

	return cl, nil
}
