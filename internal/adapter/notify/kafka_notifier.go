package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"esports-wagering-platform/config"
	"esports-wagering-platform/pkg/contracts/events"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
)

// KafkaNotifier implements ports.Notifier by publishing bet lifecycle events
// to a Kafka topic, keyed by account so one account's events stay ordered.
type KafkaNotifier struct {
	writer *kafka.Writer
	log    zerolog.Logger
}

// NewKafkaNotifier creates a notifier with its own writer. Close releases it.
func NewKafkaNotifier(cfg config.KafkaConfig, log zerolog.Logger) *KafkaNotifier {
	return &KafkaNotifier{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(cfg.Brokers),
			Topic:                  cfg.Topic,
			Balancer:               &kafka.LeastBytes{},
			AllowAutoTopicCreation: true,
		},
		log: log,
	}
}

// Publish sends one bet lifecycle event.
func (n *KafkaNotifier) Publish(ctx context.Context, event events.BetEvent) error {
	if event.TsUnixMs == 0 {
		event.TsUnixMs = time.Now().UnixMilli()
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal bet event: %w", err)
	}
	err = n.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.AccountID),
		Value: payload,
		Time:  time.Now(),
	})
	if err != nil {
		return fmt.Errorf("publish bet event: %w", err)
	}
	return nil
}

// Close flushes and releases the underlying writer.
func (n *KafkaNotifier) Close() error {
	return n.writer.Close()
}
