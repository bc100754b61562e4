package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/frahmantamala/sewa-portal/internal/core/events"
	"github.com/segmentio/kafka-go"
)

const writeTimeout = 5 * time.Second

// MessageWriter is the part of *kafka.Writer the relay uses.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Subscriber interface {
	Subscribe(eventType string, handler events.Handler)
}

// KafkaRelay forwards bus events to a Kafka topic, one JSON message per
// event keyed by the entity the event is about.
type KafkaRelay struct {
	writer MessageWriter
	logger *slog.Logger
}

func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchSize:    100,
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
		Compression:  kafka.Snappy,
	}
}

func NewKafkaRelay(writer MessageWriter, logger *slog.Logger) *KafkaRelay {
	if logger == nil {
		logger = slog.Default()
	}
	return &KafkaRelay{writer: writer, logger: logger}
}

// Register subscribes the relay to every domain event type.
func (r *KafkaRelay) Register(bus Subscriber) {
	bus.Subscribe(events.EventTypeDonationInitiated, r.Handle)
	bus.Subscribe(events.EventTypeMediaUploaded, r.Handle)
}

func (r *KafkaRelay) Handle(ctx context.Context, event events.Event) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", event.EventType(), err)
	}

	message := kafka.Message{
		Key:   []byte(events.PartitionKey(event)),
		Value: value,
		Time:  event.OccurredAt(),
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(event.EventType())},
			{Key: "event-id", Value: []byte(event.EventID())},
		},
	}

	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	if err := r.writer.WriteMessages(ctx, message); err != nil {
		return fmt.Errorf("failed to write %s event to kafka: %w", event.EventType(), err)
	}

	r.logger.Debug("event relayed to kafka", "event_type", event.EventType(), "event_id", event.EventID())
	return nil
}

func (r *KafkaRelay) Close() error {
	return r.writer.Close()
}
