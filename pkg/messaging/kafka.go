package messaging

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
)

// Topics of the reference API.
const (
	TopicOrderEvents = "order_events"
)

type KafkaProducer struct {
	brokers      []string
	batchTimeout time.Duration

	mu      sync.Mutex
	writers map[string]*kafka.Writer
}

func NewKafkaProducer(brokers []string) *KafkaProducer {
	return &KafkaProducer{
		brokers:      brokers,
		batchTimeout: 10 * time.Millisecond,
		writers:      make(map[string]*kafka.Writer),
	}
}

func (kp *KafkaProducer) writer(topic string) *kafka.Writer {
	kp.mu.Lock()
	defer kp.mu.Unlock()

	if writer, exists := kp.writers[topic]; exists {
		return writer
	}

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(kp.brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		BatchTimeout:           kp.batchTimeout,
		AllowAutoTopicCreation: true,
	}
	kp.writers[topic] = writer
	return writer
}

// Publish writes value as JSON to topic, keyed by key.
func (kp *KafkaProducer) Publish(ctx context.Context, topic, key string, value any) error {
	jsonData, err := json.Marshal(value)
	if err != nil {
		return err
	}

	message := kafka.Message{
		Key:   []byte(key),
		Value: jsonData,
	}

	return kp.writer(topic).WriteMessages(ctx, message)
}

func (kp *KafkaProducer) Close() error {
	kp.mu.Lock()
	defer kp.mu.Unlock()

	var firstErr error
	for topic, writer := range kp.writers {
		if err := writer.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(kp.writers, topic)
	}
	return firstErr
}

// NopPublisher drops every event. It is used when no brokers are set.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, string, any) error { return nil }

// OrderEvent is published on every order lifecycle change.
type OrderEvent struct {
	Type        string    `json:"type"`
	OrderID     int64     `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	UserID      int64     `json:"user_id"`
	Status      string    `json:"status"`
	Data        any       `json:"data,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}

const (
	EventOrderCreated       = "order.created"
	EventOrderStatusChanged = "order.status_changed"
	EventOrderReviewed      = "order.reviewed"
)
