package messaging

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
	log "github.com/sirupsen/logrus"
)

// Event types published by the view
const (
	EventListLoaded     = "list_loaded"
	EventFiltersChanged = "filters_changed"
	EventFiltersCleared = "filters_cleared"
	EventLoadMore       = "load_more"
	EventDetailViewed   = "detail_viewed"
)

// ViewEvent describes one user-visible transition of a view
type ViewEvent struct {
	Type         string                 `json:"type"`
	SessionID    string                 `json:"session_id"`
	RestaurantID string                 `json:"restaurant_id,omitempty"`
	Cursor       int                    `json:"cursor"`
	Metadata     map[string]interface{} `json:"metadata,omitempty"`
	OccurredAt   time.Time              `json:"occurred_at"`
}

// EventPublisher is implemented by KafkaProducer and NoopPublisher
type EventPublisher interface {
	Publish(ctx context.Context, event ViewEvent) error
	Close() error
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaProducer struct {
	mu        sync.Mutex
	brokers   []string
	topic     string
	writers   map[string]messageWriter
	newWriter func(topic string) messageWriter
}

func NewKafkaProducer(brokers []string, topic string) *KafkaProducer {
	kp := &KafkaProducer{
		brokers: brokers,
		topic:   topic,
		writers: make(map[string]messageWriter),
	}
	kp.newWriter = func(topic string) messageWriter {
		return &kafka.Writer{
			Addr:         kafka.TCP(kp.brokers...),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireOne,
		}
	}
	return kp
}

func (kp *KafkaProducer) getWriter(topic string) messageWriter {
	kp.mu.Lock()
	defer kp.mu.Unlock()

	if writer, exists := kp.writers[topic]; exists {
		return writer
	}

	writer := kp.newWriter(topic)
	kp.writers[topic] = writer
	return writer
}

func (kp *KafkaProducer) sendMessage(ctx context.Context, topic string, key string, value interface{}) error {
	writer := kp.getWriter(topic)

	jsonData, err := json.Marshal(value)
	if err != nil {
		return err
	}

	message := kafka.Message{
		Key:   []byte(key),
		Value: jsonData,
	}

	return writer.WriteMessages(ctx, message)
}

// Publish sends the event to the configured topic keyed by session id
func (kp *KafkaProducer) Publish(ctx context.Context, event ViewEvent) error {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}
	return kp.sendMessage(ctx, kp.topic, event.SessionID, event)
}

func (kp *KafkaProducer) Close() error {
	kp.mu.Lock()
	defer kp.mu.Unlock()

	for topic, writer := range kp.writers {
		if err := writer.Close(); err != nil {
			log.WithError(err).WithField("topic", topic).Warn("Failed to close kafka writer")
		}
	}
	kp.writers = make(map[string]messageWriter)
	return nil
}

// NoopPublisher drops every event; used when no brokers are configured
type NoopPublisher struct{}

func (NoopPublisher) Publish(ctx context.Context, event ViewEvent) error { return nil }

func (NoopPublisher) Close() error { return nil }

// NewEventPublisher picks the kafka producer when brokers are set
func NewEventPublisher(brokers []string, topic string) EventPublisher {
	if len(brokers) == 0 {
		return NoopPublisher{}
	}
	return NewKafkaProducer(brokers, topic)
}
