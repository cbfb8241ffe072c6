package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	topic    string
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func newTestProducer() (*KafkaProducer, map[string]*fakeWriter) {
	writers := make(map[string]*fakeWriter)
	kp := NewKafkaProducer([]string{"localhost:9092"}, "restaurant_view_events")
	kp.newWriter = func(topic string) messageWriter {
		w := &fakeWriter{topic: topic}
		writers[topic] = w
		return w
	}
	return kp, writers
}

func TestKafkaProducer_Publish(t *testing.T) {
	kp, writers := newTestProducer()

	err := kp.Publish(context.Background(), ViewEvent{
		Type:         EventDetailViewed,
		SessionID:    "s1",
		RestaurantID: "rqdv5juczeskfw1e867",
	})
	require.NoError(t, err)

	w := writers["restaurant_view_events"]
	require.NotNil(t, w)
	require.Len(t, w.messages, 1)
	assert.Equal(t, "s1", string(w.messages[0].Key))

	var got ViewEvent
	require.NoError(t, json.Unmarshal(w.messages[0].Value, &got))
	assert.Equal(t, EventDetailViewed, got.Type)
	assert.Equal(t, "rqdv5juczeskfw1e867", got.RestaurantID)
	assert.False(t, got.OccurredAt.IsZero())
}

func TestKafkaProducer_ReusesWriter(t *testing.T) {
	kp, writers := newTestProducer()

	require.NoError(t, kp.Publish(context.Background(), ViewEvent{Type: EventLoadMore, SessionID: "a"}))
	require.NoError(t, kp.Publish(context.Background(), ViewEvent{Type: EventLoadMore, SessionID: "b"}))

	assert.Len(t, writers, 1)
	assert.Len(t, writers["restaurant_view_events"].messages, 2)

	require.NoError(t, kp.Close())
	assert.True(t, writers["restaurant_view_events"].closed)
}

func TestKafkaProducer_WriteError(t *testing.T) {
	kp, _ := newTestProducer()
	kp.newWriter = func(topic string) messageWriter {
		return &fakeWriter{err: errors.New("broker down")}
	}

	err := kp.Publish(context.Background(), ViewEvent{Type: EventListLoaded})
	assert.EqualError(t, err, "broker down")
}

func TestNewEventPublisher(t *testing.T) {
	_, ok := NewEventPublisher(nil, "t").(NoopPublisher)
	assert.True(t, ok)

	_, ok = NewEventPublisher([]string{"k:9092"}, "t").(*KafkaProducer)
	assert.True(t, ok)
}
