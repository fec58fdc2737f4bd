package order

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rabbitmq/amqp091-go"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type fakeWriter struct {
	msgs   []kafka.Message
	closed bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	f.msgs = append(f.msgs, msgs...)
	return nil
}
func (f *fakeWriter) Close() error { f.closed = true; return nil }

func TestKafkaPublisher(t *testing.T) {
	w := &fakeWriter{}
	p := &KafkaPublisher{w: w}
	ev := newEvent(EventSubmitted, sampleOrder(), fixedNow)

	require.NoError(t, p.Publish(context.Background(), ev))
	require.Len(t, w.msgs, 1)
	assert.Equal(t, []byte(ev.OrderID), w.msgs[0].Key)
	assert.Equal(t, "type", w.msgs[0].Headers[0].Key)

	var got Event
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &got))
	assert.Equal(t, EventSubmitted, got.Type)
	assert.True(t, got.TotalAmount.Equal(ev.TotalAmount))

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

type fakeChannel struct {
	declared []string
	keys     []string
	msgs     []amqp091.Publishing
	err      error
}

func (f *fakeChannel) ExchangeDeclare(name, kind string, _, _, _, _ bool, _ amqp091.Table) error {
	f.declared = append(f.declared, name+":"+kind)
	return nil
}

func (f *fakeChannel) PublishWithContext(_ context.Context, _, key string, _, _ bool, msg amqp091.Publishing) error {
	if f.err != nil {
		return f.err
	}
	f.keys = append(f.keys, key)
	f.msgs = append(f.msgs, msg)
	return nil
}

func (f *fakeChannel) Close() error { return nil }

func TestAMQPPublisher(t *testing.T) {
	ch := &fakeChannel{}
	p, err := newAMQPPublisher(ch, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"orders_topic:topic"}, ch.declared)

	o := sampleOrder()
	o.Status = StatusCompleted
	require.NoError(t, p.Publish(context.Background(), newEvent(EventCompleted, o, fixedNow)))
	assert.Equal(t, []string{"order.completed"}, ch.keys)
	assert.Equal(t, amqp091.Persistent, ch.msgs[0].DeliveryMode)
	assert.Equal(t, "application/json", ch.msgs[0].ContentType)

	ch.err = errors.New("channel closed")
	assert.Error(t, p.Publish(context.Background(), newEvent(EventCompleted, o, fixedNow)))
}

func TestNewKafkaPublisher_FlushesPerMessage(t *testing.T) {
	p := NewKafkaPublisher([]string{"k1:9092"}, "orders")
	w, ok := p.w.(*kafka.Writer)
	require.True(t, ok)
	assert.Equal(t, "orders", w.Topic)
	assert.Equal(t, 1, w.BatchSize)
	assert.Equal(t, kafkaBatchTimeout, w.BatchTimeout)
	assert.Equal(t, kafkaMaxAttempts, w.MaxAttempts)
	assert.False(t, w.Async)
	require.NoError(t, p.Close())
}

func TestLogPublisher(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	p := NewLogPublisher(zap.New(core))

	require.NoError(t, p.Publish(context.Background(), newEvent(EventSubmitted, sampleOrder(), fixedNow)))
	entries := logs.FilterMessage("order event").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "250.00", entries[0].ContextMap()["total"])
}
