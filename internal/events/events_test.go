package events

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
	msgs   []kafka.Message
	err    error
	closed bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func TestNewKafka_NoBrokersIsNop(t *testing.T) {
	p := NewKafka([]string{"", "  "}, "goyal.orders")
	assert.IsType(t, Nop{}, p)
	assert.NoError(t, p.Publish(context.Background(), New(EventOrderCreated, "ORD-1", nil)))
	assert.NoError(t, p.Close())
}

func TestNewKafka_WithBrokers(t *testing.T) {
	p := NewKafka([]string{" localhost:9092 "}, "goyal.orders")
	k, ok := p.(*Kafka)
	require.True(t, ok)
	w := k.w.(*kafka.Writer)
	assert.Equal(t, "goyal.orders", w.Topic)
	assert.Equal(t, "localhost:9092", w.Addr.String())
}

func TestKafka_Publish(t *testing.T) {
	fw := &fakeWriter{}
	k := &Kafka{w: fw}

	e := New(EventOrderCreated, "ORD-7", map[string]any{"total": 3998})
	require.NoError(t, k.Publish(context.Background(), e))
	require.Len(t, fw.msgs, 1)
	assert.Equal(t, "ORD-7", string(fw.msgs[0].Key))

	var got Event
	require.NoError(t, json.Unmarshal(fw.msgs[0].Value, &got))
	assert.Equal(t, e.EventID, got.EventID)
	assert.Equal(t, EventOrderCreated, got.Type)
	assert.EqualValues(t, 3998, got.Payload["total"])

	require.NoError(t, k.Close())
	assert.True(t, fw.closed)
}

func TestKafka_PublishError(t *testing.T) {
	k := &Kafka{w: &fakeWriter{err: errors.New("broker down")}}
	err := k.Publish(context.Background(), New(EventOrderStatusChanged, "ORD-1", nil))
	assert.ErrorContains(t, err, "broker down")
}
