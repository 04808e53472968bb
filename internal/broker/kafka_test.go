package broker

import (
	"context"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProducer_KeyedAndAcknowledged(t *testing.T) {
	p := NewProducer(&Config{Brokers: []string{"k1:9092"}, Topic: "orders.events"})
	defer p.Close()

	assert.Equal(t, "orders.events", p.writer.Topic)
	assert.Equal(t, kafka.RequireAll, p.writer.RequiredAcks)
	assert.IsType(t, &kafka.Hash{}, p.writer.Balancer)
}

func TestPublish_RejectsUnencodableValue(t *testing.T) {
	p := NewProducer(&Config{Brokers: []string{"localhost:9092"}, Topic: "orders.events"})
	defer p.Close()

	err := p.Publish(context.Background(), "k", make(chan int))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "encode message")
}

func TestNopPublisher(t *testing.T) {
	assert.NoError(t, NopPublisher{}.Publish(context.Background(), "k", struct{}{}))
}
