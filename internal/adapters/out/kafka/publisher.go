// Package kafka publishes shipment change notifications to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"tracking/internal/core/domain/model/shipment"
	"tracking/internal/core/ports"

	kafkago "github.com/segmentio/kafka-go"
)

var _ ports.EventPublisher = (*Publisher)(nil)

// messageWriter is the part of *kafkago.Writer the publisher needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Publisher writes one JSON message per ChangedEvent, keyed by shipment id
// so that events of one shipment share a partition. Events are published in
// the background, so consumers order them by occurredAt.
type Publisher struct {
	writer messageWriter
}

// NewPublisher creates a publisher writing to topic on the given brokers.
func NewPublisher(brokers []string, topic string) *Publisher {
	return NewPublisherWithWriter(&kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireOne,
		BatchTimeout: 10 * time.Millisecond,
	})
}

// NewPublisherWithWriter creates a publisher over an existing writer.
func NewPublisherWithWriter(writer messageWriter) *Publisher {
	return &Publisher{writer: writer}
}

func (p *Publisher) Publish(ctx context.Context, event shipment.ChangedEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", event.Kind, err)
	}

	msg := kafkago.Message{
		Key:   []byte(event.ShipmentID),
		Value: payload,
		Time:  event.OccurredAt,
		Headers: []kafkago.Header{
			{Key: "kind", Value: []byte(event.Kind)},
		},
	}

	if err = p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write %s event: %w", event.Kind, err)
	}

	return nil
}

// Close flushes pending messages and releases the connection.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
