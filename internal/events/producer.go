// Package events publishes order lifecycle events to Kafka.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/imrishuroy/go-storefront-orderflow/internal/logging"
	"github.com/imrishuroy/go-storefront-orderflow/internal/orders"
)

// OrderSubmittedEvent is emitted once per resolved dispatch.
type OrderSubmittedEvent struct {
	EventID     string           `json:"event_id"`
	RequestID   string           `json:"request_id"`
	ProductID   int64            `json:"product_id"`
	ProductName string           `json:"product_name"`
	Quantity    int              `json:"quantity"`
	Policy      string           `json:"policy"`
	OK          bool             `json:"ok"`
	Outcomes    []orders.Outcome `json:"outcomes"`
	Timestamp   time.Time        `json:"timestamp"`
}

// MessageWriter is the part of *kafka.Writer the producer uses.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaProducer struct {
	writer MessageWriter
	logger *zap.Logger
}

// NewKafkaProducer builds a producer for a comma-separated broker list.
func NewKafkaProducer(brokers, topic string, logger *zap.Logger) (*KafkaProducer, error) {
	addrs := splitBrokers(brokers)
	if len(addrs) == 0 {
		return nil, fmt.Errorf("kafka producer: no brokers")
	}
	writer := &kafka.Writer{
		Addr:         kafka.TCP(addrs...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		BatchTimeout: 10 * time.Millisecond,
	}
	return NewProducer(writer, logger), nil
}

// NewProducer wraps an existing writer.
func NewProducer(w MessageWriter, logger *zap.Logger) *KafkaProducer {
	return &KafkaProducer{writer: w, logger: logging.OrNop(logger)}
}

// PublishOrderSubmitted writes the event keyed by request id so every event
// for the same intent lands on one partition.
func (p *KafkaProducer) PublishOrderSubmitted(ctx context.Context, event OrderSubmittedEvent) error {
	eventBytes, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal order submitted event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.RequestID),
		Value: eventBytes,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte("order.submitted")},
		},
	})
	if err != nil {
		return fmt.Errorf("publish order submitted event: %w", err)
	}

	p.logger.Debug("order submitted event published",
		zap.String("event_id", event.EventID),
		zap.String("request_id", event.RequestID))
	return nil
}

func (p *KafkaProducer) Close() error {
	return p.writer.Close()
}

func splitBrokers(s string) []string {
	var out []string
	for _, b := range strings.Split(s, ",") {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}
