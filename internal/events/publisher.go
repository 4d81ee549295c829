// Package events publishes order lifecycle events to Kafka for downstream
// consumers such as reminder and notification services.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/BruksfildServices01/business-booking/internal/audit"
)

const DefaultOrdersTopic = "booking.orders"

// MessageWriter is the part of *kafka.Writer the publisher uses.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher turns order audit events into Kafka messages keyed by
// employee, so one employee's events stay ordered within a partition.
type Publisher struct {
	writer MessageWriter
	topic  string
	now    func() time.Time
}

type Envelope struct {
	EventID    string    `json:"event_id"`
	EventType  string    `json:"event_type"`
	OccurredAt time.Time `json:"occurred_at"`
	BusinessID uint      `json:"business_id"`
	UserID     *uint     `json:"user_id,omitempty"`
	OrderID    *uint     `json:"order_id,omitempty"`
	Data       any       `json:"data,omitempty"`
}

func NewPublisher(writer MessageWriter, topic string) *Publisher {
	if topic == "" {
		topic = DefaultOrdersTopic
	}
	return &Publisher{writer: writer, topic: topic, now: time.Now}
}

// NewKafkaPublisher returns nil when no brokers are configured.
func NewKafkaPublisher(brokers, topic string) *Publisher {
	list := SplitBrokers(brokers)
	if len(list) == 0 {
		return nil
	}
	w := &kafka.Writer{
		Addr:         kafka.TCP(list...),
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 10 * time.Millisecond,
		WriteTimeout: 5 * time.Second,
	}
	return NewPublisher(w, topic)
}

// Write publishes order events and ignores every other action.
func (p *Publisher) Write(ctx context.Context, ev audit.Event) error {
	if !strings.HasPrefix(ev.Action, "order_") {
		return nil
	}

	env := Envelope{
		EventID:    uuid.NewString(),
		EventType:  ev.Action,
		OccurredAt: p.now().UTC(),
		BusinessID: ev.BusinessID,
		UserID:     ev.UserID,
		OrderID:    ev.EntityID,
		Data:       ev.Metadata,
	}
	payload, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("encode %s: %w", ev.Action, err)
	}

	msg := kafka.Message{
		Topic: p.topic,
		Key:   []byte(partitionKey(ev)),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(env.EventID)},
			{Key: "event_type", Value: []byte(env.EventType)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish %s: %w", ev.Action, err)
	}
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

func partitionKey(ev audit.Event) string {
	if m, ok := ev.Metadata.(map[string]any); ok {
		if id, ok := m["employee_id"]; ok {
			return fmt.Sprint(id)
		}
	}
	return strconv.FormatUint(uint64(ev.BusinessID), 10)
}

func SplitBrokers(raw string) []string {
	var brokers []string
	for _, b := range strings.Split(raw, ",") {
		b = strings.TrimSpace(b)
		if b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

var _ audit.Writer = (*Publisher)(nil)
