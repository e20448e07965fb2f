package storage

import (
	"context"
	"encoding/json"
	"strconv"

	"restaurant-backend/restaurant-svc/internal/domain"

	"github.com/segmentio/kafka-go"
)

type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

type KafkaPublisher struct {
	Writer MessageWriter
}

func NewKafkaPublisher(writer MessageWriter) *KafkaPublisher {
	return &KafkaPublisher{Writer: writer}
}

// PublishLineEvents keys every message by order id so one order's events
// stay on one partition.
func (p *KafkaPublisher) PublishLineEvents(ctx context.Context, events ...domain.OrderLineEvent) error {
	if len(events) == 0 {
		return nil
	}
	msgs := make([]kafka.Message, 0, len(events))
	for _, event := range events {
		payload, err := json.Marshal(event)
		if err != nil {
			return err
		}
		msgs = append(msgs, kafka.Message{
			Key:   []byte(strconv.FormatInt(event.OrderID, 10)),
			Value: payload,
		})
	}
	return p.Writer.WriteMessages(ctx, msgs...)
}
