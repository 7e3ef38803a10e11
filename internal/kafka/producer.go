package kafka

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"

	"ms-storefront/internal/models"
)

const (
	TopicOrderCreated  = "drop.order.created"
	TopicOrderUpdated  = "drop.order.updated"
	TopicOrderCanceled = "drop.order.canceled"
	TopicSlotsReleased = "drop.slots.released"
)

// Producer streams order lifecycle events keyed by order id.
type Producer struct {
	Writer *kafka.Writer
}

func NewProducer(brokers []string) *Producer {
	writer := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Balancer: &kafka.LeastBytes{},
	}
	return &Producer{Writer: writer}
}

func (p *Producer) Publish(topic, key string, value []byte) error {
	return p.Writer.WriteMessages(context.Background(), kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: value,
	})
}

func (p *Producer) publishOrder(topic string, order models.Order) error {
	msgBytes, err := json.Marshal(order)
	if err != nil {
		return err
	}
	return p.Publish(topic, order.OrderID, msgBytes)
}

func (p *Producer) PublishOrderCreated(order models.Order) error {
	return p.publishOrder(TopicOrderCreated, order)
}

func (p *Producer) PublishOrderUpdated(order models.Order) error {
	return p.publishOrder(TopicOrderUpdated, order)
}

func (p *Producer) PublishOrderCancelled(order models.Order) error {
	return p.publishOrder(TopicOrderCanceled, order)
}

func (p *Producer) Close() error {
	return p.Writer.Close()
}
