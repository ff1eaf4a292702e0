package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/segmentio/kafka-go"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Producer struct {
	writer messageWriter
}

func NewProducer(brokers []string, topic string) *Producer {
	writer := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}

	return &Producer{writer: writer}
}

// BuildMessage encodes event as a keyed kafka message.
func BuildMessage(event ListingsFoundEvent) (kafka.Message, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("failed to marshal listings_found event: %w", err)
	}

	return kafka.Message{
		Key:   []byte(fmt.Sprintf("listings_%s", event.Location)),
		Value: data,
		Time:  event.FoundAt,
	}, nil
}

func (p *Producer) PublishListingsFound(ctx context.Context, event ListingsFoundEvent) error {
	message, err := BuildMessage(event)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := p.writer.WriteMessages(ctx, message); err != nil {
		return fmt.Errorf("failed to write listings_found message: %w", err)
	}

	log.Printf("Published listings_found event: location=%s, count=%d", event.Location, len(event.Listings))
	return nil
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
