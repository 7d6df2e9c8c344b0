package mykafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

type Producer struct {
	writer *kafka.Writer
}

func NewProducer(brokers []string) (*Producer, error) {
	if len(brokers) == 0 {
		return nil, errors.New("kafka: no brokers configured")
	}

	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		BatchTimeout:           10 * time.Millisecond,
		MaxAttempts:            3,
		AllowAutoTopicCreation: true,
	}

	return &Producer{writer: w}, nil
}

// EncodeEvent builds the message published for event on topic.
func EncodeEvent(topic, key string, event any) (kafka.Message, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("kafka: json.Marshal failed: %w", err)
	}

	return kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: data,
		Time:  time.Now().UTC(),
	}, nil
}

func (p *Producer) PublishEvent(ctx context.Context, topic, key string, event any) error {
	msg, err := EncodeEvent(topic, key, event)
	if err != nil {
		return err
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka: write to %s failed: %w", topic, err)
	}
	return nil
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
