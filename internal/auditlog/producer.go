package auditlog

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"
)

// Publisher mirrors audit entries onto a kafka topic for downstream
// consumers.
type Publisher struct {
	writer *kafka.Writer
}

func NewPublisher(brokers []string, topic string) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.LeastBytes{},
			AllowAutoTopicCreation: true,
		},
	}
}

func (p *Publisher) Publish(ctx context.Context, entry *AuditLog) error {
	value, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(entry.Action),
		Value: value,
	})
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
