package kafka

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"

	"obsidian-club/internal/config"
	"obsidian-club/internal/logger"
	"obsidian-club/internal/models"
)

// Producer streams reservation and chat events to the broker for staff
// notification tooling. Every publish is best-effort from the callers'
// perspective; a broker outage never fails a booking or a chat turn.
type Producer struct {
	writer *kafka.Writer
	topics config.TopicConfig
	logger *logger.Logger
}

func NewProducer(cfg config.KafkaConfig, log *logger.Logger) *Producer {
	writer := &kafka.Writer{
		Addr:     kafka.TCP(cfg.Brokers...),
		Balancer: &kafka.LeastBytes{},
	}
	return &Producer{writer: writer, topics: cfg.Topics, logger: log}
}

func (p *Producer) publish(topic, key string, payload interface{}) error {
	value, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	err = p.writer.WriteMessages(context.Background(), kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: value,
	})
	if err != nil {
		return err
	}

	p.logger.LogKafka("PUBLISH", topic, key)
	return nil
}

// PublishReservationCreated announces a new booking (form or chat origin).
func (p *Producer) PublishReservationCreated(r models.Reservation) error {
	return p.publish(p.topics.ReservationCreated, r.ID, r)
}

// PublishChatMessage streams one archived exchange.
func (p *Producer) PublishChatMessage(log models.ChatLog) error {
	return p.publish(p.topics.ChatMessages, log.SessionID, log)
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
