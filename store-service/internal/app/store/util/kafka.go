package util

import (
	"context"
	"fmt"
	"time"

	"retailcore/pkg/metrics"

	"github.com/segmentio/kafka-go"
)

// KafkaProducer обертка над Kafka writer
// Отправляет события TRANSACTION_COMPLETED и PRICE_UPDATED в топик store_events
type KafkaProducer struct {
	writer  *kafka.Writer
	topic   string
	service string
}

// NewKafkaProducer создает producer. Ключ сообщения - ID товара,
// поэтому события одного товара попадают в одну партицию
func NewKafkaProducer(brokers []string, topic string, service string) *KafkaProducer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		BatchSize:    100,
		BatchTimeout: 50 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}

	return &KafkaProducer{writer: writer, topic: topic, service: service}
}

// PublishMessage синхронно пишет одно сообщение. Ошибка возвращается вызывающему,
// который сам решает, критична ли она
func (p *KafkaProducer) PublishMessage(ctx context.Context, key string, value []byte) error {
	timer := metrics.NewKafkaProduceTimer(p.service, p.topic)

	message := kafka.Message{
		Key:   []byte(key),
		Value: value,
		Time:  time.Now(),
	}

	if err := p.writer.WriteMessages(ctx, message); err != nil {
		timer.Error()
		return fmt.Errorf("failed to write message to kafka: %w", err)
	}

	timer.Success()
	return nil
}

// Close дожидается отправки буфера и закрывает writer
func (p *KafkaProducer) Close() error {
	return p.writer.Close()
}
