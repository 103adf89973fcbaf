package util

import (
	"context"
	"time"
)

// ReportCache интерфейс кеша сгенерированных отчётов
// Используется для dependency injection и упрощения тестирования
type ReportCache interface {
	// GetReport возвращает отчёт и true, если ключ найден. Промах - не ошибка
	GetReport(ctx context.Context, key string) (string, bool, error)
	SetReport(ctx context.Context, key string, report string, ttl time.Duration) error
	Close() error
}

// MessagePublisher интерфейс для отправки событий в Kafka
type MessagePublisher interface {
	// PublishMessage отправляет value с ключом партиционирования key
	PublishMessage(ctx context.Context, key string, value []byte) error
	Close() error
}
