package metrics

import (
	"strconv"
	"time"
)

// RedisOperation - имя команды Redis в лейбле operation
type RedisOperation string

const (
	RedisOpGet RedisOperation = "get"
	RedisOpSet RedisOperation = "set"
	RedisOpDel RedisOperation = "del"
)

// RedisTimer замеряет длительность одной команды Redis
type RedisTimer struct {
	service   string
	operation RedisOperation
	start     time.Time
}

// NewRedisTimer запускает таймер команды
func NewRedisTimer(service string, op RedisOperation) *RedisTimer {
	return &RedisTimer{
		service:   service,
		operation: op,
		start:     time.Now(),
	}
}

// ObserveDuration записывает прошедшее время в гистограмму
func (rt *RedisTimer) ObserveDuration() {
	RedisOperationDuration.WithLabelValues(rt.service, string(rt.operation)).Observe(time.Since(rt.start).Seconds())
}

// RecordCacheHit - отчёт найден в кеше
func RecordCacheHit(service, keyPrefix string) {
	RedisCacheHits.WithLabelValues(service, keyPrefix).Inc()
}

// RecordCacheMiss - отчёта в кеше нет, его придется построить
func RecordCacheMiss(service, keyPrefix string) {
	RedisCacheMisses.WithLabelValues(service, keyPrefix).Inc()
}

// RecordRedisError учитывает упавшую команду Redis
func RecordRedisError(service string, op RedisOperation) {
	RedisErrors.WithLabelValues(service, string(op)).Inc()
}

// KafkaProduceTimer замеряет отправку одного сообщения
type KafkaProduceTimer struct {
	service string
	topic   string
	start   time.Time
}

// NewKafkaProduceTimer запускает таймер отправки одного события
func NewKafkaProduceTimer(service, topic string) *KafkaProduceTimer {
	return &KafkaProduceTimer{
		service: service,
		topic:   topic,
		start:   time.Now(),
	}
}

// Success фиксирует успешную отправку
func (kt *KafkaProduceTimer) Success() {
	KafkaMessagesProduced.WithLabelValues(kt.service, kt.topic).Inc()
	KafkaProduceDuration.WithLabelValues(kt.service, kt.topic).Observe(time.Since(kt.start).Seconds())
}

// Error фиксирует неудачную отправку
func (kt *KafkaProduceTimer) Error() {
	KafkaErrors.WithLabelValues(kt.service, kt.topic, "produce").Inc()
}

// RecordTransaction фиксирует результат транзакции
// Выручка и проданные единицы учитываются только для завершённых транзакций
func RecordTransaction(status string, productID int, quantity int, totalCost float64, duration time.Duration) {
	TransactionsTotal.WithLabelValues(status).Inc()
	TransactionDuration.Observe(duration.Seconds())

	if status != "completed" {
		return
	}
	RevenueTotal.Add(totalCost)
	UnitsSold.WithLabelValues(strconv.Itoa(productID)).Add(float64(quantity))
}

// SetStockLevel выставляет остаток товара после продажи
func SetStockLevel(productID int, quantity int) {
	StockLevel.WithLabelValues(strconv.Itoa(productID)).Set(float64(quantity))
}

// RecordReport учитывает выданный отчёт, source - cache или render
func RecordReport(report, source string) {
	ReportsGenerated.WithLabelValues(report, source).Inc()
}
