package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Все метрики публикуются с префиксом retail_
const namespace = "retail"

// Лейблы, общие для инфраструктурных метрик
var (
	serviceLabels   = []string{"service"}
	routeLabels     = []string{"service", "method", "path"}
	cacheKeyLabels  = []string{"service", "key_prefix"}
	cacheOpLabels   = []string{"service", "operation"}
	topicLabels     = []string{"service", "topic"}
	productIDLabels = []string{"product_id"}
)

// === HTTP ===
// PromQL: sum by (path) (rate(retail_http_requests_total{service="store-service"}[5m]))
var (
	HttpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests served, by route template and status code",
	}, append(routeLabels, "status"))

	HttpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by route template",
		Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8), // 0.5ms .. ~8s
	}, routeLabels)

	HttpRequestsInFlight = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_in_flight",
		Help:      "HTTP requests currently being handled",
	}, serviceLabels)
)

// === Redis: кеш отчётов ===
var (
	RedisCacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "report_cache",
		Name:      "hits_total",
		Help:      "Report cache lookups answered from Redis",
	}, cacheKeyLabels)

	RedisCacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "report_cache",
		Name:      "misses_total",
		Help:      "Report cache lookups that had to render the report",
	}, cacheKeyLabels)

	RedisOperationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "report_cache",
		Name:      "operation_duration_seconds",
		Help:      "Latency of Redis commands issued by the report cache",
		Buckets:   prometheus.ExponentialBuckets(0.0001, 5, 6), // 0.1ms .. ~0.3s
	}, cacheOpLabels)

	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "report_cache",
		Name:      "errors_total",
		Help:      "Redis commands that failed (misses are not errors)",
	}, cacheOpLabels)
)

// === Kafka: события магазина ===
var (
	KafkaMessagesProduced = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "events",
		Name:      "produced_total",
		Help:      "Store events written to Kafka",
	}, topicLabels)

	KafkaProduceDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "events",
		Name:      "produce_duration_seconds",
		Help:      "Time spent writing one store event to Kafka",
		Buckets:   prometheus.ExponentialBuckets(0.001, 4, 6), // 1ms .. ~1s
	}, topicLabels)

	KafkaErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "events",
		Name:      "errors_total",
		Help:      "Store events that could not be written",
	}, append(topicLabels, "operation"))
)

// === Магазин ===
var (
	// TransactionsTotal - транзакции по результату
	// status: completed, invalid_quantity, not_found, insufficient_stock, invalid_discount, failed
	TransactionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "store",
		Name:      "transactions_total",
		Help:      "Purchase transactions by outcome",
	}, []string{"status"})

	// RevenueTotal - сумма завершённых транзакций после скидок
	RevenueTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "store",
		Name:      "revenue_total",
		Help:      "Revenue of completed transactions after discounts",
	})

	UnitsSold = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "store",
		Name:      "units_sold_total",
		Help:      "Units sold per product",
	}, productIDLabels)

	// StockLevel - остаток после последнего списания
	StockLevel = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "store",
		Name:      "stock_level",
		Help:      "On-hand quantity per product after the last sale",
	}, productIDLabels)

	TransactionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "store",
		Name:      "transaction_duration_seconds",
		Help:      "Time to validate and commit one purchase",
		Buckets:   prometheus.ExponentialBuckets(0.00001, 10, 6), // 10us .. 1s
	})

	// ReportsGenerated - source: cache или render
	ReportsGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "store",
		Name:      "reports_generated_total",
		Help:      "Reports served, by name and whether they came from the cache",
	}, []string{"report", "source"})
)
