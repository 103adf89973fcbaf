package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Режимы запуска приложения
const (
	ModeServer = "server" // HTTP API
	ModeDemo   = "demo"   // одноразовый прогон сценария с выводом в stdout
)

// Config содержит все настройки Store Service
type Config struct {
	App    AppConfig
	Server ServerConfig
	Redis  RedisConfig
	Kafka  KafkaConfig
	JWT    JWTConfig
}

// AppConfig - общие настройки приложения
type AppConfig struct {
	Mode           string        // server или demo
	SeedData       bool          // заполнить каталог демонстрационными товарами при старте
	ReceiptFormat  string        // text или html
	Reports        []string      // отчёты для демо и планировщика (sales, inventory)
	ReportSchedule string        // cron выражение, пусто - планировщик выключен
	ReportCacheTTL time.Duration // TTL отчётов в Redis
	LogLevel       string        // debug, info, warn, error
	LogstashAddr   string        // host:port Logstash TCP input, пусто - только stdout
}

// ServerConfig - настройки HTTP сервера
type ServerConfig struct {
	Host string // адрес прослушивания, пусто - все интерфейсы
	Port string
}

// RedisConfig - кеш отчётов. Enabled=false - работаем без кеша
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string // пусто - без AUTH
	DB       int    // номер логической базы
}

// KafkaConfig - события о транзакциях и ценах. Пустой список брокеров - события не отправляются
type KafkaConfig struct {
	Brokers []string // host:port через запятую в KAFKA_BROKERS
	Topic   string   // один топик для всех событий магазина
}

// JWTConfig - секрет для проверки токенов, выданных Auth Service
type JWTConfig struct {
	Secret string // HS256, общий с сервисом, выдающим токены
}

// Load загружает конфигурацию из .env (если есть) и переменных окружения
func Load() (*Config, error) {
	// .env не обязателен, переменные окружения имеют приоритет
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB value: %w", err)
	}

	redisEnabled, err := strconv.ParseBool(getEnv("REDIS_ENABLED", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_ENABLED value: %w", err)
	}

	seed, err := strconv.ParseBool(getEnv("SEED_DATA", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid SEED_DATA value: %w", err)
	}

	cacheTTL, err := time.ParseDuration(getEnv("REPORT_CACHE_TTL", "10m"))
	if err != nil {
		return nil, fmt.Errorf("invalid REPORT_CACHE_TTL value: %w", err)
	}

	mode := strings.ToLower(getEnv("APP_MODE", ModeServer))
	if mode != ModeServer && mode != ModeDemo {
		return nil, fmt.Errorf("invalid APP_MODE value: %q", mode)
	}

	receiptFormat := strings.ToLower(getEnv("RECEIPT_FORMAT", "text"))
	if receiptFormat != "text" && receiptFormat != "html" {
		return nil, fmt.Errorf("invalid RECEIPT_FORMAT value: %q", receiptFormat)
	}

	return &Config{
		App: AppConfig{
			Mode:           mode,
			SeedData:       seed,
			ReceiptFormat:  receiptFormat,
			Reports:        splitList(getEnv("REPORTS", "sales")),
			ReportSchedule: getEnv("REPORT_SCHEDULE", ""),
			ReportCacheTTL: cacheTTL,
			LogLevel:       getEnv("LOG_LEVEL", "info"),
			LogstashAddr:   getEnv("LOGSTASH_ADDR", ""),
		},
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnv("SERVER_PORT", "8085"),
		},
		Redis: RedisConfig{
			Enabled:  redisEnabled,
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Kafka: KafkaConfig{
			Brokers: splitList(getEnv("KAFKA_BROKERS", "")),
			Topic:   getEnv("KAFKA_TOPIC", "store_events"),
		},
		JWT: JWTConfig{
			// Должен совпадать с секретом Auth Service
			Secret: getEnv("JWT_SECRET", "your-secret-key-change-this-in-production"),
		},
	}, nil
}

// Address возвращает адрес сервера в формате host:port
func (c *ServerConfig) Address() string {
	return c.Host + ":" + c.Port
}

// Address возвращает адрес Redis в формате host:port
func (c *RedisConfig) Address() string {
	return c.Host + ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// splitList разбирает "a, b,c" в []string{"a","b","c"}, пустые элементы отбрасываются
func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
