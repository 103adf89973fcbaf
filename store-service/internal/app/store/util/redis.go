package util

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"retailcore/pkg/metrics"

	"github.com/redis/go-redis/v9"
)

// RedisClient кеширует текстовые отчёты (sales, inventory)
type RedisClient struct {
	client  *redis.Client
	service string
}

// NewRedisClient подключается к Redis и проверяет соединение через PING
func NewRedisClient(addr, password string, db int, service string) (*RedisClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisClient{client: client, service: service}, nil
}

// GetReport возвращает отчёт из кеша. found=false при промахе
func (r *RedisClient) GetReport(ctx context.Context, key string) (string, bool, error) {
	timer := metrics.NewRedisTimer(r.service, metrics.RedisOpGet)
	defer timer.ObserveDuration()

	report, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			metrics.RecordCacheMiss(r.service, keyPrefix(key))
			return "", false, nil
		}
		metrics.RecordRedisError(r.service, metrics.RedisOpGet)
		return "", false, fmt.Errorf("failed to get report from cache: %w", err)
	}

	metrics.RecordCacheHit(r.service, keyPrefix(key))
	return report, true, nil
}

// SetReport сохраняет отчёт с TTL. Нулевой ttl - без срока жизни
func (r *RedisClient) SetReport(ctx context.Context, key string, report string, ttl time.Duration) error {
	timer := metrics.NewRedisTimer(r.service, metrics.RedisOpSet)
	defer timer.ObserveDuration()

	if err := r.client.Set(ctx, key, report, ttl).Err(); err != nil {
		metrics.RecordRedisError(r.service, metrics.RedisOpSet)
		return fmt.Errorf("failed to set report in cache: %w", err)
	}
	return nil
}

// Close закрывает пул соединений
func (r *RedisClient) Close() error {
	return r.client.Close()
}

// keyPrefix - "reports:sales:3:7" -> "reports:sales", чтобы не плодить лейблы метрик
func keyPrefix(key string) string {
	parts := strings.SplitN(key, ":", 3)
	if len(parts) < 2 {
		return key
	}
	return parts[0] + ":" + parts[1]
}
