package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rgehrsitz/mortgo/internal/domain"
)

// RedisCache shares schedules between service replicas. Entries are stored as JSON.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache connects lazily to the Redis server at addr
func NewRedisCache(addr string, db int, ttl time.Duration) *RedisCache {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})
	return &RedisCache{client: rdb, ttl: ttl}
}

func (r *RedisCache) Backend() string { return BackendRedis }

func (r *RedisCache) Get(ctx context.Context, params domain.LoanParameters) (*domain.ScheduleResult, bool) {
	val, err := r.client.Get(ctx, Key(params)).Bytes()
	if err != nil {
		return nil, false
	}
	var result domain.ScheduleResult
	if err := json.Unmarshal(val, &result); err != nil {
		return nil, false
	}
	return &result, true
}

func (r *RedisCache) Set(ctx context.Context, params domain.LoanParameters, result *domain.ScheduleResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode schedule: %w", err)
	}
	if err := r.client.Set(ctx, Key(params), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store schedule: %w", err)
	}
	return nil
}

// Ping checks connectivity
func (r *RedisCache) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close releases the connection pool
func (r *RedisCache) Close() error {
	return r.client.Close()
}
