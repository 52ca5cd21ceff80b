// Package cache stores finished schedules keyed by the full loan parameter
// tuple. Schedules are immutable, so a cached result can be handed to any
// number of callers.
package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rgehrsitz/mortgo/internal/domain"
)

// ScheduleCache is implemented by every cache backend
type ScheduleCache interface {
	Get(ctx context.Context, params domain.LoanParameters) (*domain.ScheduleResult, bool)
	Set(ctx context.Context, params domain.LoanParameters, result *domain.ScheduleResult) error
	Backend() string
}

const (
	BackendNone   = "none"
	BackendMemory = "memory"
	BackendRedis  = "redis"

	DefaultTTL = 15 * time.Minute
)

// Config selects and configures a backend
type Config struct {
	Backend   string        `yaml:"backend" mapstructure:"backend"`
	TTL       time.Duration `yaml:"ttl" mapstructure:"ttl"`
	RedisAddr string        `yaml:"redis_addr" mapstructure:"redis_addr"`
	RedisDB   int           `yaml:"redis_db" mapstructure:"redis_db"`
}

// New builds the backend named in cfg. BackendNone returns a nil cache.
func New(cfg Config) (ScheduleCache, error) {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Backend)) {
	case "", BackendNone:
		return nil, nil
	case BackendMemory:
		return NewMemoryCache(ttl), nil
	case BackendRedis:
		if cfg.RedisAddr == "" {
			return nil, fmt.Errorf("redis cache requires an address")
		}
		return NewRedisCache(cfg.RedisAddr, cfg.RedisDB, ttl), nil
	default:
		return nil, fmt.Errorf("unsupported cache backend: %s", cfg.Backend)
	}
}

// Key returns the storage key for a parameter tuple
func Key(params domain.LoanParameters) string {
	return "mortgo:schedule:" + params.CacheKey()
}
